package room

import (
	"hostmaster/internal/domains/product/model"
	"hostmaster/internal/domains/product/model/dto"
	"hostmaster/shared"
	"hostmaster/shared/constant"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/validator"
	"hostmaster/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

func stockPath(r *http.Request) (roomID, productID int64, err error) {
	if roomID, err = shared.ParseID(chi.URLParam(r, constant.RequestParamID)); err != nil {
		return 0, 0, err
	}

	if productID, err = shared.ParseID(chi.URLParam(r, constant.RequestParamProductID)); err != nil {
		return 0, 0, err
	}

	return roomID, productID, nil
}

// AddRoomProduct stocks a catalogue product in a room.
// @Summary Stock a product in a room
// @Tags RoomProduct
// @Accept json
// @Produce json
// @Param id path int true "Room ID"
// @Param request body dto.StockProductRequest true "Stock Product Request"
// @Success 201 {object} response.Data[dto.RoomProductResponse] "Product stocked successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/products [post]
// @Security BearerAuth
func (handler *Handler) AddRoomProduct(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddRoomProduct")
	defer scope.End()

	roomID, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.StockProductRequest{}

	if err = validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	stock, err := handler.stock.Add(ctx, roomID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to stock product")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Product stocked successfully")

	response.WithJSON(w, http.StatusCreated, stock)
}

// GetRoomProducts lists the products kept in a room with their catalogue details.
// @Summary Get room products
// @Tags RoomProduct
// @Produce json
// @Param id path int true "Room ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param needs_restock query bool false "Only products flagged for restocking"
// @Success 200 {object} response.Data[dto.GetRoomProductsResponse] "Room products"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/products [get]
// @Security BearerAuth
func (handler *Handler) GetRoomProducts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomProducts")
	defer scope.End()

	roomID, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	products, err := handler.stock.GetAll(ctx, roomID, queryParams, shared.ConvertStringToBool(r.URL.Query().Get(model.FieldNeedsRestock)))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room products")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, products)
}

// UpdateRoomProduct changes the stock of a product in a room.
// @Summary Update room product stock
// @Tags RoomProduct
// @Accept json
// @Produce json
// @Param id path int true "Room ID"
// @Param product_id path int true "Product ID"
// @Param request body dto.UpdateStockRequest true "Update Stock Request"
// @Success 200 {object} response.Message "Room product updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/products/{product_id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoomProduct(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoomProduct")
	defer scope.End()

	roomID, productID, err := stockPath(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateStockRequest{}

	if err = validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err = handler.stock.Update(ctx, req, roomID, productID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room product")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room product updated successfully")

	response.WithMessage(w, http.StatusOK, "Room product updated successfully")
}

// RemoveRoomProduct stops stocking a product in a room.
// @Summary Remove a product from a room
// @Tags RoomProduct
// @Produce json
// @Param id path int true "Room ID"
// @Param product_id path int true "Product ID"
// @Success 200 {object} response.Message "Room product removed successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/products/{product_id} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveRoomProduct(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveRoomProduct")
	defer scope.End()

	roomID, productID, err := stockPath(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err = handler.stock.Remove(ctx, roomID, productID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove room product")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room product removed successfully")

	response.WithMessage(w, http.StatusOK, "Room product removed successfully")
}
