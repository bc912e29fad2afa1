package room

import (
	"hostmaster/internal/domains/inventory/model/dto"
	"hostmaster/shared"
	"hostmaster/shared/constant"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/validator"
	"hostmaster/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

func itemPath(r *http.Request) (roomID, itemID int64, err error) {
	if roomID, err = shared.ParseID(chi.URLParam(r, constant.RequestParamID)); err != nil {
		return 0, 0, err
	}

	if itemID, err = shared.ParseID(chi.URLParam(r, constant.RequestParamItemID)); err != nil {
		return 0, 0, err
	}

	return roomID, itemID, nil
}

// CreateInventoryItem adds an item to a room's inventory.
// @Summary Add an inventory item
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path int true "Room ID"
// @Param request body dto.CreateInventoryItemRequest true "Create Inventory Item Request"
// @Success 201 {object} response.Data[dto.InventoryItemResponse] "Inventory item created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/inventory [post]
// @Security BearerAuth
func (handler *Handler) CreateInventoryItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateInventoryItem")
	defer scope.End()

	roomID, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.CreateInventoryItemRequest{}

	if err = validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	item, err := handler.inventory.Create(ctx, roomID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create inventory item")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Inventory item created successfully")

	response.WithJSON(w, http.StatusCreated, item)
}

// GetInventory lists the inventory of a room.
// @Summary Get room inventory
// @Tags Inventory
// @Produce json
// @Param id path int true "Room ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetInventoryResponse] "Room inventory"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/inventory [get]
// @Security BearerAuth
func (handler *Handler) GetInventory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInventory")
	defer scope.End()

	roomID, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	items, err := handler.inventory.GetAll(ctx, roomID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get inventory")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, items)
}

// UpdateInventoryItem updates an item of a room's inventory.
// @Summary Update an inventory item
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path int true "Room ID"
// @Param item_id path int true "Inventory item ID"
// @Param request body dto.UpdateInventoryItemRequest true "Update Inventory Item Request"
// @Success 200 {object} response.Message "Inventory item updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/inventory/{item_id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateInventoryItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateInventoryItem")
	defer scope.End()

	roomID, itemID, err := itemPath(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateInventoryItemRequest{}

	if err = validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err = handler.inventory.Update(ctx, req, roomID, itemID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update inventory item")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Inventory item updated successfully")

	response.WithMessage(w, http.StatusOK, "Inventory item updated successfully")
}

// DeleteInventoryItem removes an item from a room's inventory.
// @Summary Delete an inventory item
// @Tags Inventory
// @Produce json
// @Param id path int true "Room ID"
// @Param item_id path int true "Inventory item ID"
// @Success 200 {object} response.Message "Inventory item deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/inventory/{item_id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteInventoryItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteInventoryItem")
	defer scope.End()

	roomID, itemID, err := itemPath(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err = handler.inventory.Delete(ctx, roomID, itemID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete inventory item")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Inventory item deleted successfully")

	response.WithMessage(w, http.StatusOK, "Inventory item deleted successfully")
}
