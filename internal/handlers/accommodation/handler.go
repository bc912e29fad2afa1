package accommodation

import (
	"hostmaster/infras/otel"
	"hostmaster/internal/domains/accommodation/model"
	"hostmaster/internal/domains/accommodation/model/dto"
	"hostmaster/internal/domains/accommodation/service"
	"hostmaster/shared"
	"hostmaster/shared/constant"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/validator"
	"hostmaster/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Accommodation
	otel    otel.Otel
}

func New(service service.Accommodation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/accommodations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAccommodation)
		routerGroup.Get("/", handler.GetAccommodations)
		routerGroup.Get("/{id}", handler.GetAccommodationByID)
		routerGroup.Patch("/{id}", handler.UpdateAccommodation)
		routerGroup.Delete("/{id}", handler.DeleteAccommodation)
	})
}

// CreateAccommodation handles the creation of a new accommodation.
// @Summary Create a new accommodation
// @Description Create an accommodation and associate it with the calling user.
// @Tags Accommodation
// @Accept json
// @Produce json
// @Param request body dto.CreateAccommodationRequest true "Create Accommodation Request"
// @Success 201 {object} response.Data[dto.AccommodationResponse] "Accommodation created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accommodations [post]
// @Security BearerAuth
func (handler *Handler) CreateAccommodation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAccommodation")
	defer scope.End()

	req := dto.CreateAccommodationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	accommodation, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create accommodation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Accommodation created successfully")

	response.WithJSON(w, http.StatusCreated, accommodation)
}

// GetAccommodations retrieves all accommodations based on query parameters.
// @Summary Get all accommodations
// @Tags Accommodation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param city_id query int false "Filter by city"
// @Success 200 {object} response.Data[dto.GetAccommodationsResponse] "List of accommodations"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accommodations [get]
// @Security BearerAuth
func (handler *Handler) GetAccommodations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAccommodations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if name := r.URL.Query().Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if cityID := shared.ConvertStringToInt64(r.URL.Query().Get(model.FieldCityID)); cityID != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCityID,
			Operator: gDto.FilterOperatorEq,
			Value:    *cityID,
			Table:    model.TableName,
		})
	}

	accommodations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get accommodations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Accommodations retrieved successfully")

	response.WithJSON(w, http.StatusOK, accommodations)
}

// GetAccommodationByID retrieves a accommodation by its ID.
// @Summary Get a accommodation by ID
// @Tags Accommodation
// @Produce json
// @Param id path int true "Accommodation ID"
// @Success 200 {object} response.Data[dto.AccommodationResponse] "Accommodation details"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accommodations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAccommodationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAccommodationByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	accommodation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get accommodation by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, accommodation)
}

// UpdateAccommodation updates an existing accommodation.
// @Summary Update a accommodation
// @Tags Accommodation
// @Accept json
// @Produce json
// @Param id path int true "Accommodation ID"
// @Param request body dto.UpdateAccommodationRequest true "Update Accommodation Request"
// @Success 200 {object} response.Message "Accommodation updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accommodations/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAccommodation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAccommodation")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateAccommodationRequest{}

	if err = validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err = handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update accommodation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Accommodation updated successfully")

	response.WithMessage(w, http.StatusOK, "Accommodation updated successfully")
}

// DeleteAccommodation deletes a accommodation by its ID.
// @Summary Delete a accommodation
// @Tags Accommodation
// @Produce json
// @Param id path int true "Accommodation ID"
// @Success 200 {object} response.Message "Accommodation deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accommodations/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAccommodation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAccommodation")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err = handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete accommodation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Accommodation deleted successfully")

	response.WithMessage(w, http.StatusOK, "Accommodation deleted successfully")
}
