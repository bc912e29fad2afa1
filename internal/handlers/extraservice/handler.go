package extraservice

import (
	"hostmaster/infras/otel"
	"hostmaster/internal/domains/extraservice/model"
	"hostmaster/internal/domains/extraservice/model/dto"
	"hostmaster/internal/domains/extraservice/service"
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
	service service.ExtraService
	otel    otel.Otel
}

func New(service service.ExtraService, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/extra-services", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateExtraService)
		routerGroup.Get("/", handler.GetExtraServices)
		routerGroup.Get("/{id}", handler.GetExtraServiceByID)
		routerGroup.Patch("/{id}", handler.UpdateExtraService)
		routerGroup.Delete("/{id}", handler.DeleteExtraService)
	})
}

// CreateExtraService handles the creation of a new extra service.
// @Summary Create a new extra service
// @Description Create an extra service that can be attached to reservations.
// @Tags ExtraService
// @Accept json
// @Produce json
// @Param request body dto.CreateExtraServiceRequest true "Create Extra service Request"
// @Success 201 {object} response.Data[dto.ExtraServiceResponse] "Extra service created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/extra-services [post]
// @Security BearerAuth
func (handler *Handler) CreateExtraService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateExtraService")
	defer scope.End()

	req := dto.CreateExtraServiceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	extraService, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create extra service")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Extra service created successfully")

	response.WithJSON(w, http.StatusCreated, extraService)
}

// GetExtraServices retrieves all extra services based on query parameters.
// @Summary Get all extra services
// @Tags ExtraService
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Success 200 {object} response.Data[dto.GetExtraServicesResponse] "List of extra services"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/extra-services [get]
// @Security BearerAuth
func (handler *Handler) GetExtraServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExtraServices")
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

	extraServices, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get extra services")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Extra services retrieved successfully")

	response.WithJSON(w, http.StatusOK, extraServices)
}

// GetExtraServiceByID retrieves a extra service by its ID.
// @Summary Get a extra service by ID
// @Tags ExtraService
// @Produce json
// @Param id path int true "Extra service ID"
// @Success 200 {object} response.Data[dto.ExtraServiceResponse] "Extra service details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/extra-services/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetExtraServiceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExtraServiceByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	extraService, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get extra service by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, extraService)
}

// UpdateExtraService updates an existing extra service.
// @Summary Update a extra service
// @Tags ExtraService
// @Accept json
// @Produce json
// @Param id path int true "Extra service ID"
// @Param request body dto.UpdateExtraServiceRequest true "Update Extra service Request"
// @Success 200 {object} response.Message "Extra service updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/extra-services/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateExtraService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateExtraService")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateExtraServiceRequest{}

	if err = validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err = handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update extra service")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Extra service updated successfully")

	response.WithMessage(w, http.StatusOK, "Extra service updated successfully")
}

// DeleteExtraService deletes a extra service by its ID.
// @Summary Delete a extra service
// @Tags ExtraService
// @Produce json
// @Param id path int true "Extra service ID"
// @Success 200 {object} response.Message "Extra service deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/extra-services/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteExtraService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteExtraService")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err = handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete extra service")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Extra service deleted successfully")

	response.WithMessage(w, http.StatusOK, "Extra service deleted successfully")
}
