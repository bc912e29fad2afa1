package maintenance

import (
	"hostmaster/infras/otel"
	"hostmaster/internal/domains/maintenance/model"
	"hostmaster/internal/domains/maintenance/model/dto"
	"hostmaster/internal/domains/maintenance/service"
	"hostmaster/shared"
	"hostmaster/shared/constant"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/failure"
	"hostmaster/shared/validator"
	"hostmaster/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Maintenance
	otel    otel.Otel
}

func New(service service.Maintenance, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/maintenance", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateMaintenanceRequest)
		routerGroup.Get("/", handler.GetMaintenanceRequests)
		routerGroup.Get("/{id}", handler.GetMaintenanceRequestByID)
		routerGroup.Patch("/{id}", handler.UpdateMaintenanceRequest)
		routerGroup.Delete("/{id}", handler.DeleteMaintenanceRequest)
	})
}

// CreateMaintenanceRequest reports a problem in a room.
// @Summary Report a maintenance request
// @Description Staff report for accommodations they manage. Clients report only for a room they are currently staying in.
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param request body dto.CreateMaintenanceRequest true "Create Maintenance Request"
// @Success 201 {object} response.Data[dto.MaintenanceResponse] "Maintenance request created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/maintenance [post]
// @Security BearerAuth
func (handler *Handler) CreateMaintenanceRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMaintenanceRequest")
	defer scope.End()

	req := dto.CreateMaintenanceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	request, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create maintenance request")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Maintenance request created successfully")

	response.WithJSON(w, http.StatusCreated, request)
}

// GetMaintenanceRequests lists the maintenance requests visible to the caller.
// @Summary Get all maintenance requests
// @Tags Maintenance
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param accommodation_id query int false "Filter by accommodation"
// @Param room_id query int false "Filter by room"
// @Param status query string false "Filter by status (pending, in_progress, completed)"
// @Success 200 {object} response.Data[dto.GetMaintenanceResponse] "List of maintenance requests"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/maintenance [get]
// @Security BearerAuth
func (handler *Handler) GetMaintenanceRequests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMaintenanceRequests")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, field := range []string{model.FieldAccommodationID, model.FieldRoomID} {
		if value := shared.ConvertStringToInt64(r.URL.Query().Get(field)); value != nil {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Eq(model.TableName, field, *value))
		}
	}

	if value := r.URL.Query().Get(model.FieldStatus); value != "" {
		status, err := model.ParseStatus(value)
		if err != nil {
			response.WithError(w, failure.BadRequest(err))

			return
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Eq(model.TableName, model.FieldStatus, string(status)))
	}

	requests, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get maintenance requests")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Maintenance requests retrieved successfully")

	response.WithJSON(w, http.StatusOK, requests)
}

// GetMaintenanceRequestByID retrieves a maintenance request by its ID.
// @Summary Get a maintenance request by ID
// @Tags Maintenance
// @Produce json
// @Param id path int true "Maintenance request ID"
// @Success 200 {object} response.Data[dto.MaintenanceResponse] "Maintenance request details"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/maintenance/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetMaintenanceRequestByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMaintenanceRequestByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	request, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get maintenance request by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, request)
}

// UpdateMaintenanceRequest updates a maintenance request.
// @Summary Update a maintenance request
// @Description Reporters may edit the description and priority. Status and assignee are changed by staff.
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param id path int true "Maintenance request ID"
// @Param request body dto.UpdateMaintenanceRequest true "Update Maintenance Request"
// @Success 200 {object} response.Message "Maintenance request updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/maintenance/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateMaintenanceRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMaintenanceRequest")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateMaintenanceRequest{}

	if err = validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err = handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update maintenance request")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Maintenance request updated successfully")

	response.WithMessage(w, http.StatusOK, "Maintenance request updated successfully")
}

// DeleteMaintenanceRequest deletes a maintenance request by its ID.
// @Summary Delete a maintenance request
// @Tags Maintenance
// @Produce json
// @Param id path int true "Maintenance request ID"
// @Success 200 {object} response.Message "Maintenance request deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/maintenance/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteMaintenanceRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteMaintenanceRequest")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err = handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete maintenance request")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Maintenance request deleted successfully")

	response.WithMessage(w, http.StatusOK, "Maintenance request deleted successfully")
}
