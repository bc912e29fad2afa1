package reservation

import (
	"hostmaster/internal/domains/reservation/model/dto"
	"hostmaster/shared"
	"hostmaster/shared/constant"
	"hostmaster/shared/validator"
	"hostmaster/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// GetReservationExtraServices lists the extra services attached to a reservation.
// @Summary Get reservation extra services
// @Tags Reservation
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} response.Data[[]dto.ExtraServiceResponse] "Attached extra services"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id}/extra-services [get]
// @Security BearerAuth
func (handler *Handler) GetReservationExtraServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationExtraServices")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	extraServices, err := handler.service.ListExtraServices(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation extra services")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, extraServices)
}

// AddReservationExtraService attaches an extra service to a reservation.
// @Summary Attach an extra service
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path int true "Reservation ID"
// @Param request body dto.AddExtraServiceRequest true "Add Extra Service Request"
// @Success 201 {object} response.Message "Extra service added successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id}/extra-services [post]
// @Security BearerAuth
func (handler *Handler) AddReservationExtraService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddReservationExtraService")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.AddExtraServiceRequest{}

	if err = validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err = handler.service.AddExtraService(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add extra service to reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Extra service added successfully")

	response.WithMessage(w, http.StatusCreated, "Extra service added successfully")
}

// RemoveReservationExtraService detaches an extra service from a reservation.
// @Summary Detach an extra service
// @Tags Reservation
// @Produce json
// @Param id path int true "Reservation ID"
// @Param item_id path int true "Extra service ID"
// @Success 200 {object} response.Message "Extra service removed successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id}/extra-services/{item_id} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveReservationExtraService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveReservationExtraService")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	extraServiceID, err := shared.ParseID(chi.URLParam(r, constant.RequestParamItemID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err = handler.service.RemoveExtraService(ctx, id, extraServiceID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove extra service from reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Extra service removed successfully")

	response.WithMessage(w, http.StatusOK, "Extra service removed successfully")
}
