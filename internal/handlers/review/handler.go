package review

import (
	"hostmaster/infras/otel"
	"hostmaster/internal/domains/review/model"
	"hostmaster/internal/domains/review/model/dto"
	"hostmaster/internal/domains/review/service"
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
	service service.Review
	otel    otel.Otel
}

func New(service service.Review, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reviews", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReview)
		routerGroup.Get("/", handler.GetReviews)
		routerGroup.Get("/{id}", handler.GetReviewByID)
		routerGroup.Patch("/{id}", handler.UpdateReview)
		routerGroup.Delete("/{id}", handler.DeleteReview)
	})
}

// CreateReview handles the creation of a new review.
// @Summary Create a new review
// @Description Review an accommodation as the calling user. Each user reviews an accommodation once.
// @Tags Review
// @Accept json
// @Produce json
// @Param request body dto.CreateReviewRequest true "Create Review Request"
// @Success 201 {object} response.Data[dto.ReviewResponse] "Review created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews [post]
// @Security BearerAuth
func (handler *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReview")
	defer scope.End()

	req := dto.CreateReviewRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	review, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create review")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Review created successfully")

	response.WithJSON(w, http.StatusCreated, review)
}

// GetReviews retrieves all reviews based on query parameters.
// @Summary Get all reviews
// @Tags Review
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param accommodation_id query int false "Filter by accommodation"
// @Param user_username query string false "Filter by author"
// @Success 200 {object} response.Data[dto.GetReviewsResponse] "List of reviews"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews [get]
// @Security BearerAuth
func (handler *Handler) GetReviews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReviews")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if accommodationID := shared.ConvertStringToInt64(r.URL.Query().Get(model.FieldAccommodationID)); accommodationID != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldAccommodationID,
			Operator: gDto.FilterOperatorEq,
			Value:    *accommodationID,
			Table:    model.TableName,
		})
	}

	if username := r.URL.Query().Get(model.FieldUserUsername); username != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldUserUsername,
			Operator: gDto.FilterOperatorEq,
			Value:    username,
			Table:    model.TableName,
		})
	}

	reviews, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reviews")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reviews retrieved successfully")

	response.WithJSON(w, http.StatusOK, reviews)
}

// GetReviewByID retrieves a review by its ID.
// @Summary Get a review by ID
// @Tags Review
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} response.Data[dto.ReviewResponse] "Review details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReviewByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReviewByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	review, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get review by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, review)
}

// UpdateReview updates an existing review.
// @Summary Update a review
// @Tags Review
// @Accept json
// @Produce json
// @Param id path int true "Review ID"
// @Param request body dto.UpdateReviewRequest true "Update Review Request"
// @Success 200 {object} response.Message "Review updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReview")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateReviewRequest{}

	if err = validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err = handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update review")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Review updated successfully")

	response.WithMessage(w, http.StatusOK, "Review updated successfully")
}

// DeleteReview deletes a review by its ID.
// @Summary Delete a review
// @Tags Review
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} response.Message "Review deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReview")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err = handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete review")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Review deleted successfully")

	response.WithMessage(w, http.StatusOK, "Review deleted successfully")
}
