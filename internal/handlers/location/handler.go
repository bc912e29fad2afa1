package location

import (
	"hostmaster/infras/otel"
	"hostmaster/internal/domains/location/model"
	"hostmaster/internal/domains/location/model/dto"
	"hostmaster/internal/domains/location/service"
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
	service service.Location
	otel    otel.Otel
}

func New(service service.Location, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/cities", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateCity)
		routerGroup.Get("/", handler.GetCities)
		routerGroup.Get("/{id}", handler.GetCityByID)
	})
}

// CreateCity handles the creation of a new city.
// @Summary Create a new city
// @Tags Location
// @Accept json
// @Produce json
// @Param request body dto.CreateCityRequest true "Create City Request"
// @Success 201 {object} response.Data[dto.CityResponse] "City created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cities [post]
// @Security BearerAuth
func (handler *Handler) CreateCity(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCity")
	defer scope.End()

	req := dto.CreateCityRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	city, err := handler.service.CreateCity(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create city")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("City created successfully")

	response.WithJSON(w, http.StatusCreated, city)
}

// GetCities retrieves all cities.
// @Summary Get all cities
// @Tags Location
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param country query string false "Filter by country"
// @Success 200 {object} response.Data[dto.GetCitiesResponse] "List of cities"
// @Failure 500 {object} response.Error
// @Router /v1/cities [get]
// @Security BearerAuth
func (handler *Handler) GetCities(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCities")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, field := range []string{model.FieldName, model.FieldCountry} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorLike,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	cities, err := handler.service.GetCities(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cities")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, cities)
}

// GetCityByID retrieves a city by its ID.
// @Summary Get a city by ID
// @Tags Location
// @Produce json
// @Param id path int true "City ID"
// @Success 200 {object} response.Data[dto.CityResponse] "City details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cities/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetCityByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCityByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	city, err := handler.service.GetCity(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get city by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, city)
}
