package product

import (
	"hostmaster/infras/otel"
	"hostmaster/internal/domains/product/model"
	"hostmaster/internal/domains/product/model/dto"
	"hostmaster/internal/domains/product/service"
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
	service service.Product
	otel    otel.Otel
}

func New(service service.Product, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/products", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateProduct)
		routerGroup.Get("/", handler.GetProducts)
		routerGroup.Get("/{id}", handler.GetProductByID)
		routerGroup.Patch("/{id}", handler.UpdateProduct)
		routerGroup.Delete("/{id}", handler.DeleteProduct)
	})
}

// CreateProduct handles the creation of a new product.
// @Summary Create a new product
// @Description Add a product to the catalogue that rooms can be stocked with. Admins only.
// @Tags Product
// @Accept json
// @Produce json
// @Param request body dto.CreateProductRequest true "Create Product Request"
// @Success 201 {object} response.Data[dto.ProductResponse] "Product created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/products [post]
// @Security BearerAuth
func (handler *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateProduct")
	defer scope.End()

	req := dto.CreateProductRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	product, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create product")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Product created successfully")

	response.WithJSON(w, http.StatusCreated, product)
}

// GetProducts retrieves all products based on query parameters.
// @Summary Get all products
// @Tags Product
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Success 200 {object} response.Data[dto.GetProductsResponse] "List of products"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/products [get]
// @Security BearerAuth
func (handler *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProducts")
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

	products, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get products")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Products retrieved successfully")

	response.WithJSON(w, http.StatusOK, products)
}

// GetProductByID retrieves a product by its ID.
// @Summary Get a product by ID
// @Tags Product
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} response.Data[dto.ProductResponse] "Product details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/products/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProductByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	product, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get product by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, product)
}

// UpdateProduct updates an existing product.
// @Summary Update a product
// @Tags Product
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body dto.UpdateProductRequest true "Update Product Request"
// @Success 200 {object} response.Message "Product updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/products/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateProduct")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateProductRequest{}

	if err = validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err = handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update product")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Product updated successfully")

	response.WithMessage(w, http.StatusOK, "Product updated successfully")
}

// DeleteProduct deletes a product by its ID.
// @Summary Delete a product
// @Tags Product
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} response.Message "Product deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/products/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteProduct")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err = handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete product")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Product deleted successfully")

	response.WithMessage(w, http.StatusOK, "Product deleted successfully")
}
