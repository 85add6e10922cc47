package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alshadows/product-catalog/internal/api/metrics"
	"github.com/alshadows/product-catalog/internal/api/response"
	"github.com/alshadows/product-catalog/internal/core/domain"
	"github.com/alshadows/product-catalog/internal/core/ports"
	"github.com/alshadows/product-catalog/internal/core/service"
)

// ProductHandler handles HTTP requests for catalog operations.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// Create handles POST /api/v1/products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  response.Envelope{data=productResponse}
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Failure      403   {object}  response.Envelope
// @Failure      500   {object}  response.Envelope
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return &domain.ValidationError{Message: "invalid payload"}
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.service.Create(c.Request().Context(), toCreateInput(req))
	record("create", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, response.Success(
		response.CodeProductCreated,
		"product created successfully",
		toProductResponse(p),
		productLinks(p.ID, "self", "update", "delete"),
	))
}

// Get handles GET /api/v1/products/:id.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  response.Envelope{data=productResponse}
// @Failure      400  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Failure      500  {object}  response.Envelope
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id := c.Param("id")

	p, err := h.service.Get(c.Request().Context(), id)
	record("get", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success(
		response.CodeProductFetched,
		"product fetched successfully",
		toProductResponse(p),
		productLinks(id, "self", "update", "delete"),
	))
}

// Update handles PUT /api/v1/products/:id. Omitted fields keep their value.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to overwrite"
// @Success      200   {object}  response.Envelope{data=productResponse}
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Failure      403   {object}  response.Envelope
// @Failure      500   {object}  response.Envelope
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id := c.Param("id")

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return &domain.ValidationError{Message: "invalid payload"}
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.service.Update(c.Request().Context(), id, toUpdateInput(req))
	record("update", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success(
		response.CodeProductUpdated,
		"product updated successfully",
		toProductResponse(p),
		productLinks(id, "self", "delete"),
	))
}

// Delete handles DELETE /api/v1/products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Failure      403  {object}  response.Envelope
// @Failure      500  {object}  response.Envelope
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id := c.Param("id")

	err := h.service.Delete(c.Request().Context(), id)
	record("delete", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success(
		response.CodeProductDeleted,
		"product deleted successfully",
		nil,
		response.Links{"products": productsPath},
	))
}

// List handles GET /api/v1/products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int     false  "Zero-based page"  default(0) minimum(0) maximum(1000000)
// @Param        size  query     int     false  "Page size"        default(10)
// @Param        sort  query     string  false  "Sort field"       default(id)
// @Success      200   {object}  response.Envelope{data=productPageResponse}
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Failure      500   {object}  response.Envelope
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	q := listProductsQuery{Page: 0, Size: service.DefaultPageSize, Sort: service.DefaultSort}
	if err := c.Bind(&q); err != nil {
		return &domain.ValidationError{Message: "invalid query parameters"}
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	page, err := h.service.List(c.Request().Context(), ports.ListProductsInput{Page: q.Page, Size: q.Size, Sort: q.Sort})
	record("list", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success(
		response.CodeProductFetched,
		"products fetched successfully",
		toPageResponse(page),
		listLinks(page, q.Sort),
	))
}

// Search handles GET /api/v1/products/search.
//
// @Summary      Search products by name or description
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        searchTerm  query     string  true   "Term to match"
// @Param        page        query     int     false  "Zero-based page"  default(0) minimum(0) maximum(1000000)
// @Param        size        query     int     false  "Page size"        default(10)
// @Success      200         {object}  response.Envelope{data=productPageResponse}
// @Failure      400         {object}  response.Envelope
// @Failure      401         {object}  response.Envelope
// @Failure      500         {object}  response.Envelope
// @Router       /products/search [get]
func (h *ProductHandler) Search(c echo.Context) error {
	q := searchProductsQuery{Page: 0, Size: service.DefaultPageSize}
	if err := c.Bind(&q); err != nil {
		return &domain.ValidationError{Message: "invalid query parameters"}
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	page, err := h.service.Search(c.Request().Context(), ports.SearchProductsInput{Term: q.SearchTerm, Page: q.Page, Size: q.Size})
	record("search", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success(
		response.CodeProductFetched,
		"search results fetched successfully",
		toPageResponse(page),
		searchLinks(page, q.SearchTerm),
	))
}

func record(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
		var pe *domain.ProductError
		if errors.As(err, &pe) {
			result = pe.Code
		}
	}
	metrics.ProductOperationsTotal.WithLabelValues(operation, result).Inc()
}
