package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/newmandigital/catalog/internal/adapters/http/handlers"
	"github.com/newmandigital/catalog/internal/core/domain"
	"github.com/newmandigital/catalog/internal/core/dto"
	"github.com/newmandigital/catalog/internal/core/service"
	"github.com/newmandigital/catalog/internal/core/serviceerrors"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type ProductController struct {
	productService *service.ProductService
}

type MoneyResponse struct {
	Amount   string `json:"amount" example:"100.00"`
	Currency string `json:"currency" example:"USD"`
}

type ProductResponse struct {
	ID          string        `json:"id" example:"3f0e4c1a-8a4e-4a55-9f3c-0f1f3b8f5a10"`
	Name        string        `json:"name" example:"Widget"`
	Description string        `json:"description" example:"A fine widget"`
	Price       MoneyResponse `json:"price"`
	Stock       int           `json:"stock" example:"10"`
}

type ProductListResponse struct {
	Items  []ProductResponse `json:"items"`
	Limit  int64             `json:"limit" example:"50"`
	Offset int64             `json:"offset" example:"0"`
}

func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID().String(),
		Name:        product.Name(),
		Description: product.Description(),
		Price: MoneyResponse{
			Amount:   product.Price().AmountString(),
			Currency: product.Price().Currency().String(),
		},
		Stock: product.Stock(),
	}
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

func bindJSON(c *gin.Context, target any) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return false
	}
	return true
}

func productIDParam(c *gin.Context) (domain.ProductID, bool) {
	id, err := domain.ParseProductID(c.Param("id"))
	if err != nil {
		handlers.HandleError(c, err)
		return domain.ProductID{}, false
	}
	return id, true
}

// CreateProduct godoc
// @Summary     Create a product
// @Description Creates a product with an optional initial stock receipt. Repeating a request with the same Idempotency-Key returns the first result.
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header   string                   false "Idempotency key"
// @Param       request         body     dto.CreateProductRequest true  "Product data"
// @Success     201             {object} ProductResponse
// @Failure     400             {object} handlers.ErrorResponse
// @Failure     409             {object} handlers.ErrorResponse
// @Failure     422             {object} handlers.ErrorResponse
// @Failure     429             {object} handlers.ErrorResponse
// @Failure     500             {object} handlers.ErrorResponse
// @Router      /api/v1/products [post]
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var request dto.CreateProductRequest
	if !bindJSON(c, &request) {
		return
	}

	product, err := pc.productService.CreateProduct(c.Request.Context(), c.GetHeader(IdempotencyKeyHeader), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/products/"+product.ID().String())
	c.JSON(http.StatusCreated, NewProductResponse(product))
}

// GetByID godoc
// @Summary     Get a product
// @Tags        products
// @Produce     json
// @Param       id  path     string true "Product ID"
// @Success     200 {object} ProductResponse
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/v1/products/{id} [get]
func (pc *ProductController) GetByID(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	product, err := pc.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewProductResponse(product))
}

// GetAll godoc
// @Summary     List products
// @Description Returns a page of products in creation order
// @Tags        products
// @Produce     json
// @Param       limit  query    int false "Page size (default 50, max 200)"
// @Param       offset query    int false "Number of products to skip"
// @Success     200    {object} ProductListResponse
// @Failure     400    {object} handlers.ErrorResponse
// @Failure     500    {object} handlers.ErrorResponse
// @Router      /api/v1/products [get]
func (pc *ProductController) GetAll(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	products, err := pc.productService.GetAll(c.Request.Context(), limit, offset)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	items := make([]ProductResponse, len(products))
	for i, product := range products {
		items[i] = NewProductResponse(product)
	}

	c.JSON(http.StatusOK, ProductListResponse{
		Items:  items,
		Limit:  service.PageLimit(limit),
		Offset: offset,
	})
}

// UpdateDetails godoc
// @Summary     Update product details
// @Description Replaces name, description and price. Stock is left untouched.
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       id      path     string                   true "Product ID"
// @Param       request body     dto.UpdateProductRequest true "New details"
// @Success     200     {object} ProductResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     404     {object} handlers.ErrorResponse
// @Failure     500     {object} handlers.ErrorResponse
// @Router      /api/v1/products/{id} [put]
func (pc *ProductController) UpdateDetails(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	var request dto.UpdateProductRequest
	if !bindJSON(c, &request) {
		return
	}

	product, err := pc.productService.UpdateDetails(c.Request.Context(), id, &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewProductResponse(product))
}

// AdjustStock godoc
// @Summary     Adjust stock
// @Description Applies a receipt (positive delta) or a sale (negative delta)
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       id      path     string                 true "Product ID"
// @Param       request body     dto.AdjustStockRequest true "Stock delta"
// @Success     200     {object} ProductResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     404     {object} handlers.ErrorResponse
// @Failure     422     {object} handlers.ErrorResponse
// @Failure     429     {object} handlers.ErrorResponse
// @Failure     500     {object} handlers.ErrorResponse
// @Router      /api/v1/products/{id}/stock [post]
func (pc *ProductController) AdjustStock(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	var request dto.AdjustStockRequest
	if !bindJSON(c, &request) {
		return
	}

	product, err := pc.productService.AdjustStock(c.Request.Context(), id, *request.Delta)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewProductResponse(product))
}

// Delete godoc
// @Summary     Delete a product
// @Tags        products
// @Param       id  path string true "Product ID"
// @Success     204
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/v1/products/{id} [delete]
func (pc *ProductController) Delete(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	if err := pc.productService.Delete(c.Request.Context(), id); err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func queryInt(c *gin.Context, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, serviceerrors.NewInvalidRequestErrorf("%s must be an integer, got %q", name, raw)
	}
	return v, nil
}
