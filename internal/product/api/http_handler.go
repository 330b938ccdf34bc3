package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/loopers/commerce-api/internal/platform/web"
	"github.com/loopers/commerce-api/internal/product/domain"
	"github.com/loopers/commerce-api/internal/product/service"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(ps service.ProductService) *ProductHandler {
	return &ProductHandler{productService: ps}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	productRoutes := router.Group("/products")
	{
		productRoutes.POST("", h.RegisterProduct)
		productRoutes.GET("", h.ListProducts)
		productRoutes.GET("/:id", h.GetProduct)
	}
}

func (h *ProductHandler) RegisterProduct(c *gin.Context) {
	var req domain.RegisterProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.RespondBadRequest(c, err)
		return
	}
	product, err := h.productService.RegisterProduct(c.Request.Context(), req)
	if err != nil {
		web.RespondError(c, "RegisterProduct", err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	sort := domain.ParseSortType(c.Query("sort"))
	products, err := h.productService.ListProducts(c.Request.Context(), sort)
	if err != nil {
		web.RespondError(c, "ListProducts", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := web.ParamID(c, "id")
	if !ok {
		return
	}
	detail, err := h.productService.GetProductDetails(c.Request.Context(), id)
	if err != nil {
		web.RespondError(c, "GetProduct", err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
