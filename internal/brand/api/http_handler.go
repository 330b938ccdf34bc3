package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/loopers/commerce-api/internal/brand/domain"
	"github.com/loopers/commerce-api/internal/brand/service"
	"github.com/loopers/commerce-api/internal/platform/web"
)

type BrandHandler struct {
	brandService service.BrandService
}

func NewBrandHandler(bs service.BrandService) *BrandHandler {
	return &BrandHandler{brandService: bs}
}

func (h *BrandHandler) RegisterRoutes(router *gin.RouterGroup) {
	brandRoutes := router.Group("/brands")
	{
		brandRoutes.POST("", h.RegisterBrand)
		brandRoutes.GET("", h.ListBrands)
		brandRoutes.GET("/:id", h.GetBrand)
	}
}

func (h *BrandHandler) RegisterBrand(c *gin.Context) {
	var req domain.RegisterBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.RespondBadRequest(c, err)
		return
	}
	brand, err := h.brandService.RegisterBrand(c.Request.Context(), req)
	if err != nil {
		web.RespondError(c, "RegisterBrand", err)
		return
	}
	c.JSON(http.StatusCreated, brand)
}

func (h *BrandHandler) ListBrands(c *gin.Context) {
	brands, err := h.brandService.ListBrands(c.Request.Context())
	if err != nil {
		web.RespondError(c, "ListBrands", err)
		return
	}
	c.JSON(http.StatusOK, brands)
}

func (h *BrandHandler) GetBrand(c *gin.Context) {
	id, ok := web.ParamID(c, "id")
	if !ok {
		return
	}
	brand, err := h.brandService.GetBrand(c.Request.Context(), id)
	if err != nil {
		web.RespondError(c, "GetBrand", err)
		return
	}
	c.JSON(http.StatusOK, brand)
}
