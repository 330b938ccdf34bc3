package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/loopers/commerce-api/internal/order/domain"
	"github.com/loopers/commerce-api/internal/order/service"
	"github.com/loopers/commerce-api/internal/platform/web"
)

type OrderHandler struct {
	orderService service.OrderService
	auth         gin.HandlerFunc
}

func NewOrderHandler(os service.OrderService, auth gin.HandlerFunc) *OrderHandler {
	return &OrderHandler{orderService: os, auth: auth}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orderRoutes := router.Group("/orders", h.auth)
	{
		orderRoutes.POST("", h.CreateOrder)
		orderRoutes.GET("/:id", h.GetOrder)
		orderRoutes.POST("/:id/cancel", h.CancelOrder)
	}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req domain.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.RespondBadRequest(c, err)
		return
	}

	memberID, _ := web.MemberIDFrom(c)
	order, err := h.orderService.CreateOrder(c.Request.Context(), memberID, req)
	if err != nil {
		web.RespondError(c, "CreateOrder", err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := web.ParamID(c, "id")
	if !ok {
		return
	}
	memberID, _ := web.MemberIDFrom(c)
	order, err := h.orderService.GetOrder(c.Request.Context(), memberID, orderID)
	if err != nil {
		web.RespondError(c, "GetOrder", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	orderID, ok := web.ParamID(c, "id")
	if !ok {
		return
	}
	memberID, _ := web.MemberIDFrom(c)
	order, err := h.orderService.CancelOrder(c.Request.Context(), memberID, orderID)
	if err != nil {
		web.RespondError(c, "CancelOrder", err)
		return
	}
	c.JSON(http.StatusOK, order)
}
