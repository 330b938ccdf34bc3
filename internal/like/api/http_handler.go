package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/loopers/commerce-api/internal/like/service"
	"github.com/loopers/commerce-api/internal/platform/web"
)

type LikeHandler struct {
	likeService service.LikeService
	auth        gin.HandlerFunc
}

func NewLikeHandler(ls service.LikeService, auth gin.HandlerFunc) *LikeHandler {
	return &LikeHandler{likeService: ls, auth: auth}
}

func (h *LikeHandler) RegisterRoutes(router *gin.RouterGroup) {
	likeRoutes := router.Group("/products/:id/likes", h.auth)
	{
		likeRoutes.POST("", h.Like)
		likeRoutes.DELETE("", h.Unlike)
	}
}

func (h *LikeHandler) Like(c *gin.Context) {
	productID, ok := web.ParamID(c, "id")
	if !ok {
		return
	}
	memberID, _ := web.MemberIDFrom(c)
	like, err := h.likeService.Like(c.Request.Context(), memberID, productID)
	if err != nil {
		web.RespondError(c, "Like", err)
		return
	}
	c.JSON(http.StatusCreated, like)
}

func (h *LikeHandler) Unlike(c *gin.Context) {
	productID, ok := web.ParamID(c, "id")
	if !ok {
		return
	}
	memberID, _ := web.MemberIDFrom(c)
	if err := h.likeService.Unlike(c.Request.Context(), memberID, productID); err != nil {
		web.RespondError(c, "Unlike", err)
		return
	}
	c.Status(http.StatusNoContent)
}
