package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/loopers/commerce-api/internal/member/domain"
	"github.com/loopers/commerce-api/internal/member/service"
	"github.com/loopers/commerce-api/internal/platform/web"
)

type MemberHandler struct {
	memberService service.MemberService
	auth          gin.HandlerFunc
}

func NewMemberHandler(ms service.MemberService, auth gin.HandlerFunc) *MemberHandler {
	return &MemberHandler{memberService: ms, auth: auth}
}

func (h *MemberHandler) RegisterRoutes(router *gin.RouterGroup) {
	memberRoutes := router.Group("/members")
	{
		memberRoutes.POST("/register", h.Register)
		memberRoutes.POST("/login", h.Login)
		memberRoutes.GET("/me", h.auth, h.Me)
		memberRoutes.PUT("/password", h.auth, h.ChangePassword)
	}
}

func (h *MemberHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.RespondBadRequest(c, err)
		return
	}

	member, err := h.memberService.Register(c.Request.Context(), req)
	if err != nil {
		web.RespondError(c, "Register", err)
		return
	}
	c.JSON(http.StatusCreated, member.Response())
}

func (h *MemberHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.RespondBadRequest(c, err)
		return
	}

	response, err := h.memberService.Login(c.Request.Context(), req)
	if err != nil {
		web.RespondError(c, "Login", err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) Me(c *gin.Context) {
	memberID, _ := web.MemberIDFrom(c)
	member, err := h.memberService.GetMember(c.Request.Context(), memberID)
	if err != nil {
		web.RespondError(c, "Me", err)
		return
	}
	c.JSON(http.StatusOK, member.MaskedResponse())
}

func (h *MemberHandler) ChangePassword(c *gin.Context) {
	var req domain.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.RespondBadRequest(c, err)
		return
	}

	memberID, _ := web.MemberIDFrom(c)
	if err := h.memberService.ChangePassword(c.Request.Context(), memberID, req); err != nil {
		web.RespondError(c, "ChangePassword", err)
		return
	}
	c.Status(http.StatusNoContent)
}
