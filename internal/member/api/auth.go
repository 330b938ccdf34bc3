package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/loopers/commerce-api/internal/member/domain"
	"github.com/loopers/commerce-api/internal/member/service"
	"github.com/loopers/commerce-api/internal/platform/web"
)

const (
	HeaderLoginID = "X-Loopers-LoginId"
	HeaderLoginPw = "X-Loopers-LoginPw"
)

// RequireMember resolves the caller from a bearer token, or from the login
// header pair when no Authorization header is sent.
func RequireMember(ms service.MemberService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authz := c.GetHeader("Authorization"); authz != "" {
			tokenString, found := strings.CutPrefix(authz, "Bearer ")
			if !found {
				abort(c, domain.ErrTokenInvalid)
				return
			}
			id, err := ms.ParseToken(strings.TrimSpace(tokenString))
			if err != nil {
				abort(c, err)
				return
			}
			web.SetMemberID(c, id)
			c.Next()
			return
		}

		loginID := c.GetHeader(HeaderLoginID)
		if loginID == "" {
			abort(c, domain.ErrLoginIDHeaderMissing)
			return
		}
		password := c.GetHeader(HeaderLoginPw)
		if password == "" {
			abort(c, domain.ErrPasswordHeaderMissing)
			return
		}
		member, err := ms.Authenticate(c.Request.Context(), loginID, password)
		if err != nil {
			abort(c, err)
			return
		}
		web.SetMemberID(c, member.ID)
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	web.RespondError(c, "RequireMember", err)
	c.Abort()
}
