package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/loopers/commerce-api/internal/member/domain"
	"github.com/loopers/commerce-api/internal/member/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newRouter(ms *mocks.MockMemberService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewMemberHandler(ms, RequireMember(ms)).RegisterRoutes(r.Group("/api/v1"))
	return r
}

var kim = &domain.Member{
	ID:        42,
	LoginID:   "looper01",
	Name:      "Kim",
	BirthDate: time.Date(1995, 3, 15, 0, 0, 0, 0, time.UTC),
	Email:     "kim@loopers.io",
}

func TestMemberHandler_Register(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		ms := new(mocks.MockMemberService)
		ms.On("Register", mock.Anything, mock.AnythingOfType("domain.RegisterRequest")).Return(kim, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/members/register",
			strings.NewReader(`{"login_id":"looper01","password":"Passw0rd!","name":"Kim","birth_date":"19950315","email":"kim@loopers.io"}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(ms).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"birth_date":"19950315"`)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("Duplicate is a 409", func(t *testing.T) {
		ms := new(mocks.MockMemberService)
		ms.On("Register", mock.Anything, mock.Anything).Return(nil, domain.ErrLoginIDDuplicate).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/members/register",
			strings.NewReader(`{"login_id":"looper01","password":"Passw0rd!"}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(ms).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "member.login-id.duplicate")
	})
}

func TestMemberHandler_Me(t *testing.T) {
	t.Run("Header pair authenticates and name is masked", func(t *testing.T) {
		ms := new(mocks.MockMemberService)
		ms.On("Authenticate", mock.Anything, "looper01", "Passw0rd!").Return(kim, nil).Once()
		ms.On("GetMember", mock.Anything, int64(42)).Return(kim, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/members/me", nil)
		req.Header.Set(HeaderLoginID, "looper01")
		req.Header.Set(HeaderLoginPw, "Passw0rd!")
		newRouter(ms).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Ki*"`)
		ms.AssertExpectations(t)
	})

	t.Run("Bearer token authenticates", func(t *testing.T) {
		ms := new(mocks.MockMemberService)
		ms.On("ParseToken", "good-token").Return(int64(42), nil).Once()
		ms.On("GetMember", mock.Anything, int64(42)).Return(kim, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/members/me", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		newRouter(ms).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		ms.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything, mock.Anything)
	})

	cases := []struct {
		name     string
		headers  map[string]string
		wantCode string
	}{
		{"No credentials", nil, "member.auth.login-id-missing"},
		{"Password header missing", map[string]string{HeaderLoginID: "looper01"}, "member.auth.password-missing"},
		{"Non-bearer authorization", map[string]string{"Authorization": "Basic abc"}, "member.auth.token-invalid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ms := new(mocks.MockMemberService)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/members/me", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			newRouter(ms).ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tc.wantCode)
			ms.AssertNotCalled(t, "GetMember", mock.Anything, mock.Anything)
		})
	}

	t.Run("Wrong password is a 401", func(t *testing.T) {
		ms := new(mocks.MockMemberService)
		ms.On("Authenticate", mock.Anything, "looper01", "bad").Return(nil, domain.ErrInvalidCredentials).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/members/me", nil)
		req.Header.Set(HeaderLoginID, "looper01")
		req.Header.Set(HeaderLoginPw, "bad")
		newRouter(ms).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestMemberHandler_ChangePassword(t *testing.T) {
	ms := new(mocks.MockMemberService)
	ms.On("ParseToken", "tok").Return(int64(42), nil)
	ms.On("ChangePassword", mock.Anything, int64(42), domain.ChangePasswordRequest{CurrentPassword: "Passw0rd!", NewPassword: "Passw0rd!"}).
		Return(domain.ErrPasswordSameAsCurrent).Once()
	ms.On("ChangePassword", mock.Anything, int64(42), domain.ChangePasswordRequest{CurrentPassword: "Passw0rd!", NewPassword: "NewPassw0rd!"}).
		Return(nil).Once()
	r := newRouter(ms)

	send := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/v1/members/password", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer tok")
		r.ServeHTTP(w, req)
		return w
	}

	w := send(`{"current_password":"Passw0rd!","new_password":"Passw0rd!"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "member.password.same-as-current")

	w = send(`{"current_password":"Passw0rd!","new_password":"NewPassw0rd!"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)
	ms.AssertExpectations(t)
}
