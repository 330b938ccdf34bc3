package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/loopers/commerce-api/internal/brand/domain"
	"github.com/loopers/commerce-api/internal/brand/repository/mocks"
	"github.com/loopers/commerce-api/internal/brand/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newRouter(repo *mocks.MockBrandRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewBrandHandler(service.NewBrandService(repo)).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestBrandHandler(t *testing.T) {
	t.Run("Register returns 201", func(t *testing.T) {
		repo := new(mocks.MockBrandRepository)
		repo.On("CreateBrand", mock.Anything, mock.AnythingOfType("*domain.Brand")).Return(nil).Once()
		r := newRouter(repo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/brands", strings.NewReader(`{"name":"Loopers"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":7`)
	})

	t.Run("Blank name is a 400 with its code", func(t *testing.T) {
		r := newRouter(new(mocks.MockBrandRepository))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/brands", strings.NewReader(`{"name":""}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "brand.name.empty")
	})

	t.Run("Unknown brand is a 404", func(t *testing.T) {
		repo := new(mocks.MockBrandRepository)
		repo.On("GetBrandByID", mock.Anything, int64(9)).Return(nil, domain.ErrBrandNotFound).Once()
		r := newRouter(repo)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/brands/9", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "brand.not-found")
	})

	t.Run("Non-numeric id is a 400", func(t *testing.T) {
		r := newRouter(new(mocks.MockBrandRepository))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/brands/abc", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "request.id.invalid")
	})
}
