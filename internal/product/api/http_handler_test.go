package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/loopers/commerce-api/internal/product/domain"
	"github.com/loopers/commerce-api/internal/product/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRouter(svc *mocks.MockProductService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewProductHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestProductHandler_ListProducts(t *testing.T) {
	svc := new(mocks.MockProductService)
	svc.On("ListProducts", mock.Anything, domain.SortPriceAsc).Return([]domain.Product{{ID: 1, Name: "Cap", Price: 100}}, nil).Once()
	svc.On("ListProducts", mock.Anything, domain.SortLatest).Return([]domain.Product{}, nil).Once()
	r := newRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products?sort=price_asc", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var products []domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Len(t, products, 1)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products?sort=bogus", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestProductHandler_GetProduct(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		svc := new(mocks.MockProductService)
		svc.On("GetProductDetails", mock.Anything, int64(3)).Return(&domain.ProductDetail{
			Product: domain.Product{ID: 3, Name: "Cap", Version: 4},
			Brand:   domain.BrandSummary{ID: 1, Name: "Loopers"},
		}, nil).Once()

		w := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/3", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"brand":{"id":1,"name":"Loopers"}`)
		assert.NotContains(t, w.Body.String(), "version")
	})

	t.Run("Not found", func(t *testing.T) {
		svc := new(mocks.MockProductService)
		svc.On("GetProductDetails", mock.Anything, int64(8)).Return(nil, domain.ErrProductNotFound).Once()

		w := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/8", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "product.not-found")
	})
}

func TestProductHandler_RegisterProduct(t *testing.T) {
	t.Run("Missing brand id is rejected by binding", func(t *testing.T) {
		svc := new(mocks.MockProductService)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"name":"Cap","price":100,"stock":1}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "RegisterProduct", mock.Anything, mock.Anything)
	})

	t.Run("Domain validation surfaces its code", func(t *testing.T) {
		svc := new(mocks.MockProductService)
		svc.On("RegisterProduct", mock.Anything, mock.AnythingOfType("domain.RegisterProductRequest")).Return(nil, domain.ErrStockNegative).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"name":"Cap","price":100,"stock":-1,"brand_id":1}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "product.stock.negative")
	})

	t.Run("Created", func(t *testing.T) {
		svc := new(mocks.MockProductService)
		svc.On("RegisterProduct", mock.Anything, domain.RegisterProductRequest{Name: "Cap", Price: 100, Stock: 1, BrandID: 1}).
			Return(&domain.Product{ID: 11, Name: "Cap", Price: 100, Stock: 1, BrandID: 1}, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"name":"Cap","price":100,"stock":1,"brand_id":1}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":11`)
	})
}
