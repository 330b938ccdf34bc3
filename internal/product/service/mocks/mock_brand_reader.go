package mocks

import (
	"context"

	"github.com/loopers/commerce-api/internal/product/domain"
	"github.com/stretchr/testify/mock"
)

type MockBrandReader struct {
	mock.Mock
}

func (m *MockBrandReader) GetBrandSummary(ctx context.Context, brandID int64) (*domain.BrandSummary, error) {
	args := m.Called(ctx, brandID)
	if b := args.Get(0); b != nil {
		return b.(*domain.BrandSummary), args.Error(1)
	}
	return nil, args.Error(1)
}
