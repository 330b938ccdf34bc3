package mocks

import (
	"context"

	"github.com/loopers/commerce-api/internal/like/domain"
	"github.com/stretchr/testify/mock"
)

type MockLikeService struct {
	mock.Mock
}

func (m *MockLikeService) Like(ctx context.Context, memberID, productID int64) (*domain.Like, error) {
	args := m.Called(ctx, memberID, productID)
	if l := args.Get(0); l != nil {
		return l.(*domain.Like), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLikeService) Unlike(ctx context.Context, memberID, productID int64) error {
	args := m.Called(ctx, memberID, productID)
	return args.Error(0)
}
