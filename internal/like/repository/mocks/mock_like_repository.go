package mocks

import (
	"context"

	"github.com/loopers/commerce-api/internal/like/domain"
	"github.com/loopers/commerce-api/internal/platform/database"
	"github.com/stretchr/testify/mock"
)

type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) ExistsLike(ctx context.Context, dbops database.DBTX, memberID, productID int64) (bool, error) {
	args := m.Called(ctx, dbops, memberID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) CreateLike(ctx context.Context, dbops database.DBTX, like *domain.Like) error {
	args := m.Called(ctx, dbops, like)
	if like != nil && args.Error(0) == nil {
		like.ID = 301
	}
	return args.Error(0)
}

func (m *MockLikeRepository) GetLike(ctx context.Context, dbops database.DBTX, memberID, productID int64) (*domain.Like, error) {
	args := m.Called(ctx, dbops, memberID, productID)
	if l := args.Get(0); l != nil {
		return l.(*domain.Like), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLikeRepository) DeleteLike(ctx context.Context, dbops database.DBTX, likeID int64) error {
	args := m.Called(ctx, dbops, likeID)
	return args.Error(0)
}

func (m *MockLikeRepository) ListDriftedProductIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if ids := args.Get(0); ids != nil {
		return ids.([]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLikeRepository) CountLikes(ctx context.Context, dbops database.DBTX, productID int64) (int, error) {
	args := m.Called(ctx, dbops, productID)
	return args.Int(0), args.Error(1)
}
