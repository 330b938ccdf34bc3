package service

import (
	"context"
	"errors"
	"testing"

	"github.com/loopers/commerce-api/internal/brand/domain"
	"github.com/loopers/commerce-api/internal/brand/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBrandService_RegisterBrand(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful registration", func(t *testing.T) {
		repo := new(mocks.MockBrandRepository)
		svc := NewBrandService(repo)
		repo.On("CreateBrand", ctx, mock.MatchedBy(func(b *domain.Brand) bool {
			return b.Name == "Loopers"
		})).Return(nil).Once()

		brand, err := svc.RegisterBrand(ctx, domain.RegisterBrandRequest{Name: "Loopers"})
		require.NoError(t, err)
		assert.Equal(t, int64(7), brand.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Blank name never reaches the repository", func(t *testing.T) {
		repo := new(mocks.MockBrandRepository)
		svc := NewBrandService(repo)

		_, err := svc.RegisterBrand(ctx, domain.RegisterBrandRequest{Name: " "})
		assert.ErrorIs(t, err, domain.ErrBrandNameEmpty)
		repo.AssertNotCalled(t, "CreateBrand", mock.Anything, mock.Anything)
	})

	t.Run("Repository failure is returned", func(t *testing.T) {
		repo := new(mocks.MockBrandRepository)
		svc := NewBrandService(repo)
		dbErr := errors.New("db down")
		repo.On("CreateBrand", ctx, mock.AnythingOfType("*domain.Brand")).Return(dbErr).Once()

		_, err := svc.RegisterBrand(ctx, domain.RegisterBrandRequest{Name: "Loopers"})
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestBrandService_GetBrand(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockBrandRepository)
	svc := NewBrandService(repo)

	repo.On("GetBrandByID", ctx, int64(1)).Return(&domain.Brand{ID: 1, Name: "Loopers"}, nil).Once()
	repo.On("GetBrandByID", ctx, int64(2)).Return(nil, domain.ErrBrandNotFound).Once()

	b, err := svc.GetBrand(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Loopers", b.Name)

	_, err = svc.GetBrand(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrBrandNotFound)
	repo.AssertExpectations(t)
}
