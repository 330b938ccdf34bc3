package mocks

import (
	"context"

	"github.com/loopers/commerce-api/internal/member/domain"
	"github.com/stretchr/testify/mock"
)

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) CreateMember(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	if member != nil && args.Error(0) == nil {
		member.ID = 42
	}
	return args.Error(0)
}

func (m *MockMemberRepository) ExistsByLoginID(ctx context.Context, loginID string) (bool, error) {
	args := m.Called(ctx, loginID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberRepository) GetMemberByLoginID(ctx context.Context, loginID string) (*domain.Member, error) {
	args := m.Called(ctx, loginID)
	if mem := args.Get(0); mem != nil {
		return mem.(*domain.Member), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMemberRepository) GetMemberByID(ctx context.Context, id int64) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if mem := args.Get(0); mem != nil {
		return mem.(*domain.Member), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMemberRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}
