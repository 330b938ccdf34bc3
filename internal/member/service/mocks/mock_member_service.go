package mocks

import (
	"context"

	"github.com/loopers/commerce-api/internal/member/domain"
	"github.com/stretchr/testify/mock"
)

type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Member, error) {
	args := m.Called(ctx, req)
	if mem := args.Get(0); mem != nil {
		return mem.(*domain.Member), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMemberService) Authenticate(ctx context.Context, loginID, password string) (*domain.Member, error) {
	args := m.Called(ctx, loginID, password)
	if mem := args.Get(0); mem != nil {
		return mem.(*domain.Member), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMemberService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*domain.LoginResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMemberService) ParseToken(tokenString string) (int64, error) {
	args := m.Called(tokenString)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMemberService) GetMember(ctx context.Context, id int64) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if mem := args.Get(0); mem != nil {
		return mem.(*domain.Member), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMemberService) ChangePassword(ctx context.Context, memberID int64, req domain.ChangePasswordRequest) error {
	args := m.Called(ctx, memberID, req)
	return args.Error(0)
}
