package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/loopers/commerce-api/internal/member/domain"
	"github.com/loopers/commerce-api/internal/member/repository"
	"github.com/loopers/commerce-api/internal/platform/config"
	"github.com/loopers/commerce-api/internal/platform/events"
	"github.com/loopers/commerce-api/internal/platform/logger"
	"golang.org/x/crypto/bcrypt"
)

type MemberService interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.Member, error)
	Authenticate(ctx context.Context, loginID, password string) (*domain.Member, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	// ParseToken returns the member id carried by a token issued by Login.
	ParseToken(tokenString string) (int64, error)
	GetMember(ctx context.Context, id int64) (*domain.Member, error)
	ChangePassword(ctx context.Context, memberID int64, req domain.ChangePasswordRequest) error
}

type memberClaims struct {
	MemberID int64  `json:"member_id"`
	LoginID  string `json:"login_id"`
	jwt.RegisteredClaims
}

type memberServiceImpl struct {
	repo       repository.MemberRepository
	publisher  events.Publisher
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
}

func NewMemberService(repo repository.MemberRepository, publisher events.Publisher, auth config.AuthConfig) MemberService {
	return &memberServiceImpl{
		repo:       repo,
		publisher:  publisher,
		secret:     auth.JWTSecret,
		tokenTTL:   auth.TokenTTL,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

func (s *memberServiceImpl) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Member, error) {
	birthDate, err := domain.ParseBirthDate(req.BirthDate, s.now())
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateRawPassword(req.Password, birthDate); err != nil {
		return nil, err
	}
	// Identity fields are validated before paying for bcrypt.
	member, err := domain.NewMember(req.LoginID, "", req.Name, birthDate, req.Email)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByLoginID(ctx, member.LoginID)
	if err != nil {
		return nil, fmt.Errorf("could not check login id: %w", err)
	}
	if exists {
		return nil, domain.ErrLoginIDDuplicate
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		logger.Error("Register: failed to hash password", err)
		return nil, fmt.Errorf("could not process registration: %w", err)
	}
	member.PasswordHash = string(hashed)

	if err := s.repo.CreateMember(ctx, member); err != nil {
		if errors.Is(err, domain.ErrLoginIDDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("could not save member: %w", err)
	}

	events.Notify(ctx, s.publisher, events.New(events.MemberRegistered, member.ID, map[string]interface{}{
		"login_id": member.LoginID,
	}))
	return member, nil
}

// Authenticate does not reveal whether the login id or the password was wrong.
func (s *memberServiceImpl) Authenticate(ctx context.Context, loginID, password string) (*domain.Member, error) {
	member, err := s.repo.GetMemberByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return member, nil
}

func (s *memberServiceImpl) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	member, err := s.Authenticate(ctx, req.LoginID, req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	claims := memberClaims{
		MemberID: member.ID,
		LoginID:  member.LoginID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(member.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		logger.Error("Login: failed to sign token", err)
		return nil, fmt.Errorf("could not generate token: %w", err)
	}

	return &domain.LoginResponse{
		Member: member.Response(),
		Token:  tokenString,
	}, nil
}

func (s *memberServiceImpl) ParseToken(tokenString string) (int64, error) {
	claims := &memberClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid || claims.MemberID <= 0 {
		return 0, domain.ErrTokenInvalid
	}
	return claims.MemberID, nil
}

func (s *memberServiceImpl) GetMember(ctx context.Context, id int64) (*domain.Member, error) {
	return s.repo.GetMemberByID(ctx, id)
}

func (s *memberServiceImpl) ChangePassword(ctx context.Context, memberID int64, req domain.ChangePasswordRequest) error {
	member, err := s.repo.GetMemberByID(ctx, memberID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return domain.ErrPasswordMismatch
	}
	if req.CurrentPassword == req.NewPassword {
		return domain.ErrPasswordSameAsCurrent
	}
	if err := domain.ValidateRawPassword(req.NewPassword, member.BirthDate); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost)
	if err != nil {
		logger.Error("ChangePassword: failed to hash password", err)
		return fmt.Errorf("could not process password change: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, member.ID, string(hashed)); err != nil {
		return err
	}

	events.Notify(ctx, s.publisher, events.New(events.MemberPasswordChanged, member.ID, nil))
	return nil
}
