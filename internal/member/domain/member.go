package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/loopers/commerce-api/internal/platform/apperror"
)

// BirthDateLayout is the yyyyMMdd form used on the wire and in password checks.
const BirthDateLayout = "20060102"

var (
	ErrLoginIDEmpty           = apperror.Validation("member.login-id.empty", "login id must not be blank")
	ErrLoginIDInvalidFormat   = apperror.Validation("member.login-id.invalid-format", "login id may contain only letters and digits")
	ErrLoginIDDuplicate       = apperror.Conflict("member.login-id.duplicate", "login id is already taken")
	ErrPasswordTooShort       = apperror.Validation("member.password.too-short", "password must be at least 8 characters")
	ErrPasswordTooLong        = apperror.Validation("member.password.too-long", "password must be at most 16 characters")
	ErrPasswordInvalidFormat  = apperror.Validation("member.password.invalid-format", "password may contain only letters, digits and symbols")
	ErrPasswordHasBirthDate   = apperror.Validation("member.password.contains-birth-date", "password must not contain the birth date")
	ErrPasswordMismatch       = apperror.Unauthorized("member.password.mismatch", "password does not match")
	ErrPasswordSameAsCurrent  = apperror.Validation("member.password.same-as-current", "new password must differ from the current one")
	ErrNameEmpty              = apperror.Validation("member.name.empty", "name must not be blank")
	ErrEmailEmpty             = apperror.Validation("member.email.empty", "email must not be blank")
	ErrEmailInvalidFormat     = apperror.Validation("member.email.invalid-format", "email format is invalid")
	ErrBirthDateEmpty         = apperror.Validation("member.birth-date.empty", "birth date must not be blank")
	ErrBirthDateInvalidFormat = apperror.Validation("member.birth-date.invalid-format", "birth date must be formatted as yyyyMMdd")
	ErrBirthDateFuture        = apperror.Validation("member.birth-date.future", "birth date must not be in the future")
	ErrMemberNotFound         = apperror.NotFound("member.not-found", "member not found")
	ErrInvalidCredentials     = apperror.Unauthorized("member.auth.invalid-credentials", "invalid login id or password")
	ErrLoginIDHeaderMissing   = apperror.Unauthorized("member.auth.login-id-missing", "login id header is required")
	ErrPasswordHeaderMissing  = apperror.Unauthorized("member.auth.password-missing", "password header is required")
	ErrTokenInvalid           = apperror.Unauthorized("member.auth.token-invalid", "token is invalid or expired")
)

var (
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	passwordPattern = regexp.MustCompile(`^[A-Za-z0-9!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]+$`)
	loginIDPattern  = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

type Member struct {
	ID           int64     `json:"id"`
	LoginID      string    `json:"login_id"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	BirthDate    time.Time `json:"-"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewMember validates identity fields. The password must already be checked
// with ValidateRawPassword and hashed by the caller.
func NewMember(loginID, passwordHash, name string, birthDate time.Time, email string) (*Member, error) {
	if strings.TrimSpace(loginID) == "" {
		return nil, ErrLoginIDEmpty
	}
	if !loginIDPattern.MatchString(loginID) {
		return nil, ErrLoginIDInvalidFormat
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameEmpty
	}
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmailEmpty
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrEmailInvalidFormat
	}
	return &Member{
		LoginID:      loginID,
		PasswordHash: passwordHash,
		Name:         name,
		BirthDate:    birthDate,
		Email:        email,
	}, nil
}

// ParseBirthDate accepts yyyyMMdd and rejects dates after today.
func ParseBirthDate(s string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, ErrBirthDateEmpty
	}
	d, err := time.Parse(BirthDateLayout, s)
	if err != nil {
		return time.Time{}, ErrBirthDateInvalidFormat
	}
	y, m, day := now.Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	if d.After(today) {
		return time.Time{}, ErrBirthDateFuture
	}
	return d, nil
}

func FormatBirthDate(d time.Time) string {
	return d.Format(BirthDateLayout)
}

func ValidateRawPassword(password string, birthDate time.Time) error {
	n := utf8.RuneCountInString(password)
	if n < 8 {
		return ErrPasswordTooShort
	}
	if n > 16 {
		return ErrPasswordTooLong
	}
	if !passwordPattern.MatchString(password) {
		return ErrPasswordInvalidFormat
	}
	if strings.Contains(password, FormatBirthDate(birthDate)) {
		return ErrPasswordHasBirthDate
	}
	return nil
}

// MaskedName replaces the last character with '*'.
func (m *Member) MaskedName() string {
	r := []rune(m.Name)
	if len(r) == 0 {
		return m.Name
	}
	return string(r[:len(r)-1]) + "*"
}

type RegisterRequest struct {
	LoginID   string `json:"login_id" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	Email     string `json:"email"`
}

type LoginRequest struct {
	LoginID  string `json:"login_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

type MemberResponse struct {
	ID        int64  `json:"id"`
	LoginID   string `json:"login_id"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	Email     string `json:"email"`
}

type LoginResponse struct {
	Member MemberResponse `json:"member"`
	Token  string         `json:"token"`
}

func (m *Member) Response() MemberResponse {
	return MemberResponse{
		ID:        m.ID,
		LoginID:   m.LoginID,
		Name:      m.Name,
		BirthDate: FormatBirthDate(m.BirthDate),
		Email:     m.Email,
	}
}

// MaskedResponse is what a member sees about themselves on /me.
func (m *Member) MaskedResponse() MemberResponse {
	r := m.Response()
	r.Name = m.MaskedName()
	return r
}
