package domain

import (
	"strings"
	"time"

	"github.com/loopers/commerce-api/internal/platform/apperror"
)

var (
	ErrBrandNameEmpty = apperror.Validation("brand.name.empty", "brand name must not be blank")
	ErrBrandNotFound  = apperror.NotFound("brand.not-found", "brand not found")
)

type Brand struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewBrand(name, description string) (*Brand, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrBrandNameEmpty
	}
	return &Brand{Name: name, Description: description}, nil
}

type RegisterBrandRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
