package domain

import (
	"time"

	"github.com/loopers/commerce-api/internal/platform/apperror"
)

var (
	ErrAlreadyLiked = apperror.Conflict("like.already-liked", "product is already liked")
	ErrLikeNotFound = apperror.NotFound("like.not-found", "like does not exist")
)

// Like is unique per (MemberID, ProductID); the database enforces it.
type Like struct {
	ID        int64     `json:"id"`
	MemberID  int64     `json:"member_id"`
	ProductID int64     `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

func NewLike(memberID, productID int64) *Like {
	return &Like{MemberID: memberID, ProductID: productID}
}
