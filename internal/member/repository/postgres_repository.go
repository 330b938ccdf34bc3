package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/loopers/commerce-api/internal/member/domain"
	"github.com/loopers/commerce-api/internal/platform/database"
	"github.com/loopers/commerce-api/internal/platform/logger"
)

type MemberRepository interface {
	CreateMember(ctx context.Context, member *domain.Member) error
	ExistsByLoginID(ctx context.Context, loginID string) (bool, error)
	GetMemberByLoginID(ctx context.Context, loginID string) (*domain.Member, error)
	GetMemberByID(ctx context.Context, id int64) (*domain.Member, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type postgresMemberRepository struct {
	db *sql.DB
}

func NewPostgresMemberRepository(db *sql.DB) MemberRepository {
	return &postgresMemberRepository{db: db}
}

func (r *postgresMemberRepository) CreateMember(ctx context.Context, member *domain.Member) error {
	query := `INSERT INTO members (login_id, password_hash, name, birth_date, email, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, NOW(), NOW()) RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, member.LoginID, member.PasswordHash, member.Name, member.BirthDate, member.Email).
		Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt)
	if err != nil {
		// Two concurrent registrations can both pass ExistsByLoginID.
		if database.IsUniqueViolation(err) {
			logger.Warn("CreateMember: unique violation", "login_id", member.LoginID)
			return domain.ErrLoginIDDuplicate
		}
		logger.Error("CreateMember: failed to insert member", err)
		return err
	}
	return nil
}

func (r *postgresMemberRepository) ExistsByLoginID(ctx context.Context, loginID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM members WHERE login_id = $1)`, loginID).Scan(&exists)
	if err != nil {
		logger.Error("ExistsByLoginID: query failed", err)
		return false, err
	}
	return exists, nil
}

func (r *postgresMemberRepository) getMemberBy(ctx context.Context, field string, value interface{}) (*domain.Member, error) {
	query := `SELECT id, login_id, password_hash, name, birth_date, email, created_at, updated_at
              FROM members WHERE ` + field + ` = $1`
	var m domain.Member
	err := r.db.QueryRowContext(ctx, query, value).
		Scan(&m.ID, &m.LoginID, &m.PasswordHash, &m.Name, &m.BirthDate, &m.Email, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMemberNotFound
		}
		logger.Error("getMemberBy "+field+": query failed", err)
		return nil, err
	}
	return &m, nil
}

func (r *postgresMemberRepository) GetMemberByLoginID(ctx context.Context, loginID string) (*domain.Member, error) {
	return r.getMemberBy(ctx, "login_id", loginID)
}

func (r *postgresMemberRepository) GetMemberByID(ctx context.Context, id int64) (*domain.Member, error) {
	return r.getMemberBy(ctx, "id", id)
}

func (r *postgresMemberRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE members SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passwordHash, id)
	if err != nil {
		logger.Error("UpdatePassword: exec failed", err, "member_id", id)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		logger.Error("UpdatePassword: rows affected failed", err, "member_id", id)
		return err
	}
	if n == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}
