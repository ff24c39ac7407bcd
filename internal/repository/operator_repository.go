package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/bijayshruti/SSC-APP5/internal/utils"
)

// Operator mirrors the 'operators' table. Operators are the regional
// office staff allowed to record allocations.
type Operator struct {
	ID           uint64
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type OperatorRepo struct{ DB *sql.DB }

func NewOperatorRepo(db *sql.DB) *OperatorRepo { return &OperatorRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

// Create inserts an operator account and returns its ID.
func (r *OperatorRepo) Create(ctx context.Context, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO operators (email, password_hash, role) VALUES (?,?,?)",
		email, hash, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches an operator by normalized email.
func (r *OperatorRepo) GetByEmail(ctx context.Context, email string) (Operator, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var o Operator
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,is_active,created_at,updated_at FROM operators WHERE email=? LIMIT 1",
		email).Scan(&o.ID, &o.Email, &o.PasswordHash, &o.Role, &o.IsActive, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

// GetByID fetches an operator by id.
func (r *OperatorRepo) GetByID(ctx context.Context, id uint64) (Operator, error) {
	var o Operator
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,is_active,created_at,updated_at FROM operators WHERE id=? LIMIT 1",
		id).Scan(&o.ID, &o.Email, &o.PasswordHash, &o.Role, &o.IsActive, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}
