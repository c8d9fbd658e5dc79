package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"portfolio/internal/apperr"
	"portfolio/internal/models"
)

type AdminRepository interface {
	Create(ctx context.Context, a *models.Admin) error
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	GetByID(ctx context.Context, id int64) (*models.Admin, error)
	// Upsert creates the admin or replaces its password hash.
	Upsert(ctx context.Context, username, passwordHash string) (*models.Admin, error)
}

type adminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, a *models.Admin) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO admins (username, password_hash) VALUES ($1, $2)
		RETURNING id, created_at`, a.Username, a.PasswordHash).Scan(&a.ID, &a.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: admin %q already exists", apperr.ErrConflict, a.Username)
	}
	return err
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	return r.getOne(ctx, `SELECT id, username, password_hash, created_at FROM admins WHERE username = $1`, username)
}

func (r *adminRepository) GetByID(ctx context.Context, id int64) (*models.Admin, error) {
	return r.getOne(ctx, `SELECT id, username, password_hash, created_at FROM admins WHERE id = $1`, id)
}

func (r *adminRepository) getOne(ctx context.Context, q string, arg any) (*models.Admin, error) {
	a := &models.Admin{}
	err := r.db.QueryRowContext(ctx, q, arg).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: admin", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *adminRepository) Upsert(ctx context.Context, username, passwordHash string) (*models.Admin, error) {
	a := &models.Admin{Username: username, PasswordHash: passwordHash}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO admins (username, password_hash) VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING id, created_at`, username, passwordHash).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}
