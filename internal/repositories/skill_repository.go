package repositories

import (
	"context"
	"database/sql"
	"errors"

	"portfolio/internal/apperr"
	"portfolio/internal/models"
)

type SkillRepository interface {
	Create(ctx context.Context, s *models.Skill) error
	GetByID(ctx context.Context, id int64) (*models.Skill, error)
	List(ctx context.Context, category string) ([]models.Skill, error)
	Update(ctx context.Context, s *models.Skill) error
	Delete(ctx context.Context, id int64) error
}

type skillRepository struct {
	db *sql.DB
}

func NewSkillRepository(db *sql.DB) SkillRepository {
	return &skillRepository{db: db}
}

const skillColumns = `id, name, category, level, icon, display_order, created_at, updated_at`

func scanSkill(s rowScanner) (*models.Skill, error) {
	var sk models.Skill
	if err := s.Scan(&sk.ID, &sk.Name, &sk.Category, &sk.Level, &sk.Icon,
		&sk.DisplayOrder, &sk.CreatedAt, &sk.UpdatedAt); err != nil {
		return nil, err
	}
	return &sk, nil
}

func (r *skillRepository) Create(ctx context.Context, s *models.Skill) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO skills (name, category, level, icon, display_order, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id`,
		s.Name, s.Category, s.Level, s.Icon, s.DisplayOrder, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
}

func (r *skillRepository) GetByID(ctx context.Context, id int64) (*models.Skill, error) {
	s, err := scanSkill(r.db.QueryRowContext(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("skill", id)
		}
		return nil, err
	}
	return s, nil
}

func (r *skillRepository) List(ctx context.Context, category string) ([]models.Skill, error) {
	query := `SELECT ` + skillColumns + ` FROM skills`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY display_order ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Skill{}
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *skillRepository) Update(ctx context.Context, s *models.Skill) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE skills SET name=$1, category=$2, level=$3, icon=$4, display_order=$5, updated_at=$6
		WHERE id=$7`,
		s.Name, s.Category, s.Level, s.Icon, s.DisplayOrder, s.UpdatedAt, s.ID,
	)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, apperr.NotFound("skill", s.ID))
}

func (r *skillRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, apperr.NotFound("skill", id))
}
