package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"portfolio/internal/apperr"
	"portfolio/internal/models"
)

type ExperienceRepository interface {
	Create(ctx context.Context, e *models.Experience) error
	GetByID(ctx context.Context, id int64) (*models.Experience, error)
	List(ctx context.Context) ([]models.Experience, error)
	Update(ctx context.Context, e *models.Experience) error
	Delete(ctx context.Context, id int64) error
}

type experienceRepository struct {
	db *sql.DB
}

func NewExperienceRepository(db *sql.DB) ExperienceRepository {
	return &experienceRepository{db: db}
}

const experienceColumns = `id, company, position, location, start_date, end_date, current, description, technologies, display_order, created_at, updated_at`

func scanExperience(s rowScanner) (*models.Experience, error) {
	var (
		e     models.Experience
		end   sql.NullTime
		techs pq.StringArray
	)
	if err := s.Scan(&e.ID, &e.Company, &e.Position, &e.Location, &e.StartDate, &end,
		&e.Current, &e.Description, &techs, &e.DisplayOrder, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	if end.Valid {
		t := end.Time
		e.EndDate = &t
	}
	e.Technologies = []string(techs)
	if e.Technologies == nil {
		e.Technologies = []string{}
	}
	return &e, nil
}

func (r *experienceRepository) Create(ctx context.Context, e *models.Experience) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO experiences (company, position, location, start_date, end_date, current, description, technologies, display_order, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id`,
		e.Company, e.Position, e.Location, e.StartDate, e.EndDate, e.Current, e.Description,
		pq.StringArray(e.Technologies), e.DisplayOrder, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *experienceRepository) GetByID(ctx context.Context, id int64) (*models.Experience, error) {
	e, err := scanExperience(r.db.QueryRowContext(ctx, `SELECT `+experienceColumns+` FROM experiences WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("experience", id)
		}
		return nil, err
	}
	return e, nil
}

// List returns current positions first, then by display order and most recent start.
func (r *experienceRepository) List(ctx context.Context) ([]models.Experience, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+experienceColumns+` FROM experiences
		ORDER BY display_order ASC, current DESC, start_date DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Experience{}
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *experienceRepository) Update(ctx context.Context, e *models.Experience) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE experiences SET
			company=$1, position=$2, location=$3, start_date=$4, end_date=$5, current=$6,
			description=$7, technologies=$8, display_order=$9, updated_at=$10
		WHERE id=$11`,
		e.Company, e.Position, e.Location, e.StartDate, e.EndDate, e.Current,
		e.Description, pq.StringArray(e.Technologies), e.DisplayOrder, e.UpdatedAt, e.ID,
	)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, apperr.NotFound("experience", e.ID))
}

func (r *experienceRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM experiences WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, apperr.NotFound("experience", id))
}
