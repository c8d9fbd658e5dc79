package repositories

import (
	"context"
	"database/sql"
	"errors"

	"portfolio/internal/apperr"
	"portfolio/internal/models"
)

type PhaseRepository interface {
	Store(ctx context.Context, phase *models.Phase) error
	FindByID(ctx context.Context, id int64) (*models.Phase, error)
	ListByPlan(ctx context.Context, planID int64) ([]models.Phase, error)
	Update(ctx context.Context, phase *models.Phase) error
	Delete(ctx context.Context, id int64) error
	DeleteByPlan(ctx context.Context, planID int64) (int64, error)
}

type phaseRepository struct {
	db *sql.DB
}

func NewPhaseRepository(db *sql.DB) PhaseRepository {
	return &phaseRepository{db: db}
}

const phaseColumns = `id, plan_id, title, description, sort_order, status, created_at, updated_at`

func scanPhase(s rowScanner) (*models.Phase, error) {
	var p models.Phase
	if err := s.Scan(&p.ID, &p.PlanID, &p.Title, &p.Description, &p.Order,
		&p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *phaseRepository) Store(ctx context.Context, phase *models.Phase) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO phases (plan_id, title, description, sort_order, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id`,
		phase.PlanID, phase.Title, phase.Description, phase.Order, phase.Status,
		phase.CreatedAt, phase.UpdatedAt,
	).Scan(&phase.ID)
}

func (r *phaseRepository) FindByID(ctx context.Context, id int64) (*models.Phase, error) {
	p, err := scanPhase(r.db.QueryRowContext(ctx, `SELECT `+phaseColumns+` FROM phases WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("phase", id)
		}
		return nil, err
	}
	return p, nil
}

func (r *phaseRepository) ListByPlan(ctx context.Context, planID int64) ([]models.Phase, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+phaseColumns+` FROM phases WHERE plan_id = $1 ORDER BY sort_order ASC, id ASC`, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	phases := []models.Phase{}
	for rows.Next() {
		p, err := scanPhase(rows)
		if err != nil {
			return nil, err
		}
		phases = append(phases, *p)
	}
	return phases, rows.Err()
}

func (r *phaseRepository) Update(ctx context.Context, phase *models.Phase) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE phases SET title=$1, description=$2, sort_order=$3, status=$4, updated_at=$5
		WHERE id=$6`,
		phase.Title, phase.Description, phase.Order, phase.Status, phase.UpdatedAt, phase.ID,
	)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, apperr.NotFound("phase", phase.ID))
}

func (r *phaseRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM phases WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, apperr.NotFound("phase", id))
}

func (r *phaseRepository) DeleteByPlan(ctx context.Context, planID int64) (int64, error) {
	return rowsAffected(r.db.ExecContext(ctx, `DELETE FROM phases WHERE plan_id = $1`, planID))
}
