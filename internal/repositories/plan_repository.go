package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"portfolio/internal/apperr"
	"portfolio/internal/models"
)

type PlanRepository interface {
	Store(ctx context.Context, plan *models.Plan) error
	FindByID(ctx context.Context, id int64) (*models.Plan, error)
	FindAll(ctx context.Context, status *models.PlanStatus) ([]models.Plan, error)
	Update(ctx context.Context, plan *models.Plan) error
	Delete(ctx context.Context, id int64) error
}

type planRepository struct {
	db *sql.DB
}

func NewPlanRepository(db *sql.DB) PlanRepository {
	return &planRepository{db: db}
}

const planColumns = `id, title, description, goals, status, start_date, target_end_date, created_at, updated_at`

func scanPlan(s rowScanner) (*models.Plan, error) {
	var (
		p      models.Plan
		goals  pq.StringArray
		target sql.NullTime
	)
	if err := s.Scan(&p.ID, &p.Title, &p.Description, &goals, &p.Status,
		&p.StartDate, &target, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Goals = []string(goals)
	if p.Goals == nil {
		p.Goals = []string{}
	}
	if target.Valid {
		t := target.Time
		p.TargetEndDate = &t
	}
	return &p, nil
}

func (r *planRepository) Store(ctx context.Context, plan *models.Plan) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO plans (title, description, goals, status, start_date, target_end_date, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id`,
		plan.Title, plan.Description, pq.StringArray(plan.Goals), plan.Status,
		plan.StartDate, plan.TargetEndDate, plan.CreatedAt, plan.UpdatedAt,
	).Scan(&plan.ID)
}

func (r *planRepository) FindByID(ctx context.Context, id int64) (*models.Plan, error) {
	p, err := scanPlan(r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM plans WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("plan", id)
		}
		return nil, err
	}
	return p, nil
}

func (r *planRepository) FindAll(ctx context.Context, status *models.PlanStatus) ([]models.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []models.Plan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}

func (r *planRepository) Update(ctx context.Context, plan *models.Plan) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE plans SET
			title=$1, description=$2, goals=$3, status=$4,
			start_date=$5, target_end_date=$6, updated_at=$7
		WHERE id=$8`,
		plan.Title, plan.Description, pq.StringArray(plan.Goals), plan.Status,
		plan.StartDate, plan.TargetEndDate, plan.UpdatedAt, plan.ID,
	)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, apperr.NotFound("plan", plan.ID))
}

func (r *planRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, apperr.NotFound("plan", id))
}
