package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"portfolio/internal/apperr"
	"portfolio/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	// Update writes the editable fields; total_time_spent is left to the timer and SetTotalTimeSpent.
	Update(ctx context.Context, task *models.Task) error
	SetTotalTimeSpent(ctx context.Context, id, seconds int64) error
	Delete(ctx context.Context, id int64) error

	ListIDsByPlan(ctx context.Context, planID int64) ([]int64, error)
	DeleteByPlan(ctx context.Context, planID int64) (int64, error)
	ClearPhase(ctx context.Context, phaseID int64) (int64, error)
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, plan_id, phase_id, title, description, aim, status, total_time_spent, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(s rowScanner) (*models.Task, error) {
	var (
		t       models.Task
		phaseID sql.NullInt64
	)
	if err := s.Scan(&t.ID, &t.PlanID, &phaseID, &t.Title, &t.Description, &t.Aim,
		&t.Status, &t.TotalTimeSpent, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if phaseID.Valid {
		id := phaseID.Int64
		t.PhaseID = &id
	}
	return &t, nil
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (plan_id, phase_id, title, description, aim, status, total_time_spent, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		task.PlanID, task.PhaseID, task.Title, task.Description, task.Aim,
		task.Status, task.TotalTimeSpent, task.CreatedAt, task.UpdatedAt,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("task", id)
		}
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `SELECT ` + taskColumns + ` FROM tasks`

	conditions := []string{}
	args := []any{}
	argID := 1

	if filter.PlanID != nil {
		conditions = append(conditions, fmt.Sprintf("plan_id = $%d", argID))
		args = append(args, *filter.PlanID)
		argID++
	}
	if filter.PhaseID != nil {
		conditions = append(conditions, fmt.Sprintf("phase_id = $%d", argID))
		args = append(args, *filter.PhaseID)
		argID++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY created_at ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET
			phase_id=$1, title=$2, description=$3, aim=$4,
			status=$5, updated_at=$6
		WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query,
		task.PhaseID, task.Title, task.Description, task.Aim,
		task.Status, task.UpdatedAt, task.ID,
	)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, apperr.NotFound("task", task.ID))
}

func (r *taskRepository) SetTotalTimeSpent(ctx context.Context, id, seconds int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET total_time_spent=$1, updated_at=NOW() WHERE id=$2`, seconds, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, apperr.NotFound("task", id))
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, apperr.NotFound("task", id))
}

func (r *taskRepository) ListIDsByPlan(ctx context.Context, planID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM tasks WHERE plan_id = $1 ORDER BY id`, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *taskRepository) DeleteByPlan(ctx context.Context, planID int64) (int64, error) {
	return rowsAffected(r.db.ExecContext(ctx, `DELETE FROM tasks WHERE plan_id = $1`, planID))
}

func (r *taskRepository) ClearPhase(ctx context.Context, phaseID int64) (int64, error) {
	return rowsAffected(r.db.ExecContext(ctx,
		`UPDATE tasks SET phase_id = NULL, updated_at = NOW() WHERE phase_id = $1`, phaseID))
}
