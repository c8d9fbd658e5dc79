package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"portfolio/internal/apperr"
	"portfolio/internal/models"
)

type TimeLogRepository interface {
	// StartActive inserts a running log; a second running log for the task is a Conflict.
	StartActive(ctx context.Context, taskID int64, start time.Time) (*models.TimeLog, error)
	FindActive(ctx context.Context, taskID int64) (*models.TimeLog, error)
	// StopActive closes the running log and adds its duration to the task in one transaction.
	StopActive(ctx context.Context, taskID int64, end time.Time) (*models.TimeLog, int64, error)
	ListByTask(ctx context.Context, taskID int64) ([]models.TimeLog, error)
	ListByTasks(ctx context.Context, taskIDs []int64) ([]models.TimeLog, error)
	DeleteByTasks(ctx context.Context, taskIDs []int64) (int64, error)
}

type timeLogRepository struct {
	db *sql.DB
}

func NewTimeLogRepository(db *sql.DB) TimeLogRepository {
	return &timeLogRepository{db: db}
}

const timeLogColumns = `id, task_id, start_time, end_time, duration, is_active`

func scanTimeLog(s rowScanner) (*models.TimeLog, error) {
	var (
		l   models.TimeLog
		end sql.NullTime
	)
	if err := s.Scan(&l.ID, &l.TaskID, &l.StartTime, &end, &l.Duration, &l.IsActive); err != nil {
		return nil, err
	}
	if end.Valid {
		t := end.Time
		l.EndTime = &t
	}
	return &l, nil
}

func (r *timeLogRepository) StartActive(ctx context.Context, taskID int64, start time.Time) (*models.TimeLog, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO time_logs (task_id, start_time, duration, is_active)
		VALUES ($1, $2, 0, TRUE)
		RETURNING `+timeLogColumns, taskID, start)
	l, err := scanTimeLog(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: timer already running for task %d", apperr.ErrConflict, taskID)
		}
		return nil, err
	}
	return l, nil
}

func (r *timeLogRepository) FindActive(ctx context.Context, taskID int64) (*models.TimeLog, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+timeLogColumns+` FROM time_logs WHERE task_id = $1 AND is_active LIMIT 1`, taskID)
	l, err := scanTimeLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *timeLogRepository) StopActive(ctx context.Context, taskID int64, end time.Time) (*models.TimeLog, int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	// The row lock serialises concurrent stops; the loser sees no active log.
	row := tx.QueryRowContext(ctx,
		`SELECT `+timeLogColumns+` FROM time_logs WHERE task_id = $1 AND is_active FOR UPDATE`, taskID)
	l, err := scanTimeLog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, fmt.Errorf("%w: no active timer for task %d", apperr.ErrNotFound, taskID)
		}
		return nil, 0, err
	}

	l.Duration = models.ElapsedSeconds(l.StartTime, end)
	l.EndTime = &end
	l.IsActive = false

	if _, err := tx.ExecContext(ctx,
		`UPDATE time_logs SET end_time = $1, duration = $2, is_active = FALSE WHERE id = $3`,
		end, l.Duration, l.ID); err != nil {
		return nil, 0, err
	}

	var total int64
	err = tx.QueryRowContext(ctx, `
		UPDATE tasks SET total_time_spent = total_time_spent + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING total_time_spent`, l.Duration, taskID).Scan(&total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, apperr.NotFound("task", taskID)
		}
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}
	return l, total, nil
}

func (r *timeLogRepository) ListByTask(ctx context.Context, taskID int64) ([]models.TimeLog, error) {
	return r.list(ctx,
		`SELECT `+timeLogColumns+` FROM time_logs WHERE task_id = $1 ORDER BY start_time DESC, id DESC`, taskID)
}

func (r *timeLogRepository) ListByTasks(ctx context.Context, taskIDs []int64) ([]models.TimeLog, error) {
	if len(taskIDs) == 0 {
		return []models.TimeLog{}, nil
	}
	return r.list(ctx,
		`SELECT `+timeLogColumns+` FROM time_logs WHERE task_id = ANY($1) ORDER BY start_time ASC, id ASC`,
		int64Array(taskIDs))
}

func (r *timeLogRepository) list(ctx context.Context, query string, args ...any) ([]models.TimeLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.TimeLog{}
	for rows.Next() {
		l, err := scanTimeLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

func (r *timeLogRepository) DeleteByTasks(ctx context.Context, taskIDs []int64) (int64, error) {
	if len(taskIDs) == 0 {
		return 0, nil
	}
	return rowsAffected(r.db.ExecContext(ctx, `DELETE FROM time_logs WHERE task_id = ANY($1)`, int64Array(taskIDs)))
}
