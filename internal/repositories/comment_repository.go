package repositories

import (
	"context"
	"database/sql"
	"errors"

	"portfolio/internal/apperr"
	"portfolio/internal/models"
)

type CommentRepository interface {
	Store(ctx context.Context, c *models.Comment) error
	FindByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByTask(ctx context.Context, taskID int64) ([]models.Comment, error)
	Update(ctx context.Context, c *models.Comment) error
	Delete(ctx context.Context, id int64) error
	DeleteByTasks(ctx context.Context, taskIDs []int64) (int64, error)
}

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Store(ctx context.Context, c *models.Comment) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO comments (task_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, c.TaskID, c.Content, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
}

func (r *commentRepository) FindByID(ctx context.Context, id int64) (*models.Comment, error) {
	c := &models.Comment{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, task_id, content, created_at, updated_at FROM comments WHERE id = $1`, id,
	).Scan(&c.ID, &c.TaskID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("comment", id)
		}
		return nil, err
	}
	return c, nil
}

func (r *commentRepository) ListByTask(ctx context.Context, taskID int64) ([]models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, content, created_at, updated_at
		FROM comments WHERE task_id = $1
		ORDER BY created_at ASC, id ASC`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *commentRepository) Update(ctx context.Context, c *models.Comment) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE comments SET content = $1, updated_at = $2 WHERE id = $3`, c.Content, c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, apperr.NotFound("comment", c.ID))
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, apperr.NotFound("comment", id))
}

func (r *commentRepository) DeleteByTasks(ctx context.Context, taskIDs []int64) (int64, error) {
	if len(taskIDs) == 0 {
		return 0, nil
	}
	return rowsAffected(r.db.ExecContext(ctx, `DELETE FROM comments WHERE task_id = ANY($1)`, int64Array(taskIDs)))
}
