package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"portfolio/internal/apperr"
	"portfolio/internal/models"
)

type ProjectRepository interface {
	Create(ctx context.Context, p *models.Project) error
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	List(ctx context.Context, featuredOnly bool) ([]models.Project, error)
	Update(ctx context.Context, p *models.Project) error
	Delete(ctx context.Context, id int64) error
}

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) ProjectRepository {
	return &projectRepository{db: db}
}

const projectColumns = `id, title, description, tech_stack, github_url, live_url, image_url, featured, display_order, created_at, updated_at`

func scanProject(s rowScanner) (*models.Project, error) {
	var (
		p     models.Project
		stack pq.StringArray
	)
	if err := s.Scan(&p.ID, &p.Title, &p.Description, &stack, &p.GithubURL, &p.LiveURL,
		&p.ImageURL, &p.Featured, &p.DisplayOrder, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.TechStack = []string(stack)
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	return &p, nil
}

func (r *projectRepository) Create(ctx context.Context, p *models.Project) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO projects (title, description, tech_stack, github_url, live_url, image_url, featured, display_order, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id`,
		p.Title, p.Description, pq.StringArray(p.TechStack), p.GithubURL, p.LiveURL, p.ImageURL,
		p.Featured, p.DisplayOrder, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
}

func (r *projectRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("project", id)
		}
		return nil, err
	}
	return p, nil
}

func (r *projectRepository) List(ctx context.Context, featuredOnly bool) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	if featuredOnly {
		query += ` WHERE featured`
	}
	query += ` ORDER BY display_order ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *projectRepository) Update(ctx context.Context, p *models.Project) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE projects SET
			title=$1, description=$2, tech_stack=$3, github_url=$4, live_url=$5,
			image_url=$6, featured=$7, display_order=$8, updated_at=$9
		WHERE id=$10`,
		p.Title, p.Description, pq.StringArray(p.TechStack), p.GithubURL, p.LiveURL,
		p.ImageURL, p.Featured, p.DisplayOrder, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, apperr.NotFound("project", p.ID))
}

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, apperr.NotFound("project", id))
}
