package services

import (
	"context"
	"strings"
	"time"

	"portfolio/internal/apperr"
	"portfolio/internal/models"
	"portfolio/internal/repositories"
)

type ProjectService interface {
	List(ctx context.Context, featuredOnly bool) ([]models.Project, error)
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	Create(ctx context.Context, p *models.Project) (*models.Project, error)
	Update(ctx context.Context, id int64, p *models.Project) (*models.Project, error)
	Delete(ctx context.Context, id int64) error
}

type projectService struct {
	repo repositories.ProjectRepository
	now  func() time.Time
}

func NewProjectService(repo repositories.ProjectRepository) ProjectService {
	return &projectService{repo: repo, now: time.Now}
}

func validateProject(p *models.Project) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return apperr.Validation("title is required")
	}
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	return nil
}

func (s *projectService) List(ctx context.Context, featuredOnly bool) ([]models.Project, error) {
	return s.repo.List(ctx, featuredOnly)
}

func (s *projectService) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *projectService) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	if err := validateProject(p); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) Update(ctx context.Context, id int64, p *models.Project) (*models.Project, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateProject(p); err != nil {
		return nil, err
	}
	p.ID = id
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

type SkillService interface {
	List(ctx context.Context, category string) ([]models.Skill, error)
	GetByID(ctx context.Context, id int64) (*models.Skill, error)
	Create(ctx context.Context, sk *models.Skill) (*models.Skill, error)
	Update(ctx context.Context, id int64, sk *models.Skill) (*models.Skill, error)
	Delete(ctx context.Context, id int64) error
}

type skillService struct {
	repo repositories.SkillRepository
	now  func() time.Time
}

func NewSkillService(repo repositories.SkillRepository) SkillService {
	return &skillService{repo: repo, now: time.Now}
}

func validateSkill(sk *models.Skill) error {
	sk.Name = strings.TrimSpace(sk.Name)
	if sk.Name == "" {
		return apperr.Validation("name is required")
	}
	if sk.Level < 0 || sk.Level > 100 {
		return apperr.Validation("level must be between 0 and 100")
	}
	return nil
}

func (s *skillService) List(ctx context.Context, category string) ([]models.Skill, error) {
	return s.repo.List(ctx, strings.TrimSpace(category))
}

func (s *skillService) GetByID(ctx context.Context, id int64) (*models.Skill, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *skillService) Create(ctx context.Context, sk *models.Skill) (*models.Skill, error) {
	if err := validateSkill(sk); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	sk.CreatedAt, sk.UpdatedAt = now, now
	if err := s.repo.Create(ctx, sk); err != nil {
		return nil, err
	}
	return sk, nil
}

func (s *skillService) Update(ctx context.Context, id int64, sk *models.Skill) (*models.Skill, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateSkill(sk); err != nil {
		return nil, err
	}
	sk.ID = id
	sk.CreatedAt = existing.CreatedAt
	sk.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, sk); err != nil {
		return nil, err
	}
	return sk, nil
}

func (s *skillService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

type ExperienceService interface {
	List(ctx context.Context) ([]models.Experience, error)
	GetByID(ctx context.Context, id int64) (*models.Experience, error)
	Create(ctx context.Context, e *models.Experience) (*models.Experience, error)
	Update(ctx context.Context, id int64, e *models.Experience) (*models.Experience, error)
	Delete(ctx context.Context, id int64) error
}

type experienceService struct {
	repo repositories.ExperienceRepository
	now  func() time.Time
}

func NewExperienceService(repo repositories.ExperienceRepository) ExperienceService {
	return &experienceService{repo: repo, now: time.Now}
}

func validateExperience(e *models.Experience) error {
	e.Company = strings.TrimSpace(e.Company)
	e.Position = strings.TrimSpace(e.Position)
	if e.Company == "" || e.Position == "" {
		return apperr.Validation("company and position are required")
	}
	if e.StartDate.IsZero() {
		return apperr.Validation("start_date is required")
	}
	if e.Current {
		e.EndDate = nil
	}
	if e.EndDate != nil && e.EndDate.Before(e.StartDate) {
		return apperr.Validation("end_date is before start_date")
	}
	if e.Technologies == nil {
		e.Technologies = []string{}
	}
	return nil
}

func (s *experienceService) List(ctx context.Context) ([]models.Experience, error) {
	return s.repo.List(ctx)
}

func (s *experienceService) GetByID(ctx context.Context, id int64) (*models.Experience, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *experienceService) Create(ctx context.Context, e *models.Experience) (*models.Experience, error) {
	if err := validateExperience(e); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *experienceService) Update(ctx context.Context, id int64, e *models.Experience) (*models.Experience, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateExperience(e); err != nil {
		return nil, err
	}
	e.ID = id
	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *experienceService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
