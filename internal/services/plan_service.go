package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"portfolio/internal/apperr"
	"portfolio/internal/models"
	"portfolio/internal/repositories"
)

type PlanService interface {
	Create(ctx context.Context, plan *models.Plan) (*models.Plan, error)
	GetByID(ctx context.Context, id int64) (*models.Plan, error)
	List(ctx context.Context, status *models.PlanStatus) ([]models.Plan, error)
	Update(ctx context.Context, id int64, update *models.Plan) (*models.Plan, error)
	// DeletePlan removes the plan, then its phases, tasks, and the tasks' logs and comments.
	// When a child step fails the result still reports PlanDeleted and the error names the step.
	DeletePlan(ctx context.Context, id int64) (*models.PlanDeleteResult, error)
}

type planService struct {
	plans    repositories.PlanRepository
	phases   repositories.PhaseRepository
	tasks    repositories.TaskRepository
	logs     repositories.TimeLogRepository
	comments repositories.CommentRepository
	now      func() time.Time
}

func NewPlanService(
	plans repositories.PlanRepository,
	phases repositories.PhaseRepository,
	tasks repositories.TaskRepository,
	logs repositories.TimeLogRepository,
	comments repositories.CommentRepository,
) PlanService {
	return &planService{plans: plans, phases: phases, tasks: tasks, logs: logs, comments: comments, now: time.Now}
}

func validatePlan(p *models.Plan) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return apperr.Validation("title is required")
	}
	if !p.Status.Valid() {
		return apperr.Validation(fmt.Sprintf("invalid plan status %q", p.Status))
	}
	if p.TargetEndDate != nil && p.TargetEndDate.Before(p.StartDate) {
		return apperr.Validation("target_end_date is before start_date")
	}
	if p.Goals == nil {
		p.Goals = []string{}
	}
	return nil
}

func (s *planService) Create(ctx context.Context, plan *models.Plan) (*models.Plan, error) {
	if plan.Status == "" {
		plan.Status = models.PlanActive
	}
	now := s.now().UTC()
	if plan.StartDate.IsZero() {
		plan.StartDate = now
	}
	if err := validatePlan(plan); err != nil {
		return nil, err
	}
	plan.CreatedAt = now
	plan.UpdatedAt = now
	if err := s.plans.Store(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) GetByID(ctx context.Context, id int64) (*models.Plan, error) {
	return s.plans.FindByID(ctx, id)
}

func (s *planService) List(ctx context.Context, status *models.PlanStatus) ([]models.Plan, error) {
	return s.plans.FindAll(ctx, status)
}

func (s *planService) Update(ctx context.Context, id int64, update *models.Plan) (*models.Plan, error) {
	existing, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Status == "" {
		update.Status = existing.Status
	}
	if !canTransition(existing.Status, update.Status) {
		return nil, fmt.Errorf("%w: illegal status transition %s -> %s", apperr.ErrConflict, existing.Status, update.Status)
	}
	update.ID = id
	update.CreatedAt = existing.CreatedAt
	if update.StartDate.IsZero() {
		update.StartDate = existing.StartDate
	}
	if err := validatePlan(update); err != nil {
		return nil, err
	}
	update.UpdatedAt = s.now().UTC()
	if err := s.plans.Update(ctx, update); err != nil {
		return nil, err
	}
	return update, nil
}

func (s *planService) DeletePlan(ctx context.Context, id int64) (*models.PlanDeleteResult, error) {
	// Task ids are needed for the log/comment cleanup after the tasks are gone.
	taskIDs, err := s.tasks.ListIDsByPlan(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list tasks of plan %d: %w", id, err)
	}
	if err := s.plans.Delete(ctx, id); err != nil {
		return nil, err
	}
	res := &models.PlanDeleteResult{PlanDeleted: true}

	if res.PhasesDeleted, err = s.phases.DeleteByPlan(ctx, id); err != nil {
		return res, cascadeErr(id, "phases", err)
	}
	if res.TasksDeleted, err = s.tasks.DeleteByPlan(ctx, id); err != nil {
		return res, cascadeErr(id, "tasks", err)
	}
	if res.TimeLogsDeleted, err = s.logs.DeleteByTasks(ctx, taskIDs); err != nil {
		return res, cascadeErr(id, "time logs", err)
	}
	if res.CommentsDeleted, err = s.comments.DeleteByTasks(ctx, taskIDs); err != nil {
		return res, cascadeErr(id, "comments", err)
	}
	return res, nil
}

// ErrCascadeIncomplete marks a plan that was deleted while some children were left behind.
var ErrCascadeIncomplete = errors.New("plan deleted but cleanup incomplete")

func cascadeErr(planID int64, step string, err error) error {
	log.Printf("[plan][delete][cascade][err] plan=%d step=%s: %v", planID, step, err)
	return fmt.Errorf("%w: removing %s of plan %d: %v", ErrCascadeIncomplete, step, planID, err)
}

type PhaseService interface {
	Create(ctx context.Context, phase *models.Phase) (*models.Phase, error)
	GetByID(ctx context.Context, id int64) (*models.Phase, error)
	ListByPlan(ctx context.Context, planID int64) ([]models.Phase, error)
	Update(ctx context.Context, id int64, update *models.Phase) (*models.Phase, error)
	// DeletePhase unassigns the phase's tasks and removes the phase; tasks are kept.
	DeletePhase(ctx context.Context, id int64) (unassigned int64, err error)
}

type phaseService struct {
	plans  repositories.PlanRepository
	phases repositories.PhaseRepository
	tasks  repositories.TaskRepository
	now    func() time.Time
}

func NewPhaseService(plans repositories.PlanRepository, phases repositories.PhaseRepository, tasks repositories.TaskRepository) PhaseService {
	return &phaseService{plans: plans, phases: phases, tasks: tasks, now: time.Now}
}

func validatePhase(p *models.Phase) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return apperr.Validation("title is required")
	}
	if !p.Status.Valid() {
		return apperr.Validation(fmt.Sprintf("invalid phase status %q", p.Status))
	}
	return nil
}

func (s *phaseService) Create(ctx context.Context, phase *models.Phase) (*models.Phase, error) {
	if phase.Status == "" {
		phase.Status = models.PhaseNotStarted
	}
	if err := validatePhase(phase); err != nil {
		return nil, err
	}
	if err := planMustExist(ctx, s.plans, phase.PlanID); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	phase.CreatedAt = now
	phase.UpdatedAt = now
	if err := s.phases.Store(ctx, phase); err != nil {
		return nil, err
	}
	return phase, nil
}

func (s *phaseService) GetByID(ctx context.Context, id int64) (*models.Phase, error) {
	return s.phases.FindByID(ctx, id)
}

func (s *phaseService) ListByPlan(ctx context.Context, planID int64) ([]models.Phase, error) {
	if _, err := s.plans.FindByID(ctx, planID); err != nil {
		return nil, err
	}
	return s.phases.ListByPlan(ctx, planID)
}

func (s *phaseService) Update(ctx context.Context, id int64, update *models.Phase) (*models.Phase, error) {
	existing, err := s.phases.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	update.ID = id
	update.PlanID = existing.PlanID
	update.CreatedAt = existing.CreatedAt
	if update.Status == "" {
		update.Status = existing.Status
	}
	if err := validatePhase(update); err != nil {
		return nil, err
	}
	update.UpdatedAt = s.now().UTC()
	if err := s.phases.Update(ctx, update); err != nil {
		return nil, err
	}
	return update, nil
}

func (s *phaseService) DeletePhase(ctx context.Context, id int64) (int64, error) {
	if _, err := s.phases.FindByID(ctx, id); err != nil {
		return 0, err
	}
	n, err := s.tasks.ClearPhase(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("unassign tasks of phase %d: %w", id, err)
	}
	if err := s.phases.Delete(ctx, id); err != nil {
		return n, err
	}
	return n, nil
}

func planMustExist(ctx context.Context, plans repositories.PlanRepository, planID int64) error {
	if planID <= 0 {
		return apperr.Validation("plan_id is required")
	}
	if _, err := plans.FindByID(ctx, planID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.Validation(fmt.Sprintf("plan %d does not exist", planID))
		}
		return err
	}
	return nil
}
