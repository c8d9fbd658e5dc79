// internal/services/task_service.go
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

// TaskService defines the interface for learning-task business logic.
type TaskService interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	// Update applies a partial edit. TotalTimeSpent is only written when the patch sets it,
	// so a concurrent timer stop is never rolled back.
	Update(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error)
	// Delete removes the task together with its time logs and comments.
	Delete(ctx context.Context, id int64) error
}

type taskService struct {
	plans    repositories.PlanRepository
	phases   repositories.PhaseRepository
	repo     repositories.TaskRepository
	logs     repositories.TimeLogRepository
	comments repositories.CommentRepository
	now      func() time.Time
}

func NewTaskService(
	plans repositories.PlanRepository,
	phases repositories.PhaseRepository,
	repo repositories.TaskRepository,
	logs repositories.TimeLogRepository,
	comments repositories.CommentRepository,
) TaskService {
	return &taskService{plans: plans, phases: phases, repo: repo, logs: logs, comments: comments, now: time.Now}
}

func (s *taskService) validate(ctx context.Context, task *models.Task) error {
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return apperr.Validation("title is required")
	}
	if !task.Status.Valid() {
		return apperr.Validation(fmt.Sprintf("invalid task status %q", task.Status))
	}
	if task.TotalTimeSpent < 0 {
		return apperr.Validation("total_time_spent cannot be negative")
	}
	if task.PhaseID != nil {
		phase, err := s.phases.FindByID(ctx, *task.PhaseID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return apperr.Validation(fmt.Sprintf("phase %d does not exist", *task.PhaseID))
			}
			return err
		}
		if phase.PlanID != task.PlanID {
			return apperr.Validation(fmt.Sprintf("phase %d belongs to another plan", phase.ID))
		}
	}
	return nil
}

func (s *taskService) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if task.Status == "" {
		task.Status = models.TaskPending
	}
	if err := planMustExist(ctx, s.plans, task.PlanID); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, task); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *taskService) GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *taskService) Update(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	existingTask, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.PhaseID != nil {
		if *patch.PhaseID == 0 {
			existingTask.PhaseID = nil
		} else {
			phaseID := *patch.PhaseID
			existingTask.PhaseID = &phaseID
		}
	}
	if patch.Title != nil {
		existingTask.Title = *patch.Title
	}
	if patch.Description != nil {
		existingTask.Description = *patch.Description
	}
	if patch.Aim != nil {
		existingTask.Aim = *patch.Aim
	}
	if patch.Status != nil && *patch.Status != "" {
		existingTask.Status = *patch.Status
	}
	if patch.TotalTimeSpent != nil {
		existingTask.TotalTimeSpent = *patch.TotalTimeSpent
	}

	if err := s.validate(ctx, existingTask); err != nil {
		return nil, err
	}
	existingTask.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, existingTask); err != nil {
		return nil, err
	}
	if patch.TotalTimeSpent != nil {
		if err := s.repo.SetTotalTimeSpent(ctx, id, *patch.TotalTimeSpent); err != nil {
			return nil, err
		}
	}
	return s.repo.FindByID(ctx, id)
}

func (s *taskService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	ids := []int64{id}
	if _, err := s.logs.DeleteByTasks(ctx, ids); err != nil {
		log.Printf("[task][delete][warn] id=%d time logs left behind: %v", id, err)
	}
	if _, err := s.comments.DeleteByTasks(ctx, ids); err != nil {
		log.Printf("[task][delete][warn] id=%d comments left behind: %v", id, err)
	}
	return nil
}

type CommentService interface {
	Create(ctx context.Context, taskID int64, content string) (*models.Comment, error)
	ListByTask(ctx context.Context, taskID int64) ([]models.Comment, error)
	Update(ctx context.Context, id int64, content string) (*models.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type commentService struct {
	tasks    repositories.TaskRepository
	comments repositories.CommentRepository
	now      func() time.Time
}

func NewCommentService(tasks repositories.TaskRepository, comments repositories.CommentRepository) CommentService {
	return &commentService{tasks: tasks, comments: comments, now: time.Now}
}

func (s *commentService) Create(ctx context.Context, taskID int64, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Validation("content is required")
	}
	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	c := &models.Comment{TaskID: taskID, Content: content, CreatedAt: now, UpdatedAt: now}
	if err := s.comments.Store(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *commentService) ListByTask(ctx context.Context, taskID int64) ([]models.Comment, error) {
	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.comments.ListByTask(ctx, taskID)
}

func (s *commentService) Update(ctx context.Context, id int64, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Validation("content is required")
	}
	c, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Content = content
	c.UpdatedAt = s.now().UTC()
	if err := s.comments.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *commentService) Delete(ctx context.Context, id int64) error {
	return s.comments.Delete(ctx, id)
}
