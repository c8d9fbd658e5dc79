package services

import (
	"context"
	"fmt"
	"time"

	"portfolio/internal/apperr"
	"portfolio/internal/models"
	"portfolio/internal/repositories"
)

// TimerService tracks start/stop sessions per task.
type TimerService interface {
	StartTimer(ctx context.Context, taskID int64) (*models.TimeLog, error)
	StopTimer(ctx context.Context, taskID int64) (*models.TimerStopResult, error)
	// GetActiveTimer returns nil when the task has no running timer.
	GetActiveTimer(ctx context.Context, taskID int64) (*models.ActiveTimer, error)
	ListTimeLogs(ctx context.Context, taskID int64) ([]models.TimeLog, error)
}

type timerService struct {
	tasks repositories.TaskRepository
	logs  repositories.TimeLogRepository
	now   func() time.Time
}

func NewTimerService(tasks repositories.TaskRepository, logs repositories.TimeLogRepository) TimerService {
	return &timerService{tasks: tasks, logs: logs, now: time.Now}
}

func (s *timerService) StartTimer(ctx context.Context, taskID int64) (*models.TimeLog, error) {
	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}
	active, err := s.logs.FindActive(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, fmt.Errorf("%w: timer already running for task %d", apperr.ErrConflict, taskID)
	}
	// The partial unique index still rejects a racing second start.
	return s.logs.StartActive(ctx, taskID, s.now().UTC())
}

func (s *timerService) StopTimer(ctx context.Context, taskID int64) (*models.TimerStopResult, error) {
	log, total, err := s.logs.StopActive(ctx, taskID, s.now().UTC())
	if err != nil {
		return nil, err
	}
	return &models.TimerStopResult{TimeLog: *log, TotalTimeSpent: total}, nil
}

func (s *timerService) GetActiveTimer(ctx context.Context, taskID int64) (*models.ActiveTimer, error) {
	active, err := s.logs.FindActive(ctx, taskID)
	if err != nil || active == nil {
		return nil, err
	}
	return &models.ActiveTimer{
		TimeLog:        *active,
		ElapsedSeconds: models.ElapsedSeconds(active.StartTime, s.now().UTC()),
	}, nil
}

func (s *timerService) ListTimeLogs(ctx context.Context, taskID int64) ([]models.TimeLog, error) {
	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.logs.ListByTask(ctx, taskID)
}
