package services

import (
	"context"
	"math"
	"sort"

	"portfolio/internal/models"
	"portfolio/internal/repositories"
)

// PlanExport bundles everything the report writers need for one plan.
type PlanExport struct {
	Plan  models.Plan
	Stats models.PlanStats
	Tasks []models.Task
	Logs  []models.TimeLog
}

type AnalyticsService interface {
	GetPlanStats(ctx context.Context, planID int64) (*models.PlanStats, error)
	PlanExport(ctx context.Context, planID int64) (*PlanExport, error)
}

type analyticsService struct {
	plans  repositories.PlanRepository
	phases repositories.PhaseRepository
	tasks  repositories.TaskRepository
	logs   repositories.TimeLogRepository
}

func NewAnalyticsService(
	plans repositories.PlanRepository,
	phases repositories.PhaseRepository,
	tasks repositories.TaskRepository,
	logs repositories.TimeLogRepository,
) AnalyticsService {
	return &analyticsService{plans: plans, phases: phases, tasks: tasks, logs: logs}
}

func (s *analyticsService) GetPlanStats(ctx context.Context, planID int64) (*models.PlanStats, error) {
	exp, err := s.PlanExport(ctx, planID)
	if err != nil {
		return nil, err
	}
	return &exp.Stats, nil
}

func (s *analyticsService) PlanExport(ctx context.Context, planID int64) (*PlanExport, error) {
	plan, err := s.plans.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.FindAll(ctx, models.TaskFilter{PlanID: &planID})
	if err != nil {
		return nil, err
	}
	phases, err := s.phases.ListByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	logs, err := s.logs.ListByTasks(ctx, ids)
	if err != nil {
		return nil, err
	}

	stats := BuildPlanStats(planID, tasks, phases, logs)
	return &PlanExport{Plan: *plan, Stats: stats, Tasks: tasks, Logs: logs}, nil
}

// CompletionPercentage is completed/total*100 rounded to one decimal; zero tasks give 0.
func CompletionPercentage(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*1000) / 10
}

// BuildPlanStats aggregates task time and completion; tasks are expected in display order.
func BuildPlanStats(planID int64, tasks []models.Task, phases []models.Phase, logs []models.TimeLog) models.PlanStats {
	stats := models.PlanStats{
		PlanID:        planID,
		TaskBreakdown: make([]models.TaskTimeBreakdown, 0, len(tasks)),
	}

	for _, t := range tasks {
		stats.TotalSeconds += t.TotalTimeSpent
		stats.TotalTasks++
		if t.Status == models.TaskCompleted {
			stats.CompletedTasks++
		}
		stats.TaskBreakdown = append(stats.TaskBreakdown, models.TaskTimeBreakdown{
			TaskID:         t.ID,
			Title:          t.Title,
			TotalTimeSpent: t.TotalTimeSpent,
			TotalHours:     models.FormatHours(t.TotalTimeSpent),
			Status:         t.Status,
		})
	}
	stats.TotalHours = models.FormatHours(stats.TotalSeconds)
	stats.CompletionPercentage = CompletionPercentage(stats.CompletedTasks, stats.TotalTasks)
	stats.Phases = phaseProgress(tasks, phases)
	stats.Daily = dailyTime(logs)
	return stats
}

func phaseProgress(tasks []models.Task, phases []models.Phase) []models.PhaseProgress {
	out := make([]models.PhaseProgress, 0, len(phases)+1)
	index := make(map[int64]int, len(phases))
	for _, p := range phases {
		id := p.ID
		index[p.ID] = len(out)
		out = append(out, models.PhaseProgress{PhaseID: &id, Title: p.Title, Order: p.Order})
	}

	unassigned := models.PhaseProgress{Title: "unassigned"}
	for _, t := range tasks {
		target := &unassigned
		if t.PhaseID != nil {
			if i, ok := index[*t.PhaseID]; ok {
				target = &out[i]
			}
		}
		target.TotalTasks++
		target.TotalSeconds += t.TotalTimeSpent
		if t.Status == models.TaskCompleted {
			target.CompletedTasks++
		}
	}
	if unassigned.TotalTasks > 0 {
		out = append(out, unassigned)
	}
	for i := range out {
		out[i].CompletionPercentage = CompletionPercentage(out[i].CompletedTasks, out[i].TotalTasks)
	}
	return out
}

// dailyTime sums closed sessions per UTC start day.
func dailyTime(logs []models.TimeLog) []models.DailyTime {
	byDay := map[string]*models.DailyTime{}
	for _, l := range logs {
		if l.IsActive || l.EndTime == nil {
			continue
		}
		day := l.StartTime.UTC().Format("2006-01-02")
		d, ok := byDay[day]
		if !ok {
			d = &models.DailyTime{Date: day}
			byDay[day] = d
		}
		d.TotalSeconds += l.Duration
		d.Sessions++
	}
	out := make([]models.DailyTime, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
