package models

import "fmt"

// PlanStats is the aggregate view of a plan, recomputed on every call.
type PlanStats struct {
	PlanID               int64               `json:"plan_id"`
	TotalSeconds         int64               `json:"total_seconds"`
	TotalHours           string              `json:"total_hours"`
	TotalTasks           int                 `json:"total_tasks"`
	CompletedTasks       int                 `json:"completed_tasks"`
	CompletionPercentage float64             `json:"completion_percentage"`
	TaskBreakdown        []TaskTimeBreakdown `json:"task_breakdown"`
	Phases               []PhaseProgress     `json:"phases"`
	Daily                []DailyTime         `json:"daily"`
}

type TaskTimeBreakdown struct {
	TaskID         int64      `json:"task_id"`
	Title          string     `json:"title"`
	TotalTimeSpent int64      `json:"total_time_spent"`
	TotalHours     string     `json:"total_hours"`
	Status         TaskStatus `json:"status"`
}

// PhaseProgress groups task counts per phase; PhaseID is nil for unassigned tasks.
type PhaseProgress struct {
	PhaseID              *int64  `json:"phase_id"`
	Title                string  `json:"title"`
	Order                int     `json:"order"`
	TotalTasks           int     `json:"total_tasks"`
	CompletedTasks       int     `json:"completed_tasks"`
	CompletionPercentage float64 `json:"completion_percentage"`
	TotalSeconds         int64   `json:"total_seconds"`
}

// DailyTime is the closed timer time per UTC calendar day.
type DailyTime struct {
	Date         string `json:"date"` // YYYY-MM-DD
	TotalSeconds int64  `json:"total_seconds"`
	Sessions     int    `json:"sessions"`
}

// FormatHours renders seconds as hours with one decimal.
func FormatHours(seconds int64) string {
	return fmt.Sprintf("%.1f", float64(seconds)/3600)
}
