package models

import "time"

type PlanStatus string

const (
	PlanActive    PlanStatus = "active"
	PlanCompleted PlanStatus = "completed"
	PlanPaused    PlanStatus = "paused"
	PlanArchived  PlanStatus = "archived"
)

func (s PlanStatus) Valid() bool {
	switch s {
	case PlanActive, PlanCompleted, PlanPaused, PlanArchived:
		return true
	}
	return false
}

type PhaseStatus string

const (
	PhaseNotStarted PhaseStatus = "not-started"
	PhaseInProgress PhaseStatus = "in-progress"
	PhaseCompleted  PhaseStatus = "completed"
)

func (s PhaseStatus) Valid() bool {
	switch s {
	case PhaseNotStarted, PhaseInProgress, PhaseCompleted:
		return true
	}
	return false
}

// Plan is the top-level learning goal container.
type Plan struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Goals         []string   `json:"goals"`
	Status        PlanStatus `json:"status"`
	StartDate     time.Time  `json:"start_date"`
	TargetEndDate *time.Time `json:"target_end_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Phase is an ordered grouping of tasks within a plan.
// Order is not unique at the storage level.
type Phase struct {
	ID          int64       `json:"id"`
	PlanID      int64       `json:"plan_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Order       int         `json:"order"`
	Status      PhaseStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// PlanDeleteResult reports what a cascade delete removed.
type PlanDeleteResult struct {
	PlanDeleted     bool  `json:"plan_deleted"`
	PhasesDeleted   int64 `json:"phases_deleted"`
	TasksDeleted    int64 `json:"tasks_deleted"`
	TimeLogsDeleted int64 `json:"time_logs_deleted"`
	CommentsDeleted int64 `json:"comments_deleted"`
}
