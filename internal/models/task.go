// internal/models/task.go
package models

import "time"

// TaskStatus defines the possible statuses for a learning task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// Task is a unit of work inside a plan, optionally grouped under a phase.
// TotalTimeSpent is in seconds and only grows through the timer, except on explicit edit.
type Task struct {
	ID             int64      `json:"id"`
	PlanID         int64      `json:"plan_id"`
	PhaseID        *int64     `json:"phase_id,omitempty"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Aim            string     `json:"aim"`
	Status         TaskStatus `json:"status"`
	TotalTimeSpent int64      `json:"total_time_spent"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TaskPatch carries the fields of a partial task edit; nil means unchanged.
// A PhaseID of 0 unassigns the task.
type TaskPatch struct {
	PhaseID        *int64
	Title          *string
	Description    *string
	Aim            *string
	Status         *TaskStatus
	TotalTimeSpent *int64
}

// TaskFilter defines the available parameters for filtering tasks.
type TaskFilter struct {
	PlanID  *int64
	PhaseID *int64
	Status  *TaskStatus
}

// Comment is a free-form note attached to a task.
type Comment struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
