package models

import "time"

// TimeLog is a single start/stop timer session attributed to a task.
type TimeLog struct {
	ID        int64      `json:"id"`
	TaskID    int64      `json:"task_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Duration  int64      `json:"duration"` // seconds
	IsActive  bool       `json:"is_active"`
}

// ElapsedSeconds returns whole seconds between start and end.
// A stop earlier than the start (clock adjustment) yields zero.
func ElapsedSeconds(start, end time.Time) int64 {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	return int64(d / time.Second)
}

// ActiveTimer is the view of a running timer returned to clients.
type ActiveTimer struct {
	TimeLog
	ElapsedSeconds int64 `json:"elapsed_seconds"`
}

// TimerStopResult is returned when a timer is stopped.
type TimerStopResult struct {
	TimeLog        TimeLog `json:"time_log"`
	TotalTimeSpent int64   `json:"total_time_spent"`
}
