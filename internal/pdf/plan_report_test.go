package pdf

import (
	"bytes"
	"testing"
	"time"

	"portfolio/internal/models"
)

func TestGeneratePlanReport(t *testing.T) {
	phaseID := int64(1)
	data := PlanReportData{
		Plan: models.Plan{
			ID:        1,
			Title:     "Learn Go – concurrency",
			Goals:     []string{"channels", "context"},
			Status:    models.PlanActive,
			StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Stats: models.PlanStats{
			TotalTasks:           2,
			CompletedTasks:       1,
			CompletionPercentage: 50,
			TotalHours:           "1.5",
			Phases:               []models.PhaseProgress{{PhaseID: &phaseID, Title: "basics", TotalTasks: 2, CompletedTasks: 1, CompletionPercentage: 50}},
			TaskBreakdown: []models.TaskTimeBreakdown{
				{TaskID: 1, Title: "goroutines", TotalHours: "1.0", Status: models.TaskCompleted},
				{TaskID: 2, Title: "select", TotalHours: "0.5", Status: models.TaskInProgress},
			},
		},
		GeneratedAt: time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	if err := NewReportGenerator("").GeneratePlanReport(&buf, data); err != nil {
		t.Fatalf("GeneratePlanReport: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output does not start with a PDF header: %q", buf.Bytes()[:8])
	}
}

func TestGeneratePlanReportEmptyPlan(t *testing.T) {
	var buf bytes.Buffer
	err := NewReportGenerator("").GeneratePlanReport(&buf, PlanReportData{Plan: models.Plan{Title: "empty"}})
	if err != nil {
		t.Fatalf("GeneratePlanReport: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("empty output")
	}
}
