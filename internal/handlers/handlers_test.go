package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio/internal/apperr"
	"portfolio/internal/models"
	"portfolio/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubContacts struct {
	services.ContactService
	submitted []string
}

func (s *stubContacts) Submit(ctx context.Context, name, email, message string) (*models.Contact, error) {
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email", apperr.ErrValidation)
	}
	s.submitted = append(s.submitted, email)
	return &models.Contact{ID: 1, Name: name, Email: email, Message: message, CreatedAt: time.Now()}, nil
}

type stubTimer struct {
	services.TimerService
	running map[int64]bool
}

func (s *stubTimer) StartTimer(ctx context.Context, taskID int64) (*models.TimeLog, error) {
	if taskID == 404 {
		return nil, fmt.Errorf("task %d: %w", taskID, apperr.ErrNotFound)
	}
	if s.running[taskID] {
		return nil, fmt.Errorf("timer already running: %w", apperr.ErrConflict)
	}
	s.running[taskID] = true
	return &models.TimeLog{ID: 7, TaskID: taskID, StartTime: time.Now(), IsActive: true}, nil
}

type stubTasks struct {
	services.TaskService
	got models.TaskPatch
}

func (s *stubTasks) Update(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	s.got = patch
	return &models.Task{ID: id, Title: "t", TotalTimeSpent: 120}, nil
}

type stubPlans struct {
	services.PlanService
	res *models.PlanDeleteResult
	err error
}

func (s *stubPlans) DeletePlan(ctx context.Context, id int64) (*models.PlanDeleteResult, error) {
	return s.res, s.err
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestContactSubmit(t *testing.T) {
	svc := &stubContacts{}
	r := gin.New()
	r.POST("/contact", NewContactHandler(svc).Submit)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"ok", `{"name":"Ann","email":"ann@example.com","message":"hi"}`, http.StatusCreated},
		{"missing message", `{"name":"Ann","email":"ann@example.com"}`, http.StatusBadRequest},
		{"bad email", `{"name":"Ann","email":"nope","message":"hi"}`, http.StatusBadRequest},
		{"malformed", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/contact", tt.body)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
	if len(svc.submitted) != 1 {
		t.Fatalf("submitted = %v, want one", svc.submitted)
	}
}

func TestStartTimerStatuses(t *testing.T) {
	r := gin.New()
	r.POST("/tasks/:id/timer/start", NewTaskHandler(nil, &stubTimer{running: map[int64]bool{}}, nil).StartTimer)

	if w := do(r, http.MethodPost, "/tasks/3/timer/start", ""); w.Code != http.StatusCreated {
		t.Fatalf("first start = %d, want 201", w.Code)
	}
	w := do(r, http.MethodPost, "/tasks/3/timer/start", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("second start = %d, want 409", w.Code)
	}
	if _, ok := decode(t, w)["error"]; !ok {
		t.Fatal("conflict response has no error field")
	}
	if w := do(r, http.MethodPost, "/tasks/404/timer/start", ""); w.Code != http.StatusNotFound {
		t.Fatalf("unknown task = %d, want 404", w.Code)
	}
	if w := do(r, http.MethodPost, "/tasks/abc/timer/start", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("bad id = %d, want 400", w.Code)
	}
}

func TestPlanDeletePartialCleanup(t *testing.T) {
	plans := &stubPlans{
		res: &models.PlanDeleteResult{PlanDeleted: true, PhasesDeleted: 2},
		err: fmt.Errorf("delete tasks: %w", services.ErrCascadeIncomplete),
	}
	r := gin.New()
	r.DELETE("/plans/:id", NewPlanHandler(plans, nil, nil, nil, nil).Delete)

	w := do(r, http.MethodDelete, "/plans/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decode(t, w)
	if _, ok := body["cleanup_error"]; !ok {
		t.Fatalf("missing cleanup_error: %v", body)
	}

	plans.res, plans.err = nil, fmt.Errorf("plan 9: %w", apperr.ErrNotFound)
	if w := do(r, http.MethodDelete, "/plans/9", ""); w.Code != http.StatusNotFound {
		t.Fatalf("missing plan = %d, want 404", w.Code)
	}
}

func TestRespondErrorHidesInternal(t *testing.T) {
	r := gin.New()
	r.GET("/boom", func(c *gin.Context) {
		respondError(c, "[test]", fmt.Errorf("pq: connection refused"))
	})
	w := do(r, http.MethodGet, "/boom", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if got := decode(t, w)["error"]; got != "internal server error" {
		t.Fatalf("error = %v", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2024-03-01")
	if err != nil || d == nil || d.Day() != 1 || d.Month() != time.March {
		t.Fatalf("date: %v %v", d, err)
	}
	ts, err := parseDate("2024-03-01T10:00:00+02:00")
	if err != nil || ts.Hour() != 8 {
		t.Fatalf("rfc3339: %v %v", ts, err)
	}
	if d, err := parseDate(""); d != nil || err != nil {
		t.Fatalf("empty: %v %v", d, err)
	}
	if _, err := parseDate("01/03/2024"); err == nil {
		t.Fatal("expected error")
	}
}

func TestTaskUpdateSendsOnlyPresentFields(t *testing.T) {
	tasks := &stubTasks{}
	r := gin.New()
	r.PUT("/tasks/:id", NewTaskHandler(tasks, nil, nil).Update)

	if w := do(r, http.MethodPut, "/tasks/5", `{"title":"renamed"}`); w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	if tasks.got.Title == nil || *tasks.got.Title != "renamed" {
		t.Fatalf("title = %v", tasks.got.Title)
	}
	if tasks.got.TotalTimeSpent != nil || tasks.got.PhaseID != nil || tasks.got.Status != nil {
		t.Fatalf("unexpected fields in %+v", tasks.got)
	}

	if w := do(r, http.MethodPut, "/tasks/5", `{"phase_id":0,"total_time_spent":30}`); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if tasks.got.PhaseID == nil || *tasks.got.PhaseID != 0 {
		t.Fatalf("phase_id = %v, want explicit 0", tasks.got.PhaseID)
	}
	if tasks.got.TotalTimeSpent == nil || *tasks.got.TotalTimeSpent != 30 {
		t.Fatalf("total_time_spent = %v", tasks.got.TotalTimeSpent)
	}
}
