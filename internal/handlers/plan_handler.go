package handlers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio/internal/export"
	"portfolio/internal/models"
	"portfolio/internal/pdf"
	"portfolio/internal/services"
)

type PlanHandler struct {
	plans     services.PlanService
	phases    services.PhaseService
	tasks     services.TaskService
	analytics services.AnalyticsService
	reports   pdf.Generator
}

func NewPlanHandler(
	plans services.PlanService,
	phases services.PhaseService,
	tasks services.TaskService,
	analytics services.AnalyticsService,
	reports pdf.Generator,
) *PlanHandler {
	return &PlanHandler{plans: plans, phases: phases, tasks: tasks, analytics: analytics, reports: reports}
}

type planRequest struct {
	Title         *string            `json:"title"`
	Description   *string            `json:"description"`
	Goals         []string           `json:"goals"`
	Status        *models.PlanStatus `json:"status"`
	StartDate     *string            `json:"start_date"`
	TargetEndDate *string            `json:"target_end_date"` // "" clears it
}

// apply copies the fields present in the request onto p.
func (r planRequest) apply(c *gin.Context, p *models.Plan) bool {
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Goals != nil {
		p.Goals = r.Goals
	}
	if r.Status != nil {
		p.Status = *r.Status
	}
	if r.StartDate != nil {
		t, ok := dateField(c, "start_date", *r.StartDate)
		if !ok {
			return false
		}
		if t != nil {
			p.StartDate = *t
		}
	}
	if r.TargetEndDate != nil {
		t, ok := dateField(c, "target_end_date", *r.TargetEndDate)
		if !ok {
			return false
		}
		p.TargetEndDate = t
	}
	return true
}

// @Summary   List learning plans
// @Tags      Learning
// @Produce   json
// @Param     status  query  string  false  "active|completed|paused|archived"
// @Success   200  {array}  models.Plan
// @Router    /plans [get]
func (h *PlanHandler) List(c *gin.Context) {
	var status *models.PlanStatus
	if raw := c.Query("status"); raw != "" {
		s := models.PlanStatus(raw)
		if !s.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		status = &s
	}
	plans, err := h.plans.List(c.Request.Context(), status)
	if err != nil {
		respondError(c, "[plan][list]", err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *PlanHandler) Create(c *gin.Context) {
	var req planRequest
	if !bindJSON(c, "[plan][create]", &req) {
		return
	}
	plan := &models.Plan{}
	if !req.apply(c, plan) {
		return
	}
	created, err := h.plans.Create(c.Request.Context(), plan)
	if err != nil {
		respondError(c, "[plan][create]", err)
		return
	}
	log.Printf("[plan][create][ok] id=%d title=%q", created.ID, created.Title)
	c.JSON(http.StatusCreated, created)
}

func (h *PlanHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	plan, err := h.plans.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[plan][get]", err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req planRequest
	if !bindJSON(c, "[plan][update]", &req) {
		return
	}
	current, err := h.plans.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[plan][update]", err)
		return
	}
	update := *current
	if !req.apply(c, &update) {
		return
	}
	updated, err := h.plans.Update(c.Request.Context(), id, &update)
	if err != nil {
		respondError(c, "[plan][update]", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary      Delete a plan with its phases, tasks, time logs and comments
// @Description  When cleanup of children fails after the plan itself is gone, the response is still 200 with cleanup_error set.
// @Tags         Learning
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Plan ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /plans/{id} [delete]
func (h *PlanHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	res, err := h.plans.DeletePlan(c.Request.Context(), id)
	if err != nil {
		if res != nil && res.PlanDeleted {
			log.Printf("[plan][delete][partial] id=%d result=%+v err=%v", id, *res, err)
			c.JSON(http.StatusOK, gin.H{"message": "plan deleted", "result": res, "cleanup_error": err.Error()})
			return
		}
		respondError(c, "[plan][delete]", err)
		return
	}
	log.Printf("[plan][delete][ok] id=%d result=%+v", id, *res)
	c.JSON(http.StatusOK, gin.H{"message": "plan deleted", "result": res})
}

// @Summary   Plan statistics
// @Tags      Learning
// @Produce   json
// @Param     id   path  int  true  "Plan ID"
// @Success   200  {object}  models.PlanStats
// @Router    /plans/{id}/stats [get]
func (h *PlanHandler) Stats(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	st, err := h.analytics.GetPlanStats(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[plan][stats]", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *PlanHandler) Phases(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	phases, err := h.phases.ListByPlan(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[plan][phases]", err)
		return
	}
	c.JSON(http.StatusOK, phases)
}

// Tasks lists a plan's tasks; phase_id and status narrow the result.
func (h *PlanHandler) Tasks(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, err := h.plans.GetByID(c.Request.Context(), id); err != nil {
		respondError(c, "[plan][tasks]", err)
		return
	}
	filter := models.TaskFilter{PlanID: &id}
	if filter.PhaseID, ok = optionalInt64Query(c, "phase_id"); !ok {
		return
	}
	if raw := c.Query("status"); raw != "" {
		s := models.TaskStatus(raw)
		if !s.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		filter.Status = &s
	}
	tasks, err := h.tasks.GetAll(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "[plan][tasks]", err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// @Summary   Plan report as PDF
// @Tags      Learning
// @Produce   application/pdf
// @Param     id  path  int  true  "Plan ID"
// @Router    /plans/{id}/report.pdf [get]
func (h *PlanHandler) ReportPDF(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	exp, err := h.analytics.PlanExport(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[plan][report]", err)
		return
	}
	var buf bytes.Buffer
	data := pdf.PlanReportData{Plan: exp.Plan, Stats: exp.Stats, GeneratedAt: time.Now()}
	if err := h.reports.GeneratePlanReport(&buf, data); err != nil {
		respondError(c, "[plan][report]", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="plan_%d_report.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *PlanHandler) TimeLogsCSV(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	exp, err := h.analytics.PlanExport(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[plan][csv]", err)
		return
	}
	byID := make(map[int64]models.Task, len(exp.Tasks))
	for _, t := range exp.Tasks {
		byID[t.ID] = t
	}
	var buf bytes.Buffer
	if err := export.TimeLogsCSV(&buf, exp.Logs, byID); err != nil {
		respondError(c, "[plan][csv]", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="plan_%d_timelogs.csv"`, id))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
