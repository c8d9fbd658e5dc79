package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/internal/models"
	"portfolio/internal/services"
)

type TaskHandler struct {
	service  services.TaskService
	timer    services.TimerService
	comments services.CommentService
}

func NewTaskHandler(service services.TaskService, timer services.TimerService, comments services.CommentService) *TaskHandler {
	return &TaskHandler{service: service, timer: timer, comments: comments}
}

type taskRequest struct {
	PlanID         int64              `json:"plan_id"`
	PhaseID        *int64             `json:"phase_id"` // 0 unassigns the task
	Title          *string            `json:"title"`
	Description    *string            `json:"description"`
	Aim            *string            `json:"aim"`
	Status         *models.TaskStatus `json:"status"`
	TotalTimeSpent *int64             `json:"total_time_spent"`
}

func (r taskRequest) apply(t *models.Task) {
	if r.PhaseID != nil {
		if *r.PhaseID == 0 {
			t.PhaseID = nil
		} else {
			id := *r.PhaseID
			t.PhaseID = &id
		}
	}
	if r.Title != nil {
		t.Title = *r.Title
	}
	if r.Description != nil {
		t.Description = *r.Description
	}
	if r.Aim != nil {
		t.Aim = *r.Aim
	}
	if r.Status != nil {
		t.Status = *r.Status
	}
	if r.TotalTimeSpent != nil {
		t.TotalTimeSpent = *r.TotalTimeSpent
	}
}

func (r taskRequest) patch() models.TaskPatch {
	return models.TaskPatch{
		PhaseID:        r.PhaseID,
		Title:          r.Title,
		Description:    r.Description,
		Aim:            r.Aim,
		Status:         r.Status,
		TotalTimeSpent: r.TotalTimeSpent,
	}
}

// @Summary   Create task
// @Tags      Learning
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     task  body  taskRequest  true  "Task"
// @Success   201  {object}  models.Task
// @Failure   400  {object}  map[string]string
// @Router    /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req taskRequest
	if !bindJSON(c, "[task][create]", &req) {
		return
	}
	task := &models.Task{PlanID: req.PlanID}
	req.apply(task)

	created, err := h.service.Create(c.Request.Context(), task)
	if err != nil {
		respondError(c, "[task][create]", err)
		return
	}
	log.Printf("[task][create][ok] id=%d plan_id=%d title=%q", created.ID, created.PlanID, created.Title)
	c.JSON(http.StatusCreated, created)
}

// GET /tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	task, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[task][getByID]", err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// PUT /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req taskRequest
	if !bindJSON(c, "[task][update]", &req) {
		return
	}
	updated, err := h.service.Update(c.Request.Context(), id, req.patch())
	if err != nil {
		respondError(c, "[task][update]", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "[task][delete]", err)
		return
	}
	log.Printf("[task][delete][ok] id=%d", id)
	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}

// @Summary   Start the task timer
// @Tags      Learning
// @Produce   json
// @Security  BearerAuth
// @Param     id  path  int  true  "Task ID"
// @Success   201  {object}  models.TimeLog
// @Failure   404  {object}  map[string]string
// @Failure   409  {object}  map[string]string
// @Router    /tasks/{id}/timer/start [post]
func (h *TaskHandler) StartTimer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	tl, err := h.timer.StartTimer(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[task][timer][start]", err)
		return
	}
	log.Printf("[task][timer][start][ok] task=%d log=%d", id, tl.ID)
	c.JSON(http.StatusCreated, tl)
}

// @Summary   Stop the task timer
// @Tags      Learning
// @Produce   json
// @Security  BearerAuth
// @Param     id  path  int  true  "Task ID"
// @Success   200  {object}  models.TimerStopResult
// @Failure   404  {object}  map[string]string
// @Router    /tasks/{id}/timer/stop [post]
func (h *TaskHandler) StopTimer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	res, err := h.timer.StopTimer(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[task][timer][stop]", err)
		return
	}
	log.Printf("[task][timer][stop][ok] task=%d duration=%ds total=%ds", id, res.TimeLog.Duration, res.TotalTimeSpent)
	c.JSON(http.StatusOK, res)
}

// ActiveTimer answers {"active": null} when nothing runs.
func (h *TaskHandler) ActiveTimer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	active, err := h.timer.GetActiveTimer(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[task][timer][active]", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": active})
}

func (h *TaskHandler) TimeLogs(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	logs, err := h.timer.ListTimeLogs(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[task][timelogs]", err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *TaskHandler) ListComments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	items, err := h.comments.ListByTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[task][comments]", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *TaskHandler) AddComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req commentRequest
	if !bindJSON(c, "[task][comment]", &req) {
		return
	}
	comment, err := h.comments.Create(c.Request.Context(), id, req.Content)
	if err != nil {
		respondError(c, "[task][comment]", err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

type CommentHandler struct {
	service services.CommentService
}

func NewCommentHandler(service services.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req commentRequest
	if !bindJSON(c, "[comment][update]", &req) {
		return
	}
	comment, err := h.service.Update(c.Request.Context(), id, req.Content)
	if err != nil {
		respondError(c, "[comment][update]", err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "[comment][delete]", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
