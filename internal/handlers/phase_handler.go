package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/internal/models"
	"portfolio/internal/services"
)

type PhaseHandler struct {
	service services.PhaseService
}

func NewPhaseHandler(service services.PhaseService) *PhaseHandler {
	return &PhaseHandler{service: service}
}

type phaseRequest struct {
	PlanID      int64               `json:"plan_id"`
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Order       *int                `json:"order"`
	Status      *models.PhaseStatus `json:"status"`
}

func (r phaseRequest) apply(p *models.Phase) {
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Order != nil {
		p.Order = *r.Order
	}
	if r.Status != nil {
		p.Status = *r.Status
	}
}

func (h *PhaseHandler) Create(c *gin.Context) {
	var req phaseRequest
	if !bindJSON(c, "[phase][create]", &req) {
		return
	}
	phase := &models.Phase{PlanID: req.PlanID}
	req.apply(phase)
	created, err := h.service.Create(c.Request.Context(), phase)
	if err != nil {
		respondError(c, "[phase][create]", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *PhaseHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req phaseRequest
	if !bindJSON(c, "[phase][update]", &req) {
		return
	}
	current, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[phase][update]", err)
		return
	}
	update := *current
	req.apply(&update)
	updated, err := h.service.Update(c.Request.Context(), id, &update)
	if err != nil {
		respondError(c, "[phase][update]", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete keeps the phase's tasks and leaves them without a phase.
func (h *PhaseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	n, err := h.service.DeletePhase(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[phase][delete]", err)
		return
	}
	log.Printf("[phase][delete][ok] id=%d unassigned_tasks=%d", id, n)
	c.JSON(http.StatusOK, gin.H{"message": "phase deleted", "unassigned_tasks": n})
}
