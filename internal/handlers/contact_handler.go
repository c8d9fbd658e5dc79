package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/internal/services"
)

type ContactHandler struct {
	service services.ContactService
}

func NewContactHandler(service services.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// @Summary      Submit a contact message
// @Description  Stores the message and notifies the owner when notifications are enabled
// @Tags         Contact
// @Accept       json
// @Produce      json
// @Param        contact  body      contactRequest  true  "Message"
// @Success      201      {object}  models.Contact
// @Failure      400      {object}  map[string]string
// @Router       /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactRequest
	if !bindJSON(c, "[contact][submit]", &req) {
		return
	}
	msg, err := h.service.Submit(c.Request.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		respondError(c, "[contact][submit]", err)
		return
	}
	log.Printf("[contact][submit][ok] id=%d email=%q", msg.ID, msg.Email)
	c.JSON(http.StatusCreated, msg)
}

// @Summary   List contact messages, newest first
// @Tags      Contact
// @Produce   json
// @Security  BearerAuth
// @Success   200  {array}  models.Contact
// @Router    /contact [get]
func (h *ContactHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, "[contact][list]", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary   Contact messages grouped by sender
// @Tags      Contact
// @Produce   json
// @Security  BearerAuth
// @Success   200  {array}  models.ContactThread
// @Router    /contact/threads [get]
func (h *ContactHandler) Threads(c *gin.Context) {
	threads, err := h.service.ListThreads(c.Request.Context())
	if err != nil {
		respondError(c, "[contact][threads]", err)
		return
	}
	c.JSON(http.StatusOK, threads)
}

func (h *ContactHandler) Stats(c *gin.Context) {
	st, err := h.service.Stats(c.Request.Context())
	if err != nil {
		respondError(c, "[contact][stats]", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *ContactHandler) Reply(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Reply string `json:"reply" binding:"required"`
	}
	if !bindJSON(c, "[contact][reply]", &req) {
		return
	}
	msg, err := h.service.Reply(c.Request.Context(), id, req.Reply)
	if err != nil {
		respondError(c, "[contact][reply]", err)
		return
	}
	log.Printf("[contact][reply][ok] id=%d", id)
	c.JSON(http.StatusOK, msg)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "[contact][delete]", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "contact deleted"})
}
