package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"portfolio/internal/models"
	"portfolio/internal/realtime"
	"portfolio/internal/services"
)

type SettingsHandler struct {
	service  services.SettingsService
	hub      *realtime.SettingsHub
	upgrader *websocket.Upgrader
}

func NewSettingsHandler(service services.SettingsService, hub *realtime.SettingsHub, upgrader *websocket.Upgrader) *SettingsHandler {
	return &SettingsHandler{service: service, hub: hub, upgrader: upgrader}
}

// @Summary  Site settings
// @Tags     Settings
// @Produce  json
// @Success  200  {object}  models.SiteSettings
// @Router   /settings [get]
func (h *SettingsHandler) GetSite(c *gin.Context) {
	s, err := h.service.GetSite(c.Request.Context())
	if err != nil {
		respondError(c, "[settings][get]", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) UpdateSite(c *gin.Context) {
	var req models.SiteSettings
	if !bindJSON(c, "[settings][update]", &req) {
		return
	}
	s, err := h.service.UpdateSite(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "[settings][update]", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) GetContact(c *gin.Context) {
	s, err := h.service.GetContact(c.Request.Context())
	if err != nil {
		respondError(c, "[contact-settings][get]", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) UpdateContact(c *gin.Context) {
	var req models.ContactSettings
	if !bindJSON(c, "[contact-settings][update]", &req) {
		return
	}
	s, err := h.service.UpdateContact(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "[contact-settings][update]", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// Stream upgrades to a websocket that receives every settings change.
func (h *SettingsHandler) Stream(c *gin.Context) {
	h.hub.ServeWS(h.upgrader, c.Writer, c.Request)
}
