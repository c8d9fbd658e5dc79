package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio/internal/models"
	"portfolio/internal/services"
)

type ProjectHandler struct {
	service services.ProjectService
}

func NewProjectHandler(service services.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type projectRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	TechStack    []string `json:"tech_stack"`
	GithubURL    string   `json:"github_url"`
	LiveURL      string   `json:"live_url"`
	ImageURL     string   `json:"image_url"`
	Featured     bool     `json:"featured"`
	DisplayOrder int      `json:"display_order"`
}

func (r projectRequest) model() *models.Project {
	return &models.Project{
		Title:        r.Title,
		Description:  r.Description,
		TechStack:    r.TechStack,
		GithubURL:    r.GithubURL,
		LiveURL:      r.LiveURL,
		ImageURL:     r.ImageURL,
		Featured:     r.Featured,
		DisplayOrder: r.DisplayOrder,
	}
}

// @Summary  List projects
// @Tags     Projects
// @Produce  json
// @Param    featured  query  bool  false  "Only featured projects"
// @Success  200  {array}  models.Project
// @Router   /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	featured, _ := strconv.ParseBool(c.DefaultQuery("featured", "false"))
	items, err := h.service.List(c.Request.Context(), featured)
	if err != nil {
		respondError(c, "[project][list]", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[project][get]", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary   Create project
// @Tags      Projects
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     project  body  projectRequest  true  "Project"
// @Success   201  {object}  models.Project
// @Failure   400  {object}  map[string]string
// @Router    /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectRequest
	if !bindJSON(c, "[project][create]", &req) {
		return
	}
	p, err := h.service.Create(c.Request.Context(), req.model())
	if err != nil {
		respondError(c, "[project][create]", err)
		return
	}
	log.Printf("[project][create][ok] id=%d title=%q", p.ID, p.Title)
	c.JSON(http.StatusCreated, p)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req projectRequest
	if !bindJSON(c, "[project][update]", &req) {
		return
	}
	p, err := h.service.Update(c.Request.Context(), id, req.model())
	if err != nil {
		respondError(c, "[project][update]", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "[project][delete]", err)
		return
	}
	log.Printf("[project][delete][ok] id=%d", id)
	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

type SkillHandler struct {
	service services.SkillService
}

func NewSkillHandler(service services.SkillService) *SkillHandler {
	return &SkillHandler{service: service}
}

type skillRequest struct {
	Name         string `json:"name" binding:"required"`
	Category     string `json:"category"`
	Level        int    `json:"level"`
	Icon         string `json:"icon"`
	DisplayOrder int    `json:"display_order"`
}

func (r skillRequest) model() *models.Skill {
	return &models.Skill{
		Name:         r.Name,
		Category:     r.Category,
		Level:        r.Level,
		Icon:         r.Icon,
		DisplayOrder: r.DisplayOrder,
	}
}

// @Summary  List skills
// @Tags     Skills
// @Produce  json
// @Param    category  query  string  false  "Category filter"
// @Success  200  {array}  models.Skill
// @Router   /skills [get]
func (h *SkillHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, "[skill][list]", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *SkillHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	s, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[skill][get]", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SkillHandler) Create(c *gin.Context) {
	var req skillRequest
	if !bindJSON(c, "[skill][create]", &req) {
		return
	}
	s, err := h.service.Create(c.Request.Context(), req.model())
	if err != nil {
		respondError(c, "[skill][create]", err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *SkillHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req skillRequest
	if !bindJSON(c, "[skill][update]", &req) {
		return
	}
	s, err := h.service.Update(c.Request.Context(), id, req.model())
	if err != nil {
		respondError(c, "[skill][update]", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SkillHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "[skill][delete]", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "skill deleted"})
}

type ExperienceHandler struct {
	service services.ExperienceService
}

func NewExperienceHandler(service services.ExperienceService) *ExperienceHandler {
	return &ExperienceHandler{service: service}
}

type experienceRequest struct {
	Company      string   `json:"company" binding:"required"`
	Position     string   `json:"position" binding:"required"`
	Location     string   `json:"location"`
	StartDate    string   `json:"start_date" binding:"required"` // YYYY-MM-DD or RFC3339
	EndDate      string   `json:"end_date"`
	Current      bool     `json:"current"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	DisplayOrder int      `json:"display_order"`
}

func (h *ExperienceHandler) model(c *gin.Context, r experienceRequest) (*models.Experience, bool) {
	start, ok := dateField(c, "start_date", r.StartDate)
	if !ok {
		return nil, false
	}
	end, ok := dateField(c, "end_date", r.EndDate)
	if !ok {
		return nil, false
	}
	e := &models.Experience{
		Company:      r.Company,
		Position:     r.Position,
		Location:     r.Location,
		EndDate:      end,
		Current:      r.Current,
		Description:  r.Description,
		Technologies: r.Technologies,
		DisplayOrder: r.DisplayOrder,
	}
	if start != nil {
		e.StartDate = *start
	}
	return e, true
}

// @Summary  List experiences
// @Tags     Experiences
// @Produce  json
// @Success  200  {array}  models.Experience
// @Router   /experiences [get]
func (h *ExperienceHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, "[experience][list]", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ExperienceHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	e, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[experience][get]", err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *ExperienceHandler) Create(c *gin.Context) {
	var req experienceRequest
	if !bindJSON(c, "[experience][create]", &req) {
		return
	}
	in, ok := h.model(c, req)
	if !ok {
		return
	}
	e, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, "[experience][create]", err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *ExperienceHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req experienceRequest
	if !bindJSON(c, "[experience][update]", &req) {
		return
	}
	in, ok := h.model(c, req)
	if !ok {
		return
	}
	e, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, "[experience][update]", err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *ExperienceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "[experience][delete]", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "experience deleted"})
}
