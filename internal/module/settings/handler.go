package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// Handler handles HTTP requests for platform settings.
type Handler struct {
	service *Service
}

// NewHandler creates a new settings handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers settings routes. The caller mounts them
// behind the admin gate; a regular account never reaches these.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin/settings")
	{
		admin.GET("", h.Get)
		admin.PUT("", h.Update)
	}
}

// UpdateSettingsRequest is the admin settings update payload.
type UpdateSettingsRequest struct {
	SkillInviteLimit   int      `json:"skill_invite_limit" binding:"min=1"`
	ProjectInviteLimit int      `json:"project_invite_limit" binding:"min=1"`
	TeamInviteLimit    int      `json:"team_invite_limit" binding:"min=1"`
	EnabledDomains     []string `json:"enabled_domains"`
}

// Get handles reading the platform settings.
//
//	@Summary		Get platform settings
//	@Description	Get current invitation limits and enabled domains
//	@Tags			Settings
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	PlatformSettings
//	@Failure		401	{object}	map[string]string
//	@Failure		403	{object}	map[string]string
//	@Router			/admin/settings [get]
func (h *Handler) Get(c *gin.Context) {
	row, err := h.service.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// Update handles replacing the platform settings.
//
//	@Summary		Update platform settings
//	@Description	Replace invitation limits and enabled domains
//	@Tags			Settings
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		UpdateSettingsRequest	true	"Settings"
//	@Success		200		{object}	PlatformSettings
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Failure		403		{object}	map[string]string
//	@Router			/admin/settings [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	row, err := h.service.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	row.SkillInviteLimit = req.SkillInviteLimit
	row.ProjectInviteLimit = req.ProjectInviteLimit
	row.TeamInviteLimit = req.TeamInviteLimit
	row.EnabledDomains = pq.StringArray(req.EnabledDomains)

	if err := h.service.Update(c.Request.Context(), row); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	c.JSON(http.StatusOK, row)
}
