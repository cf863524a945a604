package invitation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/provely/server/internal/module/profile"
	"github.com/provely/server/internal/module/user"
	"github.com/provely/server/internal/utils/middleware"
)

// Handler handles HTTP requests for invitations.
type Handler struct {
	service *Service
}

// NewHandler creates a new invitation handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers authenticated invitation routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	invites := r.Group("/invites")
	{
		invites.POST("", h.SendInvites)
		invites.GET("/:id/questions", h.GetVerificationQuestions)
		invites.POST("/:id/verify", h.VerifyAnswers)
		invites.GET("/:id/answers", h.GetVerificationAnswers)
		invites.POST("/:id/accept", h.AcceptInvite)
	}
}

// RegisterPublicRoutes registers the landing-page lookup.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/verifications/:id", h.GetVerificationResult)
}

// SendInvites handles sending invitations.
//
//	@Summary		Send invitations
//	@Description	Invite one or more people to verify a record or join a collaboration
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		SendInvitesRequest	true	"Invitations to send"
//	@Success		201		{object}	map[string]interface{}
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Failure		403		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/invites [post]
func (h *Handler) SendInvites(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	var req SendInvitesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invs, err := h.service.SendInvites(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	items := make([]*InvitationResponse, 0, len(invs))
	for _, inv := range invs {
		items = append(items, inv.ToResponse())
	}
	c.JSON(http.StatusCreated, gin.H{"invitations": items})
}

// GetVerificationQuestions handles fetching the questionnaire.
//
//	@Summary		Get verification questions
//	@Description	Get the questionnaire for an invitation addressed to the caller
//	@Tags			Invitations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Invitation ID"
//	@Success		200	{object}	map[string]interface{}
//	@Failure		400	{object}	map[string]string
//	@Failure		401	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/invites/{id}/questions [get]
func (h *Handler) GetVerificationQuestions(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invitation id"})
		return
	}

	questions, err := h.service.GetVerificationQuestions(c.Request.Context(), id, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// VerifyAnswers handles questionnaire submission.
//
//	@Summary		Submit verification answers
//	@Description	Answer the questionnaire for an invitation addressed to the caller
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string					true	"Invitation ID"
//	@Param			request	body		VerifyAnswersRequest	true	"Answers"
//	@Success		200		{object}	InvitationResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/invites/{id}/verify [post]
func (h *Handler) VerifyAnswers(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invitation id"})
		return
	}

	var req VerifyAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inv, err := h.service.VerifyAnswers(c.Request.Context(), id, userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, inv.ToResponse())
}

// GetVerificationAnswers handles reading a submitted questionnaire.
//
//	@Summary		Get verification answers
//	@Description	Read the answers stored for a verified invitation
//	@Tags			Invitations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Invitation ID"
//	@Success		200	{object}	map[string]interface{}
//	@Failure		400	{object}	map[string]string
//	@Failure		401	{object}	map[string]string
//	@Failure		403	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/invites/{id}/answers [get]
func (h *Handler) GetVerificationAnswers(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invitation id"})
		return
	}

	answers, err := h.service.GetVerificationAnswers(c.Request.Context(), id, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"answers": answers})
}

// AcceptInvite handles accepting a project, team or connection invite.
//
//	@Summary		Accept invitation
//	@Description	Accept a project, team or connection invitation
//	@Tags			Invitations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Invitation ID"
//	@Success		200	{object}	InvitationResponse
//	@Failure		400	{object}	map[string]string
//	@Failure		401	{object}	map[string]string
//	@Failure		403	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Failure		409	{object}	map[string]string
//	@Router			/invites/{id}/accept [post]
func (h *Handler) AcceptInvite(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invitation id"})
		return
	}

	inv, err := h.service.AcceptInvite(c.Request.Context(), id, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, inv.ToResponse())
}

// GetVerificationResult handles the public landing-page lookup.
//
//	@Summary		Get verification result
//	@Description	Look up an invitation's state for the verify landing page
//	@Tags			Invitations
//	@Produce		json
//	@Param			id		path		string	true	"Invitation ID"
//	@Param			type	query		string	true	"Domain type from the verification URL"
//	@Success		200		{object}	VerificationResult
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/verifications/{id} [get]
func (h *Handler) GetVerificationResult(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invitation id"})
		return
	}

	domainType := c.Query("type")
	if domainType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type is required"})
		return
	}

	result, err := h.service.GetVerificationResult(c.Request.Context(), id, domainType)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) getUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	return userID, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidDomain):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_domain"})
	case errors.Is(err, ErrDomainDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": "domain_disabled"})
	case errors.Is(err, ErrSelfInvite):
		c.JSON(http.StatusBadRequest, gin.H{"error": "self_invite_not_allowed"})
	case errors.Is(err, ErrDuplicateInvitee):
		c.JSON(http.StatusConflict, gin.H{"error": "invite_already_sent"})
	case errors.Is(err, ErrOneVerifierOnly):
		c.JSON(http.StatusConflict, gin.H{"error": "subject_already_has_verifier"})
	case errors.Is(err, ErrInviteLimitExceeded):
		c.JSON(http.StatusForbidden, gin.H{"error": "invite_limit_exceeded"})
	case errors.Is(err, ErrInvalidVerificationID):
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid_verification_id"})
	case errors.Is(err, ErrAlreadyVerified):
		c.JSON(http.StatusConflict, gin.H{"error": "already_verified"})
	case errors.Is(err, ErrInvitationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "invitation_not_found"})
	case errors.Is(err, ErrNotSubjectOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "not_subject_owner"})
	case errors.Is(err, ErrNotInvitee):
		c.JSON(http.StatusForbidden, gin.H{"error": "invitation_not_for_you"})
	case errors.Is(err, profile.ErrSubjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "subject_not_found"})
	case errors.Is(err, profile.ErrAlreadyMember):
		c.JSON(http.StatusConflict, gin.H{"error": "user_already_member"})
	case errors.Is(err, profile.ErrAlreadyConnected):
		c.JSON(http.StatusConflict, gin.H{"error": "users_already_connected"})
	case errors.Is(err, user.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
