package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminAuthorizer decides whether an authenticated user may call the
// platform administration endpoints. Admins are designated in
// configuration by email or user id.
type AdminAuthorizer struct {
	emails map[string]struct{}
	ids    map[uuid.UUID]struct{}
}

// NewAdminAuthorizer creates an authorizer from configured admin emails
// and user ids. Blank entries and unparseable ids are skipped.
func NewAdminAuthorizer(emails, ids []string) *AdminAuthorizer {
	a := &AdminAuthorizer{
		emails: make(map[string]struct{}, len(emails)),
		ids:    make(map[uuid.UUID]struct{}, len(ids)),
	}
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		a.emails[e] = struct{}{}
	}
	for _, s := range ids {
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			continue
		}
		a.ids[id] = struct{}{}
	}
	return a
}

// IsAdmin reports whether the identity matches a configured admin.
func (a *AdminAuthorizer) IsAdmin(userID uuid.UUID, email string) bool {
	if email != "" {
		if _, ok := a.emails[strings.ToLower(strings.TrimSpace(email))]; ok {
			return true
		}
	}
	if userID != uuid.Nil {
		if _, ok := a.ids[userID]; ok {
			return true
		}
	}
	return false
}

// RequireAdmin returns a middleware that rejects non-admin callers.
// It must run after Auth so the identity is already in the context.
func RequireAdmin(authorizer *AdminAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "User not authenticated",
				},
			})
			return
		}

		email, _ := GetUserEmail(c)
		if authorizer == nil || !authorizer.IsAdmin(userID, email) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Insufficient permissions",
				},
			})
			return
		}

		c.Next()
	}
}
