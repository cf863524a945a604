package invitation

import (
	"net/url"

	"github.com/google/uuid"
)

// Redirect targets for the frontend verify landing page.
const (
	redirectSignup = "signup"
	redirectLogin  = "login"
)

// BuildVerificationURL builds the link embedded in invitation emails.
// Unregistered invitees are routed to signup, registered ones to login.
// notificationID is empty when no in-app notification was created.
func BuildVerificationURL(baseURL string, inv *Invitation, notificationID *uuid.UUID) string {
	redirect := redirectSignup
	if inv.IsRegistered() {
		redirect = redirectLogin
	}

	q := url.Values{}
	q.Set("redirectUrl", redirect)
	q.Set("invitedBy", inv.InvitedByID.String())
	q.Set("email", inv.Email)
	q.Set("id", inv.ID.String())
	q.Set("type", inv.Domain.URLType())
	if notificationID != nil {
		q.Set("notificationId", notificationID.String())
	} else {
		q.Set("notificationId", "")
	}

	return baseURL + "/verify?" + q.Encode()
}
