package invitation

import (
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildVerificationURL(t *testing.T) {
	base := "https://app.provely.io"
	inviterID := uuid.New()

	newInvite := func() *Invitation {
		return &Invitation{
			ID:          uuid.New(),
			Domain:      DomainSkills,
			InvitedByID: inviterID,
			Email:       "verifier@example.com",
		}
	}

	parse := func(t *testing.T, raw string) url.Values {
		t.Helper()
		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "/verify", u.Path)
		return u.Query()
	}

	t.Run("unregistered invitee routes to signup", func(t *testing.T) {
		inv := newInvite()
		nid := uuid.New()

		q := parse(t, BuildVerificationURL(base, inv, &nid))

		assert.Equal(t, "signup", q.Get("redirectUrl"))
		assert.Equal(t, inviterID.String(), q.Get("invitedBy"))
		assert.Equal(t, "verifier@example.com", q.Get("email"))
		assert.Equal(t, inv.ID.String(), q.Get("id"))
		assert.Equal(t, "SKILLS", q.Get("type"))
		assert.Equal(t, nid.String(), q.Get("notificationId"))
	})

	t.Run("registered invitee routes to login", func(t *testing.T) {
		inv := newInvite()
		userID := uuid.New()
		inv.UserID = &userID

		q := parse(t, BuildVerificationURL(base, inv, nil))

		assert.Equal(t, "login", q.Get("redirectUrl"))
	})

	t.Run("missing notification leaves parameter empty", func(t *testing.T) {
		inv := newInvite()

		raw := BuildVerificationURL(base, inv, nil)
		q := parse(t, raw)

		assert.Contains(t, raw, "notificationId=")
		assert.Equal(t, "", q.Get("notificationId"))
	})

	t.Run("domain drives the type parameter", func(t *testing.T) {
		inv := newInvite()
		inv.Domain = DomainClientProject

		q := parse(t, BuildVerificationURL(base, inv, nil))

		assert.Equal(t, "CLIENT_PROJECT", q.Get("type"))
	})
}
