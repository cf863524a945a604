package mail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectFor(t *testing.T) {
	tests := []struct {
		domain   string
		expected string
	}{
		{"skills", "Jane Doe asked you to verify a skill"},
		{"employment", "Jane Doe asked you to verify their job experience"},
		{"client_project", "Jane Doe asked you to verify a client project"},
		{"project", "Join the project Atlas"},
		{"team", "Join the team Atlas"},
		{"connection", "Jane Doe wants to connect with you"},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			assert.Equal(t, tt.expected, subjectFor(tt.domain, "Jane Doe", "Atlas"))
		})
	}
}

func TestRenderTemplate(t *testing.T) {
	email := InvitationEmail{
		To:           "verifier@example.com",
		ToName:       "John Roe",
		Domain:       "employment",
		SubjectName:  "Acme Corp",
		InviterName:  "Jane Doe",
		InviterEmail: "jane@example.com",
		InviterPhone: "5551234567",
		Comment:      "We worked together in 2023",
		VerifyURL:    "https://app.example.com/verify?id=abc",
	}

	t.Run("verification template renders all fields", func(t *testing.T) {
		body, err := renderTemplate(templateFor(email.Domain), templateData(email))
		require.NoError(t, err)

		assert.Contains(t, body, "John Roe")
		assert.Contains(t, body, "Jane Doe")
		assert.Contains(t, body, "Acme Corp")
		assert.Contains(t, body, "jane@example.com")
		assert.Contains(t, body, "+1(555)123-4567")
		assert.Contains(t, body, "We worked together in 2023")
		assert.Contains(t, body, email.VerifyURL)
	})

	t.Run("missing recipient name falls back to greeting", func(t *testing.T) {
		anon := email
		anon.ToName = ""
		body, err := renderTemplate(templateFor(anon.Domain), templateData(anon))
		require.NoError(t, err)
		assert.Contains(t, body, "Hi there,")
	})

	t.Run("empty comment is omitted", func(t *testing.T) {
		quiet := email
		quiet.Comment = ""
		body, err := renderTemplate(templateFor(quiet.Domain), templateData(quiet))
		require.NoError(t, err)
		assert.NotContains(t, body, "&ldquo;&rdquo;")
	})

	t.Run("membership template names the subject", func(t *testing.T) {
		join := email
		join.Domain = "team"
		join.SubjectName = "Platform"
		body, err := renderTemplate(templateFor(join.Domain), templateData(join))
		require.NoError(t, err)
		assert.True(t, strings.Contains(body, "invited you to join Platform"))
	})

	t.Run("connection template has no subject", func(t *testing.T) {
		conn := email
		conn.Domain = "connection"
		conn.SubjectName = ""
		body, err := renderTemplate(templateFor(conn.Domain), templateData(conn))
		require.NoError(t, err)
		assert.Contains(t, body, "wants to connect with you")
	})
}
