package invitation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDomain(t *testing.T) {
	tests := []struct {
		input    string
		expected Domain
		ok       bool
	}{
		{"skills", DomainSkills, true},
		{"SKILLS", DomainSkills, true},
		{" employment ", DomainEmployment, true},
		{"CLIENT_PROJECT", DomainClientProject, true},
		{"project", DomainProject, true},
		{"team", DomainTeam, true},
		{"connection", DomainConnection, true},
		{"friendship", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, ok := ParseDomain(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestDomain_Classification(t *testing.T) {
	tests := []struct {
		domain         Domain
		verification   bool
		singleVerifier bool
		sendLimit      bool
		hasSubject     bool
	}{
		{DomainSkills, true, false, true, true},
		{DomainEmployment, true, true, false, true},
		{DomainClientProject, true, true, false, true},
		{DomainProject, false, false, true, true},
		{DomainTeam, false, false, true, true},
		{DomainConnection, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.domain), func(t *testing.T) {
			assert.Equal(t, tt.verification, tt.domain.IsVerification())
			assert.Equal(t, !tt.verification, tt.domain.IsMembership())
			assert.Equal(t, tt.singleVerifier, tt.domain.SingleVerifier())
			assert.Equal(t, tt.sendLimit, tt.domain.HasSendLimit())
			assert.Equal(t, tt.hasSubject, tt.domain.HasSubject())
		})
	}
}

func TestDomain_URLType(t *testing.T) {
	assert.Equal(t, "SKILLS", DomainSkills.URLType())
	assert.Equal(t, "CLIENT_PROJECT", DomainClientProject.URLType())
	assert.Equal(t, "CONNECTION", DomainConnection.URLType())
}
