package invitation

import "strings"

// Domain discriminates which subject, limits and templates apply to an
// invitation. One invitations table serves all six.
type Domain string

const (
	DomainSkills        Domain = "skills"
	DomainEmployment    Domain = "employment"
	DomainClientProject Domain = "client_project"
	DomainProject       Domain = "project"
	DomainTeam          Domain = "team"
	DomainConnection    Domain = "connection"
)

// ParseDomain normalizes an API-supplied domain string. Accepts both the
// stored form and the uppercase form used in verification URLs.
func ParseDomain(s string) (Domain, bool) {
	d := Domain(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DomainSkills, DomainEmployment, DomainClientProject,
		DomainProject, DomainTeam, DomainConnection:
		return d, true
	default:
		return "", false
	}
}

// IsValid checks if the domain is one of the six known values.
func (d Domain) IsValid() bool {
	_, ok := ParseDomain(string(d))
	return ok
}

// IsVerification reports whether the domain resolves through the
// questionnaire flow rather than a plain accept.
func (d Domain) IsVerification() bool {
	switch d {
	case DomainSkills, DomainEmployment, DomainClientProject:
		return true
	default:
		return false
	}
}

// IsMembership reports whether accepting the invitation creates a
// membership or connection mapping.
func (d Domain) IsMembership() bool {
	return !d.IsVerification()
}

// SingleVerifier reports whether the subject admits at most one active
// invite at a time.
func (d Domain) SingleVerifier() bool {
	return d == DomainEmployment || d == DomainClientProject
}

// HasSendLimit reports whether the domain caps the number of invitees
// per subject.
func (d Domain) HasSendLimit() bool {
	switch d {
	case DomainSkills, DomainProject, DomainTeam:
		return true
	default:
		return false
	}
}

// HasSubject reports whether invitations in this domain reference an
// owned record. Connections are between users directly.
func (d Domain) HasSubject() bool {
	return d != DomainConnection
}

// URLType is the uppercase form embedded in verification URLs.
func (d Domain) URLType() string {
	return strings.ToUpper(string(d))
}
