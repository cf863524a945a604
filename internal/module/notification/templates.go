package notification

import "fmt"

// Domain discriminator values as stored on invitations. Kept as plain
// strings here so templates stay a lookup table with no domain imports.
const (
	domainSkills        = "skills"
	domainEmployment    = "employment"
	domainClientProject = "client_project"
	domainProject       = "project"
	domainTeam          = "team"
	domainConnection    = "connection"
)

// Template is a rendered {type, title, message} triple for one
// notification.
type Template struct {
	Type    string
	Title   string
	Message string
}

func typeForDomain(domain string) string {
	switch domain {
	case domainSkills:
		return TypeVerifySkill
	case domainEmployment:
		return TypeVerifyEmployment
	case domainClientProject:
		return TypeVerifyProject
	case domainProject:
		return TypeJoinProject
	case domainTeam:
		return TypeJoinTeam
	default:
		return TypeJoinConnection
	}
}

func domainLabel(domain string) string {
	switch domain {
	case domainSkills:
		return "skill"
	case domainEmployment:
		return "job experience"
	case domainClientProject:
		return "client project"
	case domainProject:
		return "project"
	case domainTeam:
		return "team"
	default:
		return "connection"
	}
}

// InvitationTemplate builds the notification for a freshly sent invite.
// The title pattern is fixed per domain; only the subject name varies.
func InvitationTemplate(domain, inviterName, subjectName string) Template {
	label := domainLabel(domain)
	switch domain {
	case domainProject, domainTeam:
		return Template{
			Type:    typeForDomain(domain),
			Title:   fmt.Sprintf("Invitation to join %s", subjectName),
			Message: fmt.Sprintf("%s invited you to join the %s %q.", inviterName, label, subjectName),
		}
	case domainConnection:
		return Template{
			Type:    TypeJoinConnection,
			Title:   "Invitation to connect",
			Message: fmt.Sprintf("%s wants to connect with you.", inviterName),
		}
	default:
		return Template{
			Type:    typeForDomain(domain),
			Title:   fmt.Sprintf("Invitation to verify %s", label),
			Message: fmt.Sprintf("%s asked you to verify %s %q.", inviterName, label, subjectName),
		}
	}
}

// VerifiedTemplate builds the notification sent to the inviter once a
// verifier completed the questionnaire.
func VerifiedTemplate(domain, verifierName, subjectName string) Template {
	label := domainLabel(domain)
	return Template{
		Type:    TypeVerified,
		Title:   fmt.Sprintf("Your %s was verified", label),
		Message: fmt.Sprintf("%s verified your %s %q.", verifierName, label, subjectName),
	}
}

// FailedTemplate builds the notification sent to the inviter when the
// verifier's gate answers rejected the record.
func FailedTemplate(domain, verifierName, subjectName string) Template {
	label := domainLabel(domain)
	return Template{
		Type:    TypeFailed,
		Title:   fmt.Sprintf("Your %s could not be verified", label),
		Message: fmt.Sprintf("%s could not confirm your %s %q.", verifierName, label, subjectName),
	}
}

// AcceptedTemplate builds the notification sent to the inviter when a
// project, team or connection invite is accepted.
func AcceptedTemplate(domain, accepterName, subjectName string) Template {
	switch domain {
	case domainConnection:
		return Template{
			Type:    TypeAccepted,
			Title:   "Connection accepted",
			Message: fmt.Sprintf("%s accepted your connection request.", accepterName),
		}
	default:
		return Template{
			Type:    TypeAccepted,
			Title:   fmt.Sprintf("%s joined %s", accepterName, subjectName),
			Message: fmt.Sprintf("%s accepted your invitation to join the %s %q.", accepterName, domainLabel(domain), subjectName),
		}
	}
}
