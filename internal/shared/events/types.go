package events

import "github.com/google/uuid"

// Event type constants.
const (
	UserRegisteredType     = "UserRegistered"
	InvitationSentType     = "InvitationSent"
	InvitationVerifiedType = "InvitationVerified"
	InvitationAcceptedType = "InvitationAccepted"
	VerificationFailedType = "VerificationFailed"
)

// UserRegisteredEvent is emitted when a new account is created.
// Reconciliation listens for it to rewire pending invitations sent to
// the registered email before the account existed.
type UserRegisteredEvent struct {
	BaseEvent

	// UserID is the id of the new account.
	UserID uuid.UUID `json:"user_id"`

	// Email is the normalized (lowercase) registration email.
	Email string `json:"email"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent.
func NewUserRegisteredEvent(userID uuid.UUID, email string) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseEvent: NewBaseEvent(UserRegisteredType, userID, "User"),
		UserID:    userID,
		Email:     email,
	}
}

// InvitationSentEvent is emitted after an invitation batch commits.
// One event per persisted invitation row.
type InvitationSentEvent struct {
	BaseEvent

	// InvitationID is the persisted invitation id.
	InvitationID uuid.UUID `json:"invitation_id"`

	// Domain is the invitation domain discriminator.
	Domain string `json:"domain"`

	// InviterID is the user who sent the invitation. Reputation
	// recalculation targets this user.
	InviterID uuid.UUID `json:"inviter_id"`
}

// NewInvitationSentEvent creates a new InvitationSentEvent.
func NewInvitationSentEvent(invitationID uuid.UUID, domain string, inviterID uuid.UUID) *InvitationSentEvent {
	return &InvitationSentEvent{
		BaseEvent:    NewBaseEvent(InvitationSentType, invitationID, "Invitation"),
		InvitationID: invitationID,
		Domain:       domain,
		InviterID:    inviterID,
	}
}

// InvitationVerifiedEvent is emitted when a verifier confirms a subject.
type InvitationVerifiedEvent struct {
	BaseEvent

	// InvitationID is the verified invitation id.
	InvitationID uuid.UUID `json:"invitation_id"`

	// Domain is the invitation domain discriminator.
	Domain string `json:"domain"`

	// SubjectOwnerID is the user whose profile entry was verified.
	// Reputation recalculation targets this user.
	SubjectOwnerID uuid.UUID `json:"subject_owner_id"`

	// VerifierID is the user who answered the questionnaire.
	VerifierID uuid.UUID `json:"verifier_id"`
}

// NewInvitationVerifiedEvent creates a new InvitationVerifiedEvent.
func NewInvitationVerifiedEvent(invitationID uuid.UUID, domain string, subjectOwnerID, verifierID uuid.UUID) *InvitationVerifiedEvent {
	return &InvitationVerifiedEvent{
		BaseEvent:      NewBaseEvent(InvitationVerifiedType, invitationID, "Invitation"),
		InvitationID:   invitationID,
		Domain:         domain,
		SubjectOwnerID: subjectOwnerID,
		VerifierID:     verifierID,
	}
}

// InvitationAcceptedEvent is emitted when a membership or connection
// invitation is accepted.
type InvitationAcceptedEvent struct {
	BaseEvent

	// InvitationID is the accepted invitation id.
	InvitationID uuid.UUID `json:"invitation_id"`

	// Domain is the invitation domain discriminator.
	Domain string `json:"domain"`

	// InviterID is the user who sent the invitation.
	InviterID uuid.UUID `json:"inviter_id"`

	// AcceptedByID is the user who accepted.
	AcceptedByID uuid.UUID `json:"accepted_by_id"`
}

// NewInvitationAcceptedEvent creates a new InvitationAcceptedEvent.
func NewInvitationAcceptedEvent(invitationID uuid.UUID, domain string, inviterID, acceptedByID uuid.UUID) *InvitationAcceptedEvent {
	return &InvitationAcceptedEvent{
		BaseEvent:    NewBaseEvent(InvitationAcceptedType, invitationID, "Invitation"),
		InvitationID: invitationID,
		Domain:       domain,
		InviterID:    inviterID,
		AcceptedByID: acceptedByID,
	}
}

// VerificationFailedEvent is emitted when the employment/client-project
// accuracy gate rejects a verification. The invitation itself is left
// untouched.
type VerificationFailedEvent struct {
	BaseEvent

	// InvitationID is the invitation whose verification failed.
	InvitationID uuid.UUID `json:"invitation_id"`

	// Domain is the invitation domain discriminator.
	Domain string `json:"domain"`

	// SubjectOwnerID is the user whose profile entry failed verification.
	SubjectOwnerID uuid.UUID `json:"subject_owner_id"`
}

// NewVerificationFailedEvent creates a new VerificationFailedEvent.
func NewVerificationFailedEvent(invitationID uuid.UUID, domain string, subjectOwnerID uuid.UUID) *VerificationFailedEvent {
	return &VerificationFailedEvent{
		BaseEvent:      NewBaseEvent(VerificationFailedType, invitationID, "Invitation"),
		InvitationID:   invitationID,
		Domain:         domain,
		SubjectOwnerID: subjectOwnerID,
	}
}
