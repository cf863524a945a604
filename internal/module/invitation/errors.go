package invitation

import "errors"

var (
	// ErrInvalidDomain indicates an unknown domain discriminator.
	ErrInvalidDomain = errors.New("invalid invitation domain")
	// ErrDomainDisabled indicates invites are administratively closed
	// for the domain.
	ErrDomainDisabled = errors.New("invitations disabled for domain")
	// ErrSelfInvite indicates the inviter addressed themselves.
	ErrSelfInvite = errors.New("cannot invite yourself")
	// ErrDuplicateInvitee indicates a repeated email within one request
	// or an already-invited email.
	ErrDuplicateInvitee = errors.New("duplicate invitee")
	// ErrOneVerifierOnly indicates the subject already has an active
	// invite in a single-verifier domain.
	ErrOneVerifierOnly = errors.New("subject already has a verifier")
	// ErrInviteLimitExceeded indicates the union of existing and new
	// invitees exceeds the domain's send limit.
	ErrInviteLimitExceeded = errors.New("invite limit exceeded")
	// ErrInvitationNotFound indicates the invitation does not exist.
	ErrInvitationNotFound = errors.New("invitation not found")
	// ErrInvalidVerificationID indicates no invitation exists for the
	// given id and calling verifier.
	ErrInvalidVerificationID = errors.New("invalid verification id")
	// ErrAlreadyVerified indicates the invitation was already resolved.
	ErrAlreadyVerified = errors.New("invitation already verified")
	// ErrNotSubjectOwner indicates the subject does not belong to the
	// inviter.
	ErrNotSubjectOwner = errors.New("not the subject owner")
	// ErrNotInvitee indicates the caller is not the invited party.
	ErrNotInvitee = errors.New("invitation addressed to someone else")
)
