package invitation

import (
	"time"

	"github.com/google/uuid"

	"github.com/provely/server/internal/module/user"
)

// Invitation is one outstanding or resolved request to verify a record
// or join a collaboration. The partial unique index rejects a second
// active invite for the same (domain, inviter, email) at the database
// level; the service still checks first to return a clean error.
type Invitation struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Domain      Domain     `json:"domain" gorm:"type:varchar(32);not null;index;uniqueIndex:idx_invitations_active,where:is_deleted = false"`
	SubjectID   *uuid.UUID `json:"subject_id,omitempty" gorm:"type:uuid;index"`
	InvitedByID uuid.UUID  `json:"invited_by_id" gorm:"type:uuid;not null;uniqueIndex:idx_invitations_active,where:is_deleted = false"`
	UserID      *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid;index"`
	VerifierID  *uuid.UUID `json:"verifier_id,omitempty" gorm:"type:uuid;index"`
	Email       string     `json:"email" gorm:"not null;index;uniqueIndex:idx_invitations_active,where:is_deleted = false"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Comment     string     `json:"comment"`
	Status      bool       `json:"status" gorm:"default:true"` // sent/active
	IsVerified  bool       `json:"is_verified" gorm:"default:false"`
	IsDeleted   bool       `json:"is_deleted" gorm:"default:false"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	InvitedBy *user.User `json:"invited_by,omitempty" gorm:"foreignKey:InvitedByID"`
	User      *user.User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Verifier  *user.User `json:"verifier,omitempty" gorm:"foreignKey:VerifierID"`
}

// TableName returns the database table name.
func (Invitation) TableName() string {
	return "invitations"
}

// InviteeName returns the display name captured at send time.
func (i *Invitation) InviteeName() string {
	name := i.FirstName
	if i.LastName != "" {
		if name != "" {
			name += " "
		}
		name += i.LastName
	}
	return name
}

// IsRegistered reports whether the invited email had resolved to an
// account at send time or through reconciliation.
func (i *Invitation) IsRegistered() bool {
	return i.UserID != nil
}

// VerificationResult is the public lookup of an invitation's state,
// used by the frontend verify landing page.
type VerificationResult struct {
	VerificationID uuid.UUID `json:"verificationId"`
	IsRegistered   bool      `json:"isRegistered"`
	InvitedBy      string    `json:"invitedBy"`
	Email          string    `json:"email"`
	IsVerified     bool      `json:"isVerified"`
}
