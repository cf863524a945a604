package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification types. The type names the action the recipient is asked
// to take, keyed by the invitation's domain.
const (
	TypeVerifySkill      = "verify skill"
	TypeVerifyEmployment = "verify job experience"
	TypeVerifyProject    = "verify project"
	TypeJoinProject      = "join project"
	TypeJoinTeam         = "join team"
	TypeJoinConnection   = "join connection"

	TypeVerified = "verification completed"
	TypeFailed   = "verification failed"
	TypeAccepted = "invitation accepted"
)

// Notification is an in-app inbox entry for a user. Rows are never hard
// deleted; removal flips Status and viewed state flips IsViewed.
type Notification struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Type      string    `json:"notification_type" gorm:"column:notification_type;not null"`
	TypeID    uuid.UUID `json:"type_id" gorm:"type:uuid;not null"` // originating invitation id
	Title     string    `json:"title" gorm:"not null"`
	Message   string    `json:"message" gorm:"not null"`
	Status    bool      `json:"status" gorm:"default:false"` // true once removed by the recipient
	IsViewed  bool      `json:"is_viewed" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (Notification) TableName() string {
	return "notifications"
}
