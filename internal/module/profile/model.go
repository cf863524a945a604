package profile

import (
	"time"

	"github.com/google/uuid"
)

// SkillEntry is a skill claimed on a user's profile.
type SkillEntry struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID            uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Name              string    `json:"name" gorm:"not null"`
	YearsOfExperience int       `json:"years_of_experience"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (SkillEntry) TableName() string {
	return "skill_entries"
}

// Employment is a job experience claimed on a user's profile.
type Employment struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	Company   string     `json:"company" gorm:"not null"`
	Position  string     `json:"position" gorm:"not null"`
	StartDate time.Time  `json:"start_date" gorm:"not null"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName returns the database table name.
func (Employment) TableName() string {
	return "employments"
}

// ClientProject is client work claimed on a user's profile.
type ClientProject struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	Name      string     `json:"name" gorm:"not null"`
	Role      string     `json:"role" gorm:"not null"`
	StartDate time.Time  `json:"start_date" gorm:"not null"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName returns the database table name.
func (ClientProject) TableName() string {
	return "client_projects"
}

// Project is a collaboration project owned by a user.
type Project struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID     uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (Project) TableName() string {
	return "projects"
}

// Team is a collaboration team owned by a user.
type Team struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID     uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (Team) TableName() string {
	return "teams"
}

// MemberRole is the role written when a membership invite is accepted.
const MemberRoleAccepted = "accepted"

// ProjectMember maps an accepted user to a project.
type ProjectMember struct {
	ProjectID uuid.UUID `json:"project_id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey"`
	Role      string    `json:"role" gorm:"not null;default:accepted"`
	JoinedAt  time.Time `json:"joined_at"`
}

// TableName returns the database table name.
func (ProjectMember) TableName() string {
	return "project_members"
}

// TeamMember maps an accepted user to a team.
type TeamMember struct {
	TeamID   uuid.UUID `json:"team_id" gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey"`
	Role     string    `json:"role" gorm:"not null;default:accepted"`
	JoinedAt time.Time `json:"joined_at"`
}

// TableName returns the database table name.
func (TeamMember) TableName() string {
	return "team_members"
}

// Connection links two users after a connection invite is accepted.
type Connection struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID          uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	ConnectedUserID uuid.UUID `json:"connected_user_id" gorm:"type:uuid;not null;index"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (Connection) TableName() string {
	return "connections"
}

// Facts carries the subject details rendered in the synthetic accuracy
// question and in invite emails: who claims it, what it is called, what
// role it covers and the active date range.
type Facts struct {
	OwnerID   uuid.UUID
	Name      string
	Role      string
	StartDate *time.Time
	EndDate   *time.Time
}
