package settings

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PlatformSettings is the admin-maintained configuration row governing
// invitation limits and which domains accept invites. A single row is
// expected; the newest row wins when several exist.
type PlatformSettings struct {
	ID                 uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SkillInviteLimit   int            `json:"skill_invite_limit" gorm:"not null;default:5"`
	ProjectInviteLimit int            `json:"project_invite_limit" gorm:"not null;default:10"`
	TeamInviteLimit    int            `json:"team_invite_limit" gorm:"not null;default:10"`
	EnabledDomains     pq.StringArray `json:"enabled_domains" gorm:"type:text[]"`
	UpdatedAt          time.Time      `json:"updated_at"`
	CreatedAt          time.Time      `json:"created_at"`
}

// TableName returns the database table name.
func (PlatformSettings) TableName() string {
	return "platform_settings"
}

// DomainEnabled reports whether invites are open for a domain. An empty
// list means all domains are enabled.
func (s *PlatformSettings) DomainEnabled(domain string) bool {
	if len(s.EnabledDomains) == 0 {
		return true
	}
	for _, d := range s.EnabledDomains {
		if d == domain {
			return true
		}
	}
	return false
}
