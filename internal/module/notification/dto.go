package notification

import (
	"time"

	"github.com/google/uuid"
)

// NotificationResponse is the API-visible notification shape.
type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"notificationType"`
	TypeID    uuid.UUID `json:"typeId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsViewed  bool      `json:"isViewed"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToResponse converts a notification to its API representation.
func (n *Notification) ToResponse() *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		TypeID:    n.TypeID,
		Title:     n.Title,
		Message:   n.Message,
		IsViewed:  n.IsViewed,
		Status:    n.Status,
		CreatedAt: n.CreatedAt,
	}
}
