package notification

import "errors"

var (
	// ErrNotificationNotFound indicates the notification does not exist.
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrNotRecipient indicates the caller does not own the notification.
	ErrNotRecipient = errors.New("not the notification recipient")
)
