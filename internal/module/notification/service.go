package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/provely/server/internal/utils/metrics"
	"github.com/provely/server/internal/utils/pagination"
)

// RealtimeEmitter pushes a payload to a single user's realtime channel.
type RealtimeEmitter interface {
	Emit(userID uuid.UUID, event string, payload any)
}

// Dispatcher persists notifications and pushes them over the realtime
// channel. Every method is best-effort: errors are logged and swallowed
// so a failed notification never fails the enclosing business operation.
type Dispatcher struct {
	repo     Repository
	realtime RealtimeEmitter
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewDispatcher creates a notification dispatcher. realtime and m may be
// nil; dispatch then persists only.
func NewDispatcher(repo Repository, realtime RealtimeEmitter, m *metrics.Metrics, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		repo:     repo,
		realtime: realtime,
		metrics:  m,
		logger:   logger,
	}
}

// SendInvitationNotification notifies a registered invitee about a new
// invite. Returns the created notification so callers can embed its id
// in the verification URL, or nil when dispatch failed.
func (d *Dispatcher) SendInvitationNotification(ctx context.Context, recipientID, invitationID uuid.UUID, domain, inviterName, subjectName string) *Notification {
	tmpl := InvitationTemplate(domain, inviterName, subjectName)
	return d.dispatch(ctx, recipientID, invitationID, tmpl)
}

// SendVerifiedNotification notifies the inviter that the verification
// questionnaire was completed.
func (d *Dispatcher) SendVerifiedNotification(ctx context.Context, recipientID, invitationID uuid.UUID, domain, verifierName, subjectName string) *Notification {
	tmpl := VerifiedTemplate(domain, verifierName, subjectName)
	return d.dispatch(ctx, recipientID, invitationID, tmpl)
}

// SendFailedNotification notifies the inviter that the verifier could
// not confirm the record.
func (d *Dispatcher) SendFailedNotification(ctx context.Context, recipientID, invitationID uuid.UUID, domain, verifierName, subjectName string) *Notification {
	tmpl := FailedTemplate(domain, verifierName, subjectName)
	return d.dispatch(ctx, recipientID, invitationID, tmpl)
}

// SendAcceptedNotification notifies the inviter that a membership or
// connection invite was accepted.
func (d *Dispatcher) SendAcceptedNotification(ctx context.Context, recipientID, invitationID uuid.UUID, domain, accepterName, subjectName string) *Notification {
	tmpl := AcceptedTemplate(domain, accepterName, subjectName)
	return d.dispatch(ctx, recipientID, invitationID, tmpl)
}

func (d *Dispatcher) dispatch(ctx context.Context, recipientID, invitationID uuid.UUID, tmpl Template) *Notification {
	n := &Notification{
		ID:      uuid.New(),
		UserID:  recipientID,
		Type:    tmpl.Type,
		TypeID:  invitationID,
		Title:   tmpl.Title,
		Message: tmpl.Message,
	}

	if err := d.repo.Create(ctx, n); err != nil {
		d.logger.Error("failed to persist notification",
			zap.String("recipient_id", recipientID.String()),
			zap.String("invitation_id", invitationID.String()),
			zap.String("type", tmpl.Type),
			zap.Error(err))
		if d.metrics != nil {
			d.metrics.RecordNotificationFailure("persist")
		}
		return nil
	}

	d.push(n)
	if d.metrics != nil {
		d.metrics.RecordNotification(tmpl.Type)
	}
	return n
}

// push emits the row on the recipient's realtime channel. Push failure
// is logged and ignored; the persisted row stays.
func (d *Dispatcher) push(n *Notification) {
	if d.realtime == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("realtime push panicked",
				zap.String("notification_id", n.ID.String()),
				zap.Any("panic", r))
			if d.metrics != nil {
				d.metrics.RecordNotificationFailure("push")
			}
		}
	}()
	d.realtime.Emit(n.UserID, fmt.Sprintf("notify-%s", n.UserID), n.ToResponse())
}

// Service exposes the recipient-facing inbox operations.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a notification inbox service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns the caller's non-removed notifications, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID, p *pagination.Pagination) ([]*Notification, int64, error) {
	return s.repo.ListByUser(ctx, userID, p.Limit(), p.Offset())
}

// MarkViewed flips the viewed flag. Only the recipient may do this.
func (s *Service) MarkViewed(ctx context.Context, userID, notificationID uuid.UUID) error {
	n, err := s.repo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return ErrNotRecipient
	}
	return s.repo.MarkViewed(ctx, notificationID)
}

// Remove soft-removes a notification from the caller's inbox. The row
// itself is kept.
func (s *Service) Remove(ctx context.Context, userID, notificationID uuid.UUID) error {
	n, err := s.repo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return ErrNotRecipient
	}
	return s.repo.Remove(ctx, notificationID)
}
