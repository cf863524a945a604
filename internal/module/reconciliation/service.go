package reconciliation

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/provely/server/internal/module/invitation"
	"github.com/provely/server/internal/module/notification"
	"github.com/provely/server/internal/module/profile"
	"github.com/provely/server/internal/shared/events"
)

var allDomains = []invitation.Domain{
	invitation.DomainSkills,
	invitation.DomainEmployment,
	invitation.DomainClientProject,
	invitation.DomainProject,
	invitation.DomainTeam,
	invitation.DomainConnection,
}

// Service rewires pending invitations when the invited email registers
// an account. It runs as a UserRegistered handler on the event bus:
// every step is best-effort and a failing domain never blocks the rest.
type Service struct {
	invitations   invitation.Repository
	notifications notification.Repository
	profiles      profile.Repository
	logger        *zap.Logger
}

// NewService creates a reconciliation service.
func NewService(
	invitations invitation.Repository,
	notifications notification.Repository,
	profiles profile.Repository,
	logger *zap.Logger,
) *Service {
	return &Service{
		invitations:   invitations,
		notifications: notifications,
		profiles:      profiles,
		logger:        logger,
	}
}

var _ events.Handler = (*Service)(nil)

// Handles subscribes the service to account registrations.
func (s *Service) Handles() []string {
	return []string{events.UserRegisteredType}
}

// Handle reconciles all pending invitations for the new account.
func (s *Service) Handle(event events.Event) error {
	e, ok := event.(*events.UserRegisteredEvent)
	if !ok {
		return nil
	}

	ctx := context.Background()
	s.AttachUserToInvites(ctx, e.UserID, e.Email)
	s.BackfillNotifications(ctx, e.UserID, e.Email)
	return nil
}

// AttachUserToInvites sets the user (and verifier, for verification
// domains) on every active invitation addressed to the email. Each
// domain is attempted independently.
func (s *Service) AttachUserToInvites(ctx context.Context, userID uuid.UUID, email string) {
	for _, domain := range allDomains {
		attached, err := s.invitations.AttachUser(ctx, domain, email, userID)
		if err != nil {
			s.logger.Error("failed to attach user to invitations",
				zap.String("domain", string(domain)),
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
			continue
		}
		if attached > 0 {
			s.logger.Info("attached user to pending invitations",
				zap.String("domain", string(domain)),
				zap.String("user_id", userID.String()),
				zap.Int64("count", attached),
			)
		}
	}
}

// BackfillNotifications surfaces the invitations that predate the
// account as inbox entries, ordered by when each invite was originally
// sent. Connection invites that were already accepted are skipped.
func (s *Service) BackfillNotifications(ctx context.Context, userID uuid.UUID, email string) {
	invs, err := s.invitations.ListActiveByEmail(ctx, email)
	if err != nil {
		s.logger.Error("failed to list pending invitations",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return
	}

	rows := make([]*notification.Notification, 0, len(invs))
	for _, inv := range invs {
		if inv.Domain == invitation.DomainConnection && inv.IsVerified {
			continue
		}

		inviterName := ""
		if inv.InvitedBy != nil {
			inviterName = inv.InvitedBy.FullName()
		}
		tmpl := notification.InvitationTemplate(string(inv.Domain), inviterName, s.subjectName(ctx, inv))

		rows = append(rows, &notification.Notification{
			ID:      uuid.New(),
			UserID:  userID,
			Type:    tmpl.Type,
			TypeID:  inv.ID,
			Title:   tmpl.Title,
			Message: tmpl.Message,
			// Preserve the original send order in the inbox.
			CreatedAt: inv.CreatedAt,
		})
	}

	if len(rows) == 0 {
		return
	}

	if err := s.notifications.CreateBatch(ctx, rows); err != nil {
		s.logger.Error("failed to backfill notifications",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("backfilled invitation notifications",
		zap.String("user_id", userID.String()),
		zap.Int("count", len(rows)),
	)
}

// subjectName resolves the display name of an invitation's subject.
// Lookup failures degrade to an empty name.
func (s *Service) subjectName(ctx context.Context, inv *invitation.Invitation) string {
	if inv.SubjectID == nil {
		return ""
	}

	switch inv.Domain {
	case invitation.DomainSkills:
		if entry, err := s.profiles.GetSkillEntry(ctx, *inv.SubjectID); err == nil {
			return entry.Name
		}
	case invitation.DomainEmployment:
		if emp, err := s.profiles.GetEmployment(ctx, *inv.SubjectID); err == nil {
			return emp.Company
		}
	case invitation.DomainClientProject:
		if cp, err := s.profiles.GetClientProject(ctx, *inv.SubjectID); err == nil {
			return cp.Name
		}
	case invitation.DomainProject:
		if p, err := s.profiles.GetProject(ctx, *inv.SubjectID); err == nil {
			return p.Name
		}
	case invitation.DomainTeam:
		if t, err := s.profiles.GetTeam(ctx, *inv.SubjectID); err == nil {
			return t.Name
		}
	}
	return ""
}
