package reputation

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/provely/server/internal/module/invitation"
	"github.com/provely/server/internal/module/user"
	"github.com/provely/server/internal/shared/events"
)

// Service recalculates a user's reputation score when their invitations
// move state. It runs as an event-bus handler; errors are swallowed and
// logged so a scoring hiccup never surfaces into a business operation.
//
// The formula is a placeholder verified-ratio score. Only the trigger
// points matter here; the real scoring pipeline lives elsewhere.
type Service struct {
	invitations invitation.Repository
	users       user.Repository
	logger      *zap.Logger
}

// NewService creates a reputation service.
func NewService(invitations invitation.Repository, users user.Repository, logger *zap.Logger) *Service {
	return &Service{
		invitations: invitations,
		users:       users,
		logger:      logger,
	}
}

var _ events.Handler = (*Service)(nil)

// Handles subscribes the service to invitation state changes.
func (s *Service) Handles() []string {
	return []string{
		events.InvitationSentType,
		events.InvitationVerifiedType,
		events.InvitationAcceptedType,
		events.VerificationFailedType,
	}
}

// Handle recomputes the score of the affected user.
func (s *Service) Handle(event events.Event) error {
	var userID uuid.UUID
	switch e := event.(type) {
	case *events.InvitationSentEvent:
		userID = e.InviterID
	case *events.InvitationVerifiedEvent:
		userID = e.SubjectOwnerID
	case *events.InvitationAcceptedEvent:
		userID = e.InviterID
	case *events.VerificationFailedEvent:
		userID = e.SubjectOwnerID
	default:
		return nil
	}

	s.Recalculate(context.Background(), userID)
	return nil
}

// Recalculate recomputes and stores the verified-ratio score.
func (s *Service) Recalculate(ctx context.Context, userID uuid.UUID) {
	total, verified, err := s.invitations.CountByInviter(ctx, userID)
	if err != nil {
		s.logger.Error("failed to count invitations for reputation",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return
	}

	score := Score(total, verified)
	if err := s.users.UpdateReputation(ctx, userID, score); err != nil {
		s.logger.Error("failed to store reputation score",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return
	}

	s.logger.Debug("reputation recalculated",
		zap.String("user_id", userID.String()),
		zap.Float64("score", score),
	)
}

// Score maps invitation counts to a 0-100 score. Users with nothing
// sent stay at zero.
func Score(total, verified int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(verified) / float64(total) * 100
}
