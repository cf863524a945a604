package invitation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/provely/server/internal/module/mail"
	"github.com/provely/server/internal/module/notification"
	"github.com/provely/server/internal/module/profile"
	"github.com/provely/server/internal/module/questionbank"
	"github.com/provely/server/internal/module/settings"
	"github.com/provely/server/internal/module/user"
	"github.com/provely/server/internal/shared/events"
	"github.com/provely/server/internal/utils/metrics"
)

// Gate field names for employment and client-project verification. If
// the verifier denies any of them the record is not verified.
const (
	fieldUserName        = "userName"
	fieldPosition        = "position"
	fieldEmploymentDates = "employmentDates"

	// fieldAccuracy is the synthetic display-only question. The field
	// name carries a typo the frontend has depended on since the first
	// release; do not fix it without a coordinated frontend change.
	fieldAccuracy = "acurracy"

	// fieldRecommendation answers feed NPS analytics.
	fieldRecommendation = "recommendation"
)

var gateFields = []string{fieldUserName, fieldPosition, fieldEmploymentDates}

// UserDirectory resolves invitee emails and user ids against accounts.
type UserDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// Service implements the invitation workflow across all six domains.
type Service struct {
	repo      Repository
	users     UserDirectory
	profiles  profile.Repository
	questions questionbank.Repository
	settings  *settings.Service
	notifier  *notification.Dispatcher
	mailer    mail.Sender
	bus       *events.Bus
	metrics   *metrics.Metrics
	baseURL   string
	logger    *zap.Logger
}

// NewService creates the invitation service. metrics may be nil.
func NewService(
	repo Repository,
	users UserDirectory,
	profiles profile.Repository,
	questions questionbank.Repository,
	settingsSvc *settings.Service,
	notifier *notification.Dispatcher,
	mailer mail.Sender,
	bus *events.Bus,
	m *metrics.Metrics,
	baseURL string,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:      repo,
		users:     users,
		profiles:  profiles,
		questions: questions,
		settings:  settingsSvc,
		notifier:  notifier,
		mailer:    mailer,
		bus:       bus,
		metrics:   m,
		baseURL:   baseURL,
		logger:    logger,
	}
}

// SendInvites validates and persists one invitation per invitee, then
// fans out notifications, email and the reputation trigger. The writes
// are atomic; the side effects run after commit and are best-effort.
func (s *Service) SendInvites(ctx context.Context, inviterID uuid.UUID, req *SendInvitesRequest) ([]*Invitation, error) {
	domain, ok := ParseDomain(req.Domain)
	if !ok {
		return nil, ErrInvalidDomain
	}

	inviter, err := s.users.GetByID(ctx, inviterID)
	if err != nil {
		return nil, err
	}

	platform, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !platform.DomainEnabled(string(domain)) {
		return nil, ErrDomainDisabled
	}

	if err := validateInvitees(inviter.Email, req.Invitees); err != nil {
		return nil, err
	}

	facts, err := s.subjectFacts(ctx, domain, req.SubjectID)
	if err != nil {
		return nil, err
	}
	if facts != nil && facts.OwnerID != inviterID {
		return nil, ErrNotSubjectOwner
	}

	if err := s.checkLimits(ctx, domain, req, inviterID, platform); err != nil {
		return nil, err
	}

	// Resolve invitee emails against the directory. Unregistered
	// invitees stay unresolved until reconciliation.
	invs := make([]*Invitation, 0, len(req.Invitees))
	for _, invitee := range req.Invitees {
		inv := &Invitation{
			ID:          uuid.New(),
			Domain:      domain,
			SubjectID:   req.SubjectID,
			InvitedByID: inviterID,
			Email:       strings.ToLower(strings.TrimSpace(invitee.Email)),
			FirstName:   invitee.FirstName,
			LastName:    invitee.LastName,
			Comment:     req.Comment,
			Status:      true,
		}

		known, err := s.users.GetByEmail(ctx, inv.Email)
		if err != nil && !errors.Is(err, user.ErrUserNotFound) {
			return nil, err
		}
		if known != nil {
			inv.UserID = &known.ID
			if domain.IsVerification() {
				inv.VerifierID = &known.ID
			}
			if inv.FirstName == "" {
				inv.FirstName = known.FirstName
				inv.LastName = known.LastName
			}
		}
		invs = append(invs, inv)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).CreateBatch(ctx, invs); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	subjectName := ""
	if facts != nil {
		subjectName = facts.Name
	}
	for _, inv := range invs {
		s.fanOutInvite(ctx, inv, inviter, subjectName)
	}

	if s.metrics != nil {
		s.metrics.RecordInviteSent(string(domain), len(invs))
	}
	s.logger.Info("invitations sent",
		zap.String("domain", string(domain)),
		zap.String("inviter_id", inviterID.String()),
		zap.Int("count", len(invs)),
	)

	return invs, nil
}

// fanOutInvite runs the post-commit side effects for one invitation:
// in-app notification for registered invitees, email for everyone, and
// the reputation trigger on the bus.
func (s *Service) fanOutInvite(ctx context.Context, inv *Invitation, inviter *user.User, subjectName string) {
	var notificationID *uuid.UUID
	if inv.UserID != nil {
		n := s.notifier.SendInvitationNotification(ctx, *inv.UserID, inv.ID,
			string(inv.Domain), inviter.FullName(), subjectName)
		if n != nil {
			notificationID = &n.ID
		}
	}

	email := mail.InvitationEmail{
		To:           inv.Email,
		ToName:       inv.InviteeName(),
		Domain:       string(inv.Domain),
		SubjectName:  subjectName,
		InviterName:  inviter.FullName(),
		InviterEmail: inviter.Email,
		InviterPhone: inviter.PhoneNumber,
		Comment:      inv.Comment,
		VerifyURL:    BuildVerificationURL(s.baseURL, inv, notificationID),
	}
	if err := s.mailer.SendInvitationEmail(ctx, email); err != nil {
		s.logger.Warn("invitation email failed",
			zap.String("invitation_id", inv.ID.String()),
			zap.Error(err),
		)
	}

	s.bus.Publish(events.NewInvitationSentEvent(inv.ID, string(inv.Domain), inv.InvitedByID))
}

// GetVerificationQuestions returns the questionnaire for an invitation.
// Only the invitation's verifier may fetch it.
func (s *Service) GetVerificationQuestions(ctx context.Context, invitationID, verifierID uuid.UUID) ([]QuestionResponse, error) {
	inv, err := s.repo.GetForVerifier(ctx, invitationID, verifierID)
	if err != nil {
		return nil, err
	}
	if !inv.Domain.IsVerification() {
		return nil, ErrInvalidVerificationID
	}

	facts, err := s.subjectFacts(ctx, inv.Domain, inv.SubjectID)
	if err != nil {
		return nil, err
	}

	bank, err := s.questions.ListByDomain(ctx, string(inv.Domain))
	if err != nil {
		return nil, err
	}

	out := make([]QuestionResponse, 0, len(bank))
	for _, q := range bank {
		if q.ID == uuid.Nil {
			continue
		}
		if q.FieldName == fieldAccuracy {
			resp, err := s.accuracyQuestion(ctx, q, facts)
			if err != nil {
				return nil, err
			}
			out = append(out, resp)
			continue
		}

		resp := QuestionResponse{
			ID:        q.ID,
			FieldName: q.FieldName,
			Text:      q.Text,
			Answers:   answerOptions(q.Answers),
		}
		for _, sub := range q.SubQuestions {
			if sub.ID == uuid.Nil {
				continue
			}
			resp.SubQuestions = append(resp.SubQuestions, QuestionResponse{
				ID:        sub.ID,
				FieldName: sub.FieldName,
				Text:      sub.Text,
				Answers:   answerOptions(sub.Answers),
			})
		}
		out = append(out, resp)
	}

	return out, nil
}

// accuracyQuestion renders the synthetic display-only question from the
// subject record. It is never answered through the question bank.
func (s *Service) accuracyQuestion(ctx context.Context, q *questionbank.Question, facts *profile.Facts) (QuestionResponse, error) {
	resp := QuestionResponse{
		ID:        q.ID,
		FieldName: q.FieldName,
		Text:      q.Text,
	}
	if facts == nil {
		return resp, nil
	}

	owner, err := s.users.GetByID(ctx, facts.OwnerID)
	if err != nil {
		return resp, err
	}

	resp.Facts = []FactResponse{
		{FieldName: fieldUserName, Value: owner.FullName()},
		{FieldName: fieldPosition, Value: facts.Role},
		{FieldName: fieldEmploymentDates, Value: formatDateRange(facts.StartDate, facts.EndDate)},
	}
	return resp, nil
}

// VerifyAnswers resolves a submitted questionnaire. For employment and
// client-project invitations the three gate fields must all be
// confirmed; a denial returns the invitation unchanged after firing the
// failed notification. No failed state is stored, so an unanswered and
// a rejected invitation look identical in the database.
func (s *Service) VerifyAnswers(ctx context.Context, invitationID, verifierID uuid.UUID, req *VerifyAnswersRequest) (*Invitation, error) {
	inv, err := s.repo.GetForVerifier(ctx, invitationID, verifierID)
	if err != nil {
		return nil, err
	}
	if !inv.Domain.IsVerification() {
		return nil, ErrInvalidVerificationID
	}
	if inv.IsVerified {
		return nil, ErrAlreadyVerified
	}

	verifier, err := s.users.GetByID(ctx, verifierID)
	if err != nil {
		return nil, err
	}

	facts, err := s.subjectFacts(ctx, inv.Domain, inv.SubjectID)
	if err != nil {
		return nil, err
	}
	subjectName := ""
	if facts != nil {
		subjectName = facts.Name
	}

	if inv.Domain.SingleVerifier() && !gatePassed(req.Answers) {
		s.notifier.SendFailedNotification(ctx, inv.InvitedByID, inv.ID,
			string(inv.Domain), verifier.FullName(), subjectName)
		s.bus.Publish(events.NewVerificationFailedEvent(inv.ID, string(inv.Domain), inv.InvitedByID))
		if s.metrics != nil {
			s.metrics.RecordInviteFailed(string(inv.Domain))
		}
		s.logger.Info("verification rejected by gate answers",
			zap.String("invitation_id", inv.ID.String()),
			zap.String("domain", string(inv.Domain)),
		)
		return inv, nil
	}

	userAnswers, err := s.resolveAnswers(ctx, inv, verifierID, req.Answers)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.questions.WithTx(tx).CreateUserAnswers(ctx, userAnswers); err != nil {
		return nil, err
	}

	inv.IsVerified = true
	if err := s.repo.WithTx(tx).Update(ctx, inv); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.notifier.SendVerifiedNotification(ctx, inv.InvitedByID, inv.ID,
		string(inv.Domain), verifier.FullName(), subjectName)
	s.bus.Publish(events.NewInvitationVerifiedEvent(inv.ID, string(inv.Domain), inv.InvitedByID, verifierID))
	if s.metrics != nil {
		s.metrics.RecordInviteVerified(string(inv.Domain))
	}
	s.logger.Info("invitation verified",
		zap.String("invitation_id", inv.ID.String()),
		zap.String("domain", string(inv.Domain)),
		zap.String("verifier_id", verifierID.String()),
	)

	return inv, nil
}

// resolveAnswers maps submitted answers onto the question bank and
// builds the rows to persist. Gate fields and the accuracy question are
// display/decision only and are never stored.
func (s *Service) resolveAnswers(ctx context.Context, inv *Invitation, verifierID uuid.UUID, answers []AnswerInput) ([]*questionbank.UserAnswer, error) {
	bank, err := s.questions.ListByDomain(ctx, string(inv.Domain))
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*questionbank.Question)
	for _, q := range bank {
		byID[q.ID] = q
		for i := range q.SubQuestions {
			sub := q.SubQuestions[i]
			byID[sub.ID] = &sub
		}
	}

	out := make([]*questionbank.UserAnswer, 0, len(answers))
	for _, a := range answers {
		if isGateField(a.FieldName) || a.FieldName == fieldAccuracy {
			continue
		}

		q, ok := byID[a.QuestionID]
		if !ok {
			continue
		}

		answerID := a.AnswerID
		value := a.Value
		if answerID != nil {
			matched := false
			for _, opt := range q.Answers {
				if opt.ID == *answerID {
					matched = true
					if value == "" {
						value = opt.Value
					}
					break
				}
			}
			if !matched {
				answerID = nil
			}
		}
		// Single-option questions auto-select their only answer.
		if answerID == nil && len(q.Answers) == 1 {
			answerID = &q.Answers[0].ID
			if value == "" {
				value = q.Answers[0].Value
			}
		}

		out = append(out, &questionbank.UserAnswer{
			ID:           uuid.New(),
			InvitationID: inv.ID,
			QuestionID:   q.ID,
			AnswerID:     answerID,
			InvitedByID:  inv.InvitedByID,
			VerifiedByID: verifierID,
			Value:        value,
			IsNps:        a.FieldName == fieldRecommendation,
		})
	}

	return out, nil
}

// AcceptInvite resolves a project, team or connection invitation. The
// membership write and the invitation update commit together.
func (s *Service) AcceptInvite(ctx context.Context, invitationID, acceptingUserID uuid.UUID) (*Invitation, error) {
	inv, err := s.repo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if !inv.Domain.IsMembership() {
		return nil, ErrInvitationNotFound
	}
	if inv.IsVerified {
		return nil, ErrAlreadyVerified
	}

	accepter, err := s.users.GetByID(ctx, acceptingUserID)
	if err != nil {
		return nil, err
	}
	if !s.addressedTo(inv, accepter) {
		return nil, ErrNotInvitee
	}

	exists, err := s.membershipExists(ctx, inv, acceptingUserID)
	if err != nil {
		return nil, err
	}
	if exists {
		if inv.Domain == DomainConnection {
			return nil, profile.ErrAlreadyConnected
		}
		return nil, profile.ErrAlreadyMember
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	txProfiles := s.profiles.WithTx(tx)
	now := time.Now()
	switch inv.Domain {
	case DomainProject:
		err = txProfiles.AddProjectMember(ctx, &profile.ProjectMember{
			ProjectID: *inv.SubjectID,
			UserID:    acceptingUserID,
			Role:      profile.MemberRoleAccepted,
			JoinedAt:  now,
		})
	case DomainTeam:
		err = txProfiles.AddTeamMember(ctx, &profile.TeamMember{
			TeamID:   *inv.SubjectID,
			UserID:   acceptingUserID,
			Role:     profile.MemberRoleAccepted,
			JoinedAt: now,
		})
	case DomainConnection:
		err = txProfiles.AddConnection(ctx, &profile.Connection{
			ID:              uuid.New(),
			UserID:          inv.InvitedByID,
			ConnectedUserID: acceptingUserID,
		})
	}
	if err != nil {
		return nil, err
	}

	inv.IsVerified = true
	if inv.UserID == nil {
		inv.UserID = &acceptingUserID
	}
	if err := s.repo.WithTx(tx).Update(ctx, inv); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	subjectName := ""
	if facts, ferr := s.subjectFacts(ctx, inv.Domain, inv.SubjectID); ferr == nil && facts != nil {
		subjectName = facts.Name
	}
	s.notifier.SendAcceptedNotification(ctx, inv.InvitedByID, inv.ID,
		string(inv.Domain), accepter.FullName(), subjectName)
	s.bus.Publish(events.NewInvitationAcceptedEvent(inv.ID, string(inv.Domain), inv.InvitedByID, acceptingUserID))
	if s.metrics != nil {
		s.metrics.RecordInviteAccepted(string(inv.Domain))
	}
	s.logger.Info("invitation accepted",
		zap.String("invitation_id", inv.ID.String()),
		zap.String("domain", string(inv.Domain)),
		zap.String("accepted_by", acceptingUserID.String()),
	)

	return inv, nil
}

// GetVerificationAnswers returns the questionnaire answers stored for
// an invitation. Only the subject owner and the verifier may read them;
// an invitation that has not been verified yet has no rows.
func (s *Service) GetVerificationAnswers(ctx context.Context, invitationID, callerID uuid.UUID) ([]*questionbank.UserAnswer, error) {
	inv, err := s.repo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if !inv.Domain.IsVerification() {
		return nil, ErrInvitationNotFound
	}
	if inv.InvitedByID != callerID && (inv.VerifierID == nil || *inv.VerifierID != callerID) {
		return nil, ErrNotSubjectOwner
	}

	return s.questions.ListUserAnswers(ctx, invitationID)
}

// GetVerificationResult is the public landing-page lookup. The domain
// comes from the URL's type parameter and must match the stored row.
func (s *Service) GetVerificationResult(ctx context.Context, invitationID uuid.UUID, domainStr string) (*VerificationResult, error) {
	domain, ok := ParseDomain(domainStr)
	if !ok {
		return nil, ErrInvalidDomain
	}

	inv, err := s.repo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if inv.Domain != domain {
		return nil, ErrInvitationNotFound
	}

	invitedBy := ""
	if inv.InvitedBy != nil {
		invitedBy = inv.InvitedBy.FullName()
	}

	return &VerificationResult{
		VerificationID: inv.ID,
		IsRegistered:   inv.IsRegistered(),
		InvitedBy:      invitedBy,
		Email:          inv.Email,
		IsVerified:     inv.IsVerified,
	}, nil
}

// --- helpers ---

func validateInvitees(inviterEmail string, invitees []InviteeInput) error {
	seen := make(map[string]struct{}, len(invitees))
	for _, invitee := range invitees {
		email := strings.ToLower(strings.TrimSpace(invitee.Email))
		if strings.EqualFold(email, inviterEmail) {
			return ErrSelfInvite
		}
		if _, dup := seen[email]; dup {
			return ErrDuplicateInvitee
		}
		seen[email] = struct{}{}
	}
	return nil
}

// checkLimits enforces the single-verifier rule, the per-domain send
// limit over the union of existing and requested emails, and the
// one-active-invite-per-email invariant.
func (s *Service) checkLimits(ctx context.Context, domain Domain, req *SendInvitesRequest, inviterID uuid.UUID, platform *settings.PlatformSettings) error {
	if domain.SingleVerifier() {
		if len(req.Invitees) > 1 {
			return ErrOneVerifierOnly
		}
		count, err := s.repo.CountActiveForSubject(ctx, domain, *req.SubjectID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrOneVerifierOnly
		}
	}

	if domain.HasSendLimit() {
		existing, err := s.repo.ActiveEmailsForSubject(ctx, domain, *req.SubjectID)
		if err != nil {
			return err
		}
		union := make(map[string]struct{}, len(existing)+len(req.Invitees))
		for _, email := range existing {
			union[strings.ToLower(email)] = struct{}{}
		}
		for _, invitee := range req.Invitees {
			union[strings.ToLower(strings.TrimSpace(invitee.Email))] = struct{}{}
		}
		if limit := platform.LimitFor(string(domain)); limit > 0 && len(union) > limit {
			return ErrInviteLimitExceeded
		}
	}

	for _, invitee := range req.Invitees {
		exists, err := s.repo.ExistsActive(ctx, domain, inviterID, invitee.Email)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateInvitee
		}
	}

	return nil
}

// subjectFacts loads the invitation's subject and checks it exists.
// Connections have no subject and return nil facts.
func (s *Service) subjectFacts(ctx context.Context, domain Domain, subjectID *uuid.UUID) (*profile.Facts, error) {
	if !domain.HasSubject() {
		return nil, nil
	}
	if subjectID == nil {
		return nil, profile.ErrSubjectNotFound
	}

	switch domain {
	case DomainSkills:
		entry, err := s.profiles.GetSkillEntry(ctx, *subjectID)
		if err != nil {
			return nil, err
		}
		return &profile.Facts{OwnerID: entry.UserID, Name: entry.Name, Role: "skill"}, nil
	case DomainEmployment:
		emp, err := s.profiles.GetEmployment(ctx, *subjectID)
		if err != nil {
			return nil, err
		}
		return &profile.Facts{
			OwnerID:   emp.UserID,
			Name:      emp.Company,
			Role:      emp.Position,
			StartDate: &emp.StartDate,
			EndDate:   emp.EndDate,
		}, nil
	case DomainClientProject:
		cp, err := s.profiles.GetClientProject(ctx, *subjectID)
		if err != nil {
			return nil, err
		}
		return &profile.Facts{
			OwnerID:   cp.UserID,
			Name:      cp.Name,
			Role:      cp.Role,
			StartDate: &cp.StartDate,
			EndDate:   cp.EndDate,
		}, nil
	case DomainProject:
		p, err := s.profiles.GetProject(ctx, *subjectID)
		if err != nil {
			return nil, err
		}
		return &profile.Facts{OwnerID: p.OwnerID, Name: p.Name, Role: "project"}, nil
	case DomainTeam:
		t, err := s.profiles.GetTeam(ctx, *subjectID)
		if err != nil {
			return nil, err
		}
		return &profile.Facts{OwnerID: t.OwnerID, Name: t.Name, Role: "team"}, nil
	default:
		return nil, ErrInvalidDomain
	}
}

func (s *Service) membershipExists(ctx context.Context, inv *Invitation, userID uuid.UUID) (bool, error) {
	switch inv.Domain {
	case DomainProject:
		return s.profiles.IsProjectMember(ctx, *inv.SubjectID, userID)
	case DomainTeam:
		return s.profiles.IsTeamMember(ctx, *inv.SubjectID, userID)
	case DomainConnection:
		return s.profiles.AreConnected(ctx, inv.InvitedByID, userID)
	default:
		return false, ErrInvalidDomain
	}
}

func (s *Service) addressedTo(inv *Invitation, accepter *user.User) bool {
	if inv.UserID != nil && *inv.UserID == accepter.ID {
		return true
	}
	if inv.VerifierID != nil && *inv.VerifierID == accepter.ID {
		return true
	}
	return strings.EqualFold(inv.Email, accepter.Email)
}

// gatePassed checks the three boolean gate answers. A missing gate
// field counts as a denial.
func gatePassed(answers []AnswerInput) bool {
	confirmed := make(map[string]bool, len(gateFields))
	for _, a := range answers {
		if isGateField(a.FieldName) {
			confirmed[a.FieldName] = strings.EqualFold(a.Value, "true")
		}
	}
	for _, field := range gateFields {
		if !confirmed[field] {
			return false
		}
	}
	return true
}

func isGateField(name string) bool {
	for _, field := range gateFields {
		if field == name {
			return true
		}
	}
	return false
}

func formatDateRange(start, end *time.Time) string {
	if start == nil {
		return ""
	}
	from := start.Format("Jan 2006")
	if end == nil {
		return from + " - Present"
	}
	return from + " - " + end.Format("Jan 2006")
}
