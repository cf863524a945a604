package reconciliation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/provely/server/internal/module/invitation"
	"github.com/provely/server/internal/module/notification"
	"github.com/provely/server/internal/module/profile"
	"github.com/provely/server/internal/module/user"
	"github.com/provely/server/internal/shared/events"
)

// fakeInvitations implements invitation.Repository over a slice.
type fakeInvitations struct {
	invitation.Repository

	rows        []*invitation.Invitation
	attached    map[invitation.Domain]int64
	failDomains map[invitation.Domain]bool
	listErr     error
}

func newFakeInvitations(rows ...*invitation.Invitation) *fakeInvitations {
	return &fakeInvitations{
		rows:        rows,
		attached:    make(map[invitation.Domain]int64),
		failDomains: make(map[invitation.Domain]bool),
	}
}

func (f *fakeInvitations) AttachUser(_ context.Context, domain invitation.Domain, email string, _ uuid.UUID) (int64, error) {
	if f.failDomains[domain] {
		return 0, errors.New("attach failed")
	}
	var n int64
	for _, inv := range f.rows {
		if inv.Domain == domain && inv.Email == email && inv.UserID == nil {
			n++
		}
	}
	f.attached[domain] = n
	return n, nil
}

func (f *fakeInvitations) ListActiveByEmail(_ context.Context, email string) ([]*invitation.Invitation, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*invitation.Invitation
	for _, inv := range f.rows {
		if inv.Email == email && !inv.IsDeleted && inv.Status {
			out = append(out, inv)
		}
	}
	// Repository contract: oldest first.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.Before(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

// fakeNotifications records batch inserts.
type fakeNotifications struct {
	notification.Repository

	created []*notification.Notification
	failAll bool
}

func (f *fakeNotifications) CreateBatch(_ context.Context, ns []*notification.Notification) error {
	if f.failAll {
		return errors.New("insert failed")
	}
	f.created = append(f.created, ns...)
	return nil
}

// fakeProfiles serves fixed subject names.
type fakeProfiles struct {
	profile.Repository

	skills map[uuid.UUID]*profile.SkillEntry
	teams  map[uuid.UUID]*profile.Team
}

func (f *fakeProfiles) GetSkillEntry(_ context.Context, id uuid.UUID) (*profile.SkillEntry, error) {
	if s, ok := f.skills[id]; ok {
		return s, nil
	}
	return nil, profile.ErrSubjectNotFound
}

func (f *fakeProfiles) GetEmployment(context.Context, uuid.UUID) (*profile.Employment, error) {
	return nil, profile.ErrSubjectNotFound
}

func (f *fakeProfiles) GetClientProject(context.Context, uuid.UUID) (*profile.ClientProject, error) {
	return nil, profile.ErrSubjectNotFound
}

func (f *fakeProfiles) GetProject(context.Context, uuid.UUID) (*profile.Project, error) {
	return nil, profile.ErrSubjectNotFound
}

func (f *fakeProfiles) GetTeam(_ context.Context, id uuid.UUID) (*profile.Team, error) {
	if t, ok := f.teams[id]; ok {
		return t, nil
	}
	return nil, profile.ErrSubjectNotFound
}

func invite(domain invitation.Domain, email string, createdAt time.Time) *invitation.Invitation {
	return &invitation.Invitation{
		ID:          uuid.New(),
		Domain:      domain,
		InvitedByID: uuid.New(),
		Email:       email,
		Status:      true,
		CreatedAt:   createdAt,
		InvitedBy:   &user.User{FirstName: "Jane", LastName: "Doe"},
	}
}

func TestService_BackfillNotifications(t *testing.T) {
	ctx := context.Background()
	email := "new@example.com"
	userID := uuid.New()
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	t.Run("rows come out in original send order", func(t *testing.T) {
		second := invite(invitation.DomainTeam, email, base.Add(2*time.Hour))
		first := invite(invitation.DomainSkills, email, base)
		third := invite(invitation.DomainEmployment, email, base.Add(4*time.Hour))

		invs := newFakeInvitations(second, first, third)
		notifs := &fakeNotifications{}
		svc := NewService(invs, notifs, &fakeProfiles{}, zap.NewNop())

		svc.BackfillNotifications(ctx, userID, email)

		require.Len(t, notifs.created, 3)
		assert.Equal(t, first.ID, notifs.created[0].TypeID)
		assert.Equal(t, second.ID, notifs.created[1].TypeID)
		assert.Equal(t, third.ID, notifs.created[2].TypeID)
		assert.True(t, notifs.created[0].CreatedAt.Before(notifs.created[1].CreatedAt))
	})

	t.Run("accepted connection invites are skipped", func(t *testing.T) {
		accepted := invite(invitation.DomainConnection, email, base)
		accepted.IsVerified = true
		pending := invite(invitation.DomainConnection, email, base.Add(time.Hour))

		invs := newFakeInvitations(accepted, pending)
		notifs := &fakeNotifications{}
		svc := NewService(invs, notifs, &fakeProfiles{}, zap.NewNop())

		svc.BackfillNotifications(ctx, userID, email)

		require.Len(t, notifs.created, 1)
		assert.Equal(t, pending.ID, notifs.created[0].TypeID)
	})

	t.Run("notification content derives from domain", func(t *testing.T) {
		subjectID := uuid.New()
		inv := invite(invitation.DomainSkills, email, base)
		inv.SubjectID = &subjectID

		invs := newFakeInvitations(inv)
		notifs := &fakeNotifications{}
		profiles := &fakeProfiles{skills: map[uuid.UUID]*profile.SkillEntry{
			subjectID: {ID: subjectID, Name: "Go"},
		}}
		svc := NewService(invs, notifs, profiles, zap.NewNop())

		svc.BackfillNotifications(ctx, userID, email)

		require.Len(t, notifs.created, 1)
		n := notifs.created[0]
		assert.Equal(t, notification.TypeVerifySkill, n.Type)
		assert.Equal(t, "Invitation to verify skill", n.Title)
		assert.Contains(t, n.Message, "Go")
		assert.Equal(t, userID, n.UserID)
	})

	t.Run("list failure is swallowed", func(t *testing.T) {
		invs := newFakeInvitations()
		invs.listErr = errors.New("db down")
		notifs := &fakeNotifications{}
		svc := NewService(invs, notifs, &fakeProfiles{}, zap.NewNop())

		svc.BackfillNotifications(ctx, userID, email)

		assert.Empty(t, notifs.created)
	})
}

func TestService_AttachUserToInvites(t *testing.T) {
	ctx := context.Background()
	email := "new@example.com"
	userID := uuid.New()
	base := time.Now()

	t.Run("a failing domain never blocks the others", func(t *testing.T) {
		skills := invite(invitation.DomainSkills, email, base)
		team := invite(invitation.DomainTeam, email, base)

		invs := newFakeInvitations(skills, team)
		invs.failDomains[invitation.DomainSkills] = true
		svc := NewService(invs, &fakeNotifications{}, &fakeProfiles{}, zap.NewNop())

		svc.AttachUserToInvites(ctx, userID, email)

		assert.Equal(t, int64(1), invs.attached[invitation.DomainTeam])
		assert.NotContains(t, invs.attached, invitation.DomainSkills)
	})
}

func TestService_Handle(t *testing.T) {
	t.Run("subscribes to user registrations", func(t *testing.T) {
		svc := NewService(newFakeInvitations(), &fakeNotifications{}, &fakeProfiles{}, zap.NewNop())
		assert.Equal(t, []string{events.UserRegisteredType}, svc.Handles())
	})

	t.Run("handles the registration end to end", func(t *testing.T) {
		email := "new@example.com"
		userID := uuid.New()
		inv := invite(invitation.DomainSkills, email, time.Now())

		invs := newFakeInvitations(inv)
		notifs := &fakeNotifications{}
		svc := NewService(invs, notifs, &fakeProfiles{}, zap.NewNop())

		err := svc.Handle(events.NewUserRegisteredEvent(userID, email))
		require.NoError(t, err)

		assert.Equal(t, int64(1), invs.attached[invitation.DomainSkills])
		require.Len(t, notifs.created, 1)
	})

	t.Run("ignores foreign events", func(t *testing.T) {
		svc := NewService(newFakeInvitations(), &fakeNotifications{}, &fakeProfiles{}, zap.NewNop())
		err := svc.Handle(events.NewInvitationSentEvent(uuid.New(), "skills", uuid.New()))
		assert.NoError(t, err)
	})
}
