package invitation

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines invitation data access.
type Repository interface {
	CreateBatch(ctx context.Context, invs []*Invitation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Invitation, error)
	// GetForVerifier fetches an invitation only when the given user is
	// its verifier.
	GetForVerifier(ctx context.Context, id, verifierID uuid.UUID) (*Invitation, error)
	Update(ctx context.Context, inv *Invitation) error

	// ActiveEmailsForSubject returns the distinct invited emails with an
	// active invite against a subject.
	ActiveEmailsForSubject(ctx context.Context, domain Domain, subjectID uuid.UUID) ([]string, error)
	CountActiveForSubject(ctx context.Context, domain Domain, subjectID uuid.UUID) (int64, error)
	// ExistsActive reports whether an active invite already exists for
	// (domain, inviter, email).
	ExistsActive(ctx context.Context, domain Domain, invitedByID uuid.UUID, email string) (bool, error)

	// CountByInviter returns the active and verified invitation counts
	// for one inviter across all domains.
	CountByInviter(ctx context.Context, invitedByID uuid.UUID) (total, verified int64, err error)

	// ListActiveByEmail returns all active invitations addressed to an
	// email across every domain, oldest first.
	ListActiveByEmail(ctx context.Context, email string) ([]*Invitation, error)
	// AttachUser resolves the user/verifier columns of active invites
	// addressed to the email within one domain.
	AttachUser(ctx context.Context, domain Domain, email string, userID uuid.UUID) (int64, error)

	WithTx(tx *gorm.DB) Repository
	BeginTx(ctx context.Context) (*gorm.DB, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates an invitation repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

var _ Repository = (*repository)(nil)

// WithTx returns a new repository with the given transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// BeginTx starts a new transaction.
func (r *repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

func (r *repository) CreateBatch(ctx context.Context, invs []*Invitation) error {
	if len(invs) == 0 {
		return nil
	}
	for _, inv := range invs {
		inv.Email = normalizeEmail(inv.Email)
	}
	return r.db.WithContext(ctx).Create(&invs).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Invitation, error) {
	var inv Invitation
	err := r.db.WithContext(ctx).
		Preload("InvitedBy").
		Preload("User").
		Preload("Verifier").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *repository) GetForVerifier(ctx context.Context, id, verifierID uuid.UUID) (*Invitation, error) {
	var inv Invitation
	err := r.db.WithContext(ctx).
		Preload("InvitedBy").
		Where("id = ? AND verifier_id = ? AND is_deleted = ?", id, verifierID, false).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidVerificationID
		}
		return nil, err
	}
	return &inv, nil
}

func (r *repository) Update(ctx context.Context, inv *Invitation) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *repository) ActiveEmailsForSubject(ctx context.Context, domain Domain, subjectID uuid.UUID) ([]string, error) {
	var emails []string
	err := r.db.WithContext(ctx).Model(&Invitation{}).
		Distinct("email").
		Where("domain = ? AND subject_id = ? AND is_deleted = ?", domain, subjectID, false).
		Pluck("email", &emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

func (r *repository) CountActiveForSubject(ctx context.Context, domain Domain, subjectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Invitation{}).
		Where("domain = ? AND subject_id = ? AND is_deleted = ?", domain, subjectID, false).
		Count(&count).Error
	return count, err
}

func (r *repository) ExistsActive(ctx context.Context, domain Domain, invitedByID uuid.UUID, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Invitation{}).
		Where("domain = ? AND invited_by_id = ? AND email = ? AND is_deleted = ?",
			domain, invitedByID, normalizeEmail(email), false).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CountByInviter(ctx context.Context, invitedByID uuid.UUID) (int64, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&Invitation{}).
		Where("invited_by_id = ? AND is_deleted = ?", invitedByID, false).
		Count(&total).Error
	if err != nil {
		return 0, 0, err
	}

	var verified int64
	err = r.db.WithContext(ctx).Model(&Invitation{}).
		Where("invited_by_id = ? AND is_deleted = ? AND is_verified = ?", invitedByID, false, true).
		Count(&verified).Error
	if err != nil {
		return 0, 0, err
	}
	return total, verified, nil
}

func (r *repository) ListActiveByEmail(ctx context.Context, email string) ([]*Invitation, error) {
	var invs []*Invitation
	err := r.db.WithContext(ctx).
		Preload("InvitedBy").
		Where("email = ? AND is_deleted = ? AND status = ?", normalizeEmail(email), false, true).
		Order("created_at ASC").
		Find(&invs).Error
	if err != nil {
		return nil, err
	}
	return invs, nil
}

func (r *repository) AttachUser(ctx context.Context, domain Domain, email string, userID uuid.UUID) (int64, error) {
	updates := map[string]any{"user_id": userID}
	if domain.IsVerification() {
		updates["verifier_id"] = userID
	}
	res := r.db.WithContext(ctx).Model(&Invitation{}).
		Where("domain = ? AND email = ? AND user_id IS NULL AND is_deleted = ?",
			domain, normalizeEmail(email), false).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
