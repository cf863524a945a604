package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for profile subject access.
// The invitation workflow consults it for ownership checks, accuracy
// facts and membership writes; subject CRUD itself lives elsewhere.
type Repository interface {
	GetSkillEntry(ctx context.Context, id uuid.UUID) (*SkillEntry, error)
	GetEmployment(ctx context.Context, id uuid.UUID) (*Employment, error)
	GetClientProject(ctx context.Context, id uuid.UUID) (*ClientProject, error)
	GetProject(ctx context.Context, id uuid.UUID) (*Project, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*Team, error)

	IsProjectMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
	IsTeamMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	AreConnected(ctx context.Context, userID, otherID uuid.UUID) (bool, error)

	AddProjectMember(ctx context.Context, member *ProjectMember) error
	AddTeamMember(ctx context.Context, member *TeamMember) error
	AddConnection(ctx context.Context, conn *Connection) error

	// Transaction support
	WithTx(tx *gorm.DB) Repository
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new profile repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a new repository bound to the given transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) GetSkillEntry(ctx context.Context, id uuid.UUID) (*SkillEntry, error) {
	var entry SkillEntry
	if err := r.first(ctx, &entry, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) GetEmployment(ctx context.Context, id uuid.UUID) (*Employment, error) {
	var emp Employment
	if err := r.first(ctx, &emp, id); err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *repository) GetClientProject(ctx context.Context, id uuid.UUID) (*ClientProject, error) {
	var cp ClientProject
	if err := r.first(ctx, &cp, id); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *repository) GetProject(ctx context.Context, id uuid.UUID) (*Project, error) {
	var p Project
	if err := r.first(ctx, &p, id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetTeam(ctx context.Context, id uuid.UUID) (*Team, error) {
	var t Team
	if err := r.first(ctx, &t, id); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) first(ctx context.Context, dest any, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Where("id = ?", id).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSubjectNotFound
	}
	return err
}

func (r *repository) IsProjectMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) IsTeamMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) AreConnected(ctx context.Context, userID, otherID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Connection{}).
		Where("(user_id = ? AND connected_user_id = ?) OR (user_id = ? AND connected_user_id = ?)",
			userID, otherID, otherID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) AddProjectMember(ctx context.Context, member *ProjectMember) error {
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *repository) AddTeamMember(ctx context.Context, member *TeamMember) error {
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *repository) AddConnection(ctx context.Context, conn *Connection) error {
	return r.db.WithContext(ctx).Create(conn).Error
}

// Compile-time check
var _ Repository = (*repository)(nil)
