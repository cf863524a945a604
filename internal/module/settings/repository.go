package settings

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrSettingsNotFound indicates no settings row exists yet.
var ErrSettingsNotFound = errors.New("platform settings not found")

// Repository defines platform settings data access.
type Repository interface {
	Get(ctx context.Context) (*PlatformSettings, error)
	Upsert(ctx context.Context, s *PlatformSettings) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a settings repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

var _ Repository = (*repository)(nil)

func (r *repository) Get(ctx context.Context) (*PlatformSettings, error) {
	var s PlatformSettings
	err := r.db.WithContext(ctx).Order("created_at DESC").First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) Upsert(ctx context.Context, s *PlatformSettings) error {
	return r.db.WithContext(ctx).Save(s).Error
}
