package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines notification data access.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	CreateBatch(ctx context.Context, ns []*Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Notification, int64, error)
	MarkViewed(ctx context.Context, id uuid.UUID) error
	Remove(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a notification repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

var _ Repository = (*repository)(nil)

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) CreateBatch(ctx context.Context, ns []*Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ns).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	var n Notification
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Notification, int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&Notification{}).
		Where("user_id = ? AND status = ?", userID, false)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ns []*Notification
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ns).Error
	if err != nil {
		return nil, 0, err
	}
	return ns, total, nil
}

func (r *repository) MarkViewed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&Notification{}).
		Where("id = ?", id).
		Update("is_viewed", true).Error
}

func (r *repository) Remove(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&Notification{}).
		Where("id = ?", id).
		Update("status", true).Error
}
