package questionbank

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines question bank data access.
type Repository interface {
	// ListByDomain returns the top-level questions of a domain with their
	// answer options and sub-questions preloaded, oldest first.
	ListByDomain(ctx context.Context, domain string) ([]*Question, error)
	CreateUserAnswers(ctx context.Context, answers []*UserAnswer) error
	ListUserAnswers(ctx context.Context, invitationID uuid.UUID) ([]*UserAnswer, error)

	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *gorm.DB) Repository
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a question bank repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

var _ Repository = (*repository)(nil)

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) ListByDomain(ctx context.Context, domain string) ([]*Question, error) {
	var questions []*Question
	err := r.db.WithContext(ctx).
		Where("domain = ? AND parent_question_id IS NULL", domain).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.created_at ASC")
		}).
		Preload("SubQuestions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.created_at ASC")
		}).
		Preload("SubQuestions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.created_at ASC")
		}).
		Order("created_at ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *repository) CreateUserAnswers(ctx context.Context, answers []*UserAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&answers).Error
}

func (r *repository) ListUserAnswers(ctx context.Context, invitationID uuid.UUID) ([]*UserAnswer, error) {
	var answers []*UserAnswer
	err := r.db.WithContext(ctx).
		Where("invitation_id = ?", invitationID).
		Order("created_at ASC").
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}
