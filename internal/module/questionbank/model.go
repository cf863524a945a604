package questionbank

import (
	"time"

	"github.com/google/uuid"
)

// AnswerType categorizes the allowed answers of a question.
type AnswerType string

const (
	AnswerTypeRating  AnswerType = "rating"
	AnswerTypeBoolean AnswerType = "boolean"
	AnswerTypeCustom  AnswerType = "custom"
)

// IsValid checks if the answer type is valid.
func (t AnswerType) IsValid() bool {
	switch t {
	case AnswerTypeRating, AnswerTypeBoolean, AnswerTypeCustom:
		return true
	default:
		return false
	}
}

// Question is a versioned questionnaire entry for one verification domain.
// Top-level questions have no parent; sub-questions reference their
// parent and are rendered nested under it.
type Question struct {
	ID               uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FieldName        string     `json:"field_name" gorm:"not null;index"`
	Domain           string     `json:"domain" gorm:"not null;index"`
	ParentQuestionID *uuid.UUID `json:"parent_question_id,omitempty" gorm:"type:uuid;index"`
	Text             string     `json:"text" gorm:"not null"`
	CreatedAt        time.Time  `json:"created_at"`

	// Relations
	Answers      []Answer   `json:"answers,omitempty" gorm:"foreignKey:QuestionID"`
	SubQuestions []Question `json:"sub_questions,omitempty" gorm:"foreignKey:ParentQuestionID"`
}

// TableName returns the database table name.
func (Question) TableName() string {
	return "questions"
}

// Answer is one allowed option for a question.
type Answer struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	QuestionID uuid.UUID  `json:"question_id" gorm:"type:uuid;not null;index"`
	Value      string     `json:"value" gorm:"not null"`
	Type       AnswerType `json:"type" gorm:"not null"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TableName returns the database table name.
func (Answer) TableName() string {
	return "answers"
}

// UserAnswer ties a verifier's chosen answer to a question for a
// specific invitation.
type UserAnswer struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvitationID uuid.UUID  `json:"invitation_id" gorm:"type:uuid;not null;index"`
	QuestionID   uuid.UUID  `json:"question_id" gorm:"type:uuid;not null"`
	AnswerID     *uuid.UUID `json:"answer_id,omitempty" gorm:"type:uuid"`
	InvitedByID  uuid.UUID  `json:"invited_by_id" gorm:"type:uuid;not null"`
	VerifiedByID uuid.UUID  `json:"verified_by_id" gorm:"type:uuid;not null"`
	Value        string     `json:"value"`
	IsNps        bool       `json:"is_nps" gorm:"default:false"` // recommendation answers feed NPS analytics
	CreatedAt    time.Time  `json:"created_at"`
}

// TableName returns the database table name.
func (UserAnswer) TableName() string {
	return "user_answers"
}
