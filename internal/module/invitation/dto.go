package invitation

import (
	"time"

	"github.com/google/uuid"

	"github.com/provely/server/internal/module/questionbank"
)

// InviteeInput is one invited person in a send request.
type InviteeInput struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// SendInvitesRequest is the payload for sending invitations.
type SendInvitesRequest struct {
	Domain    string         `json:"domain" binding:"required"`
	SubjectID *uuid.UUID     `json:"subject_id"`
	Comment   string         `json:"comment" binding:"max=500"`
	Invitees  []InviteeInput `json:"invitees" binding:"required,min=1,dive"`
}

// AnswerInput is one submitted questionnaire answer.
type AnswerInput struct {
	QuestionID uuid.UUID  `json:"question_id" binding:"required"`
	FieldName  string     `json:"field_name" binding:"required"`
	AnswerID   *uuid.UUID `json:"answer_id"`
	Value      string     `json:"value"`
}

// VerifyAnswersRequest is the payload for submitting a questionnaire.
type VerifyAnswersRequest struct {
	Answers []AnswerInput `json:"answers" binding:"required,min=1,dive"`
}

// InvitationResponse is the API representation of an invitation.
type InvitationResponse struct {
	ID         uuid.UUID  `json:"id"`
	Domain     Domain     `json:"domain"`
	SubjectID  *uuid.UUID `json:"subject_id,omitempty"`
	InvitedBy  uuid.UUID  `json:"invited_by"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name,omitempty"`
	LastName   string     `json:"last_name,omitempty"`
	Comment    string     `json:"comment,omitempty"`
	Status     bool       `json:"status"`
	IsVerified bool       `json:"is_verified"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ToResponse converts an invitation to its API representation.
func (i *Invitation) ToResponse() *InvitationResponse {
	return &InvitationResponse{
		ID:         i.ID,
		Domain:     i.Domain,
		SubjectID:  i.SubjectID,
		InvitedBy:  i.InvitedByID,
		Email:      i.Email,
		FirstName:  i.FirstName,
		LastName:   i.LastName,
		Comment:    i.Comment,
		Status:     i.Status,
		IsVerified: i.IsVerified,
		CreatedAt:  i.CreatedAt,
	}
}

// FactResponse is one display-only sub-fact of the accuracy question.
type FactResponse struct {
	FieldName string `json:"field_name"`
	Value     string `json:"value"`
}

// AnswerOptionResponse is one selectable answer of a question.
type AnswerOptionResponse struct {
	ID    uuid.UUID `json:"id"`
	Value string    `json:"value"`
	Type  string    `json:"type"`
}

// QuestionResponse is one questionnaire entry with its options, facts
// and nested sub-questions.
type QuestionResponse struct {
	ID           uuid.UUID              `json:"id,omitempty"`
	FieldName    string                 `json:"field_name"`
	Text         string                 `json:"text,omitempty"`
	Answers      []AnswerOptionResponse `json:"answers,omitempty"`
	Facts        []FactResponse         `json:"facts,omitempty"`
	SubQuestions []QuestionResponse     `json:"sub_questions,omitempty"`
}

func answerOptions(answers []questionbank.Answer) []AnswerOptionResponse {
	if len(answers) == 0 {
		return nil
	}
	out := make([]AnswerOptionResponse, 0, len(answers))
	for _, a := range answers {
		out = append(out, AnswerOptionResponse{
			ID:    a.ID,
			Value: a.Value,
			Type:  string(a.Type),
		})
	}
	return out
}
