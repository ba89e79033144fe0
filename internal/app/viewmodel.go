package app

import (
	"time"

	"github.com/testmaker/quizapi/internal/domain"
)

// QuizViewModel is the wire shape of a quiz.
// CreatedDate and LastModifiedDate are informational on reads and ignored
// on writes; the author id is never exposed.
type QuizViewModel struct {
	ID               int64     `json:"Id"`
	Title            string    `json:"Title"`
	Description      string    `json:"Description"`
	Text             string    `json:"Text"`
	Notes            string    `json:"Notes"`
	CreatedDate      time.Time `json:"CreatedDate"`
	LastModifiedDate time.Time `json:"LastModifiedDate"`
}

// AnswerViewModel is the wire shape of an answer.
type AnswerViewModel struct {
	ID               int64     `json:"Id"`
	QuestionID       int64     `json:"QuestionId"`
	Text             string    `json:"Text"`
	CreatedDate      time.Time `json:"CreatedDate"`
	LastModifiedDate time.Time `json:"LastModifiedDate"`
}

// ToQuizViewModel projects a stored quiz onto its wire shape.
func ToQuizViewModel(q *domain.Quiz) QuizViewModel {
	return QuizViewModel{
		ID:               q.ID,
		Title:            q.Title,
		Description:      q.Description,
		Text:             q.Text,
		Notes:            q.Notes,
		CreatedDate:      q.CreatedDate,
		LastModifiedDate: q.LastModifiedDate,
	}
}

// ToQuizViewModels maps element-wise, preserving order and length.
// The result is never nil so an empty listing encodes as [].
func ToQuizViewModels(quizzes []*domain.Quiz) []QuizViewModel {
	out := make([]QuizViewModel, len(quizzes))
	for i, q := range quizzes {
		out[i] = ToQuizViewModel(q)
	}

	return out
}

// ToAnswerViewModels maps answers element-wise.
func ToAnswerViewModels(answers []domain.Answer) []AnswerViewModel {
	out := make([]AnswerViewModel, len(answers))
	for i, a := range answers {
		out[i] = AnswerViewModel{
			ID:               a.ID,
			QuestionID:       a.QuestionID,
			Text:             a.Text,
			CreatedDate:      a.CreatedDate,
			LastModifiedDate: a.LastModifiedDate,
		}
	}

	return out
}

// applyEditableFields copies the client-editable fields onto a quiz.
// This is the only write-direction mapping: Id, dates and author are
// server-authoritative and must never be taken from a client payload.
func applyEditableFields(model *QuizViewModel, q *domain.Quiz) {
	q.Title = model.Title
	q.Description = model.Description
	q.Text = model.Text
	q.Notes = model.Notes
}
