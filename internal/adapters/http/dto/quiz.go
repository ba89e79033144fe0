package dto

import (
	"strconv"

	"github.com/testmaker/quizapi/internal/app"
)

// QuizRequest is the body of PUT and POST /api/quiz.
// Dates present in the payload are accepted and ignored.
type QuizRequest struct {
	ID          int64  `json:"Id"`
	Title       string `json:"Title"       validate:"notempty,max=255"`
	Description string `json:"Description"`
	Text        string `json:"Text"`
	Notes       string `json:"Notes"`
}

// ToViewModel converts the request into the model the quiz service accepts.
func (r *QuizRequest) ToViewModel() *app.QuizViewModel {
	return &app.QuizViewModel{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Text:        r.Text,
		Notes:       r.Notes,
	}
}

// ParseID parses an integer path segment. ok is false when raw is not a
// base-10 64-bit integer.
func ParseID(raw string) (id int64, ok bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}

	return id, true
}

// ParseCount parses the optional {num} segment of the listing routes.
// An absent segment yields def; an explicit value, zero or negative
// included, is returned as given.
func ParseCount(raw string, def int) (count int, ok bool) {
	if raw == "" {
		return def, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}

	return n, true
}
