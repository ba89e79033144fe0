package app

import (
	"context"
	"fmt"
	"time"

	"github.com/testmaker/quizapi/internal/domain"
)

const sampleAnswerCount = 5

// AnswerService serves generated sample answers. Nothing is persisted.
type AnswerService struct {
	clock func() time.Time
}

// NewAnswerService creates an answer service. A nil clock uses time.Now.
func NewAnswerService(clock func() time.Time) *AnswerService {
	if clock == nil {
		clock = time.Now
	}

	return &AnswerService{clock: clock}
}

// ListAnswers returns the sample answers for a question.
func (s *AnswerService) ListAnswers(_ context.Context, questionID int64) []AnswerViewModel {
	now := s.clock()
	answers := make([]domain.Answer, 0, sampleAnswerCount)

	for i := int64(1); i <= sampleAnswerCount; i++ {
		text := fmt.Sprintf("Sample Answer %d", i)
		if i == 1 {
			text = "Friends and family"
		}

		answers = append(answers, domain.Answer{
			ID:               i,
			QuestionID:       questionID,
			Text:             text,
			CreatedDate:      now,
			LastModifiedDate: now,
		})
	}

	return ToAnswerViewModels(answers)
}
