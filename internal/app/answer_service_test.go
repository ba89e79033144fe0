package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerService_ListAnswers(t *testing.T) {
	s := NewAnswerService(func() time.Time { return t0 })

	answers := s.ListAnswers(context.Background(), 17)

	require.Len(t, answers, 5)
	assert.Equal(t, "Friends and family", answers[0].Text)

	for i, a := range answers {
		assert.Equal(t, int64(i+1), a.ID)
		assert.Equal(t, int64(17), a.QuestionID)
		assert.Equal(t, t0, a.CreatedDate)
		assert.Equal(t, t0, a.LastModifiedDate)

		if i > 0 {
			assert.Equal(t, "Sample Answer "+string(rune('1'+i)), a.Text)
		}
	}
}

func TestNewAnswerService_DefaultClock(t *testing.T) {
	before := time.Now()

	answers := NewAnswerService(nil).ListAnswers(context.Background(), 1)

	require.NotEmpty(t, answers)
	assert.False(t, answers[0].CreatedDate.Before(before))
}
