package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/testmaker/quizapi/internal/domain"
	"github.com/testmaker/quizapi/internal/ports"
)

const seedWorkers = 4

// SeederConfig contains the dependencies and knobs of the seeder.
type SeederConfig struct {
	Users   ports.UserRepository
	Quizzes ports.QuizRepository

	// AuthorName is the user created when missing. Defaults to DefaultAuthorName.
	AuthorName string

	// SampleQuizzes is the number of quizzes inserted into an empty store.
	SampleQuizzes int

	Clock  func() time.Time
	Logger *slog.Logger
}

// SeedResult reports what a seeding run changed.
type SeedResult struct {
	AuthorID       string
	AuthorCreated  bool
	QuizzesCreated int
}

// Seeder provisions the fallback author and sample quizzes.
// Running it more than once is safe: existing data is left alone.
type Seeder struct {
	cfg SeederConfig
}

// NewSeeder creates a seeder.
func NewSeeder(cfg SeederConfig) *Seeder {
	if cfg.Users == nil || cfg.Quizzes == nil {
		panic("app: NewSeeder requires user and quiz repositories")
	}

	if cfg.AuthorName == "" {
		cfg.AuthorName = DefaultAuthorName
	}

	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	cfg.Logger = cfg.Logger.With(slog.String("component", "app.Seeder"))

	return &Seeder{cfg: cfg}
}

// Seed ensures the author exists and fills an empty quiz table with samples.
func (s *Seeder) Seed(ctx context.Context) (*SeedResult, error) {
	author, created, err := s.ensureAuthor(ctx)
	if err != nil {
		return nil, err
	}

	result := &SeedResult{AuthorID: author.ID, AuthorCreated: created}

	count, err := s.cfg.Quizzes.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting quizzes: %w", err)
	}

	if count > 0 || s.cfg.SampleQuizzes <= 0 {
		s.cfg.Logger.InfoContext(ctx, "seeding skipped quizzes",
			slog.Int64("existing", count),
		)

		return result, nil
	}

	samples := s.sampleQuizzes(author.ID)

	err = FanOut(ctx, seedWorkers, samples, func(ctx context.Context, q *domain.Quiz) error {
		if err := s.cfg.Quizzes.Insert(ctx, q); err != nil {
			return fmt.Errorf("inserting sample quiz %q: %w", q.Title, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	result.QuizzesCreated = len(samples)

	s.cfg.Logger.InfoContext(ctx, "seeded sample quizzes",
		slog.Int("count", result.QuizzesCreated),
		slog.String("author_id", author.ID),
	)

	return result, nil
}

func (s *Seeder) ensureAuthor(ctx context.Context) (*domain.User, bool, error) {
	user, err := s.cfg.Users.FindByUserName(ctx, s.cfg.AuthorName)
	if err == nil {
		return user, false, nil
	}

	if !domain.IsNotFound(err) {
		return nil, false, fmt.Errorf("looking up author %q: %w", s.cfg.AuthorName, err)
	}

	now := s.cfg.Clock()
	user = &domain.User{
		ID:               uuid.NewString(),
		UserName:         s.cfg.AuthorName,
		Email:            "admin@testmakerfree.com",
		DisplayName:      "Administrator",
		CreatedDate:      now,
		LastModifiedDate: now,
	}

	if err := s.cfg.Users.Insert(ctx, user); err != nil {
		return nil, false, fmt.Errorf("creating author %q: %w", s.cfg.AuthorName, err)
	}

	s.cfg.Logger.InfoContext(ctx, "created author",
		slog.String("user_name", user.UserName),
		slog.String("user_id", user.ID),
	)

	return user, true, nil
}

// sampleQuizzes spreads creation dates one minute apart so the latest
// listing has a visible order.
func (s *Seeder) sampleQuizzes(authorID string) []*domain.Quiz {
	base := s.cfg.Clock().Add(-time.Duration(s.cfg.SampleQuizzes) * time.Minute)
	quizzes := make([]*domain.Quiz, 0, s.cfg.SampleQuizzes)

	for i := 1; i <= s.cfg.SampleQuizzes; i++ {
		created := base.Add(time.Duration(i) * time.Minute)
		quizzes = append(quizzes, &domain.Quiz{
			Title:            fmt.Sprintf("Sample Quiz %d", i),
			Description:      "This is a sample quiz created by the seeder.",
			Text:             "Answer the questions and see how you do.",
			CreatedDate:      created,
			LastModifiedDate: created,
			UserID:           authorID,
		})
	}

	return quizzes
}
