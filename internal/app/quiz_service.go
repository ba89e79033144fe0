// Package app contains application services that orchestrate use cases.
// Services depend on port interfaces, not concrete implementations, and hold
// no cross-request state: every durable fact lives in the store.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/testmaker/quizapi/internal/domain"
	"github.com/testmaker/quizapi/internal/platform/logging"
	"github.com/testmaker/quizapi/internal/ports"
)

// DefaultListCount is the number of quizzes a listing returns when the
// caller does not ask for a specific amount.
const DefaultListCount = 10

// Operation names used for logging and metrics.
const (
	OpGet         = "quiz.get"
	OpCreate      = "quiz.create"
	OpUpdate      = "quiz.update"
	OpDelete      = "quiz.delete"
	OpListLatest  = "quiz.list_latest"
	OpListByTitle = "quiz.list_by_title"
	OpListRandom  = "quiz.list_random"
)

// QuizService implements the quiz resource use cases.
type QuizService struct {
	quizzes      ports.QuizRepository
	recorder     ports.OperationRecorder
	executor     *Executor
	clock        func() time.Time
	defaultCount int
	logger       *slog.Logger

	// rng is shared by ListRandom calls; rand.Rand is not goroutine-safe.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// QuizServiceConfig contains the dependencies of the quiz service.
type QuizServiceConfig struct {
	Quizzes ports.QuizRepository

	// Recorder receives per-operation outcomes. Optional.
	Recorder ports.OperationRecorder

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time

	// Rand drives ListRandom. Defaults to a time-seeded PCG source;
	// inject a fixed seed for reproducible tests.
	Rand *rand.Rand

	// DefaultCount is the listing size callers use when the request names none.
	// Defaults to DefaultListCount.
	DefaultCount int

	Logger *slog.Logger
}

// NewQuizService creates a new quiz service with the provided dependencies.
// It panics if no quiz repository is supplied.
func NewQuizService(cfg QuizServiceConfig) *QuizService {
	if cfg.Quizzes == nil {
		panic("app: NewQuizService requires a quiz repository")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("component", "app.QuizService"))

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	rng := cfg.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}

	defaultCount := cfg.DefaultCount
	if defaultCount <= 0 {
		defaultCount = DefaultListCount
	}

	return &QuizService{
		quizzes:      cfg.Quizzes,
		recorder:     cfg.Recorder,
		executor:     NewExecutor(logger),
		clock:        clock,
		defaultCount: defaultCount,
		logger:       logger,
		rng:          rng,
	}
}

// Get returns the quiz with the given id.
func (s *QuizService) Get(ctx context.Context, id int64) (_ *QuizViewModel, err error) {
	defer s.observe(OpGet, time.Now(), &err)

	quiz, err := s.quizzes.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting quiz: %w", err)
	}

	vm := ToQuizViewModel(quiz)

	return &vm, nil
}

type createInput struct {
	model    *QuizViewModel
	authorID string
}

// Create inserts a new quiz authored by authorID.
// Only the client-editable fields of model are used; the store assigns the id.
func (s *QuizService) Create(ctx context.Context, model *QuizViewModel, authorID string) (_ *QuizViewModel, err error) {
	defer s.observe(OpCreate, time.Now(), &err)

	op := Operation[createInput, *domain.Quiz, *QuizViewModel]{
		Name: OpCreate,
		Validate: func(_ context.Context, in createInput) error {
			if in.model == nil {
				return domain.NewInvalidRequestError("create quiz", "payload is missing")
			}
			if in.authorID == "" {
				return domain.NewInvalidRequestError("create quiz", "author could not be resolved")
			}

			return nil
		},
		Perform: func(_ context.Context, in createInput) (*domain.Quiz, error) {
			now := s.clock()
			quiz := &domain.Quiz{
				CreatedDate: now,
				UserID:      in.authorID,
			}
			applyEditableFields(in.model, quiz)
			quiz.LastModifiedDate = quiz.CreatedDate

			return quiz, nil
		},
		Verify: verifyQuiz[createInput],
		Archive: func(ctx context.Context, _ createInput, quiz *domain.Quiz) error {
			return s.quizzes.Insert(ctx, quiz)
		},
		Respond: respondQuiz[createInput],
	}

	return Execute(ctx, s.executor, op, createInput{model: model, authorID: authorID})
}

// Update overwrites the editable fields of the quiz identified by model.ID.
// Id, CreatedDate and the author are left untouched whatever model carries.
func (s *QuizService) Update(ctx context.Context, model *QuizViewModel) (_ *QuizViewModel, err error) {
	defer s.observe(OpUpdate, time.Now(), &err)

	op := Operation[*QuizViewModel, *domain.Quiz, *QuizViewModel]{
		Name: OpUpdate,
		Validate: func(_ context.Context, in *QuizViewModel) error {
			if in == nil {
				return domain.NewInvalidRequestError("update quiz", "payload is missing")
			}

			return nil
		},
		Perform: func(ctx context.Context, in *QuizViewModel) (*domain.Quiz, error) {
			quiz, err := s.quizzes.FindByID(ctx, in.ID)
			if err != nil {
				return nil, err
			}

			applyEditableFields(in, quiz)
			quiz.Touch(s.clock())

			return quiz, nil
		},
		Verify: verifyQuiz[*QuizViewModel],
		Archive: func(ctx context.Context, _ *QuizViewModel, quiz *domain.Quiz) error {
			return s.quizzes.Update(ctx, quiz)
		},
		Respond: respondQuiz[*QuizViewModel],
	}

	return Execute(ctx, s.executor, op, model)
}

// Delete removes the quiz with the given id. The removal is irreversible.
func (s *QuizService) Delete(ctx context.Context, id int64) (err error) {
	defer s.observe(OpDelete, time.Now(), &err)

	if err := s.quizzes.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting quiz: %w", err)
	}

	s.log(ctx).InfoContext(ctx, "quiz deleted", slog.Int64("quiz_id", id))

	return nil
}

// DefaultCount is the listing size to use when the caller names none.
func (s *QuizService) DefaultCount() int {
	return s.defaultCount
}

// ListLatest returns up to count quizzes, newest first.
// A count of zero or less yields an empty list.
func (s *QuizService) ListLatest(ctx context.Context, count int) (_ []QuizViewModel, err error) {
	defer s.observe(OpListLatest, time.Now(), &err)

	if count <= 0 {
		return []QuizViewModel{}, nil
	}

	quizzes, err := s.quizzes.ListLatest(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("listing latest quizzes: %w", err)
	}

	return ToQuizViewModels(quizzes), nil
}

// ListByTitle returns up to count quizzes ordered by title.
func (s *QuizService) ListByTitle(ctx context.Context, count int) (_ []QuizViewModel, err error) {
	defer s.observe(OpListByTitle, time.Now(), &err)

	if count <= 0 {
		return []QuizViewModel{}, nil
	}

	quizzes, err := s.quizzes.ListByTitle(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("listing quizzes by title: %w", err)
	}

	return ToQuizViewModels(quizzes), nil
}

// ListRandom returns up to count quizzes drawn from the whole pool in random order.
func (s *QuizService) ListRandom(ctx context.Context, count int) (_ []QuizViewModel, err error) {
	defer s.observe(OpListRandom, time.Now(), &err)

	if count <= 0 {
		return []QuizViewModel{}, nil
	}

	pool, err := s.quizzes.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing random quizzes: %w", err)
	}

	s.rngMu.Lock()
	s.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	s.rngMu.Unlock()

	if len(pool) > count {
		pool = pool[:count]
	}

	return ToQuizViewModels(pool), nil
}

func (s *QuizService) log(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, s.logger)
}

// observe reports the outcome of an operation once it returns.
func (s *QuizService) observe(op string, start time.Time, errp *error) {
	if s.recorder == nil {
		return
	}

	s.recorder.RecordOperation(op, outcomeOf(*errp), time.Since(start).Seconds())
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case domain.IsNotFound(err):
		return "not_found"
	case domain.IsValidation(err), domain.IsInvalidRequest(err):
		return "invalid"
	default:
		return "error"
	}
}

// verifyQuiz enforces the invariants every quiz must hold before it is stored.
func verifyQuiz[I any](_ context.Context, _ I, quiz *domain.Quiz) error {
	if err := quiz.Validate(); err != nil {
		return err
	}

	if quiz.UserID == "" {
		return domain.NewInvalidRequestError("verify quiz", "author is missing")
	}

	if quiz.LastModifiedDate.Before(quiz.CreatedDate) {
		return fmt.Errorf("quiz %s: last modified %s precedes creation %s",
			strconv.FormatInt(quiz.ID, 10), quiz.LastModifiedDate, quiz.CreatedDate)
	}

	return nil
}

func respondQuiz[I any](_ context.Context, _ I, quiz *domain.Quiz) (*QuizViewModel, error) {
	vm := ToQuizViewModel(quiz)
	return &vm, nil
}
