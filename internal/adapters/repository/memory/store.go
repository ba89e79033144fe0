// Package memory is an in-process entity store for local runs and tests.
// Data lives only as long as the process.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"sync"

	"github.com/testmaker/quizapi/internal/domain"
)

// QuizStore keeps quizzes in a map guarded by a RWMutex.
// Stored values are copies: callers never share memory with the store.
type QuizStore struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]domain.Quiz
}

// NewQuizStore creates an empty quiz store. Ids start at 1.
func NewQuizStore() *QuizStore {
	return &QuizStore{rows: make(map[int64]domain.Quiz)}
}

// FindByID returns a copy of the quiz with the given id.
func (s *QuizStore) FindByID(ctx context.Context, id int64) (*domain.Quiz, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.rows[id]
	if !ok {
		return nil, domain.NewQuizNotFoundError(id)
	}

	return &q, nil
}

// Insert stores a copy of quiz under the next id and writes the id back.
func (s *QuizStore) Insert(ctx context.Context, quiz *domain.Quiz) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	quiz.ID = s.nextID
	s.rows[quiz.ID] = *quiz

	return nil
}

// Update replaces the stored row for quiz.ID.
func (s *QuizStore) Update(ctx context.Context, quiz *domain.Quiz) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[quiz.ID]; !ok {
		return domain.NewQuizNotFoundError(quiz.ID)
	}

	s.rows[quiz.ID] = *quiz

	return nil
}

// Delete removes the quiz with the given id.
func (s *QuizStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return domain.NewQuizNotFoundError(id)
	}

	delete(s.rows, id)

	return nil
}

// ListLatest returns up to limit quizzes, newest first, ties by id.
func (s *QuizStore) ListLatest(ctx context.Context, limit int) ([]*domain.Quiz, error) {
	return s.list(ctx, limit, func(a, b *domain.Quiz) int {
		if c := b.CreatedDate.Compare(a.CreatedDate); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})
}

// ListByTitle returns up to limit quizzes by byte-wise title, ties by id.
func (s *QuizStore) ListByTitle(ctx context.Context, limit int) ([]*domain.Quiz, error) {
	return s.list(ctx, limit, func(a, b *domain.Quiz) int {
		if c := cmp.Compare(a.Title, b.Title); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})
}

// ListAll returns every quiz in id order.
func (s *QuizStore) ListAll(ctx context.Context) ([]*domain.Quiz, error) {
	return s.list(ctx, 0, func(a, b *domain.Quiz) int {
		return cmp.Compare(a.ID, b.ID)
	})
}

// Count returns the number of stored quizzes.
func (s *QuizStore) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.rows)), nil
}

// list snapshots the rows, sorts them and truncates to limit (0 = no limit).
func (s *QuizStore) list(ctx context.Context, limit int, order func(a, b *domain.Quiz) int) ([]*domain.Quiz, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	out := make([]*domain.Quiz, 0, len(s.rows))
	for _, q := range s.rows {
		out = append(out, &q)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, order)

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

// UserStore keeps users indexed by user name, with a secondary id index.
type UserStore struct {
	mu     sync.RWMutex
	byName map[string]domain.User
	byID   map[string]string
}

// NewUserStore creates an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{byName: make(map[string]domain.User), byID: make(map[string]string)}
}

// FindByID returns a copy of the user with the given id.
func (s *UserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	name, ok := s.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("User", id)
	}

	u := s.byName[name]

	return &u, nil
}

// FindByUserName returns a copy of the user with the given name.
func (s *UserStore) FindByUserName(ctx context.Context, userName string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byName[userName]
	if !ok {
		return nil, domain.NewNotFoundError("User", userName)
	}

	return &u, nil
}

// Insert stores a copy of user. User names are unique.
func (s *UserStore) Insert(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[user.UserName]; ok {
		return domain.NewInvalidRequestError("insert user",
			"user name "+strconv.Quote(user.UserName)+" is taken")
	}

	if _, ok := s.byID[user.ID]; ok {
		return domain.NewInvalidRequestError("insert user",
			"user id "+strconv.Quote(user.ID)+" is taken")
	}

	s.byName[user.UserName] = *user
	s.byID[user.ID] = user.UserName

	return nil
}

// Name implements ports.HealthChecker.
func (s *QuizStore) Name() string { return "store" }

// Check implements ports.HealthChecker. The in-memory store is always up.
func (s *QuizStore) Check(ctx context.Context) error { return ctx.Err() }
