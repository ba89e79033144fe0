// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrUnavailable, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/testmaker/quizapi/internal/domain"
)

// QuizRepository is the Entity Store contract for quizzes.
// Every method is a single atomic unit against the store.
type QuizRepository interface {
	// FindByID returns the quiz with the given id.
	// Returns domain.ErrNotFound if no such quiz exists.
	FindByID(ctx context.Context, id int64) (*domain.Quiz, error)

	// Insert persists a new quiz and assigns its ID.
	// Any ID already set on the quiz is ignored.
	Insert(ctx context.Context, quiz *domain.Quiz) error

	// Update overwrites the stored row for quiz.ID.
	// Returns domain.ErrNotFound if the row no longer exists.
	Update(ctx context.Context, quiz *domain.Quiz) error

	// Delete removes the quiz with the given id.
	// Returns domain.ErrNotFound if no such quiz exists.
	Delete(ctx context.Context, id int64) error

	// ListLatest returns at most limit quizzes, newest CreatedDate first,
	// ties broken by ascending ID.
	ListLatest(ctx context.Context, limit int) ([]*domain.Quiz, error)

	// ListByTitle returns at most limit quizzes ordered by Title using
	// byte-wise comparison, ties broken by ascending ID.
	ListByTitle(ctx context.Context, limit int) ([]*domain.Quiz, error)

	// ListAll returns every quiz in ascending ID order.
	ListAll(ctx context.Context) ([]*domain.Quiz, error)

	// Count returns the number of stored quizzes.
	Count(ctx context.Context) (int64, error)
}

// UserRepository is the Entity Store contract for author identities.
type UserRepository interface {
	// FindByID returns the user with the given id.
	// Returns domain.ErrNotFound if no such user exists.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindByUserName returns the user with the given user name.
	// Returns domain.ErrNotFound if no such user exists.
	FindByUserName(ctx context.Context, userName string) (*domain.User, error)

	// Insert persists a new user. The caller assigns the ID.
	Insert(ctx context.Context, user *domain.User) error
}

// OperationRecorder receives the outcome of every quiz service operation.
// Implementations must be safe for concurrent use.
type OperationRecorder interface {
	// RecordOperation records one completed operation and its outcome
	// ("ok", "not_found", "invalid", "error").
	RecordOperation(operation, outcome string, seconds float64)
}
