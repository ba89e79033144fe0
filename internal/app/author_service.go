package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/testmaker/quizapi/internal/domain"
	"github.com/testmaker/quizapi/internal/ports"
)

// DefaultAuthorName is the user quizzes are attributed to when the request
// carries no authenticated subject.
const DefaultAuthorName = "Admin"

// AuthorService resolves the author id recorded on new quizzes.
type AuthorService struct {
	users         ports.UserRepository
	defaultAuthor string
	logger        *slog.Logger
}

// NewAuthorService creates an author resolver. An empty defaultAuthor
// falls back to DefaultAuthorName.
func NewAuthorService(users ports.UserRepository, defaultAuthor string, logger *slog.Logger) *AuthorService {
	if users == nil {
		panic("app: NewAuthorService requires a user repository")
	}

	if defaultAuthor == "" {
		defaultAuthor = DefaultAuthorName
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &AuthorService{
		users:         users,
		defaultAuthor: defaultAuthor,
		logger:        logger.With(slog.String("component", "app.AuthorService")),
	}
}

// ResolveAuthor returns the id of the user named by the gateway subject, or
// of the configured fallback author when the request is anonymous. The
// subject must be the id of a provisioned user; anything else is rejected so
// a forged header never reaches Quiz.UserID. Unresolvable authors are server
// errors, not not-founds: the client asked for nothing that is absent.
func (s *AuthorService) ResolveAuthor(ctx context.Context, subject string) (string, error) {
	if subject = strings.TrimSpace(subject); subject != "" {
		return s.resolveSubject(ctx, subject)
	}

	user, err := s.users.FindByUserName(ctx, s.defaultAuthor)
	if err != nil {
		if domain.IsNotFound(err) {
			s.logger.ErrorContext(ctx, "fallback author is not provisioned",
				slog.String("user_name", s.defaultAuthor),
			)

			return "", domain.NewInvalidRequestError("resolve author",
				fmt.Sprintf("user %q does not exist", s.defaultAuthor))
		}

		return "", fmt.Errorf("resolving author %q: %w", s.defaultAuthor, err)
	}

	return user.ID, nil
}

func (s *AuthorService) resolveSubject(ctx context.Context, subject string) (string, error) {
	if len(subject) > domain.MaxUserIDLength {
		s.logger.WarnContext(ctx, "subject rejected", slog.Int("length", len(subject)))

		return "", domain.NewInvalidRequestError("resolve author", "subject is not a user id")
	}

	user, err := s.users.FindByID(ctx, subject)
	if err != nil {
		if domain.IsNotFound(err) {
			s.logger.WarnContext(ctx, "subject is not a known user", slog.String("subject", subject))

			return "", domain.NewInvalidRequestError("resolve author",
				fmt.Sprintf("user %q does not exist", subject))
		}

		return "", fmt.Errorf("resolving author %q: %w", subject, err)
	}

	return user.ID, nil
}
