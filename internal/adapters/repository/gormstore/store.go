package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/testmaker/quizapi/internal/domain"
)

// QuizStore implements ports.QuizRepository on gorm.
type QuizStore struct {
	db *gorm.DB
}

// NewQuizStore creates a quiz store on db.
func NewQuizStore(db *gorm.DB) *QuizStore {
	return &QuizStore{db: db}
}

// FindByID returns the quiz with the given id.
func (s *QuizStore) FindByID(ctx context.Context, id int64) (*domain.Quiz, error) {
	var q domain.Quiz

	err := s.db.WithContext(ctx).First(&q, id).Error
	if err != nil {
		return nil, mapError(err, domain.NewQuizNotFoundError(id))
	}

	return &q, nil
}

// Insert adds the quiz; the database assigns its id.
func (s *QuizStore) Insert(ctx context.Context, quiz *domain.Quiz) error {
	quiz.ID = 0

	return mapError(s.db.WithContext(ctx).Create(quiz).Error, nil)
}

// Update overwrites the editable columns and LastModifiedDate of quiz.ID.
// Id, CreatedDate and UserID are never written.
func (s *QuizStore) Update(ctx context.Context, quiz *domain.Quiz) error {
	res := s.db.WithContext(ctx).
		Model(&domain.Quiz{}).
		Where("id = ?", quiz.ID).
		Updates(map[string]any{
			"title":              quiz.Title,
			"description":        quiz.Description,
			"text":               quiz.Text,
			"notes":              quiz.Notes,
			"last_modified_date": quiz.LastModifiedDate,
		})
	if res.Error != nil {
		return mapError(res.Error, nil)
	}

	if res.RowsAffected == 0 {
		return domain.NewQuizNotFoundError(quiz.ID)
	}

	return nil
}

// Delete removes the quiz with the given id.
func (s *QuizStore) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&domain.Quiz{}, id)
	if res.Error != nil {
		return mapError(res.Error, nil)
	}

	if res.RowsAffected == 0 {
		return domain.NewQuizNotFoundError(id)
	}

	return nil
}

// ListLatest returns up to limit quizzes, newest first, ties by id.
func (s *QuizStore) ListLatest(ctx context.Context, limit int) ([]*domain.Quiz, error) {
	return s.find(ctx, limit, "created_date DESC, id ASC")
}

// ListByTitle returns up to limit quizzes by byte-wise title, ties by id.
// Postgres is told to use the C collation; sqlite compares bytes by default.
func (s *QuizStore) ListByTitle(ctx context.Context, limit int) ([]*domain.Quiz, error) {
	order := "title ASC, id ASC"
	if s.db.Dialector.Name() == DriverPostgres {
		order = `title COLLATE "C" ASC, id ASC`
	}

	return s.find(ctx, limit, order)
}

// ListAll returns every quiz in id order.
func (s *QuizStore) ListAll(ctx context.Context) ([]*domain.Quiz, error) {
	return s.find(ctx, 0, "id ASC")
}

// Count returns the number of stored quizzes.
func (s *QuizStore) Count(ctx context.Context) (int64, error) {
	var n int64

	err := s.db.WithContext(ctx).Model(&domain.Quiz{}).Count(&n).Error

	return n, mapError(err, nil)
}

func (s *QuizStore) find(ctx context.Context, limit int, order string) ([]*domain.Quiz, error) {
	q := s.db.WithContext(ctx).Order(order)
	if limit > 0 {
		q = q.Limit(limit)
	}

	quizzes := make([]*domain.Quiz, 0)
	if err := q.Find(&quizzes).Error; err != nil {
		return nil, mapError(err, nil)
	}

	return quizzes, nil
}

// UserStore implements ports.UserRepository on gorm.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a user store on db.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByID returns the user with the given id.
func (s *UserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User

	err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		return nil, mapError(err, domain.NewNotFoundError("User", id))
	}

	return &u, nil
}

// FindByUserName returns the user with the given user name.
func (s *UserStore) FindByUserName(ctx context.Context, userName string) (*domain.User, error) {
	var u domain.User

	err := s.db.WithContext(ctx).Where("user_name = ?", userName).First(&u).Error
	if err != nil {
		return nil, mapError(err, domain.NewNotFoundError("User", userName))
	}

	return &u, nil
}

// Insert adds the user. The caller assigns the id.
func (s *UserStore) Insert(ctx context.Context, user *domain.User) error {
	return mapError(s.db.WithContext(ctx).Create(user).Error, nil)
}
