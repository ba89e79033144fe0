// Package domain contains core business entities and rules.
package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleLength bounds Quiz.Title in runes.
const MaxTitleLength = 255

// Quiz is the authored content entity.
// Id, CreatedDate and UserID are server-authoritative: they are assigned once
// when the quiz is created and never change afterwards.
type Quiz struct {
	ID               int64     `gorm:"primaryKey;autoIncrement"`
	Title            string    `gorm:"size:255;not null"`
	Description      string    `gorm:"type:text"`
	Text             string    `gorm:"type:text"`
	Notes            string    `gorm:"type:text"`
	CreatedDate      time.Time `gorm:"not null;index"`
	LastModifiedDate time.Time `gorm:"not null"`
	UserID           string    `gorm:"size:36;not null;index"`
}

// TableName pins the table name regardless of gorm naming strategy.
func (Quiz) TableName() string { return "quizzes" }

// Touch refreshes LastModifiedDate. The timestamp never moves before CreatedDate.
func (q *Quiz) Touch(now time.Time) {
	if now.Before(q.CreatedDate) {
		now = q.CreatedDate
	}
	q.LastModifiedDate = now
}

// Validate checks the business rules every persisted quiz must satisfy.
func (q *Quiz) Validate() error {
	if strings.TrimSpace(q.Title) == "" {
		return NewValidationError("Title", "cannot be empty")
	}
	if utf8.RuneCountInString(q.Title) > MaxTitleLength {
		return NewValidationError("Title", "must be at most 255 characters")
	}
	return nil
}

// MaxUserIDLength bounds User.ID and Quiz.UserID.
const MaxUserIDLength = 36

// User is an author identity known to the store.
type User struct {
	ID               string    `gorm:"primaryKey;size:36"`
	UserName         string    `gorm:"size:128;not null;uniqueIndex"`
	Email            string    `gorm:"size:255"`
	DisplayName      string    `gorm:"size:255"`
	CreatedDate      time.Time `gorm:"not null"`
	LastModifiedDate time.Time `gorm:"not null"`
}

// TableName pins the table name regardless of gorm naming strategy.
func (User) TableName() string { return "users" }

// Answer is a candidate answer to a question. Answers are generated on demand
// and are not persisted.
type Answer struct {
	ID               int64
	QuestionID       int64
	Text             string
	CreatedDate      time.Time
	LastModifiedDate time.Time
}
