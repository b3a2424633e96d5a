// Package state persists user progress and hint feedback.
package state

import "time"

// Progress tracks the question a user is currently working on.
type Progress struct {
	UserID     string
	QuestionID int
	UpdatedAt  time.Time
}

// Feedback is one thumbs-up/down on a rendered hint.
type Feedback struct {
	ID         string
	UserID     string
	QuestionID int
	Tier       int
	Helpful    bool
	CreatedAt  time.Time
}

// FeedbackStats aggregates feedback for one question.
type FeedbackStats struct {
	QuestionID int
	Total      int
	Helpful    int
}

// Store is the persistence interface used by the server and CLI.
type Store interface {
	// SaveProgress upserts the user's current question.
	SaveProgress(userID string, questionID int) error

	// GetProgress returns the user's progress, or ok=false if unseen.
	GetProgress(userID string) (Progress, bool, error)

	// RecordFeedback stores one feedback entry and assigns its ID.
	RecordFeedback(f *Feedback) error

	// FeedbackStats aggregates feedback per question, ordered by question id.
	FeedbackStats() ([]FeedbackStats, error)

	// Close releases the underlying database.
	Close() error
}
