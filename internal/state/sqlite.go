package state

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // sqlite driver
)

// SQLiteStore implements Store over a SQLite database file.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates an unopened store.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Open opens the database and runs pending migrations. Use ":memory:" for
// an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	if err := s.Migrate(); err != nil {
		_ = db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveProgress upserts the user's current question.
func (s *SQLiteStore) SaveProgress(userID string, questionID int) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	_, err := s.db.Exec(`
		INSERT INTO user_progress (user_id, question_id, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id) DO UPDATE SET
			question_id = excluded.question_id,
			updated_at = CURRENT_TIMESTAMP
	`, userID, questionID)
	if err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// GetProgress returns the user's progress, or ok=false if unseen.
func (s *SQLiteStore) GetProgress(userID string) (Progress, bool, error) {
	if s.db == nil {
		return Progress{}, false, fmt.Errorf("database not opened")
	}
	var p Progress
	err := s.db.QueryRow(`
		SELECT user_id, question_id, updated_at
		FROM user_progress
		WHERE user_id = ?
	`, userID).Scan(&p.UserID, &p.QuestionID, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return Progress{}, false, nil
	}
	if err != nil {
		return Progress{}, false, fmt.Errorf("failed to read progress: %w", err)
	}
	return p, true, nil
}

// RecordFeedback stores one feedback entry and assigns its ID.
func (s *SQLiteStore) RecordFeedback(f *Feedback) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	_, err := s.db.Exec(`
		INSERT INTO hint_feedback (id, user_id, question_id, tier, helpful, created_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, f.ID, f.UserID, f.QuestionID, f.Tier, f.Helpful)
	if err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}
	return nil
}

// FeedbackStats aggregates feedback per question, ordered by question id.
func (s *SQLiteStore) FeedbackStats() ([]FeedbackStats, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	rows, err := s.db.Query(`
		SELECT question_id, COUNT(*), SUM(CASE WHEN helpful THEN 1 ELSE 0 END)
		FROM hint_feedback
		GROUP BY question_id
		ORDER BY question_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []FeedbackStats
	for rows.Next() {
		var fs FeedbackStats
		if err := rows.Scan(&fs.QuestionID, &fs.Total, &fs.Helpful); err != nil {
			return nil, fmt.Errorf("failed to scan feedback stats: %w", err)
		}
		out = append(out, fs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback stats: %w", err)
	}
	return out, nil
}
