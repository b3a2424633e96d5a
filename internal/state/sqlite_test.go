package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s := NewSQLiteStore()
	require.NoError(t, s.Open(":memory:"))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenRunsMigrations(t *testing.T) {
	s := openStore(t)

	version, err := s.MigrationVersion()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, version, int64(2))
}

func TestSaveAndGetProgress(t *testing.T) {
	s := openStore(t)

	_, ok, err := s.GetProgress("u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SaveProgress("u1", 3))
	p, ok, err := s.GetProgress("u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, 3, p.QuestionID)
	assert.False(t, p.UpdatedAt.IsZero())

	// Upsert replaces the question.
	require.NoError(t, s.SaveProgress("u1", 5))
	p, ok, err = s.GetProgress("u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 5, p.QuestionID)
}

func TestRecordFeedbackAssignsID(t *testing.T) {
	s := openStore(t)

	f := &Feedback{UserID: "u1", QuestionID: 2, Tier: 3, Helpful: true}
	require.NoError(t, s.RecordFeedback(f))
	assert.NotEmpty(t, f.ID)
}

func TestFeedbackStats(t *testing.T) {
	s := openStore(t)

	entries := []*Feedback{
		{UserID: "u1", QuestionID: 1, Tier: 1, Helpful: true},
		{UserID: "u2", QuestionID: 1, Tier: 2, Helpful: false},
		{UserID: "u1", QuestionID: 4, Tier: 4, Helpful: true},
	}
	for _, f := range entries {
		require.NoError(t, s.RecordFeedback(f))
	}

	stats, err := s.FeedbackStats()
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, FeedbackStats{QuestionID: 1, Total: 2, Helpful: 1}, stats[0])
	assert.Equal(t, FeedbackStats{QuestionID: 4, Total: 1, Helpful: 1}, stats[1])
}

func TestOperationsRequireOpenStore(t *testing.T) {
	s := NewSQLiteStore()

	assert.Error(t, s.SaveProgress("u1", 1))
	_, _, err := s.GetProgress("u1")
	assert.Error(t, err)
	assert.Error(t, s.RecordFeedback(&Feedback{}))
	_, err = s.FeedbackStats()
	assert.Error(t, err)
}
