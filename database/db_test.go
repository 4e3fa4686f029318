package database

import (
	"path/filepath"
	"testing"

	"github.com/korjavin/triviabot/models"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "nested", "trivia.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUserOptionsDefaultAndRoundTrip(t *testing.T) {
	db := openTestDB(t)

	opts, err := db.GetUserOptions(7)
	require.NoError(t, err)
	require.Equal(t, models.DefaultOptions(), opts)

	want := models.SessionOptions{
		Amount:     20,
		Category:   23,
		Difficulty: models.DifficultyMedium,
		Type:       models.AnswerTypeBoolean,
		Encoding:   models.EncodingURL3986,
		TimeBudget: 60,
	}
	require.NoError(t, db.SaveUserOptions(7, want))
	got, err := db.GetUserOptions(7)
	require.NoError(t, err)
	require.Equal(t, want, got)

	want.Amount = 5
	require.NoError(t, db.SaveUserOptions(7, want))
	got, err = db.GetUserOptions(7)
	require.NoError(t, err)
	require.Equal(t, 5, got.Amount)
}

func TestUserStats(t *testing.T) {
	db := openTestDB(t)

	stats, err := db.GetUserStats(1)
	require.NoError(t, err)
	require.Equal(t, models.UserStats{}, stats)

	results := []models.SessionResult{
		{UserID: 1, QuestionCount: 10, Correct: 6, Difficulty: models.DifficultyAny, Type: models.AnswerTypeAny, Timestamp: 100},
		{UserID: 1, QuestionCount: 5, Correct: 5, Difficulty: models.DifficultyEasy, Type: models.AnswerTypeMultiple, Timestamp: 200, AutoSubmitted: true},
		{UserID: 1, QuestionCount: 4, Correct: 1, Difficulty: models.DifficultyHard, Type: models.AnswerTypeBoolean, Timestamp: 300},
		{UserID: 2, QuestionCount: 10, Correct: 10, Difficulty: models.DifficultyAny, Type: models.AnswerTypeAny, Timestamp: 400},
	}
	for _, r := range results {
		require.NoError(t, db.SaveSessionResult(r))
	}

	stats, err = db.GetUserStats(1)
	require.NoError(t, err)
	require.Equal(t, models.UserStats{
		Sessions:       3,
		QuestionsTotal: 19,
		CorrectTotal:   12,
		AutoSubmitted:  1,
		BestScore:      5,
		BestOutOf:      5,
	}, stats)
}

func TestRecentResults(t *testing.T) {
	db := openTestDB(t)

	for i := int64(1); i <= 4; i++ {
		require.NoError(t, db.SaveSessionResult(models.SessionResult{
			UserID:        9,
			QuestionCount: 10,
			Correct:       int(i),
			Category:      18,
			Difficulty:    models.DifficultyEasy,
			Type:          models.AnswerTypeMultiple,
			TimeBudget:    300,
			Timestamp:     i * 1000,
		}))
	}

	recent, err := db.GetRecentResults(9, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, 4, recent[0].Correct)
	require.Equal(t, 3, recent[1].Correct)
	require.Equal(t, models.DifficultyEasy, recent[0].Difficulty)
	require.Equal(t, models.AnswerTypeMultiple, recent[0].Type)
	require.Equal(t, 18, recent[0].Category)
	require.Equal(t, int64(9), recent[0].UserID)

	none, err := db.GetRecentResults(10, 5)
	require.NoError(t, err)
	require.Empty(t, none)
}
