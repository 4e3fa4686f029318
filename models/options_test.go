package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClampAmount(t *testing.T) {
	testCases := []struct {
		in, want int
	}{
		{-3, 1}, {0, 1}, {1, 1}, {25, 25}, {50, 50}, {51, 50}, {1000, 50},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.want, ClampAmount(tc.in), "ClampAmount(%d)", tc.in)
	}
}

func TestNormalizedMapsUnknownValuesToAny(t *testing.T) {
	o := SessionOptions{
		Amount:     99,
		Category:   -4,
		Difficulty: "Impossible",
		Type:       "essay",
		Encoding:   "rot13",
		TimeBudget: 60,
	}.Normalized()

	require.Equal(t, 50, o.Amount)
	require.Equal(t, CategoryAny, o.Category)
	require.Equal(t, DifficultyAny, o.Difficulty)
	require.Equal(t, AnswerTypeAny, o.Type)
	require.Equal(t, EncodingDefault, o.Encoding)
	require.Equal(t, 60, o.TimeBudget)
}

func TestNormalizedKeepsCategoriesOutsideTable(t *testing.T) {
	o := SessionOptions{Amount: 5, Category: 33}.Normalized()
	require.Equal(t, 33, o.Category)

	o = SessionOptions{Amount: 5, Category: 0}.Normalized()
	require.Equal(t, CategoryAny, o.Category)
}

func TestNormalizedLowercasesFilters(t *testing.T) {
	o := SessionOptions{Amount: 5, Category: 18, Difficulty: "HARD", Type: "Boolean", Encoding: "Base64"}.Normalized()

	require.Equal(t, 18, o.Category)
	require.Equal(t, DifficultyHard, o.Difficulty)
	require.Equal(t, AnswerTypeBoolean, o.Type)
	require.Equal(t, EncodingBase64, o.Encoding)
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	require.Equal(t, o, o.Normalized())
	require.Equal(t, 300, o.TimeBudget)
}

func TestCategoryIDsSorted(t *testing.T) {
	ids := CategoryIDs()
	require.Len(t, ids, len(Categories))
	require.Equal(t, 9, ids[0])
	require.Equal(t, 32, ids[len(ids)-1])
	require.Equal(t, "Any Category", CategoryName(CategoryAny))
	require.Equal(t, "Science: Computers", CategoryName(18))
	require.Equal(t, "Category 33", CategoryName(33))
}

func TestUserStatsAccuracy(t *testing.T) {
	require.Zero(t, UserStats{}.Accuracy())
	require.InDelta(t, 75.0, UserStats{QuestionsTotal: 8, CorrectTotal: 6}.Accuracy(), 0.001)
}
