package session

import (
	"github.com/google/uuid"
	"github.com/korjavin/triviabot/models"
)

// Snapshot is a point-in-time copy of a session
type Snapshot struct {
	Options       models.SessionOptions
	Questions     []*models.Question
	Selections    map[uuid.UUID]string
	Submitted     bool
	AutoSubmitted bool
	Loading       bool
	Err           error
	TimeBudget    int
	Remaining     int
	Timer         TimerState
	Score         int
}

// Answered counts questions with a recorded selection
func (s Snapshot) Answered() int {
	n := 0
	for _, q := range s.Questions {
		if _, ok := s.Selections[q.ID]; ok {
			n++
		}
	}
	return n
}

// IsCorrect reports whether the recorded selection for q is right
func (s Snapshot) IsCorrect(q *models.Question) bool {
	selected, ok := s.Selections[q.ID]
	return ok && selected == q.DecodedCorrect()
}

// Result converts a submitted snapshot into a storable result
func (s Snapshot) Result(userID int64, timestamp int64) models.SessionResult {
	return models.SessionResult{
		UserID:        userID,
		QuestionCount: len(s.Questions),
		Correct:       s.Score,
		Category:      s.Options.Category,
		Difficulty:    s.Options.Difficulty,
		Type:          s.Options.Type,
		TimeBudget:    s.TimeBudget,
		AutoSubmitted: s.AutoSubmitted,
		Timestamp:     timestamp,
	}
}
