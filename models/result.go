package models

// SessionResult is the outcome of one submitted session
type SessionResult struct {
	UserID        int64
	QuestionCount int
	Correct       int
	Category      int
	Difficulty    Difficulty
	Type          AnswerType
	TimeBudget    int
	AutoSubmitted bool
	Timestamp     int64
}

// UserStats aggregates all stored results of one user
type UserStats struct {
	Sessions       int
	QuestionsTotal int
	CorrectTotal   int
	AutoSubmitted  int
	BestScore      int
	BestOutOf      int
}

// Accuracy returns the share of correct answers in percent
func (s UserStats) Accuracy() float64 {
	if s.QuestionsTotal == 0 {
		return 0
	}
	return float64(s.CorrectTotal) / float64(s.QuestionsTotal) * 100
}
