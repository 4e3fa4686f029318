package models

import (
	"encoding/base64"
	"html"
	"math/rand/v2"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// QuestionType is the answer format of a question
type QuestionType string

const (
	TypeMultiple QuestionType = "multiple"
	TypeBoolean  QuestionType = "boolean"
)

// booleanAnswers is the fixed display order for true/false questions
var booleanAnswers = []string{"True", "False"}

// Question is a single trivia question as delivered by the trivia API.
// Text fields keep the encoded form they arrived in; use the Decoded*
// accessors before displaying or comparing them.
type Question struct {
	ID               uuid.UUID
	Category         string
	Type             QuestionType
	Difficulty       string
	Text             string
	CorrectAnswer    string
	IncorrectAnswers []string
	Encoding         Encoding

	shuffled []string
}

// NewQuestion builds a question with a fresh ID and freezes its answer order
func NewQuestion(category string, qType QuestionType, difficulty, text, correct string, incorrect []string, enc Encoding) *Question {
	return NewQuestionWithRand(nil, category, qType, difficulty, text, correct, incorrect, enc)
}

// NewQuestionWithRand is NewQuestion with an explicit random source.
// A nil source uses the global generator.
func NewQuestionWithRand(r *rand.Rand, category string, qType QuestionType, difficulty, text, correct string, incorrect []string, enc Encoding) *Question {
	q := &Question{
		ID:               uuid.New(),
		Category:         category,
		Type:             qType,
		Difficulty:       difficulty,
		Text:             text,
		CorrectAnswer:    correct,
		IncorrectAnswers: append([]string(nil), incorrect...),
		Encoding:         enc,
	}
	q.shuffled = ShuffleAnswers(r, qType, correct, incorrect)
	return q
}

// ShuffleAnswers returns a uniformly shuffled copy of the correct and incorrect
// answers. Boolean questions always come back as True, False.
func ShuffleAnswers(r *rand.Rand, qType QuestionType, correct string, incorrect []string) []string {
	if qType == TypeBoolean {
		return append([]string(nil), booleanAnswers...)
	}

	all := make([]string, 0, len(incorrect)+1)
	all = append(all, incorrect...)
	all = append(all, correct)

	shuffle := rand.Shuffle
	if r != nil {
		shuffle = r.Shuffle
	}
	shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})
	return all
}

// ShuffledAnswers returns the answer order frozen at construction time.
// Multiple-choice answers are still encoded.
func (q *Question) ShuffledAnswers() []string {
	return append([]string(nil), q.shuffled...)
}

// DisplayAnswers returns the frozen answer order, decoded for display.
// The returned strings are the values SelectAnswer expects.
func (q *Question) DisplayAnswers() []string {
	if q.Type == TypeBoolean {
		return q.ShuffledAnswers()
	}
	out := make([]string, len(q.shuffled))
	for i, a := range q.shuffled {
		out[i] = q.Encoding.Decode(a)
	}
	return out
}

func (q *Question) DecodedText() string     { return q.Encoding.Decode(q.Text) }
func (q *Question) DecodedCorrect() string  { return q.Encoding.Decode(q.CorrectAnswer) }
func (q *Question) DecodedCategory() string { return q.Encoding.Decode(q.Category) }

func (q *Question) DecodedIncorrect() []string {
	out := make([]string, len(q.IncorrectAnswers))
	for i, a := range q.IncorrectAnswers {
		out[i] = q.Encoding.Decode(a)
	}
	return out
}

// Decode converts text delivered in this encoding to plain text.
// Text that cannot be decoded is returned unchanged.
func (e Encoding) Decode(s string) string {
	switch e {
	case EncodingURL3986:
		if out, err := url.PathUnescape(s); err == nil {
			return out
		}
		return s
	case EncodingBase64:
		if out, err := base64.StdEncoding.DecodeString(s); err == nil {
			return string(out)
		}
		return s
	default:
		return html.UnescapeString(s)
	}
}

// ParseQuestionType maps the API's type field, tolerating case and spacing
func ParseQuestionType(s string) (QuestionType, bool) {
	switch QuestionType(strings.ToLower(strings.TrimSpace(s))) {
	case TypeMultiple:
		return TypeMultiple, true
	case TypeBoolean:
		return TypeBoolean, true
	}
	return "", false
}
