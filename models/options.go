package models

import (
	"sort"
	"strconv"
	"strings"
)

const (
	MinAmount = 1
	MaxAmount = 50

	// MaxTimeBudget caps the countdown at one hour
	MaxTimeBudget = 3600
)

// Difficulty filter; DifficultyAny omits the filter
type Difficulty string

const (
	DifficultyAny    Difficulty = "any"
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// AnswerType filter; AnswerTypeAny omits the filter
type AnswerType string

const (
	AnswerTypeAny      AnswerType = "any"
	AnswerTypeMultiple AnswerType = "multiple"
	AnswerTypeBoolean  AnswerType = "boolean"
)

// Encoding is the response encoding hint passed to the trivia API
type Encoding string

const (
	EncodingDefault Encoding = "default"
	EncodingURL3986 Encoding = "url3986"
	EncodingBase64  Encoding = "base64"
)

// CategoryAny means no category filter
const CategoryAny = 0

// Categories maps Open Trivia DB category ids to their names
var Categories = map[int]string{
	9:  "General Knowledge",
	10: "Entertainment: Books",
	11: "Entertainment: Film",
	12: "Entertainment: Music",
	13: "Entertainment: Musicals & Theatres",
	14: "Entertainment: Television",
	15: "Entertainment: Video Games",
	16: "Entertainment: Board Games",
	17: "Science & Nature",
	18: "Science: Computers",
	19: "Science: Mathematics",
	20: "Mythology",
	21: "Sports",
	22: "Geography",
	23: "History",
	24: "Politics",
	25: "Art",
	26: "Celebrities",
	27: "Animals",
	28: "Vehicles",
	29: "Entertainment: Comics",
	30: "Science: Gadgets",
	31: "Entertainment: Japanese Anime & Manga",
	32: "Entertainment: Cartoon & Animations",
}

// TimeBudgets are the countdown presets offered to players, in seconds
var TimeBudgets = []int{60, 300, 900, 1800, 3600}

// SessionOptions selects which questions to load and how long the player has
type SessionOptions struct {
	Amount     int
	Category   int
	Difficulty Difficulty
	Type       AnswerType
	Encoding   Encoding
	TimeBudget int // seconds, 0 disables the countdown
}

// DefaultOptions returns ten questions of any kind with a five minute timer
func DefaultOptions() SessionOptions {
	return SessionOptions{
		Amount:     10,
		Category:   CategoryAny,
		Difficulty: DifficultyAny,
		Type:       AnswerTypeAny,
		Encoding:   EncodingDefault,
		TimeBudget: 300,
	}
}

// Normalized clamps the amount and maps unknown filter values to "any".
// Positive category ids are kept as given; the trivia API decides whether
// they exist.
func (o SessionOptions) Normalized() SessionOptions {
	o.Amount = ClampAmount(o.Amount)
	if o.Category <= 0 {
		o.Category = CategoryAny
	}
	if d, ok := ParseDifficulty(string(o.Difficulty)); ok {
		o.Difficulty = d
	} else {
		o.Difficulty = DifficultyAny
	}
	if t, ok := ParseAnswerType(string(o.Type)); ok {
		o.Type = t
	} else {
		o.Type = AnswerTypeAny
	}
	if e, ok := ParseEncoding(string(o.Encoding)); ok {
		o.Encoding = e
	} else {
		o.Encoding = EncodingDefault
	}
	return o
}

// ClampAmount bounds n to the range the trivia API accepts
func ClampAmount(n int) int {
	if n < MinAmount {
		return MinAmount
	}
	if n > MaxAmount {
		return MaxAmount
	}
	return n
}

// CategoryName returns a display name for a category id
func CategoryName(id int) string {
	if name, ok := Categories[id]; ok {
		return name
	}
	if id > 0 {
		return "Category " + strconv.Itoa(id)
	}
	return "Any Category"
}

// CategoryIDs returns all known category ids in ascending order
func CategoryIDs() []int {
	ids := make([]int, 0, len(Categories))
	for id := range Categories {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func ParseDifficulty(s string) (Difficulty, bool) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyAny, DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, true
	case "":
		return DifficultyAny, true
	}
	return "", false
}

func ParseAnswerType(s string) (AnswerType, bool) {
	switch t := AnswerType(strings.ToLower(strings.TrimSpace(s))); t {
	case AnswerTypeAny, AnswerTypeMultiple, AnswerTypeBoolean:
		return t, true
	case "":
		return AnswerTypeAny, true
	}
	return "", false
}

func ParseEncoding(s string) (Encoding, bool) {
	switch e := Encoding(strings.ToLower(strings.TrimSpace(s))); e {
	case EncodingDefault, EncodingURL3986, EncodingBase64:
		return e, true
	case "":
		return EncodingDefault, true
	}
	return "", false
}
