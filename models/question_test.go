package models

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShuffledAnswersArePermutation(t *testing.T) {
	incorrect := []string{"Berlin", "Madrid", "Rome"}
	q := NewQuestion("Geography", TypeMultiple, "easy", "Capital of France?", "Paris", incorrect, EncodingDefault)

	got := q.ShuffledAnswers()
	require.Len(t, got, 4)

	want := []string{"Berlin", "Madrid", "Paris", "Rome"}
	sorted := append([]string(nil), got...)
	sort.Strings(sorted)
	require.Equal(t, want, sorted)
}

func TestShuffledAnswersStableAcrossReads(t *testing.T) {
	q := NewQuestion("Science", TypeMultiple, "hard", "Q", "a", []string{"b", "c", "d", "e", "f"}, EncodingDefault)

	first := q.ShuffledAnswers()
	for i := 0; i < 20; i++ {
		require.Equal(t, first, q.ShuffledAnswers())
	}

	// callers cannot disturb the frozen order
	first[0] = "mutated"
	require.NotEqual(t, "mutated", q.ShuffledAnswers()[0])
}

func TestBooleanAnswersNeverShuffled(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 10; i++ {
		q := NewQuestionWithRand(r, "General", TypeBoolean, "easy", "Q", "False", []string{"True"}, EncodingDefault)
		require.Equal(t, []string{"True", "False"}, q.ShuffledAnswers())
		require.Equal(t, []string{"True", "False"}, q.DisplayAnswers())
	}
}

func TestShuffleIsSeededBySource(t *testing.T) {
	a := ShuffleAnswers(rand.New(rand.NewPCG(7, 7)), TypeMultiple, "1", []string{"2", "3", "4"})
	b := ShuffleAnswers(rand.New(rand.NewPCG(7, 7)), TypeMultiple, "1", []string{"2", "3", "4"})
	require.Equal(t, a, b)
}

func TestNewQuestionAssignsUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		q := NewQuestion("c", TypeBoolean, "easy", "q", "True", []string{"False"}, EncodingDefault)
		require.False(t, seen[q.ID.String()], "duplicate id %s", q.ID)
		seen[q.ID.String()] = true
	}
}

func TestDecoding(t *testing.T) {
	testCases := []struct {
		name string
		enc  Encoding
		in   string
		want string
	}{
		{"html named", EncodingDefault, "Tom &amp; Jerry &quot;cartoon&quot;", `Tom & Jerry "cartoon"`},
		{"html numeric", EncodingDefault, "It&#039;s", "It's"},
		{"html accented", EncodingDefault, "Pok&eacute;mon", "Pokémon"},
		{"html plain", EncodingDefault, "no entities", "no entities"},
		{"url3986", EncodingURL3986, "What%20is%202%2B2%3F", "What is 2+2?"},
		{"url3986 invalid", EncodingURL3986, "100%", "100%"},
		{"base64", EncodingBase64, "VHJ1ZQ==", "True"},
		{"base64 invalid", EncodingBase64, "not base64!", "not base64!"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.enc.Decode(tc.in))
		})
	}
}

func TestDecodedAccessorsKeepStoredForm(t *testing.T) {
	q := NewQuestion("Entertainment: Film", TypeMultiple, "medium",
		"Who directed &quot;Jaws&quot;?", "Steven Spielberg", []string{"George Lucas", "Ridley Scott &amp; co"}, EncodingDefault)

	require.Equal(t, `Who directed "Jaws"?`, q.DecodedText())
	require.Equal(t, "Who directed &quot;Jaws&quot;?", q.Text)
	require.Equal(t, []string{"George Lucas", "Ridley Scott & co"}, q.DecodedIncorrect())
	require.Contains(t, q.DisplayAnswers(), "Ridley Scott & co")
	require.Contains(t, q.ShuffledAnswers(), "Ridley Scott &amp; co")
}

func TestParseQuestionType(t *testing.T) {
	qt, ok := ParseQuestionType(" Multiple ")
	require.True(t, ok)
	require.Equal(t, TypeMultiple, qt)

	_, ok = ParseQuestionType("essay")
	require.False(t, ok)
}
