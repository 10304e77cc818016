package normalize

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type card struct {
	Q string `json:"q"`
	A string `json:"a"`
}

func TestExtractStructured(t *testing.T) {
	tests := []struct {
		name string
		text string
		want any
	}{
		{
			name: "array wrapped in prose",
			text: `... [{"q":"x","a":"y"}] ...`,
			want: []any{map[string]any{"q": "x", "a": "y"}},
		},
		{
			name: "not json at all",
			text: "not json at all",
			want: []any{},
		},
		{
			name: "object wrapped in prose",
			text: `Sure! {"answer": "B"} Good luck.`,
			want: map[string]any{"answer": "B"},
		},
		{
			name: "markdown fence",
			text: "```json\n[{\"q\":\"x\",\"a\":\"y\"}]\n```",
			want: []any{map[string]any{"q": "x", "a": "y"}},
		},
		{
			name: "array followed by a second fragment",
			text: `Here: [{"q":"x","a":"y"}]{"q":"x","a":"y"} done`,
			want: []any{map[string]any{"q": "x", "a": "y"}},
		},
		{
			name: "brackets inside strings are ignored",
			text: `[{"q":"what is [x]?","a":"a } b"}]`,
			want: []any{map[string]any{"q": "what is [x]?", "a": "a } b"}},
		},
		{
			name: "escaped quotes inside strings",
			text: `[{"q":"say \"hi]\"","a":"ok"}]`,
			want: []any{map[string]any{"q": `say "hi]"`, "a": "ok"}},
		},
		{
			name: "unbalanced opening is skipped",
			text: `[ oops {"a": 1}`,
			want: map[string]any{"a": float64(1)},
		},
		{
			name: "balanced but malformed",
			text: `[{q: x}]`,
			want: []any{},
		},
		{
			name: "trailing comma makes the whole array malformed",
			text: `Here: [{"q":"x","a":"y"},] done`,
			want: []any{},
		},
		{
			name: "malformed array does not yield its own element",
			text: `[{"q":"x","a":"y"}, oops]`,
			want: []any{},
		},
		{
			name: "valid fragment after a malformed one",
			text: `[{"q":"x"},] then {"a": 2}`,
			want: map[string]any{"a": float64(2)},
		},
		{
			name: "empty input",
			text: "",
			want: []any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractStructured(tt.text))
		})
	}
}

func TestExtractErrorKinds(t *testing.T) {
	_, err := Extract("plain prose, nothing here")
	assert.True(t, errors.Is(err, ErrNoJSON), "got %v", err)

	_, err = Extract("[not, json]")
	assert.True(t, errors.Is(err, ErrInvalidJSON), "got %v", err)

	raw, err := Extract(`lead-in [1, 2] trailing ]`)
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2]`, string(raw))
}

func TestExtractManyUnbalancedOpeners(t *testing.T) {
	text := strings.Repeat("[", 200_000) + `{"a": 1}`
	assert.Equal(t, map[string]any{"a": float64(1)}, ExtractStructured(text))

	assert.Equal(t, []any{}, ExtractStructured(strings.Repeat("{", 200_000)))
}

func TestDecodeList(t *testing.T) {
	t.Run("photosynthesis response", func(t *testing.T) {
		text := "Here are your flashcards:\n" +
			`[{"q":"What does photosynthesis convert?","a":"Light into chemical energy"}]` +
			`{"q":"What does photosynthesis convert?","a":"Light into chemical energy"}` +
			"\nLet me know if you need more."

		cards, err := DecodeList[card](text)
		require.NoError(t, err)
		assert.Equal(t, []card{{Q: "What does photosynthesis convert?", A: "Light into chemical energy"}}, cards)
	})

	t.Run("skips leading citation array that does not fit", func(t *testing.T) {
		cards, err := DecodeList[card](`As noted in [1], here: [{"q":"x","a":"y"}]`)
		require.NoError(t, err)
		assert.Equal(t, []card{{Q: "x", A: "y"}}, cards)
	})

	t.Run("object is not a list", func(t *testing.T) {
		_, err := DecodeList[card](`{"q":"x","a":"y"}`)
		assert.True(t, errors.Is(err, ErrInvalidJSON), "got %v", err)
	})

	t.Run("empty array", func(t *testing.T) {
		_, err := DecodeList[card](`[]`)
		assert.True(t, errors.Is(err, ErrInvalidJSON), "got %v", err)
	})

	t.Run("no json", func(t *testing.T) {
		_, err := DecodeList[card]("nothing")
		assert.True(t, errors.Is(err, ErrNoJSON), "got %v", err)
	})

	t.Run("array nested in a valid object", func(t *testing.T) {
		cards, err := DecodeList[card](`{"cards": [{"q":"x","a":"y"}]}`)
		require.NoError(t, err)
		assert.Equal(t, []card{{Q: "x", A: "y"}}, cards)
	})

	t.Run("elements of a malformed array are not used", func(t *testing.T) {
		_, err := DecodeList[card](`[{"q":"x","a":"y"},]`)
		assert.True(t, errors.Is(err, ErrInvalidJSON), "got %v", err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := DecodeList[card](`[{"q": "x", "a": }]`)
		assert.True(t, errors.Is(err, ErrInvalidJSON), "got %v", err)
	})
}
