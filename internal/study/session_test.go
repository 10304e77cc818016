package study

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"study-assistant/internal/llm"
)

// pageStub answers every template for a page identified by its text.
func pageStub(p *llm.MockProvider, page string) {
	p.On("Complete", mock.Anything, promptContains("detailed summary", page), summarizeMaxTokens).
		Return("summary of "+page, nil).Once()
	p.On("Complete", mock.Anything, promptContains("flashcards", page), flashcardsMaxTokens).
		Return(fmt.Sprintf(`[{"q":"%s?","a":"yes"}]`, page), nil).Once()
	p.On("Complete", mock.Anything, promptContains("multiple-choice", page), mcqMaxTokens).
		Return(fmt.Sprintf(`[{"q":"%s?","options":["yes","no"],"answer":"yes"}]`, page), nil).Once()
}

func TestRunKeepsPageOrder(t *testing.T) {
	pages := []string{"alpha", "bravo", "charlie", "delta"}

	for _, concurrency := range []int{0, 1, 3} {
		t.Run(fmt.Sprintf("concurrency %d", concurrency), func(t *testing.T) {
			p := new(llm.MockProvider)
			for _, page := range pages {
				pageStub(p, page)
			}

			report := newTestService(p).Run(context.Background(), pages, RunOptions{Concurrency: concurrency})

			_, err := uuid.Parse(report.RunID)
			require.NoError(t, err)
			require.Len(t, report.Pages, len(pages))
			for i, page := range pages {
				got := report.Pages[i]
				assert.Equal(t, i+1, got.Page)
				assert.Equal(t, "summary of "+page, got.Summary)
				assert.Equal(t, []Flashcard{{Question: page + "?", Answer: "yes"}}, got.Flashcards)
				assert.Equal(t, []MCQ{{Question: page + "?", Options: []string{"yes", "no"}, Answer: "yes"}}, got.MCQs)
			}
			assert.Empty(t, report.Answer)
			p.AssertExpectations(t)
		})
	}
}

func TestRunAnswersAgainstWholeDocument(t *testing.T) {
	pages := []string{"alpha", "bravo"}
	p := new(llm.MockProvider)
	for _, page := range pages {
		pageStub(p, page)
	}
	p.On("Complete", mock.Anything, promptContains("Notes:\nalpha\nbravo\nQuestion:\nWhich pages?"), answerMaxTokens).
		Return("alpha and bravo", nil).Once()

	report := newTestService(p).Run(context.Background(), pages, RunOptions{Question: "Which pages?"})

	assert.Equal(t, "Which pages?", report.Question)
	assert.Equal(t, "alpha and bravo", report.Answer)
	p.AssertExpectations(t)
}

func TestRunBlankPageNeedsNoProvider(t *testing.T) {
	p := new(llm.MockProvider)

	report := newTestService(p).Run(context.Background(), []string{"   "}, RunOptions{Question: "  "})

	require.Len(t, report.Pages, 1)
	assert.Equal(t, PageResult{Page: 1, Summary: "", Flashcards: []Flashcard{}, MCQs: []MCQ{}}, report.Pages[0])
	assert.Empty(t, report.Question)
	p.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func TestJoinPages(t *testing.T) {
	assert.Equal(t, "a\nb\nc", JoinPages([]string{"a", "b", "c"}))
	assert.Equal(t, "", JoinPages(nil))
	assert.True(t, strings.HasPrefix(JoinPages([]string{"x", ""}), "x\n"))
}
