package study

import (
	"fmt"
	"strings"
)

// Template selects one of the fixed prompt shapes.
type Template int

const (
	TemplateSummarize Template = iota
	TemplateFlashcards
	TemplateMCQ
	TemplateAnswer
	TemplateKeyPoints
)

func (t Template) String() string {
	switch t {
	case TemplateSummarize:
		return "summarize"
	case TemplateFlashcards:
		return "flashcards"
	case TemplateMCQ:
		return "mcq"
	case TemplateAnswer:
		return "answer"
	case TemplateKeyPoints:
		return "key_points"
	default:
		return fmt.Sprintf("template(%d)", int(t))
	}
}

// Response caps per template, in provider tokens.
const (
	summarizeMaxTokens  = 500
	flashcardsMaxTokens = 400
	mcqMaxTokens        = 500
	answerMaxTokens     = 300
	keyPointsMaxTokens  = 300
)

// DefaultCount is the number of flashcards or MCQs requested when none is given.
const DefaultCount = 3

// PromptRequest is built per task call and discarded afterwards.
type PromptRequest struct {
	Template Template
	Notes    string
	Question string // TemplateAnswer only
	Count    int    // TemplateFlashcards and TemplateMCQ only
}

// MaxTokens returns the response cap for the request's template.
func (r PromptRequest) MaxTokens() int {
	switch r.Template {
	case TemplateSummarize:
		return summarizeMaxTokens
	case TemplateFlashcards:
		return flashcardsMaxTokens
	case TemplateMCQ:
		return mcqMaxTokens
	case TemplateAnswer:
		return answerMaxTokens
	case TemplateKeyPoints:
		return keyPointsMaxTokens
	default:
		return summarizeMaxTokens
	}
}

// Prompt renders the request into the text sent to the provider.
func (r PromptRequest) Prompt() string {
	switch r.Template {
	case TemplateFlashcards:
		return fmt.Sprintf(flashcardsPrompt, r.count(), r.Notes)
	case TemplateMCQ:
		return fmt.Sprintf(mcqPrompt, r.count(), r.Notes)
	case TemplateAnswer:
		return fmt.Sprintf("Answer the following question based on the notes:\nNotes:\n%s\nQuestion:\n%s", r.Notes, r.Question)
	case TemplateKeyPoints:
		return "You are a helpful study assistant.\nSummarize this text into key study points:\n\n" + r.Notes
	default:
		return "Provide a detailed summary for the following notes:\n" + r.Notes
	}
}

func (r PromptRequest) count() int {
	if r.Count <= 0 {
		return DefaultCount
	}
	return r.Count
}

const flashcardsPrompt = `
You are a study assistant. Create %d flashcards from the following notes.
Return ONLY valid JSON:
[
  { "q": "Question text", "a": "Answer text" },
  ...
]
Notes:
%s
`

const mcqPrompt = `
You are a study assistant. Create %d multiple-choice questions from the following notes.
Each question must have exactly 4 options and name the correct option in "answer".
Return ONLY valid JSON:
[
  {
    "q": "Question text",
    "options": ["Option A","Option B","Option C","Option D"],
    "answer": "Correct option"
  },
  ...
]
Notes:
%s
`

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
