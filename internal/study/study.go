// Package study implements the notes-processing tasks: summaries, flashcards,
// multiple-choice questions and question answering.
//
// Every task is total. Blank input short-circuits before any provider call,
// provider failures become an "Error: ..." string for free-text tasks, and
// provider or parse failures become a fixed placeholder for structured tasks.
// The failure kind is logged instead of returned.
package study

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"study-assistant/internal/llm"
	"study-assistant/internal/normalize"
)

// Fixed sentinel texts shown to the user.
const (
	NoNotesAnswer          = "No notes provided."
	FlashcardsPlaceholderQ = "Could not generate flashcards"
	MCQsPlaceholderQ       = "Could not generate MCQs"
	errorPrefix            = "Error: "
)

// Failure kinds attached to warning logs.
const (
	kindProvider = "provider"
	kindParse    = "parse"
)

// Flashcard is one question/answer pair. JSON names are the rendering contract.
type Flashcard struct {
	Question string `json:"q" yaml:"q"`
	Answer   string `json:"a" yaml:"a"`
}

// MCQ is one multiple-choice question. JSON names are the rendering contract.
type MCQ struct {
	Question string   `json:"q" yaml:"q"`
	Options  []string `json:"options" yaml:"options"`
	Answer   string   `json:"answer" yaml:"answer"`
}

// FlashcardsPlaceholder is returned when flashcards could not be generated.
func FlashcardsPlaceholder() []Flashcard {
	return []Flashcard{{Question: FlashcardsPlaceholderQ, Answer: ""}}
}

// MCQsPlaceholder is returned when MCQs could not be generated.
func MCQsPlaceholder() []MCQ {
	return []MCQ{{Question: MCQsPlaceholderQ, Options: []string{}, Answer: ""}}
}

// Service runs tasks against a single provider chosen at startup.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	provider llm.Provider
	log      *slog.Logger
}

// NewService wires a provider and logger into a Service.
func NewService(provider llm.Provider, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{provider: provider, log: log}
}

// Summarize returns a detailed summary of text, "" for blank text, or an error string.
func (s *Service) Summarize(ctx context.Context, text string) string {
	if isBlank(text) {
		return ""
	}
	return s.freeText(ctx, PromptRequest{Template: TemplateSummarize, Notes: text})
}

// KeyPoints returns the notes condensed into key study points, "" for blank text,
// or an error string.
func (s *Service) KeyPoints(ctx context.Context, text string) string {
	if isBlank(text) {
		return ""
	}
	return s.freeText(ctx, PromptRequest{Template: TemplateKeyPoints, Notes: text})
}

// Answer answers question from contextText. Blank context yields NoNotesAnswer
// without calling the provider.
func (s *Service) Answer(ctx context.Context, question, contextText string) string {
	if isBlank(contextText) {
		return NoNotesAnswer
	}
	return s.freeText(ctx, PromptRequest{Template: TemplateAnswer, Notes: contextText, Question: question})
}

// Flashcards generates count flashcards (DefaultCount when count <= 0). Blank text
// yields an empty list; any failure yields FlashcardsPlaceholder.
func (s *Service) Flashcards(ctx context.Context, text string, count int) []Flashcard {
	if isBlank(text) {
		return []Flashcard{}
	}
	req := PromptRequest{Template: TemplateFlashcards, Notes: text, Count: count}
	cards, err := structured[Flashcard](ctx, s, req)
	if err != nil {
		return FlashcardsPlaceholder()
	}
	return cards
}

// MCQs generates count multiple-choice questions (DefaultCount when count <= 0).
// Blank text yields an empty list; any failure yields MCQsPlaceholder.
func (s *Service) MCQs(ctx context.Context, text string, count int) []MCQ {
	if isBlank(text) {
		return []MCQ{}
	}
	req := PromptRequest{Template: TemplateMCQ, Notes: text, Count: count}
	mcqs, err := structured[MCQ](ctx, s, req)
	if err != nil {
		return MCQsPlaceholder()
	}
	for i := range mcqs {
		if mcqs[i].Options == nil {
			mcqs[i].Options = []string{}
		}
	}
	return mcqs
}

func (s *Service) freeText(ctx context.Context, req PromptRequest) string {
	out, err := s.provider.Complete(ctx, req.Prompt(), req.MaxTokens())
	if err != nil {
		s.warn(ctx, req, kindProvider, err)
		return errorPrefix + err.Error()
	}
	return strings.TrimSpace(out)
}

func structured[T any](ctx context.Context, s *Service, req PromptRequest) ([]T, error) {
	raw, err := s.provider.Complete(ctx, req.Prompt(), req.MaxTokens())
	if err != nil {
		s.warn(ctx, req, kindProvider, err)
		return nil, err
	}
	items, err := normalize.DecodeList[T](raw)
	if err != nil {
		s.warn(ctx, req, kindParse, err, "response_length", len(raw))
		return nil, err
	}
	return items, nil
}

func (s *Service) warn(ctx context.Context, req PromptRequest, kind string, err error, attrs ...any) {
	if errors.Is(err, context.Canceled) {
		kind = "canceled"
	}
	args := append([]any{"task", req.Template.String(), "kind", kind, "err", err}, attrs...)
	s.log.WarnContext(ctx, "study task fell back", args...)
}
