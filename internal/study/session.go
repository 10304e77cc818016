package study

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// PageResult holds everything generated for one page of notes.
type PageResult struct {
	Page       int         `json:"page" yaml:"page"`
	Summary    string      `json:"summary" yaml:"summary"`
	Flashcards []Flashcard `json:"flashcards" yaml:"flashcards"`
	MCQs       []MCQ       `json:"mcqs" yaml:"mcqs"`
}

// Report is the outcome of a study run over a whole document.
type Report struct {
	RunID    string       `json:"run_id" yaml:"run_id"`
	Pages    []PageResult `json:"pages" yaml:"pages"`
	Question string       `json:"question,omitempty" yaml:"question,omitempty"`
	Answer   string       `json:"answer,omitempty" yaml:"answer,omitempty"`
}

// RunOptions controls a study run.
type RunOptions struct {
	// Concurrency bounds how many pages are processed at once. Values below 1 mean
	// sequential processing.
	Concurrency int
	// Count is the number of flashcards and MCQs per page.
	Count int
	// Question, when not blank, is answered against all pages joined together.
	Question string
}

// Run processes every page (summary, flashcards, MCQs) and optionally answers a
// question about the whole document. Pages keep their order and 1-based numbering
// regardless of concurrency.
func (s *Service) Run(ctx context.Context, pages []string, opts RunOptions) Report {
	runID := uuid.New().String()
	log := s.log.With("run_id", runID)
	start := time.Now()
	log.InfoContext(ctx, "study run starting", "pages", len(pages), "concurrency", opts.Concurrency)

	results := make([]PageResult, len(pages))
	var g errgroup.Group
	if opts.Concurrency > 1 {
		g.SetLimit(opts.Concurrency)
	} else {
		g.SetLimit(1)
	}
	for i, text := range pages {
		g.Go(func() error {
			results[i] = s.processPage(ctx, i+1, text, opts.Count)
			return nil
		})
	}
	_ = g.Wait()

	report := Report{RunID: runID, Pages: results}
	if !isBlank(opts.Question) {
		report.Question = opts.Question
		report.Answer = s.Answer(ctx, opts.Question, JoinPages(pages))
	}

	log.InfoContext(ctx, "study run finished", "duration_ms", time.Since(start).Milliseconds())
	return report
}

func (s *Service) processPage(ctx context.Context, number int, text string, count int) PageResult {
	return PageResult{
		Page:       number,
		Summary:    s.Summarize(ctx, text),
		Flashcards: s.Flashcards(ctx, text, count),
		MCQs:       s.MCQs(ctx, text, count),
	}
}

// JoinPages concatenates pages into the context used for whole-document questions.
func JoinPages(pages []string) string {
	return strings.Join(pages, "\n")
}
