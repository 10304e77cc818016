package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"study-assistant/internal/study"
)

func NewSummarizeCmd(load depsLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize [file]",
		Short: "Write a detailed summary of notes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return freeTextTask(cmd, load, firstArg(args), "summary", (*study.Service).Summarize)
		},
	}
	addTextFlag(cmd)
	return cmd
}

func NewKeyPointsCmd(load depsLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key-points [file]",
		Short: "Condense notes into key study points",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return freeTextTask(cmd, load, firstArg(args), "key_points", (*study.Service).KeyPoints)
		},
	}
	addTextFlag(cmd)
	return cmd
}

func NewFlashcardsCmd(load depsLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flashcards [file]",
		Short: "Generate question/answer flashcards",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := readNotes(cmd, firstArg(args))
			if err != nil {
				return fmt.Errorf("flashcards: %w", err)
			}
			count, _ := cmd.Flags().GetInt("count")
			deps, err := load(cmd.Context())
			if err != nil {
				return err
			}
			cards := deps.Study.Flashcards(cmd.Context(), notes, count)
			return emit(cmd, map[string]any{"flashcards": cards}, func(w io.Writer) { renderFlashcards(w, cards) })
		},
	}
	addTextFlag(cmd)
	cmd.Flags().Int("count", study.DefaultCount, "Number of flashcards")
	return cmd
}

func NewMCQsCmd(load depsLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcqs [file]",
		Short: "Generate multiple-choice questions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := readNotes(cmd, firstArg(args))
			if err != nil {
				return fmt.Errorf("mcqs: %w", err)
			}
			count, _ := cmd.Flags().GetInt("count")
			deps, err := load(cmd.Context())
			if err != nil {
				return err
			}
			mcqs := deps.Study.MCQs(cmd.Context(), notes, count)
			return emit(cmd, map[string]any{"mcqs": mcqs}, func(w io.Writer) { renderMCQs(w, mcqs) })
		},
	}
	addTextFlag(cmd)
	cmd.Flags().Int("count", study.DefaultCount, "Number of questions")
	return cmd
}

func NewAnswerCmd(load depsLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "answer <question> [file]",
		Short: "Answer a question from notes",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := args[0]
			// Missing notes are not an error: the answer says so.
			notes, err := readNotes(cmd, firstArg(args[1:]))
			if err != nil && !errors.Is(err, errNoInput) {
				return fmt.Errorf("answer: %w", err)
			}
			deps, err := load(cmd.Context())
			if err != nil {
				return err
			}
			answer := deps.Study.Answer(cmd.Context(), question, notes)
			return emit(cmd, map[string]string{"question": question, "answer": answer}, func(w io.Writer) {
				fmt.Fprintf(w, "Answer: %s\n", answer)
			})
		},
	}
	addTextFlag(cmd)
	return cmd
}

func NewResourcesCmd(load depsLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "resources <topic>",
		Short: "Find websites and videos about a topic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := load(cmd.Context())
			if err != nil {
				return err
			}
			res := deps.Resources.Find(cmd.Context(), strings.Join(args, " "))
			return emit(cmd, res, func(w io.Writer) { renderResources(w, res) })
		},
	}
}

type freeTextFunc func(s *study.Service, ctx context.Context, text string) string

func freeTextTask(cmd *cobra.Command, load depsLoader, path, key string, task freeTextFunc) error {
	notes, err := readNotes(cmd, path)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	deps, err := load(cmd.Context())
	if err != nil {
		return err
	}
	out := task(deps.Study, cmd.Context(), notes)
	return emit(cmd, map[string]string{key: out}, func(w io.Writer) { fmt.Fprintln(w, out) })
}
