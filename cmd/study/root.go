package main

import (
	"context"

	"github.com/spf13/cobra"

	"study-assistant/internal/app"
)

// depsLoader builds dependencies on first use so --help works without credentials.
type depsLoader func(ctx context.Context) (app.Deps, error)

func NewRootCmd(version string, load depsLoader) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "study",
		Short:         "Turn notes into summaries, flashcards and quizzes",
		Long:          `Generate per-page summaries, flashcards and multiple-choice questions from PDF or text notes, and answer questions about them.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_, err := outputFormat(cmd)
			return err
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	rootCmd.PersistentFlags().String("format", formatText, "Output format (text|json|yaml)")

	if load != nil {
		rootCmd.AddCommand(
			NewRunCmd(load),
			NewSummarizeCmd(load),
			NewKeyPointsCmd(load),
			NewFlashcardsCmd(load),
			NewMCQsCmd(load),
			NewAnswerCmd(load),
			NewResourcesCmd(load),
		)
	}

	return rootCmd
}
