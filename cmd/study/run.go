package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"study-assistant/internal/ingest"
	"study-assistant/internal/study"
)

func NewRunCmd(load depsLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Study a whole document page by page",
		Long: `Generate a summary, flashcards and MCQs for every page of a PDF or TXT file
and/or typed notes, then optionally answer a question about all of it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: makeRunRunner(load),
	}

	cmd.Flags().String("notes", "", "Typed notes, added as an extra page")
	cmd.Flags().String("question", "", "Question to answer about the whole document")
	cmd.Flags().Int("count", study.DefaultCount, "Flashcards and MCQs per page")
	cmd.Flags().Int("concurrency", 0, "Pages processed at once (default PAGE_CONCURRENCY)")

	return cmd
}

func makeRunRunner(load depsLoader) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		notes, _ := cmd.Flags().GetString("notes")
		question, _ := cmd.Flags().GetString("question")
		count, _ := cmd.Flags().GetInt("count")
		concurrency, _ := cmd.Flags().GetInt("concurrency")

		var pages []string
		if path := firstArg(args); path != "" {
			var err error
			pages, err = readPages(cmd, path)
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}
		}
		pages = ingest.AppendTyped(pages, notes)
		if len(pages) == 0 {
			return fmt.Errorf("run: please provide notes via file or --notes")
		}

		deps, err := load(cmd.Context())
		if err != nil {
			return err
		}
		if concurrency <= 0 {
			concurrency = deps.Config.PageConcurrency
		}

		report := deps.Study.Run(cmd.Context(), pages, study.RunOptions{
			Concurrency: concurrency,
			Count:       count,
			Question:    question,
		})
		return emit(cmd, report, func(w io.Writer) { renderReport(w, report) })
	}
}
