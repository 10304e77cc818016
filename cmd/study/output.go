package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"study-assistant/internal/resources"
	"study-assistant/internal/study"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case formatText, formatJSON, formatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("invalid --format %q (valid options: text, json, yaml)", format)
	}
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// emit writes v in the selected format, using text for the plain rendering.
func emit(cmd *cobra.Command, v any, text func(io.Writer)) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	if format == formatText {
		text(cmd.OutOrStdout())
		return nil
	}
	return writeStructured(cmd.OutOrStdout(), format, v)
}

func renderReport(w io.Writer, report study.Report) {
	for _, page := range report.Pages {
		fmt.Fprintf(w, "## Page %d Summary\n\n%s\n\n", page.Page, page.Summary)
		fmt.Fprintf(w, "## Page %d Flashcards\n\n", page.Page)
		renderFlashcards(w, page.Flashcards)
		fmt.Fprintf(w, "## Page %d MCQs\n\n", page.Page)
		renderMCQs(w, page.MCQs)
	}
	if report.Question != "" {
		fmt.Fprintf(w, "## Question\n\n%s\n\nAnswer: %s\n", report.Question, report.Answer)
	}
}

func renderFlashcards(w io.Writer, cards []study.Flashcard) {
	for _, card := range cards {
		fmt.Fprintf(w, "Q: %s\nA: %s\n\n", card.Question, card.Answer)
	}
}

func renderMCQs(w io.Writer, mcqs []study.MCQ) {
	for i, mcq := range mcqs {
		fmt.Fprintf(w, "Q%d: %s\n", i+1, mcq.Question)
		for _, opt := range mcq.Options {
			fmt.Fprintf(w, "  - %s\n", opt)
		}
		answer := mcq.Answer
		if answer == "" {
			answer = "N/A"
		}
		fmt.Fprintf(w, "Answer: %s\n\n", answer)
	}
}

func renderResources(w io.Writer, res resources.Resources) {
	fmt.Fprintln(w, "Websites:")
	for _, site := range res.Websites {
		fmt.Fprintf(w, "  - %s\n", site)
	}
	fmt.Fprintln(w, "YouTube:")
	for _, video := range res.YouTube {
		fmt.Fprintf(w, "  - %s\n", video)
	}
}
