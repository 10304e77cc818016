package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"study-assistant/internal/ingest"
	"study-assistant/internal/study"
)

var errNoInput = errors.New("provide a file, - for stdin, or --text")

// readPages loads pages from a PDF/TXT path, or a single page from stdin when
// path is "-".
func readPages(cmd *cobra.Command, path string) ([]string, error) {
	if path == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []string{string(content)}, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pages, err := ingest.FromFile(path, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pages, nil
}

// readNotes resolves the notes for single-task commands: --text wins, otherwise
// the pages of the file argument joined together.
func readNotes(cmd *cobra.Command, path string) (string, error) {
	if text, _ := cmd.Flags().GetString("text"); text != "" {
		return text, nil
	}
	if path == "" {
		return "", errNoInput
	}
	pages, err := readPages(cmd, path)
	if err != nil {
		return "", err
	}
	return study.JoinPages(pages), nil
}

func addTextFlag(cmd *cobra.Command) {
	cmd.Flags().String("text", "", "Notes text (instead of a file)")
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
