package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"study-assistant/internal/app"
	"study-assistant/internal/httputil"
	"study-assistant/internal/ingest"
	"study-assistant/internal/study"
)

// maxCount caps flashcards and MCQs per request.
const maxCount = 20

type textRequest struct {
	Text string `json:"text"`
}

type countRequest struct {
	Text  string `json:"text"`
	Count int    `json:"count" validate:"gte=0,lte=20"`
}

type answerRequest struct {
	Question string `json:"question" validate:"required"`
	Context  string `json:"context"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := app.Build(ctx, os.Stdout)
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", deps.Config.Port),
		Handler:           newRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			deps.Log.Error("shutdown failed", "err", err)
		}
	}()

	deps.Log.Info("gateway listening", "addr", srv.Addr, "provider", deps.LLM.Name())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		deps.Log.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func newRouter(deps app.Deps) *chi.Mux {
	r := httputil.NewRouter(deps.Log)

	r.Post("/api/study/upload", uploadHandler(deps))
	r.Post("/api/summarize", summarizeHandler(deps))
	r.Post("/api/key-points", keyPointsHandler(deps))
	r.Post("/api/flashcards", flashcardsHandler(deps))
	r.Post("/api/mcqs", mcqsHandler(deps))
	r.Post("/api/answer", answerHandler(deps))
	r.Get("/api/resources", resourcesHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps))

	return r
}

// uploadHandler runs a full study session over an uploaded PDF/TXT file and/or
// typed notes, optionally answering a question about the whole document.
func uploadHandler(deps app.Deps) http.HandlerFunc {
	maxFileSize := deps.Config.MaxUploadSize

	return func(w http.ResponseWriter, r *http.Request) {
		// Validate request size before parsing
		if r.ContentLength > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}
		if err := r.ParseMultipartForm(maxFileSize); err != nil {
			httputil.Fail(deps.Log, w, "invalid multipart form", err, http.StatusBadRequest)
			return
		}

		count, err := parseCount(r.FormValue("count"))
		if err != nil {
			httputil.Fail(deps.Log, w, err.Error(), nil, http.StatusBadRequest)
			return
		}
		notes := r.FormValue("notes")
		question := r.FormValue("question")

		var pages []string
		file, header, err := r.FormFile("file")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			httputil.Fail(deps.Log, w, "invalid file", err, http.StatusBadRequest)
			return
		default:
			defer file.Close()
			if header.Size > maxFileSize {
				httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
				return
			}
			docType, err := ingest.DetectType(header.Filename, header.Header.Get("Content-Type"))
			if err != nil {
				httputil.Fail(deps.Log, w, ingest.ErrUnsupportedType.Error(), err, http.StatusBadRequest)
				return
			}
			content, err := io.ReadAll(file)
			if err != nil {
				httputil.Fail(deps.Log, w, "failed to read file", err, http.StatusInternalServerError)
				return
			}
			pages, err = ingest.Pages(docType, content)
			switch {
			case errors.Is(err, ingest.ErrNoText) && strings.TrimSpace(notes) != "":
				deps.Log.Warn("uploaded file has no text; using typed notes only", "filename", header.Filename)
			case err != nil:
				httputil.Fail(deps.Log, w, "could not read text from file", err, http.StatusBadRequest)
				return
			}
		}

		pages = ingest.AppendTyped(pages, notes)
		if len(pages) == 0 && strings.TrimSpace(question) == "" {
			httputil.Fail(deps.Log, w, "file, notes or question is required", nil, http.StatusBadRequest)
			return
		}

		report := deps.Study.Run(r.Context(), pages, study.RunOptions{
			Concurrency: deps.Config.PageConcurrency,
			Count:       count,
			Question:    question,
		})
		httputil.WriteJSON(w, http.StatusOK, report)
	}
}

func parseCount(raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > maxCount {
		return 0, fmt.Errorf("count must be between 0 and %d", maxCount)
	}
	return n, nil
}

func summarizeHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req textRequest
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.Fail(deps.Log, w, httputil.ValidationError(err), err, http.StatusBadRequest)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{
			"summary": deps.Study.Summarize(r.Context(), req.Text),
		})
	}
}

func keyPointsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req textRequest
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.Fail(deps.Log, w, httputil.ValidationError(err), err, http.StatusBadRequest)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{
			"key_points": deps.Study.KeyPoints(r.Context(), req.Text),
		})
	}
}

func flashcardsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req countRequest
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.Fail(deps.Log, w, httputil.ValidationError(err), err, http.StatusBadRequest)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"flashcards": deps.Study.Flashcards(r.Context(), req.Text, req.Count),
		})
	}
}

func mcqsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req countRequest
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.Fail(deps.Log, w, httputil.ValidationError(err), err, http.StatusBadRequest)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"mcqs": deps.Study.MCQs(r.Context(), req.Text, req.Count),
		})
	}
}

func answerHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req answerRequest
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.Fail(deps.Log, w, httputil.ValidationError(err), err, http.StatusBadRequest)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{
			"answer": deps.Study.Answer(r.Context(), req.Question, req.Context),
		})
	}
}

func resourcesHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topic := strings.TrimSpace(r.URL.Query().Get("topic"))
		if topic == "" {
			httputil.Fail(deps.Log, w, "topic is required", nil, http.StatusBadRequest)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, deps.Resources.Find(r.Context(), topic))
	}
}
