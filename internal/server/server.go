// Package server provides the interview HTTP API. It performs no business
// logic: request parsing, status-code mapping, and serialization only.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/TanmaySingh007/AI-Interview-BOT/internal/collaborator"
	"github.com/TanmaySingh007/AI-Interview-BOT/internal/config"
	"github.com/TanmaySingh007/AI-Interview-BOT/internal/fallback"
	"github.com/TanmaySingh007/AI-Interview-BOT/internal/interview"
	"github.com/TanmaySingh007/AI-Interview-BOT/internal/llm/openai"
	"github.com/TanmaySingh007/AI-Interview-BOT/internal/orchestrator"
	"github.com/TanmaySingh007/AI-Interview-BOT/internal/roles"
)

// Server is the interview HTTP API server.
type Server struct {
	config  *config.Config
	store   *interview.Store
	orch    *orchestrator.Orchestrator
	catalog *roles.Catalog
	router  chi.Router
	log     *logrus.Entry
}

// New creates a Server with all dependencies wired.
func New(cfg *config.Config) (*Server, error) {
	log := logrus.WithField("component", "server")

	var collab orchestrator.Collaborator
	if cfg.CollaboratorEnabled() {
		client := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.WhisperModel)
		collab = collaborator.New(client, cfg.CompanyName)
		log.Info("AI collaborator enabled")
	} else {
		log.Warn("no API key configured, running on fallback generation")
	}

	catalog, err := roles.NewCatalog(cfg.RolesDir)
	if err != nil {
		return nil, err
	}

	store := interview.NewStore()
	s := &Server{
		config:  cfg,
		store:   store,
		orch:    orchestrator.New(store, collab, fallback.New(cfg.CompanyName), cfg.Workers),
		catalog: catalog,
		log:     log,
	}
	s.router = s.buildRouter()
	return s, nil
}

// Start runs the HTTP server until ctx is cancelled, then drains in-flight
// pipeline work before returning.
func (s *Server) Start(ctx context.Context) error {
	s.store.StartReaper(ctx, s.config.SessionTTL)

	go func() {
		if err := s.catalog.Watch(ctx); err != nil {
			s.log.WithError(err).Warn("role catalog watcher stopped")
		}
	}()

	srv := &http.Server{
		Addr:    s.config.ServerAddr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("interview server listening on %s", s.config.ServerAddr)
		errCh <- srv.ListenAndServe()
	}()

	var err error
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if serr := srv.Shutdown(shutdownCtx); serr != nil {
			s.log.WithError(serr).Warn("server shutdown failed")
		}
		cancel()
		err = <-errCh
	case err = <-errCh:
		// Listen failed before ctx was cancelled; nothing to shut down.
	}

	s.orch.Wait()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Router exposes the HTTP handler, primarily for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))

	r.Route("/api", func(r chi.Router) {
		r.Get("/roles", s.handleListRoles)
		r.Post("/interviews", s.handleCreateInterview)
		r.Post("/interviews/{id}/answers/{index}", s.handleSubmitAnswer)
		r.Post("/interviews/{id}/summary", s.handleTriggerSummary)
		r.Get("/interviews/{id}/report", s.handleGetReport)
	})

	// Health check.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	return r
}

// --- Request/Response types ---

type createInterviewRequest struct {
	RoleTitle       string `json:"role_title"`
	RoleDescription string `json:"role_description"`
}

type createInterviewResponse struct {
	ID             string   `json:"id"`
	Greeting       string   `json:"greeting"`
	Questions      []string `json:"questions"`
	TotalQuestions int      `json:"total_questions"`
}

type submitAnswerRequest struct {
	ArtifactRef string `json:"artifact_ref"`
}

type ackResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// --- Handlers ---

func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Roles())
}

func (s *Server) handleCreateInterview(w http.ResponseWriter, r *http.Request) {
	var req createInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RoleTitle == "" {
		writeError(w, http.StatusBadRequest, "role_title is required")
		return
	}

	sess, err := s.orch.StartSession(r.Context(), req.RoleTitle, req.RoleDescription)
	if err != nil {
		s.log.WithError(err).Error("creating session failed")
		writeError(w, http.StatusInternalServerError, "failed to create interview")
		return
	}

	questions := make([]string, len(sess.Questions))
	for i, job := range sess.Questions {
		questions[i] = job.Question
	}
	writeJSON(w, http.StatusCreated, createInterviewResponse{
		ID:             sess.ID,
		Greeting:       sess.Greeting,
		Questions:      questions,
		TotalQuestions: len(questions),
	})
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid question index")
		return
	}

	var req submitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ArtifactRef == "" {
		writeError(w, http.StatusBadRequest, "artifact_ref is required")
		return
	}

	if err := s.orch.SubmitAnswer(id, index, req.ArtifactRef); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, ackResponse{
		Status:  "success",
		Message: "answer submitted, analysis in progress",
	})
}

func (s *Server) handleTriggerSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.orch.TriggerOverallSummary(id); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, ackResponse{
		Status:  "success",
		Message: "overall summary generation started",
	})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	report, err := s.orch.Report(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// --- Helpers ---

// writeDomainError maps core errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, interview.ErrNotFound):
		writeError(w, http.StatusNotFound, "interview not found")
	case errors.Is(err, interview.ErrInvalidIndex):
		writeError(w, http.StatusBadRequest, "invalid question index")
	case errors.Is(err, interview.ErrInFlight):
		writeError(w, http.StatusConflict, "answer already being processed")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
