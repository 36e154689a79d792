package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/woodhall335/landlord-heaven/compliance"
	"github.com/woodhall335/landlord-heaven/documents"
	"github.com/woodhall335/landlord-heaven/internal/logger"
	"github.com/woodhall335/landlord-heaven/wizard"
)

type Server struct {
	db         *sql.DB
	watcher    *wizard.Watcher
	controller *wizard.Controller
	sessions   wizard.SessionStore
	checks     *compliance.Manager
	renderer   *documents.Renderer
	router     *chi.Mux
}

func NewServer(databaseURL, questionDir string) (*Server, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewServerWithDB(db, questionDir)
}

// NewServerWithDB wires the server over an existing connection. The
// integration tests use this to bring their own container database.
func NewServerWithDB(db *sql.DB, questionDir string) (*Server, error) {
	watcher, err := wizard.NewWatcher(questionDir, logger.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load question packs: %w", err)
	}

	checks := compliance.NewManager(db)
	logger.Info("loading compliance checks from database")
	if err := checks.LoadAll(); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to load compliance checks: %w", err)
	}
	logger.Info("compliance checks loaded", "document_types", checks.DocumentTypes())

	renderer, err := documents.NewRenderer()
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to build document renderer: %w", err)
	}

	sessions := wizard.NewPostgresSessionStore(db)

	s := &Server{
		db:         db,
		watcher:    watcher,
		controller: wizard.NewController(watcher, sessions, logger.Logger),
		sessions:   sessions,
		checks:     checks,
		renderer:   renderer,
	}

	s.setupRoutes()

	return s, nil
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check
	r.Get("/api/v1/health", s.handleHealth)

	// Question catalog
	r.Get("/api/v1/questions", s.handleListQuestions)

	// Wizard sessions
	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)

		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Get("/facts", s.handleGetFacts)
			r.Post("/answers", s.handleAnswer)
			r.Post("/validate", s.handleValidate)
			r.Get("/documents/{form}", s.handleRenderDocument)
			r.Get("/forms/{form}/fields", s.handleFormFields)
		})
	})

	// Compliance rule management, scoped per document type
	r.Route("/api/v1/documents/{documentType}/rules", func(r chi.Router) {
		r.Post("/", s.handleCreateRule)
		r.Get("/", s.handleListRules)
		r.Get("/{ruleId}", s.handleGetRule)
		r.Put("/{ruleId}", s.handleUpdateRule)
		r.Delete("/{ruleId}", s.handleDeleteRule)
	})

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases the catalog watcher and the database connection.
func (s *Server) Close() {
	s.watcher.Close()
	s.db.Close()
}

// Health check handler
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":        "healthy",
		"caseTypes":     s.watcher.Catalog().CaseTypes(),
		"totalWarnings": logger.TotalWarnings.Load(),
		"totalErrors":   logger.TotalErrors.Load(),
	})
}

// Question catalog handler
func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	catalog := s.watcher.Catalog()

	caseType := r.URL.Query().Get("case_type")
	if caseType == "" {
		respondJSON(w, http.StatusOK, map[string]any{
			"caseTypes": catalog.CaseTypes(),
		})
		return
	}

	questions := catalog.Questions(caseType)
	if len(questions) == 0 {
		respondError(w, http.StatusNotFound, "unknown case type", nil)
		return
	}

	respondJSON(w, http.StatusOK, QuestionsResponse{
		CaseType:  caseType,
		Questions: toQuestionResponses(questions),
	})
}

// Create session handler
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.CaseType == "" {
		respondError(w, http.StatusBadRequest, "caseType is required", nil)
		return
	}

	session, err := s.controller.StartSession(req.CaseType)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to start session", err)
		return
	}

	respondJSON(w, http.StatusCreated, toSessionResponse(session))
}

// Get session handler
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, "session not found", err)
		return
	}

	respondJSON(w, http.StatusOK, toSessionResponse(session))
}

// Delete session handler
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	if err := s.sessions.Delete(sessionID); err != nil {
		respondError(w, http.StatusNotFound, "session not found", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get facts handler
func (s *Server) handleGetFacts(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	record, err := s.controller.Facts(sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, "session not found", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"sessionId": sessionID,
		"facts":     record,
	})
}

// Answer handler: applies one answered question to the session facts.
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.QuestionID == "" {
		respondError(w, http.StatusBadRequest, "questionId is required", nil)
		return
	}

	session, err := s.controller.Answer(sessionID, req.QuestionID, req.Value)
	if err != nil {
		respondError(w, http.StatusNotFound, "failed to apply answer", err)
		return
	}

	respondJSON(w, http.StatusOK, toSessionResponse(session))
}

// Validate handler: runs every active compliance check for the session's
// case type against its facts.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, "session not found", err)
		return
	}

	engine, err := s.checks.Engine(session.CaseType)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load checks", err)
		return
	}

	startTime := time.Now()
	results, err := engine.CheckAll(session.Facts)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "validation failed", err)
		return
	}

	respondJSON(w, http.StatusOK, ValidateResponse{
		SessionID:      sessionID,
		Results:        toCheckResponses(results),
		EvaluationTime: time.Since(startTime).String(),
	})
}

// Render document handler
func (s *Server) handleRenderDocument(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	form := chi.URLParam(r, "form")

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, "session not found", err)
		return
	}

	html, err := s.renderer.Render(form, session.Facts)
	if err != nil {
		respondError(w, http.StatusNotFound, "failed to render document", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(html)
}

// Court-form field mapping handler
func (s *Server) handleFormFields(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	form := chi.URLParam(r, "form")

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, "session not found", err)
		return
	}

	fields, err := documents.MapFormFields(form, session.Facts)
	if err != nil {
		respondError(w, http.StatusNotFound, "failed to map form fields", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"sessionId": sessionID,
		"form":      form,
		"fields":    fields,
	})
}

// Create rule handler
func (s *Server) handleCreateRule(w http.ResponseWriter, r *http.Request) {
	documentType := chi.URLParam(r, "documentType")

	var req CreateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.Name == "" || req.Expression == "" {
		respondError(w, http.StatusBadRequest, "name and expression are required", nil)
		return
	}

	severity := req.Severity
	if severity == "" {
		severity = compliance.SeverityError
	}

	engine, err := s.checks.Engine(documentType)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load checks", err)
		return
	}

	now := time.Now()
	rule := &compliance.Rule{
		ID:           uuid.NewString(),
		Name:         req.Name,
		DocumentType: documentType,
		Expression:   req.Expression,
		Severity:     severity,
		Message:      req.Message,
		Active:       req.Active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Add rule (this validates and compiles it)
	if err := engine.AddRule(rule); err != nil {
		respondError(w, http.StatusBadRequest, "failed to add rule", err)
		return
	}

	respondJSON(w, http.StatusCreated, toRuleResponse(rule))
}

// List rules handler
func (s *Server) handleListRules(w http.ResponseWriter, r *http.Request) {
	documentType := chi.URLParam(r, "documentType")

	rows, err := s.db.Query(`
		SELECT id, name, expression, severity, message, active, created_at, updated_at
		FROM compliance_rules
		WHERE document_type = $1
		ORDER BY created_at DESC
	`, documentType)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list rules", err)
		return
	}
	defer rows.Close()

	rulesList := []RuleResponse{}
	for rows.Next() {
		rule := compliance.Rule{DocumentType: documentType}
		if err := rows.Scan(&rule.ID, &rule.Name, &rule.Expression, &rule.Severity,
			&rule.Message, &rule.Active, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
			respondError(w, http.StatusInternalServerError, "failed to scan rule", err)
			return
		}
		rulesList = append(rulesList, toRuleResponse(&rule))
	}

	respondJSON(w, http.StatusOK, RulesListResponse{
		DocumentType: documentType,
		Rules:        rulesList,
	})
}

// Get rule handler
func (s *Server) handleGetRule(w http.ResponseWriter, r *http.Request) {
	documentType := chi.URLParam(r, "documentType")
	ruleID := chi.URLParam(r, "ruleId")

	store := compliance.NewPostgresRuleStore(s.db, documentType)
	rule, err := store.Get(ruleID)
	if err != nil {
		respondError(w, http.StatusNotFound, "rule not found", err)
		return
	}

	respondJSON(w, http.StatusOK, toRuleResponse(rule))
}

// Update rule handler
func (s *Server) handleUpdateRule(w http.ResponseWriter, r *http.Request) {
	documentType := chi.URLParam(r, "documentType")
	ruleID := chi.URLParam(r, "ruleId")

	var req UpdateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	engine, err := s.checks.Engine(documentType)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load checks", err)
		return
	}

	rule := &compliance.Rule{
		ID:           ruleID,
		Name:         req.Name,
		DocumentType: documentType,
		Expression:   req.Expression,
		Severity:     req.Severity,
		Message:      req.Message,
		Active:       req.Active,
		UpdatedAt:    time.Now(),
	}

	if err := engine.UpdateRule(rule); err != nil {
		respondError(w, http.StatusBadRequest, "failed to update rule", err)
		return
	}

	// The store preserves created_at on update; re-read so the response
	// carries the stored timestamps rather than the request-shaped zero.
	store := compliance.NewPostgresRuleStore(s.db, documentType)
	stored, err := store.Get(ruleID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load updated rule", err)
		return
	}

	respondJSON(w, http.StatusOK, toRuleResponse(stored))
}

// Delete rule handler
func (s *Server) handleDeleteRule(w http.ResponseWriter, r *http.Request) {
	documentType := chi.URLParam(r, "documentType")
	ruleID := chi.URLParam(r, "ruleId")

	engine, err := s.checks.Engine(documentType)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load checks", err)
		return
	}

	if err := engine.DeleteRule(ruleID); err != nil {
		respondError(w, http.StatusNotFound, "rule not found", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Helper functions
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]string{
		"error": message,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Fatal("DATABASE_URL environment variable is required")
	}

	questionDir := os.Getenv("QUESTION_DIR")
	if questionDir == "" {
		questionDir = "questionpacks"
	}

	server, err := NewServer(databaseURL, questionDir)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}
	defer server.Close()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      server,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		logger.Info("server starting", "port", port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := logger.Shutdown(ctx); err != nil {
		logger.Error("logger shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
