// Package httpapi exposes the scoring pipeline over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mikey/gym-consistency/internal/core"
	"github.com/mikey/gym-consistency/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server wires HTTP routes for the scoring API
type Server struct {
	service    *core.ConsistencyService
	trainer    *core.Trainer
	logger     *zap.Logger
	listenAddr string
	httpServer *http.Server
}

// NewServer creates a new API server
func NewServer(service *core.ConsistencyService, trainer *core.Trainer, logger *zap.Logger, listenAddr string) *Server {
	return &Server{
		service:    service,
		trainer:    trainer,
		logger:     logger,
		listenAddr: listenAddr,
	}
}

// Routes builds the request multiplexer with all endpoints registered
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/score", metrics.Middleware(s.handleScore, "score"))
	mux.HandleFunc("/available-rfids", metrics.Middleware(s.handleAvailableRFIDs, "available_rfids"))
	mux.HandleFunc("/v1/train-models", metrics.Middleware(s.handleTrainModels, "train_models"))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.listenAddr,
		Handler:      s.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.logger.Info("HTTP API starting", zap.String("address", s.listenAddr))

	// Start the server in a goroutine
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("HTTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// scoreRequest mirrors the request body of POST /score
type scoreRequest struct {
	UID string `json:"uid"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type scoreErrorResponse struct {
	Score int    `json:"score"`
	Error string `json:"error"`
}

type trainResponse struct {
	Message string `json:"message"`
}

type membersResponse struct {
	RFIDs []core.MemberRecord `json:"rfids"`
}

// handleScore handles POST /score requests
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.UID) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "UID is required"})
		return
	}

	result, err := s.service.Score(r.Context(), req.UID)
	if err != nil {
		metrics.RecordScoringError()
		if errors.Is(err, core.ErrNoEvents) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		s.logger.Error("Scoring request failed",
			zap.String("uid", req.UID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, scoreErrorResponse{Score: 0, Error: err.Error()})
		return
	}

	metrics.RecordScoreComputed()
	writeJSON(w, http.StatusOK, result)
}

// handleAvailableRFIDs handles GET /available-rfids requests
func (s *Server) handleAvailableRFIDs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	members, err := s.service.Members(r.Context())
	if err != nil {
		s.logger.Error("Failed to list members", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, membersResponse{RFIDs: members})
}

// handleTrainModels handles POST /v1/train-models requests
func (s *Server) handleTrainModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	if err := s.trainer.Train(r.Context()); err != nil {
		metrics.RecordTrainingRun("error")
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrInsufficientData) {
			status = http.StatusConflict
		}
		s.logger.Error("Training run failed", zap.Error(err))
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	metrics.RecordTrainingRun("success")
	writeJSON(w, http.StatusOK, trainResponse{Message: "Models trained successfully"})
}

// handleHealth handles GET /healthz requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
