package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hyperjump/lexica/internal/models"
	"go.uber.org/zap"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.engine.Status())
}

func (s *Server) handleVector(w http.ResponseWriter, r *http.Request) {
	word := chi.URLParam(r, "word")
	resp, err := s.engine.Vector(r.Context(), word)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	var query models.SimilarQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("similar request", zap.String("word", query.Word), zap.Strings("words", query.Words), zap.Int("n", query.Limit))
	resp, err := s.engine.Similar(r.Context(), &query)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

type averageRequest struct {
	Words []string `json:"words"`
}

func (s *Server) handleAverage(w http.ResponseWriter, r *http.Request) {
	var req averageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	resp, err := s.engine.Average(r.Context(), req.Words)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCommon(w http.ResponseWriter, r *http.Request) {
	var query models.CommonQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	resp, err := s.engine.Common(r.Context(), &query)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.ReloadVectors(r.Context()); err != nil {
		s.respondErr(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, s.engine.Status())
}

func (s *Server) handleWatchFiles(w http.ResponseWriter, r *http.Request) {
	if s.watch == nil {
		s.respondError(w, r, http.StatusNotImplemented, "watch not enabled")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"files": s.watch.Files()})
}

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Error       string   `json:"error"`
	Suggestions []string `json:"suggestions,omitempty"`
	RequestID   string   `json:"request_id,omitempty"`
}

// respondErr maps domain errors onto HTTP status codes.
func (s *Server) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	body := errorResponse{Error: err.Error(), RequestID: RequestID(r.Context())}
	status := http.StatusInternalServerError
	var nf *models.NotFoundError
	switch {
	case errors.As(err, &nf):
		status = http.StatusNotFound
		body.Suggestions = nf.Suggestions
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrFormat), errors.Is(err, models.ErrEmptyInput), errors.Is(err, models.ErrInvalidQuery):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("id", body.RequestID), zap.Error(err))
	}
	s.respondJSON(w, status, body)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.respondJSON(w, status, errorResponse{Error: message, RequestID: RequestID(r.Context())})
}
