package http

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"cipherspry/internal/app"
	"cipherspry/internal/domain"
)

// Response is a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreateSessionResponse is the response for session creation
type CreateSessionResponse struct {
	SessionID string           `json:"sessionId"`
	State     *domain.Snapshot `json:"state"`
}

// StartRoundRequest is the body for selecting a level
type StartRoundRequest struct {
	Level string `json:"level" validate:"required,max=16"`
}

// UpdateGuessRequest is the body for editing the guess
type UpdateGuessRequest struct {
	Guess string `json:"guess" validate:"max=64"`
}

// SubmitResponse reports the outcome of a submit
type SubmitResponse struct {
	Status domain.Status    `json:"status"`
	State  *domain.Snapshot `json:"state"`
}

// HintResponse carries the hint text with the updated state
type HintResponse struct {
	Hint  string           `json:"hint"`
	State *domain.Snapshot `json:"state"`
}

// HealthResponse is the response for health check
type HealthResponse struct {
	Status string `json:"status"`
}

// StatsResponse is the response for stats endpoint
type StatsResponse struct {
	ActiveSessions int `json:"activeSessions"`
	Clients        int `json:"clients"`
}

// handleCreateSession handles POST /api/sessions
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session := s.hub.CreateSession()

	s.sendSuccessStatus(w, http.StatusCreated, &CreateSessionResponse{
		SessionID: session.GetID(),
		State:     session.Snapshot(),
	})
}

// handleGetSession handles GET /api/sessions/{sessionID}
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	s.sendSuccess(w, session.Snapshot())
}

// handleDeleteSession handles DELETE /api/sessions/{sessionID}
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.hub.DeleteSession(chi.URLParam(r, "sessionID")); err != nil {
		s.sendDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleStartRound handles POST /api/sessions/{sessionID}/level
func (s *Server) handleStartRound(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	var req StartRoundRequest
	if !s.decode(w, r, &req) {
		return
	}

	level, err := domain.ParseLevel(req.Level)
	if err != nil {
		s.sendDomainError(w, err)
		return
	}

	if err := session.StartRound(level); err != nil {
		s.sendDomainError(w, err)
		return
	}

	s.sendSuccessStatus(w, http.StatusAccepted, session.Snapshot())
}

// handleNewRound handles POST /api/sessions/{sessionID}/rounds
func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	if err := session.NewRound(); err != nil {
		s.sendDomainError(w, err)
		return
	}

	s.sendSuccessStatus(w, http.StatusAccepted, session.Snapshot())
}

// handleUpdateGuess handles PUT /api/sessions/{sessionID}/guess
func (s *Server) handleUpdateGuess(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	var req UpdateGuessRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := session.UpdateGuess(req.Guess); err != nil {
		s.sendDomainError(w, err)
		return
	}

	s.sendSuccess(w, session.Snapshot())
}

// handleSubmit handles POST /api/sessions/{sessionID}/submit
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	status, err := session.Submit()
	if err != nil {
		s.sendDomainError(w, err)
		return
	}

	s.sendSuccess(w, &SubmitResponse{Status: status, State: session.Snapshot()})
}

// handleHint handles POST /api/sessions/{sessionID}/hint
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	text, err := session.RequestHint()
	if err != nil {
		s.sendDomainError(w, err)
		return
	}

	s.sendSuccess(w, &HintResponse{Hint: text, State: session.Snapshot()})
}

// handleReveal handles POST /api/sessions/{sessionID}/reveal
func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	if err := session.Reveal(); err != nil {
		s.sendDomainError(w, err)
		return
	}

	s.sendSuccess(w, session.Snapshot())
}

// handleReset handles POST /api/sessions/{sessionID}/reset
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	session.ResetToLevelSelect()
	s.sendSuccess(w, session.Snapshot())
}

// handleHealth handles GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &HealthResponse{
		Status: "ok",
	})
}

// handleStats handles GET /api/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &StatsResponse{
		ActiveSessions: s.hub.GetSessionCount(),
		Clients:        s.hub.GetClientCount(),
	})
}

// handleAlphabet handles GET /api/alphabet
func (s *Server) handleAlphabet(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, domain.AlphabetReference())
}

// handleHintPatterns handles GET /api/hints/patterns
func (s *Server) handleHintPatterns(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, s.hints.Patterns())
}

// lookupSession resolves the {sessionID} path parameter, writing a 404 on failure
func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*app.GameSession, bool) {
	session, err := s.hub.GetSession(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.sendDomainError(w, err)
		return nil, false
	}
	return session, true
}

// decode reads and validates a JSON body, writing a 400 on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body := io.LimitReader(r.Body, 4096)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		s.sendError(w, http.StatusBadRequest, app.ErrCodeInvalidMessage, "Invalid JSON body")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		s.sendError(w, http.StatusBadRequest, app.ErrCodeInvalidMessage, err.Error())
		return false
	}
	return true
}

// sendDomainError maps a session error to an HTTP error response
func (s *Server) sendDomainError(w http.ResponseWriter, err error) {
	code, message := app.ClassifyError(err)

	status := http.StatusInternalServerError
	switch code {
	case app.ErrCodeSessionNotFound:
		status = http.StatusNotFound
	case app.ErrCodeInvalidLevel, app.ErrCodeInvalidGuess, app.ErrCodeGuessLength:
		status = http.StatusBadRequest
	case app.ErrCodeNoLevel, app.ErrCodeInvalidAction:
		status = http.StatusConflict
	default:
		s.logger.Error("request failed", "error", err)
	}

	s.sendError(w, status, code, message)
}

// sendSuccess sends a successful JSON response
func (s *Server) sendSuccess(w http.ResponseWriter, data interface{}) {
	s.sendSuccessStatus(w, http.StatusOK, data)
}

// sendSuccessStatus sends a successful JSON response with a specific status code
func (s *Server) sendSuccessStatus(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&Response{
		Success: true,
		Data:    data,
	})
}

// sendError sends an error JSON response
func (s *Server) sendError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}
