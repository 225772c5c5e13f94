package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/avlasov/fileshare/internal/common"
	"github.com/avlasov/fileshare/internal/server/models"
	"github.com/avlasov/fileshare/internal/server/policy"
)

type credentialsRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type fileRequest struct {
	Name       string `json:"name"`
	Content    string `json:"content"`
	Visibility string `json:"visibility"`
}

type fileResponse struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	Name       string    `json:"name"`
	Visibility string    `json:"visibility"`
	CreatedAt  time.Time `json:"created_at"`
	Content    string    `json:"content,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toFileResponse(a *models.Artifact, withContent bool) fileResponse {
	resp := fileResponse{
		ID:         a.ID,
		OwnerID:    a.UserID,
		Name:       a.Name,
		Visibility: string(a.Visibility),
		CreatedAt:  a.CreatedAt,
	}
	if withContent {
		resp.Content = a.Content
	}
	return resp
}

func (s *HTTPServer) ping(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, common.ErrorValidation)
		return
	}

	token, err := s.users.Register(r.Context(), req.Login, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "registered", "username", req.Login)
	s.writeJSON(w, r, http.StatusOK, tokenResponse{Token: token})
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, common.ErrorValidation)
		return
	}

	token, err := s.users.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, tokenResponse{Token: token})
}

func (s *HTTPServer) createFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := SubjectFromContext(r.Context())
	if !ok {
		s.writeError(w, r, common.ErrorUnauthorized)
		return
	}

	var req fileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, common.ErrorValidation)
		return
	}

	artifact, err := s.artifacts.Create(r.Context(), userID, req.Name, req.Content, models.Visibility(req.Visibility))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, toFileResponse(artifact, false))
}

func (s *HTTPServer) listFiles(w http.ResponseWriter, r *http.Request) {
	userID, ok := SubjectFromContext(r.Context())
	if !ok {
		s.writeError(w, r, common.ErrorUnauthorized)
		return
	}

	artifacts, err := s.artifacts.List(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]fileResponse, 0, len(artifacts))
	for _, a := range artifacts {
		resp = append(resp, toFileResponse(a, false))
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *HTTPServer) getFile(w http.ResponseWriter, r *http.Request) {
	requesterID := policy.Anonymous
	if userID, ok := SubjectFromContext(r.Context()); ok {
		requesterID = userID
	}

	artifact, err := s.artifacts.GetContent(r.Context(), r.PathValue("id"), requesterID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, toFileResponse(artifact, true))
}

func (s *HTTPServer) deleteFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := SubjectFromContext(r.Context())
	if !ok {
		s.writeError(w, r, common.ErrorUnauthorized)
		return
	}

	if err := s.artifacts.Delete(r.Context(), r.PathValue("id"), userID); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(r.Context(), "response encode error", "error", err.Error())
	}
}

// writeError maps application errors onto HTTP status codes. The three token
// failure kinds all collapse to 401 on the wire but are logged separately.
// Store failures and anything unrecognized become a generic internal error.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	var msg string

	switch {
	case errors.Is(err, common.ErrorValidation):
		status, msg = http.StatusBadRequest, "invalid input"
	case errors.Is(err, common.ErrTokenMissing),
		errors.Is(err, common.ErrTokenMalformed),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrorUnauthorized):
		status, msg = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, common.ErrorForbidden):
		status, msg = http.StatusForbidden, "forbidden"
	case errors.Is(err, common.ErrorNotFound):
		status, msg = http.StatusNotFound, "not found"
	case errors.Is(err, common.ErrorAlreadyExists):
		status, msg = http.StatusConflict, "username already taken"
	default:
		status, msg = http.StatusInternalServerError, "internal error"
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	}

	if status != http.StatusInternalServerError {
		s.logger.Debug(r.Context(), "request rejected", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	}

	s.writeJSON(w, r, status, errorResponse{Error: msg})
}
