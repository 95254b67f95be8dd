// Package util writes JSON responses for the console handlers.
package util

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/school-leave-console/internal/gateway"
	"github.com/syrilster/school-leave-console/internal/model"
	"github.com/syrilster/school-leave-console/internal/session"
	"github.com/syrilster/school-leave-console/internal/validation"
)

// ErrorBody is the JSON shape of every error answer.
type ErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// WithBodyAndStatus writes body as JSON with the given status.
func WithBodyAndStatus(body interface{}, status int, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("failed to write response body")
	}
}

// WithError maps the console error taxonomy to a status code. writeMsg is the
// user-facing message for backend failures, e.g. "Failed to save employee.".
func WithError(ctx context.Context, err error, writeMsg string, w http.ResponseWriter) {
	contextLogger := log.WithContext(ctx)

	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		WithBodyAndStatus(ErrorBody{Error: "Please correct the highlighted fields", Fields: verr.Fields}, http.StatusUnprocessableEntity, w)
	case errors.Is(err, session.ErrAuth):
		WithBodyAndStatus(ErrorBody{Error: "Invalid login credentials"}, http.StatusUnauthorized, w)
	case errors.Is(err, model.ErrNotConfirmed):
		WithBodyAndStatus(ErrorBody{Error: "Please confirm the delete"}, http.StatusConflict, w)
	case errors.Is(err, model.ErrAlreadyReviewed):
		WithBodyAndStatus(ErrorBody{Error: "This leave request has already been reviewed"}, http.StatusConflict, w)
	case gateway.IsNotFound(err):
		WithBodyAndStatus(ErrorBody{Error: "Not found"}, http.StatusNotFound, w)
	case gateway.IsNetworkError(err):
		contextLogger.WithError(err).Error("backend call failed")
		WithBodyAndStatus(ErrorBody{Error: writeMsg}, http.StatusBadGateway, w)
	default:
		contextLogger.WithError(err).Error("unexpected error")
		WithBodyAndStatus(ErrorBody{Error: writeMsg}, http.StatusInternalServerError, w)
	}
}

// DecodeJSON reads the request body into v and answers 400 on failure.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.WithContext(r.Context()).WithError(err).Info("could not parse request body")
		WithBodyAndStatus(ErrorBody{Error: "Malformed request body"}, http.StatusBadRequest, w)
		return false
	}
	return true
}

// Abandoned reports whether the caller went away while the backend was
// answering. Late responses are then dropped instead of written.
func Abandoned(ctx context.Context) bool {
	if ctx.Err() != nil {
		log.WithContext(ctx).Debug("request cancelled, dropping late response")
		return true
	}
	return false
}
