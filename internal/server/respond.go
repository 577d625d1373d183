package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Krosebrook/Flash-n-Frame/internal/bootstrap/logging"
	domainstudio "github.com/Krosebrook/Flash-n-Frame/internal/domain/studio"
	"github.com/Krosebrook/Flash-n-Frame/internal/errs"
	"github.com/Krosebrook/Flash-n-Frame/internal/ports"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps domain sentinels onto HTTP statuses; anything
// unrecognized is a 500 with a generic body.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.Error(logging.WithAttrs(ctx, slog.String("component", "server")),
			"request failed",
			slog.Any("err", errs.Loggable(err)),
		)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domainstudio.ErrNotFound),
		errors.Is(err, ports.ErrGenerationNotFound),
		errors.Is(err, ports.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainstudio.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, domainstudio.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domainstudio.ErrContentBlocked):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainstudio.ErrRepoRefRequired),
		errors.Is(err, domainstudio.ErrInvalidRepoRef),
		errors.Is(err, domainstudio.ErrArticleURLRequired),
		errors.Is(err, domainstudio.ErrImageRequired),
		errors.Is(err, domainstudio.ErrPromptRequired),
		errors.Is(err, domainstudio.ErrInvalidArtifactKind),
		errors.Is(err, domainstudio.ErrTaskTitleRequired),
		errors.Is(err, domainstudio.ErrInvalidTaskStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}
