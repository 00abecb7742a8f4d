package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"

	errs "github.com/matzehuels/masonry/pkg/errors"
)

var errNotFoundRoute = errs.New(errs.ErrCodeNotFound, "no such route")

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code      errs.Code `json:"code"`
	Message   string    `json:"message"`
	Field     string    `json:"field,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	var rl *errs.RateLimitedError
	if errors.As(err, &rl) {
		return http.StatusTooManyRequests
	}
	if errs.IsValidation(err) {
		return http.StatusBadRequest
	}
	switch errs.GetCode(err) {
	case errs.ErrCodeNotFound:
		return http.StatusNotFound
	case errs.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case errs.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

// writeError writes err as JSON. Internal errors are logged and their
// details withheld from the client.
func writeError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error) {
	status := statusFor(err)
	body := errorBody{
		Code:      errs.GetCode(err),
		Message:   errs.UserMessage(err),
		Field:     errs.GetField(err),
		RequestID: middleware.GetReqID(r.Context()),
	}

	var rl *errs.RateLimitedError
	switch {
	case errors.As(err, &rl):
		body.Code = rl.Code()
		body.Message = rl.Error()
		if rl.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter))
		}
	case status == http.StatusRequestEntityTooLarge:
		body.Code = errs.ErrCodeInvalidInput
		body.Message = "request body too large"
	case status == http.StatusInternalServerError:
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		body.Code = errs.ErrCodeInternal
		body.Message = "internal error"
	}
	writeJSON(w, status, body)
}
