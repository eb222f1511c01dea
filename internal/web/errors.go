package web

// errors.go is the single error response path of the web layer.
//
// The flow:
//  1. A handler hits an error and calls respondError(w, r, err).
//  2. statusFor picks the HTTP status from the error's type.
//  3. core.MapError turns the error into a user message with a support code.
//  4. The technical error is logged with the request id for correlation.
//  5. The user message is rendered as an HTMX fragment, JSON, or a full page.

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/arena/internal/core"
	"github.com/JonMunkholm/arena/internal/domain"
	"github.com/JonMunkholm/arena/internal/export"
	"github.com/JonMunkholm/arena/internal/logging"
	"github.com/JonMunkholm/arena/internal/pagination"
	"github.com/JonMunkholm/arena/internal/web/templates"
)

// ErrorResponse is the JSON body of an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	var notFound *domain.NotFoundError
	var invalid *domain.ValidationError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalid),
		errors.Is(err, pagination.ErrInvalidPageSize),
		errors.Is(err, export.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrExportBusy):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes the user-facing response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"code", msg.Code,
		"error", err.Error(),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request error", attrs...)
	} else {
		logger.Warn("request error", attrs...)
	}

	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	}

	switch {
	case wantsJSON(r):
		respondErrorJSON(w, msg, status)
	case isHTMX(r):
		w.Header().Set("HX-Retarget", "#"+templates.AlertsID)
		w.Header().Set("HX-Reswap", "innerHTML")
		s.render(w, r, status, templates.ErrorAlert(msg.Message, msg.Action, msg.Code))
	default:
		s.render(w, r, status, templates.ErrorPage(errorTitle(status), msg.Message, msg.Action, msg.Code))
	}
}

func errorTitle(status int) string {
	switch status {
	case http.StatusNotFound:
		return "Не найдено"
	case http.StatusBadRequest:
		return "Неверный запрос"
	case http.StatusServiceUnavailable:
		return "Сервис занят"
	default:
		return "Ошибка"
	}
}

// retryAfterSeconds is suggested to clients turned away by the export limiter.
const retryAfterSeconds = 5

func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// isHTMX reports whether the request was issued by HTMX.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// hxTarget returns the id of the element an HTMX request will swap.
func hxTarget(r *http.Request) string {
	return r.Header.Get("HX-Target")
}

// wantsJSON reports whether the client expects a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
