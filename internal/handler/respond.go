package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"staffpanel/internal/apperror"
	"staffpanel/internal/middleware"
	"staffpanel/internal/session"
	"staffpanel/internal/view"
)

// Responder turns handler outcomes into responses in the client's negotiated
// mode. It is the single funnel for every failure.
type Responder struct {
	views    *view.Renderer
	sessions *session.Manager
	logger   *zap.Logger
}

func NewResponder(views *view.Renderer, sessions *session.Manager, logger *zap.Logger) *Responder {
	return &Responder{
		views:    views,
		sessions: sessions,
		logger:   logger,
	}
}

type errorPayload struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
}

func (rsp *Responder) JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		rsp.logger.Error("encode response", zap.Error(err))
	}
}

// Render executes a template into the response, filling in the current user
// when the handler did not set one.
func (rsp *Responder) Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["User"]; !ok {
		if user, ok := rsp.sessions.CurrentUser(r); ok {
			data["User"] = user
		}
	}
	if _, ok := data["ActiveMenu"]; !ok {
		data["ActiveMenu"] = ""
	}

	var buf bytes.Buffer
	if err := rsp.views.Render(&buf, name, data); err != nil {
		rsp.logger.Error("render template", zap.String("template", name), zap.Error(err))
		rsp.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// Error classifies a failure and surfaces it in the negotiated mode:
// data clients get a structured payload; HTML validation failures flash and
// return to the referring form; everything else renders an error page, with
// the structured payload as a last resort if rendering itself fails.
func (rsp *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	code := apperror.GetCode(err)
	status := apperror.HTTPStatus(err)

	message := err.Error()
	if code == apperror.CodeInternal {
		rsp.logger.Error("unhandled error",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		message = "Internal server error"
	}

	rsp.logger.Warn("request failed",
		zap.Int("status", status),
		zap.String("message", message),
		zap.String("path", r.URL.Path),
	)

	if middleware.IsDataClient(r) {
		rsp.JSON(w, status, errorPayload{
			StatusCode: status,
			Message:    message,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Path:       r.URL.RequestURI(),
		})
		return
	}

	if code == apperror.CodeUnauthorized {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}

	if code == apperror.CodeValidation {
		rsp.sessions.SetError(w, r, message)
		referer := r.Header.Get("Referer")
		if referer == "" {
			referer = "/"
		}
		http.Redirect(w, r, referer, http.StatusSeeOther)
		return
	}

	name, title := "errors/500", "Server Error"
	if status == http.StatusNotFound {
		name, title = "errors/404", "Page Not Found"
	}

	data := map[string]any{
		"Title":      title,
		"StatusCode": status,
		"Message":    message,
		"Path":       r.URL.Path,
		"ActiveMenu": "",
	}
	if user, ok := rsp.sessions.CurrentUser(r); ok {
		data["User"] = user
	}

	var buf bytes.Buffer
	if renderErr := rsp.views.Render(&buf, name, data); renderErr != nil {
		rsp.logger.Error("render error page", zap.Error(renderErr))
		rsp.JSON(w, status, errorPayload{
			StatusCode: status,
			Message:    message,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Path:       r.URL.RequestURI(),
		})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
