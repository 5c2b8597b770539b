// Package web serves the embedded browser frontend for the task manager.
// The assets are compiled into the binary so the server ships as a single
// artifact with no filesystem layout requirements at runtime.
package web

import (
	"embed"
	"log/slog"
	"net/http"

	"github.com/taskmanager/api/internal/platform/logger"
)

//go:embed static/*.html static/*.js static/*.css
var assetsFS embed.FS

// Handler serves the embedded frontend assets.
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a Handler for the embedded frontend.
func NewHandler(log *slog.Logger) *Handler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for web Handler")
	}

	return &Handler{
		logger: log.With(slog.String("component", "web_handler")),
	}
}

// Index serves the task manager page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.serveAsset(w, r, "static/index.html", "text/html; charset=utf-8")
}

// AppJS serves the frontend controller script.
func (h *Handler) AppJS(w http.ResponseWriter, r *http.Request) {
	h.serveAsset(w, r, "static/app.js", "application/javascript; charset=utf-8")
}

// StylesCSS serves the stylesheet.
func (h *Handler) StylesCSS(w http.ResponseWriter, r *http.Request) {
	h.serveAsset(w, r, "static/styles.css", "text/css; charset=utf-8")
}

func (h *Handler) serveAsset(w http.ResponseWriter, r *http.Request, name, contentType string) {
	b, err := assetsFS.ReadFile(name)
	if err != nil || len(b) == 0 {
		log := logger.FromContextOrDefault(r.Context(), h.logger)
		log.Error("embedded asset missing", slog.String("asset", name))
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
