package http

import (
	"bytes"
	"errors"
	"net/http"

	"infra-checklist/internal/app"
	"infra-checklist/internal/domain"
	"infra-checklist/internal/view"
	"go.uber.org/zap"
)

// RouterConfig wires the HTTP surface.
type RouterConfig struct {
	Service          *app.ChecklistService
	Renderer         *view.Renderer
	Logger           *zap.Logger
	DefaultChecklist string
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

// NewRouter serves the checklist page, its assets and the websocket.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	pages := &pageHandler{
		service:          cfg.Service,
		renderer:         cfg.Renderer,
		logger:           cfg.Logger,
		defaultChecklist: cfg.DefaultChecklist,
	}
	wsHandler := NewWSHandler(cfg.Service, cfg.Renderer, cfg.Logger, cfg.DefaultChecklist)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /{$}", pages.serveDefault)
	mux.HandleFunc("GET /checklists/{id}", pages.serveChecklist)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(view.Static())))
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}
	return mux
}

type pageHandler struct {
	service          *app.ChecklistService
	renderer         *view.Renderer
	logger           *zap.Logger
	defaultChecklist string
}

func (h *pageHandler) serveDefault(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.defaultChecklist)
}

func (h *pageHandler) serveChecklist(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, r.PathValue("id"))
}

func (h *pageHandler) render(w http.ResponseWriter, r *http.Request, checklistID string) {
	checklist, err := h.service.Checklist(r.Context(), checklistID)
	if errors.Is(err, domain.ErrChecklistNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.logger.Error("load checklist", zap.String("checklist", checklistID), zap.Error(err))
		http.Error(w, "checklist unavailable", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.RenderPage(&buf, view.NewPageData(checklist)); err != nil {
		h.logger.Error("render page", zap.String("checklist", checklistID), zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
