package web

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"goalcal/internal/calendar"
	"goalcal/internal/config"
	"goalcal/internal/goals"
	appLog "goalcal/internal/log"
	"goalcal/internal/model"
	"goalcal/internal/render"
)

// SnapshotSource supplies the current goal snapshot.
type SnapshotSource interface {
	Current() *goals.Snapshot
}

// Server exposes layouts, hit-testing and a PNG preview over HTTP.
type Server struct {
	cfg    *config.Config
	source SnapshotSource
	mux    *http.ServeMux
	now    func() time.Time

	// Layouts are cached per month for the snapshot version they were
	// computed from, so /api/hit resolves against exactly the geometry
	// that /api/layout and /preview.png returned.
	layoutMu      sync.Mutex
	layoutVersion uint64
	layouts       map[model.Month]*calendar.Layout
}

// NewServer constructs a new Server.
func NewServer(cfg *config.Config, source SnapshotSource) *Server {
	s := &Server{
		cfg:     cfg,
		source:  source,
		mux:     http.NewServeMux(),
		now:     time.Now,
		layouts: make(map[model.Month]*calendar.Layout),
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled")
		return s.basicAuthMiddleware(h)
	}
	return h
}

func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	// Empty credentials disable auth rather than locking everyone out.
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="goalcal", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/goals", s.handleGoals)
	s.mux.HandleFunc("/api/layout", s.handleLayout)
	s.mux.HandleFunc("/api/hit", s.handleHit)
	s.mux.HandleFunc("/preview.png", s.handlePreview)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleGoals(w http.ResponseWriter, _ *http.Request) {
	snap := s.source.Current()
	writeJSON(w, http.StatusOK, goalsResponse{
		Version:  snap.Version,
		LoadedAt: snap.LoadedAt,
		Goals:    snap.Goals,
	})
}

// handleLayout returns the computed layout for a month.
//
// GET /api/layout?month=2026-02   (defaults to the current month)
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	l, ok := s.layoutFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, render.NewLayoutJSON(l))
}

// handleHit resolves which goal, if any, is drawn at a pixel.
//
// GET /api/hit?month=2026-02&x=130&y=150
func (s *Server) handleHit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errX := strconv.Atoi(q.Get("x"))
	y, errY := strconv.Atoi(q.Get("y"))
	if errX != nil || errY != nil {
		writeError(w, http.StatusBadRequest, "x and y must be integers")
		return
	}

	l, ok := s.layoutFromRequest(w, r)
	if !ok {
		return
	}

	bar, hit := calendar.HitTestBars(l.Bars, x, y)
	if !hit {
		writeJSON(w, http.StatusOK, hitResponse{Hit: false})
		return
	}
	dto := render.NewBarJSON(*bar)
	writeJSON(w, http.StatusOK, hitResponse{Hit: true, Goal: bar.Goal, Bar: &dto})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	l, ok := s.layoutFromRequest(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := render.WritePNG(w, l); err != nil {
		appLog.Error("preview render failed", err)
	}
}

func (s *Server) layoutFromRequest(w http.ResponseWriter, r *http.Request) (*calendar.Layout, bool) {
	m := monthOf(s.now())
	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := model.ParseMonth(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
			return nil, false
		}
		m = parsed
	}

	l, err := s.layoutFor(m)
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidArgument) {
			writeError(w, http.StatusBadRequest, err.Error())
			return nil, false
		}
		appLog.Error("layout failed", err, "month", m)
		writeError(w, http.StatusInternalServerError, "failed to compute layout")
		return nil, false
	}
	return l, true
}

// layoutFor returns the layout of m for the current snapshot, computing
// it on first use.
func (s *Server) layoutFor(m model.Month) (*calendar.Layout, error) {
	snap := s.source.Current()

	s.layoutMu.Lock()
	defer s.layoutMu.Unlock()

	if snap.Version != s.layoutVersion {
		s.layouts = make(map[model.Month]*calendar.Layout)
		s.layoutVersion = snap.Version
	}
	if l, ok := s.layouts[m]; ok {
		return l, nil
	}

	grid, err := calendar.NewGridFor(m)
	if err != nil {
		return nil, err
	}
	l := calendar.ComputeLayout(grid, snap.Goals, s.cfg.Geometry, calendar.WithLanePolicy(s.cfg.Policy()))
	if rows := l.Overflowing(); len(rows) > 0 {
		appLog.Info("lanes overflow cell height", "month", m, "rows", rows)
	}
	appLog.Debug("layout computed", "month", m, "version", snap.Version, "bars", len(l.Bars))
	s.layouts[m] = l
	return l, nil
}

func monthOf(t time.Time) model.Month {
	return model.Month{Year: t.Year(), Month: t.Month()}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
