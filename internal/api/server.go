// Package api exposes the lazy-loading engine over HTTP for the CLI shell.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mcp-lazyload/lazyload/internal/domain/config"
	"github.com/mcp-lazyload/lazyload/internal/domain/loader"
	"github.com/mcp-lazyload/lazyload/internal/domain/registry"
	"github.com/mcp-lazyload/lazyload/internal/logger"
)

// Version is reported by the status endpoint.
const Version = "0.1.0"

// ControlServer handles engine requests for one session.
type ControlServer struct {
	mux      *http.ServeMux
	store    *config.Store
	settings config.Settings
	started  time.Time

	// One analyze/activate cycle completes before the next request is
	// considered.
	mu     sync.Mutex
	loader *loader.Loader
}

// NewControlServer creates a new control server around a session loader.
func NewControlServer(l *loader.Loader, store *config.Store, settings config.Settings) *ControlServer {
	s := &ControlServer{
		mux:      http.NewServeMux(),
		store:    store,
		settings: settings,
		started:  time.Now(),
		loader:   l,
	}
	s.routes()
	return s
}

func (s *ControlServer) routes() {
	s.mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	s.mux.HandleFunc("POST /api/tools/activate", s.handleActivate)
	s.mux.HandleFunc("POST /api/profiles/preload", s.handlePreload)
	s.mux.HandleFunc("GET /api/profiles", s.handleGetProfiles)
	s.mux.HandleFunc("GET /api/stats", s.handleStats)
	s.mux.HandleFunc("GET /api/registry", s.handleRegistry)
	s.mux.HandleFunc("GET /api/status", s.handleStatus)
	s.mux.HandleFunc("POST /api/reset", s.handleReset)
	s.mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	s.mux.HandleFunc("PUT /api/settings", s.handleUpdateSettings)
}

func (s *ControlServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Global CORS headers
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	s.mux.ServeHTTP(w, r)
}

// ReportPayload is the wire form of a loader report; errors become strings.
type ReportPayload struct {
	Loaded        []string          `json:"loaded"`
	AlreadyLoaded []string          `json:"already_loaded"`
	Failed        map[string]string `json:"failed,omitempty"`
}

func reportPayload(rep *loader.Report) ReportPayload {
	p := ReportPayload{
		Loaded:        rep.Loaded,
		AlreadyLoaded: rep.AlreadyLoaded,
	}
	if len(rep.Failed) > 0 {
		p.Failed = make(map[string]string, len(rep.Failed))
		for name, err := range rep.Failed {
			p.Failed[name] = err.Error()
		}
	}
	return p
}

func (s *ControlServer) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
		Load bool   `json:"load"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	analysis := s.loader.Analyze(req.Text)

	response := struct {
		loader.Analysis
		Report *ReportPayload `json:"report,omitempty"`
	}{Analysis: analysis}

	// Optional analyze-and-load in a single cycle.
	if req.Load && len(analysis.ToLoad) > 0 {
		rep := s.loader.Activate(analysis.ToLoad)
		p := reportPayload(rep)
		response.Report = &p
		logger.AddLog("INFO", fmt.Sprintf("analyze loaded %d tool(s)", len(rep.Loaded)))
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, response)
}

func (s *ControlServer) handleActivate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tools []string `json:"tools"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Tools) == 0 {
		http.Error(w, "tools is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	rep := s.loader.Activate(req.Tools)
	s.mu.Unlock()

	logger.AddLog("INFO", fmt.Sprintf("activate: %d loaded, %d already loaded, %d failed",
		len(rep.Loaded), len(rep.AlreadyLoaded), len(rep.Failed)))

	writeJSON(w, http.StatusOK, reportPayload(rep))
}

func (s *ControlServer) handlePreload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Profile string `json:"profile"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	rep, err := s.loader.Preload(req.Profile)
	s.mu.Unlock()

	if err != nil {
		if registry.IsKind(err, registry.ErrUnknownProfile) {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	logger.AddLog("INFO", fmt.Sprintf("preloaded profile %q: %d tool(s)", req.Profile, len(rep.Loaded)))
	writeJSON(w, http.StatusOK, reportPayload(rep))
}

func (s *ControlServer) handleGetProfiles(w http.ResponseWriter, r *http.Request) {
	reg := s.loader.Registry()

	profiles := make(map[string][]string)
	for _, name := range reg.Profiles() {
		members, _ := reg.Profile(name)
		profiles[name] = members
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profiles": profiles,
	})
}

func (s *ControlServer) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	stats := s.loader.Stats()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, stats)
}

func (s *ControlServer) handleRegistry(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	tools := s.loader.Registry().Find(query)
	if tools == nil {
		tools = []registry.ToolDescriptor{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tools": tools,
	})
}

func (s *ControlServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	stats := s.loader.Stats()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"running":     true,
		"version":     Version,
		"uptime":      time.Since(s.started).Round(time.Second).String(),
		"loadedCount": stats.LoadedCount,
		"ports": map[string]int{
			"control": s.settings.ControlPort,
		},
	})
}

func (s *ControlServer) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.loader.Reset()
	s.mu.Unlock()

	logger.AddLog("INFO", "session reset")
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset_successful"})
}

func (s *ControlServer) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.settings)
}

func (s *ControlServer) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings config.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := settings.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.settings = settings
	if s.store != nil {
		if err := s.store.Save(s.settings); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, http.StatusOK, s.settings)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && !strings.Contains(err.Error(), "broken pipe") {
		logger.AddLog("ERROR", fmt.Sprintf("encode response: %v", err))
	}
}
