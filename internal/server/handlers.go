package server

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/GatherBonus_Go/internal/bonus"
	"github.com/osse101/GatherBonus_Go/internal/logger"
	"github.com/osse101/GatherBonus_Go/internal/reload"
)

// Reloader re-reads the bonus config on demand
type Reloader interface {
	Reload(ctx context.Context) (reload.Result, error)
}

// HealthResponse is the body of the probe endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// VersionInfo contains version and build information
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
}

// RulesResponse is the active bonus table
type RulesResponse struct {
	ChatMessages bool         `json:"chat_messages"`
	Hash         string       `json:"hash"`
	LoadedAt     time.Time    `json:"loaded_at"`
	Rules        []bonus.Rule `json:"rules"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error(ErrMsgEncodeFailure, "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// HandleHealthz is the liveness probe
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// HandleReadyz reports ready once a config snapshot is installed
func HandleReadyz(registry *bonus.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if registry.Current().LoadedAt().IsZero() {
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Message: ErrMsgNotReady})
			return
		}
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// HandleVersion returns the running version
func HandleVersion(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, VersionInfo{Version: version, GoVersion: runtime.Version()})
	}
}

// HandleGetRules returns every active rule in declared order
func HandleGetRules(registry *bonus.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := registry.Current()
		respondJSON(w, http.StatusOK, RulesResponse{
			ChatMessages: snap.ChatMessages(),
			Hash:         snap.Hash(),
			LoadedAt:     snap.LoadedAt(),
			Rules:        snap.Rules(),
		})
	}
}

// HandleGetRule returns the rule for one resource
func HandleGetRule(registry *bonus.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rule, ok := registry.Current().Rule(chi.URLParam(r, "resource"))
		if !ok {
			respondError(w, http.StatusNotFound, ErrMsgRuleNotFound)
			return
		}
		respondJSON(w, http.StatusOK, rule.Clone())
	}
}

// HandleReload re-reads the config file and reports the outcome
func HandleReload(reloader Reloader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := reloader.Reload(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgReloadFailed, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgReloadFailed)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}
