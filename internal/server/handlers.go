package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/spf13/afero"

	"github.com/flowtable/compute/internal/enginerr"
	"github.com/flowtable/compute/internal/ifacecfg"
	"github.com/flowtable/compute/internal/sink"
	"github.com/flowtable/compute/internal/source"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.touch()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	s.touch()
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.touch()
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	s.mu.RLock()
	sessionCount := len(s.sessions)
	idleFor := time.Since(s.lastActive)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"uptime_seconds":       time.Since(s.startedAt).Seconds(),
		"rss_bytes":            mem.Sys,
		"idle_seconds":         idleFor.Seconds(),
		"idle_timeout_seconds": s.IdleTimeout.Seconds(),
		"session_count":        sessionCount,
		"endpoints":            Endpoints,
	})
}

type readDataRequest struct {
	InterfacePath string `json:"interface_path"`
}

type readDataResponse struct {
	SessionID string `json:"session_id"`
	Rows      int    `json:"rows"`
	Columns   int    `json:"columns"`
}

func (s *Server) handleReadData(w http.ResponseWriter, r *http.Request) {
	var req readDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	raw, err := afero.ReadFile(s.FS, req.InterfacePath)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	iface, err := ifacecfg.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	df, err := source.Load(r.Context(), s.FS, iface)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	sess := NewSession(iface, df, s.Registry, s.Resolver, s.Log)
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	if err := s.Store.Record(sess.ID, req.InterfacePath); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	rows, cols := df.Shape()
	writeJSON(w, http.StatusOK, readDataResponse{SessionID: sess.ID, Rows: rows, Columns: cols})
}

func (s *Server) session(sessionID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	return sess, ok
}

type writeDataRequest struct {
	SessionID string `json:"session_id"`
}

func (s *Server) handleWriteData(w http.ResponseWriter, r *http.Request) {
	var req writeDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sess, ok := s.session(req.SessionID)
	if !ok {
		writeError(w, http.StatusNotFound, &enginerr.ResolutionError{Msg: "unknown session: " + req.SessionID})
		return
	}
	if err := sink.Write(r.Context(), s.FS, sess.DataFrame, sess.Interface.Output); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.Store.Touch(sess.ID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "written"})
}

type computeRequest struct {
	SessionID  string `json:"session_id"`
	Mode       string `json:"mode"` // "all", "run", "onchange"
	PrimaryKey string `json:"primary_key,omitempty"`
	Column     string `json:"column,omitempty"`
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sess, ok := s.session(req.SessionID)
	if !ok {
		writeError(w, http.StatusNotFound, &enginerr.ResolutionError{Msg: "unknown session: " + req.SessionID})
		return
	}

	var err error
	switch req.Mode {
	case "", "all":
		err = sess.Scheduler.RunAll()
	case "run":
		if req.PrimaryKey != "" {
			if ferr := sess.DataFrame.SetFocus(req.PrimaryKey); ferr != nil {
				writeError(w, http.StatusBadRequest, ferr)
				return
			}
		}
		err = sess.Scheduler.Run()
	case "onchange":
		err = sess.Scheduler.RunOnChange(req.PrimaryKey, req.Column)
	default:
		writeError(w, http.StatusBadRequest, &enginerr.ConfigError{Msg: "compute: unknown mode " + req.Mode})
		return
	}
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.Store.Touch(sess.ID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "computed"})
}

func (s *Server) handleInterfaceRead(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	sess, ok := s.session(sessionID)
	if !ok {
		writeError(w, http.StatusNotFound, &enginerr.ResolutionError{Msg: "unknown session: " + sessionID})
		return
	}
	writeJSON(w, http.StatusOK, sess.Interface)
}
