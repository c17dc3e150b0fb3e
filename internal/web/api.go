package web

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"todo/internal/task"
)

type apiError struct {
	Error string `json:"error"`
}

type addRequest struct {
	Text string `json:"text"`
}

// patchRequest changes a task. Absent fields are left as they are.
type patchRequest struct {
	Completed *bool   `json:"completed"`
	Text      *string `json:"text"`
}

func (s *Server) handleListAPI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.mgr.Tasks())
}

func (s *Server) handleAddAPI(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid json: " + err.Error()})
		return
	}
	if err := s.mgr.Apply(r.Context(), task.Add(req.Text)); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task.Task{Text: req.Text})
}

func (s *Server) handlePatchAPI(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	var req patchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid json: " + err.Error()})
		return
	}

	t, err := s.mgr.Update(r.Context(), index, task.Change{Text: req.Text, Completed: req.Completed})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteAPI(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	if err := s.mgr.Apply(r.Context(), task.Delete(index)); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.FromContext(r.Context()).Error("apply intent", "err", err)
	}
	writeJSON(w, status, apiError{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
