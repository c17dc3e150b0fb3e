package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"todo/internal/task"
)

// BlankNotice is shown when an empty task is submitted.
const BlankNotice = "You must write something!"

type pageData struct {
	Tasks  []task.Task
	Notice string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, "")
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, notice string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	data := pageData{Tasks: s.mgr.Tasks(), Notice: notice}
	if err := s.page.Execute(w, data); err != nil {
		log.FromContext(r.Context()).Error("render page", "err", err)
	}
}

func (s *Server) handleAddForm(w http.ResponseWriter, r *http.Request) {
	err := s.mgr.Apply(r.Context(), task.Add(r.FormValue("text")))
	if errors.Is(err, task.ErrBlankText) {
		s.renderPage(w, r, http.StatusBadRequest, BlankNotice)
		return
	}
	s.finishForm(w, r, err)
}

func (s *Server) handleToggleForm(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	s.finishForm(w, r, s.mgr.Apply(r.Context(), task.Toggle(index)))
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	err := s.mgr.Apply(r.Context(), task.Edit(index, r.FormValue("text")))
	if errors.Is(err, task.ErrBlankText) {
		// A blank edit leaves the task as it was.
		err = nil
	}
	s.finishForm(w, r, err)
}

func (s *Server) handleDeleteForm(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	s.finishForm(w, r, s.mgr.Apply(r.Context(), task.Delete(index)))
}

// finishForm redirects back to the page, or reports err as plain text.
func (s *Server) finishForm(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			log.FromContext(r.Context()).Error("apply intent", "err", err)
		}
		http.Error(w, err.Error(), status)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// pathIndex reads the {index} route variable. The route pattern only admits
// digits, so a parse failure means the number overflowed.
func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "invalid index", http.StatusNotFound)
		return 0, false
	}
	return index, true
}

// statusFor maps Manager errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, task.ErrBlankText), errors.Is(err, task.ErrUnknownIntent):
		return http.StatusBadRequest
	case errors.Is(err, task.ErrOutOfRange):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
