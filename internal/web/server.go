// Package web serves the to-do list as an HTML page and a JSON API.
package web

import (
	"context"
	"errors"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"todo/internal/logging"
	"todo/internal/task"
)

// ShutdownTimeout bounds graceful shutdown once the context is cancelled.
const ShutdownTimeout = 5 * time.Second

// Server is an http.Handler over a task Manager.
type Server struct {
	mgr     *task.Manager
	logger  *log.Logger
	router  *mux.Router
	handler http.Handler
	page    *template.Template
}

// New creates a Server for mgr. A nil logger discards logs.
func New(mgr *task.Manager, logger *log.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{
		mgr:    mgr,
		logger: logger,
		router: mux.NewRouter(),
		page:   template.Must(template.New("page").Parse(pageTemplate)),
	}
	s.routes()
	s.handler = s.requestID(s.logRequests(s.router))
	return s
}

func (s *Server) routes() {
	r := s.router
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/", s.handlePage).Methods(http.MethodGet)
	r.HandleFunc("/tasks", s.handleAddForm).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{index:[0-9]+}/toggle", s.handleToggleForm).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{index:[0-9]+}/edit", s.handleEditForm).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{index:[0-9]+}/delete", s.handleDeleteForm).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/tasks", s.handleListAPI).Methods(http.MethodGet)
	api.HandleFunc("/tasks", s.handleAddAPI).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{index:[0-9]+}", s.handlePatchAPI).Methods(http.MethodPatch)
	api.HandleFunc("/tasks/{index:[0-9]+}", s.handleDeleteAPI).Methods(http.MethodDelete)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return log.WithContext(context.Background(), s.logger) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
