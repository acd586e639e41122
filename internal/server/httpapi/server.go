package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/keyvault/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/atomic"
)

type ServerConfig struct {
	ListenAddr   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server serves the /api routes plus /livez and /readyz. Readiness turns
// false as soon as Shutdown starts.
type Server struct {
	cfg     ServerConfig
	isReady atomic.Bool
	log     logging.Logger
	handler *Handler

	srv *http.Server
}

func NewServer(cfg ServerConfig, handler *Handler, log logging.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		log:     log,
		handler: handler,
	}
	s.isReady.Store(true)

	s.srv = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      s.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) Router() http.Handler {
	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(accessLog(s.log))
	mux.Use(middleware.Recoverer)

	mux.NotFound(s.handler.HandleBadRequest)
	mux.MethodNotAllowed(s.handler.HandleBadRequest)

	mux.Route("/api", func(r chi.Router) {
		r.NotFound(s.handler.HandleBadRequest)
		r.MethodNotAllowed(s.handler.HandleBadRequest)

		r.Get("/auth", s.handler.HandleAuth)
		r.Get("/register", s.handler.HandleRegister)
		r.Get("/get_vault", s.handler.HandleGetVault)
		r.Get("/update_vault", s.handler.HandleUpdateVault)
		r.Get("/update_key", s.handler.HandleUpdateKey)
	})

	mux.Get("/livez", s.handleLivenessCheck)
	mux.Get("/readyz", s.handleReadinessCheck)
	return mux
}

func (s *Server) handleLivenessCheck(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "alive")
}

func (s *Server) handleReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if !s.isReady.Load() {
		writeText(w, http.StatusServiceUnavailable, "not ready")
		return
	}
	writeText(w, http.StatusOK, "ready")
}

// Serve accepts connections on ln until Shutdown. It returns nil after a
// graceful shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.log.Info(context.Background(), "starting HTTP server", "listen_addr", ln.Addr().String())
	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// RunInBackground listens on the configured address and serves in a
// goroutine. A serve failure is delivered on the returned channel.
func (s *Server) RunInBackground() (<-chan error, error) {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return nil, err
	}

	errc := make(chan error, 1)
	go func() {
		if err := s.Serve(ln); err != nil {
			errc <- err
		}
		close(errc)
	}()
	return errc, nil
}

// Shutdown marks the server not ready and waits for in-flight requests until
// ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.isReady.Store(false)
	if err := s.srv.Shutdown(ctx); err != nil {
		s.log.Error(ctx, "graceful HTTP server shutdown failed", "error", err)
		return err
	}
	s.log.Info(ctx, "HTTP server gracefully stopped")
	return nil
}
