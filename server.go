package inkwell

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/shkcodes/inkwell/internal/log"
)

// Server exposes the assembled descriptor and the article index as a JSON
// API. It keeps the last good descriptor: a failed rebuild is logged and
// reported, never served.
type Server struct {
	site     *Site
	echo     *echo.Echo
	limiter  *ReloadLimiter
	logger   zerolog.Logger
	watch    bool
	registry *prometheus.Registry

	mu   sync.RWMutex
	desc *Descriptor
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithWatch enables rebuilding when content, configuration, or theme
// files change on disk.
func WithWatch(enabled bool) ServerOption {
	return func(s *Server) { s.watch = enabled }
}

// NewServer creates a Server for the given site.
func NewServer(site *Site, opts ...ServerOption) *Server {
	s := &Server{
		site:     site,
		echo:     echo.New(),
		limiter:  NewReloadLimiter(5, time.Minute),
		logger:   log.WithComponent("server"),
		registry: prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) descriptor() *Descriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.desc
}

func (s *Server) setDescriptor(d *Descriptor) {
	s.mu.Lock()
	s.desc = d
	s.mu.Unlock()
}

// rebuild assembles a fresh descriptor and swaps it in. On failure the
// previous descriptor stays in place.
func (s *Server) rebuild(ctx context.Context) error {
	desc, err := s.site.Build(ctx)
	if err != nil {
		return err
	}
	s.setDescriptor(desc)
	s.logger.Info().Str("build_id", desc.BuildID).Int("articles", len(desc.Articles)).Msg("descriptor ready")
	return nil
}

// Start builds the initial descriptor, optionally starts the file
// watcher, and serves until ctx is canceled. Shutdown drains in-flight
// requests for up to ten seconds.
func (s *Server) Start(ctx context.Context) error {
	if err := s.rebuild(ctx); err != nil {
		return err
	}
	if s.watch {
		w, err := newWatcher(s)
		if err != nil {
			return err
		}
		go w.run(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		addr := s.site.Config().Server.Addr
		s.logger.Info().Str("addr", addr).Msg("listening")
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.limiter.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}
