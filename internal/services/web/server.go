// Package web hosts the portfolio's asset-facing HTTP service.
//
// The service owns one resolver, one cache, and one fetch manager for its
// whole lifetime; every route consumes assets through that shared core.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/louisbranch.dev/internal/platform/timeouts"
)

// Asset source variants.
const (
	AssetSourceR2    = "r2"
	AssetSourceLocal = "local"
)

// Config defines the inputs for the web service.
type Config struct {
	HTTPAddr string
	// AssetSource selects the storage variant: "r2" requires AssetBaseURL,
	// "local" serves relative to the site root.
	AssetSource string
	// AssetBaseURL is the storage origin for the r2 variant.
	AssetBaseURL string
	// SiteManifest names the JSON document describing the site shell.
	SiteManifest string
	// SceneManifest names the JSON document describing the hero scene.
	SceneManifest string
	// DocumentsManifest names the JSON document mapping document names to paths.
	DocumentsManifest string
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.AssetSource) == "" {
		c.AssetSource = AssetSourceLocal
	}
	if strings.TrimSpace(c.SiteManifest) == "" {
		c.SiteManifest = "site.json"
	}
	if strings.TrimSpace(c.SceneManifest) == "" {
		c.SceneManifest = "earth.json"
	}
	if strings.TrimSpace(c.DocumentsManifest) == "" {
		c.DocumentsManifest = "documents.json"
	}
	return c
}

// Server hosts the portfolio HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	handler    *handler
}

// NewServer assembles the asset core and route handlers.
func NewServer(config Config) (*Server, error) {
	h, err := newHandler(config)
	if err != nil {
		return nil, fmt.Errorf("init web handler: %w", err)
	}

	httpServer := &http.Server{
		Addr:              config.HTTPAddr,
		Handler:           h.routes(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	return &Server{
		httpAddr:   config.HTTPAddr,
		httpServer: httpServer,
		handler:    h,
	}, nil
}

// Warm preloads manifest-declared assets into the cache. Best effort: it
// returns once every dispatch has settled, whatever the outcomes.
func (s *Server) Warm(ctx context.Context) {
	s.handler.warm(ctx)
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("web listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
