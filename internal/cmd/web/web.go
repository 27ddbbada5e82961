// Package web parses configuration and runs the portfolio web service.
package web

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/louisbranch/louisbranch.dev/internal/platform/config"
	"github.com/louisbranch/louisbranch.dev/internal/platform/otel"
	"github.com/louisbranch/louisbranch.dev/internal/services/web"
)

// Config holds the web command configuration. Environment values load
// first; flags override them.
type Config struct {
	HTTPAddr          string `env:"LOUISBRANCH_DEV_HTTP_ADDR" envDefault:"localhost:8080"`
	AssetSource       string `env:"LOUISBRANCH_DEV_ASSET_SOURCE" envDefault:"local"`
	AssetBaseURL      string `env:"LOUISBRANCH_DEV_ASSET_BASE_URL"`
	SiteManifest      string `env:"LOUISBRANCH_DEV_SITE_MANIFEST" envDefault:"site.json"`
	SceneManifest     string `env:"LOUISBRANCH_DEV_SCENE_MANIFEST" envDefault:"earth.json"`
	DocumentsManifest string `env:"LOUISBRANCH_DEV_DOCUMENTS_MANIFEST" envDefault:"documents.json"`
}

// ParseConfig parses environment variables and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.AssetSource, "asset-source", cfg.AssetSource, "asset storage variant (r2 or local)")
	fs.StringVar(&cfg.AssetBaseURL, "asset-base-url", cfg.AssetBaseURL, "storage origin for the r2 variant")
	fs.StringVar(&cfg.SiteManifest, "site-manifest", cfg.SiteManifest, "site manifest document name")
	fs.StringVar(&cfg.SceneManifest, "scene-manifest", cfg.SceneManifest, "scene manifest document name")
	fs.StringVar(&cfg.DocumentsManifest, "documents-manifest", cfg.DocumentsManifest, "documents manifest document name")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Run starts the portfolio web server.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "web")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	server, err := web.NewServer(web.Config{
		HTTPAddr:          cfg.HTTPAddr,
		AssetSource:       cfg.AssetSource,
		AssetBaseURL:      cfg.AssetBaseURL,
		SiteManifest:      cfg.SiteManifest,
		SceneManifest:     cfg.SceneManifest,
		DocumentsManifest: cfg.DocumentsManifest,
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}

	go server.Warm(ctx)

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}
