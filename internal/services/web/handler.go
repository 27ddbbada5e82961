package web

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/louisbranch/louisbranch.dev/internal/platform/assets/binding"
	"github.com/louisbranch/louisbranch.dev/internal/platform/assets/cache"
	"github.com/louisbranch/louisbranch.dev/internal/platform/assets/fetch"
	"github.com/louisbranch/louisbranch.dev/internal/platform/assets/preload"
	"github.com/louisbranch/louisbranch.dev/internal/platform/assets/resolver"
	platformerrors "github.com/louisbranch/louisbranch.dev/internal/platform/errors"
)

type handler struct {
	config  Config
	manager *fetch.Manager
	site    *binding.Binding[json.RawMessage]
}

func newHandler(config Config) (*handler, error) {
	config = config.withDefaults()

	res, err := newResolver(config)
	if err != nil {
		return nil, err
	}
	manager := fetch.NewManager(res, cache.New(), nil)

	h := &handler{
		config:  config,
		manager: manager,
	}
	h.site = binding.New(func(ctx context.Context, name string) (json.RawMessage, error) {
		return manager.JSON(ctx, name, "")
	}, nil)
	h.site.Bind(context.Background(), config.SiteManifest)
	return h, nil
}

func newResolver(config Config) (resolver.Resolver, error) {
	if config.AssetSource == AssetSourceR2 {
		return resolver.NewR2(config.AssetBaseURL)
	}
	return resolver.NewLocal(), nil
}

func (h *handler) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.handleHealthz)
	mux.HandleFunc("/api/site", h.handleSite)
	mux.HandleFunc("/api/scene/textures", h.handleSceneTextures)
	mux.HandleFunc("/api/documents/", h.handleDocument)
	mux.HandleFunc("/api/images/", h.handleImage)
	return mux
}

// warm preloads the manifests the routes depend on.
func (h *handler) warm(ctx context.Context) {
	batcher := preload.Batcher{Manager: h.manager}
	batcher.Warm(ctx, []resolver.Request{
		{Name: h.config.SiteManifest, Category: resolver.CategoryJSON},
		{Name: h.config.SceneManifest, Category: resolver.CategoryJSON},
		{Name: h.config.DocumentsManifest, Category: resolver.CategoryJSON},
	})
}

func (h *handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// statusFor maps a fetch failure to an HTTP status. Missing assets are the
// caller's 404; everything else is an upstream failure.
func statusFor(err error) int {
	if platformerrors.HasCode(err, platformerrors.CodeAssetNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already written; an encode failure has nothing left to signal.
	_ = json.NewEncoder(w).Encode(payload)
}
