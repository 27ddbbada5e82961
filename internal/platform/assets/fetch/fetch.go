// Package fetch layers category-specific network operations over the
// resolver and the shared cache.
//
// Every successful result is memoized under the request's cache key; a
// failed fetch never populates the cache, so the next call retries the
// network. Concurrent misses for one key are not deduplicated — both calls
// go to the network and both store the same logical value, which keeps the
// end state consistent at the cost of a duplicate round trip.
package fetch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/louisbranch.dev/internal/platform/assets/cache"
	"github.com/louisbranch/louisbranch.dev/internal/platform/assets/resolver"
	platformerrors "github.com/louisbranch/louisbranch.dev/internal/platform/errors"
)

// Manager executes asset fetches against one storage origin.
type Manager struct {
	resolver resolver.Resolver
	cache    *cache.Store
	client   *http.Client
	tracer   trace.Tracer
}

// NewManager creates a manager over the given resolver and cache. A nil
// client defaults to http.DefaultClient; a nil store gets a fresh cache.
func NewManager(res resolver.Resolver, store *cache.Store, client *http.Client) *Manager {
	if store == nil {
		store = cache.New()
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Manager{
		resolver: res,
		cache:    store,
		client:   client,
		tracer:   otel.Tracer("platform/assets/fetch"),
	}
}

// Cache returns the store backing this manager.
func (m *Manager) Cache() *cache.Store {
	return m.cache
}

// JSON fetches and memoizes a JSON document by name. On a cache miss it
// issues a GET, requires a success status, and verifies the body parses as
// JSON before caching. Failures propagate uncached.
func (m *Manager) JSON(ctx context.Context, name, folder string) (json.RawMessage, error) {
	req := resolver.Request{Name: name, Category: resolver.CategoryJSON, Folder: folder}
	key := req.CacheKey()
	if cached, ok := m.cache.Get(key); ok {
		if doc, ok := cached.(json.RawMessage); ok {
			return doc, nil
		}
	}

	assetURL, err := m.resolver.URL(req)
	if err != nil {
		return nil, err
	}

	ctx, span := m.tracer.Start(ctx, "assets.fetch.json",
		trace.WithAttributes(attribute.String("asset.name", name)))
	defer span.End()

	body, err := m.get(ctx, assetURL)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, platformerrors.WithMetadata(platformerrors.CodeAssetDecodeError,
			"asset body is not valid JSON", map[string]string{"url": assetURL})
	}

	doc := json.RawMessage(body)
	m.cache.Set(key, doc)
	return doc, nil
}

// ImageURL resolves an image by name and probes its existence with a HEAD
// request. The URL is cached only when the probe succeeds; a failed probe
// propagates uncached so a later call retries.
func (m *Manager) ImageURL(ctx context.Context, name, folder string) (string, error) {
	req := resolver.Request{Name: name, Category: resolver.CategoryImage, Folder: folder}
	key := req.CacheKey()
	if cached, ok := m.cache.Get(key); ok {
		if imageURL, ok := cached.(string); ok {
			return imageURL, nil
		}
	}

	assetURL, err := m.resolver.URL(req)
	if err != nil {
		return "", err
	}

	ctx, span := m.tracer.Start(ctx, "assets.fetch.image",
		trace.WithAttributes(attribute.String("asset.name", name)))
	defer span.End()

	if err := m.probe(ctx, assetURL); err != nil {
		return "", err
	}

	m.cache.Set(key, assetURL)
	return assetURL, nil
}

// TextureURL resolves a texture by name with no existence probe.
//
// Contract difference with ImageURL, kept on purpose: the downstream
// texture loader performs its own error handling, so the HEAD round trip
// is skipped here.
func (m *Manager) TextureURL(name string) (string, error) {
	return m.AssetURL(name, resolver.CategoryTexture, "")
}

// TextureURLs resolves a set of textures by name, preserving input order.
func (m *Manager) TextureURLs(names []string) ([]string, error) {
	urls := make([]string, len(names))
	for i, name := range names {
		textureURL, err := m.TextureURL(name)
		if err != nil {
			return nil, err
		}
		urls[i] = textureURL
	}
	return urls, nil
}

// TextureURLsFromPaths resolves manifest-declared exact paths, preserving
// input order: index i of the output corresponds to index i of the input.
// Pure URL construction, so nothing is cached.
func (m *Manager) TextureURLsFromPaths(paths []string) ([]string, error) {
	urls := make([]string, len(paths))
	for i, relativePath := range paths {
		textureURL, err := m.resolver.DirectURL(relativePath)
		if err != nil {
			return nil, err
		}
		urls[i] = textureURL
	}
	return urls, nil
}

// ImageURLFromPath resolves a manifest-declared exact image path. No probe,
// no caching.
func (m *Manager) ImageURLFromPath(relativePath string) (string, error) {
	return m.resolver.DirectURL(relativePath)
}

// DocumentURLFromPath resolves a manifest-declared exact document path.
func (m *Manager) DocumentURLFromPath(relativePath string) (string, error) {
	return m.resolver.DirectURL(relativePath)
}

// DocumentURL resolves a document by name. No network validation.
func (m *Manager) DocumentURL(name, folder string) (string, error) {
	return m.AssetURL(name, resolver.CategoryDocument, folder)
}

// AssetURL resolves any named asset through the category folder table and
// memoizes the result. No network validation.
func (m *Manager) AssetURL(name string, category resolver.Category, folder string) (string, error) {
	req := resolver.Request{Name: name, Category: category, Folder: folder}
	key := req.CacheKey()
	if cached, ok := m.cache.Get(key); ok {
		if assetURL, ok := cached.(string); ok {
			return assetURL, nil
		}
	}
	assetURL, err := m.resolver.URL(req)
	if err != nil {
		return "", err
	}
	m.cache.Set(key, assetURL)
	return assetURL, nil
}

func (m *Manager) get(ctx context.Context, assetURL string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.CodeAssetFetchFailed, "build asset request", err)
	}
	resp, err := m.client.Do(httpReq)
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.CodeAssetFetchFailed, "fetch asset", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, platformerrors.WithMetadata(platformerrors.CodeAssetNotFound,
			"asset fetch returned "+resp.Status, map[string]string{"url": assetURL})
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.CodeAssetFetchFailed, "read asset body", err)
	}
	return body, nil
}

func (m *Manager) probe(ctx context.Context, assetURL string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodHead, assetURL, nil)
	if err != nil {
		return platformerrors.Wrap(platformerrors.CodeAssetFetchFailed, "build probe request", err)
	}
	resp, err := m.client.Do(httpReq)
	if err != nil {
		return platformerrors.Wrap(platformerrors.CodeAssetFetchFailed, "probe asset", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return platformerrors.WithMetadata(platformerrors.CodeAssetNotFound,
			"asset probe returned "+resp.Status, map[string]string{"url": assetURL})
	}
	return nil
}
