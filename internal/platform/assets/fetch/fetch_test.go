package fetch_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/louisbranch/louisbranch.dev/internal/platform/assets/cache"
	"github.com/louisbranch/louisbranch.dev/internal/platform/assets/fetch"
	"github.com/louisbranch/louisbranch.dev/internal/platform/assets/resolver"
	platformerrors "github.com/louisbranch/louisbranch.dev/internal/platform/errors"
)

// assetServer records every request so tests can assert on network traffic.
type assetServer struct {
	mu       sync.Mutex
	requests []string
	handler  http.HandlerFunc
}

func (s *assetServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.Method+" "+r.URL.Path)
	s.mu.Unlock()
	s.handler(w, r)
}

func (s *assetServer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *assetServer) last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return ""
	}
	return s.requests[len(s.requests)-1]
}

func newManager(t *testing.T, handler http.HandlerFunc) (*fetch.Manager, *assetServer, *cache.Store) {
	t.Helper()
	server := &assetServer{handler: handler}
	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)

	res, err := resolver.NewR2(ts.URL)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	store := cache.New()
	return fetch.NewManager(res, store, ts.Client()), server, store
}

func TestJSON_SecondCallServedFromCache(t *testing.T) {
	manager, server, _ := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/site.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"title":"louisbranch.dev"}`))
	})

	first, err := manager.JSON(context.Background(), "site.json", "")
	if err != nil {
		t.Fatalf("fetch json: %v", err)
	}
	second, err := manager.JSON(context.Background(), "site.json", "")
	if err != nil {
		t.Fatalf("fetch json again: %v", err)
	}

	if server.count() != 1 {
		t.Fatalf("expected one network request, got %d", server.count())
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected identical documents, got %s and %s", first, second)
	}
}

func TestJSON_FailureIsNotCached(t *testing.T) {
	manager, server, store := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := manager.JSON(context.Background(), "missing.json", "")
	if !platformerrors.HasCode(err, platformerrors.CodeAssetNotFound) {
		t.Fatalf("expected CodeAssetNotFound, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty cache after failure, got %d entries", store.Len())
	}

	// A later call retries the network rather than replaying the failure.
	_, _ = manager.JSON(context.Background(), "missing.json", "")
	if server.count() != 2 {
		t.Fatalf("expected two network requests, got %d", server.count())
	}
}

func TestJSON_RejectsInvalidBody(t *testing.T) {
	manager, _, store := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := manager.JSON(context.Background(), "site.json", "")
	if !platformerrors.HasCode(err, platformerrors.CodeAssetDecodeError) {
		t.Fatalf("expected CodeAssetDecodeError, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty cache after parse failure, got %d entries", store.Len())
	}
}

func TestImageURL_ProbesOnceThenCaches(t *testing.T) {
	manager, server, _ := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	first, err := manager.ImageURL(context.Background(), "sprite.png", "")
	if err != nil {
		t.Fatalf("fetch image url: %v", err)
	}
	if got := server.last(); got != "HEAD /assets/sprite.png" {
		t.Fatalf("probe request = %q, want %q", got, "HEAD /assets/sprite.png")
	}

	second, err := manager.ImageURL(context.Background(), "sprite.png", "")
	if err != nil {
		t.Fatalf("fetch image url again: %v", err)
	}
	if server.count() != 1 {
		t.Fatalf("expected one probe, got %d requests", server.count())
	}
	if first != second {
		t.Fatalf("expected identical URLs, got %q and %q", first, second)
	}
}

func TestImageURL_FailedProbeIsNotCached(t *testing.T) {
	manager, server, store := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := manager.ImageURL(context.Background(), "missing.png", "")
	if !platformerrors.HasCode(err, platformerrors.CodeAssetNotFound) {
		t.Fatalf("expected CodeAssetNotFound, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty cache after failed probe, got %d entries", store.Len())
	}

	_, _ = manager.ImageURL(context.Background(), "missing.png", "")
	if server.count() != 2 {
		t.Fatalf("expected probe retry, got %d requests", server.count())
	}
}

func TestTextureURL_SkipsExistenceProbe(t *testing.T) {
	manager, server, store := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	got, err := manager.TextureURL("earth-day.jpg")
	if err != nil {
		t.Fatalf("texture url: %v", err)
	}
	if server.count() != 0 {
		t.Fatalf("expected no network traffic, got %d requests", server.count())
	}
	if store.Len() != 1 {
		t.Fatalf("expected cached texture URL, got %d entries", store.Len())
	}

	if gotAgain, err := manager.TextureURL("earth-day.jpg"); err != nil || gotAgain != got {
		t.Fatalf("TextureURL(...) = %q, %v; want %q, nil", gotAgain, err, got)
	}
}

func TestTextureURLs_PreservesInputOrder(t *testing.T) {
	manager, _, _ := newManager(t, func(w http.ResponseWriter, r *http.Request) {})

	urls, err := manager.TextureURLs([]string{"a.jpg", "b.jpg", "c.jpg"})
	if err != nil {
		t.Fatalf("texture urls: %v", err)
	}
	if len(urls) != 3 {
		t.Fatalf("expected 3 URLs, got %d", len(urls))
	}
	for i, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		wantSuffix := "/textures/" + name
		if got := urls[i]; len(got) < len(wantSuffix) || got[len(got)-len(wantSuffix):] != wantSuffix {
			t.Fatalf("urls[%d] = %q, want suffix %q", i, got, wantSuffix)
		}
	}
}

func TestTextureURLsFromPaths_IndexCorrespondence(t *testing.T) {
	manager, server, store := newManager(t, func(w http.ResponseWriter, r *http.Request) {})

	paths := [][]string{
		{"a.png", "b.png", "c.png"},
		{"c.png", "a.png", "b.png"},
		{"b.png", "c.png", "a.png"},
	}
	for _, permutation := range paths {
		urls, err := manager.TextureURLsFromPaths(permutation)
		if err != nil {
			t.Fatalf("texture urls from paths: %v", err)
		}
		for i, relativePath := range permutation {
			wantSuffix := "/" + relativePath
			if got := urls[i]; got[len(got)-len(wantSuffix):] != wantSuffix {
				t.Fatalf("urls[%d] = %q, want suffix %q", i, got, wantSuffix)
			}
		}
	}

	// Direct-path resolution is pure construction: no traffic, no cache.
	if server.count() != 0 {
		t.Fatalf("expected no network traffic, got %d requests", server.count())
	}
	if store.Len() != 0 {
		t.Fatalf("expected no cache entries, got %d", store.Len())
	}
}

func TestDocumentURL_ComposesResolverOnly(t *testing.T) {
	manager, server, _ := newManager(t, func(w http.ResponseWriter, r *http.Request) {})

	got, err := manager.DocumentURL("resume.pdf", "")
	if err != nil {
		t.Fatalf("document url: %v", err)
	}
	wantSuffix := "/documents/resume.pdf"
	if got[len(got)-len(wantSuffix):] != wantSuffix {
		t.Fatalf("DocumentURL(...) = %q, want suffix %q", got, wantSuffix)
	}
	if server.count() != 0 {
		t.Fatalf("expected no network validation, got %d requests", server.count())
	}
}

func TestAssetURL_HonorsFolderOverride(t *testing.T) {
	manager, _, _ := newManager(t, func(w http.ResponseWriter, r *http.Request) {})

	got, err := manager.AssetURL("preview.png", resolver.CategoryImage, "projects")
	if err != nil {
		t.Fatalf("asset url: %v", err)
	}
	wantSuffix := "/projects/preview.png"
	if got[len(got)-len(wantSuffix):] != wantSuffix {
		t.Fatalf("AssetURL(...) = %q, want suffix %q", got, wantSuffix)
	}
}
