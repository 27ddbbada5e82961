// Package resolver maps logical asset identifiers to fetchable URLs.
//
// A Resolver is pure: it performs no I/O and no validation of asset content.
// Names come from trusted manifest documents, so they are joined into URLs
// without sanitization beyond path cleaning.
package resolver

import (
	"net/url"
	"path"
	"strings"

	platformerrors "github.com/louisbranch/louisbranch.dev/internal/platform/errors"
)

// Category classifies an asset and selects its default storage folder.
type Category string

const (
	CategoryJSON     Category = "json"
	CategoryImage    Category = "image"
	CategoryTexture  Category = "texture"
	CategoryDocument Category = "document"
	CategoryGeneric  Category = "generic"
)

// folderByCategory is the category -> default folder table. Extending
// categories requires only a new entry here.
var folderByCategory = map[Category]string{
	CategoryJSON:     "data",
	CategoryImage:    "assets",
	CategoryTexture:  "textures",
	CategoryDocument: "documents",
	CategoryGeneric:  "assets",
}

var (
	ErrBaseURLRequired = platformerrors.New(platformerrors.CodeAssetBaseURLMissing, "asset base URL is required")
	ErrNameRequired    = platformerrors.New(platformerrors.CodeAssetNameEmpty, "asset name is required")
	ErrCategoryUnknown = platformerrors.New(platformerrors.CodeAssetCategoryUnknown, "asset category is not configured")
)

// DefaultFolder returns the storage folder for a category.
func DefaultFolder(category Category) (string, bool) {
	folder, ok := folderByCategory[category]
	return folder, ok
}

// Request identifies one asset: a logical name, its category, and an
// optional folder override. An empty Folder selects the category default.
type Request struct {
	Name     string
	Category Category
	Folder   string
}

// CacheKey derives the deterministic cache key for the request. Requests
// with identical (category, folder, name) collide on the same key.
func (r Request) CacheKey() string {
	folder := strings.TrimSpace(r.Folder)
	if folder == "" {
		folder = "default"
	}
	return string(r.Category) + "_" + folder + "_" + r.Name
}

// Resolver joins a storage origin with category folders and asset names.
type Resolver struct {
	baseURL string
}

// NewR2 creates a resolver against a remote storage origin (an R2 bucket or
// any CDN base). An empty base URL is a construction-time error so that a
// misconfigured deployment fails before any request is attempted.
func NewR2(baseURL string) (Resolver, error) {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		return Resolver{}, ErrBaseURLRequired
	}
	if _, err := url.Parse(base); err != nil {
		return Resolver{}, platformerrors.Wrap(platformerrors.CodeAssetBaseURLMissing, "asset base URL is invalid", err)
	}
	return Resolver{baseURL: base}, nil
}

// NewLocal creates a resolver that serves assets relative to the site root.
func NewLocal() Resolver {
	return Resolver{baseURL: "/"}
}

// BaseURL returns the configured storage origin.
func (r Resolver) BaseURL() string {
	return r.baseURL
}

// URL resolves a request to an absolute fetchable URL using the category
// folder table. Deterministic: the same request always yields the same URL.
func (r Resolver) URL(req Request) (string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", ErrNameRequired
	}
	folder := strings.TrimSpace(req.Folder)
	if folder == "" {
		configured, ok := folderByCategory[req.Category]
		if !ok {
			return "", ErrCategoryUnknown
		}
		folder = configured
	}
	return r.join(folder, name)
}

// DirectURL joins the base URL with a manifest-supplied path verbatim,
// bypassing the category folder table. The caller guarantees the path is
// already relative to the storage root.
func (r Resolver) DirectURL(relativePath string) (string, error) {
	cleaned := strings.TrimSpace(relativePath)
	if cleaned == "" {
		return "", ErrNameRequired
	}
	return r.join(cleaned)
}

func (r Resolver) join(segments ...string) (string, error) {
	base := r.baseURL
	if base == "" {
		return "", ErrBaseURLRequired
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	parsed.Path = path.Join(append([]string{parsed.Path}, segments...)...)
	return parsed.String(), nil
}
