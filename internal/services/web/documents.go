package web

import (
	"net/http"
	"strings"

	"github.com/louisbranch/louisbranch.dev/internal/platform/assets/manifest"
)

// handleDocument redirects to the resolved URL for a manifest-declared
// document. The manifest supplies exact storage-relative paths, so the
// category folder table is bypassed.
func (h *handler) handleDocument(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/api/documents/")
	if name == "" || strings.Contains(name, "/") {
		http.NotFound(w, r)
		return
	}

	documents, err := manifest.LoadDocuments(r.Context(), h.manager, h.config.DocumentsManifest)
	if err != nil {
		http.Error(w, "documents manifest unavailable", statusFor(err))
		return
	}

	relativePath, ok := documents[name]
	if !ok || strings.TrimSpace(relativePath) == "" {
		http.NotFound(w, r)
		return
	}
	documentURL, err := h.manager.DocumentURLFromPath(relativePath)
	if err != nil {
		http.Error(w, "resolve document", http.StatusBadGateway)
		return
	}
	http.Redirect(w, r, documentURL, http.StatusFound)
}
