package web

import (
	"net/http"
	"strings"
)

type imageResponse struct {
	URL string `json:"url"`
}

// handleImage resolves a named image and probes its existence before
// answering, so the browser only ever receives URLs that exist.
func (h *handler) handleImage(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/api/images/")
	if name == "" || strings.Contains(name, "/") {
		http.NotFound(w, r)
		return
	}

	imageURL, err := h.manager.ImageURL(r.Context(), name, r.URL.Query().Get("folder"))
	if err != nil {
		http.Error(w, "image unavailable", statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, imageResponse{URL: imageURL})
}
