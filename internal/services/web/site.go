package web

import "net/http"

// handleSite serves the site manifest through the long-lived binding. The
// manifest is fetched once and then served from the binding's settled
// state; ?refresh=1 forces a refetch (the cache is still consulted).
func (h *handler) handleSite(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	if r.URL.Query().Get("refresh") == "1" {
		h.site.Refetch(r.Context())
	}

	result := h.site.Wait()
	if result.Err != nil {
		http.Error(w, "site manifest unavailable", statusFor(result.Err))
		return
	}
	if result.Data == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(result.Data)
}
