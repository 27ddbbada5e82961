package web

import (
	"net/http"

	"github.com/louisbranch/louisbranch.dev/internal/platform/assets/manifest"
)

type sceneTexturesResponse struct {
	// Roles and URLs share indexes: URLs[i] resolves the path declared for
	// Roles[i] in the scene manifest.
	Roles []string `json:"roles"`
	URLs  []string `json:"urls"`
}

// handleSceneTextures resolves the hero scene's declared texture paths into
// fetchable URLs. Textures are not probed: the renderer's loader reports
// its own failures.
func (h *handler) handleSceneTextures(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	scene, err := manifest.LoadScene(r.Context(), h.manager, h.config.SceneManifest)
	if err != nil {
		http.Error(w, "scene manifest unavailable", statusFor(err))
		return
	}

	urls, err := h.manager.TextureURLsFromPaths(scene.TexturePaths())
	if err != nil {
		http.Error(w, "resolve textures", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, sceneTexturesResponse{
		Roles: scene.TextureRoles(),
		URLs:  urls,
	})
}
