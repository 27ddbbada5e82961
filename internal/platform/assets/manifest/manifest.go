// Package manifest provides typed views over the site's manifest documents.
//
// Decoding is lenient on purpose: fields absent from a manifest stay
// zero-valued and unknown fields are ignored. The platform never rejects a
// manifest for shape; consumers null-check what they use.
package manifest

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/louisbranch/louisbranch.dev/internal/platform/assets/fetch"
	platformerrors "github.com/louisbranch/louisbranch.dev/internal/platform/errors"
)

// Scene describes a hero scene manifest: texture paths keyed by role,
// animation timing, and material settings for the renderer.
type Scene struct {
	Textures  map[string]string   `json:"textures"`
	Animation Animation           `json:"animation"`
	Materials map[string]Material `json:"materials"`
}

// Animation holds renderer timing parameters.
type Animation struct {
	RotationSpeed float64 `json:"rotationSpeed"`
	OrbitSpeed    float64 `json:"orbitSpeed"`
	TiltDegrees   float64 `json:"tiltDegrees"`
}

// Material holds renderer shading parameters.
type Material struct {
	Roughness float64 `json:"roughness"`
	Metalness float64 `json:"metalness"`
	Emissive  float64 `json:"emissive"`
}

// Documents maps document names to storage-relative paths.
type Documents map[string]string

// LoadScene fetches and decodes the named scene manifest.
func LoadScene(ctx context.Context, m *fetch.Manager, name string) (Scene, error) {
	doc, err := m.JSON(ctx, name, "")
	if err != nil {
		return Scene{}, err
	}
	var scene Scene
	if err := json.Unmarshal(doc, &scene); err != nil {
		return Scene{}, platformerrors.Wrap(platformerrors.CodeAssetDecodeError, "decode scene manifest", err)
	}
	return scene, nil
}

// LoadDocuments fetches and decodes the named documents manifest.
func LoadDocuments(ctx context.Context, m *fetch.Manager, name string) (Documents, error) {
	doc, err := m.JSON(ctx, name, "")
	if err != nil {
		return nil, err
	}
	var documents Documents
	if err := json.Unmarshal(doc, &documents); err != nil {
		return nil, platformerrors.Wrap(platformerrors.CodeAssetDecodeError, "decode documents manifest", err)
	}
	return documents, nil
}

// TexturePaths returns the scene's declared texture paths in a stable
// order: sorted by role key. Index i of the returned slice corresponds to
// index i of TextureRoles for the same scene.
func (s Scene) TexturePaths() []string {
	roles := s.TextureRoles()
	paths := make([]string, len(roles))
	for i, role := range roles {
		paths[i] = s.Textures[role]
	}
	return paths
}

// TextureRoles returns the scene's texture role keys sorted for stable
// ordering.
func (s Scene) TextureRoles() []string {
	roles := make([]string, 0, len(s.Textures))
	for role := range s.Textures {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}
