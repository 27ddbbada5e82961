package manifest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/louisbranch.dev/internal/platform/assets/cache"
	"github.com/louisbranch/louisbranch.dev/internal/platform/assets/fetch"
	"github.com/louisbranch/louisbranch.dev/internal/platform/assets/manifest"
	"github.com/louisbranch/louisbranch.dev/internal/platform/assets/resolver"
)

const earthManifest = `{
	"textures": {
		"day": "textures/earth/day.jpg",
		"night": "textures/earth/night.jpg",
		"clouds": "textures/earth/clouds.png"
	},
	"animation": {"rotationSpeed": 0.05, "orbitSpeed": 0.01},
	"materials": {"surface": {"roughness": 0.8}}
}`

func newManager(t *testing.T, handler http.HandlerFunc) *fetch.Manager {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	res, err := resolver.NewR2(ts.URL)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	return fetch.NewManager(res, cache.New(), ts.Client())
}

func TestLoadScene(t *testing.T) {
	manager := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/earth.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(earthManifest))
	})

	scene, err := manifest.LoadScene(context.Background(), manager, "earth.json")
	if err != nil {
		t.Fatalf("load scene: %v", err)
	}
	if got := scene.Textures["day"]; got != "textures/earth/day.jpg" {
		t.Fatalf("Textures[day] = %q, want %q", got, "textures/earth/day.jpg")
	}
	if scene.Animation.RotationSpeed != 0.05 {
		t.Fatalf("RotationSpeed = %v, want 0.05", scene.Animation.RotationSpeed)
	}
	if got := scene.Materials["surface"].Roughness; got != 0.8 {
		t.Fatalf("Materials[surface].Roughness = %v, want 0.8", got)
	}
}

func TestLoadScene_LenientOnMissingFields(t *testing.T) {
	manager := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"textures": {"day": "textures/earth/day.jpg"}}`))
	})

	scene, err := manifest.LoadScene(context.Background(), manager, "earth.json")
	if err != nil {
		t.Fatalf("load scene: %v", err)
	}
	if scene.Animation.RotationSpeed != 0 {
		t.Fatalf("expected zero-valued animation, got %v", scene.Animation)
	}
	if len(scene.Materials) != 0 {
		t.Fatalf("expected no materials, got %v", scene.Materials)
	}
}

func TestTexturePaths_StableRoleOrder(t *testing.T) {
	scene := manifest.Scene{Textures: map[string]string{
		"night":  "textures/earth/night.jpg",
		"day":    "textures/earth/day.jpg",
		"clouds": "textures/earth/clouds.png",
	}}

	roles := scene.TextureRoles()
	want := []string{"clouds", "day", "night"}
	for i := range want {
		if roles[i] != want[i] {
			t.Fatalf("roles[%d] = %q, want %q", i, roles[i], want[i])
		}
	}

	paths := scene.TexturePaths()
	if paths[1] != "textures/earth/day.jpg" {
		t.Fatalf("paths[1] = %q, want the path for role %q", paths[1], "day")
	}
}

func TestLoadDocuments(t *testing.T) {
	manager := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/documents.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"resume": "documents/resume.pdf", "thesis": "documents/thesis.pdf"}`))
	})

	documents, err := manifest.LoadDocuments(context.Background(), manager, "documents.json")
	if err != nil {
		t.Fatalf("load documents: %v", err)
	}
	if got := documents["resume"]; got != "documents/resume.pdf" {
		t.Fatalf("documents[resume] = %q, want %q", got, "documents/resume.pdf")
	}
}
