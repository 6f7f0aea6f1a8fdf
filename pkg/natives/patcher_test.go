package natives

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrogdreamStudios/launcher/pkg/fetch"
	"github.com/FrogdreamStudios/launcher/pkg/mojang"
)

const testDescriptor = `{
  "id": "1.18.2",
  "mainClass": "net.minecraft.client.main.Main",
  "customField": "survives the rewrite",
  "libraries": [
    {
      "name": "org.lwjgl:lwjgl:3.2.2",
      "natives": {"osx": "natives-macos"},
      "downloads": {
        "classifiers": {
          "natives-macos": {
            "path": "org/lwjgl/lwjgl/3.2.2/lwjgl-3.2.2-natives-macos.jar",
            "sha1": "0123456789abcdef",
            "size": 1024,
            "url": "https://libraries.example/lwjgl-3.2.2-natives-macos.jar"
          }
        }
      }
    },
    {
      "name": "com.mojang:datafixerupper:4.0.26",
      "downloads": {
        "artifact": {
          "path": "com/mojang/datafixerupper/4.0.26/datafixerupper-4.0.26.jar",
          "url": "https://libraries.example/datafixerupper-4.0.26.jar"
        }
      }
    }
  ]
}`

func testPatcher(t *testing.T, registryURL string) *Patcher {
	t.Helper()
	cfg := Config{
		RegistryURL: registryURL,
		Set: LibrarySet{
			Version:   "3.3.0",
			Group:     "org.lwjgl",
			Libraries: []string{"lwjgl"},
		},
		OSClassifier: "macos",
		NativesKey:   "osx",
		Arch:         "arm64",
	}
	fetcher := fetch.NewClient(fetch.Config{MaxRetries: 1})
	return NewPatcher(cfg, fetcher, nil)
}

func writeTestDescriptor(t *testing.T, root, versionID string) string {
	t.Helper()
	path := mojang.DescriptorPath(root, versionID)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(testDescriptor), 0o644))
	return path
}

func TestEnsurePatchedRewritesDescriptor(t *testing.T) {
	var fetches atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.Write([]byte("jar-bytes"))
	}))
	defer srv.Close()

	root := t.TempDir()
	path := writeTestDescriptor(t, root, "1.18.2")
	p := testPatcher(t, srv.URL)

	require.NoError(t, p.EnsurePatched(context.Background(), root, "1.18.2"))
	assert.Equal(t, int32(1), fetches.Load())

	jar := filepath.Join(mojang.LibrariesRoot(root), "org", "lwjgl", "lwjgl", "3.3.0", "lwjgl-3.3.0-natives-macos-arm64.jar")
	_, err := os.Stat(jar)
	require.NoError(t, err, "replacement natives jar not written")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "survives the rewrite", doc["customField"])

	libs := doc["libraries"].([]any)
	lwjgl := libs[0].(map[string]any)
	natives := lwjgl["natives"].(map[string]any)
	assert.Equal(t, "natives-macos-arm64", natives["osx"])

	classifiers := lwjgl["downloads"].(map[string]any)["classifiers"].(map[string]any)
	assert.NotContains(t, classifiers, "natives-macos")
	entry := classifiers["natives-macos-arm64"].(map[string]any)
	assert.Equal(t, "org/lwjgl/lwjgl/3.2.2/lwjgl-3.2.2-natives-macos-arm64.jar", entry["path"])
	assert.Equal(t, "", entry["sha1"])
	assert.Equal(t, float64(0), entry["size"])
	assert.Contains(t, entry["url"], "lwjgl-3.3.0-natives-macos-arm64.jar")

	// The non-natives library is untouched.
	other := libs[1].(map[string]any)
	assert.Equal(t, "com.mojang:datafixerupper:4.0.26", other["name"])
	assert.NotContains(t, other, "natives")
}

func TestEnsurePatchedIsIdempotent(t *testing.T) {
	var fetches atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.Write([]byte("jar-bytes"))
	}))
	defer srv.Close()

	root := t.TempDir()
	path := writeTestDescriptor(t, root, "1.18.2")
	p := testPatcher(t, srv.URL)

	require.NoError(t, p.EnsurePatched(context.Background(), root, "1.18.2"))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, p.EnsurePatched(context.Background(), root, "1.18.2"))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second), "second pass changed the descriptor")
	assert.Equal(t, int32(1), fetches.Load(), "artifact on disk was fetched again")
}

func TestEnsurePatchedFetchFailureIsNotFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	root := t.TempDir()
	writeTestDescriptor(t, root, "1.18.2")
	p := testPatcher(t, srv.URL)

	assert.NoError(t, p.EnsurePatched(context.Background(), root, "1.18.2"))
}

func TestEnsurePatchedMissingDescriptorIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jar-bytes"))
	}))
	defer srv.Close()

	p := testPatcher(t, srv.URL)
	err := p.EnsurePatched(context.Background(), t.TempDir(), "1.18.2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "descriptor")
}

func TestLoadLibrarySetDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "natives.yaml")
	require.NoError(t, os.WriteFile(path, []byte("libraries:\n  - lwjgl\n  - lwjgl-glfw\n"), 0o644))

	set, err := LoadLibrarySet(path)
	require.NoError(t, err)
	assert.Equal(t, "3.3.0", set.Version)
	assert.Equal(t, "org.lwjgl", set.Group)
	assert.Len(t, set.Libraries, 2)
}

func TestLoadLibrarySetEmptyListFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "natives.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 3.3.1\n"), 0o644))

	_, err := LoadLibrarySet(path)
	require.Error(t, err)
}
