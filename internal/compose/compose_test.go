package compose

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"graphstack-keeper/internal/env"
)

func redirectStackDir(t *testing.T) {
	t.Helper()
	orig := env.GraphStackDir
	env.GraphStackDir = t.TempDir()
	t.Cleanup(func() { env.GraphStackDir = orig })
}

func TestEnsureComposeFileRendersTemplate(t *testing.T) {
	redirectStackDir(t)

	if Exists() {
		t.Fatal("no definition may exist before the first render")
	}
	if err := EnsureComposeFile(); err != nil {
		t.Fatalf("EnsureComposeFile: %v", err)
	}
	if !Exists() {
		t.Fatal("definition must exist after rendering")
	}

	data, err := os.ReadFile(Path())
	if err != nil {
		t.Fatalf("read definition: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"container_name: graphstack-meta",
		"container_name: graphstack-storage",
		"container_name: graphstack-graph",
		"container_name: graphstack-studio",
		DataDir(),
		LogDir(),
		"condition: service_healthy",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("definition missing %q", want)
		}
	}
	if strings.Contains(content, "{{") {
		t.Error("template placeholders must be fully substituted")
	}
	// Studio ships without a health check of its own.
	studio := content[strings.Index(content, "studio:"):]
	if strings.Contains(studio, "healthcheck") {
		t.Error("the studio service must not declare a healthcheck")
	}
}

func TestEnsureComposeFileCreatesDirectories(t *testing.T) {
	redirectStackDir(t)

	if err := EnsureComposeFile(); err != nil {
		t.Fatalf("EnsureComposeFile: %v", err)
	}
	for _, dir := range []string{DataDir(), LogDir()} {
		if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
			t.Errorf("expected directory %s, err=%v", dir, err)
		}
	}
}

func TestEnsureComposeFileKeepsValidDefinition(t *testing.T) {
	redirectStackDir(t)

	if err := EnsureComposeFile(); err != nil {
		t.Fatalf("EnsureComposeFile: %v", err)
	}
	// A manual edit that still references the current data dir is kept.
	marker := "# locally tuned\n"
	data, _ := os.ReadFile(Path())
	if err := os.WriteFile(Path(), append([]byte(marker), data...), 0644); err != nil {
		t.Fatalf("rewrite definition: %v", err)
	}

	if err := EnsureComposeFile(); err != nil {
		t.Fatalf("EnsureComposeFile: %v", err)
	}
	after, _ := os.ReadFile(Path())
	if !strings.HasPrefix(string(after), marker) {
		t.Fatal("a valid existing definition must not be rewritten")
	}
}

func TestEnsureComposeFileReplacesStaleDefinition(t *testing.T) {
	redirectStackDir(t)

	if err := os.MkdirAll(filepath.Dir(Path()), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	// A definition pointing at another installation's data dir is stale.
	if err := os.WriteFile(Path(), []byte("services: {} # /some/other/home/.graphstack/data"), 0644); err != nil {
		t.Fatalf("write stale definition: %v", err)
	}
	if Exists() {
		t.Fatal("a stale definition must not count as existing")
	}

	if err := EnsureComposeFile(); err != nil {
		t.Fatalf("EnsureComposeFile: %v", err)
	}
	data, _ := os.ReadFile(Path())
	if !strings.Contains(string(data), DataDir()) {
		t.Fatal("the stale definition must be re-rendered for this installation")
	}
}

func TestPathsDeriveFromStackHome(t *testing.T) {
	redirectStackDir(t)

	if Path() != filepath.Join(env.GraphStackDir, "compose.yaml") {
		t.Fatalf("unexpected definition path %q", Path())
	}
	if DataDir() != filepath.Join(env.GraphStackDir, "data") {
		t.Fatalf("unexpected data dir %q", DataDir())
	}
	if LogDir() != filepath.Join(env.GraphStackDir, "logs") {
		t.Fatalf("unexpected log dir %q", LogDir())
	}
}
