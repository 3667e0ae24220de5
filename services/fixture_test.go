package services

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"graphstack-keeper/internal/compose"
	"graphstack-keeper/internal/config"
	"graphstack-keeper/internal/env"
	"graphstack-keeper/internal/models"
)

// containerFixture is the simulated engine-side state of one container.
// An empty state means the container does not exist.
type containerFixture struct {
	state    string
	health   string
	stats    string
	statsErr bool
}

// engineFixture stands in for the container engine behind the command
// runner. It answers the same command lines the real engine would, keyed
// on the stable substrings of the text contract.
type engineFixture struct {
	installed     bool
	daemon        bool
	composePlugin bool
	composeLegacy bool

	containers map[string]*containerFixture
	images     map[string]bool
	failLoad   map[string]bool
	logOutput  string

	// onUp runs when a whole-stack "up -d" is issued, so tests can
	// simulate containers appearing.
	onUp func()
}

func healthyEngine() *engineFixture {
	return &engineFixture{
		installed:     true,
		daemon:        true,
		composePlugin: true,
		containers:    map[string]*containerFixture{},
		images: map[string]bool{
			"graphstack/meta:latest":    true,
			"graphstack/storage:latest": true,
			"graphstack/graph:latest":   true,
			"graphstack/studio:latest":  true,
		},
		failLoad: map[string]bool{},
	}
}

func (e *engineFixture) setAllRunningHealthy() {
	for _, def := range config.StartOrder() {
		health := "healthy"
		if !def.NativeCheck {
			health = ""
		}
		e.containers[def.ContainerName()] = &containerFixture{
			state:  "running",
			health: health,
			stats:  "1.25%;100MiB / 2GiB;1.2kB / 3.4kB",
		}
	}
}

func noSuchObject(cmd, name string) error {
	return &models.CommandError{
		Command: cmd,
		Stderr:  "Error: No such object: " + name,
	}
}

func commandFailed(cmd, stderr string) error {
	return &models.CommandError{Command: cmd, Stderr: stderr}
}

func lastField(cmd string) string {
	fields := strings.Fields(cmd)
	return fields[len(fields)-1]
}

func (e *engineFixture) handle(cmd string) (string, error) {
	switch {
	case strings.Contains(cmd, "docker-compose") && strings.Contains(cmd, "--version"):
		if e.composeLegacy {
			return "docker-compose version 1.29.2, build 5becea4c", nil
		}
		return "", commandFailed(cmd, "docker-compose: command not found")

	case strings.Contains(cmd, "compose version"):
		if e.composePlugin {
			return "2.27.0", nil
		}
		return "", commandFailed(cmd, "docker: 'compose' is not a docker command")

	case strings.Contains(cmd, "--version"):
		if e.installed {
			return "Docker version 28.0.1, build abcdef0", nil
		}
		return "", commandFailed(cmd, "docker: command not found")

	case strings.Contains(cmd, "info --format"):
		if e.daemon {
			return "28.0.1", nil
		}
		return "", commandFailed(cmd, "Cannot connect to the Docker daemon")

	case strings.Contains(cmd, "image inspect"):
		image := lastField(cmd)
		if e.images[image] {
			return "sha256:d34db33f", nil
		}
		return "", noSuchObject(cmd, image)

	case strings.Contains(cmd, "load -i"):
		archive := filepath.Base(lastField(cmd))
		if e.failLoad[archive] {
			return "", commandFailed(cmd, "open "+archive+": no such file or directory")
		}
		return "Loaded image: " + archive, nil

	case strings.Contains(cmd, "{{if .State.Health}}"):
		name := lastField(cmd)
		c := e.containers[name]
		if c == nil || c.state == "" {
			return "", noSuchObject(cmd, name)
		}
		return c.health, nil

	case strings.Contains(cmd, "{{.State.Status}}"):
		name := lastField(cmd)
		c := e.containers[name]
		if c == nil || c.state == "" {
			return "", noSuchObject(cmd, name)
		}
		return c.state, nil

	case strings.Contains(cmd, "stats --no-stream"):
		name := lastField(cmd)
		c := e.containers[name]
		if c == nil || c.state == "" {
			return "", noSuchObject(cmd, name)
		}
		if c.statsErr {
			return "", commandFailed(cmd, "stats collection failed")
		}
		return c.stats, nil

	case strings.Contains(cmd, "up -d"):
		if e.onUp != nil && strings.HasSuffix(strings.TrimSpace(cmd), "up -d") {
			e.onUp()
		}
		return "", nil

	case strings.Contains(cmd, "logs --no-color"):
		return e.logOutput, nil

	case strings.Contains(cmd, " stop"), strings.Contains(cmd, " down"), strings.Contains(cmd, " restart"):
		return "", nil
	}
	return "", commandFailed(cmd, "unexpected command")
}

// fakeRunner records every command line and delegates answers to a handler.
type fakeRunner struct {
	mu      sync.Mutex
	calls   []string
	respond func(command string) (string, error)
}

func (f *fakeRunner) Run(ctx context.Context, command string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, command)
	f.mu.Unlock()
	return f.respond(command)
}

func (f *fakeRunner) RunDir(ctx context.Context, dir string, command string) (string, error) {
	return f.Run(ctx, command)
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeRunner) callsContaining(substr string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.calls {
		if strings.Contains(c, substr) {
			out = append(out, c)
		}
	}
	return out
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Supervisor: config.SupervisorConfig{
			PollInterval:  1,
			MaxAttempts:   3,
			SettleDelay:   1,
			ImageCacheTTL: 0,
			LogTail:       50,
			HTTPFallback:  false,
			PortCheck:     false,
		},
	}
}

// newTestSupervisor wires a supervisor to the simulated engine with sleeping
// disabled. The stack home is redirected to a per-test directory.
func newTestSupervisor(t *testing.T, e *engineFixture) (*Supervisor, *fakeRunner) {
	t.Helper()
	redirectStackDir(t)

	runner := &fakeRunner{respond: e.handle}
	s := NewSupervisor(testConfig(), runner)
	s.sleep = func(time.Duration) {}
	return s, runner
}

func redirectStackDir(t *testing.T) {
	t.Helper()
	orig := env.GraphStackDir
	env.GraphStackDir = t.TempDir()
	t.Cleanup(func() { env.GraphStackDir = orig })
}

func writeComposeFixture(t *testing.T) {
	t.Helper()
	if err := compose.EnsureComposeFile(); err != nil {
		t.Fatalf("EnsureComposeFile: %v", err)
	}
}
