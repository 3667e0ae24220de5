package services

import (
	"context"
	"strings"
	"testing"

	"graphstack-keeper/internal/models"
)

func newTestDocker(e *engineFixture) (*DockerService, *fakeRunner) {
	runner := &fakeRunner{respond: e.handle}
	return NewDockerService(runner), runner
}

func TestCheckSystemNotInstalled(t *testing.T) {
	e := healthyEngine()
	e.installed = false
	docker, _ := newTestDocker(e)

	sys := docker.CheckSystem(context.Background())
	if sys.IsInstalled || sys.IsRunning || sys.ComposeInstalled {
		t.Fatalf("expected everything false, got %+v", sys)
	}
}

func TestCheckSystemDaemonDown(t *testing.T) {
	e := healthyEngine()
	e.daemon = false
	docker, _ := newTestDocker(e)

	sys := docker.CheckSystem(context.Background())
	if !sys.IsInstalled {
		t.Fatal("expected IsInstalled true")
	}
	if sys.IsRunning {
		t.Fatal("expected IsRunning false")
	}
}

func TestCheckSystemComposePlugin(t *testing.T) {
	docker, _ := newTestDocker(healthyEngine())

	sys := docker.CheckSystem(context.Background())
	if !sys.IsInstalled || !sys.IsRunning || !sys.ComposeInstalled {
		t.Fatalf("expected fully available runtime, got %+v", sys)
	}
	if sys.ComposeLegacy {
		t.Fatal("plugin must be preferred over the legacy tool")
	}
	if sys.ComposeVersion != "2.27.0" {
		t.Fatalf("unexpected compose version %q", sys.ComposeVersion)
	}
}

func TestCheckSystemLegacyCompose(t *testing.T) {
	e := healthyEngine()
	e.composePlugin = false
	e.composeLegacy = true
	docker, _ := newTestDocker(e)

	sys := docker.CheckSystem(context.Background())
	if !sys.ComposeInstalled || !sys.ComposeLegacy {
		t.Fatalf("expected legacy compose detected, got %+v", sys)
	}
}

func TestCheckSystemNoCompose(t *testing.T) {
	e := healthyEngine()
	e.composePlugin = false
	docker, _ := newTestDocker(e)

	sys := docker.CheckSystem(context.Background())
	if !sys.IsRunning {
		t.Fatal("expected IsRunning true")
	}
	if sys.ComposeInstalled {
		t.Fatal("expected ComposeInstalled false")
	}
	if sys.Error == "" {
		t.Fatal("expected a degraded-state explanation")
	}
}

func TestContainerStateAbsentIsNotAnError(t *testing.T) {
	docker, _ := newTestDocker(healthyEngine())

	state, exists, err := docker.ContainerState(context.Background(), "graphstack-meta")
	if err != nil {
		t.Fatalf("absence must not be an error, got %v", err)
	}
	if exists || state != "" {
		t.Fatalf("expected absent container, got state=%q exists=%v", state, exists)
	}
}

func TestContainerStateGenuineFailure(t *testing.T) {
	runner := &fakeRunner{respond: func(cmd string) (string, error) {
		return "", commandFailed(cmd, "permission denied")
	}}
	docker := NewDockerService(runner)

	_, _, err := docker.ContainerState(context.Background(), "graphstack-meta")
	if err == nil {
		t.Fatal("expected the command failure to surface")
	}
	if _, ok := err.(*models.CommandError); !ok {
		t.Fatalf("expected *models.CommandError, got %T", err)
	}
}

func TestContainerStateRunning(t *testing.T) {
	e := healthyEngine()
	e.containers["graphstack-meta"] = &containerFixture{state: "running", health: "healthy"}
	docker, _ := newTestDocker(e)

	state, exists, err := docker.ContainerState(context.Background(), "graphstack-meta")
	if err != nil {
		t.Fatalf("ContainerState: %v", err)
	}
	if !exists || state != "running" {
		t.Fatalf("expected running container, got state=%q exists=%v", state, exists)
	}
}

func TestContainerHealthNoCheckConfigured(t *testing.T) {
	e := healthyEngine()
	e.containers["graphstack-studio"] = &containerFixture{state: "running"}
	docker, _ := newTestDocker(e)

	health, err := docker.ContainerHealth(context.Background(), "graphstack-studio")
	if err != nil {
		t.Fatalf("ContainerHealth: %v", err)
	}
	if health != "" {
		t.Fatalf("expected empty health status, got %q", health)
	}
}

func TestContainerStatsParsing(t *testing.T) {
	e := healthyEngine()
	e.containers["graphstack-graph"] = &containerFixture{
		state: "running",
		stats: "3.14%;512MiB / 4GiB;10kB / 20kB",
	}
	docker, _ := newTestDocker(e)

	metrics, err := docker.ContainerStats(context.Background(), "graphstack-graph")
	if err != nil {
		t.Fatalf("ContainerStats: %v", err)
	}
	if metrics.CPUPercent != "3.14%" {
		t.Fatalf("unexpected CPU sample %q", metrics.CPUPercent)
	}
	if metrics.MemoryUsage != "512MiB / 4GiB" {
		t.Fatalf("unexpected memory sample %q", metrics.MemoryUsage)
	}
	if metrics.NetworkIO != "10kB / 20kB" {
		t.Fatalf("unexpected network sample %q", metrics.NetworkIO)
	}
}

func TestContainerStatsMalformedOutput(t *testing.T) {
	e := healthyEngine()
	e.containers["graphstack-graph"] = &containerFixture{state: "running", stats: "garbage"}
	docker, _ := newTestDocker(e)

	if _, err := docker.ContainerStats(context.Background(), "graphstack-graph"); err == nil {
		t.Fatal("expected a parse error for malformed stats output")
	}
}

func TestImagePresent(t *testing.T) {
	e := healthyEngine()
	e.images["graphstack/meta:latest"] = false
	docker, _ := newTestDocker(e)

	if docker.ImagePresent(context.Background(), "graphstack/meta:latest") {
		t.Fatal("expected missing image")
	}
	if !docker.ImagePresent(context.Background(), "graphstack/storage:latest") {
		t.Fatal("expected present image")
	}
}

func TestIsNoSuchObjectClassification(t *testing.T) {
	cases := []struct {
		stderr string
		want   bool
	}{
		{"Error: No such object: graphstack-meta", true},
		{"Error response from daemon: No such container: graphstack-meta", true},
		{"permission denied", false},
	}
	for _, tc := range cases {
		err := &models.CommandError{Command: "docker inspect", Stderr: tc.stderr}
		if got := isNoSuchObject(err); got != tc.want {
			t.Errorf("isNoSuchObject(%q) = %v, want %v", tc.stderr, got, tc.want)
		}
	}
	if isNoSuchObject(context.Canceled) {
		t.Error("non-command errors must not classify as absence")
	}
	if !strings.Contains((&models.CommandError{Command: "x", Stderr: "boom"}).Error(), "boom") {
		t.Error("CommandError must carry stderr in its message")
	}
}
