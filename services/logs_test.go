package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"graphstack-keeper/internal/models"
)

func TestGetServiceLogsUnknownService(t *testing.T) {
	s, runner := newTestSupervisor(t, healthyEngine())

	_, err := s.GetServiceLogs(context.Background(), "gateway")
	var notFound *models.ServiceNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ServiceNotFoundError, got %v", err)
	}
	if runner.callCount() != 0 {
		t.Fatal("an unknown name must fail before any engine command")
	}
}

func TestGetServiceLogsScopedTailCommand(t *testing.T) {
	e := healthyEngine()
	e.logOutput = "starting up\nall good"
	s, runner := newTestSupervisor(t, e)

	lines, err := s.GetServiceLogs(context.Background(), "Storage Service")
	if err != nil {
		t.Fatalf("GetServiceLogs: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	cmds := runner.callsContaining("logs --no-color")
	if len(cmds) != 1 {
		t.Fatalf("expected one log fetch, got %v", cmds)
	}
	if !strings.Contains(cmds[0], "--tail 50") || !strings.HasSuffix(cmds[0], " storage") {
		t.Fatalf("log fetch must be bounded and scoped, got %q", cmds[0])
	}
}

func TestGetServiceLogsRuntimeUnavailable(t *testing.T) {
	e := healthyEngine()
	e.daemon = false
	s, _ := newTestSupervisor(t, e)

	_, err := s.GetServiceLogs(context.Background(), "meta")
	var unavailable *models.RuntimeUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected RuntimeUnavailableError, got %v", err)
	}
}

func TestClassifyLogLines(t *testing.T) {
	out := "INFO  server listening on :9669\r\n" +
		"ERROR failed to open partition 3\n" +
		"\n" +
		"WARNING disk usage above threshold\n" +
		"plain text line"

	lines := classifyLogLines(out)
	if len(lines) != 4 {
		t.Fatalf("blank lines must be skipped, got %d lines", len(lines))
	}

	wantLevels := []string{"info", "error", "warn", "info"}
	for i, want := range wantLevels {
		if lines[i].Level != want {
			t.Errorf("line %d: level %q, want %q", i, lines[i].Level, want)
		}
	}
	if strings.HasSuffix(lines[0].Message, "\r") {
		t.Error("carriage returns must be trimmed")
	}
	if lines[1].Timestamp.IsZero() {
		t.Error("lines must carry a retrieval timestamp")
	}
}

func TestClassifyLogLinesEmptyOutput(t *testing.T) {
	if lines := classifyLogLines(""); len(lines) != 0 {
		t.Fatalf("empty output must classify to no lines, got %d", len(lines))
	}
}
