package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"graphstack-keeper/internal/config"
	"graphstack-keeper/internal/models"
)

/**
 * Fetch and classify recent log lines for one service
 * @param {context.Context} ctx - Context for cancellation and timeout
 * @param {string} name - Service identity or display name, case-insensitive
 * @returns {[]models.LogLine} Classified lines, newest last
 * @returns {error} ServiceNotFoundError, RuntimeUnavailableError or command failure
 * @description
 * - Fetches a bounded tail window scoped to the one service
 * - Severity is a case-insensitive substring match on "error" and "warn",
 *   defaulting to info
 * - Timestamps are the retrieval time unless the line carries its own
 */
func (s *Supervisor) GetServiceLogs(ctx context.Context, name string) ([]models.LogLine, error) {
	def := config.FindService(name)
	if def == nil {
		return nil, &models.ServiceNotFoundError{Name: name}
	}
	if err := s.requireRuntime(ctx); err != nil {
		return nil, err
	}

	out, err := s.runner.Run(ctx, s.composeCmd(fmt.Sprintf(
		"logs --no-color --tail %d %s", s.cfg.Supervisor.LogTail, def.Name)))
	if err != nil {
		return nil, err
	}
	return classifyLogLines(out), nil
}

func classifyLogLines(out string) []models.LogLine {
	retrieved := time.Now()
	var lines []models.LogLine
	for _, raw := range strings.Split(out, "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lower := strings.ToLower(line)
		level := "info"
		if strings.Contains(lower, "error") {
			level = "error"
		} else if strings.Contains(lower, "warn") {
			level = "warn"
		}
		lines = append(lines, models.LogLine{
			Level:     level,
			Message:   line,
			Timestamp: retrieved,
		})
	}
	return lines
}
