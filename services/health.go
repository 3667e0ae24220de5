package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"graphstack-keeper/internal/config"
	"graphstack-keeper/internal/logger"
	"graphstack-keeper/internal/models"
)

// probeFunc issues one HTTP GET and returns status code and body. Injectable
// so the fallback chain is testable without a listening service.
type probeFunc func(ctx context.Context, url string) (int, string, error)

// HealthResolver computes the single normalized health verdict for a
// service from the engine's three independent, sometimes-absent signals:
// container existence, running flag, and native health-check status.
type HealthResolver struct {
	docker       *DockerService
	httpFallback bool
	probe        probeFunc
}

func NewHealthResolver(docker *DockerService, httpFallback bool) *HealthResolver {
	return &HealthResolver{
		docker:       docker,
		httpFallback: httpFallback,
		probe:        httpProbe,
	}
}

func httpProbe(ctx context.Context, url string) (int, string, error) {
	client := &http.Client{Timeout: 2 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return resp.StatusCode, "", err
	}
	return resp.StatusCode, string(body), nil
}

/**
 * Resolve the normalized health state of one service
 * @param {context.Context} ctx - Context for cancellation and timeout
 * @param {*config.ServiceDefinition} def - Service to evaluate
 * @returns {models.HealthState} Normalized verdict
 * @description
 * Decision procedure, stopping at the first conclusive answer:
 * 1. Container absent => not_created
 * 2. Container exists but not running => unknown
 * 3. Native health status healthy/unhealthy/starting maps directly
 * 4. No native check configured for a service shipped without one => running
 *    counts as healthy
 * 5. Otherwise => starting; a fresh container is never reported unhealthy
 *    just because its health check has not run yet
 * 6. Optional HTTP fallback can promote to healthy when the native signal is
 *    absent; probe failure never demotes the step 3-5 result
 */
func (hr *HealthResolver) Resolve(ctx context.Context, def *config.ServiceDefinition) models.HealthState {
	name := def.ContainerName()

	state, exists, err := hr.docker.ContainerState(ctx, name)
	if err != nil {
		logger.Debugf("Inspect %s failed: %v", name, err)
		return models.HealthUnknown
	}
	if !exists {
		return models.HealthNotCreated
	}
	if state != "running" {
		return models.HealthUnknown
	}

	native, err := hr.docker.ContainerHealth(ctx, name)
	if err != nil {
		logger.Debugf("Health inspect %s failed: %v", name, err)
		native = ""
	}
	switch native {
	case "healthy":
		return models.HealthHealthy
	case "unhealthy":
		return models.HealthUnhealthy
	case "starting":
		return models.HealthStarting
	}

	// Native status absent. Absence is not failure.
	if !def.NativeCheck {
		return models.HealthHealthy
	}

	result := models.HealthStarting
	if hr.httpFallback && def.HealthPort > 0 {
		url := fmt.Sprintf("http://localhost:%d%s", def.HealthPort, def.HealthPath)
		code, body, err := hr.probe(ctx, url)
		if err == nil && code == http.StatusOK {
			lower := strings.ToLower(body)
			if strings.Contains(lower, "ok") || strings.Contains(lower, "healthy") {
				return models.HealthHealthy
			}
		}
	}
	return result
}
