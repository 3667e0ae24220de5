package services

import (
	"context"
	"fmt"
	"strings"

	"graphstack-keeper/internal/logger"
	"graphstack-keeper/internal/models"
	"graphstack-keeper/internal/utils"
)

// DockerService answers every question about the container engine. All CLI
// text parsing lives behind it so the rest of the supervisor only sees typed
// results.
type DockerService struct {
	runner utils.CommandRunner
}

func NewDockerService(runner utils.CommandRunner) *DockerService {
	return &DockerService{runner: runner}
}

func (d *DockerService) dockerCmd(args string) string {
	return utils.QuotePath(utils.LookupTool("docker")) + " " + args
}

/**
 * Determine the consolidated container runtime status
 * @param {context.Context} ctx - Context for cancellation and timeout
 * @returns {models.SystemStatus} Consolidated installed/running/compose state
 * @description
 * - Engine version failure means the engine is not installed
 * - Daemon info failure means installed but not running
 * - Compose plugin is probed first, the legacy standalone tool second
 * - A running engine without compose is a degraded-but-reportable state,
 *   carried in the error string rather than returned as an error
 * - No retries here; retries belong to callers
 */
func (d *DockerService) CheckSystem(ctx context.Context) models.SystemStatus {
	status := models.SystemStatus{}

	version, err := d.runner.Run(ctx, d.dockerCmd("--version"))
	if err != nil {
		logger.Debugf("Docker binary not found: %v", err)
		return status
	}
	status.IsInstalled = true
	status.Version = version

	if _, err := d.runner.Run(ctx, d.dockerCmd("info --format '{{.ServerVersion}}'")); err != nil {
		logger.Debugf("Docker daemon not responding: %v", err)
		return status
	}
	status.IsRunning = true

	if composeVersion, err := d.runner.Run(ctx, d.dockerCmd("compose version --short")); err == nil {
		status.ComposeInstalled = true
		status.ComposeVersion = composeVersion
		return status
	}
	if composeVersion, err := d.runner.Run(ctx, utils.QuotePath(utils.LookupTool("docker-compose"))+" --version"); err == nil {
		status.ComposeInstalled = true
		status.ComposeLegacy = true
		status.ComposeVersion = composeVersion
		return status
	}

	status.Error = "docker is running but neither the compose plugin nor docker-compose is installed"
	return status
}

// isNoSuchObject classifies the engine's "container does not exist" answer,
// which is a valid result for callers, not an error.
func isNoSuchObject(err error) bool {
	cmdErr, ok := err.(*models.CommandError)
	if !ok {
		return false
	}
	stderr := strings.ToLower(cmdErr.Stderr)
	return strings.Contains(stderr, "no such object") ||
		strings.Contains(stderr, "no such container")
}

/**
 * Query the lifecycle state of one container by name
 * @param {string} name - Container name
 * @returns {string} Engine lifecycle state string ("running", "exited", ...)
 * @returns {bool} Whether the container exists at all
 * @returns {error} Only genuine command failures; absence is not an error
 */
func (d *DockerService) ContainerState(ctx context.Context, name string) (string, bool, error) {
	out, err := d.runner.Run(ctx, d.dockerCmd(fmt.Sprintf("inspect --format '{{.State.Status}}' %s", name)))
	if err != nil {
		if isNoSuchObject(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return strings.TrimSpace(out), true, nil
}

// ContainerHealth returns the engine-native health check status for the
// container, or "" when no health check is configured.
func (d *DockerService) ContainerHealth(ctx context.Context, name string) (string, error) {
	out, err := d.runner.Run(ctx, d.dockerCmd(fmt.Sprintf(
		"inspect --format '{{if .State.Health}}{{.State.Health.Status}}{{end}}' %s", name)))
	if err != nil {
		if isNoSuchObject(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(out), nil
}

/**
 * Sample point-in-time resource usage of one container
 * @param {string} name - Container name
 * @returns {*models.ServiceMetrics} CPU/memory/network sample
 * @returns {error} Returns error when sampling or parsing fails
 * @description
 * - Stats format is "CPU%;MemUsage;NetIO", semicolon separated
 * - Callers degrade metrics to nil on failure instead of failing the query
 */
func (d *DockerService) ContainerStats(ctx context.Context, name string) (*models.ServiceMetrics, error) {
	out, err := d.runner.Run(ctx, d.dockerCmd(fmt.Sprintf(
		"stats --no-stream --format '{{.CPUPerc}};{{.MemUsage}};{{.NetIO}}' %s", name)))
	if err != nil {
		return nil, err
	}
	parts := strings.Split(strings.TrimSpace(out), ";")
	if len(parts) != 3 {
		return nil, fmt.Errorf("unexpected stats output %q", out)
	}
	return &models.ServiceMetrics{
		CPUPercent:  strings.TrimSpace(parts[0]),
		MemoryUsage: strings.TrimSpace(parts[1]),
		NetworkIO:   strings.TrimSpace(parts[2]),
	}, nil
}

// ImagePresent reports whether the image is available locally.
func (d *DockerService) ImagePresent(ctx context.Context, image string) bool {
	_, err := d.runner.Run(ctx, d.dockerCmd("image inspect --format '{{.Id}}' "+image))
	return err == nil
}

// LoadImage loads an image from an archive file.
func (d *DockerService) LoadImage(ctx context.Context, archivePath string) error {
	_, err := d.runner.Run(ctx, d.dockerCmd("load -i "+utils.QuotePath(archivePath)))
	return err
}
