package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"graphstack-keeper/internal/compose"
	"graphstack-keeper/internal/config"
	"graphstack-keeper/internal/env"
	"graphstack-keeper/internal/logger"
	"graphstack-keeper/internal/models"
	"graphstack-keeper/internal/utils"
)

// Supervisor coordinates whole-stack and per-service lifecycle operations.
// It owns the status cache and the servicesStarting flag; all shared mutable
// state lives here, constructor-provided, never in package globals.
type Supervisor struct {
	cfg    *config.AppConfig
	runner utils.CommandRunner
	docker *DockerService
	images *ImageManager
	health *HealthResolver
	cache  *StatusCache

	starting      atomic.Bool
	legacyCompose atomic.Bool
	startTime     time.Time
	sleep         func(time.Duration)
}

func NewSupervisor(cfg *config.AppConfig, runner utils.CommandRunner) *Supervisor {
	runner = &meteredRunner{inner: runner}
	docker := NewDockerService(runner)
	return &Supervisor{
		cfg:       cfg,
		runner:    runner,
		docker:    docker,
		images:    NewImageManager(docker, time.Duration(cfg.Supervisor.ImageCacheTTL)*time.Second),
		health:    NewHealthResolver(docker, cfg.Supervisor.HTTPFallback),
		cache:     NewStatusCache(),
		startTime: time.Now(),
		sleep:     time.Sleep,
	}
}

var supervisor *Supervisor

// GetSupervisor returns the process-wide supervisor, creating it on first
// use with the shell-backed command runner.
func GetSupervisor() *Supervisor {
	if supervisor == nil {
		supervisor = NewSupervisor(&config.Config, utils.NewShellRunner())
	}
	return supervisor
}

// CheckDockerStatus reports whether the engine is installed and its daemon
// answers queries.
func (s *Supervisor) CheckDockerStatus(ctx context.Context) bool {
	sys := s.GetSystemStatus(ctx)
	return sys.IsInstalled && sys.IsRunning
}

// GetSystemStatus returns the consolidated runtime status and remembers
// which compose flavor is available for subsequent stack commands.
func (s *Supervisor) GetSystemStatus(ctx context.Context) models.SystemStatus {
	sys := s.docker.CheckSystem(ctx)
	if sys.ComposeInstalled {
		s.legacyCompose.Store(sys.ComposeLegacy)
	}
	return sys
}

// requireRuntime verifies the engine and compose layer are fully usable.
// Every mutating operation calls it first.
func (s *Supervisor) requireRuntime(ctx context.Context) error {
	sys := s.GetSystemStatus(ctx)
	switch {
	case !sys.IsInstalled:
		return &models.RuntimeUnavailableError{Reason: "docker is not installed"}
	case !sys.IsRunning:
		return &models.RuntimeUnavailableError{Reason: "docker daemon is not running"}
	case !sys.ComposeInstalled:
		return &models.RuntimeUnavailableError{Reason: sys.Error}
	}
	return nil
}

func (s *Supervisor) composeCmd(args string) string {
	path := utils.QuotePath(compose.Path())
	if s.legacyCompose.Load() {
		return fmt.Sprintf("%s -f %s %s", utils.QuotePath(utils.LookupTool("docker-compose")), path, args)
	}
	return fmt.Sprintf("%s compose -f %s %s", utils.QuotePath(utils.LookupTool("docker")), path, args)
}

/**
 * Start the whole stack and wait for health convergence
 * @param {context.Context} ctx - Context for cancellation and timeout
 * @param {func(models.StartProgress)} onProgress - Optional progress callback;
 *   coarse phases are reported under the synthetic "system" service
 * @returns {models.OperationResult} Structured outcome for the calling UI layer
 * @description
 * - Rejects a second concurrent start immediately, no queueing
 * - Phases: runtime check, compose definition, optional port pre-flight,
 *   image provisioning, detached "up", settle delay, bounded health polling
 * - Convergence means every service is running and healthy simultaneously
 * - The servicesStarting flag is cleared on every exit path
 * - Polling never writes the status cache, so concurrent status queries keep
 *   seeing the pre-start snapshot until the start finishes
 */
func (s *Supervisor) StartServices(ctx context.Context, onProgress func(models.StartProgress)) models.OperationResult {
	if !s.starting.CompareAndSwap(false, true) {
		return models.OperationResult{Success: false, Error: models.ErrAlreadyStarting.Error()}
	}
	defer s.starting.Store(false)

	RecordStackStart()
	maxAttempts := s.cfg.Supervisor.MaxAttempts
	report := func(service string, attempt int, state string) {
		if onProgress != nil {
			onProgress(models.StartProgress{
				Service:     service,
				Attempt:     attempt,
				MaxAttempts: maxAttempts,
				State:       state,
			})
		}
	}

	report("system", 0, "checking container runtime")
	if err := s.requireRuntime(ctx); err != nil {
		return s.startFailed(err)
	}

	if err := compose.EnsureComposeFile(); err != nil {
		return s.startFailed(err)
	}

	if s.cfg.Supervisor.PortCheck {
		report("system", 0, "checking port availability")
		if err := s.preflightPorts(ctx); err != nil {
			return s.startFailed(err)
		}
	}

	report("system", 0, "provisioning images")
	if !s.images.EnsureImagesLoaded(ctx, func(p models.ImageLoadProgress) {
		report("system", 0, fmt.Sprintf("loading image %s (%d/%d)", p.ImageName, p.Current, p.Total))
	}) {
		return s.startFailed(&models.ImageProvisioningError{
			Image: "stack images",
			Err:   fmt.Errorf("provisioning did not complete"),
		})
	}

	report("system", 0, "launching stack")
	if _, err := s.runner.Run(ctx, s.composeCmd("up -d")); err != nil {
		return s.startFailed(err)
	}

	// Containers need a moment before any inspection is meaningful.
	s.sleep(time.Duration(s.cfg.Supervisor.SettleDelay) * time.Second)

	interval := time.Duration(s.cfg.Supervisor.PollInterval) * time.Second
	var unhealthy []string
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		RecordHealthPoll()
		snapshot, _ := s.computeStatus(ctx)

		unhealthy = unhealthy[:0]
		for _, def := range config.StartOrder() {
			st := snapshot[def.Name]
			report(def.Name, attempt, string(st.Health.State))
			if st.Status != models.StatusRunning || st.Health.State != models.HealthHealthy {
				unhealthy = append(unhealthy, def.Name)
			}
		}

		if len(unhealthy) == 0 {
			logger.Infof("Stack converged after %d polling round(s)", attempt)
			return models.OperationResult{Success: true}
		}
		if attempt < maxAttempts {
			s.sleep(interval)
		}
	}

	return s.startFailed(&models.HealthTimeoutError{Unhealthy: append([]string(nil), unhealthy...)})
}

func (s *Supervisor) startFailed(err error) models.OperationResult {
	logger.Errorf("Stack start failed: %v", err)
	RecordStackStartFailure()
	return models.OperationResult{Success: false, Error: err.Error()}
}

/**
 * Reject a stack start when declared host ports are taken
 * @returns {error} *models.PortConflictError enumerating conflicting ports
 * @description
 * - Only services with no existing container are checked: ports held by the
 *   stack's own containers are not conflicts
 */
func (s *Supervisor) preflightPorts(ctx context.Context) error {
	var conflicts []int
	for _, def := range config.StartOrder() {
		_, exists, err := s.docker.ContainerState(ctx, def.ContainerName())
		if err != nil || exists {
			continue
		}
		for _, port := range def.Ports {
			// A port that accepts connections or refuses a bind is taken.
			if utils.CheckPortConnectable(port) || !utils.CheckPortListenable(port) {
				conflicts = append(conflicts, port)
			}
		}
	}
	if len(conflicts) > 0 {
		return &models.PortConflictError{Ports: conflicts}
	}
	return nil
}

// StopServices stops the stack's containers without removing them.
// Stopping already-stopped services is success, not error.
func (s *Supervisor) StopServices(ctx context.Context) models.OperationResult {
	if err := s.requireRuntime(ctx); err != nil {
		return models.OperationResult{Success: false, Error: err.Error()}
	}
	if _, err := s.runner.Run(ctx, s.composeCmd("stop")); err != nil {
		logger.Errorf("Stack stop failed: %v", err)
		return models.OperationResult{Success: false, Error: err.Error()}
	}
	return models.OperationResult{Success: true}
}

// CleanupServices removes the stack's containers entirely. Idempotent.
func (s *Supervisor) CleanupServices(ctx context.Context) models.OperationResult {
	if err := s.requireRuntime(ctx); err != nil {
		return models.OperationResult{Success: false, Error: err.Error()}
	}
	if _, err := s.runner.Run(ctx, s.composeCmd("down")); err != nil {
		logger.Errorf("Stack cleanup failed: %v", err)
		return models.OperationResult{Success: false, Error: err.Error()}
	}
	return models.OperationResult{Success: true}
}

// StartService starts one service through the compose layer. Per-service
// operations do not take the whole-stack starting flag.
func (s *Supervisor) StartService(ctx context.Context, name string) error {
	def := config.FindService(name)
	if def == nil {
		return &models.ServiceNotFoundError{Name: name}
	}
	if err := s.requireRuntime(ctx); err != nil {
		return err
	}
	if _, err := s.runner.Run(ctx, s.composeCmd("up -d "+def.Name)); err != nil {
		logger.Errorf("Start [%s] failed: %v", def.Name, err)
		return err
	}
	logger.Infof("Service [%s] started", def.Name)
	return nil
}

// StopService stops one service. Stopping a stopped service succeeds.
func (s *Supervisor) StopService(ctx context.Context, name string) error {
	def := config.FindService(name)
	if def == nil {
		return &models.ServiceNotFoundError{Name: name}
	}
	if err := s.requireRuntime(ctx); err != nil {
		return err
	}
	if _, err := s.runner.Run(ctx, s.composeCmd("stop "+def.Name)); err != nil {
		logger.Errorf("Stop [%s] failed: %v", def.Name, err)
		return err
	}
	logger.Infof("Service [%s] stopped", def.Name)
	return nil
}

// RestartService restarts one service.
func (s *Supervisor) RestartService(ctx context.Context, name string) error {
	def := config.FindService(name)
	if def == nil {
		return &models.ServiceNotFoundError{Name: name}
	}
	if err := s.requireRuntime(ctx); err != nil {
		return err
	}
	if _, err := s.runner.Run(ctx, s.composeCmd("restart "+def.Name)); err != nil {
		logger.Errorf("Restart [%s] failed: %v", def.Name, err)
		return err
	}
	logger.Infof("Service [%s] restarted", def.Name)
	return nil
}

// EnsureImagesLoaded delegates to the image manager.
func (s *Supervisor) EnsureImagesLoaded(ctx context.Context) bool {
	if err := s.requireRuntime(ctx); err != nil {
		logger.Errorf("Image provisioning skipped: %v", err)
		return false
	}
	return s.images.EnsureImagesLoaded(ctx, nil)
}

// GetImageLoadingProgress returns nil when no provisioning is in flight.
func (s *Supervisor) GetImageLoadingProgress() *models.ImageLoadProgress {
	return s.images.GetProgress()
}

// GetState is the introspection view exposed for debugging.
func (s *Supervisor) GetState() models.SupervisorState {
	state := models.SupervisorState{
		StartTime:        s.startTime.Format(time.RFC3339),
		ServicesStarting: s.starting.Load(),
		ImageProgress:    s.images.GetProgress(),
	}
	if age, ok := s.cache.Age(); ok {
		state.CachePresent = true
		state.CacheAgeSeconds = int(age / time.Second)
	}
	return state
}

// Uptime of the supervisor process, for the liveness endpoint.
func (s *Supervisor) Uptime() time.Duration {
	return time.Since(s.startTime)
}

/**
 * Build the liveness probe response of the keeper itself
 * @returns {models.HealthResponse} Version, uptime and key counters
 * @description
 * - Service health counts come from the regular status query path, so the
 *   cache-during-flight rule applies here as well
 */
func (s *Supervisor) GetHealthz(ctx context.Context) models.HealthResponse {
	snapshot := s.GetServicesStatus(ctx)
	healthyServices := 0
	for _, st := range snapshot {
		if st.Health.State == models.HealthHealthy {
			healthyServices++
		}
	}
	return models.HealthResponse{
		Version:   env.Version,
		StartTime: s.startTime.Format(time.RFC3339),
		Status:    "UP",
		Uptime:    s.Uptime().String(),
		Metrics: models.Metrics{
			TotalRequests:   GetTotalRequestCount(),
			ErrorRequests:   GetTotalErrorCount(),
			HealthyServices: healthyServices,
			TotalServices:   len(snapshot),
			StackStarts:     GetStackStartCount(),
		},
	}
}
