package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"graphstack-keeper/internal/compose"
	"graphstack-keeper/internal/config"
	"graphstack-keeper/internal/logger"
	"graphstack-keeper/internal/models"
)

// StatusCache holds the process-wide last-known-good status snapshot. It is
// replaced atomically as a whole map, never patched field by field, so
// readers can never observe a torn snapshot.
type StatusCache struct {
	mu       sync.RWMutex
	snapshot models.StatusSnapshot
	updated  time.Time
}

func NewStatusCache() *StatusCache {
	return &StatusCache{}
}

// Get returns a copy of the cached snapshot and whether one exists.
func (c *StatusCache) Get() (models.StatusSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil {
		return nil, false
	}
	out := make(models.StatusSnapshot, len(c.snapshot))
	for k, v := range c.snapshot {
		out[k] = v
	}
	return out, true
}

// Replace swaps in a new snapshot wholesale.
func (c *StatusCache) Replace(snapshot models.StatusSnapshot) {
	c.mu.Lock()
	c.snapshot = snapshot
	c.updated = time.Now()
	c.mu.Unlock()
}

// Age returns how old the cached snapshot is.
func (c *StatusCache) Age() (time.Duration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil {
		return 0, false
	}
	return time.Since(c.updated), true
}

/**
 * Query the status of every supervised service
 * @param {context.Context} ctx - Context for cancellation and timeout
 * @returns {models.StatusSnapshot} One entry per declared service
 * @description
 * Decision order:
 * 1. While a stack start is in flight, a cached snapshot is returned
 *    verbatim: staleness is accepted over contending with the launch
 * 2. Without a compose definition on disk, or with the runtime unreachable,
 *    an all-not_created snapshot is synthesized without container queries
 * 3. Otherwise every service is evaluated concurrently (inspect, health,
 *    resource sample)
 * 4. The cache is replaced only when every service evaluated cleanly; a
 *    partial result is returned but never cached
 */
func (s *Supervisor) GetServicesStatus(ctx context.Context) models.StatusSnapshot {
	if s.starting.Load() {
		if cached, ok := s.cache.Get(); ok {
			return cached
		}
	}

	if !compose.Exists() {
		return syntheticSnapshot()
	}
	sys := s.GetSystemStatus(ctx)
	if !sys.IsInstalled || !sys.IsRunning {
		return syntheticSnapshot()
	}

	snapshot, complete := s.computeStatus(ctx)
	if complete {
		s.cache.Replace(snapshot)
	}
	return snapshot
}

// computeStatus evaluates all services concurrently and reports whether
// every one of them was evaluated successfully.
func (s *Supervisor) computeStatus(ctx context.Context) (models.StatusSnapshot, bool) {
	defs := config.StartOrder()
	prev, _ := s.cache.Get()

	results := make([]models.ServiceStatus, len(defs))
	errs := make([]error, len(defs))

	var g errgroup.Group
	for i := range defs {
		i := i
		def := defs[i]
		g.Go(func() error {
			results[i], errs[i] = s.evaluateService(ctx, &def, prev)
			return nil
		})
	}
	g.Wait()

	snapshot := make(models.StatusSnapshot, len(defs))
	complete := true
	for i := range defs {
		if errs[i] != nil {
			complete = false
			logger.Warnf("Evaluating service [%s] failed: %v", defs[i].Name, errs[i])
		}
		snapshot[defs[i].Name] = results[i]
	}
	return snapshot, complete
}

func (s *Supervisor) evaluateService(ctx context.Context, def *config.ServiceDefinition, prev models.StatusSnapshot) (models.ServiceStatus, error) {
	status := models.ServiceStatus{
		Name:  def.Name,
		Ports: append([]int(nil), def.Ports...),
	}
	now := time.Now().Format(time.RFC3339)

	state, exists, err := s.docker.ContainerState(ctx, def.ContainerName())
	if err != nil {
		status.Status = models.StatusError
		status.Health = models.HealthInfo{State: models.HealthUnknown, LastCheck: now}
		return status, err
	}
	if !exists {
		status.Status = models.StatusNotCreated
		status.Health = models.HealthInfo{State: models.HealthNotCreated, LastCheck: now}
		return status, nil
	}

	status.Status = mapLifecycleStatus(state)

	health := s.health.Resolve(ctx, def)
	failures := 0
	if health == models.HealthUnhealthy {
		if old, ok := prev[def.Name]; ok {
			failures = old.Health.FailureCount
		}
		failures++
	}
	status.Health = models.HealthInfo{State: health, LastCheck: now, FailureCount: failures}

	if status.Status == models.StatusRunning {
		metrics, err := s.docker.ContainerStats(ctx, def.ContainerName())
		if err != nil {
			// Degrade the sample to zero values rather than failing the query.
			logger.Debugf("Stats sample for [%s] failed: %v", def.Name, err)
			metrics = &models.ServiceMetrics{}
		}
		status.Metrics = metrics
	}
	return status, nil
}

// mapLifecycleStatus normalizes the engine's state strings.
func mapLifecycleStatus(state string) models.LifecycleStatus {
	switch state {
	case "running":
		return models.StatusRunning
	case "created", "exited", "paused":
		return models.StatusStopped
	default:
		return models.StatusError
	}
}

// syntheticSnapshot is the all-not_created view used when the stack was
// never started or the runtime cannot be asked.
func syntheticSnapshot() models.StatusSnapshot {
	now := time.Now().Format(time.RFC3339)
	snapshot := make(models.StatusSnapshot)
	for _, def := range config.StartOrder() {
		snapshot[def.Name] = models.ServiceStatus{
			Name:   def.Name,
			Status: models.StatusNotCreated,
			Health: models.HealthInfo{State: models.HealthNotCreated, LastCheck: now},
			Ports:  append([]int(nil), def.Ports...),
		}
	}
	return snapshot
}
