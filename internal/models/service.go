package models

import "time"

// LifecycleStatus is the container lifecycle state as reported by the engine.
type LifecycleStatus string

const (
	StatusRunning    LifecycleStatus = "running"
	StatusStopped    LifecycleStatus = "stopped"
	StatusError      LifecycleStatus = "error"
	StatusNotCreated LifecycleStatus = "not_created"
)

// HealthState is the normalized health verdict computed by the health
// resolver. No other component sets it; callers treat it as read-only.
type HealthState string

const (
	// HealthNotCreated means no corresponding container exists yet.
	HealthNotCreated HealthState = "not_created"
	// HealthUnknown means the container exists but its state could not be
	// determined.
	HealthUnknown HealthState = "unknown"
	// HealthStarting means the container runs but has not yet passed its
	// health check.
	HealthStarting HealthState = "starting"
	// HealthHealthy and HealthUnhealthy mirror the engine's native verdicts.
	HealthHealthy   HealthState = "healthy"
	HealthUnhealthy HealthState = "unhealthy"
)

/**
 * Result of one health evaluation
 * @property {HealthState} state - Normalized verdict
 * @property {string} lastCheck - Time of the last evaluation, RFC3339
 * @property {int} failureCount - Consecutive evaluations that came back unhealthy
 */
type HealthInfo struct {
	State        HealthState `json:"state"`
	LastCheck    string      `json:"lastCheck"`
	FailureCount int         `json:"failureCount"`
}

// ServiceMetrics is a point-in-time resource usage sample. Present only
// while the container is running.
type ServiceMetrics struct {
	CPUPercent  string `json:"cpuPercent" example:"1.25%"`
	MemoryUsage string `json:"memoryUsage" example:"85.3MiB / 7.7GiB"`
	NetworkIO   string `json:"networkIO" example:"1.2kB / 648B"`
}

/**
 * Point-in-time status of one supervised service
 * @property {LifecycleStatus} status - Container lifecycle state
 * @property {HealthInfo} health - Normalized health verdict
 * @property {*ServiceMetrics} metrics - Resource sample, non-nil iff status is running
 * @property {[]int} ports - Declared host ports (copied from the definition)
 * @property {[]LogLine} recentLogs - Bounded recent log buffer, may be empty
 */
type ServiceStatus struct {
	Name       string          `json:"name"`
	Status     LifecycleStatus `json:"status"`
	Health     HealthInfo      `json:"health"`
	Metrics    *ServiceMetrics `json:"metrics,omitempty"`
	Ports      []int           `json:"ports"`
	RecentLogs []LogLine       `json:"recentLogs,omitempty"`
}

// StatusSnapshot maps service identity to status. It is replaced wholesale
// after each full recomputation, never patched field by field.
type StatusSnapshot map[string]ServiceStatus

// LogLine is one classified line of service log output.
type LogLine struct {
	Level     string    `json:"level" example:"info"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

/**
 * Progress of one stack start, reported per polling round
 * @property {string} service - Service identity, or "system" for coarse phases
 * @property {int} attempt - Current polling attempt (1-based)
 * @property {int} maxAttempts - Attempt budget
 * @property {string} state - Health state or phase description
 */
type StartProgress struct {
	Service     string `json:"service"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"maxAttempts"`
	State       string `json:"state"`
}

// ImageLoadProgress exists only while image provisioning runs; nil signals
// "not currently loading".
type ImageLoadProgress struct {
	Current   int    `json:"current"`
	Total     int    `json:"total"`
	ImageName string `json:"imageName"`
}

// OperationResult is the structured outcome of whole-stack start/stop
// operations, rendered directly by the calling UI layer.
type OperationResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
