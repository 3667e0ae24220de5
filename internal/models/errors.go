package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAlreadyStarting rejects a whole-stack start while another is in flight.
// The caller should wait and re-query status rather than retry.
var ErrAlreadyStarting = errors.New("stack start already in progress")

// CommandError records a failed external command together with its captured
// stderr. It is usually wrapped into one of the higher-level categories
// before reaching the caller.
type CommandError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("command %q failed: %s", e.Command, strings.TrimSpace(e.Stderr))
	}
	return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// RuntimeUnavailableError means the engine or its compose layer is missing
// or unreachable. User-actionable; not retried automatically.
type RuntimeUnavailableError struct {
	Reason string
}

func (e *RuntimeUnavailableError) Error() string {
	return "container runtime unavailable: " + e.Reason
}

// ImageProvisioningError means loading the bundled images failed. Safe to
// retry; partial loads are left in place.
type ImageProvisioningError struct {
	Image string
	Err   error
}

func (e *ImageProvisioningError) Error() string {
	return fmt.Sprintf("loading image %s failed: %v", e.Image, e.Err)
}

func (e *ImageProvisioningError) Unwrap() error { return e.Err }

// ServiceNotFoundError means the caller referenced an identity or display
// name with no match in the topology.
type ServiceNotFoundError struct {
	Name string
}

func (e *ServiceNotFoundError) Error() string {
	return fmt.Sprintf("service %q not found", e.Name)
}

// HealthTimeoutError names the services that never became healthy within
// the bounded polling window.
type HealthTimeoutError struct {
	Unhealthy []string
}

func (e *HealthTimeoutError) Error() string {
	return fmt.Sprintf("services did not become healthy in time: %s",
		strings.Join(e.Unhealthy, ", "))
}

// PortConflictError enumerates declared host ports already in use, found by
// the optional pre-flight scan.
type PortConflictError struct {
	Ports []int
}

func (e *PortConflictError) Error() string {
	parts := make([]string, len(e.Ports))
	for i, p := range e.Ports {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return "ports already in use: " + strings.Join(parts, ", ")
}
