package config

import (
	"fmt"
	"strings"
)

// ContainerPrefix is the fixed naming convention shared with the compose
// definition: the container for service "meta" is named "graphstack-meta".
const ContainerPrefix = "graphstack-"

/**
 * Static definition of one supervised service
 * @property {string} name - Canonical service identity (compose service name)
 * @property {string} displayName - Human readable name shown by the UI layer
 * @property {[]int} ports - Host TCP ports the service binds
 * @property {int} healthPort - Port probed by the HTTP health fallback
 * @property {string} healthPath - Path probed by the HTTP health fallback
 * @property {bool} nativeCheck - Whether the container carries an engine-native health check
 * @property {[]string} dependsOn - Identities this service depends on
 * @property {string} image - Container image reference
 * @property {string} archive - Image archive file name used by offline loading
 */
type ServiceDefinition struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	Ports       []int    `json:"ports"`
	HealthPort  int      `json:"healthPort"`
	HealthPath  string   `json:"healthPath"`
	NativeCheck bool     `json:"nativeCheck"`
	DependsOn   []string `json:"dependsOn"`
	Image       string   `json:"image"`
	Archive     string   `json:"archive"`
}

// ContainerName returns the container name derived from the service identity.
func (d *ServiceDefinition) ContainerName() string {
	return ContainerPrefix + d.Name
}

// services is the whole topology, in start order. Shutdown walks it in
// reverse. The studio container ships without an engine-native health check,
// so the health resolver treats running as healthy for it.
var services = []ServiceDefinition{
	{
		Name:        "meta",
		DisplayName: "Meta Service",
		Ports:       []int{9559, 19559},
		HealthPort:  19559,
		HealthPath:  "/status",
		NativeCheck: true,
	},
	{
		Name:        "storage",
		DisplayName: "Storage Service",
		Ports:       []int{9779, 19779},
		HealthPort:  19779,
		HealthPath:  "/status",
		NativeCheck: true,
		DependsOn:   []string{"meta"},
	},
	{
		Name:        "graph",
		DisplayName: "Graph Service",
		Ports:       []int{9669, 19669},
		HealthPort:  19669,
		HealthPath:  "/status",
		NativeCheck: true,
		DependsOn:   []string{"meta", "storage"},
	},
	{
		Name:        "studio",
		DisplayName: "Studio",
		Ports:       []int{7001},
		HealthPort:  7001,
		HealthPath:  "/status",
		DependsOn:   []string{"graph"},
	},
}

// Image references and offline archive names follow the identity directly;
// image provisioning consumes the archives in declared order.
func init() {
	for i := range services {
		services[i].Image = fmt.Sprintf("graphstack/%s:latest", services[i].Name)
		services[i].Archive = services[i].Name + ".tar.gz"
	}
	if err := ValidateTopology(services); err != nil {
		panic(fmt.Sprintf("invalid service topology: %v", err))
	}
}

/**
 * Validate the service dependency graph
 * @param {[]ServiceDefinition} defs - Topology table to validate
 * @returns {error} Returns error when a dependency is unknown or the graph has a cycle
 * @description
 * - Checks every dependency edge references a defined service
 * - Detects cycles with a depth-first walk over the edges
 * - Runs once at load time; violation is a fatal configuration error
 */
func ValidateTopology(defs []ServiceDefinition) error {
	byName := make(map[string]*ServiceDefinition, len(defs))
	for i := range defs {
		byName[defs[i].Name] = &defs[i]
	}
	for _, def := range defs {
		for _, dep := range def.DependsOn {
			if _, ok := byName[dep]; !ok {
				return fmt.Errorf("service %s depends on unknown service %s", def.Name, dep)
			}
		}
	}

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(defs))
	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visiting:
			return fmt.Errorf("dependency cycle through service %s", name)
		case done:
			return nil
		}
		state[name] = visiting
		for _, dep := range byName[name].DependsOn {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[name] = done
		return nil
	}
	for _, def := range defs {
		if err := visit(def.Name); err != nil {
			return err
		}
	}
	return nil
}

// StartOrder returns the services in declared startup order (meta, storage,
// graph, studio).
func StartOrder() []ServiceDefinition {
	out := make([]ServiceDefinition, len(services))
	copy(out, services)
	return out
}

// StopOrder returns the services in reverse startup order.
func StopOrder() []ServiceDefinition {
	out := make([]ServiceDefinition, len(services))
	for i := range services {
		out[len(services)-1-i] = services[i]
	}
	return out
}

// GetService looks a service up by its canonical identity.
func GetService(name string) *ServiceDefinition {
	for i := range services {
		if services[i].Name == name {
			return &services[i]
		}
	}
	return nil
}

/**
 * Find service by canonical identity or display name
 * @param {string} name - Identity or display name, matched case-insensitively
 * @returns {*ServiceDefinition} Returns the definition, nil when no match
 * @description
 * - The calling layer may supply either form, so both are accepted
 */
func FindService(name string) *ServiceDefinition {
	for i := range services {
		if strings.EqualFold(services[i].Name, name) ||
			strings.EqualFold(services[i].DisplayName, name) {
			return &services[i]
		}
	}
	return nil
}

// DeclaredPorts returns every host port declared across the topology.
func DeclaredPorts() []int {
	var ports []int
	for _, svc := range services {
		ports = append(ports, svc.Ports...)
	}
	return ports
}
