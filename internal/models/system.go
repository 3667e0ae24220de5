package models

/**
 * Consolidated container runtime status
 * @property {bool} isInstalled - Engine binary is present
 * @property {bool} isRunning - Engine daemon answers queries
 * @property {string} version - Engine version string when available
 * @property {bool} composeInstalled - Compose plugin or legacy tool is present
 * @property {string} composeVersion - Compose version string when available
 * @property {string} error - Explanatory message for degraded states
 */
type SystemStatus struct {
	IsInstalled      bool   `json:"isInstalled"`
	IsRunning        bool   `json:"isRunning"`
	Version          string `json:"version,omitempty"`
	ComposeInstalled bool   `json:"composeInstalled"`
	ComposeLegacy    bool   `json:"composeLegacy,omitempty"`
	ComposeVersion   string `json:"composeVersion,omitempty"`
	Error            string `json:"error,omitempty"`
}

// ErrorResponse is the JSON error body returned by the HTTP API.
type ErrorResponse struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

// SupervisorState is the introspection view exposed by the server for
// debugging: flags and cache freshness, not service status.
type SupervisorState struct {
	StartTime        string             `json:"startTime"`
	ServicesStarting bool               `json:"servicesStarting"`
	ImageProgress    *ImageLoadProgress `json:"imageProgress,omitempty"`
	CacheAgeSeconds  int                `json:"cacheAgeSeconds"`
	CachePresent     bool               `json:"cachePresent"`
}
