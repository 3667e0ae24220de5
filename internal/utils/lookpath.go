package utils

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

// Packaged desktop apps inherit a restricted PATH, so the engine binary is
// resolved against well-known install locations before falling back to the
// shell's own lookup.
var wellKnownPaths = map[string]map[string][]string{
	"darwin": {
		"docker": {
			"/usr/local/bin/docker",
			"/opt/homebrew/bin/docker",
			"/Applications/Docker.app/Contents/Resources/bin/docker",
		},
		"docker-compose": {
			"/usr/local/bin/docker-compose",
			"/opt/homebrew/bin/docker-compose",
			"/Applications/Docker.app/Contents/Resources/bin/docker-compose",
		},
	},
	"linux": {
		"docker": {
			"/usr/bin/docker",
			"/usr/local/bin/docker",
			"/snap/bin/docker",
		},
		"docker-compose": {
			"/usr/bin/docker-compose",
			"/usr/local/bin/docker-compose",
		},
	},
	"windows": {
		"docker": {
			`C:\Program Files\Docker\Docker\resources\bin\docker.exe`,
		},
		"docker-compose": {
			`C:\Program Files\Docker\Docker\resources\bin\docker-compose.exe`,
		},
	},
}

var (
	toolPathMu    sync.Mutex
	toolPathCache = make(map[string]string)
)

/**
 * Resolve the absolute path of an engine tool
 * @param {string} name - Tool name ("docker", "docker-compose")
 * @returns {string} Resolved path, or the bare name when resolution fails
 * @description
 * - Probes the platform's well-known install locations first
 * - Falls back to PATH lookup via exec.LookPath
 * - Caches the first successful resolution for the process lifetime
 * - A bare-name result leaves failure detection to the actual invocation
 */
func LookupTool(name string) string {
	toolPathMu.Lock()
	defer toolPathMu.Unlock()

	if cached, ok := toolPathCache[name]; ok {
		return cached
	}

	if candidates, ok := wellKnownPaths[runtime.GOOS][name]; ok {
		for _, candidate := range candidates {
			if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
				toolPathCache[name] = candidate
				return candidate
			}
		}
	}

	if resolved, err := exec.LookPath(name); err == nil {
		toolPathCache[name] = resolved
		return resolved
	}

	// Not cached: the tool may get installed while the process runs.
	return name
}

// QuotePath wraps a path in double quotes when it contains whitespace so it
// survives the shell's word splitting. Plain quoting, not strconv.Quote:
// cmd.exe does not undo backslash escaping.
func QuotePath(path string) string {
	if strings.ContainsAny(path, " \t") {
		return `"` + path + `"`
	}
	return path
}

// ResetToolCache clears the resolution cache. Test hook.
func ResetToolCache() {
	toolPathMu.Lock()
	defer toolPathMu.Unlock()
	toolPathCache = make(map[string]string)
}
