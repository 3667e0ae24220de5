package env

import (
	"os"
	"path/filepath"
)

var Daemon bool = false
var ListenPort int = 0
var Version string = "dev"

// (default: %USERPROFILE%/.graphstack on Windows, $HOME/.graphstack on Linux/macOS)
var GraphStackDir string = GetGraphStackDir()

/**
 * Get graphstack directory path
 * @returns {string} Returns graphstack directory path
 */
func GetGraphStackDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".graphstack")
}
