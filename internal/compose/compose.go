package compose

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"graphstack-keeper/internal/env"
	"graphstack-keeper/internal/logger"
)

// composeTemplate is the checked-in orchestration definition. Data and log
// directories are substituted once at first run; the rendered file is then
// the single compose definition every stack command is scoped to.
const composeTemplate = `services:
  meta:
    image: graphstack/meta:latest
    container_name: graphstack-meta
    ports:
      - "9559:9559"
      - "19559:19559"
    volumes:
      - "{{.DataDir}}/meta:/data/meta"
      - "{{.LogDir}}/meta:/logs"
    healthcheck:
      test: ["CMD", "curl", "-sf", "http://localhost:19559/status"]
      interval: 10s
      timeout: 5s
      retries: 3
      start_period: 10s
    restart: on-failure
  storage:
    image: graphstack/storage:latest
    container_name: graphstack-storage
    ports:
      - "9779:9779"
      - "19779:19779"
    volumes:
      - "{{.DataDir}}/storage:/data/storage"
      - "{{.LogDir}}/storage:/logs"
    depends_on:
      meta:
        condition: service_healthy
    healthcheck:
      test: ["CMD", "curl", "-sf", "http://localhost:19779/status"]
      interval: 10s
      timeout: 5s
      retries: 3
      start_period: 10s
    restart: on-failure
  graph:
    image: graphstack/graph:latest
    container_name: graphstack-graph
    ports:
      - "9669:9669"
      - "19669:19669"
    volumes:
      - "{{.LogDir}}/graph:/logs"
    depends_on:
      meta:
        condition: service_healthy
      storage:
        condition: service_healthy
    healthcheck:
      test: ["CMD", "curl", "-sf", "http://localhost:19669/status"]
      interval: 10s
      timeout: 5s
      retries: 3
      start_period: 10s
    restart: on-failure
  studio:
    image: graphstack/studio:latest
    container_name: graphstack-studio
    ports:
      - "7001:7001"
    depends_on:
      graph:
        condition: service_healthy
    restart: on-failure
`

type templateData struct {
	DataDir string
	LogDir  string
}

// Path returns the location of the rendered compose definition.
func Path() string {
	return filepath.Join(env.GraphStackDir, "compose.yaml")
}

// DataDir returns the absolute container data directory.
func DataDir() string {
	return filepath.Join(env.GraphStackDir, "data")
}

// LogDir returns the absolute container log directory.
func LogDir() string {
	return filepath.Join(env.GraphStackDir, "logs")
}

/**
 * Render and persist the compose definition on first run
 * @returns {error} Returns error when directories or the file cannot be written
 * @description
 * - Substitutes absolute data/log directory paths into the checked-in template
 * - Keeps an existing definition that already references the current data dir
 * - Re-renders when the definition is missing or references a stale data dir
 * - A render failure is fatal for initialization: no stack operation can
 *   succeed without the definition
 */
func EnsureComposeFile() error {
	path := Path()
	if Exists() {
		logger.Debugf("Compose definition already present at %s", path)
		return nil
	}

	for _, dir := range []string{DataDir(), LogDir(), filepath.Dir(path)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	tmpl, err := template.New("compose").Parse(composeTemplate)
	if err != nil {
		return fmt.Errorf("parse compose template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData{DataDir: DataDir(), LogDir: LogDir()}); err != nil {
		return fmt.Errorf("render compose template: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write compose definition: %w", err)
	}
	logger.Infof("Compose definition written to %s", path)
	return nil
}

/**
 * Check whether a valid compose definition exists
 * @returns {bool} Returns true when the file exists and references the current data dir
 * @description
 * - Presence plus content signal distinguishes "never started" from
 *   "previously started" in the status query path
 */
func Exists() bool {
	data, err := os.ReadFile(Path())
	if err != nil {
		return false
	}
	return strings.Contains(string(data), DataDir())
}
