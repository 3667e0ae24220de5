package services

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"graphstack-keeper/internal/config"
	"graphstack-keeper/internal/env"
	"graphstack-keeper/internal/logger"
	"graphstack-keeper/internal/models"
)

// ImageManager makes sure the stack's container images exist locally,
// loading them from the bundled archives when the registry is unreachable.
type ImageManager struct {
	docker   *DockerService
	cacheTTL time.Duration

	mu           sync.Mutex
	progress     *models.ImageLoadProgress
	lastVerified time.Time
}

func NewImageManager(docker *DockerService, cacheTTL time.Duration) *ImageManager {
	return &ImageManager{
		docker:   docker,
		cacheTTL: cacheTTL,
	}
}

// ArchiveDir is where the bundled image archives live after installation.
func (im *ImageManager) ArchiveDir() string {
	return filepath.Join(env.GraphStackDir, "images")
}

/**
 * Ensure every stack image is present locally
 * @param {context.Context} ctx - Context for cancellation and timeout
 * @param {func(models.ImageLoadProgress)} onProgress - Optional progress callback,
 *   invoked before each archive load starts
 * @returns {bool} Returns true when all images are available
 * @description
 * - Short-circuits on the presence check when everything is already loaded,
 *   so repeated calls after a full success return quickly
 * - A recent successful verification is cached for the configured TTL and
 *   skipped; the cache is invalidated on any provisioning failure
 * - Presence probing fails fast: the first missing image stops the scan
 * - Archives load in manifest (start) order; the first load failure aborts
 *   the attempt, leaving partial loads in place so a retry is cheap
 */
func (im *ImageManager) EnsureImagesLoaded(ctx context.Context, onProgress func(models.ImageLoadProgress)) bool {
	im.mu.Lock()
	if im.cacheTTL > 0 && !im.lastVerified.IsZero() && time.Since(im.lastVerified) < im.cacheTTL {
		im.mu.Unlock()
		return true
	}
	im.mu.Unlock()

	defs := config.StartOrder()

	allPresent := true
	for i := range defs {
		if !im.docker.ImagePresent(ctx, defs[i].Image) {
			allPresent = false
			break
		}
	}
	if allPresent {
		im.markVerified()
		return true
	}

	total := len(defs)
	for i := range defs {
		def := &defs[i]
		progress := models.ImageLoadProgress{
			Current:   i + 1,
			Total:     total,
			ImageName: def.Image,
		}
		im.setProgress(&progress)
		if onProgress != nil {
			onProgress(progress)
		}

		archive := filepath.Join(im.ArchiveDir(), def.Archive)
		logger.Infof("Loading image %s from %s (%d/%d)", def.Image, archive, i+1, total)
		if err := im.docker.LoadImage(ctx, archive); err != nil {
			logger.Errorf("Image provisioning aborted: %v",
				&models.ImageProvisioningError{Image: def.Image, Err: err})
			im.invalidate()
			return false
		}
	}

	im.markVerified()
	return true
}

// GetProgress returns the current loading progress, or nil when no
// provisioning is in flight.
func (im *ImageManager) GetProgress() *models.ImageLoadProgress {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.progress == nil {
		return nil
	}
	copied := *im.progress
	return &copied
}

func (im *ImageManager) setProgress(p *models.ImageLoadProgress) {
	im.mu.Lock()
	im.progress = p
	im.mu.Unlock()
}

func (im *ImageManager) markVerified() {
	im.mu.Lock()
	im.progress = nil
	im.lastVerified = time.Now()
	im.mu.Unlock()
}

func (im *ImageManager) invalidate() {
	im.mu.Lock()
	im.progress = nil
	im.lastVerified = time.Time{}
	im.mu.Unlock()
}
