package controllers

import (
	"graphstack-keeper/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type SystemController struct {
	supervisor *services.Supervisor
}

/**
 * Create new System controller instance
 * @param {*services.Supervisor} supervisor - Supervisor instance
 * @returns {*SystemController} New System controller instance
 * @description
 * - Exposes runtime availability, image provisioning and introspection routes
 */
func NewSystemController(supervisor *services.Supervisor) *SystemController {
	return &SystemController{
		supervisor: supervisor,
	}
}

func (sc *SystemController) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", sc.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/graphstack/api/v1")
	api.GET("/system", sc.GetSystemStatus)
	api.GET("/system/docker", sc.CheckDockerStatus)
	api.GET("/system/state", sc.GetState)
	api.POST("/images/ensure", sc.EnsureImagesLoaded)
	api.GET("/images/progress", sc.GetImageLoadingProgress)
}

// Healthz is the keeper's own liveness probe
//
//	@Summary		Keeper liveness probe
//	@Description	Return keeper version, uptime and key counters
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	models.HealthResponse
//	@Router			/healthz [get]
func (sc *SystemController) Healthz(c *gin.Context) {
	c.JSON(200, sc.supervisor.GetHealthz(c.Request.Context()))
}

// GetSystemStatus reports the consolidated container runtime status
//
//	@Summary		Container runtime status
//	@Description	Report whether the engine and compose layer are installed and running
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	models.SystemStatus
//	@Router			/graphstack/api/v1/system [get]
func (sc *SystemController) GetSystemStatus(c *gin.Context) {
	c.JSON(200, sc.supervisor.GetSystemStatus(c.Request.Context()))
}

// CheckDockerStatus reports engine reachability as a single boolean
//
//	@Summary		Engine reachability
//	@Description	True when the engine is installed and its daemon responds
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	map[string]bool
//	@Router			/graphstack/api/v1/system/docker [get]
func (sc *SystemController) CheckDockerStatus(c *gin.Context) {
	c.JSON(200, gin.H{"available": sc.supervisor.CheckDockerStatus(c.Request.Context())})
}

// GetState exposes supervisor flags and cache freshness for debugging
//
//	@Summary		Supervisor introspection
//	@Description	Current start-in-flight flag, image progress and cache age
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	models.SupervisorState
//	@Router			/graphstack/api/v1/system/state [get]
func (sc *SystemController) GetState(c *gin.Context) {
	c.JSON(200, sc.supervisor.GetState())
}

// EnsureImagesLoaded provisions the stack images from bundled archives
//
//	@Summary		Ensure stack images are loaded
//	@Description	Load missing images from the bundled archives; idempotent
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	map[string]bool
//	@Router			/graphstack/api/v1/images/ensure [post]
func (sc *SystemController) EnsureImagesLoaded(c *gin.Context) {
	loaded := sc.supervisor.EnsureImagesLoaded(c.Request.Context())
	c.JSON(200, gin.H{"loaded": loaded})
}

// GetImageLoadingProgress reports in-flight provisioning progress
//
//	@Summary		Image loading progress
//	@Description	Null while no provisioning is in flight
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	models.ImageLoadProgress
//	@Router			/graphstack/api/v1/images/progress [get]
func (sc *SystemController) GetImageLoadingProgress(c *gin.Context) {
	c.JSON(200, sc.supervisor.GetImageLoadingProgress())
}
