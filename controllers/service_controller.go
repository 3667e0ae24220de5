package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"graphstack-keeper/internal/config"
	"graphstack-keeper/internal/models"
	"graphstack-keeper/services"

	"github.com/gin-gonic/gin"
)

type ServiceController struct {
	supervisor *services.Supervisor
}

/**
 * Create new Service controller instance
 * @param {*services.Supervisor} supervisor - Supervisor instance
 * @returns {*ServiceController} New Service controller instance
 * @description
 * - Exposes whole-stack and per-service lifecycle routes plus status and logs
 */
func NewServiceController(supervisor *services.Supervisor) *ServiceController {
	return &ServiceController{
		supervisor: supervisor,
	}
}

func (s *ServiceController) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/graphstack/api/v1")
	api.GET("/services", s.GetServicesStatus)
	api.POST("/services/start", s.StartServices)
	api.POST("/services/stop", s.StopServices)
	api.POST("/services/cleanup", s.CleanupServices)
	api.GET("/services/:name", s.GetService)
	api.POST("/services/:name/start", s.StartService)
	api.POST("/services/:name/stop", s.StopService)
	api.POST("/services/:name/restart", s.RestartService)
	api.GET("/services/:name/logs", s.GetServiceLogs)
}

func writeServiceError(c *gin.Context, err error) {
	var notFound *models.ServiceNotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, &models.ErrorResponse{
			Code:  "service.notexist",
			Error: err.Error(),
		})
		return
	}
	var unavailable *models.RuntimeUnavailableError
	if errors.As(err, &unavailable) {
		c.JSON(http.StatusServiceUnavailable, &models.ErrorResponse{
			Code:  "runtime.unavailable",
			Error: err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, &models.ErrorResponse{
		Error: err.Error(),
	})
}

// GetServicesStatus lists the status of every supervised service
//
//	@Summary		List service status
//	@Description	Status snapshot of all supervised services
//	@Tags			Services
//	@Produce		json
//	@Success		200	{object}	models.StatusSnapshot
//	@Router			/graphstack/api/v1/services [get]
func (s *ServiceController) GetServicesStatus(c *gin.Context) {
	c.JSON(200, s.supervisor.GetServicesStatus(c.Request.Context()))
}

// GetService returns the status of one service
//
//	@Summary		Get service status
//	@Description	Status of one service, addressed by identity or display name
//	@Tags			Services
//	@Produce		json
//	@Param			name	path		string	true	"Service name"
//	@Success		200		{object}	models.ServiceStatus
//	@Failure		404		{object}	models.ErrorResponse
//	@Router			/graphstack/api/v1/services/{name} [get]
func (s *ServiceController) GetService(c *gin.Context) {
	name := c.Param("name")
	def := config.FindService(name)
	if def == nil {
		c.JSON(http.StatusNotFound, &models.ErrorResponse{
			Code:  "service.notexist",
			Error: fmt.Sprintf("service [%s] isn't exist", name),
		})
		return
	}
	snapshot := s.supervisor.GetServicesStatus(c.Request.Context())
	c.JSON(200, snapshot[def.Name])
}

// StartServices starts the whole stack
//
//	@Summary		Start the stack
//	@Description	Start all services in dependency order and wait for convergence
//	@Tags			Services
//	@Produce		json
//	@Success		200	{object}	models.OperationResult
//	@Router			/graphstack/api/v1/services/start [post]
func (s *ServiceController) StartServices(c *gin.Context) {
	result := s.supervisor.StartServices(c.Request.Context(), nil)
	c.JSON(200, result)
}

// StopServices stops the whole stack, keeping containers
//
//	@Summary		Stop the stack
//	@Description	Stop all services; containers are retained
//	@Tags			Services
//	@Produce		json
//	@Success		200	{object}	models.OperationResult
//	@Router			/graphstack/api/v1/services/stop [post]
func (s *ServiceController) StopServices(c *gin.Context) {
	c.JSON(200, s.supervisor.StopServices(c.Request.Context()))
}

// CleanupServices removes the stack's containers
//
//	@Summary		Remove the stack
//	@Description	Stop and remove all stack containers
//	@Tags			Services
//	@Produce		json
//	@Success		200	{object}	models.OperationResult
//	@Router			/graphstack/api/v1/services/cleanup [post]
func (s *ServiceController) CleanupServices(c *gin.Context) {
	c.JSON(200, s.supervisor.CleanupServices(c.Request.Context()))
}

// StartService starts a specific service by name
//
//	@Summary		Start service
//	@Description	Start a specific service by its name
//	@Tags			Services
//	@Produce		json
//	@Param			name	path		string	true	"Service name"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		503		{object}	models.ErrorResponse
//	@Router			/graphstack/api/v1/services/{name}/start [post]
func (s *ServiceController) StartService(c *gin.Context) {
	if err := s.supervisor.StartService(c.Request.Context(), c.Param("name")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "success"})
}

// StopService stops a specific service by name
//
//	@Summary		Stop service
//	@Description	Stop a specific service by its name
//	@Tags			Services
//	@Produce		json
//	@Param			name	path		string	true	"Service name"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		503		{object}	models.ErrorResponse
//	@Router			/graphstack/api/v1/services/{name}/stop [post]
func (s *ServiceController) StopService(c *gin.Context) {
	if err := s.supervisor.StopService(c.Request.Context(), c.Param("name")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "success"})
}

// RestartService restarts a specific service by name
//
//	@Summary		Restart service
//	@Description	Restart a specific service by its name
//	@Tags			Services
//	@Produce		json
//	@Param			name	path		string	true	"Service name"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		503		{object}	models.ErrorResponse
//	@Router			/graphstack/api/v1/services/{name}/restart [post]
func (s *ServiceController) RestartService(c *gin.Context) {
	if err := s.supervisor.RestartService(c.Request.Context(), c.Param("name")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "success"})
}

// GetServiceLogs returns recent classified log lines for one service
//
//	@Summary		Get service logs
//	@Description	Bounded tail of the service's log output with severity classification
//	@Tags			Services
//	@Produce		json
//	@Param			name	path		string	true	"Service name or display name"
//	@Success		200		{array}		models.LogLine
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		503		{object}	models.ErrorResponse
//	@Router			/graphstack/api/v1/services/{name}/logs [get]
func (s *ServiceController) GetServiceLogs(c *gin.Context) {
	lines, err := s.supervisor.GetServiceLogs(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(200, lines)
}
