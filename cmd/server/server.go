package server

import (
	"context"

	"graphstack-keeper/cmd/root"
	"graphstack-keeper/controllers"
	"graphstack-keeper/internal/compose"
	"graphstack-keeper/internal/config"
	"graphstack-keeper/internal/env"
	"graphstack-keeper/internal/logger"
	"graphstack-keeper/internal/middleware"
	"graphstack-keeper/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP supervision service",
	Long:  `Start the HTTP service the desktop UI polls for stack status, lifecycle control and logs.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := startServer(context.Background()); err != nil {
			logger.Fatal(err)
		}
	},
}

func startServer(ctx context.Context) error {
	env.Daemon = true

	// Without the rendered compose definition no stack operation can succeed.
	if err := compose.EnsureComposeFile(); err != nil {
		return err
	}

	if config.Config.Server.Mode != "" {
		gin.SetMode(config.Config.Server.Mode)
	}
	router := gin.Default()
	router.Use(middleware.MetricsMiddleware())

	supervisor := services.GetSupervisor()
	controllers.NewSystemController(supervisor).RegisterRoutes(router)
	controllers.NewServiceController(supervisor).RegisterRoutes(router)

	logger.Infof("Supervision service listening on %s", config.Config.Server.Address)
	return router.Run(config.Config.Server.Address)
}

func init() {
	root.RootCmd.AddCommand(serverCmd)
}
