package stack

import (
	"context"
	"fmt"
	"os"

	"graphstack-keeper/internal/models"
	"graphstack-keeper/services"

	"github.com/spf13/cobra"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Start the whole stack",
	Run: func(cmd *cobra.Command, args []string) {
		startStack(context.Background())
	},
}

/**
 * Start the whole stack and print per-round progress
 * @param {context.Context} ctx - Context for request cancellation and timeout
 * @description
 * - Prints coarse phases and per-service health per polling round
 * - Prints the structured result the supervisor returns
 */
func startStack(ctx context.Context) {
	supervisor := services.GetSupervisor()
	result := supervisor.StartServices(ctx, func(p models.StartProgress) {
		if p.Attempt == 0 {
			fmt.Printf("[system] %s\n", p.State)
			return
		}
		fmt.Printf("[%s] attempt %d/%d: %s\n", p.Service, p.Attempt, p.MaxAttempts, p.State)
	})
	if result.Success {
		fmt.Println("Stack is up: all services are running and healthy")
	} else {
		fmt.Printf("Stack start failed: %s\n", result.Error)
		os.Exit(1)
	}
}

func init() {
	stackCmd.AddCommand(upCmd)
}
