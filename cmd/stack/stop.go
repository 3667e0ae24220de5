package stack

import (
	"context"
	"fmt"
	"os"

	"graphstack-keeper/services"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the whole stack (containers are retained)",
	Run: func(cmd *cobra.Command, args []string) {
		result := services.GetSupervisor().StopServices(context.Background())
		if result.Success {
			fmt.Println("Stack stopped")
		} else {
			fmt.Printf("Stack stop failed: %s\n", result.Error)
			os.Exit(1)
		}
	},
}

func init() {
	stackCmd.AddCommand(stopCmd)
}
