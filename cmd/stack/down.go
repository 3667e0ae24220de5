package stack

import (
	"context"
	"fmt"
	"os"

	"graphstack-keeper/services"

	"github.com/spf13/cobra"
)

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Stop and remove the stack's containers",
	Run: func(cmd *cobra.Command, args []string) {
		result := services.GetSupervisor().CleanupServices(context.Background())
		if result.Success {
			fmt.Println("Stack removed")
		} else {
			fmt.Printf("Stack cleanup failed: %s\n", result.Error)
			os.Exit(1)
		}
	},
}

func init() {
	stackCmd.AddCommand(downCmd)
}
