package service

import (
	"context"
	"fmt"
	"os"

	"graphstack-keeper/services"

	"github.com/spf13/cobra"
)

var restartCmd = &cobra.Command{
	Use:   "restart <name>",
	Short: "Restart one service by name",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := services.GetSupervisor().RestartService(context.Background(), args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "restart %s failed: %v\n", args[0], err)
			os.Exit(1)
		}
		fmt.Printf("service %s restarted\n", args[0])
	},
}

func init() {
	serviceCmd.AddCommand(restartCmd)
}
