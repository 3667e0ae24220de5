package service

import (
	"context"
	"fmt"
	"os"

	"graphstack-keeper/services"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start <name>",
	Short: "Start one service by name",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := services.GetSupervisor().StartService(context.Background(), args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "start %s failed: %v\n", args[0], err)
			os.Exit(1)
		}
		fmt.Printf("service %s started\n", args[0])
	},
}

func init() {
	serviceCmd.AddCommand(startCmd)
}
