package service

import (
	"context"
	"fmt"
	"os"

	"graphstack-keeper/services"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop <name>",
	Short: "Stop one service by name",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := services.GetSupervisor().StopService(context.Background(), args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "stop %s failed: %v\n", args[0], err)
			os.Exit(1)
		}
		fmt.Printf("service %s stopped\n", args[0])
	},
}

func init() {
	serviceCmd.AddCommand(stopCmd)
}
