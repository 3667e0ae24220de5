package service

import (
	"context"
	"fmt"
	"os"

	"graphstack-keeper/services"

	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs <name>",
	Short: "Show the most recent log lines of one service",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lines, err := services.GetSupervisor().GetServiceLogs(context.Background(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "logs %s failed: %v\n", args[0], err)
			os.Exit(1)
		}
		for _, line := range lines {
			fmt.Printf("[%s] %s\n", line.Level, line.Message)
		}
	},
}

func init() {
	serviceCmd.AddCommand(logsCmd)
}
