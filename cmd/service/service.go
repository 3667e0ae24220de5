package service

import (
	"graphstack-keeper/cmd/root"

	"github.com/spf13/cobra"
)

var serviceCmd = &cobra.Command{
	Use:     "service",
	Short:   "Operate on a single supervised service",
	Example: "  graphstack-keeper service restart storage",
}

func init() {
	root.RootCmd.AddCommand(serviceCmd)
}
