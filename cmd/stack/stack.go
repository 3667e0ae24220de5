package stack

import (
	"graphstack-keeper/cmd/root"

	"github.com/spf13/cobra"
)

var stackCmd = &cobra.Command{
	Use:   "stack",
	Short: "Whole-stack operations (up/stop/down/status)",
	Long:  `Whole-stack operations (up/stop/down/status)`,
}

const stackExample = `  # start the whole stack and wait for convergence
  graphstack-keeper stack up`

func init() {
	root.RootCmd.AddCommand(stackCmd)

	stackCmd.Example = stackExample
}
