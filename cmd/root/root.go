package root

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "graphstack-keeper",
	Short: "Local graph database stack supervisor",
	Long:  `graphstack-keeper supervises the local graph database container stack: dependency-ordered startup, health resolution, per-service lifecycle control, log retrieval and image provisioning.`,
}
