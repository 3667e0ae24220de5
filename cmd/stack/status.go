package stack

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"graphstack-keeper/internal/config"
	"graphstack-keeper/services"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of every supervised service",
	Run: func(cmd *cobra.Command, args []string) {
		showStackStatus(context.Background())
	},
}

/**
 * Print the status of all services as a table
 * @param {context.Context} ctx - Context for request cancellation and timeout
 * @description
 * - Walks the topology in declared start order
 * - Shows lifecycle status, health verdict and the CPU sample when present
 */
func showStackStatus(ctx context.Context) {
	snapshot := services.GetSupervisor().GetServicesStatus(ctx)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPORTS\tSTATUS\tHEALTH\tCPU")
	for _, def := range config.StartOrder() {
		st := snapshot[def.Name]
		ports := make([]string, len(st.Ports))
		for i, p := range st.Ports {
			ports[i] = fmt.Sprintf("%d", p)
		}
		cpu := "-"
		if st.Metrics != nil && st.Metrics.CPUPercent != "" {
			cpu = st.Metrics.CPUPercent
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			def.Name, strings.Join(ports, ","), st.Status, st.Health.State, cpu)
	}
	w.Flush()
}

func init() {
	stackCmd.AddCommand(statusCmd)
}
