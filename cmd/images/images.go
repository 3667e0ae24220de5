package images

import (
	"context"
	"fmt"
	"os"

	"graphstack-keeper/cmd/root"
	"graphstack-keeper/services"

	"github.com/spf13/cobra"
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Manage the bundled service images",
}

var ensureCmd = &cobra.Command{
	Use:   "ensure",
	Short: "Load any missing service images from the bundled archives",
	Run: func(cmd *cobra.Command, args []string) {
		sup := services.GetSupervisor()
		if !sup.EnsureImagesLoaded(context.Background()) {
			fmt.Fprintln(os.Stderr, "image provisioning failed, see logs for details")
			os.Exit(1)
		}
		fmt.Println("all service images present")
	},
}

func init() {
	imagesCmd.AddCommand(ensureCmd)
	root.RootCmd.AddCommand(imagesCmd)
}
