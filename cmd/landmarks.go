package cmd

import (
	"github.com/cmxu/geoimages/internal/imagecmd"
	"github.com/spf13/cobra"
)

func newLandmarksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "landmarks",
		Short: "Landmark photo search and upload",
		Long: `Find a geotagged Wikimedia Commons photo for each landmark in a list,
then download and upload those photos to the curated gallery.`,
	}

	cmd.AddCommand(imagecmd.NewSearchCmd())
	cmd.AddCommand(imagecmd.NewUploadCmd())
	cmd.AddCommand(imagecmd.NewExportCmd())

	return cmd
}
