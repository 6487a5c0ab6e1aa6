package cmd

import (
	"log/slog"
	"os"

	"github.com/cmxu/geoimages/internal/imagecmd"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "geoimages",
		Short: "Batch tools for the geolocation guessing game's image gallery",
		Long: `Geoimages manages the public image gallery of the geolocation guessing game.

It can wipe all public images, find geotagged landmark photos on Wikimedia Commons,
and download, shrink and upload those photos to the curated gallery.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	cmd.AddCommand(imagecmd.NewCleanupCmd())
	cmd.AddCommand(newLandmarksCmd())

	return cmd
}
