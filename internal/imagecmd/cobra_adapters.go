package imagecmd

import (
	"errors"

	"github.com/cmxu/geoimages/internal/config"
	"github.com/spf13/cobra"
)

var errTokenRequired = errors.New("authentication token required: pass it as an argument or set WHEREAMI_AUTH_TOKEN")

// loadConfig reads the file named by the root --config flag, if any
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := ""
	if f := cmd.Flag("config"); f != nil {
		path = f.Value.String()
	}
	return config.Load(path)
}

// tokenFromArgs prefers the positional token at index i over the configured one
func tokenFromArgs(args []string, i int, cfg *config.Config) string {
	if len(args) > i && args[i] != "" {
		return args[i]
	}
	return cfg.AuthToken
}

// NewCleanupCmd creates the cleanup command that deletes every public image
func NewCleanupCmd() *cobra.Command {
	var dryRun bool
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "cleanup [auth_token]",
		Short: "Delete all public images from the gallery",
		Long: `Delete every image listed by the public images API.

The bearer token is taken from the argument or from WHEREAMI_AUTH_TOKEN.
The API base URL can be changed with WHEREAMI_API_BASE.`,
		Example: `  # Review what would be removed
  geoimages cleanup --dry-run

  # Delete without the confirmation prompt
  geoimages cleanup "$TOKEN" --yes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			token := tokenFromArgs(args, 0, cfg)
			if token == "" {
				return errTokenRequired
			}

			opts := cleanupOptions{token: token, dryRun: dryRun, assumeYes: assumeYes}
			return executeCleanup(cmd.Context(), cfg, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the images that would be deleted and exit")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// NewSearchCmd creates the landmarks search command
func NewSearchCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "search [landmarks_file]",
		Short: "Find geotagged Wikimedia Commons photos for a list of landmarks",
		Long: `Search Wikimedia Commons for one photo with a known location per landmark.

The landmarks file is a numbered list ("1. Eiffel Tower (Paris)"). Landmarks that
already have a result in the output file are skipped, so the command can be re-run.`,
		Example: `  geoimages landmarks search
  geoimages landmarks search my_landmarks.txt --output results.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			landmarksFile := "public_images/landmarks.txt"
			if len(args) > 0 {
				landmarksFile = args[0]
			}

			return executeSearch(cmd.Context(), cfg, landmarksFile, outputFile, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "public_images/landmark_images.json", "Results file (read for existing results, then rewritten)")

	return cmd
}

// NewUploadCmd creates the landmarks upload command
func NewUploadCmd() *cobra.Command {
	var failedOutput string
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "upload <json_file> [auth_token]",
		Short: "Download landmark photos and upload them to the curated gallery",
		Long: `Download each landmark photo, shrink it if needed, and upload it with its
location to the gallery. Entries that fail are written to a file that can be
passed back to this command.

Tokens expire after about an hour. Get a fresh token if uploads fail with 401 errors.`,
		Example: `  geoimages landmarks upload public_images/landmark_images.json "eyJ0eXAi..."
  WHEREAMI_AUTH_TOKEN=eyJ0eXAi... geoimages landmarks upload failed_landmark_uploads.json --yes`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			token := tokenFromArgs(args, 1, cfg)
			if token == "" {
				return errTokenRequired
			}

			opts := uploadOptions{token: token, failedOutput: failedOutput, assumeYes: assumeYes}
			return executeUpload(cmd.Context(), cfg, args[0], opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&failedOutput, "failed-output", "failed_landmark_uploads.json", "Where to write entries that failed to upload")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// NewExportCmd creates the landmarks export command
func NewExportCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "export <json_file>",
		Short: "Export landmark results to Parquet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeExport(args[0], outputFile, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "public_images/landmark_images.parquet", "Parquet output file")

	return cmd
}
