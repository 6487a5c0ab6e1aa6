package imagecmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cmxu/geoimages/internal/config"
	"github.com/cmxu/geoimages/internal/gallery"
	"github.com/cmxu/geoimages/internal/prompt"
)

type cleanupOptions struct {
	token     string
	dryRun    bool
	assumeYes bool
}

func executeCleanup(ctx context.Context, cfg *config.Config, opts cleanupOptions, in io.Reader, out io.Writer) error {
	client := gallery.NewClient(cfg.APIBase, opts.token, cfg.RequestTimeout)

	images := client.ListPublicImages(ctx, cfg.PageSize)
	if len(images) == 0 {
		slog.Info("No public images found to delete")
		return nil
	}

	if opts.dryRun {
		fmt.Fprintf(out, "\nDry run: %d public images would be deleted\n", len(images))
		for _, img := range images {
			fmt.Fprintf(out, "- %s (%s)\n", displayName(img.Filename), img.ID)
		}
		return nil
	}

	if !opts.assumeYes {
		printDeletionWarning(out, len(images))
		question := fmt.Sprintf("\nAre you sure you want to delete %d images?", len(images))
		if !prompt.Confirm(in, out, question, false) {
			slog.Info("Operation cancelled by user")
			return nil
		}
	}

	slog.Info("Starting deletion of public images", "count", len(images))

	var deleted, failed int
	for i, img := range images {
		if ctx.Err() != nil {
			break
		}

		slog.Info("Deleting image", "n", i+1, "total", len(images), "filename", displayName(img.Filename), "id", img.ID)
		if err := client.DeleteImage(ctx, img.ID); err != nil {
			slog.Error("Failed to delete image", "id", img.ID, "err", err)
			failed++
		} else {
			deleted++
		}

		if cfg.DeleteDelay > 0 && i < len(images)-1 {
			select {
			case <-ctx.Done():
			case <-time.After(cfg.DeleteDelay):
			}
		}
	}

	fmt.Fprintf(out, "\n=== Cleanup Summary ===\n")
	fmt.Fprintf(out, "Total images processed: %d\n", deleted+failed)
	fmt.Fprintf(out, "Successfully deleted: %d\n", deleted)
	fmt.Fprintf(out, "Failed deletions: %d\n", failed)
	if failed == 0 && deleted == len(images) {
		fmt.Fprintln(out, "All public images have been successfully deleted!")
	} else if failed > 0 {
		fmt.Fprintf(out, "%d images could not be deleted\n", failed)
	}

	return ctx.Err()
}

func printDeletionWarning(out io.Writer, count int) {
	fmt.Fprintf(out, "\nWARNING: This will PERMANENTLY DELETE %d public images!\n", count)
	fmt.Fprintln(out, "This action cannot be undone.")
	fmt.Fprintln(out, "\nThe following will be deleted:")
	fmt.Fprintln(out, "- All image files from storage")
	fmt.Fprintln(out, "- All image metadata")
	fmt.Fprintln(out, "- All references from the public images index")
	fmt.Fprintln(out, "- All references from the user's images list")
}

func displayName(filename string) string {
	if filename == "" {
		return "unknown"
	}
	return filename
}
