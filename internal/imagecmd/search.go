package imagecmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cmxu/geoimages/internal/commons"
	"github.com/cmxu/geoimages/internal/config"
	"github.com/cmxu/geoimages/internal/landmarks"
	"github.com/cmxu/geoimages/internal/models"
	"golang.org/x/sync/errgroup"
)

type landmarkSearcher interface {
	SearchQualityImages(ctx context.Context, landmark string) []models.LandmarkResult
}

func newSearcher(cfg *config.Config) (*commons.Searcher, error) {
	opts := []commons.Option{commons.WithRateLimit(cfg.CommonsRate)}

	if cfg.CacheDir != "" {
		cache, err := commons.NewCache(cfg.CacheDir, commons.DefaultCacheExpiry)
		if err != nil {
			return nil, fmt.Errorf("failed to open response cache: %w", err)
		}
		opts = append(opts, commons.WithCache(cache))
	}

	client := commons.NewClient(cfg.CommonsAPI, cfg.UserAgent, cfg.RequestTimeout, opts...)
	return commons.NewSearcher(client, cfg.SearchLimit), nil
}

func executeSearch(ctx context.Context, cfg *config.Config, landmarksFile, outputFile string, out io.Writer) error {
	if _, err := os.Stat(landmarksFile); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("landmarks file not found: %s", landmarksFile)
	}

	slog.Info("Starting landmark image search", "file", landmarksFile)

	existing, err := landmarks.LoadExistingResults(outputFile)
	if err != nil {
		return err
	}

	names, err := landmarks.ParseLandmarksFile(landmarksFile)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return errors.New("no landmarks found in file")
	}

	toSearch := landmarks.FilterToSearch(names, existing)
	if len(toSearch) == 0 {
		slog.Info("All landmarks already have results!")
		return nil
	}

	searcher, err := newSearcher(cfg)
	if err != nil {
		return err
	}

	newResults := searchLandmarks(ctx, searcher, toSearch, cfg.SearchConcurrency)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	all := append(existing.Results(), newResults...)
	if err := landmarks.SaveResults(outputFile, all); err != nil {
		return err
	}

	slog.Info("Search complete", "new_images", len(newResults), "total", len(all), "output", outputFile)

	printSearchSummary(out, len(names), existing.Len(), len(toSearch), newResults, len(all))
	return nil
}

// searchLandmarks runs at most concurrency searches at a time and returns the
// found results in input order.
func searchLandmarks(ctx context.Context, s landmarkSearcher, names []string, concurrency int) []models.LandmarkResult {
	found := make([][]models.LandmarkResult, len(names))

	var g errgroup.Group
	g.SetLimit(max(1, concurrency))

	for i, name := range names {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("Error searching for landmark", "landmark", name, "err", r)
				}
			}()
			if ctx.Err() != nil {
				return nil
			}

			slog.Info("Searching for images", "landmark", name)
			found[i] = s.SearchQualityImages(ctx, name)
			return nil
		})
	}
	_ = g.Wait()

	var results []models.LandmarkResult
	for i, r := range found {
		if len(r) == 0 {
			slog.Warn("No images with location data found", "landmark", names[i])
			continue
		}
		slog.Info("Found image(s)", "count", len(r), "landmark", names[i])
		results = append(results, r...)
	}
	return results
}

func printSearchSummary(out io.Writer, total, previous, searched int, newResults []models.LandmarkResult, combined int) {
	fmt.Fprintf(out, "\nSummary:\n")
	fmt.Fprintf(out, "- Total landmarks: %d\n", total)
	fmt.Fprintf(out, "- Previously found: %d\n", previous)
	fmt.Fprintf(out, "- Searched this run: %d\n", searched)
	fmt.Fprintf(out, "- New results found: %d\n", len(newResults))
	fmt.Fprintf(out, "- Total images with locations: %d\n", combined)
	fmt.Fprintf(out, "- Overall success rate: %.1f%%\n", float64(combined)/float64(total)*100)

	if len(newResults) == 0 {
		return
	}

	fmt.Fprintf(out, "\nNew results found this run:\n")
	for i, r := range newResults {
		if i == 5 {
			break
		}
		fmt.Fprintf(out, "%d. %s\n", i+1, r.Landmark)
		fmt.Fprintf(out, "   URL: %s\n", r.CommonsURL)
		fmt.Fprintf(out, "   Location: %v, %v\n\n", r.Location.Lat, r.Location.Lon)
	}
}
