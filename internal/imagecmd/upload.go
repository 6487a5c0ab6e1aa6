package imagecmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/cmxu/geoimages/internal/config"
	"github.com/cmxu/geoimages/internal/gallery"
	"github.com/cmxu/geoimages/internal/imaging"
	"github.com/cmxu/geoimages/internal/landmarks"
	"github.com/cmxu/geoimages/internal/models"
	"github.com/cmxu/geoimages/internal/prompt"
	"golang.org/x/sync/errgroup"
)

const largeDownloadWarning = 50 * 1024 * 1024 // 50 MiB

type uploadOptions struct {
	token        string
	failedOutput string
	assumeYes    bool
}

type uploader struct {
	gallery      *gallery.Client
	httpClient   *http.Client
	maxDimension int
	maxFileSize  int
}

func newUploader(cfg *config.Config, token string) *uploader {
	return &uploader{
		gallery:      gallery.NewClient(cfg.UploadBase, token, cfg.UploadTimeout),
		httpClient:   &http.Client{Timeout: cfg.UploadTimeout},
		maxDimension: cfg.MaxDimension,
		maxFileSize:  cfg.MaxFileSize,
	}
}

func executeUpload(ctx context.Context, cfg *config.Config, jsonFile string, opts uploadOptions, in io.Reader, out io.Writer) error {
	if _, err := os.Stat(jsonFile); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("file not found: %s", jsonFile)
	}

	if err := gallery.ValidateToken(opts.token); err != nil {
		return fmt.Errorf("invalid auth token provided: %w", err)
	}

	entries, err := landmarks.LoadResults(jsonFile)
	if err != nil {
		return err
	}

	if !opts.assumeYes {
		fmt.Fprintf(out, "\nAbout to upload %d landmark images to the curated gallery.\n", len(entries))
		fmt.Fprintln(out, "This will download images from Wikimedia Commons and upload them to your app.")
		fmt.Fprintln(out)
		if !prompt.Confirm(in, out, "Do you want to continue?", true) {
			fmt.Fprintln(out, "Upload cancelled.")
			return nil
		}
	}

	slog.Info("Starting upload of landmarks", "count", len(entries))

	u := newUploader(cfg, opts.token)
	successful, failed := uploadLandmarks(ctx, u, entries, cfg.UploadConcurrency)

	if len(failed) > 0 {
		if err := landmarks.SaveFailed(opts.failedOutput, failed); err != nil {
			slog.Error("Failed to save failed landmarks", "err", err)
		}
	}

	fmt.Fprintf(out, "\n=== Upload Summary ===\n")
	fmt.Fprintf(out, "Total landmarks: %d\n", len(entries))
	fmt.Fprintf(out, "Successfully uploaded: %d\n", successful)
	fmt.Fprintf(out, "Failed uploads: %d\n", len(entries)-successful)
	fmt.Fprintf(out, "Success rate: %.1f%%\n", float64(successful)/float64(len(entries))*100)
	if len(failed) > 0 {
		fmt.Fprintf(out, "Failed landmarks saved to: %s\n", opts.failedOutput)
		fmt.Fprintln(out, "You can retry failed uploads by running upload on this file.")
	}

	return ctx.Err()
}

// uploadLandmarks processes entries with at most concurrency in flight and
// returns the success count plus one FailedUpload per failed entry, in input order.
func uploadLandmarks(ctx context.Context, u *uploader, entries []models.LandmarkResult, concurrency int) (int, []models.FailedUpload) {
	outcomes := make([]*models.FailedUpload, len(entries))

	var g errgroup.Group
	g.SetLimit(max(1, concurrency))

	for i, entry := range entries {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("Exception processing landmark", "landmark", entry.Landmark, "err", r)
					outcomes[i] = &models.FailedUpload{
						LandmarkResult: entry,
						Error:          fmt.Sprint(r),
						ErrorType:      models.ErrorTypeException,
					}
				}
			}()

			if err := u.processLandmark(ctx, entry); err != nil {
				slog.Error("Failed to process landmark", "landmark", entry.Landmark, "err", err)
				outcomes[i] = &models.FailedUpload{
					LandmarkResult: entry,
					Error:          err.Error(),
					ErrorType:      models.ErrorTypeProcessing,
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	successful := 0
	var failed []models.FailedUpload
	for _, o := range outcomes {
		if o == nil {
			successful++
			continue
		}
		failed = append(failed, *o)
	}
	return successful, failed
}

func (u *uploader) processLandmark(ctx context.Context, entry models.LandmarkResult) error {
	name := entry.Landmark
	if name == "" {
		name = "Unknown"
	}

	if entry.URL == "" {
		return fmt.Errorf("no image URL for %s", name)
	}

	slog.Info("Downloading image", "landmark", name, "url", entry.URL)
	raw, contentType, err := u.download(ctx, entry.URL)
	if err != nil {
		return fmt.Errorf("failed to download image for %s: %w", name, err)
	}
	slog.Info("Downloaded image", "landmark", name, "bytes", len(raw))

	location := entry.Location
	if !location.Resolvable() {
		if exifLocation, ok := imaging.LocationFromEXIF(raw); ok {
			slog.Info("Using location from EXIF", "landmark", name, "lat", exifLocation.Lat, "lon", exifLocation.Lon)
			location = exifLocation
		}
	}
	if !location.Resolvable() {
		return fmt.Errorf("missing location data for %s", name)
	}

	data := imaging.ResizeIfNeeded(raw, u.maxDimension, u.maxFileSize)
	ext := imaging.FileExtension(data, entry.URL, contentType)

	slog.Info("Uploading to gallery", "landmark", name)
	resp, err := u.gallery.UploadImage(ctx, gallery.UploadRequest{
		Data:        data,
		Filename:    gallery.SafeName(name) + "." + ext,
		ContentType: imaging.ContentType(ext),
		Lat:         location.Lat,
		Lng:         location.Lon,
		CustomName:  name,
		SourceURL:   entry.CommonsURL,
	})
	if err != nil {
		if errors.Is(err, gallery.ErrUnauthorized) {
			slog.Error("Authentication failed, get a fresh token and try again", "landmark", name)
		}
		return fmt.Errorf("failed to upload %s to gallery: %w", name, err)
	}

	slog.Info("Successfully uploaded", "landmark", name, "image_url", resp.ImageURL)
	return nil
}

// download fetches an image without the gallery credentials
func (u *uploader) download(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", gallery.UserAgent)

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("URL does not point to an image: %s", contentType)
	}

	if resp.ContentLength > largeDownloadWarning {
		slog.Warn("Very large image download, will resize after download", "bytes", resp.ContentLength)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	return data, contentType, nil
}
