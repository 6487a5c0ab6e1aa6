package gallery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/cmxu/geoimages/internal/models"
)

// UserAgent identifies the uploader to the images API and image hosts
const UserAgent = "Landmark Image Uploader/1.0"

// ErrUnauthorized is returned when the API rejects the bearer token
var ErrUnauthorized = errors.New("authentication failed, the auth token may have expired")

// Client talks to the application's images API
type Client struct {
	BaseURL    string
	authToken  string
	httpClient *http.Client
}

// NewClient creates a new images API client
func NewClient(baseURL, authToken string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) newRequest(ctx context.Context, method, u string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.authToken)
	req.Header.Set("User-Agent", UserAgent)
	return req, nil
}

// ListPublicImages pages through the public images listing.
// It stops on an empty page, when hasMore is false, or on the first failed page,
// returning whatever was collected so far.
func (c *Client) ListPublicImages(ctx context.Context, pageSize int) []models.PublicImage {
	slog.Info("Fetching all public images...")

	var all []models.PublicImage
	offset := 0

	for {
		page, err := c.fetchPublicPage(ctx, pageSize, offset)
		if err != nil {
			slog.Error("Error fetching public images", "offset", offset, "err", err)
			break
		}

		if len(page.Images) == 0 {
			break
		}

		all = append(all, page.Images...)
		slog.Info("Fetched images", "count", len(page.Images), "total", len(all))

		if !page.HasMore {
			break
		}
		offset += pageSize
	}

	slog.Info("Found public images", "total", len(all))
	return all
}

func (c *Client) fetchPublicPage(ctx context.Context, limit, offset int) (*models.PublicImagesPage, error) {
	pageURL := fmt.Sprintf("%s/api/images/public?limit=%d&offset=%d", c.BaseURL, limit, offset)

	req, err := c.newRequest(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch public images: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("public images API returned status %d", resp.StatusCode)
	}

	var page models.PublicImagesPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode public images response: %w", err)
	}
	return &page, nil
}

// DeleteImage deletes one image. A 404 counts as deleted.
func (c *Client) DeleteImage(ctx context.Context, imageID string) error {
	deleteURL := fmt.Sprintf("%s/api/images/%s", c.BaseURL, url.PathEscape(imageID))

	req, err := c.newRequest(ctx, http.MethodDelete, deleteURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %w", imageID, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		slog.Warn("Image not found (already deleted?)", "id", imageID)
		return nil
	default:
		return fmt.Errorf("delete of image %s returned status %d", imageID, resp.StatusCode)
	}
}

// UploadRequest is the multipart form sent to the upload endpoint
type UploadRequest struct {
	Data        []byte
	Filename    string
	ContentType string
	Lat         float64
	Lng         float64
	CustomName  string
	SourceURL   string
}

// UploadResponse is the JSON body of a successful upload
type UploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// UploadImage posts an image to the gallery's upload-simple endpoint
func (c *Client) UploadImage(ctx context.Context, r UploadRequest) (*UploadResponse, error) {
	body, formContentType, err := buildUploadForm(r)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.BaseURL+"/api/images/upload-simple", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", formContentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", r.CustomName, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusCreated:
		var result UploadResponse
		if err := json.Unmarshal(respBody, &result); err != nil {
			slog.Debug("Upload response was not JSON", "name", r.CustomName)
		}
		return &result, nil
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	default:
		return nil, fmt.Errorf("upload returned status %d: %s", resp.StatusCode, string(respBody))
	}
}

func buildUploadForm(r UploadRequest) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, escapeQuotes(r.Filename)))
	h.Set("Content-Type", r.ContentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := part.Write(r.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write image part: %w", err)
	}

	location, err := json.Marshal(map[string]float64{"lat": r.Lat, "lng": r.Lng})
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal location: %w", err)
	}
	fields := []struct{ name, value string }{
		{"location", string(location)},
		{"customName", r.CustomName},
	}
	if r.SourceURL != "" {
		fields = append(fields, struct{ name, value string }{"sourceUrl", r.SourceURL})
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("failed to write %s field: %w", f.name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}
	return body, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
