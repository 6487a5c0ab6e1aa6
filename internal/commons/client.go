package commons

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const maxReadSize = 10 * 1024 * 1024 // 10 MiB

// Client queries the MediaWiki action API of Wikimedia Commons
type Client struct {
	apiURL     string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *Cache
}

// Option customizes a Client
type Option func(*Client)

// WithRateLimit caps requests per second. Zero or less leaves requests unlimited.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithCache serves repeated queries from an on-disk cache
func WithCache(cache *Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// NewClient creates a Commons API client
func NewClient(apiURL, userAgent string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		apiURL:    apiURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// query runs an action=query request and decodes the JSON body into out
func (c *Client) query(ctx context.Context, params url.Values, out any) error {
	params.Set("action", "query")
	params.Set("format", "json")
	requestURL := c.apiURL + "?" + params.Encode()

	body, err := c.get(ctx, requestURL)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode Commons response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, requestURL string) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Read(requestURL); ok {
			return body, nil
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query Commons: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("commons API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReadSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read Commons response: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.Write(requestURL, body); err != nil {
			slog.Debug("Failed to write Commons response to cache", "url", requestURL, "err", err)
		}
	}
	return body, nil
}

// GetImageInfo fetches the URL, description and location of a Commons file.
// It returns nil without error when the file does not exist.
func (c *Client) GetImageInfo(ctx context.Context, fileTitle string) (*ImageInfo, error) {
	params := url.Values{}
	params.Set("titles", fileTitle)
	params.Set("prop", "imageinfo|coordinates")
	params.Set("iiprop", "url|extmetadata|size")
	params.Set("iiurlwidth", "800")
	params.Set("coprop", "country|region|globe")

	var resp imageInfoResponse
	if err := c.query(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("failed to get image info for %s: %w", fileTitle, err)
	}

	for pageID, page := range resp.Query.Pages {
		if pageID == "-1" || len(page.ImageInfo) == 0 {
			continue
		}

		info := page.ImageInfo[0]
		result := &ImageInfo{
			URL:         info.URL,
			ThumbURL:    info.ThumbURL,
			Description: extValue(info.ExtMetadata, "ImageDescription"),
			Artist:      extValue(info.ExtMetadata, "Artist"),
			Width:       info.Width,
			Height:      info.Height,
		}

		if len(page.Coordinates) > 0 {
			coord := page.Coordinates[0]
			result.Location.Lat = coord.Lat
			result.Location.Lon = coord.Lon
			result.Location.Country = coord.Country
			result.Location.Region = coord.Region
		} else {
			gpsLat := extValue(info.ExtMetadata, "GPSLatitude")
			gpsLon := extValue(info.ExtMetadata, "GPSLongitude")
			if gpsLat != "" && gpsLon != "" {
				lat, latOK := ParseGPSCoordinate(gpsLat)
				lon, lonOK := ParseGPSCoordinate(gpsLon)
				if latOK && lonOK {
					result.Location.Lat = lat
					result.Location.Lon = lon
				}
			}
		}

		return result, nil
	}

	return nil, nil
}

func (c *Client) search(ctx context.Context, term string, limit int) ([]hit, error) {
	params := url.Values{}
	params.Set("list", "search")
	params.Set("srsearch", term)
	params.Set("srnamespace", "6")
	params.Set("srlimit", fmt.Sprint(limit))
	params.Set("srprop", "title|snippet")

	var resp searchResponse
	if err := c.query(ctx, params, &resp); err != nil {
		return nil, err
	}
	return resp.Query.Search, nil
}

func (c *Client) categoryMembers(ctx context.Context, category string, limit int) ([]hit, error) {
	params := url.Values{}
	params.Set("list", "categorymembers")
	params.Set("cmtitle", "Category:"+category)
	params.Set("cmnamespace", "6")
	params.Set("cmlimit", fmt.Sprint(limit))
	params.Set("cmprop", "title")

	var resp categoryMembersResponse
	if err := c.query(ctx, params, &resp); err != nil {
		return nil, err
	}
	return resp.Query.CategoryMembers, nil
}

func (c *Client) geoSearch(ctx context.Context, lat, lon float64, radius, limit int) ([]hit, error) {
	params := url.Values{}
	params.Set("list", "geosearch")
	params.Set("gscoord", fmt.Sprintf("%v|%v", lat, lon))
	params.Set("gsradius", fmt.Sprint(radius))
	params.Set("gsnamespace", "6")
	params.Set("gslimit", fmt.Sprint(limit))

	var resp geoSearchResponse
	if err := c.query(ctx, params, &resp); err != nil {
		return nil, err
	}
	return resp.Query.GeoSearch, nil
}
