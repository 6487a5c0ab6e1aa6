package commons

import (
	"encoding/json"
	"strings"

	"github.com/cmxu/geoimages/internal/models"
)

// hit is a file title returned by search, categorymembers or geosearch
type hit struct {
	Title string `json:"title"`
	Name  string `json:"name,omitempty"`
}

func (h hit) fileTitle() string {
	if h.Title != "" {
		return h.Title
	}
	return h.Name
}

type searchResponse struct {
	Query struct {
		Search []hit `json:"search"`
	} `json:"query"`
}

type categoryMembersResponse struct {
	Query struct {
		CategoryMembers []hit `json:"categorymembers"`
	} `json:"query"`
}

type geoSearchResponse struct {
	Query struct {
		GeoSearch []hit `json:"geosearch"`
	} `json:"query"`
}

type imageInfoResponse struct {
	Query struct {
		Pages map[string]struct {
			Title     string `json:"title"`
			ImageInfo []struct {
				URL         string                `json:"url"`
				ThumbURL    string                `json:"thumburl"`
				Width       int                   `json:"width"`
				Height      int                   `json:"height"`
				ExtMetadata map[string]extMetaVal `json:"extmetadata"`
			} `json:"imageinfo"`
			Coordinates []struct {
				Lat     float64 `json:"lat"`
				Lon     float64 `json:"lon"`
				Country string  `json:"country"`
				Region  string  `json:"region"`
			} `json:"coordinates"`
		} `json:"pages"`
	} `json:"query"`
}

// extMetaVal is an extmetadata entry. Values are usually strings but
// occasionally numbers, so the raw JSON is kept.
type extMetaVal struct {
	Value json.RawMessage `json:"value"`
}

func (v extMetaVal) String() string {
	if len(v.Value) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(v.Value, &s); err == nil {
		return s
	}
	return strings.Trim(string(v.Value), `"`)
}

func extValue(meta map[string]extMetaVal, key string) string {
	if v, ok := meta[key]; ok {
		return v.String()
	}
	return ""
}

// ImageInfo is the subset of Commons file information the search needs
type ImageInfo struct {
	URL         string
	ThumbURL    string
	Description string
	Artist      string
	Location    models.Location
	Width       int
	Height      int
}
