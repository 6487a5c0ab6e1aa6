package models

import "strings"

// PublicImage represents an image record returned by the public images listing
type PublicImage struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	UserID   string `json:"userId,omitempty"`
}

// PublicImagesPage is one page of the public images listing
type PublicImagesPage struct {
	Images  []PublicImage `json:"images"`
	HasMore bool          `json:"hasMore"`
}

// Location is where a photo was taken
type Location struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country,omitempty"`
	Region  string  `json:"region,omitempty"`
}

// Resolvable reports whether both coordinates are set.
// A zero coordinate is treated as missing.
func (l Location) Resolvable() bool {
	return l.Lat != 0 && l.Lon != 0
}

// LandmarkResult is a Commons photo found for a landmark
type LandmarkResult struct {
	Title       string   `json:"title"`
	Landmark    string   `json:"landmark"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Location    Location `json:"location"`
	CommonsURL  string   `json:"commons_url"`
}

// Error classifications for failed uploads
const (
	ErrorTypeProcessing = "processing_failed"
	ErrorTypeException  = "exception"
)

// FailedUpload is a landmark entry that could not be uploaded.
// It keeps every LandmarkResult field so the file can be fed back into upload.
type FailedUpload struct {
	LandmarkResult
	Error     string `json:"error"`
	ErrorType string `json:"error_type"`
}

// CommonsPageURL builds the gallery page URL for a Commons file title
func CommonsPageURL(title string) string {
	return "https://commons.wikimedia.org/wiki/" + strings.ReplaceAll(title, " ", "_")
}
