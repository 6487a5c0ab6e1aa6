package landmarks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cmxu/geoimages/internal/models"
)

var (
	// ErrNotArray is returned when a results file holds something other than a JSON array
	ErrNotArray = errors.New("JSON file must contain an array of landmark objects")
	// ErrEmpty is returned when a results file has no entries
	ErrEmpty = errors.New("no landmark data found")
)

// Existing holds previously found results keyed by landmark, in file order.
// A landmark listed twice keeps its first position and its last value.
type Existing struct {
	order  []string
	byName map[string]models.LandmarkResult
}

// Has reports whether a result already exists for landmark
func (e *Existing) Has(landmark string) bool {
	_, ok := e.byName[landmark]
	return ok
}

// Len returns the number of distinct landmarks
func (e *Existing) Len() int {
	return len(e.order)
}

// Results returns the stored results in file order
func (e *Existing) Results() []models.LandmarkResult {
	out := make([]models.LandmarkResult, 0, len(e.order))
	for _, name := range e.order {
		out = append(out, e.byName[name])
	}
	return out
}

func (e *Existing) add(r models.LandmarkResult) {
	if r.Landmark == "" {
		return
	}
	if _, ok := e.byName[r.Landmark]; !ok {
		e.order = append(e.order, r.Landmark)
	}
	e.byName[r.Landmark] = r
}

// LoadExistingResults reads a results file written by a previous search.
// A missing file yields an empty set; unreadable or malformed JSON is an error.
func LoadExistingResults(path string) (*Existing, error) {
	existing := &Existing{byName: make(map[string]models.LandmarkResult)}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Info("No existing results file found", "path", path)
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read existing results: %w", err)
	}

	var results []models.LandmarkResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to parse existing results %s: %w", path, err)
	}

	for _, r := range results {
		existing.add(r)
	}

	slog.Info("Loaded existing results", "count", existing.Len(), "path", path)
	return existing, nil
}

// FilterToSearch returns the landmarks that have no existing result, in input order
func FilterToSearch(names []string, existing *Existing) []string {
	var toSearch []string
	for _, name := range names {
		if existing.Has(name) {
			slog.Debug("Skipping landmark, already have result", "landmark", name)
			continue
		}
		toSearch = append(toSearch, name)
	}

	slog.Info("Landmarks to search", "remaining", len(toSearch), "already_found", len(names)-len(toSearch))
	return toSearch
}

// LoadResults reads landmark results for upload. Files ending in .parquet are
// read as Parquet; everything else must be a non-empty JSON array.
func LoadResults(path string) ([]models.LandmarkResult, error) {
	var (
		results []models.LandmarkResult
		err     error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		results, err = ReadParquet(path)
	default:
		results, err = loadJSON(path)
	}
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, ErrEmpty
	}

	slog.Info("Loaded landmarks", "count", len(results), "path", path)
	return results, nil
}

func loadJSON(path string) ([]models.LandmarkResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}

	var results []models.LandmarkResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, fmt.Errorf("invalid landmark entries in %s: %w", path, err)
	}
	return results, nil
}

// SaveResults writes results as indented JSON, creating parent directories
func SaveResults(path string, results []models.LandmarkResult) error {
	if results == nil {
		results = []models.LandmarkResult{}
	}
	return writeJSON(path, results)
}

// SaveFailed writes failed uploads as indented JSON
func SaveFailed(path string, failed []models.FailedUpload) error {
	if err := writeJSON(path, failed); err != nil {
		return err
	}
	slog.Info("Saved failed landmarks", "count", len(failed), "path", path)
	return nil
}

func writeJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
