package landmarks

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cmxu/geoimages/internal/models"
	"github.com/parquet-go/parquet-go"
)

// Row is the flattened Parquet layout of a landmark result
type Row struct {
	Landmark    string  `parquet:"landmark"`
	Title       string  `parquet:"title"`
	URL         string  `parquet:"url"`
	CommonsURL  string  `parquet:"commons_url"`
	Description string  `parquet:"description"`
	Lat         float64 `parquet:"lat"`
	Lon         float64 `parquet:"lon"`
	Country     string  `parquet:"country"`
	Region      string  `parquet:"region"`
}

func toRow(r models.LandmarkResult) Row {
	return Row{
		Landmark:    r.Landmark,
		Title:       r.Title,
		URL:         r.URL,
		CommonsURL:  r.CommonsURL,
		Description: r.Description,
		Lat:         r.Location.Lat,
		Lon:         r.Location.Lon,
		Country:     r.Location.Country,
		Region:      r.Location.Region,
	}
}

func (row Row) result() models.LandmarkResult {
	return models.LandmarkResult{
		Title:       row.Title,
		Landmark:    row.Landmark,
		URL:         row.URL,
		Description: row.Description,
		CommonsURL:  row.CommonsURL,
		Location: models.Location{
			Lat:     row.Lat,
			Lon:     row.Lon,
			Country: row.Country,
			Region:  row.Region,
		},
	}
}

// ExportParquet writes results to a Parquet file
func ExportParquet(path string, results []models.LandmarkResult) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	rows := make([]Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, toRow(r))
	}

	writer := parquet.NewGenericWriter[Row](file)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}

	slog.Info("Exported landmarks to Parquet", "count", len(rows), "path", path)
	return nil
}

// ReadParquet loads results written by ExportParquet
func ReadParquet(path string) ([]models.LandmarkResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[Row](pf)
	defer reader.Close()

	var results []models.LandmarkResult
	rows := make([]Row, 128)
	for {
		n, err := reader.Read(rows)
		for _, row := range rows[:n] {
			results = append(results, row.result())
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	slog.Debug("Read Parquet file", "path", path, "rows", len(results))
	return results, nil
}
