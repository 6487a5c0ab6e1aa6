package landmarks

import (
	"path/filepath"
	"testing"

	"github.com/cmxu/geoimages/internal/models"
)

func TestExportParquet_ReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "landmarks.parquet")
	results := []models.LandmarkResult{
		{
			Landmark:   "Colosseum",
			Title:      "File:Colosseum day.jpg",
			URL:        "https://upload.example/day.jpg",
			CommonsURL: models.CommonsPageURL("File:Colosseum day.jpg"),
			Location:   models.Location{Lat: 41.8902, Lon: 12.4922, Country: "IT"},
		},
		{
			Landmark: "Big Ben",
			Title:    "File:Big Ben.jpg",
			Location: models.Location{Lat: 51.4994, Lon: -0.1245},
		},
	}

	if err := ExportParquet(path, results); err != nil {
		t.Fatalf("ExportParquet failed: %v", err)
	}

	loaded, err := LoadResults(path)
	if err != nil {
		t.Fatalf("LoadResults failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(loaded))
	}
	if loaded[0].Location.Country != "IT" || loaded[0].CommonsURL != results[0].CommonsURL {
		t.Errorf("Unexpected first row %+v", loaded[0])
	}
	if loaded[1].Location.Lon != -0.1245 {
		t.Errorf("Expected lon -0.1245, got %f", loaded[1].Location.Lon)
	}
}
