package landmarks

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cmxu/geoimages/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

func TestParseLandmarksFile(t *testing.T) {
	path := writeFile(t, "landmarks.txt", `# Famous landmarks

## Europe
1. Eiffel Tower (Paris, France)
2.  Big Ben
   3. Diocletian's Cellars (Split)
4.NoSpace
- Not numbered
10. Christ the Redeemer (Rio de Janeiro)
`)

	names, err := ParseLandmarksFile(path)
	if err != nil {
		t.Fatalf("ParseLandmarksFile failed: %v", err)
	}

	expected := []string{"Eiffel Tower", "Big Ben", "Diocletian's Cellars", "Christ the Redeemer"}
	if len(names) != len(expected) {
		t.Fatalf("Expected %d landmarks, got %d: %v", len(expected), len(names), names)
	}
	for i, want := range expected {
		if names[i] != want {
			t.Errorf("Landmark %d: expected %q, got %q", i, want, names[i])
		}
	}
}

func TestParseLandmarksFile_NotFound(t *testing.T) {
	if _, err := ParseLandmarksFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadExistingResults(t *testing.T) {
	t.Run("missing file is empty", func(t *testing.T) {
		existing, err := LoadExistingResults(filepath.Join(t.TempDir(), "none.json"))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if existing.Len() != 0 {
			t.Errorf("Expected empty results, got %d", existing.Len())
		}
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := writeFile(t, "bad.json", `[{"landmark": `)
		if _, err := LoadExistingResults(path); err == nil {
			t.Error("Expected error for malformed JSON")
		}
	})

	t.Run("keyed by landmark in file order", func(t *testing.T) {
		path := writeFile(t, "results.json", `[
			{"landmark": "Big Ben", "title": "File:Old.jpg"},
			{"landmark": "", "title": "File:NoName.jpg"},
			{"landmark": "Colosseum", "title": "File:Colosseum.jpg"},
			{"landmark": "Big Ben", "title": "File:New.jpg"}
		]`)

		existing, err := LoadExistingResults(path)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		results := existing.Results()
		if len(results) != 2 {
			t.Fatalf("Expected 2 results, got %d", len(results))
		}
		if results[0].Landmark != "Big Ben" || results[0].Title != "File:New.jpg" {
			t.Errorf("Expected Big Ben first with last value, got %+v", results[0])
		}
		if results[1].Landmark != "Colosseum" {
			t.Errorf("Expected Colosseum second, got %s", results[1].Landmark)
		}
	})
}

func TestFilterToSearch(t *testing.T) {
	path := writeFile(t, "results.json", `[{"landmark": "X", "title": "File:X.jpg"}]`)
	existing, err := LoadExistingResults(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	toSearch := FilterToSearch([]string{"X", "Y"}, existing)
	if len(toSearch) != 1 || toSearch[0] != "Y" {
		t.Errorf("Expected only Y to be searched, got %v", toSearch)
	}
}

func TestLoadResults(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		count   int
	}{
		{name: "array", content: `[{"landmark":"A","url":"https://x/a.jpg"},{"landmark":"B"}]`, count: 2},
		{name: "object", content: `{"landmark":"A"}`, wantErr: ErrNotArray},
		{name: "empty array", content: `[]`, wantErr: ErrEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "in.json", tt.content)
			results, err := LoadResults(path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(results) != tt.count {
				t.Errorf("Expected %d results, got %d", tt.count, len(results))
			}
		})
	}

	t.Run("invalid json", func(t *testing.T) {
		path := writeFile(t, "in.json", `not json`)
		if _, err := LoadResults(path); err == nil {
			t.Error("Expected error for invalid JSON")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadResults(filepath.Join(t.TempDir(), "missing.json")); err == nil {
			t.Error("Expected error for missing file")
		}
	})
}

func TestSaveResults_CreatesDirectoryAndKeepsUnicode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public_images", "landmark_images.json")
	results := []models.LandmarkResult{{
		Landmark:    "Sagrada Família",
		Title:       "File:Sagrada Família.jpg",
		Description: "<b>Basilica</b> & church",
		Location:    models.Location{Lat: 41.4036, Lon: 2.1744},
	}}

	if err := SaveResults(path, results); err != nil {
		t.Fatalf("SaveResults failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "Sagrada Família") {
		t.Error("Expected non-ASCII text to be written as-is")
	}
	if !strings.Contains(content, "<b>Basilica</b> & church") {
		t.Error("Expected HTML characters to be left unescaped")
	}
	if !strings.Contains(content, "\n  {") {
		t.Error("Expected indented output")
	}

	loaded, err := LoadResults(path)
	if err != nil {
		t.Fatalf("LoadResults failed: %v", err)
	}
	if loaded[0].Location.Lat != 41.4036 {
		t.Errorf("Expected lat 41.4036, got %f", loaded[0].Location.Lat)
	}
}

func TestSaveFailed_CanBeReloaded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failed.json")
	failed := []models.FailedUpload{{
		LandmarkResult: models.LandmarkResult{Landmark: "Big Ben", URL: "https://x/bb.jpg"},
		Error:          "Processing failed",
		ErrorType:      models.ErrorTypeProcessing,
	}}

	if err := SaveFailed(path, failed); err != nil {
		t.Fatalf("SaveFailed failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"error_type": "processing_failed"`) {
		t.Errorf("Expected error_type in output, got %s", data)
	}

	reloaded, err := LoadResults(path)
	if err != nil {
		t.Fatalf("Failed file should be accepted as upload input: %v", err)
	}
	if reloaded[0].URL != "https://x/bb.jpg" {
		t.Errorf("Expected URL to survive, got %s", reloaded[0].URL)
	}
}
