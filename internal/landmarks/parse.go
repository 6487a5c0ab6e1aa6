package landmarks

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

var (
	numberedLine     = regexp.MustCompile(`^\d+\.\s+(.+)$`)
	trailingLocation = regexp.MustCompile(`\s*\([^)]+\)$`)
)

// ParseLandmarksFile reads a numbered list ("1. Name (City)") and returns the
// landmark names with any trailing parenthetical removed. Other lines are ignored.
func ParseLandmarksFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open landmarks file: %w", err)
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		m := numberedLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := trailingLocation.ReplaceAllString(strings.TrimSpace(m[1]), "")
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read landmarks file: %w", err)
	}

	slog.Info("Parsed landmarks", "count", len(names), "path", path)
	return names, nil
}
