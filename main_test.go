package main

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "success", err: nil, expected: 0},
		{name: "failure", err: errors.New("file not found: x.json"), expected: 1},
		{name: "interrupted", err: context.Canceled, expected: exitInterrupted},
		{name: "wrapped interrupt", err: fmt.Errorf("failed to delete image: %w", context.Canceled), expected: exitInterrupted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.expected {
				t.Errorf("Expected exit code %d, got %d", tt.expected, got)
			}
		})
	}
}
