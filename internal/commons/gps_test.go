package commons

import (
	"math"
	"testing"
)

func TestParseGPSCoordinate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		ok       bool
	}{
		{name: "dms north", input: "41° 53′ 24.7″ N", expected: 41.8902, ok: true},
		{name: "dms ascii marks", input: `48° 51' 30" N`, expected: 48.8583, ok: true},
		{name: "dms west negates", input: "0° 7′ 28.2″ W", expected: -0.1245, ok: true},
		{name: "dms south negates", input: "33° 51′ 35.9″ S", expected: -33.8600, ok: true},
		{name: "plain decimal", input: "43.5081", expected: 43.5081, ok: true},
		{name: "decimal with html", input: `<span class="geo">16.4402</span>`, expected: 16.4402, ok: true},
		{name: "negative decimal", input: "-22.9519", expected: -22.9519, ok: true},
		{name: "decimal south", input: "43.5081 S", expected: -43.5081, ok: true},
		{name: "decimal degree sign south", input: "43.5081° S", expected: -43.5081, ok: true},
		{name: "decimal degree sign west", input: "0.1245° W", expected: -0.1245, ok: true},
		{name: "decimal degree sign east", input: "16.4402°E", expected: 16.4402, ok: true},
		{name: "empty", input: "", ok: false},
		{name: "no digits", input: "unknown", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseGPSCoordinate(tt.input)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v, got %v (value %f)", tt.ok, ok, got)
			}
			if ok && math.Abs(got-tt.expected) > 0.0005 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}
