package prompt

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		defaultNo bool
		expected  bool
		reprompts int
		shown     string
	}{
		{name: "strict yes", input: "yes\n", expected: true, shown: "Continue? [yes/no]: "},
		{name: "strict y uppercase", input: "Y\n", expected: true},
		{name: "strict no", input: "n\n", expected: false},
		{name: "strict reprompts until valid", input: "maybe\n\nyes\n", expected: true, reprompts: 2},
		{name: "strict eof is no", input: "", expected: false},
		{name: "strict garbage then eof", input: "sure", expected: false},
		{name: "default no empty", input: "\n", defaultNo: true, expected: false, shown: "Continue? (y/N): "},
		{name: "default no yes", input: "y\n", defaultNo: true, expected: true},
		{name: "default no anything else", input: "sure\n", defaultNo: true, expected: false},
		{name: "default no answer without newline", input: "yes", defaultNo: true, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got := Confirm(strings.NewReader(tt.input), &out, "Continue?", tt.defaultNo)
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
			if n := strings.Count(out.String(), "Please enter"); n != tt.reprompts {
				t.Errorf("Expected %d reprompts, got %d", tt.reprompts, n)
			}
			if tt.shown != "" && !strings.HasPrefix(out.String(), tt.shown) {
				t.Errorf("Expected prompt %q, got %q", tt.shown, out.String())
			}
		})
	}
}
