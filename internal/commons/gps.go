package commons

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	htmlTagPattern = regexp.MustCompile(`<[^>]+>`)
	dmsPattern     = regexp.MustCompile(`(\d+)[°\s]+(\d+)['′\s]+([0-9.]+)["″\s]*([NSEW]?)`)
	decimalPattern = regexp.MustCompile(`([+-]?\d+\.?\d*)\s*°?\s*([NSEW]?)`)
)

// ParseGPSCoordinate converts a Commons GPS metadata string to decimal degrees.
// Degree-minute-second notation is tried before plain decimals; S and W are negative.
func ParseGPSCoordinate(value string) (float64, bool) {
	clean := strings.TrimSpace(htmlTagPattern.ReplaceAllString(value, ""))
	if clean == "" {
		return 0, false
	}

	if m := dmsPattern.FindStringSubmatch(clean); m != nil {
		deg, err1 := strconv.ParseFloat(m[1], 64)
		minutes, err2 := strconv.ParseFloat(m[2], 64)
		sec, err3 := strconv.ParseFloat(m[3], 64)
		if err1 == nil && err2 == nil && err3 == nil {
			return applyHemisphere(deg+minutes/60+sec/3600, m[4]), true
		}
	}

	if m := decimalPattern.FindStringSubmatch(clean); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return applyHemisphere(v, m[2]), true
		}
	}

	return 0, false
}

func applyHemisphere(v float64, dir string) float64 {
	if dir == "S" || dir == "W" {
		return -v
	}
	return v
}
