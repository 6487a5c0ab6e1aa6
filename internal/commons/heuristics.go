package commons

import (
	"fmt"
	"strings"
)

type knownPlace struct {
	keys     []string
	lat, lon float64
}

// Checked in order; the first entry with a matching key wins.
var knownPlaces = []knownPlace{
	{keys: []string{"diocletian", "split"}, lat: 43.5081, lon: 16.4402},
	{keys: []string{"colosseum"}, lat: 41.8902, lon: 12.4922},
	{keys: []string{"eiffel tower"}, lat: 48.8584, lon: 2.2945},
	{keys: []string{"big ben"}, lat: 51.4994, lon: -0.1245},
}

// GuessCoordinates returns approximate coordinates for a handful of well
// known landmarks so a geographic search can be attempted.
func GuessCoordinates(landmark string) (lat, lon float64, ok bool) {
	lower := strings.ToLower(landmark)
	for _, p := range knownPlaces {
		for _, key := range p.keys {
			if strings.Contains(lower, key) {
				return p.lat, p.lon, true
			}
		}
	}
	return 0, 0, false
}

func isDiocletian(landmark string) bool {
	return strings.Contains(strings.ToLower(landmark), "diocletian")
}

// SearchVariations lists alternative spellings of a landmark name to try
// in full-text search.
func SearchVariations(landmark string) []string {
	variations := []string{
		landmark,
		strings.ReplaceAll(strings.ReplaceAll(landmark, "'s", ""), "'", ""),
		strings.ReplaceAll(strings.ReplaceAll(landmark, "'s", " "), "'", " "),
	}

	if isDiocletian(landmark) {
		variations = append(variations,
			strings.ReplaceAll(landmark, "Cellars", "basement"),
			strings.ReplaceAll(landmark, "Cellars", "cellar"),
			strings.ReplaceAll(landmark, "'s Cellars", " Palace"),
			"Split basement",
			"Split cellar",
			"Old Town Split",
		)
	}

	return dedupe(variations)
}

// CategoryCandidates lists Commons category names to browse for a landmark
func CategoryCandidates(landmark string) []string {
	candidates := []string{
		landmark,
		strings.ReplaceAll(strings.ReplaceAll(landmark, "'s", ""), "'", ""),
	}

	if isDiocletian(landmark) {
		candidates = append(candidates,
			"Diocletian's Palace",
			"Basements of Diocletian's Palace",
			"Diocletian Palace",
			"Buildings in Split",
			"Quality images of Split",
		)
	}

	return dedupe(candidates)
}

// SearchKeywords lists lowercase words used to filter geosearch hits by title
func SearchKeywords(landmark string) []string {
	keywords := strings.Fields(strings.ToLower(landmark))
	if isDiocletian(landmark) {
		keywords = append(keywords, "diocletian", "palace", "split", "basement", "cellar", "croatia")
	}
	return dedupe(keywords)
}

func qualityQueries(landmark string) []string {
	return dedupe([]string{
		fmt.Sprintf("%s hasassessment:quality-image", landmark),
		fmt.Sprintf(`"%s" hasassessment:quality-image`, landmark),
		fmt.Sprintf("%s hasassessment:quality-image", strings.ReplaceAll(landmark, "'s", "")),
	})
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
