package commons

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cmxu/geoimages/internal/models"
)

// DefaultUserAgent identifies the search tool to Commons
const DefaultUserAgent = "WikiCommons Landmark Image Finder/1.0"

const geoSearchRadius = 2000 // meters

// Searcher finds a Commons photo with a known location for a landmark
type Searcher struct {
	client *Client
	limit  int
}

// NewSearcher creates a searcher. limit scales how many hits each strategy
// requests and inspects.
func NewSearcher(client *Client, limit int) *Searcher {
	if limit <= 0 {
		limit = 10
	}
	return &Searcher{client: client, limit: limit}
}

type strategy struct {
	name string
	run  func(ctx context.Context, landmark string) []models.LandmarkResult
}

// SearchQualityImages tries each search strategy in turn and returns at most
// one result whose location is known.
func (s *Searcher) SearchQualityImages(ctx context.Context, landmark string) []models.LandmarkResult {
	strategies := []strategy{
		{name: "content", run: s.searchByContentVariations},
		{name: "category", run: s.searchByCategories},
		{name: "coordinates", run: s.searchByCoordinates},
		{name: "quality", run: s.searchQualityFiltered},
	}

	var all []models.LandmarkResult
	seen := make(map[string]bool)

	for _, st := range strategies {
		if ctx.Err() != nil {
			break
		}
		all = addUnique(all, seen, st.run(ctx, landmark))
		if len(all) > 0 {
			slog.Debug("Strategy found image", "strategy", st.name, "landmark", landmark, "title", all[0].Title)
			return all[:1]
		}
	}

	return nil
}

func addUnique(all []models.LandmarkResult, seen map[string]bool, found []models.LandmarkResult) []models.LandmarkResult {
	for _, r := range found {
		if seen[r.Title] {
			continue
		}
		seen[r.Title] = true
		all = append(all, r)
	}
	return all
}

func (s *Searcher) searchByContentVariations(ctx context.Context, landmark string) []models.LandmarkResult {
	for _, term := range SearchVariations(landmark) {
		hits, err := s.client.search(ctx, `"`+term+`" filetype:bitmap`, s.limit*2)
		if err != nil {
			slog.Debug("Content search error", "term", term, "err", err)
			continue
		}
		if len(hits) > 0 {
			slog.Debug("Content search found results", "term", term, "count", len(hits))
			return s.checkImagesForLocation(ctx, hits, landmark)
		}
	}
	return nil
}

func (s *Searcher) searchByCategories(ctx context.Context, landmark string) []models.LandmarkResult {
	for _, category := range CategoryCandidates(landmark) {
		members, err := s.client.categoryMembers(ctx, category, s.limit*2)
		if err != nil {
			slog.Debug("Category search error", "category", category, "err", err)
			continue
		}
		if len(members) == 0 {
			continue
		}

		slog.Debug("Category search found members", "category", category, "count", len(members))
		if results := s.checkImagesForLocation(ctx, members, landmark); len(results) > 0 {
			return results
		}
	}
	return nil
}

func (s *Searcher) searchByCoordinates(ctx context.Context, landmark string) []models.LandmarkResult {
	lat, lon, ok := GuessCoordinates(landmark)
	if !ok {
		return nil
	}
	slog.Debug("Searching coordinates", "lat", lat, "lon", lon)

	hits, err := s.client.geoSearch(ctx, lat, lon, geoSearchRadius, s.limit*3)
	if err != nil {
		slog.Debug("Coordinate search error", "err", err)
		return nil
	}

	keywords := SearchKeywords(landmark)
	var relevant []hit
	for _, h := range hits {
		title := strings.ToLower(h.fileTitle())
		for _, kw := range keywords {
			if strings.Contains(title, kw) {
				relevant = append(relevant, h)
				break
			}
		}
	}

	if len(relevant) == 0 {
		return nil
	}
	slog.Debug("Found relevant files near coordinates", "count", len(relevant))
	return s.checkImagesForLocation(ctx, relevant, landmark)
}

func (s *Searcher) searchQualityFiltered(ctx context.Context, landmark string) []models.LandmarkResult {
	for _, query := range qualityQueries(landmark) {
		hits, err := s.client.search(ctx, query, s.limit)
		if err != nil {
			slog.Debug("Quality search error", "query", query, "err", err)
			continue
		}
		if len(hits) > 0 {
			return s.checkImagesForLocation(ctx, hits, landmark)
		}
	}
	return nil
}

// checkImagesForLocation returns the first hit whose image info carries a
// usable location.
func (s *Searcher) checkImagesForLocation(ctx context.Context, hits []hit, landmark string) []models.LandmarkResult {
	if len(hits) > s.limit*2 {
		hits = hits[:s.limit*2]
	}

	for _, h := range hits {
		title := h.fileTitle()
		if title == "" {
			continue
		}

		info, err := s.client.GetImageInfo(ctx, title)
		if err != nil {
			slog.Debug("Error getting image info", "title", title, "err", err)
			continue
		}
		if info == nil || !info.Location.Resolvable() {
			continue
		}

		return []models.LandmarkResult{{
			Title:       title,
			Landmark:    landmark,
			URL:         info.URL,
			Description: info.Description,
			Location:    info.Location,
			CommonsURL:  models.CommonsPageURL(title),
		}}
	}
	return nil
}
