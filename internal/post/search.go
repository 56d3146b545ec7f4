package post

import (
	"slices"
	"strings"
)

// SearchOptions configures post search filtering.
type SearchOptions struct {
	// Author filters by author name, case-insensitively. Empty matches all
	// posts, including those without an author.
	Author string
}

// Search finds posts matching query and opts. Matching is case-insensitive
// against slug, title and summary. An empty query returns every post that
// passes the filters in their original order; otherwise results are ordered
// by match quality, ties keeping their original order.
func Search(posts []Post, query string, opts SearchOptions) []Post {
	query = strings.ToLower(strings.TrimSpace(query))

	var results []Post
	for _, p := range posts {
		if matchesFilters(p, opts) && (query == "" || scoreMatch(p, query) > 0) {
			results = append(results, p)
		}
	}

	if query != "" {
		slices.SortStableFunc(results, func(a, b Post) int {
			return scoreMatch(b, query) - scoreMatch(a, query)
		})
	}
	return results
}

func matchesFilters(p Post, opts SearchOptions) bool {
	if opts.Author == "" {
		return true
	}
	return p.Meta.Author != nil && strings.EqualFold(p.Meta.Author.Name, opts.Author)
}

// scoreMatch returns a score indicating match quality.
//
// Scoring:
//   - 100: Exact slug or title match
//   - 75: Title starts with query
//   - 50: Slug or title contains query
//   - 25: Summary contains query
//   - 0: No match
func scoreMatch(p Post, query string) int {
	slug := strings.ToLower(p.Slug)
	title := strings.ToLower(p.Meta.Title)

	switch {
	case slug == query, title == query:
		return 100
	case strings.HasPrefix(title, query):
		return 75
	case strings.Contains(slug, query), strings.Contains(title, query):
		return 50
	case strings.Contains(strings.ToLower(p.Meta.Summary), query):
		return 25
	default:
		return 0
	}
}
