package post

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// SortByDate orders posts newest first by publishedAt. Posts whose date
// does not parse go last; ties keep slug order.
func SortByDate(posts []Post) {
	dates := make(map[string]time.Time, len(posts))
	for _, p := range posts {
		if t, err := ParseDate(p.Meta.PublishedAt); err == nil {
			dates[p.Slug] = t
		}
	}

	slices.SortStableFunc(posts, func(a, b Post) int {
		ta, okA := dates[a.Slug]
		tb, okB := dates[b.Slug]
		switch {
		case okA && !okB:
			return -1
		case !okA && okB:
			return 1
		case okA && okB && !ta.Equal(tb):
			return tb.Compare(ta)
		}
		return strings.Compare(a.Slug, b.Slug)
	})
}

// SortByName orders posts by slug.
func SortByName(posts []Post) {
	slices.SortFunc(posts, func(a, b Post) int {
		return cmp.Compare(a.Slug, b.Slug)
	})
}
