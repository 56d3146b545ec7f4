package post

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func slugs(posts []Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Slug
	}
	return out
}

func TestSortByDate(t *testing.T) {
	posts := []Post{
		{Slug: "undated"},
		{Slug: "old", Meta: Meta{PublishedAt: "2020-05-01"}},
		{Slug: "garbage", Meta: Meta{PublishedAt: "soon"}},
		{Slug: "new", Meta: Meta{PublishedAt: "2024-01-01T10:00:00"}},
		{Slug: "same-b", Meta: Meta{PublishedAt: "2022-02-02"}},
		{Slug: "same-a", Meta: Meta{PublishedAt: "2022-02-02"}},
	}

	SortByDate(posts)

	want := []string{"new", "same-a", "same-b", "old", "garbage", "undated"}
	if diff := cmp.Diff(want, slugs(posts)); diff != "" {
		t.Errorf("SortByDate() order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortByName(t *testing.T) {
	posts := []Post{{Slug: "b"}, {Slug: "c"}, {Slug: "a"}}
	SortByName(posts)
	if diff := cmp.Diff([]string{"a", "b", "c"}, slugs(posts)); diff != "" {
		t.Errorf("SortByName() mismatch (-want +got):\n%s", diff)
	}
}
