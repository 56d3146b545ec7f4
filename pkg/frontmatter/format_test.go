package frontmatter

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormat(t *testing.T) {
	md := Metadata{
		"title":       ScalarValue("Hello, World"),
		"publishedAt": ScalarValue("2024-01-01"),
		"summary":     ScalarValue(""),
		"image":       ScalarValue("'quoted'"),
		"author": NestedValue(map[string]string{
			"name": "Jane Doe",
			"bio":  " padded ",
		}),
	}

	got, err := Format(md, "\n# Body\n\n", "title", "publishedAt", "summary", "missing")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := `---
title: Hello, World
publishedAt: 2024-01-01
summary: ""
author:
  bio: " padded "
  name: Jane Doe
image: "'quoted'"
---

# Body
`
	if got != want {
		t.Errorf("Format() mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestFormat_EmptyContent(t *testing.T) {
	got, err := Format(Metadata{"title": ScalarValue("x")}, "   ")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if want := "---\ntitle: x\n---\n"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	md := Metadata{
		"title":       ScalarValue(`"Quoted", really`),
		"publishedAt": ScalarValue("2024-01-01T10:00:00"),
		"empty":       ScalarValue(""),
		"author":      NestedValue(map[string]string{"name": "Jane", "avatarUrl": "https://x.test/a.png", "bio": ""}),
		"editor":      NestedValue(nil),
	}

	text, err := Format(md, "Body with --- inside")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	got, content, err := Extract(text)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if diff := cmp.Diff(md, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if content != "Body with --- inside" {
		t.Errorf("content = %q", content)
	}
}

func TestFormat_Unrepresentable(t *testing.T) {
	tests := []struct {
		name string
		md   Metadata
	}{
		{"empty key", Metadata{"": ScalarValue("x")}},
		{"key with colon", Metadata{"a:b": ScalarValue("x")}},
		{"key with leading space", Metadata{" a": ScalarValue("x")}},
		{"key with newline", Metadata{"a\nb": ScalarValue("x")}},
		{"marker in value", Metadata{"a": ScalarValue("x --- y")}},
		{"newline in value", Metadata{"a": ScalarValue("x\ny")}},
		{"nested key not a word", Metadata{"a": NestedValue(map[string]string{"b-c": "x"})}},
		{"marker in nested value", Metadata{"a": NestedValue(map[string]string{"b": "---"})}},
		{"unknown kind", Metadata{"a": {Kind: Kind(9)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Format(tt.md, "")
			if !errors.Is(err, ErrUnrepresentable) {
				t.Errorf("Format() error = %v, want ErrUnrepresentable", err)
			}
		})
	}
}
