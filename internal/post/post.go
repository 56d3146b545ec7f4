package post

import (
	"github.com/thoreinstein/folio/internal/validator"
	"github.com/thoreinstein/folio/pkg/frontmatter"
)

// Author is the nested author object of a post.
type Author struct {
	Name      string `json:"name" yaml:"name" toml:"name"`
	Bio       string `json:"bio,omitempty" yaml:"bio,omitempty" toml:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty" yaml:"avatarUrl,omitempty" toml:"avatarUrl,omitempty"`
}

// Meta is the typed view of a post's header.
type Meta struct {
	Title       string  `json:"title" yaml:"title" toml:"title"`
	PublishedAt string  `json:"publishedAt" yaml:"publishedAt" toml:"publishedAt"`
	Summary     string  `json:"summary,omitempty" yaml:"summary,omitempty" toml:"summary,omitempty"`
	Image       string  `json:"image,omitempty" yaml:"image,omitempty" toml:"image,omitempty"`
	Author      *Author `json:"author,omitempty" yaml:"author,omitempty" toml:"author,omitempty"`
}

// Header keys read by DecodeMeta.
const (
	KeyTitle       = "title"
	KeyPublishedAt = "publishedAt"
	KeySummary     = "summary"
	KeyImage       = "image"
	KeyAuthor      = "author"
)

// Author object keys.
const (
	KeyAuthorName   = "name"
	KeyAuthorBio    = "bio"
	KeyAuthorAvatar = "avatarUrl"
)

// HeaderOrder is the key order folio writes headers in.
var HeaderOrder = []string{KeyTitle, KeyPublishedAt, KeySummary, KeyImage, KeyAuthor}

// DecodeMeta maps extracted metadata onto Meta. Values of the wrong shape
// and unknown keys are ignored.
func DecodeMeta(md frontmatter.Metadata) Meta {
	var m Meta
	m.Title, _ = md.GetString(KeyTitle)
	m.PublishedAt, _ = md.GetString(KeyPublishedAt)
	m.Summary, _ = md.GetString(KeySummary)
	m.Image, _ = md.GetString(KeyImage)

	if obj, ok := md.GetNested(KeyAuthor); ok {
		m.Author = &Author{
			Name:      obj[KeyAuthorName],
			Bio:       obj[KeyAuthorBio],
			AvatarURL: obj[KeyAuthorAvatar],
		}
	}

	return m
}

// Metadata converts m back into header metadata. Empty optional fields
// are left out.
func (m Meta) Metadata() frontmatter.Metadata {
	md := frontmatter.Metadata{
		KeyTitle:       frontmatter.ScalarValue(m.Title),
		KeyPublishedAt: frontmatter.ScalarValue(m.PublishedAt),
	}
	if m.Summary != "" {
		md[KeySummary] = frontmatter.ScalarValue(m.Summary)
	}
	if m.Image != "" {
		md[KeyImage] = frontmatter.ScalarValue(m.Image)
	}
	if m.Author != nil {
		obj := map[string]string{KeyAuthorName: m.Author.Name}
		if m.Author.Bio != "" {
			obj[KeyAuthorBio] = m.Author.Bio
		}
		if m.Author.AvatarURL != "" {
			obj[KeyAuthorAvatar] = m.Author.AvatarURL
		}
		md[KeyAuthor] = frontmatter.NestedValue(obj)
	}
	return md
}

// Post is one parsed document.
type Post struct {
	// Slug is the file name without its extension.
	Slug string
	Meta Meta
	// Raw holds every extracted header field, including ones Meta ignores.
	Raw     frontmatter.Metadata
	Content string
	// Path is the file the post was read from.
	Path string
}

// Validate reports missing or malformed header fields.
func (p *Post) Validate() *validator.Result {
	r := &validator.Result{}

	for _, key := range []string{KeyTitle, KeyPublishedAt} {
		v, ok := p.Raw[key]
		switch {
		case !ok:
			r.AddError(key, "is required", nil)
		case v.Kind != frontmatter.KindScalar:
			r.AddError(key, "must be a plain value, not an object", nil)
		case v.Scalar == "":
			r.AddError(key, "is empty", nil)
		}
	}

	if p.Meta.PublishedAt != "" {
		if _, err := ParseDate(p.Meta.PublishedAt); err != nil {
			r.AddError(KeyPublishedAt, "is not a valid date", p.Meta.PublishedAt)
		}
	}

	for _, key := range []string{KeySummary, KeyImage} {
		if v, ok := p.Raw[key]; ok && v.Kind != frontmatter.KindScalar {
			r.AddWarning(key, "should be a plain value, not an object", nil)
		}
	}
	if _, ok := p.Raw[KeySummary]; !ok {
		r.AddWarning(KeySummary, "is recommended for the index page", nil)
	}

	if v, ok := p.Raw[KeyAuthor]; ok {
		switch {
		case v.Kind != frontmatter.KindNested:
			r.AddWarning(KeyAuthor, "should be an object, not a plain value", v.Scalar)
		case p.Meta.Author.Name == "":
			r.AddWarning(KeyAuthor+"."+KeyAuthorName, "is required when author is set", nil)
		}
	}

	return r
}
