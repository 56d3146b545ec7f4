package render

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/thoreinstein/folio/internal/errors"
	"github.com/thoreinstein/folio/internal/post"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// ErrUnknownExtension indicates an extension name Options does not support.
var ErrUnknownExtension = errors.New("unknown markdown extension")

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"tasklist":      extension.TaskList,
	"footnote":      extension.Footnote,
	"definition":    extension.DefinitionList,
	"typographer":   extension.Typographer,
}

// Options configures a Renderer.
type Options struct {
	// Extensions names goldmark extensions. Empty means GFM.
	Extensions []string
	// Sanitize passes rendered HTML through bluemonday's UGC policy.
	// Without it raw HTML in posts is emitted unchanged.
	Sanitize bool
	// HardWraps renders soft line breaks as <br>.
	HardWraps bool
}

// Renderer turns post content into HTML pages. It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	tmpl   *template.Template
}

// New builds a Renderer from opts.
func New(opts Options) (*Renderer, error) {
	exts, err := collectExtensions(opts.Extensions)
	if err != nil {
		return nil, err
	}

	rendererOptions := []renderer.Option{html.WithUnsafe()}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	r := &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(rendererOptions...),
		),
	}
	if opts.Sanitize {
		r.policy = bluemonday.UGCPolicy()
		// keep heading anchors from WithAutoHeadingID
		r.policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	}

	r.tmpl, err = template.New("").Funcs(template.FuncMap{
		"content":    r.Content,
		"formatDate": formatDate,
	}).ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, "parsing templates")
	}

	return r, nil
}

func collectExtensions(names []string) ([]goldmark.Extender, error) {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM}, nil
	}

	var exts []goldmark.Extender
	seen := map[string]bool{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if seen[key] {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownExtension, "%q", name)
		}
		exts = append(exts, ext)
		seen[key] = true
	}
	return exts, nil
}

// Content renders Markdown source to HTML.
func (r *Renderer) Content(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", errors.Wrap(err, "rendering markdown")
	}

	out := buf.Bytes()
	if r.policy != nil {
		out = r.policy.SanitizeBytes(out)
	}
	//nolint:gosec // output is either sanitized or trusted author content
	return template.HTML(out), nil
}

// pageData is the input of page.html.tmpl.
type pageData struct {
	Post *post.Post
	Now  time.Time
}

// indexData is the input of index.html.tmpl.
type indexData struct {
	Posts []post.Post
	Now   time.Time
}

// Page writes the full HTML page for p. now anchors relative dates.
func (r *Renderer) Page(w io.Writer, p *post.Post, now time.Time) error {
	return r.execute(w, "page.html.tmpl", pageData{Post: p, Now: now})
}

// Index writes the post list page. posts are shown in the given order.
func (r *Renderer) Index(w io.Writer, posts []post.Post, now time.Time) error {
	return r.execute(w, "index.html.tmpl", indexData{Posts: posts, Now: now})
}

// execute renders into a buffer first so a template error never leaves a
// half-written page on w.
func (r *Renderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return errors.Wrapf(err, "executing %s", name)
	}
	_, err := buf.WriteTo(w)
	return err
}

// formatDate shows the raw value when it does not parse, so a bad date
// does not break the page.
func formatDate(date string, includeRelative bool, now time.Time) string {
	s, err := post.FormatDate(date, includeRelative, now)
	if err != nil {
		return date
	}
	return s
}
