package post

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/thoreinstein/folio/internal/errors"
	"github.com/thoreinstein/folio/internal/logging"
	"github.com/thoreinstein/folio/pkg/fileutil"
	"github.com/thoreinstein/folio/pkg/frontmatter"
)

// DefaultExtension is the document extension the loader lists.
const DefaultExtension = ".mdx"

// MalformedPolicy decides what Load does with documents that have no header.
type MalformedPolicy int

const (
	// PolicySkip logs a warning and leaves the document out.
	PolicySkip MalformedPolicy = iota
	// PolicyFail makes Load return the first malformed document's error.
	PolicyFail
)

// ParsePolicy maps the on_malformed config value to a policy.
func ParsePolicy(s string) (MalformedPolicy, error) {
	switch s {
	case "", "skip":
		return PolicySkip, nil
	case "fail":
		return PolicyFail, nil
	default:
		return PolicySkip, errors.Newf("unknown malformed-document policy %q", s)
	}
}

// Loader reads the posts in a single directory.
type Loader struct {
	dir     string
	ext     string
	policy  MalformedPolicy
	workers int
	logger  *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithExtension sets the document extension, including the leading dot.
// Matching is exact and case-sensitive.
func WithExtension(ext string) LoaderOption {
	return func(l *Loader) {
		l.ext = ext
	}
}

// WithMalformedPolicy sets what Load does with header-less documents.
func WithMalformedPolicy(p MalformedPolicy) LoaderOption {
	return func(l *Loader) {
		l.policy = p
	}
}

// WithWorkers bounds how many files are read at once. Values below 1
// mean GOMAXPROCS.
func WithWorkers(n int) LoaderOption {
	return func(l *Loader) {
		l.workers = n
	}
}

// WithLogger sets the logger. Without it the logger in the context passed
// to Load is used.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader returns a Loader for dir.
func NewLoader(dir string, opts ...LoaderOption) *Loader {
	l := &Loader{
		dir: dir,
		ext: DefaultExtension,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.workers < 1 {
		l.workers = runtime.GOMAXPROCS(0)
	}
	return l
}

// Dir returns the directory the loader reads.
func (l *Loader) Dir() string {
	return l.dir
}

// Extension returns the file extension posts are matched by.
func (l *Loader) Extension() string {
	return l.ext
}

func (l *Loader) log(ctx context.Context) *slog.Logger {
	if l.logger != nil {
		return l.logger
	}
	return logging.FromContext(ctx)
}

// Files lists the documents in the directory, sorted by name. Only direct
// children whose extension matches exactly and whose stem is a valid slug
// are returned, so every listed post can be fetched with Get. Symlinks that
// point nowhere, such as editor lock files, are skipped.
func (l *Loader) Files() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "listing posts in %s", l.dir)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != l.ext || ValidateSlug(slugOf(name)) != nil {
			continue
		}
		path := filepath.Join(l.dir, name)
		if e.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
				continue
			}
		}
		files = append(files, path)
	}
	return files, nil
}

// ScanResult holds every post in the directory plus the documents that
// could not be parsed, each as a *frontmatter.MalformedDocumentError.
type ScanResult struct {
	Posts     []Post
	Malformed []error
}

// Scan reads and parses every document concurrently. Malformed documents
// are collected rather than failing the scan; filesystem errors stop it.
// Both slices follow file order.
func (l *Loader) Scan(ctx context.Context) (*ScanResult, error) {
	files, err := l.Files()
	if err != nil {
		return nil, err
	}

	logger := l.log(ctx)
	logger.Debug("scanning posts", "dir", l.dir, "files", len(files), "workers", l.workers)

	type slot struct {
		post      *Post
		malformed error
	}
	slots := make([]slot, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := l.read(gctx, path)
			var malformed *frontmatter.MalformedDocumentError
			switch {
			case errors.As(err, &malformed):
				slots[i].malformed = err
			case err != nil:
				return err
			default:
				slots[i].post = p
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &ScanResult{Posts: make([]Post, 0, len(files))}
	for _, s := range slots {
		if s.malformed != nil {
			res.Malformed = append(res.Malformed, s.malformed)
			continue
		}
		res.Posts = append(res.Posts, *s.post)
	}
	return res, nil
}

// Load returns the posts in the directory in file order, applying the
// malformed-document policy.
func (l *Loader) Load(ctx context.Context) ([]Post, error) {
	res, err := l.Scan(ctx)
	if err != nil {
		return nil, err
	}

	if len(res.Malformed) > 0 && l.policy == PolicyFail {
		return nil, res.Malformed[0]
	}
	for _, err := range res.Malformed {
		l.log(ctx).Warn("skipping document", "err", err)
	}
	return res.Posts, nil
}

// Get loads the post with the given slug. It returns an error matching
// errors.ErrNotFound when no such document exists and the
// MalformedDocumentError when it has no header, regardless of policy.
func (l *Loader) Get(ctx context.Context, slug string) (*Post, error) {
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}

	path := filepath.Join(l.dir, slug+l.ext)
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, errors.Wrapf(errors.ErrNotFound, "%q", slug)
	case err != nil:
		return nil, errors.Wrapf(err, "reading post %q", slug)
	case info.IsDir():
		return nil, errors.Wrapf(errors.ErrNotFound, "%q", slug)
	}

	return l.read(ctx, path)
}

// Path returns the file a post with slug would be stored at.
func (l *Loader) Path(slug string) (string, error) {
	if err := ValidateSlug(slug); err != nil {
		return "", err
	}
	return filepath.Join(l.dir, slug+l.ext), nil
}

func (l *Loader) read(ctx context.Context, path string) (*Post, error) {
	logger := l.log(ctx)
	logger.Debug("reading post", "path", path)

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, err
	}

	md, content, err := frontmatter.ExtractNamed(path, string(data))
	if err != nil {
		return nil, err
	}
	logger.Log(ctx, logging.LevelTrace, "extracted header", "path", path, "keys", len(md))

	return &Post{
		Slug:    slugOf(filepath.Base(path)),
		Meta:    DecodeMeta(md),
		Raw:     md,
		Content: content,
		Path:    path,
	}, nil
}

func slugOf(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// ValidateSlug rejects slugs that cannot name a file in the posts directory
// or cannot appear unescaped as a /blog/{slug} path segment. Hidden names
// are rejected too.
func ValidateSlug(slug string) error {
	if slug == "" || strings.HasPrefix(slug, ".") ||
		strings.ContainsAny(slug, `/\?#%`) || strings.ContainsRune(slug, 0) {
		return errors.Wrapf(errors.ErrInvalidSlug, "%q", slug)
	}
	return nil
}
