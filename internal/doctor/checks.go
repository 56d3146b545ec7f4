package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/thoreinstein/folio/internal/errors"
	"github.com/thoreinstein/folio/internal/paths"
	"github.com/thoreinstein/folio/internal/post"
	"github.com/thoreinstein/folio/internal/render"
	"github.com/thoreinstein/folio/pkg/frontmatter"
)

// ConfigCheck reports whether the configuration loaded.
type ConfigCheck struct {
	// File is the config file that was read, empty when defaults were used.
	File string
	// Err is the error returned while loading, if any.
	Err error
}

var _ Check = (*ConfigCheck)(nil)

func (c *ConfigCheck) Name() string     { return "config" }
func (c *ConfigCheck) Category() string { return "config" }

func (c *ConfigCheck) Run(context.Context) *CheckResult {
	res := &CheckResult{Name: c.Name(), Category: c.Category()}
	switch {
	case c.Err != nil:
		res.Status = SeverityError
		res.Message = c.Err.Error()
		res.FixHint = "Fix the file shown by: folio config path"
		if c.File != "" {
			res.Details = map[string]any{"file": c.File}
		}
	case c.File == "":
		res.Status = SeverityInfo
		res.Message = "no config file, using built-in defaults"
		res.Details = map[string]any{"default": paths.ConfigFile()}
	default:
		res.Status = SeverityPass
		res.Message = "loaded " + c.File
	}
	return res
}

// PostsDirCheck verifies the posts directory exists and holds posts.
type PostsDirCheck struct {
	Loader *post.Loader
}

var _ Check = (*PostsDirCheck)(nil)

func (c *PostsDirCheck) Name() string     { return "posts-dir" }
func (c *PostsDirCheck) Category() string { return "posts" }

func (c *PostsDirCheck) Run(context.Context) *CheckResult {
	dir := c.Loader.Dir()
	res := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"dir": dir, "extension": c.Loader.Extension()},
	}

	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		res.Status = SeverityError
		res.Message = "posts directory does not exist"
		res.FixHint = "Create " + dir + " or set posts_dir"
		return res
	case err != nil:
		res.Status = SeverityError
		res.Message = fmt.Sprintf("cannot stat posts directory: %v", err)
		return res
	case !info.IsDir():
		res.Status = SeverityError
		res.Message = "expected directory but found file"
		res.FixHint = "Point posts_dir at a directory"
		return res
	}

	files, err := c.Loader.Files()
	if err != nil {
		res.Status = SeverityError
		res.Message = err.Error()
		return res
	}
	res.Details["files"] = len(files)
	if len(files) == 0 {
		res.Status = SeverityWarning
		res.Message = fmt.Sprintf("no %s files in %s", c.Loader.Extension(), dir)
		res.FixHint = "Create one with: folio new <slug> --title <title>"
		return res
	}

	res.Status = SeverityPass
	res.Message = fmt.Sprintf("%d post file(s) in %s", len(files), dir)
	return res
}

// PostsCheck parses every post and reports malformed documents and posts
// with invalid header fields.
type PostsCheck struct {
	Loader *post.Loader
}

var _ Check = (*PostsCheck)(nil)

func (c *PostsCheck) Name() string     { return "posts-parse" }
func (c *PostsCheck) Category() string { return "posts" }

func (c *PostsCheck) Run(ctx context.Context) *CheckResult {
	res := &CheckResult{Name: c.Name(), Category: c.Category()}

	scan, err := c.Loader.Scan(ctx)
	if err != nil {
		res.Status = SeverityError
		res.Message = err.Error()
		return res
	}

	var invalid []string
	for i := range scan.Posts {
		if scan.Posts[i].Validate().HasErrors() {
			invalid = append(invalid, filepath.Base(scan.Posts[i].Path))
		}
	}

	total := len(scan.Posts) + len(scan.Malformed)
	switch {
	case len(scan.Malformed) > 0:
		res.Status = SeverityError
		res.Message = fmt.Sprintf("%d of %d document(s) have no header block", len(scan.Malformed), total)
		res.Details = map[string]any{"files": malformedNames(scan.Malformed)}
		res.FixHint = "Run 'folio check' for details"
	case len(invalid) > 0:
		res.Status = SeverityWarning
		res.Message = fmt.Sprintf("%d of %d post(s) have invalid header fields", len(invalid), total)
		res.Details = map[string]any{"files": invalid}
		res.FixHint = "Run 'folio check' for details"
	default:
		res.Status = SeverityPass
		res.Message = fmt.Sprintf("%d post(s) parsed", total)
	}
	return res
}

func malformedNames(errs []error) []string {
	names := make([]string, 0, len(errs))
	for _, err := range errs {
		var malformed *frontmatter.MalformedDocumentError
		if errors.As(err, &malformed) {
			names = append(names, filepath.Base(malformed.Name))
		}
	}
	return names
}

// RenderCheck verifies the render settings build a renderer.
type RenderCheck struct {
	Options render.Options
}

var _ Check = (*RenderCheck)(nil)

func (c *RenderCheck) Name() string     { return "render" }
func (c *RenderCheck) Category() string { return "render" }

func (c *RenderCheck) Run(context.Context) *CheckResult {
	res := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"extensions": c.Options.Extensions},
	}

	if _, err := render.New(c.Options); err != nil {
		res.Status = SeverityError
		res.Message = err.Error()
		res.FixHint = "Remove unknown entries from render.extensions"
		return res
	}
	if !c.Options.Sanitize {
		res.Status = SeverityInfo
		res.Message = "sanitize is off: raw HTML in posts is rendered unchanged"
		return res
	}

	res.Status = SeverityPass
	res.Message = "renderer configured"
	return res
}
