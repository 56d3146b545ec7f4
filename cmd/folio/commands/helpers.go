package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/folio/internal/config"
	"github.com/thoreinstein/folio/internal/errors"
	"github.com/thoreinstein/folio/internal/logging"
	"github.com/thoreinstein/folio/internal/paths"
	"github.com/thoreinstein/folio/internal/post"
	"github.com/thoreinstein/folio/internal/render"
)

// now is the clock used for relative dates; tests replace it.
var now = time.Now

// currentConfig returns the loaded config, or defaults when no config was
// loaded (commands invoked directly from tests).
func currentConfig() *config.Config {
	if cfg != nil {
		return cfg
	}
	return config.Default()
}

// postsDir returns --dir when set, otherwise posts_dir, with ~ expanded.
func postsDir() (string, error) {
	dir := dirFlag
	if dir == "" {
		dir = currentConfig().PostsDir
	}
	expanded, err := paths.ExpandHome(dir)
	if err != nil {
		return "", errors.NewUserError(err, "Check --dir or posts_dir")
	}
	return expanded, nil
}

// newLoader builds the post loader for cmd from flags and config.
func newLoader(cmd *cobra.Command) (*post.Loader, error) {
	c := currentConfig()

	dir, err := postsDir()
	if err != nil {
		return nil, err
	}
	policy, err := post.ParsePolicy(c.OnMalformed)
	if err != nil {
		return nil, errors.NewConfigError(err)
	}

	return post.NewLoader(dir,
		post.WithExtension(c.Extension),
		post.WithMalformedPolicy(policy),
		post.WithLogger(logging.FromContext(cmd.Context())),
	), nil
}

// newRenderer builds the renderer from the render config section.
func newRenderer() (*render.Renderer, error) {
	c := currentConfig().Render
	r, err := render.New(render.Options{
		Extensions: c.Extensions,
		Sanitize:   c.Sanitize,
		HardWraps:  c.HardWraps,
	})
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	return r, nil
}

// getPost loads one post, turning a missing slug into a user error.
func getPost(cmd *cobra.Command, loader *post.Loader, slug string) (*post.Post, error) {
	p, err := loader.Get(cmd.Context(), slug)
	switch {
	case errors.Is(err, errors.ErrNotFound):
		return nil, errors.NewUserError(err, "Run 'folio list' to see available posts")
	case errors.Is(err, errors.ErrInvalidSlug):
		return nil, errors.NewUserError(err, "A slug is a file name without its extension")
	case err != nil:
		return nil, err
	}
	return p, nil
}

// displayDate formats a publishedAt value, falling back to the raw value.
func displayDate(date string, includeRelative bool) string {
	s, err := post.FormatDate(date, includeRelative, now())
	if err != nil {
		return date
	}
	return s
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
