package commands

import (
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/folio/internal/errors"
	"github.com/thoreinstein/folio/internal/post"
)

// finder chooses one post interactively. It returns fuzzyfinder.ErrAbort
// when the user cancels.
type finder interface {
	Find(posts []post.Post) (int, error)
}

type fuzzyFinder struct{}

func (fuzzyFinder) Find(posts []post.Post) (int, error) {
	return fuzzyfinder.Find(
		posts,
		func(i int) string {
			return fmt.Sprintf("%s  %s", posts[i].Slug, posts[i].Meta.Title)
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			p := posts[i]
			return fmt.Sprintf("%s\n%s\n\n%s",
				p.Meta.Title,
				displayDate(p.Meta.PublishedAt, true),
				p.Meta.Summary,
			)
		}),
	)
}

// picker is replaced in tests.
var picker finder = fuzzyFinder{}

func init() {
	rootCmd.AddCommand(pickCmd)
}

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose a post interactively and show it",
	Long: `Open a fuzzy finder over every post, newest first, with a preview of the
selected post's date and summary. The chosen post is printed as 'folio show'
would print it. Press Esc or Ctrl-C to cancel.`,
	Example: `  folio pick

See Also: folio show, folio list`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func runPick(cmd *cobra.Command, _ []string) error {
	loader, err := newLoader(cmd)
	if err != nil {
		return err
	}
	posts, err := loader.Load(cmd.Context())
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No posts found.")
		return nil
	}
	post.SortByDate(posts)

	idx, err := picker.Find(posts)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive selection failed")
	}

	return writePostText(cmd.OutOrStdout(), &posts[idx])
}
