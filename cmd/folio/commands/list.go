package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/folio/internal/errors"
	"github.com/thoreinstein/folio/internal/post"
)

var (
	listJSON bool
	listSort string
)

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output in JSON format")
	listCmd.Flags().StringVar(&listSort, "sort", "date", "sort order: date (newest first), name")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts",
	Long: `List every post in the posts directory with its date and title.

Documents without a header block are skipped with a warning unless
on_malformed is set to fail.`,
	Example: `  # Newest first
  folio list

  # Alphabetical, as JSON
  folio list --sort name --json

See Also: folio show, folio check`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// listEntry is one post in `folio list --json` output.
type listEntry struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	PublishedAt string `json:"publishedAt"`
	Summary     string `json:"summary,omitempty"`
}

func runList(cmd *cobra.Command, _ []string) error {
	if listSort != "date" && listSort != "name" {
		return errors.NewUserError(errors.Newf("unknown sort order %q", listSort), "Use --sort date or --sort name")
	}

	loader, err := newLoader(cmd)
	if err != nil {
		return err
	}
	posts, err := loader.Load(cmd.Context())
	if err != nil {
		return err
	}

	if listSort == "name" {
		post.SortByName(posts)
	} else {
		post.SortByDate(posts)
	}

	if listJSON {
		return outputListJSON(cmd.OutOrStdout(), posts)
	}
	return outputListTabular(cmd.OutOrStdout(), posts)
}

func outputListJSON(w io.Writer, posts []post.Post) error {
	entries := make([]listEntry, len(posts))
	for i, p := range posts {
		entries[i] = listEntry{
			Slug:        p.Slug,
			Title:       p.Meta.Title,
			PublishedAt: p.Meta.PublishedAt,
			Summary:     p.Meta.Summary,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(entries), "encoding JSON")
}

func outputListTabular(w io.Writer, posts []post.Post) error {
	if len(posts) == 0 {
		fmt.Fprintln(w, "No posts found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tDATE\tTITLE")
	for _, p := range posts {
		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			color.CyanString(p.Slug),
			displayDate(p.Meta.PublishedAt, false),
			truncate(p.Meta.Title, 60),
		)
	}
	return tw.Flush()
}
