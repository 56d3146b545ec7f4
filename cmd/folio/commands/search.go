package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/folio/internal/post"
)

var (
	searchAuthor string
	searchJSON   bool
)

func init() {
	searchCmd.Flags().StringVar(&searchAuthor, "author", "", "only posts by this author")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search posts by slug, title and summary",
	Long: `Search posts case-insensitively. Exact slug or title matches rank first,
then title prefixes, then slug or title substrings, then summary matches.
Equal matches are listed newest first. Without a query every post passing
the filters is listed.`,
	Example: `  folio search errors
  folio search --author "Jane Doe"

See Also: folio list, folio pick`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	var query string
	if len(args) == 1 {
		query = args[0]
	}

	loader, err := newLoader(cmd)
	if err != nil {
		return err
	}
	posts, err := loader.Load(cmd.Context())
	if err != nil {
		return err
	}
	post.SortByDate(posts)
	posts = post.Search(posts, query, post.SearchOptions{Author: searchAuthor})

	if searchJSON {
		return outputListJSON(cmd.OutOrStdout(), posts)
	}
	return outputListTabular(cmd.OutOrStdout(), posts)
}
