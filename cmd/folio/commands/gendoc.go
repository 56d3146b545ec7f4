package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/folio/internal/errors"
	"github.com/thoreinstein/folio/internal/paths"
	"github.com/thoreinstein/folio/internal/post"
	"github.com/thoreinstein/folio/pkg/frontmatter"
)

var genDocOut string

var genDocCmd = &cobra.Command{
	Use:   "gen-doc",
	Short: "Generate Markdown documentation for the CLI",
	Long: `Write one Markdown page per command. Each page starts with a header block
(title, publishedAt, summary), so the output directory can itself be served
with: folio serve --dir <out> and extension set to .md.`,
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if genDocOut == "" {
			return errors.NewUserError(errors.New("output directory is required"), "Pass --out <dir>")
		}
		if err := paths.EnsureDir(genDocOut, paths.DefaultDirPerm); err != nil {
			return errors.Wrap(err, "creating output directory")
		}

		if err := doc.GenMarkdownTreeCustom(rootCmd, genDocOut, docHeader, docLink); err != nil {
			return errors.Wrap(err, "generating markdown")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Documentation generated in %s\n", genDocOut)
		return nil
	},
}

func init() {
	genDocCmd.Flags().StringVarP(&genDocOut, "out", "o", "", "output directory for documentation")
	rootCmd.AddCommand(genDocCmd)
}

// docHeader returns the header block for a generated page, e.g.
// folio_config_path.md gets the title "folio config path".
func docHeader(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	title := strings.ReplaceAll(base, "_", " ")

	md := post.Meta{
		Title:       title,
		PublishedAt: now().Format("2006-01-02"),
		Summary:     "Reference for " + title,
	}.Metadata()

	header, err := frontmatter.Format(md, "", post.HeaderOrder...)
	if err != nil {
		// command names never contain line breaks or ---
		panic(err)
	}
	return header
}

// docLink points cross-references at the page's slug on the preview server.
func docLink(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return "/blog/" + base
}
