package commands

import (
	"fmt"
	"io"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/folio/internal/errors"
	"github.com/thoreinstein/folio/internal/post"
	"github.com/thoreinstein/folio/internal/translate"
)

var showFormat string

func init() {
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "text", "output format: text, json, yaml, toml")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a post's metadata and content",
	Long: `Show one post. The text format prints the typed fields and the content;
json, yaml and toml print every header field exactly as extracted, along with
the slug and content.`,
	Example: `  folio show hello-world
  folio show hello-world --format json

See Also: folio list, folio render`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	if showFormat != "text" {
		if _, err := translate.ParseFormat(showFormat); err != nil {
			return errors.NewUserError(err, "Use --format text, json, yaml or toml")
		}
	}

	loader, err := newLoader(cmd)
	if err != nil {
		return err
	}
	p, err := getPost(cmd, loader, args[0])
	if err != nil {
		return err
	}

	if showFormat == "text" {
		return writePostText(cmd.OutOrStdout(), p)
	}
	data, err := translate.Encode(translate.Format(showFormat), p)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// writePostText prints a post for people. Header fields folio does not
// know are listed after the known ones.
func writePostText(w io.Writer, p *post.Post) error {
	bold := color.New(color.Bold).SprintFunc()
	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(w, "%-10s %s\n", name+":", value)
		}
	}

	fmt.Fprintln(w, bold(p.Meta.Title))
	field("Slug", p.Slug)
	field("Published", displayDate(p.Meta.PublishedAt, true))
	field("Summary", p.Meta.Summary)
	field("Image", p.Meta.Image)
	if a := p.Meta.Author; a != nil {
		field("Author", a.Name)
		field("Bio", a.Bio)
		field("Avatar", a.AvatarURL)
	}

	var extra []string
	for key := range p.Raw {
		if !slices.Contains(post.HeaderOrder, key) {
			extra = append(extra, key)
		}
	}
	slices.Sort(extra)
	for _, key := range extra {
		if nested, ok := p.Raw.GetNested(key); ok {
			fmt.Fprintf(w, "%-10s %v\n", key+":", nested)
			continue
		}
		field(key, p.Raw[key].Scalar)
	}

	if p.Content != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, p.Content)
	}
	return nil
}
