package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/folio/internal/errors"
	"github.com/thoreinstein/folio/internal/paths"
	"github.com/thoreinstein/folio/internal/post"
	"github.com/thoreinstein/folio/pkg/fileutil"
	"github.com/thoreinstein/folio/pkg/frontmatter"
)

var (
	newTitle        string
	newSummary      string
	newDate         string
	newImage        string
	newAuthorName   string
	newAuthorBio    string
	newAuthorAvatar string
	newEdit         bool
)

func init() {
	newCmd.Flags().StringVar(&newTitle, "title", "", "post title (required)")
	newCmd.Flags().StringVar(&newSummary, "summary", "", "one-line summary shown on the index")
	newCmd.Flags().StringVar(&newDate, "date", "", "publication date (default: today)")
	newCmd.Flags().StringVar(&newImage, "image", "", "cover image URL")
	newCmd.Flags().StringVar(&newAuthorName, "author-name", "", "author name")
	newCmd.Flags().StringVar(&newAuthorBio, "author-bio", "", "author bio")
	newCmd.Flags().StringVar(&newAuthorAvatar, "author-avatar", "", "author avatar URL")
	newCmd.Flags().BoolVarP(&newEdit, "edit", "e", false, "open the new post in your editor")
	_ = newCmd.MarkFlagRequired("title")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <slug>",
	Short: "Create a post with a header block",
	Long: `Create a new post file named after the slug in the posts directory. The
header is written in the order title, publishedAt, summary, image, author.
An existing post is never overwritten.`,
	Example: `  folio new hello-world --title "Hello, World"
  folio new launch --title Launch --date 2024-06-01 --author-name "Jane Doe"
  folio new draft --title Draft --edit

See Also: folio check`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	slug := args[0]

	loader, err := newLoader(cmd)
	if err != nil {
		return err
	}
	path, err := loader.Path(slug)
	if err != nil {
		return errors.NewUserError(err, "A slug is a file name without its extension")
	}

	date := newDate
	if date == "" {
		date = now().Format("2006-01-02")
	} else if _, err := post.ParseDate(date); err != nil {
		return errors.NewUserError(err, "Use a date like 2024-01-31 or 2024-01-31T09:30:00")
	}

	meta := post.Meta{
		Title:       newTitle,
		PublishedAt: date,
		Summary:     newSummary,
		Image:       newImage,
	}
	if newAuthorName != "" || newAuthorBio != "" || newAuthorAvatar != "" {
		meta.Author = &post.Author{
			Name:      newAuthorName,
			Bio:       newAuthorBio,
			AvatarURL: newAuthorAvatar,
		}
	}

	text, err := frontmatter.Format(meta.Metadata(), "", post.HeaderOrder...)
	if err != nil {
		return errors.NewUserError(err, "Header values cannot contain line breaks or ---")
	}

	if err := paths.EnsureDir(loader.Dir(), paths.DefaultDirPerm); err != nil {
		return err
	}
	if err := fileutil.CreateFile(path, []byte(text), 0o644); err != nil {
		if errors.Is(err, errors.ErrAlreadyExists) {
			return errors.NewUserError(err, "Pick another slug or edit the existing file")
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	if newEdit {
		return editAndCheck(cmd, loader, slug)
	}
	return nil
}
