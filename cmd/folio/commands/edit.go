package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/folio/internal/editor"
	"github.com/thoreinstein/folio/internal/errors"
	"github.com/thoreinstein/folio/internal/post"
	"github.com/thoreinstein/folio/internal/validator"
)

func init() {
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit <slug>",
	Short: "Open a post in your editor",
	Long: `Open an existing post in $EDITOR (falling back to $VISUAL, nano, then vi)
and check it once the editor exits. Editors that return immediately, such as
GUI editors, need their wait flag, e.g. EDITOR="code --wait".`,
	Example: `  folio edit hello-world
  EDITOR="code --wait" folio edit hello-world

See Also: folio new, folio check`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	loader, err := newLoader(cmd)
	if err != nil {
		return err
	}
	p, err := getPost(cmd, loader, args[0])
	if err != nil {
		return err
	}
	return editAndCheck(cmd, loader, p.Slug)
}

// editAndCheck opens the post in the editor and reports any problems with
// the saved result.
func editAndCheck(cmd *cobra.Command, loader *post.Loader, slug string) error {
	path, err := loader.Path(slug)
	if err != nil {
		return err
	}

	e := editor.New()
	e.Stdin = cmd.InOrStdin()
	e.Stdout = cmd.OutOrStdout()
	e.Stderr = cmd.ErrOrStderr()
	if err := e.Open(cmd.Context(), path); err != nil {
		return errors.NewUserError(err, "Set $EDITOR to your editor command")
	}

	result := &validator.Result{}
	p, err := loader.Get(cmd.Context(), slug)
	switch {
	case err == nil:
		result.Merge(filepath.Base(p.Path), p.Validate())
	case errors.Is(err, errors.ErrNotFound):
		// the editor removed the file
		return nil
	default:
		return errors.NewUserError(err, "Add a header block starting and ending with ---")
	}

	if len(result.Issues) == 0 {
		return nil
	}
	return validator.NewReporter(cmd.ErrOrStderr(), validator.FormatText).Report(result, 1)
}
