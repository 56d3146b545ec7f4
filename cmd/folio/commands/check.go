package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/folio/internal/errors"
	"github.com/thoreinstein/folio/internal/validator"
	"github.com/thoreinstein/folio/pkg/frontmatter"
)

var checkFormat string

func init() {
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "output format: text, json")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate every post",
	Long: `Read every post and report problems. Documents without a header block,
and posts missing a title or a valid publishedAt, are errors. Missing
summaries and oddly shaped optional fields are warnings.

check reports malformed documents regardless of on_malformed and exits with
status 1 when any error is found.`,
	Example: `  folio check
  folio check --format json

See Also: folio list`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, _ []string) error {
	format := validator.Format(checkFormat)
	if format != validator.FormatText && format != validator.FormatJSON {
		return errors.NewUserError(errors.Newf("unknown format %q", checkFormat), "Use --format text or --format json")
	}

	loader, err := newLoader(cmd)
	if err != nil {
		return err
	}
	scan, err := loader.Scan(cmd.Context())
	if err != nil {
		return err
	}

	result := &validator.Result{}
	for _, err := range scan.Malformed {
		var malformed *frontmatter.MalformedDocumentError
		if !errors.As(err, &malformed) {
			return err
		}
		source := &validator.Result{}
		source.AddError("", "has no header block", nil)
		result.Merge(filepath.Base(malformed.Name), source)
	}
	for i := range scan.Posts {
		p := &scan.Posts[i]
		result.Merge(filepath.Base(p.Path), p.Validate())
	}

	checked := len(scan.Posts) + len(scan.Malformed)
	if err := validator.NewReporter(cmd.OutOrStdout(), format).Report(result, checked); err != nil {
		return err
	}

	if result.HasErrors() {
		return errors.NewExitError(errors.ErrValidationFailed, errors.ExitUser)
	}
	return nil
}
