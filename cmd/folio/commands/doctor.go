package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/folio/internal/config"
	"github.com/thoreinstein/folio/internal/doctor"
	"github.com/thoreinstein/folio/internal/errors"
	"github.com/thoreinstein/folio/internal/logging"
	"github.com/thoreinstein/folio/internal/post"
	"github.com/thoreinstein/folio/internal/render"
)

var (
	doctorJSON bool
	doctorAll  bool
	doctorFix  bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorAll, "all", false, "show passing checks too")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "fix permission problems, then check again")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and posts directory problems",
	Long: `Run diagnostic checks on the configuration, the posts directory, the posts
themselves, the render settings and file permissions.

doctor runs even when the config file is invalid, and reports that as an
error.

Exit codes:
  0 - No errors or warnings
  1 - Warnings present, no errors
  2 - Errors present`,
	Example: `  folio doctor
  folio doctor --all
  folio doctor --fix

See Also: folio check, folio config path`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

// errDoctorWarnings and errDoctorErrors carry doctor's exit codes.
var (
	errDoctorWarnings = errors.New("doctor found warnings")
	errDoctorErrors   = errors.New("doctor found errors")
)

func runDoctor(cmd *cobra.Command, _ []string) error {
	runner, err := doctorRunner(cmd)
	if err != nil {
		return err
	}

	report := runner.Run(cmd.Context())

	if doctorFix {
		fixes := runner.Fix()
		if !doctorJSON {
			writeFixes(cmd.OutOrStdout(), fixes)
		}
		if len(fixes) > 0 {
			report = runner.Run(cmd.Context())
		}
	}

	if doctorJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
	} else {
		writeDoctorText(cmd.OutOrStdout(), report, doctorAll)
	}

	switch {
	case report.HasErrors():
		return errors.NewExitError(errDoctorErrors, errors.ExitSystem)
	case report.HasWarnings():
		return errors.NewExitError(errDoctorWarnings, errors.ExitUser)
	}
	return nil
}

// doctorRunner builds the checks. A config load error becomes a failing
// check and the remaining checks run against the defaults.
func doctorRunner(cmd *cobra.Command) (*doctor.Runner, error) {
	c := currentConfig()
	dir, err := postsDir()
	if err != nil {
		return nil, err
	}
	loader := post.NewLoader(dir,
		post.WithExtension(c.Extension),
		post.WithLogger(logging.FromContext(cmd.Context())),
	)

	return doctor.NewRunner(
		&doctor.ConfigCheck{File: config.FileUsed(), Err: configLoadErr},
		&doctor.PostsDirCheck{Loader: loader},
		&doctor.PostsCheck{Loader: loader},
		&doctor.RenderCheck{Options: render.Options{
			Extensions: c.Render.Extensions,
			Sanitize:   c.Render.Sanitize,
			HardWraps:  c.Render.HardWraps,
		}},
		&doctor.PermissionCheck{Loader: loader, ConfigFile: config.FileUsed()},
	), nil
}

func writeFixes(w io.Writer, fixes []doctor.FixResult) {
	for _, f := range fixes {
		if f.Fixed {
			fmt.Fprintf(w, "%s fixed %s: %s\n", color.GreenString("✓"), f.Path, f.Description)
		} else {
			fmt.Fprintf(w, "%s could not fix %s: %s\n", color.RedString("✗"), f.Path, f.Description)
		}
	}
	if len(fixes) > 0 {
		fmt.Fprintln(w)
	}
}

func writeDoctorText(w io.Writer, report *doctor.Report, showAll bool) {
	hasOutput := false
	for _, result := range report.Results {
		if !showAll && result.Status != doctor.SeverityError && result.Status != doctor.SeverityWarning {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)
		if result.FixHint != "" && result.Status >= doctor.SeverityWarning {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return color.GreenString("✓")
	case doctor.SeverityInfo:
		return color.CyanString("ℹ")
	case doctor.SeverityWarning:
		return color.YellowString("⚠")
	case doctor.SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}
