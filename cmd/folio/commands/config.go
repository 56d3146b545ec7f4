package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/folio/internal/config"
	"github.com/thoreinstein/folio/internal/errors"
	"github.com/thoreinstein/folio/internal/paths"
	"github.com/thoreinstein/folio/internal/translate"
)

var configFormat string

func init() {
	configCmd.Flags().StringVarP(&configFormat, "format", "f", "yaml", "output format: yaml, json, toml")
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration folio is using after merging defaults, the config
file and FOLIO_* environment variables.

Environment variables use the FOLIO_ prefix with dots replaced by
underscores, for example FOLIO_POSTS_DIR or FOLIO_SERVER_ADDR.`,
	Example: `  folio config
  folio config --format json
  folio config path

See Also: folio config path`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print where folio looks for its config file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "default: %s\n", paths.ConfigFile())
		if used := config.FileUsed(); used != "" {
			fmt.Fprintf(w, "in use:  %s\n", used)
		} else {
			fmt.Fprintln(w, "in use:  none (built-in defaults)")
		}
	},
}

func runConfig(cmd *cobra.Command, _ []string) error {
	format, err := translate.ParseFormat(configFormat)
	if err != nil {
		return errors.NewUserError(err, "Use --format yaml, json or toml")
	}

	// yaml tags carry the config's key names; other formats convert from it
	data, err := translate.Marshal(translate.FormatYAML, currentConfig())
	if err != nil {
		return err
	}
	if format != translate.FormatYAML {
		if data, err = translate.Convert(data, translate.FormatYAML, format); err != nil {
			return err
		}
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
