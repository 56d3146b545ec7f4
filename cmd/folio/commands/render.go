package commands

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/folio/pkg/fileutil"
)

var renderOutput string

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write the page to a file instead of stdout")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <slug>",
	Short: "Render a post as an HTML page",
	Long: `Render a post's Markdown content into a complete HTML page, including the
author card when the post has an author. Rendering follows the render section
of the config.`,
	Example: `  folio render hello-world > hello-world.html
  folio render hello-world -o public/hello-world.html

See Also: folio serve`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	loader, err := newLoader(cmd)
	if err != nil {
		return err
	}
	renderer, err := newRenderer()
	if err != nil {
		return err
	}
	p, err := getPost(cmd, loader, args[0])
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := renderer.Page(&buf, p, now()); err != nil {
		return err
	}

	if renderOutput == "" {
		_, err = buf.WriteTo(cmd.OutOrStdout())
		return err
	}
	return fileutil.AtomicWriteFile(renderOutput, buf.Bytes(), 0o644)
}
