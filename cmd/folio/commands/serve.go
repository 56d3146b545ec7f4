package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/folio/internal/logging"
	"github.com/thoreinstein/folio/internal/server"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: server.addr from config)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Preview the blog over HTTP",
	Long: `Serve the blog locally. Posts are read on every request, so edits show up
on reload.

Routes:
  /                  index of posts, newest first
  /blog/<slug>       one post
  /api/posts         all posts as JSON
  /api/posts/<slug>  one post as JSON
  /healthz           liveness check`,
	Example: `  folio serve
  folio serve --addr :8080

See Also: folio render`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr := serveAddr
	if addr == "" {
		addr = currentConfig().Server.Addr
	}

	loader, err := newLoader(cmd)
	if err != nil {
		return err
	}
	renderer, err := newRenderer()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(loader, renderer,
		server.WithLogger(logging.FromContext(ctx)),
		server.WithClock(now),
	)

	fmt.Fprintf(cmd.ErrOrStderr(), "Serving %s on http://%s\n", loader.Dir(), addr)
	return srv.Run(ctx, addr)
}
