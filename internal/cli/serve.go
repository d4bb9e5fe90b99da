package cli

import (
	"context"
	"net"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/uhrzeit/internal/server"
	"github.com/matzehuels/uhrzeit/pkg/config"
)

// serveCommand runs the HTTP API until interrupted. Edits to the config
// file update the log level and the defaults of players without stored
// settings.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the clock API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.Config()
			if addr == "" {
				addr = cfg.Server.Addr
			}

			sess, err := c.openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			srv := server.New(sess.client,
				server.WithLogger(c.Logger),
				server.WithDefaults(cfg.SettingsDefaults()),
			)

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.ListenAndServe(ctx, server.ServeOptions{
					Addr:            addr,
					ReadTimeout:     cfg.Server.ReadTimeout.Std(),
					ShutdownTimeout: cfg.Server.ShutdownTimeout.Std(),
					Ready: func(a net.Addr) {
						printSuccess(cmd.ErrOrStderr(), "Listening on http://%s", a)
						printDetail(cmd.ErrOrStderr(), "Press Ctrl+C to stop")
					},
				})
			})
			if path, ok := c.watchablePath(); ok {
				g.Go(func() error { return c.watchConfig(ctx, path, srv) })
			}
			return g.Wait()
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, 127.0.0.1:8080)")
	return cmd
}

// watchablePath returns the config file path if its directory exists.
func (c *CLI) watchablePath() (string, bool) {
	path := c.configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return "", false
		}
		path = p
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return "", false
	}
	return path, true
}

func (c *CLI) watchConfig(ctx context.Context, path string, srv *server.Server) error {
	c.Logger.Debug("watching config", "path", path)
	return config.Watch(ctx, path, func(cfg *config.Config, err error) {
		if err != nil {
			c.Logger.Warn("config reload failed, keeping previous config", "error", err)
			return
		}
		if !c.verbose {
			c.SetLogLevel(parseLevel(cfg.Log.Level))
		}
		srv.SetDefaults(cfg.SettingsDefaults())
		c.Logger.Info("config reloaded", "path", path)
	})
}
