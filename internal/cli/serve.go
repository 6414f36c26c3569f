package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/typescatter/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the live composition page over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Server.Addr
			}

			e, err := c.newEnv(ctx, noCache)
			if err != nil {
				return err
			}
			defer e.Close()
			e.loadShapesAsync(ctx, c.cfg.Shapes.Source)

			srv := server.New(
				server.WithRenderOptions(e.renderOptions()...),
				server.WithShapes(e.registry),
				server.WithDefaultWidth(c.cfg.Width),
				server.WithPrintDelay(c.cfg.Print.Delay.Duration),
				server.WithResizeDebounce(c.cfg.Live.Debounce.Duration),
				server.WithLogger(c.Logger),
			)
			printInfo(c.out(), "Serving on %s", StyleValue.Render(addr))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "do not cache fetched assets")

	return cmd
}
