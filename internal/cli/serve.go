package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	appLog "goalcal/internal/log"
	"goalcal/internal/web"
)

func newServeCmd(app *App) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts, hit-testing and PNG previews over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen != "" {
				app.cfg.Listen = listen
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			loader := app.loader()
			if _, err := loader.Reload(ctx); err != nil {
				return err
			}

			c := cron.New()
			if _, err := c.AddFunc(app.cfg.RefreshCron, func() {
				// Errors are logged by the loader; the old snapshot stays live.
				_, _ = loader.Reload(ctx)
			}); err != nil {
				return fmt.Errorf("invalid refresh schedule %q: %w", app.cfg.RefreshCron, err)
			}
			c.Start()
			defer func() {
				<-c.Stop().Done()
			}()

			appLog.Info("goalcal serving",
				"listen", app.cfg.Listen,
				"refresh", app.cfg.RefreshCron,
				"lane_policy", app.cfg.Policy(),
			)
			err := web.NewServer(app.cfg, loader).Run(ctx)
			appLog.Info("goalcal exiting")
			return err
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "HTTP listen address (overrides config if set)")
	return cmd
}
