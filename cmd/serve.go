package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/moyoez/configd/api"
	"github.com/moyoez/configd/api/controllers"
	"github.com/moyoez/configd/api/middlewares"
	"github.com/moyoez/configd/api/notifyhub"
	"github.com/moyoez/configd/notify"
	"github.com/moyoez/configd/presentation"
	"github.com/moyoez/configd/tool"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local config API",
	Long: `Loads the config (migrating the legacy config.json on first run) and serves
it on the loopback API. Presentation changes are pushed to /api/self/v1/notify-ws.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		state := presentation.NewState()
		hub := notifyhub.New()
		presenters := presentation.Fanout{state, hub}
		if daemonCfg.NotifySocket != "" {
			sock := notify.NewSocketPresenter(daemonCfg.NotifySocket)
			defer sock.Close()
			presenters = append(presenters, sock)
		}
		store, closeStore, err := openStore(ctx, daemonCfg, presenters)
		if err != nil {
			return err
		}
		defer closeStore()
		unsubscribe := store.Subscribe(hub.BroadcastConfig)
		defer unsubscribe()

		ctrl := controllers.NewConfigController(store, state)
		limiter := middlewares.NewRateLimiter(daemonCfg.RateLimit.RPS, daemonCfg.RateLimit.Burst)
		srv := api.NewServer(daemonCfg.Listen, ctrl, hub, limiter)

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		tool.DefaultLogger.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
