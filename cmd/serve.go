package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/luca-patrignani/mental-rpsls/config"
	"github.com/luca-patrignani/mental-rpsls/discovery"
	"github.com/luca-patrignani/mental-rpsls/engine"
	"github.com/luca-patrignani/mental-rpsls/network"
)

func serveCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host a game and accept players over websockets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServeConfig(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
	cmd.Flags().StringP("config", "c", "", "TOML configuration file")
	cmd.Flags().StringP("owner", "o", "", "identity of the game owner")
	cmd.Flags().Uint64P("bet", "b", 0, "initial bet size")
	cmd.Flags().StringP("listen", "l", "", "address to listen on")
	cmd.Flags().String("name", "", "name announced to players")
	cmd.Flags().String("stake-policy", "", "per-move or entry")
	cmd.Flags().Bool("no-discovery", false, "do not announce the game")
	return cmd
}

// loadServeConfig reads the configuration file and applies the flags the user
// set explicitly on top of it.
func loadServeConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("owner") {
		cfg.Game.Owner, _ = flags.GetString("owner")
	}
	if flags.Changed("bet") {
		cfg.Game.BetSize, _ = flags.GetUint64("bet")
	}
	if flags.Changed("listen") {
		cfg.Server.Listen, _ = flags.GetString("listen")
	}
	if flags.Changed("name") {
		cfg.Server.Name, _ = flags.GetString("name")
	}
	if flags.Changed("stake-policy") {
		cfg.Game.StakePolicy, _ = flags.GetString("stake-policy")
	}
	if noDiscovery, _ := flags.GetBool("no-discovery"); noDiscovery {
		cfg.Discovery.Enabled = false
	}
	return cfg, pkgerrors.Wrap(cfg.Validate(), "invalid configuration")
}

func serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	game, err := cfg.NewGame()
	if err != nil {
		return err
	}
	e := engine.New(game,
		engine.WithLogger(logger),
		engine.WithSendTimeout(cfg.Server.SendTimeout.Duration),
	)
	srv := network.NewServer(e,
		network.WithServerLogger(logger),
		network.WithOriginPatterns(cfg.Server.OriginPatterns...),
	)

	l, err := net.Listen("tcp", cfg.Server.Listen)
	if err != nil {
		return pkgerrors.Wrapf(err, "listen on %s", cfg.Server.Listen)
	}
	url := "ws://" + l.Addr().String() + "/ws"
	logger.Info("game ready", "url", url, "owner", cfg.Game.Owner, "bet", cfg.Game.BetSize)

	if cfg.Discovery.Enabled {
		d, err := discovery.NewWithOptions(discovery.Entry{Name: cfg.Server.Name, URL: url},
			discovery.WithHost(cfg.Discovery.Host),
			discovery.WithPortRange(cfg.Discovery.StartPort, cfg.Discovery.EndPort),
			discovery.WithAttempts(cfg.Discovery.Attempts),
		)
		if err != nil {
			logger.Warn("game not announced", "error", err)
		} else {
			defer d.Close()
			logger.Info("game announced", "port", d.Port())
		}
	}

	httpServer := &http.Server{Handler: srv, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() {
		errc <- httpServer.Serve(l)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := e.Ledger().Verify(); err != nil {
		return pkgerrors.Wrap(err, "ledger corrupted")
	}
	logger.Info("ledger verified", "blocks", e.Ledger().Len())
	return nil
}
