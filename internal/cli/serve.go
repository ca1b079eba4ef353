package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/PriceSort/internal/core"
	"github.com/JonMunkholm/PriceSort/internal/logging"
	"github.com/JonMunkholm/PriceSort/internal/web"
)

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the price lookup page over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

// serve loads the list, starts the server, and blocks until ctx is done.
func (a *app) serve(ctx context.Context) error {
	ctx, _ = logging.WithRunID(ctx)
	logger := logging.FromContext(ctx)

	list, err := core.LoadForLookup(ctx, a.cfg.Files.Input)
	if err != nil {
		return err
	}

	server := web.NewServer(list, a.cfg.Server)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", a.cfg.Server.Addr(), "items", list.Len())
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
