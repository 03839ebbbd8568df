package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/icl-lang/icl/internal/lsp"
)

func newLSPCommand(logger *zap.SugaredLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the ICL Language Server.

Publishes the verifier's diagnostics and answers hover requests over
JSON-RPC on stdin/stdout. Typically launched by an editor, not a human.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sigCh
				cancel()
			}()

			if err := server.Run(ctx); err != nil {
				logger.Errorw("lsp server stopped", "error", err)
				return failEnvironment(err)
			}
			return nil
		},
	}
}
