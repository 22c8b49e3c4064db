package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/conduit-lang/propls/internal/lsp"
)

// NewLSPCommand creates the LSP command
func NewLSPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the propls Language Server Protocol (LSP) server.

This command starts an LSP server for properties files that provides:
  • Completion of catalog property keys and allowed values
  • Diagnostics for unknown properties, duplicates and invalid values
  • Hover documentation
  • Document symbols

Catalog and rules files are reloaded when they change on disk unless
catalog.watch is false. Logs are written to stderr.

The LSP server communicates via JSON-RPC over stdin/stdout.
It is typically started automatically by your editor/IDE.`,
		Args: cobra.NoArgs,
		RunE: runLSP,
	}
}

func runLSP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	logger, err := cfg.Logger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	server, err := lsp.NewServer(lsp.Options{
		CatalogPaths: cfg.Catalog.Paths,
		CacheTTL:     cfg.Catalog.CacheTTL,
		Watch:        cfg.Catalog.Watch,
		RulesPath:    cfg.Rules.Path,
		Snippets:     cfg.Completion.Snippets,
		Version:      Version,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle signals for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	return server.Run(ctx)
}
