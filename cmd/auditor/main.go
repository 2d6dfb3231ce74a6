package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"contractScope/internal/addr"
	"contractScope/internal/audit"
	"contractScope/internal/chain"
	"contractScope/internal/config"
	"contractScope/internal/explorer"
	"contractScope/internal/model"
	"contractScope/internal/report"
	"contractScope/internal/storage"
	"contractScope/internal/storage/postgres"
)

func main() {
	root := &cobra.Command{
		Use:          "auditor",
		Short:        "On-chain contract audit tool",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	auditCmd := &cobra.Command{
		Use:   "audit <address>",
		Short: "Audit an on-chain address",
		Args:  cobra.ExactArgs(1),
		RunE:  runAudit,
	}

	auditCmd.Flags().String("rpc", "", "node RPC URL")
	auditCmd.Flags().String("chain", "ethereum", "chain name (selects the explorer endpoint)")
	auditCmd.Flags().String("explorer-url", "", "explorer API base URL (overrides the chain default)")
	auditCmd.Flags().String("explorer-api-key", "", "explorer API key")
	auditCmd.Flags().Duration("stage-timeout", 15*time.Second, "per-call deadline for external lookups")
	auditCmd.Flags().Int("max-retries", 2, "maximum retry attempts per external call")
	auditCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	auditCmd.Flags().String("out", "", "optional JSONL archive path for finished reports")
	auditCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for the report archive")
	auditCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(auditCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}

	// Boundary validation: a malformed address never reaches the pipeline.
	address, err := addr.Normalize(args[0])
	if err != nil {
		return err
	}

	explorerURL := cfg.ExplorerURL
	if explorerURL == "" {
		explorerURL, err = explorer.EndpointForChain(cfg.Chain)
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	explorerClient := explorer.NewClient(explorerURL, cfg.ExplorerAPIKey, cfg.StageTimeout, logger)

	auditor := audit.NewAuditor(audit.Config{
		Chain:        cfg.Chain,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
		StageTimeout: cfg.StageTimeout,
	}, chainClient, explorerClient, logger)

	logger.Info("audit start",
		zap.String("address", addr.Checksummed(address)),
		zap.String("chain", cfg.Chain),
		zap.String("explorer", explorerURL),
	)

	result := auditor.Audit(ctx, address)

	fmt.Print(report.Format(result))

	archiveReport(ctx, cfg, result, logger)

	return nil
}

// archiveReport writes the finished report to the configured sinks. Archive
// failures are logged, not fatal: the report was already rendered.
func archiveReport(ctx context.Context, cfg config.Config, result model.ContractReport, logger *zap.Logger) {
	var sinks []storage.Storage

	if cfg.Out != "" {
		sinks = append(sinks, storage.NewJsonlStorage(cfg.Out))
	}

	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			logger.Warn("postgres archive unavailable", zap.Error(err))
		} else {
			defer store.Close()
			if err := store.EnsureSchema(ctx); err != nil {
				logger.Warn("postgres archive unavailable", zap.Error(err))
			} else {
				sinks = append(sinks, store)
			}
		}
	}

	for _, sink := range sinks {
		if err := sink.PutReport(ctx, result); err != nil {
			logger.Warn("archive report failed", zap.Error(err))
		}
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
