package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/SscSPs/general_ledger/internal/adapters/rates"
	"github.com/SscSPs/general_ledger/internal/core/ports/services"
	coreservices "github.com/SscSPs/general_ledger/internal/core/services"
	"github.com/SscSPs/general_ledger/internal/platform/config"
	"github.com/SscSPs/general_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/general_ledger/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Maintenance commands for the general ledger",
	Long: `ledgerctl applies schema migrations, loads sample data and prints
the live ledger summary. It reads the same environment as the API server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd, summaryCmd)
}

// session is an open pool plus the services built on it.
type session struct {
	pool     *pgxpool.Pool
	services *services.ServiceContainer
	release  func()
}

func (s *session) Close() {
	s.release()
	database.ClosePgxPool(s.pool)
}

func openSession(ctx context.Context) (*session, error) {
	if cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return nil, err
	}
	provider, release := rates.NewFromConfig(ctx, cfg)
	repos := pgsql.NewRepositoryProvider(pool, provider)
	return &session{
		pool:     pool,
		services: coreservices.NewServiceContainer(repos),
		release:  release,
	}, nil
}
