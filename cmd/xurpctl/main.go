// Command xurpctl tareas de mantenimiento sobre la base de datos de Xurp IA:
// migraciones, reparación de datos heredados y asignación diaria programada.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/xurp-ia/xurp-api/internal/infrastructure/postgres"
	"github.com/xurp-ia/xurp-api/pkg/config"
	"github.com/xurp-ia/xurp-api/pkg/logger"
)

// env estado compartido por los subcomandos, cargado en PersistentPreRunE.
type env struct {
	cfg *config.Config
	log *logger.Logger
}

func (e *env) openPool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPool(ctx, e.cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return pool, nil
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:   "xurpctl",
		Short: "Mantenimiento de Xurp IA",
		Long: `Herramientas de operación para la base de datos de Xurp IA.

Subcomandos:
  migrate       - aplica o lista las migraciones
  repair        - corrige datos heredados (usar --dry-run primero)
  assign-daily  - reparte las tareas IA del día como lo haría un job programado`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: cmd.ErrOrStderr()})
			return nil
		},
	}
	root.AddCommand(newMigrateCmd(e), newRepairCmd(e), newAssignDailyCmd(e))
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
