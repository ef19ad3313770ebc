package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xurp-ia/xurp-api/internal/infrastructure/postgres"
)

func newRepairCmd(e *env) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Corrige datos que violan las reglas actuales",
	}
	cmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "solo cuenta las filas afectadas, sin borrar")

	cmd.AddCommand(&cobra.Command{
		Use:   "owner-collaborators",
		Short: "Elimina filas de colaborador cuyo usuario es el dueño del proyecto",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.repair(cmd, "owner-collaborators", dryRun, func(ctx context.Context, q postgres.Querier) (int64, error) {
				return postgres.NewCollaboratorRepository(q).DeleteOwnerRows(ctx, dryRun)
			})
		},
	}, &cobra.Command{
		Use:   "evaluations",
		Short: "Recorta las evaluaciones que superan el límite de la membresía",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.repair(cmd, "evaluations", dryRun, func(ctx context.Context, q postgres.Querier) (int64, error) {
				return postgres.NewEvaluationRepository(q).DeleteBeyondLimit(ctx, dryRun)
			})
		},
	})
	return cmd
}

func (e *env) repair(cmd *cobra.Command, name string, dryRun bool, fn func(context.Context, postgres.Querier) (int64, error)) error {
	pool, err := e.openPool(cmd.Context())
	if err != nil {
		return err
	}
	defer pool.Close()

	n, err := fn(cmd.Context(), pool)
	if err != nil {
		return fmt.Errorf("repair %s: %w", name, err)
	}
	verb := "eliminadas"
	if dryRun {
		verb = "a eliminar (dry-run)"
	}
	e.log.Info().Str("repair", name).Int64("rows", n).Bool("dry_run", dryRun).Msg("reparación terminada")
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d filas %s\n", name, n, verb)
	return nil
}
