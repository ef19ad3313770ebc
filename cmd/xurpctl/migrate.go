package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xurp-ia/xurp-api/internal/infrastructure/postgres"
)

func newMigrateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones del esquema",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, err := e.openPool(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			applied, err := postgres.NewMigrator(pool).Up(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				fmt.Fprintln(out, "esquema al día")
				return nil
			}
			for _, v := range applied {
				fmt.Fprintf(out, "aplicada V%d\n", v)
			}
			return nil
		},
	}, &cobra.Command{
		Use:   "status",
		Short: "Lista las migraciones y si están aplicadas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, err := e.openPool(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			list, err := postgres.NewMigrator(pool).Status(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range list {
				state := "pendiente"
				if m.Applied && m.AppliedAt != nil {
					state = "aplicada " + m.AppliedAt.UTC().Format("2006-01-02 15:04:05")
				}
				fmt.Fprintf(out, "V%-4d %-30s %s\n", m.Version, m.Name, state)
			}
			return nil
		},
	})
	return cmd
}
