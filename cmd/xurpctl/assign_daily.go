package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xurp-ia/xurp-api/internal/application/access"
	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/usecase"
	infraai "github.com/xurp-ia/xurp-api/internal/infrastructure/ai"
	"github.com/xurp-ia/xurp-api/internal/infrastructure/cache"
	"github.com/xurp-ia/xurp-api/internal/infrastructure/postgres"
)

func newAssignDailyCmd(e *env) *cobra.Command {
	var (
		projectID string
		all       bool
		bySkill   bool
		day       int
	)
	cmd := &cobra.Command{
		Use:   "assign-daily",
		Short: "Asigna las tareas IA pendientes del día de un proyecto",
		Long: `Reparte las tareas IA sin asignar entre los colaboradores del proyecto,
igual que POST /api/ai-tasks/assign-daily/:projectId pero sin actor humano.
Con --all recorre los proyectos con autoAssignDaily activo; pensado para cron.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if projectID == "" && !all {
				return errors.New("--project o --all es obligatorio")
			}
			ctx := cmd.Context()
			pool, err := e.openPool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			redisCache := cache.NewRedis(ctx, e.cfg.Redis, e.log)
			defer redisCache.Close()

			projects := postgres.NewProjectRepository(pool)
			uc := usecase.NewAITaskUseCase(usecase.AITaskDeps{
				Guard:       access.NewGuard(projects),
				Projects:    projects,
				AITasks:     postgres.NewAITaskRepository(pool),
				Assessments: postgres.NewSkillAssessmentRepository(pool),
				Settings:    postgres.NewSettingsRepository(pool),
				Tx:          postgres.NewTxRunner(pool),
				Cache:       redisCache,
				AI:          infraai.NewTemplateGenerator(),
				Logger:      e.log,
			})

			in := dto.AssignDailyRequest{BySkill: bySkill}
			if day > 0 {
				in.Day = &day
			}
			out := cmd.OutOrStdout()
			if !all {
				res, err := uc.AssignDailySystem(ctx, projectID, in)
				if err != nil {
					return err
				}
				printAssignment(out, res)
				return nil
			}
			results, err := uc.AssignDailyAuto(ctx, in)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(out, "ningún proyecto tiene autoAssignDaily activo")
				return nil
			}
			return printAutoResults(out, results)
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "ID del proyecto")
	cmd.Flags().BoolVar(&all, "all", false, "todos los proyectos con autoAssignDaily activo")
	cmd.MarkFlagsMutuallyExclusive("project", "all")
	cmd.Flags().BoolVar(&bySkill, "by-skill", false, "asignar por nivel de habilidad en vez de round-robin")
	cmd.Flags().IntVar(&day, "day", 0, "día del plan; por defecto el día actual")
	return cmd
}

func printAssignment(w io.Writer, res *dto.AssignDailyResponse) {
	fmt.Fprintf(w, "día %d: %d tareas asignadas\n", res.CurrentDay, res.AssignedTasks)
	for _, a := range res.Assignments {
		fmt.Fprintf(w, "  %s -> %s\n", a.TaskID, a.UserID)
	}
}

// printAutoResults imprime un bloque por proyecto y falla si alguno falló.
func printAutoResults(w io.Writer, results []usecase.ProjectAssignResult) error {
	failed := 0
	for _, r := range results {
		fmt.Fprintf(w, "proyecto %s: ", r.ProjectID)
		if r.Err != nil {
			failed++
			fmt.Fprintf(w, "error: %v\n", r.Err)
			continue
		}
		printAssignment(w, r.Result)
	}
	if failed > 0 {
		return fmt.Errorf("%d de %d proyectos fallaron", failed, len(results))
	}
	return nil
}
