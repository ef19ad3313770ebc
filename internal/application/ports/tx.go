package ports

import (
	"context"

	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

// TxRepositories repositorios atados a una misma transacción.
type TxRepositories struct {
	Projects      repository.ProjectRepository
	Collaborators repository.CollaboratorRepository
	Tasks         repository.TaskRepository
	AITasks       repository.AITaskRepository
	Evaluations   repository.EvaluationRepository
	Settings      repository.SettingsRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepositories) error) error
}
