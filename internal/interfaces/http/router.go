package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/xurp-ia/xurp-api/internal/application/analytics"
	"github.com/xurp-ia/xurp-api/internal/application/auth"
	"github.com/xurp-ia/xurp-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	ProjectUC      *usecase.ProjectUseCase
	SettingsUC     *usecase.SettingsUseCase
	CollaboratorUC *usecase.CollaboratorUseCase
	TaskUC         *usecase.TaskUseCase
	AITaskUC       *usecase.AITaskUseCase
	EvaluationUC   *usecase.EvaluationUseCase
	MembershipUC   *usecase.MembershipUseCase
	AssessmentUC   *usecase.SkillAssessmentUseCase
	EventUC        *usecase.EventUseCase
	NoteUC         *usecase.NoteUseCase
	MessageUC      *usecase.MessageUseCase
	ProgressUC     *analytics.ProgressUseCase
	JWTSecret      string
	SecureCookie   bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.SecureCookie)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	evaluationHandler := NewEvaluationHandler(deps.EvaluationUC, deps.MembershipUC)
	api.Get("/membership/plans", evaluationHandler.MembershipPlans)

	// Rutas protegidas (requieren Bearer Token o cookie)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Put("/me", userHandler.UpdateMe)
	users.Get("/search", userHandler.Search)

	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC, deps.SettingsUC)
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.Get)
	projects.Put("/:id", projectHandler.Update)
	projects.Delete("/:id", projectHandler.Delete)
	projects.Get("/:id/basic-info", projectHandler.BasicInfo)
	projects.Put("/:id/basic-info", projectHandler.UpdateBasicInfo)
	projects.Get("/:id/settings", projectHandler.GetSettings)
	projects.Put("/:id/settings", projectHandler.UpdateSettings)

	analyticsHandler := NewAnalyticsHandler(deps.ProgressUC)
	projects.Get("/:id/progress", analyticsHandler.Progress)
	projects.Get("/:id/report.pdf", analyticsHandler.ReportPDF)
	projects.Get("/:id/export.xml", analyticsHandler.ExportXML)

	collaboratorHandler := NewCollaboratorHandler(deps.CollaboratorUC)
	projects.Get("/:id/collaborators", collaboratorHandler.List)
	projects.Post("/:id/collaborators", collaboratorHandler.Add)
	projects.Put("/:id/collaborators/:userId", collaboratorHandler.UpdateRole)
	projects.Delete("/:id/collaborators/:userId", collaboratorHandler.Remove)

	tasks := protected.Group("/tasks")
	taskHandler := NewTaskHandler(deps.TaskUC)
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/", taskHandler.List)
	tasks.Get("/:id", taskHandler.Get)
	tasks.Put("/:id", taskHandler.Update)
	tasks.Delete("/:id", taskHandler.Delete)
	tasks.Patch("/:id/status", taskHandler.UpdateStatus)
	tasks.Post("/:id/start", taskHandler.Start)
	tasks.Post("/:id/complete", taskHandler.Complete)

	aiTasks := protected.Group("/ai-tasks")
	aiHandler := NewAIHandler(deps.AITaskUC)
	aiTasks.Post("/generate", aiHandler.Generate)
	aiTasks.Get("/my", aiHandler.ListMine)
	aiTasks.Get("/project/:projectId", aiHandler.ListByProject)
	aiTasks.Get("/project/:projectId/current-day", aiHandler.CurrentDay)
	aiTasks.Post("/assign-daily/:projectId", aiHandler.AssignDaily)
	aiTasks.Patch("/:id/status", aiHandler.UpdateStatus)
	aiTasks.Put("/:id/assignee", aiHandler.UpdateAssignee)
	aiTasks.Delete("/:id", aiHandler.Delete)

	evaluations := protected.Group("/evaluations")
	evaluations.Post("/questions", evaluationHandler.Questions)
	evaluations.Post("/", evaluationHandler.Submit)
	evaluations.Get("/me", evaluationHandler.ListMine)
	evaluations.Get("/project/:projectId", evaluationHandler.ListByProject)
	evaluations.Get("/:id", evaluationHandler.Get)
	evaluations.Delete("/:id", evaluationHandler.Delete)

	membership := protected.Group("/membership")
	membership.Get("/status", evaluationHandler.MembershipStatus)
	membership.Get("/check", evaluationHandler.MembershipCheck)
	membership.Post("/upgrade", evaluationHandler.MembershipUpgrade)

	assessments := protected.Group("/skill-assessments")
	assessmentHandler := NewAssessmentHandler(deps.AssessmentUC)
	assessments.Post("/start", assessmentHandler.Start)
	assessments.Get("/me", assessmentHandler.ListMine)
	assessments.Get("/project/:projectId", assessmentHandler.ListByProject)
	assessments.Post("/:id/submit", assessmentHandler.Submit)
	assessments.Get("/:id", assessmentHandler.Get)

	calendarHandler := NewCalendarHandler(deps.EventUC, deps.NoteUC)
	events := protected.Group("/events")
	events.Get("/:projectId", calendarHandler.ListEvents)
	events.Post("/:projectId", calendarHandler.CreateEvent)
	events.Put("/:projectId/:eventId", calendarHandler.UpdateEvent)
	events.Delete("/:projectId/:eventId", calendarHandler.DeleteEvent)

	notes := protected.Group("/notes")
	notes.Get("/", calendarHandler.ListNotes)
	notes.Post("/", calendarHandler.CreateNote)
	notes.Put("/:id", calendarHandler.UpdateNote)
	notes.Delete("/:id", calendarHandler.DeleteNote)

	messages := protected.Group("/messages")
	messageHandler := NewMessageHandler(deps.MessageUC)
	messages.Post("/", messageHandler.Send)
	messages.Get("/conversations", messageHandler.Conversations)
	messages.Get("/conversations/:id", messageHandler.Messages)
	messages.Patch("/conversations/:id/read", messageHandler.MarkRead)
}

// Handler une la app Fiber y el websocket en un único http.Handler de net/http.
func Handler(app *fiber.App, ws http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(WSPath, ws)
	mux.Handle("/", adaptor.FiberApp(app))
	return mux
}
