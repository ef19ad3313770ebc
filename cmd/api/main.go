package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/swaggo/swag"
	"golang.org/x/sync/errgroup"

	"github.com/xurp-ia/xurp-api/docs"
	"github.com/xurp-ia/xurp-api/internal/application/access"
	"github.com/xurp-ia/xurp-api/internal/application/analytics"
	"github.com/xurp-ia/xurp-api/internal/application/auth"
	"github.com/xurp-ia/xurp-api/internal/application/usecase"
	infraai "github.com/xurp-ia/xurp-api/internal/infrastructure/ai"
	"github.com/xurp-ia/xurp-api/internal/infrastructure/cache"
	"github.com/xurp-ia/xurp-api/internal/infrastructure/export"
	infrapdf "github.com/xurp-ia/xurp-api/internal/infrastructure/pdf"
	"github.com/xurp-ia/xurp-api/internal/infrastructure/postgres"
	"github.com/xurp-ia/xurp-api/internal/infrastructure/realtime"
	httpRouter "github.com/xurp-ia/xurp-api/internal/interfaces/http"
	"github.com/xurp-ia/xurp-api/pkg/config"
	"github.com/xurp-ia/xurp-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.NewMigrator(pool).Up(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	if len(applied) > 0 {
		log.Info().Ints64("versions", applied).Msg("migraciones aplicadas")
	}

	redisCache := cache.NewRedis(ctx, cfg.Redis, log)
	defer redisCache.Close()

	hub := realtime.NewHub(log)

	userRepo := postgres.NewUserRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	collaboratorRepo := postgres.NewCollaboratorRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	aiTaskRepo := postgres.NewAITaskRepository(pool)
	evaluationRepo := postgres.NewEvaluationRepository(pool)
	assessmentRepo := postgres.NewSkillAssessmentRepository(pool)
	eventRepo := postgres.NewEventRepository(pool)
	noteRepo := postgres.NewNoteRepository(pool)
	messageRepo := postgres.NewMessageRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	guard := access.NewGuard(projectRepo)
	generator := infraai.NewTemplateGenerator()

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	aiTaskUC := usecase.NewAITaskUseCase(usecase.AITaskDeps{
		Guard:       guard,
		Projects:    projectRepo,
		AITasks:     aiTaskRepo,
		Assessments: assessmentRepo,
		Settings:    settingsRepo,
		Tx:          txRunner,
		Cache:       redisCache,
		AI:          generator,
		Notifier:    hub,
		Logger:      log,
	})
	progressUC := analytics.NewProgressUseCase(analytics.Deps{
		Guard:         guard,
		Users:         userRepo,
		Collaborators: collaboratorRepo,
		Tasks:         taskRepo,
		AITasks:       aiTaskRepo,
		Settings:      settingsRepo,
		Cache:         redisCache,
		Report:        infrapdf.NewReportGenerator(cfg.HTTP.PublicURL),
		Exporter:      export.NewMSProjectExporter(),
		CacheTTL:      time.Duration(cfg.Redis.TTLSeconds) * time.Second,
		Logger:        log,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		// fiber rechaza credenciales con el comodín
		AllowCredentials: cfg.HTTP.CORSOrigins != "*",
	}))
	app.Use(httpRouter.AccessLog(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: cfg.HTTP.SwaggerFile,
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":     "ok",
			"service":    cfg.App.Name,
			"redis":      redisCache.Available(c.UserContext()),
			"ws_clients": hub.ClientCount(),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         usecase.NewUserUseCase(userRepo),
		ProjectUC:      usecase.NewProjectUseCase(guard, projectRepo, collaboratorRepo, userRepo, txRunner, redisCache),
		SettingsUC:     usecase.NewSettingsUseCase(guard, settingsRepo),
		CollaboratorUC: usecase.NewCollaboratorUseCase(guard, userRepo, collaboratorRepo, txRunner, redisCache),
		TaskUC:         usecase.NewTaskUseCase(guard, taskRepo, redisCache),
		AITaskUC:       aiTaskUC,
		EvaluationUC:   usecase.NewEvaluationUseCase(guard, userRepo, evaluationRepo, txRunner, generator),
		MembershipUC:   usecase.NewMembershipUseCase(userRepo, evaluationRepo),
		AssessmentUC:   usecase.NewSkillAssessmentUseCase(guard, assessmentRepo, time.Duration(cfg.Assessment.DurationMinutes)*time.Minute),
		EventUC:        usecase.NewEventUseCase(guard, eventRepo),
		NoteUC:         usecase.NewNoteUseCase(guard, noteRepo),
		MessageUC:      usecase.NewMessageUseCase(userRepo, messageRepo, hub),
		ProgressUC:     progressUC,
		JWTSecret:      cfg.JWT.Secret,
		SecureCookie:   cfg.App.Env == "production",
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           httpRouter.Handler(app, httpRouter.NewWSHandler(hub, cfg.JWT.Secret, cfg.HTTP.Origins())),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("servidor HTTP escuchando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		// la app Fiber no escucha por sí misma: cerrar srv basta
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("servidor HTTP finalizado")
	}
	log.Info().Msg("aplicación detenida")
}
