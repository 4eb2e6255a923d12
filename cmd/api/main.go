package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/davihchagas/feedback-system-project/internal/application/audit"
	"github.com/davihchagas/feedback-system-project/internal/application/auth"
	"github.com/davihchagas/feedback-system-project/internal/application/feedback"
	"github.com/davihchagas/feedback-system-project/internal/application/usecase"
	infraai "github.com/davihchagas/feedback-system-project/internal/infrastructure/ai"
	"github.com/davihchagas/feedback-system-project/internal/infrastructure/metrics"
	infraMongo "github.com/davihchagas/feedback-system-project/internal/infrastructure/mongo"
	infrapdf "github.com/davihchagas/feedback-system-project/internal/infrastructure/pdf"
	"github.com/davihchagas/feedback-system-project/internal/infrastructure/postgres"
	infraRedis "github.com/davihchagas/feedback-system-project/internal/infrastructure/redis"
	httpRouter "github.com/davihchagas/feedback-system-project/internal/interfaces/http"
	"github.com/davihchagas/feedback-system-project/pkg/config"
	"github.com/davihchagas/feedback-system-project/pkg/ids"
	"github.com/davihchagas/feedback-system-project/pkg/logger"
)

const rankingCacheTTL = 30 * time.Second

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

	ctx := context.Background()

	// Almacén relacional
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema PostgreSQL")
	}

	// Almacén documental: textos largos y auditoría
	mongoClient, mongoDB, err := infraMongo.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a MongoDB")
	}
	if err := infraMongo.Reconcile(ctx, mongoDB, log); err != nil {
		log.Fatal().Err(err).Msg("índices MongoDB")
	}

	registry := prometheus.NewRegistry()
	m, err := metrics.New(registry)
	if err != nil {
		log.Fatal().Err(err).Msg("registro de métricas")
	}

	sink := audit.NewLogSink(log, m)
	auditWriter := audit.NewWriter(infraMongo.NewAuditLogRepository(mongoDB), sink, cfg.Audit.WriteTimeout)
	texts := infraMongo.NewFeedbackTextRepository(mongoDB)

	repos := postgres.Repos(pool)
	txRunner := postgres.NewTxRunner(pool)
	gen := ids.New()

	var opts []feedback.Option
	if cfg.AI.AnthropicAPIKey != "" {
		opts = append(opts, feedback.WithSentiment(infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)))
		log.Info().Str("model", cfg.AI.AnthropicModel).Msg("análisis de sentimiento activado")
	}
	var redisClient interface{ Close() error }
	if cfg.Redis.Enabled() {
		rc, err := infraRedis.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		redisClient = rc
		opts = append(opts, feedback.WithIdempotency(infraRedis.NewIdempotencyStore(rc)))
		log.Info().Msg("claves de idempotencia activadas")
	}

	orchestrator := feedback.NewOrchestrator(txRunner, texts, auditWriter, sink, gen, log, feedback.Config{}, opts...)

	userUC := usecase.NewUserUseCase(txRunner, repos.Users, auditWriter, gen)
	productUC := usecase.NewProductUseCase(repos.Products, auditWriter, gen)
	feedbackQuery := usecase.NewFeedbackQueryUseCase(repos.Feedbacks, repos.Responses, texts)
	logUC := usecase.NewLogUseCase(infraMongo.NewAuditLogRepository(mongoDB))
	reportUC := usecase.NewReportUseCase(postgres.NewReportRepository(pool), infrapdf.NewMarotoPDFGenerator(), rankingCacheTTL)
	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	if cfg.Bootstrap.AdminEmail != "" {
		created, err := userUC.BootstrapAdmin(ctx, cfg.Bootstrap.AdminName, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("bootstrap del administrador")
		}
		if created {
			log.Info().Str("email", cfg.Bootstrap.AdminEmail).Msg("administrador inicial creado")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Feedback API",
		}))
	}

	deps := httpRouter.RouterDeps{
		AuthUC:        authUC,
		Orchestrator:  orchestrator,
		FeedbackQuery: feedbackQuery,
		ProductUC:     productUC,
		UserUC:        userUC,
		LogUC:         logUC,
		ReportUC:      reportUC,
		JWTSecret:     cfg.JWT.Secret,
		ServiceName:   cfg.App.Name,
		Metrics:       m,
		Registry:      registry,
		Ready: func(ctx context.Context) error {
			return errors.Join(pool.Ping(ctx), mongoClient.Ping(ctx, nil))
		},
	}
	if cfg.Audit.AccessLogEnabled {
		deps.AccessLog = auditWriter
	}
	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// Registros de acceso en vuelo antes de cerrar Mongo.
	auditWriter.Wait()
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desconexión de MongoDB")
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Info().Msg("aplicación detenida")
}
