package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/davihchagas/feedback-system-project/internal/application/auth"
	"github.com/davihchagas/feedback-system-project/internal/application/feedback"
	"github.com/davihchagas/feedback-system-project/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	Orchestrator  *feedback.Orchestrator
	FeedbackQuery *usecase.FeedbackQueryUseCase
	ProductUC     *usecase.ProductUseCase
	UserUC        *usecase.UserUseCase
	LogUC         *usecase.LogUseCase
	ReportUC      *usecase.ReportUseCase
	JWTSecret     string
	ServiceName   string

	// AccessLog nil desactiva el registro de accesos.
	AccessLog accessRecorder
	// Metrics y Registry nil desactivan /metrics y la instrumentación.
	Metrics  requestObserver
	Registry *prometheus.Registry
	// Ready comprueba los almacenes para /health; nil responde siempre ok.
	Ready func(ctx context.Context) error
	Now   func() time.Time
}

// Routes tabla declarativa de autorización: método, ruta, roles permitidos y handler.
// Las rutas estáticas van antes que las parametrizadas que comparten prefijo.
func Routes(deps RouterDeps) []Route {
	authH := NewAuthHandler(deps.AuthUC)
	fbH := NewFeedbackHandler(deps.Orchestrator, deps.FeedbackQuery)
	prodH := NewProductHandler(deps.ProductUC)
	adminH := NewAdminHandler(deps.UserUC, deps.LogUC, deps.FeedbackQuery)
	repH := NewReportHandler(deps.ReportUC)

	return []Route{
		{fiber.MethodPost, "/auth/login", rolesPublic, authH.Login},

		{fiber.MethodPost, "/api/feedbacks", rolesClient, fbH.Create},
		{fiber.MethodGet, "/api/feedbacks/detailed", rolesStaff, fbH.ListDetailed},
		{fiber.MethodGet, "/api/feedbacks/:id/text", rolesStaff, fbH.GetText},
		{fiber.MethodPost, "/api/feedbacks/:id/responses", rolesAnalyst, fbH.Respond},
		{fiber.MethodGet, "/api/feedbacks/:id/responses", rolesStaff, fbH.ListResponses},

		{fiber.MethodGet, "/api/products", rolesAny, prodH.List},
		{fiber.MethodPost, "/api/products", rolesAdmin, prodH.Create},
		{fiber.MethodPatch, "/api/products/:id/deactivate", rolesAdmin, prodH.Deactivate},
		{fiber.MethodPatch, "/api/products/:id/reactivate", rolesAdmin, prodH.Reactivate},

		{fiber.MethodGet, "/api/admin/users", rolesAdmin, adminH.ListUsers},
		{fiber.MethodPost, "/api/admin/users", rolesAdmin, adminH.CreateUser},
		{fiber.MethodPatch, "/api/admin/users/:id", rolesAdmin, adminH.UpdateUser},
		{fiber.MethodDelete, "/api/admin/users/:id", rolesAdmin, adminH.DeactivateUser},
		{fiber.MethodGet, "/api/admin/clients", rolesAdmin, adminH.ListClients},
		{fiber.MethodGet, "/api/admin/analysts", rolesAdmin, adminH.ListAnalysts},
		{fiber.MethodGet, "/api/admin/feedbacks", rolesAdmin, adminH.ListFeedbacks},
		{fiber.MethodGet, "/api/admin/logs", rolesAdmin, adminH.ListLogs},
		{fiber.MethodGet, "/api/admin/logs/human", rolesAdmin, adminH.ListHumanLogs},

		{fiber.MethodGet, "/api/reports/products/ranking", rolesStaff, repH.Ranking},
		{fiber.MethodGet, "/api/reports/products/ranking.pdf", rolesStaff, repH.RankingPDF},
		{fiber.MethodGet, "/api/reports/products/:id", rolesStaff, repH.ProductSatisfaction},
	}
}

// Router registra middlewares, observabilidad y la tabla de rutas.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestID())
	if deps.Metrics != nil {
		app.Use(Metrics(deps.Metrics))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.Ready != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := deps.Ready(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": deps.ServiceName, "error": err.Error()})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	// Registro de accesos solo para la superficie de negocio.
	if deps.AccessLog != nil {
		access := AccessLog(deps.AccessLog, deps.Now)
		app.Use("/api", access)
		app.Use("/auth", access)
	}

	register(app, deps.JWTSecret, Routes(deps))
}
