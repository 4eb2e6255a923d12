package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davihchagas/feedback-system-project/internal/application/audit"
	"github.com/davihchagas/feedback-system-project/internal/application/auth"
	"github.com/davihchagas/feedback-system-project/internal/application/dto"
	"github.com/davihchagas/feedback-system-project/internal/application/feedback"
	"github.com/davihchagas/feedback-system-project/internal/application/usecase"
	domaudit "github.com/davihchagas/feedback-system-project/internal/domain/audit"
	"github.com/davihchagas/feedback-system-project/internal/infrastructure/memory"
	"github.com/davihchagas/feedback-system-project/internal/infrastructure/metrics"
	"github.com/davihchagas/feedback-system-project/internal/infrastructure/pdf"
	apphttp "github.com/davihchagas/feedback-system-project/internal/interfaces/http"
	"github.com/davihchagas/feedback-system-project/pkg/ids"
	"github.com/davihchagas/feedback-system-project/pkg/logger"
)

const (
	adminEmail   = "ana@x.com"
	analystEmail = "bruno@x.com"
	clientEmail  = "carla@x.com"
	password     = "password123"
)

var fbkPattern = `^FBK-\d{8}-\d{6}-[0-9a-f]{4}$`

type apiFixture struct {
	app    *fiber.App
	store  *memory.Store
	docs   *memory.Documents
	writer *audit.Writer
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	ctx := context.Background()
	f := &apiFixture{store: memory.NewStore(), docs: memory.NewDocuments()}
	f.writer = audit.NewWriter(f.docs.AuditLogs(), nil, time.Second)
	gen := ids.New()
	repos := f.store.Repos()

	users := usecase.NewUserUseCase(f.store, repos.Users, f.writer, gen)
	created, err := users.BootstrapAdmin(ctx, "Ana", adminEmail, password)
	require.NoError(t, err)
	require.True(t, created)
	_, err = users.Create(ctx, usecase.SystemActor, dto.CreateUserRequest{Name: "Bruno", Email: analystEmail, Password: password, Role: "ANALYST"})
	require.NoError(t, err)
	_, err = users.Create(ctx, usecase.SystemActor, dto.CreateUserRequest{Name: "Carla", Email: clientEmail, Password: password, Role: "CLIENT"})
	require.NoError(t, err)

	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)

	query := usecase.NewFeedbackQueryUseCase(repos.Feedbacks, repos.Responses, f.docs.FeedbackTexts())
	deps := apphttp.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(repos.Users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		Orchestrator:  feedback.NewOrchestrator(f.store, f.docs.FeedbackTexts(), f.writer, nil, gen, logger.Nop(), feedback.Config{}),
		FeedbackQuery: query,
		ProductUC:     usecase.NewProductUseCase(repos.Products, f.writer, gen),
		UserUC:        users,
		LogUC:         usecase.NewLogUseCase(f.docs.AuditLogs()),
		ReportUC:      usecase.NewReportUseCase(f.store.Reports(), pdf.NewMarotoPDFGenerator(), time.Minute),
		JWTSecret:     testJWTSecret,
		ServiceName:   "feedback-api-test",
		AccessLog:     f.writer,
		Metrics:       m,
		Registry:      m.Registry(),
	}
	f.app = fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(f.app, deps)
	return f
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (f *apiFixture) login(t *testing.T, email string) string {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Token
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (f *apiFixture) createProduct(t *testing.T, adminToken, name string) dto.ProductResponse {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/products", adminToken, dto.CreateProductRequest{Name: name, Category: "bebidas"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.ProductResponse](t, resp)
}

// ─── Login ───────────────────────────────────────────────────────────────────

func TestLogin_CredencialesInvalidas(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/auth/login", "", dto.LoginRequest{Email: adminEmail, Password: "incorrecta"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_CuerpoInvalido(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "no-es-email"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ─── Feedback ────────────────────────────────────────────────────────────────

func TestCreateFeedback_201YTextoAusente404(t *testing.T) {
	f := newAPI(t)
	admin := f.login(t, adminEmail)
	client := f.login(t, clientEmail)
	analyst := f.login(t, analystEmail)
	prod := f.createProduct(t, admin, "Café")

	resp := f.do(t, http.MethodPost, "/api/feedbacks", client, dto.CreateFeedbackRequest{ProductID: prod.ID, Rating: 5, ShortComment: "great"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[dto.CreateFeedbackResponse](t, resp)
	assert.Regexp(t, fbkPattern, out.FeedbackID)
	assert.Empty(t, out.SecondaryFailures)

	resp = f.do(t, http.MethodGet, "/api/feedbacks/"+out.FeedbackID+"/text", analyst, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateFeedback_SoloClientes(t *testing.T) {
	f := newAPI(t)
	analyst := f.login(t, analystEmail)

	resp := f.do(t, http.MethodPost, "/api/feedbacks", analyst, dto.CreateFeedbackRequest{ProductID: "PRD-X", Rating: 5, ShortComment: "x"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCreateFeedback_NotaFueraDeRango400(t *testing.T) {
	f := newAPI(t)
	client := f.login(t, clientEmail)

	resp := f.do(t, http.MethodPost, "/api/feedbacks", client, dto.CreateFeedbackRequest{ProductID: "PRD-X", Rating: 7, ShortComment: "x"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, f.store.FeedbackCount())
}

func TestRespondAndListResponses(t *testing.T) {
	f := newAPI(t)
	admin := f.login(t, adminEmail)
	client := f.login(t, clientEmail)
	analyst := f.login(t, analystEmail)
	prod := f.createProduct(t, admin, "Café")

	created := decode[dto.CreateFeedbackResponse](t, f.do(t, http.MethodPost, "/api/feedbacks", client,
		dto.CreateFeedbackRequest{ProductID: prod.ID, Rating: 2, ShortComment: "frío", LongComment: "llegó frío"}))

	resp := f.do(t, http.MethodPost, "/api/feedbacks/"+created.FeedbackID+"/responses", analyst, dto.CreateResponseRequest{ResponseText: "Lo sentimos"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	list := decode[[]dto.ResponseDTO](t, f.do(t, http.MethodGet, "/api/feedbacks/"+created.FeedbackID+"/responses", admin, nil))
	require.Len(t, list, 1)
	assert.Equal(t, "Bruno", list[0].AnalystName)

	text := decode[dto.FeedbackTextResponse](t, f.do(t, http.MethodGet, "/api/feedbacks/"+created.FeedbackID+"/text", analyst, nil))
	assert.Equal(t, "llegó frío", text.LongComment)
}

// ─── Auditoría ───────────────────────────────────────────────────────────────

func TestHumanLogs_ClienteProhibidoAdminPaginado(t *testing.T) {
	f := newAPI(t)
	admin := f.login(t, adminEmail)
	client := f.login(t, clientEmail)
	prod := f.createProduct(t, admin, "Café")
	resp := f.do(t, http.MethodPost, "/api/feedbacks", client, dto.CreateFeedbackRequest{ProductID: prod.ID, Rating: 4, ShortComment: "bien"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/admin/logs/human", client, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/admin/logs/human?page=1&limit=2", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decode[dto.HumanLogPage](t, resp)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.Limit)
	// 3 altas de usuario + producto + feedback
	assert.Equal(t, int64(5), page.Total)
	require.Len(t, page.Items, 2)
	assert.Contains(t, page.Items[0].Message, "registró el feedback")
	assert.GreaterOrEqual(t, page.Items[0].WhenISO, page.Items[1].WhenISO)
}

func TestAccessLog_EnmascaraPassword(t *testing.T) {
	f := newAPI(t)
	f.login(t, adminEmail)
	f.writer.Wait()

	var found bool
	for _, e := range f.docs.Entries() {
		if e.Action == domaudit.ActionHTTPAccess && e.Path == "/auth/login" {
			found = true
			assert.Equal(t, "***", e.Body["password"])
			assert.Equal(t, adminEmail, e.Body["email"])
			assert.Equal(t, http.StatusOK, e.Status)
			assert.NotEmpty(t, e.RequestID)
		}
	}
	assert.True(t, found, "debe existir el registro de acceso del login")
}

// ─── Productos y reportes ────────────────────────────────────────────────────

func TestProducts_InactivosSoloParaAdmin(t *testing.T) {
	f := newAPI(t)
	admin := f.login(t, adminEmail)
	client := f.login(t, clientEmail)
	prod := f.createProduct(t, admin, "Té")

	resp := f.do(t, http.MethodPatch, "/api/products/"+prod.ID+"/deactivate", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	assert.Len(t, decode[[]dto.ProductResponse](t, f.do(t, http.MethodGet, "/api/products?all=true", client, nil)), 0)
	assert.Len(t, decode[[]dto.ProductResponse](t, f.do(t, http.MethodGet, "/api/products?all=true", admin, nil)), 1)

	resp = f.do(t, http.MethodPost, "/api/feedbacks", client, dto.CreateFeedbackRequest{ProductID: prod.ID, Rating: 4, ShortComment: "x"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReports_RankingPDF(t *testing.T) {
	f := newAPI(t)
	analyst := f.login(t, analystEmail)

	resp := f.do(t, http.MethodGet, "/api/reports/products/ranking.pdf", analyst, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestReports_ProductoInexistente404(t *testing.T) {
	f := newAPI(t)
	analyst := f.login(t, analystEmail)

	resp := f.do(t, http.MethodGet, "/api/reports/products/PRD-nada", analyst, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ─── Observabilidad ──────────────────────────────────────────────────────────

func TestHealthYMetrics(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	f.login(t, adminEmail)
	resp = f.do(t, http.MethodGet, "/metrics", "", nil)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "feedback_http_requests_total")
}

func TestRutaProtegidaSinToken401(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/feedbacks/detailed", "", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
