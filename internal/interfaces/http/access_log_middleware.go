package http

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"

	"github.com/davihchagas/feedback-system-project/internal/domain/audit"
	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
)

// HeaderRequestID cabecera de correlación; se genera si el cliente no la envía.
const HeaderRequestID = "X-Request-ID"

const maskedValue = "***"

// accessRecorder lo implementa *audit.Writer; la escritura no bloquea la respuesta.
type accessRecorder interface {
	RecordAsync(entry entity.AuditLogEntry)
}

// requestObserver lo implementa *metrics.Metrics.
type requestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// RequestID asigna un id de petición (uuid v4) y lo devuelve en la respuesta.
// El valor recibido se copia: fasthttp reutiliza el buffer de cabeceras.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := utils.CopyString(c.Get(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(HeaderRequestID, id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}

// AccessLog registra cada petición en la auditoría después de atenderla (fire-and-forget).
// El cuerpo se guarda con los campos de contraseña enmascarados. Los strings del request
// se copian antes de salir del handler porque la escritura ocurre en otra goroutine.
func AccessLog(rec accessRecorder, now func() time.Time) fiber.Handler {
	if now == nil {
		now = time.Now
	}
	return func(c *fiber.Ctx) error {
		err := c.Next()

		entry := entity.AuditLogEntry{
			When:      now().UTC(),
			Action:    audit.ActionHTTPAccess,
			Method:    utils.CopyString(c.Method()),
			Path:      utils.CopyString(c.Path()),
			IP:        utils.CopyString(c.IP()),
			UserAgent: utils.CopyString(c.Get(fiber.HeaderUserAgent)),
			Status:    statusOf(c, err),
			Body:      sanitizeBody(c.Body()),
		}
		if id, ok := c.Locals(HeaderRequestID).(string); ok {
			entry.RequestID = id
		}
		if actor, ok := GetActor(c); ok {
			entry.Actor = &actor
		}
		rec.RecordAsync(entry)
		return err
	}
}

// Metrics observa método, patrón de ruta, estado y latencia.
func Metrics(obs requestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		obs.ObserveRequest(utils.CopyString(c.Method()), c.Route().Path, statusOf(c, err), time.Since(start))
		return err
	}
}

// statusOf estado final de la respuesta; si el handler devolvió error, el que asignará ErrorHandler.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	status, _ := errorResponse(err)
	return status
}

// sanitizeBody decodifica un cuerpo JSON objeto y enmascara las claves que contienen "password".
// Un cuerpo vacío o que no es un objeto JSON no se guarda.
func sanitizeBody(raw []byte) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}
	maskPasswords(body)
	return body
}

func maskPasswords(m map[string]any) {
	for k, v := range m {
		if strings.Contains(strings.ToLower(k), "password") {
			m[k] = maskedValue
			continue
		}
		if nested, ok := v.(map[string]any); ok {
			maskPasswords(nested)
		}
	}
}
