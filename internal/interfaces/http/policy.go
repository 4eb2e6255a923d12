package http

import (
	"slices"

	"github.com/gofiber/fiber/v2"

	"github.com/davihchagas/feedback-system-project/internal/application/dto"
	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
)

// Conjuntos de roles usados en la tabla de rutas.
var (
	rolesAny     = []entity.Role{entity.RoleAdmin, entity.RoleAnalyst, entity.RoleClient}
	rolesAdmin   = []entity.Role{entity.RoleAdmin}
	rolesAnalyst = []entity.Role{entity.RoleAnalyst}
	rolesClient  = []entity.Role{entity.RoleClient}
	rolesStaff   = []entity.Role{entity.RoleAnalyst, entity.RoleAdmin}
	rolesPublic  []entity.Role // nil: ruta pública, sin token
)

// Route entrada de la tabla declarativa de autorización.
type Route struct {
	Method  string
	Path    string
	Roles   []entity.Role
	Handler fiber.Handler
}

// Public indica si la ruta no requiere autenticación.
func (r Route) Public() bool { return r.Roles == nil }

// authorize es la única decisión de acceso: el rol del actor debe estar en allowed.
// Devuelve el estado HTTP y el cuerpo de error cuando se deniega.
func authorize(actor entity.Actor, authenticated bool, allowed []entity.Role) (int, *dto.ErrorResponse) {
	if !authenticated {
		return fiber.StatusUnauthorized, &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "autenticación requerida"}
	}
	role, ok := entity.ParseRole(actor.Role)
	if actor.Role == "" || !ok {
		return fiber.StatusUnauthorized, &dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no contiene un rol válido"}
	}
	if !slices.Contains(allowed, role) {
		return fiber.StatusForbidden, &dto.ErrorResponse{Code: "FORBIDDEN", Message: "el rol " + string(role) + " no tiene acceso a este recurso"}
	}
	return fiber.StatusOK, nil
}

// RequireRole middleware que aplica authorize. Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(allowed ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := GetActor(c)
		if status, body := authorize(actor, ok, allowed); body != nil {
			return c.Status(status).JSON(body)
		}
		return c.Next()
	}
}

// register monta las rutas de la tabla: públicas tal cual, protegidas con auth + gate.
func register(r fiber.Router, jwtSecret string, routes []Route) {
	auth := AuthMiddleware(jwtSecret)
	for _, rt := range routes {
		if rt.Public() {
			r.Add(rt.Method, rt.Path, rt.Handler)
			continue
		}
		r.Add(rt.Method, rt.Path, auth, RequireRole(rt.Roles...), rt.Handler)
	}
}
