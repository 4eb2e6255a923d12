package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/davihchagas/feedback-system-project/internal/application/dto"
	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
	"github.com/davihchagas/feedback-system-project/pkg/jwt"
)

// LocalActor clave de Locals con el entity.Actor autenticado.
const LocalActor = "actor"

// AuthMiddleware valida el Bearer Token JWT y deja el actor (id, nombre, email, rol) en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		id := claims.Identity()
		c.Locals(LocalActor, entity.Actor{UserID: id.UserID, Name: id.Name, Email: id.Email, Role: id.Role})
		return c.Next()
	}
}

// GetActor devuelve el actor del contexto (después del middleware de auth).
func GetActor(c *fiber.Ctx) (entity.Actor, bool) {
	a, ok := c.Locals(LocalActor).(entity.Actor)
	return a, ok
}

// GetUserID devuelve el UserID del contexto o "".
func GetUserID(c *fiber.Ctx) string {
	a, _ := GetActor(c)
	return a.UserID
}

// GetRole devuelve el rol del contexto o "".
func GetRole(c *fiber.Ctx) string {
	a, _ := GetActor(c)
	return a.Role
}
