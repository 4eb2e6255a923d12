package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/davihchagas/feedback-system-project/internal/application/dto"
	"github.com/davihchagas/feedback-system-project/internal/application/usecase"
	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
)

// AdminHandler administración de usuarios, listados de feedback y auditoría.
type AdminHandler struct {
	users    *usecase.UserUseCase
	logs     *usecase.LogUseCase
	feedback *usecase.FeedbackQueryUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(users *usecase.UserUseCase, logs *usecase.LogUseCase, feedback *usecase.FeedbackQueryUseCase) *AdminHandler {
	return &AdminHandler{users: users, logs: logs, feedback: feedback}
}

// ListUsers godoc
// @Summary      Listar usuarios
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        role  query  string  false  "ADMIN | ANALYST | CLIENT"
// @Success      200   {array}   dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	return h.listByRole(c, c.Query("role"))
}

// ListClients godoc
// @Summary      Listar clientes
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/admin/clients [get]
func (h *AdminHandler) ListClients(c *fiber.Ctx) error {
	return h.listByRole(c, string(entity.RoleClient))
}

// ListAnalysts godoc
// @Summary      Listar analistas
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/admin/analysts [get]
func (h *AdminHandler) ListAnalysts(c *fiber.Ctx) error {
	return h.listByRole(c, string(entity.RoleAnalyst))
}

func (h *AdminHandler) listByRole(c *fiber.Ctx, role string) error {
	out, err := h.users.List(c.UserContext(), role)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateUser godoc
// @Summary      Crear usuario
// @Description  Un usuario CLIENT recibe su fila de cliente en la misma transacción.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/users [post]
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	var in dto.CreateUserRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.users.Create(c.UserContext(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateUser godoc
// @Summary      Actualizar usuario
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id} [patch]
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	var in dto.UpdateUserRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.users.Update(c.UserContext(), actor, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeactivateUser godoc
// @Summary      Desactivar usuario
// @Tags         admin
// @Security     Bearer
// @Param        id   path  string  true  "ID del usuario"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) DeactivateUser(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	if err := h.users.Deactivate(c.UserContext(), actor, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListFeedbacks godoc
// @Summary      Listado administrativo de feedbacks
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        productId  query  string  false  "Producto"
// @Param        clientId   query  string  false  "Cliente"
// @Success      200  {array}  dto.FeedbackDetailResponse
// @Router       /api/admin/feedbacks [get]
func (h *AdminHandler) ListFeedbacks(c *fiber.Ctx) error {
	q := dto.FeedbackQuery{ProductID: c.Query("productId"), ClientID: c.Query("clientId")}
	out, err := h.feedback.ListDetailed(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListLogs godoc
// @Summary      Auditoría cruda
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        userId  query  string  false  "Usuario"
// @Param        path    query  string  false  "Ruta"
// @Param        action  query  string  false  "Acción"
// @Success      200  {object}  dto.RawLogPage
// @Router       /api/admin/logs [get]
func (h *AdminHandler) ListLogs(c *fiber.Ctx) error {
	var q dto.LogQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.logs.ListRaw(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListHumanLogs godoc
// @Summary      Auditoría legible
// @Description  Por defecto solo acciones de negocio; all=true incluye los accesos HTTP.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        page      query  int     false  "Página"  default(1)
// @Param        limit     query  int     false  "Límite"  default(20)
// @Param        role      query  string  false  "Rol del actor"
// @Param        action    query  string  false  "Acción"
// @Param        userId    query  string  false  "Usuario"
// @Param        dateFrom  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        dateTo    query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        all       query  bool    false  "Incluir accesos"
// @Success      200  {object}  dto.HumanLogPage
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/logs/human [get]
func (h *AdminHandler) ListHumanLogs(c *fiber.Ctx) error {
	var q dto.LogQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.logs.ListHuman(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
