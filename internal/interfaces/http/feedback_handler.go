package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/davihchagas/feedback-system-project/internal/application/dto"
	"github.com/davihchagas/feedback-system-project/internal/application/feedback"
	"github.com/davihchagas/feedback-system-project/internal/application/usecase"
)

// HeaderIdempotencyKey cabecera opcional de deduplicación de create-feedback.
const HeaderIdempotencyKey = "Idempotency-Key"

// FeedbackHandler maneja feedbacks, sus textos largos y las respuestas de analistas.
type FeedbackHandler struct {
	orch  *feedback.Orchestrator
	query *usecase.FeedbackQueryUseCase
}

// NewFeedbackHandler construye el handler.
func NewFeedbackHandler(orch *feedback.Orchestrator, query *usecase.FeedbackQueryUseCase) *FeedbackHandler {
	return &FeedbackHandler{orch: orch, query: query}
}

// Create godoc
// @Summary      Registrar feedback
// @Description  Inserta la fila relacional y, si hay texto largo, el documento asociado. Los fallos
// @Description  posteriores a la inserción se listan en secondaryFailures sin cambiar el 201.
// @Tags         feedbacks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                     false  "Clave de idempotencia"
// @Param        body             body    dto.CreateFeedbackRequest  true   "Feedback"
// @Success      201   {object}  dto.CreateFeedbackResponse
// @Success      200   {object}  dto.CreateFeedbackResponse  "clave repetida"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/feedbacks [post]
func (h *FeedbackHandler) Create(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	var in dto.CreateFeedbackRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	res, err := h.orch.CreateFeedback(c.UserContext(), actor, in, c.Get(HeaderIdempotencyKey))
	if err != nil {
		return writeError(c, err)
	}
	status := fiber.StatusCreated
	if res.Replayed {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(res.Response())
}

// ListDetailed godoc
// @Summary      Vista detallada de feedbacks
// @Tags         feedbacks
// @Security     Bearer
// @Produce      json
// @Param        productId  query  string  false  "Producto"
// @Param        clientId   query  string  false  "Cliente"
// @Param        dateFrom   query  string  false  "Desde (YYYY-MM-DD)"
// @Param        dateTo     query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        ratingMin  query  int     false  "Nota mínima"
// @Param        ratingMax  query  int     false  "Nota máxima"
// @Success      200  {array}   dto.FeedbackDetailResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/feedbacks/detailed [get]
func (h *FeedbackHandler) ListDetailed(c *fiber.Ctx) error {
	var q dto.FeedbackQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.query.ListDetailed(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetText godoc
// @Summary      Texto largo de un feedback
// @Tags         feedbacks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del feedback"
// @Success      200  {object}  dto.FeedbackTextResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/feedbacks/{id}/text [get]
func (h *FeedbackHandler) GetText(c *fiber.Ctx) error {
	out, err := h.query.GetText(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Respond godoc
// @Summary      Responder un feedback
// @Tags         feedbacks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del feedback"
// @Param        body  body  dto.CreateResponseRequest  true  "Respuesta"
// @Success      201   {object}  dto.ResponseDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/feedbacks/{id}/responses [post]
func (h *FeedbackHandler) Respond(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	var in dto.CreateResponseRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	res, err := h.orch.RespondToFeedback(c.UserContext(), actor, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res.Response)
}

// ListResponses godoc
// @Summary      Respuestas de un feedback
// @Tags         feedbacks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del feedback"
// @Success      200  {array}   dto.ResponseDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/feedbacks/{id}/responses [get]
func (h *FeedbackHandler) ListResponses(c *fiber.Ctx) error {
	out, err := h.query.ListResponses(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
