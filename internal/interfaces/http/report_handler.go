package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/davihchagas/feedback-system-project/internal/application/dto"
	"github.com/davihchagas/feedback-system-project/internal/application/usecase"
)

// ReportHandler reportes de satisfacción por producto.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Ranking godoc
// @Summary      Ranking de productos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductRankingItem
// @Router       /api/reports/products/ranking [get]
func (h *ReportHandler) Ranking(c *fiber.Ctx) error {
	out, err := h.uc.Ranking(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RankingPDF godoc
// @Summary      Ranking de productos (PDF)
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/products/ranking.pdf [get]
func (h *ReportHandler) RankingPDF(c *fiber.Ctx) error {
	out, err := h.uc.RankingPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="ranking-productos.pdf"`)
	return c.Send(out)
}

// ProductSatisfaction godoc
// @Summary      Satisfacción de un producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id        path   string  true   "ID del producto"
// @Param        dateFrom  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        dateTo    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.ProductSatisfactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/products/{id} [get]
func (h *ReportHandler) ProductSatisfaction(c *fiber.Ctx) error {
	var period dto.ReportPeriod
	if err := bindQuery(c, &period); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ProductSatisfaction(c.UserContext(), c.Params("id"), period)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
