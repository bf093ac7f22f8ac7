package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/ledger"
	"github.com/jhoicas/stock-ledger/internal/application/report"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// ReportHandler reportes de solo lectura y auditoría del libro.
type ReportHandler struct {
	reports *report.ReportUseCase
	ledger  *ledger.LedgerUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reports *report.ReportUseCase, ledger *ledger.LedgerUseCase) *ReportHandler {
	return &ReportHandler{reports: reports, ledger: ledger}
}

// Valuation godoc
// @Summary      Valoración del inventario por categoría
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.ValuationReportDTO
// @Router       /api/reports/valuation [get]
func (h *ReportHandler) Valuation(c *fiber.Ctx) error {
	out, err := h.reports.Valuation(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MovementsXLSX godoc
// @Summary      Exportar historial a Excel
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from  query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (RFC3339 o YYYY-MM-DD, inclusivo)"
// @Success      200   {file}  binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/movements.xlsx [get]
func (h *ReportHandler) MovementsXLSX(c *fiber.Ctx) error {
	filter, err := movementFilter(c)
	if err != nil {
		return badRequest(c, "INVALID_DATE", err.Error())
	}
	data, err := h.reports.ExportMovementsXLSX(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment("movimientos.xlsx")
	c.Set(fiber.HeaderContentType, mimeXLSX)
	return c.Send(data)
}

// MovementsPDF godoc
// @Summary      Exportar historial a PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        from  query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (RFC3339 o YYYY-MM-DD, inclusivo)"
// @Success      200   {file}  binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/movements.pdf [get]
func (h *ReportHandler) MovementsPDF(c *fiber.Ctx) error {
	filter, err := movementFilter(c)
	if err != nil {
		return badRequest(c, "INVALID_DATE", err.Error())
	}
	data, err := h.reports.ExportMovementsPDF(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment("movimientos.pdf")
	c.Set(fiber.HeaderContentType, mimePDF)
	return c.Send(data)
}

// AuditStock godoc
// @Summary      Auditar stock contra el libro
// @Description  Lista los items cuyo stock difiere de la suma de sus movimientos.
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.StockAuditReport
// @Router       /api/audit/stock [get]
func (h *ReportHandler) AuditStock(c *fiber.Ctx) error {
	out, err := h.ledger.Audit(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
