package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// ReportUseCase reportes de solo lectura: valoración del inventario y exportación del historial.
type ReportUseCase struct {
	repo  repository.ReportRepository
	sheet SpreadsheetExporter
	pdf   PDFGenerator
	now   func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository, sheet SpreadsheetExporter, pdf PDFGenerator) *ReportUseCase {
	return &ReportUseCase{repo: repo, sheet: sheet, pdf: pdf, now: time.Now}
}

// Valuation valor del stock por categoría (stock * precio de compra y de venta).
func (uc *ReportUseCase) Valuation(ctx context.Context) (*dto.ValuationReportDTO, error) {
	rows, err := uc.repo.StockValuation(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.ValuationReportDTO{
		Categories:     make([]dto.CategoryValuationDTO, 0, len(rows)),
		GrandTotal:     decimal.Zero,
		GrandSaleTotal: decimal.Zero,
	}
	for _, r := range rows {
		out.Categories = append(out.Categories, dto.CategoryValuationDTO{
			Category:  r.Category,
			Items:     r.Items,
			Units:     r.Units,
			Value:     r.Value,
			SaleValue: r.SaleValue,
		})
		out.GrandTotal = out.GrandTotal.Add(r.Value)
		out.GrandSaleTotal = out.GrandSaleTotal.Add(r.SaleValue)
	}
	out.PotentialGain = out.GrandSaleTotal.Sub(out.GrandTotal)
	return out, nil
}

// ExportMovementsXLSX hoja de cálculo con el historial de movimientos.
func (uc *ReportUseCase) ExportMovementsXLSX(ctx context.Context, filter entity.MovementFilter) ([]byte, error) {
	export, err := uc.movementExport(ctx, filter)
	if err != nil {
		return nil, err
	}
	return uc.sheet.ExportMovements(ctx, export)
}

// ExportMovementsPDF versión PDF del historial de movimientos.
func (uc *ReportUseCase) ExportMovementsPDF(ctx context.Context, filter entity.MovementFilter) ([]byte, error) {
	export, err := uc.movementExport(ctx, filter)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateMovementReport(ctx, export)
}

func (uc *ReportUseCase) movementExport(ctx context.Context, filter entity.MovementFilter) (MovementExport, error) {
	list, err := uc.repo.ListMovementsWithItem(ctx, filter)
	if err != nil {
		return MovementExport{}, fmt.Errorf("historial de movimientos: %w", err)
	}
	title := "Historial de movimientos"
	if filter.From != nil {
		title += " desde " + filter.From.Format("2006-01-02")
	}
	if filter.To != nil {
		title += " hasta " + filter.To.Format("2006-01-02")
	}
	return MovementExport{
		Title:       title,
		GeneratedAt: uc.now().Format("2006-01-02 15:04"),
		Rows:        dto.FromMovementsWithItem(list),
	}, nil
}
