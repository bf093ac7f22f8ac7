package report

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
)

// MovementExport metadatos comunes de una exportación del historial.
type MovementExport struct {
	Title       string
	GeneratedAt string
	Rows        []dto.MovementWithItemResponse
}

// SpreadsheetExporter genera la hoja de cálculo del historial (xlsx).
type SpreadsheetExporter interface {
	ExportMovements(ctx context.Context, export MovementExport) ([]byte, error)
}

// PDFGenerator genera la versión imprimible del historial.
type PDFGenerator interface {
	GenerateMovementReport(ctx context.Context, export MovementExport) ([]byte, error)
}
