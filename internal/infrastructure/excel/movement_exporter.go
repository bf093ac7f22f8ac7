package excel

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stock-ledger/internal/application/report"
)

var _ report.SpreadsheetExporter = (*MovementExporter)(nil)

// Hojas del libro exportado.
const (
	SheetMovements = "Movimientos"
	SheetSummary   = "Resumen"
)

var movementHeaders = []any{
	"ID", "Fecha", "Código", "Nombre", "Categoría", "Tipo", "Cantidad", "Precio unitario", "Total", "Nota",
}

// MovementExporter genera el historial de movimientos en xlsx con excelize.
type MovementExporter struct{}

// NewMovementExporter construye el exportador.
func NewMovementExporter() *MovementExporter {
	return &MovementExporter{}
}

// ExportMovements una fila por movimiento y una hoja de resumen con unidades y valor por tipo.
func (e *MovementExporter) ExportMovements(ctx context.Context, export report.MovementExport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetMovements); err != nil {
		return nil, fmt.Errorf("xlsx hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx estilo: %w", err)
	}

	if err := f.SetSheetRow(SheetMovements, "A1", &movementHeaders); err != nil {
		return nil, fmt.Errorf("xlsx encabezado: %w", err)
	}
	if err := f.SetCellStyle(SheetMovements, "A1", "J1", bold); err != nil {
		return nil, fmt.Errorf("xlsx estilo: %w", err)
	}

	units := map[string]int{}
	values := map[string]decimal.Decimal{}
	for i, r := range export.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		total := decimal.NewFromInt(r.UnitPrice).Mul(decimal.NewFromInt(int64(r.Quantity)))
		units[r.Type] += r.Quantity
		values[r.Type] = values[r.Type].Add(total)

		row := []any{
			r.ID,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.ItemCode,
			r.Item.Name,
			r.Item.Category,
			r.Type,
			r.Quantity,
			r.UnitPrice,
			total.IntPart(),
			r.Note,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetMovements, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx fila %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(SheetMovements, "A", "J", 16); err != nil {
		return nil, fmt.Errorf("xlsx columnas: %w", err)
	}

	if err := writeSummary(f, export, units, values, bold); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, export report.MovementExport, units map[string]int, values map[string]decimal.Decimal, bold int) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("xlsx hoja resumen: %w", err)
	}
	rows := [][]any{
		{export.Title},
		{"Generado", export.GeneratedAt},
		{"Movimientos", len(export.Rows)},
		{"Tipo", "Unidades", "Valor"},
	}
	for _, t := range []string{"in", "out", "damaged"} {
		rows = append(rows, []any{t, units[t], values[t].IntPart()})
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetSummary, cell, &rows[i]); err != nil {
			return fmt.Errorf("xlsx resumen: %w", err)
		}
	}
	if err := f.SetCellStyle(SheetSummary, "A1", "A1", bold); err != nil {
		return err
	}
	return f.SetCellStyle(SheetSummary, "A4", "C4", bold)
}
