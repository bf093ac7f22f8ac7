// Package pdf genera la versión imprimible del historial de movimientos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título                    │  Fecha de generación   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Código | Nombre | Tipo | Cant | P.Unit | Total│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: unidades y valor por tipo de movimiento           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/report"
)

var _ report.PDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var typeLabels = map[string]string{
	"in":      "Entrada",
	"out":     "Salida",
	"damaged": "Dañado",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador. Los montos se formatean con separadores en español.
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{printer: message.NewPrinter(language.Spanish)}
}

// GenerateMovementReport genera el PDF del historial y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateMovementReport(_ context.Context, export report.MovementExport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(export.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(export))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(export.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos en el período.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	for _, r := range g.tableDetailRows(export.Rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(export.Rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(export report.MovementExport) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(export.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d movimientos", len(export.Rows)), props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+export.GeneratedAt, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Código", 1, align.Left),
		h("Nombre", 3, align.Left),
		h("Tipo", 1, align.Center),
		h("Cant.", 1, align.Center),
		h("P. Unit.", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableDetailRows: una fila por movimiento; los dañados en rojo.
func (g *MarotoPDFGenerator) tableDetailRows(rows []dto.MovementWithItemResponse) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		var color *props.Color
		if r.Type == "damaged" {
			color = colorDanger
		}
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{
				Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: color,
			}))
		}
		result = append(result, row.New(7).Add(
			cell(r.Timestamp.Format("02/01/2006 15:04"), 2, align.Left),
			cell(r.ItemCode, 1, align.Left),
			cell(r.Item.Name, 3, align.Left),
			cell(label(r.Type), 1, align.Center),
			cell(g.printer.Sprintf("%d", r.Quantity), 1, align.Center),
			cell(g.money(r.UnitPrice), 2, align.Right),
			cell(g.money(r.UnitPrice*int64(r.Quantity)), 2, align.Right),
		))
	}
	return result
}

// totalsRow: unidades y valor acumulado por tipo.
func (g *MarotoPDFGenerator) totalsRow(rows []dto.MovementWithItemResponse) core.Row {
	units := map[string]int{}
	values := map[string]int64{}
	for _, r := range rows {
		units[r.Type] += r.Quantity
		values[r.Type] += r.UnitPrice * int64(r.Quantity)
	}

	labels := make([]core.Component, 0, 3)
	amounts := make([]core.Component, 0, 3)
	for i, t := range []string{"in", "out", "damaged"} {
		top := float64(i * 6)
		labels = append(labels, text.New(label(t)+":", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		}))
		amounts = append(amounts, text.New(
			g.printer.Sprintf("%d u. / %s", units[t], g.money(values[t])),
			props.Text{Size: 9, Align: align.Right, Right: 1, Top: top},
		))
	}
	return row.New(20).Add(
		col.New(4),
		col.New(3).Add(labels...),
		col.New(5).Add(amounts...),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) money(v int64) string {
	return g.printer.Sprintf("$%d", v)
}

func label(t string) string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return t
}
