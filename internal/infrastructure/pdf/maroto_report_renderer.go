// Package pdf lee tablas de los reportes de venta en PDF y genera la versión
// PDF del reporte combinado.
//
// Layout de la página A4 del reporte combinado:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título                 │  Fecha de generación      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: canales / productos / conciliación con stock      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Nombre | canales... | Total [| stock | dif.]   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: unidades vendidas por canal                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/daily-inventory/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const gridSize = 12

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoReportRenderer implementa report.Renderer usando Maroto v2.
type MarotoReportRenderer struct{}

// NewMarotoReportRenderer construye el renderer.
func NewMarotoReportRenderer() *MarotoReportRenderer { return &MarotoReportRenderer{} }

// ContentType del documento generado.
func (g *MarotoReportRenderer) ContentType() string { return "application/pdf" }

// Extension del archivo generado.
func (g *MarotoReportRenderer) Extension() string { return ".pdf" }

// Render genera el PDF del reporte combinado y devuelve sus bytes.
func (g *MarotoReportRenderer) Render(_ context.Context, rep *entity.Report, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Reporte combinado de ventas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	sizes := columnSizes(len(rep.Header()))
	m.AddRows(tableHeaderRow(rep.Header(), sizes))
	for _, r := range tableDetailRows(rep, sizes) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rep))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("REPORTE COMBINADO DE VENTAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func summaryRow(rep *entity.Report) core.Row {
	channels := make([]string, 0, len(rep.Channels))
	for _, c := range rep.Channels {
		channels = append(channels, c.String())
	}
	stock := "sin hoja de stock"
	if rep.WithLedger {
		matched := 0
		for _, r := range rep.Rows {
			if r.Stock != nil {
				matched++
			}
		}
		stock = fmt.Sprintf("%d de %d productos conciliados con stock", matched, len(rep.Rows))
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Canales: %s   |   Productos: %d   |   %s",
				nonEmpty(strings.Join(channels, ", "), "—"), len(rep.Rows), stock,
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

// columnSizes reparte las 12 columnas de la grilla: ID y nombre se llevan lo
// que sobra tras dar una columna a cada valor numérico.
func columnSizes(n int) []int {
	numeric := n - 2
	idSize := 2
	if numeric > 4 {
		idSize = 1
	}
	nameSize := gridSize - idSize - numeric
	if nameSize < 1 {
		nameSize = 1
	}
	sizes := []int{idSize, nameSize}
	for i := 0; i < numeric; i++ {
		sizes = append(sizes, 1)
	}
	return sizes
}

func tableHeaderRow(header []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(header))
	for i, label := range header {
		a := align.Right
		if i < 2 {
			a = align.Left
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a,
			Color: colorWhite, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(10).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRows(rep *entity.Report, sizes []int) []core.Row {
	result := make([]core.Row, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		cells := rep.Cells(r)
		cols := make([]core.Col, 0, len(cells))
		for i, v := range cells {
			a := align.Right
			if i < 2 {
				a = align.Left
			}
			cols = append(cols, col.New(sizes[i]).Add(text.New(formatCell(v), props.Text{
				Size: 7, Align: a, Top: 1, Left: 1, Right: 1,
			})))
		}
		result = append(result, row.New(6).Add(cols...))
	}
	return result
}

// totalsRow: unidades vendidas por canal y total general.
func totalsRow(rep *entity.Report) core.Row {
	parts := make([]string, 0, len(rep.Channels)+1)
	grand := decimal.Zero
	for _, c := range rep.Channels {
		sum := decimal.Zero
		for _, r := range rep.Rows {
			sum = sum.Add(r.Quantity(c))
		}
		grand = grand.Add(sum)
		parts = append(parts, fmt.Sprintf("%s: %s", c, sum.String()))
	}
	parts = append(parts, "TOTAL: "+grand.String())
	return row.New(10).Add(col.New(12).Add(
		text.New(strings.Join(parts, "   |   "), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func formatCell(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case decimal.Decimal:
		return t.String()
	case decimal.NullDecimal:
		if !t.Valid {
			return ""
		}
		return t.Decimal.String()
	default:
		return fmt.Sprint(v)
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
