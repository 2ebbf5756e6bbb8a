package excel

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/daily-inventory/internal/domain/entity"
)

const sheetName = "Sheet1"

// ReportRenderer implementa report.Renderer generando un .xlsx con una fila de
// cabecera y una fila por producto. Los valores faltantes quedan como celda vacía.
type ReportRenderer struct{}

// NewReportRenderer construye el renderer.
func NewReportRenderer() *ReportRenderer { return &ReportRenderer{} }

// ContentType del libro generado.
func (w *ReportRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension del archivo generado.
func (w *ReportRenderer) Extension() string { return ".xlsx" }

// Render escribe el reporte y devuelve los bytes del libro.
func (w *ReportRenderer) Render(_ context.Context, rep *entity.Report, _ time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	header := rep.Header()
	headerCells := make([]any, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerCells); err != nil {
		return nil, fmt.Errorf("excel: escribir cabecera: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: crear estilo: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return nil, fmt.Errorf("excel: columna final: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", bold); err != nil {
		return nil, fmt.Errorf("excel: aplicar estilo: %w", err)
	}

	for i, row := range rep.Rows {
		cells := rep.Cells(row)
		values := make([]any, len(cells))
		for j, v := range cells {
			values[j] = cellValue(v)
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("excel: celda fila %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheetName, axis, &values); err != nil {
			return nil, fmt.Errorf("excel: escribir fila %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}

// cellValue convierte los valores del reporte a tipos que excelize escribe como número.
func cellValue(v any) any {
	switch t := v.(type) {
	case decimal.Decimal:
		return t.InexactFloat64()
	case decimal.NullDecimal:
		if !t.Valid {
			return nil
		}
		return t.Decimal.InexactFloat64()
	default:
		return v
	}
}
