// Package excel lee la hoja de stock y escribe el reporte combinado en .xlsx con excelize.
package excel

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/daily-inventory/internal/domain"
	"github.com/jhoicas/daily-inventory/internal/domain/entity"
	"github.com/jhoicas/daily-inventory/internal/domain/report"
)

// LedgerReader implementa report.LedgerReader sobre la primera hoja del libro.
type LedgerReader struct{}

// NewLedgerReader construye el lector.
func NewLedgerReader() *LedgerReader { return &LedgerReader{} }

// ReadLedger lee la hoja de stock. Devuelve *domain.SchemaError si falta alguna
// columna requerida y domain.ErrInvalidDocument si el archivo no es un libro legible.
// Las columnas adicionales se ignoran.
func (r *LedgerReader) ReadLedger(_ context.Context, data []byte) (*entity.Ledger, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: excel: abrir libro: %v", domain.ErrInvalidDocument, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: excel: el libro no tiene hojas", domain.ErrInvalidDocument)
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: excel: leer hoja %q: %v", domain.ErrInvalidDocument, sheets[0], err)
	}

	var headerRow []string
	if len(rows) > 0 {
		headerRow = rows[0]
	}
	idx, err := columnIndex(headerRow)
	if err != nil {
		return nil, err
	}

	ledger := &entity.Ledger{}
	for _, row := range rows[min(1, len(rows)):] {
		if blank(row) {
			continue
		}
		ledger.Records = append(ledger.Records, entity.StockRecord{
			ProductID:     cellAt(row, idx[entity.LedgerColumnProductID]),
			ProductName:   cellAt(row, idx[entity.LedgerColumnProductName]),
			OpeningStock:  report.CoerceStockValue(cellAt(row, idx[entity.LedgerColumnOpeningStock])),
			IssuanceStock: report.CoerceStockValue(cellAt(row, idx[entity.LedgerColumnIssuanceStock])),
			PhysicalStock: report.CoerceStockValue(cellAt(row, idx[entity.LedgerColumnPhysicalStock])),
		})
	}
	return ledger, nil
}

// columnIndex ubica cada columna requerida en la cabecera (primera aparición).
func columnIndex(header []string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}
	idx := make(map[string]int)
	var missing []string
	for _, col := range entity.LedgerColumns() {
		i, ok := pos[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		idx[col] = i
	}
	if len(missing) > 0 {
		return nil, &domain.SchemaError{Missing: missing}
	}
	return idx, nil
}

// cellAt tolera filas cortas: excelize recorta las celdas vacías finales.
func cellAt(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
