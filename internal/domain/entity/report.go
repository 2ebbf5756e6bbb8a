package entity

import "github.com/shopspring/decimal"

// Columnas fijas del reporte combinado.
const (
	ColumnProductID       = "Product ID"
	ColumnProductName     = "Product Name"
	ColumnTotalQuantity   = "Total Quantity Sold"
	ColumnStockDifference = "Stock Difference"
)

// StockFigures son las cifras de stock unidas a una fila del reporte.
type StockFigures struct {
	OpeningStock  decimal.NullDecimal
	IssuanceStock decimal.NullDecimal
	PhysicalStock decimal.NullDecimal
}

// ReportRow es una fila pivotada: un producto con su cantidad por canal.
type ReportRow struct {
	ProductID         string
	ProductName       string
	Quantities        map[Channel]decimal.Decimal
	TotalQuantitySold decimal.Decimal
	// Stock y StockDifference solo se llenan cuando se suministró ledger.
	// Stock nil = producto sin coincidencia en el ledger.
	Stock           *StockFigures
	StockDifference decimal.NullDecimal
}

// Quantity devuelve la cantidad del canal (cero si el producto no aparece en él).
func (r ReportRow) Quantity(c Channel) decimal.Decimal {
	if q, ok := r.Quantities[c]; ok {
		return q
	}
	return decimal.Zero
}

// Report es el resultado tabular del pipeline.
type Report struct {
	Channels   []Channel // columnas de canal en orden
	WithLedger bool
	Rows       []ReportRow
}

// Header devuelve los nombres de columna en el orden de salida.
func (r *Report) Header() []string {
	header := []string{ColumnProductID, ColumnProductName}
	for _, c := range r.Channels {
		header = append(header, string(c))
	}
	if r.WithLedger {
		header = append(header,
			LedgerColumnOpeningStock,
			LedgerColumnIssuanceStock,
			LedgerColumnPhysicalStock,
			ColumnTotalQuantity,
			ColumnStockDifference,
		)
		return header
	}
	return append(header, ColumnTotalQuantity)
}

// Cells devuelve los valores de una fila alineados con Header.
// Los valores faltantes se devuelven como NullDecimal inválido.
func (r *Report) Cells(row ReportRow) []any {
	cells := []any{row.ProductID, row.ProductName}
	for _, c := range r.Channels {
		cells = append(cells, row.Quantity(c))
	}
	if !r.WithLedger {
		return append(cells, row.TotalQuantitySold)
	}
	stock := StockFigures{}
	if row.Stock != nil {
		stock = *row.Stock
	}
	return append(cells,
		stock.OpeningStock,
		stock.IssuanceStock,
		stock.PhysicalStock,
		row.TotalQuantitySold,
		row.StockDifference,
	)
}
