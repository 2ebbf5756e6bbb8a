package entity

import "github.com/shopspring/decimal"

// Columnas requeridas de la hoja de stock.
const (
	LedgerColumnProductID     = "Product ID"
	LedgerColumnProductName   = "Product Name"
	LedgerColumnOpeningStock  = "Opening Stock"
	LedgerColumnIssuanceStock = "Issuance Stock"
	LedgerColumnPhysicalStock = "Physical Stock"
)

// LedgerColumns devuelve las columnas requeridas en el orden del reporte.
func LedgerColumns() []string {
	return []string{
		LedgerColumnProductID,
		LedgerColumnProductName,
		LedgerColumnOpeningStock,
		LedgerColumnIssuanceStock,
		LedgerColumnPhysicalStock,
	}
}

// StockRecord es una fila de la hoja de stock. Los valores numéricos ilegibles
// quedan como NullDecimal inválido (faltante), nunca como cero.
type StockRecord struct {
	ProductID     string
	ProductName   string
	OpeningStock  decimal.NullDecimal
	IssuanceStock decimal.NullDecimal
	PhysicalStock decimal.NullDecimal
}

// Ledger agrupa las filas de la hoja de stock subida con el reporte.
// Un Ledger sin filas sigue siendo un ledger suministrado.
type Ledger struct {
	Records []StockRecord
}
