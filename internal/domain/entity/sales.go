package entity

import "github.com/shopspring/decimal"

// SalesRecord es una fila de venta extraída de la tabla de un reporte PDF.
// ProductID se conserva tal cual (puede venir vacío).
type SalesRecord struct {
	ProductID    string
	ProductName  string
	QuantitySold decimal.Decimal
	Channel      Channel
}

// Table es la tabla detectada en una página: Rows[0] es la cabecera.
type Table struct {
	Page int // 1-based
	Rows [][]string
}
