// Package report contiene el núcleo del reporte diario de inventario: conversión
// de celdas, lectura de filas de venta, pivote por producto y canal, y conciliación
// contra la hoja de stock. No depende de HTTP, archivos ni formatos de documento.
package report

import (
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// CoerceQuantity convierte una celda de cantidad vendida a número.
// Es total: cualquier valor no numérico, vacío o nil devuelve cero.
func CoerceQuantity(v any) decimal.Decimal {
	d, ok := parseNumber(v)
	if !ok {
		return decimal.Zero
	}
	return d
}

// CoerceStockValue convierte una celda numérica de la hoja de stock.
// A diferencia de las ventas, un valor ilegible queda como faltante (Valid=false).
func CoerceStockValue(v any) decimal.NullDecimal {
	d, ok := parseNumber(v)
	return decimal.NullDecimal{Decimal: d, Valid: ok}
}

func parseNumber(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return t, true
	case decimal.NullDecimal:
		return t.Decimal, t.Valid
	case string:
		return parseNumberString(t)
	case *string:
		if t == nil {
			return decimal.Zero, false
		}
		return parseNumberString(*t)
	case []byte:
		return parseNumberString(string(t))
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int8:
		return decimal.NewFromInt(int64(t)), true
	case int16:
		return decimal.NewFromInt(int64(t)), true
	case int32:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	case uint:
		return fromUint(uint64(t)), true
	case uint8:
		return fromUint(uint64(t)), true
	case uint16:
		return fromUint(uint64(t)), true
	case uint32:
		return fromUint(uint64(t)), true
	case uint64:
		return fromUint(t), true
	case float32:
		return parseFloat(float64(t))
	case float64:
		return parseFloat(t)
	default:
		return decimal.Zero, false
	}
}

func fromUint(u uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(u), 0)
}

func parseFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

func parseNumberString(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
