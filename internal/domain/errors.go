package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidDocument    = errors.New("documento ilegible o corrupto")
	ErrInconsistentTotals = errors.New("total vendido no coincide con la suma por canal")
	ErrNoReport           = errors.New("aún no se ha generado ningún reporte")
)

// SchemaError indica que la hoja de stock no expone todas las columnas requeridas.
// Missing conserva el orden de las columnas requeridas.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("columnas requeridas ausentes en la hoja de stock: %s", strings.Join(e.Missing, ", "))
}

// RowError describe una fila de tabla que no se pudo convertir en registro.
type RowError struct {
	Channel string
	Page    int // 1-based; 0 si no aplica
	Row     int // 1-based dentro de la tabla, sin contar la cabecera
	Columns int
	Reason  string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("fila malformada (canal %q, página %d, fila %d, %d columnas): %s",
		e.Channel, e.Page, e.Row, e.Columns, e.Reason)
}
