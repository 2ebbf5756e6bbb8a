package report

import (
	"strings"

	"github.com/jhoicas/daily-inventory/internal/domain"
	"github.com/jhoicas/daily-inventory/internal/domain/entity"
)

// UnknownProductName reemplaza nombres de producto vacíos con la política placeholder.
const UnknownProductName = "Unknown Product"

// salesColumns es el mínimo de columnas de una fila de venta: ID, nombre, cantidad.
const salesColumns = 3

// ProductNamePolicy define qué hacer con un nombre de producto vacío.
type ProductNamePolicy string

const (
	// ProductNameRaw deja el nombre tal cual viene en la tabla.
	ProductNameRaw ProductNamePolicy = "raw"
	// ProductNamePlaceholder sustituye nombres vacíos por UnknownProductName.
	ProductNamePlaceholder ProductNamePolicy = "placeholder"
)

// ParseSalesRow valida una fila de tabla (sin cabecera) y construye el registro.
// rowNum es 1-based y solo se usa para el error.
func ParseSalesRow(row []string, channel entity.Channel, page, rowNum int, policy ProductNamePolicy) (entity.SalesRecord, error) {
	if len(row) < salesColumns {
		return entity.SalesRecord{}, &domain.RowError{
			Channel: string(channel),
			Page:    page,
			Row:     rowNum,
			Columns: len(row),
			Reason:  "se esperaban al menos 3 columnas (ID, nombre, cantidad)",
		}
	}
	name := row[1]
	if policy == ProductNamePlaceholder && strings.TrimSpace(name) == "" {
		name = UnknownProductName
	}
	return entity.SalesRecord{
		ProductID:    row[0],
		ProductName:  name,
		QuantitySold: CoerceQuantity(row[2]),
		Channel:      channel,
	}, nil
}

// ExtractSales convierte las tablas de un documento en registros de venta del canal.
// La primera fila de cada tabla es cabecera y se descarta; una página sin tabla
// no aporta registros. El orden de páginas y filas se conserva.
func ExtractSales(tables []entity.Table, channel entity.Channel, policy ProductNamePolicy) ([]entity.SalesRecord, error) {
	var records []entity.SalesRecord
	for _, t := range tables {
		if len(t.Rows) <= 1 {
			continue
		}
		for i, row := range t.Rows[1:] {
			rec, err := ParseSalesRow(row, channel, t.Page, i+1, policy)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}
	return records, nil
}
