package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/daily-inventory/internal/domain"
	"github.com/jhoicas/daily-inventory/internal/domain/entity"
)

// SummaryRowMarker identifica filas de totales que el extractor confunde con datos.
const SummaryRowMarker = "Total Qty"

type pivotKey struct {
	productID   string
	productName string
}

// Aggregate pivota los registros de venta por (ID, nombre) y canal, concilia
// contra el ledger si se suministra (ledger nil = sin hoja de stock) y descarta
// las filas de resumen.
func Aggregate(records []entity.SalesRecord, ledger *entity.Ledger) (*entity.Report, error) {
	for _, r := range records {
		if !r.Channel.Valid() {
			return nil, fmt.Errorf("%w: canal desconocido %q", domain.ErrInvalidInput, r.Channel)
		}
	}
	rep := Pivot(records)
	if ledger != nil {
		if err := JoinLedger(rep, ledger); err != nil {
			return nil, err
		}
	}
	rep.Rows = FilterSummaryRows(rep.Rows)
	return rep, nil
}

// Pivot agrupa por (ID, nombre) y suma la cantidad por canal. Las columnas de
// canal siguen el orden en que aparece cada canal en records; un producto que no
// aparece en un canal lleva cero. Las filas salen ordenadas por ID y nombre.
func Pivot(records []entity.SalesRecord) *entity.Report {
	rep := &entity.Report{}
	seen := make(map[entity.Channel]bool)
	groups := make(map[pivotKey]*entity.ReportRow)
	var keys []pivotKey

	for _, r := range records {
		if !seen[r.Channel] {
			seen[r.Channel] = true
			rep.Channels = append(rep.Channels, r.Channel)
		}
		k := pivotKey{productID: r.ProductID, productName: r.ProductName}
		row, ok := groups[k]
		if !ok {
			row = &entity.ReportRow{
				ProductID:   r.ProductID,
				ProductName: r.ProductName,
				Quantities:  make(map[entity.Channel]decimal.Decimal),
			}
			groups[k] = row
			keys = append(keys, k)
		}
		row.Quantities[r.Channel] = row.Quantity(r.Channel).Add(r.QuantitySold)
	}

	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].productID != keys[j].productID {
			return keys[i].productID < keys[j].productID
		}
		return keys[i].productName < keys[j].productName
	})

	rep.Rows = make([]entity.ReportRow, 0, len(keys))
	for _, k := range keys {
		row := groups[k]
		total := decimal.Zero
		for _, c := range rep.Channels {
			q := row.Quantity(c)
			row.Quantities[c] = q
			total = total.Add(q)
		}
		row.TotalQuantitySold = total
		rep.Rows = append(rep.Rows, *row)
	}
	return rep
}

// JoinLedger hace left join del reporte con el ledger por Product ID únicamente.
// Toda fila del reporte se conserva; las filas del ledger sin coincidencia se
// descartan y, si un ID se repite en el ledger, gana la primera aparición.
// Las columnas de canal pasan a ser las tres fijas.
func JoinLedger(rep *entity.Report, ledger *entity.Ledger) error {
	byID := make(map[string]entity.StockRecord, len(ledger.Records))
	for _, rec := range ledger.Records {
		if _, dup := byID[rec.ProductID]; !dup {
			byID[rec.ProductID] = rec
		}
	}

	rep.WithLedger = true
	rep.Channels = entity.Channels()

	for i := range rep.Rows {
		row := &rep.Rows[i]
		for _, c := range rep.Channels {
			row.Quantities[c] = row.Quantity(c)
		}
		total := row.Quantity(entity.ChannelFoodCourt).
			Add(row.Quantity(entity.ChannelRestaurant)).
			Add(row.Quantity(entity.ChannelDelivery))
		if !total.Equal(row.TotalQuantitySold) {
			return fmt.Errorf("%w: producto %q: %s != %s",
				domain.ErrInconsistentTotals, row.ProductID, total, row.TotalQuantitySold)
		}
		row.TotalQuantitySold = total

		rec, ok := byID[row.ProductID]
		if !ok {
			row.Stock = nil
			row.StockDifference = decimal.NullDecimal{}
			continue
		}
		row.Stock = &entity.StockFigures{
			OpeningStock:  rec.OpeningStock,
			IssuanceStock: rec.IssuanceStock,
			PhysicalStock: rec.PhysicalStock,
		}
		row.StockDifference = StockDifference(rec.PhysicalStock, total)
	}
	return nil
}

// StockDifference = stock físico - total vendido; faltante si el stock físico falta.
func StockDifference(physical decimal.NullDecimal, totalSold decimal.Decimal) decimal.NullDecimal {
	if !physical.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(physical.Decimal.Sub(totalSold))
}

// FilterSummaryRows descarta las filas cuyo Product ID contiene SummaryRowMarker.
func FilterSummaryRows(rows []entity.ReportRow) []entity.ReportRow {
	out := rows[:0]
	for _, r := range rows {
		if strings.Contains(r.ProductID, SummaryRowMarker) {
			continue
		}
		out = append(out, r)
	}
	return out
}
