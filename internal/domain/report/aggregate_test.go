package report_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/daily-inventory/internal/domain"
	"github.com/jhoicas/daily-inventory/internal/domain/entity"
	"github.com/jhoicas/daily-inventory/internal/domain/report"
)

func sale(id, name string, qty int64, c entity.Channel) entity.SalesRecord {
	return entity.SalesRecord{ProductID: id, ProductName: name, QuantitySold: decimal.NewFromInt(qty), Channel: c}
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func stock(id string, opening, issuance, physical string) entity.StockRecord {
	return entity.StockRecord{
		ProductID:     id,
		ProductName:   "ledger " + id,
		OpeningStock:  report.CoerceStockValue(opening),
		IssuanceStock: report.CoerceStockValue(issuance),
		PhysicalStock: report.CoerceStockValue(physical),
	}
}

func findRow(t *testing.T, rep *entity.Report, id string) entity.ReportRow {
	t.Helper()
	for _, r := range rep.Rows {
		if r.ProductID == id {
			return r
		}
	}
	require.FailNow(t, "fila no encontrada", id)
	return entity.ReportRow{}
}

func TestAggregate_PivoteDosCanales(t *testing.T) {
	records := []entity.SalesRecord{
		sale("P1", "Burger", 5, entity.ChannelFoodCourt),
		sale("P2", "Soda", 0, entity.ChannelFoodCourt),
		sale("P1", "Burger", 3, entity.ChannelRestaurant),
		sale("P2", "Soda", 7, entity.ChannelRestaurant),
	}
	rep, err := report.Aggregate(records, nil)
	require.NoError(t, err)

	assert.Equal(t, []entity.Channel{entity.ChannelFoodCourt, entity.ChannelRestaurant}, rep.Channels)
	assert.Equal(t,
		[]string{"Product ID", "Product Name", "Food Court", "Restaurant", "Total Quantity Sold"},
		rep.Header())
	require.Len(t, rep.Rows, 2)

	p1 := findRow(t, rep, "P1")
	assert.True(t, p1.TotalQuantitySold.Equal(dec(8)))
	p2 := findRow(t, rep, "P2")
	assert.True(t, p2.TotalQuantitySold.Equal(dec(7)))
	assert.True(t, p2.Quantity(entity.ChannelFoodCourt).IsZero())
}

func TestAggregate_RellenaCanalesAusentesConCero(t *testing.T) {
	records := []entity.SalesRecord{
		sale("A", "Only food court", 2, entity.ChannelFoodCourt),
		sale("B", "Only delivery", 4, entity.ChannelDelivery),
	}
	rep, err := report.Aggregate(records, nil)
	require.NoError(t, err)

	a := findRow(t, rep, "A")
	q, ok := a.Quantities[entity.ChannelDelivery]
	require.True(t, ok, "la columna de canal debe existir con cero")
	assert.True(t, q.IsZero())

	cells := rep.Cells(a)
	require.Len(t, cells, len(rep.Header()))
}

func TestAggregate_OrdenDeCanalesPorPrimeraAparicion(t *testing.T) {
	records := []entity.SalesRecord{
		sale("A", "x", 1, entity.ChannelDelivery),
		sale("A", "x", 1, entity.ChannelFoodCourt),
	}
	rep, err := report.Aggregate(records, nil)
	require.NoError(t, err)
	assert.Equal(t, []entity.Channel{entity.ChannelDelivery, entity.ChannelFoodCourt}, rep.Channels)
}

func TestAggregate_ClaveIncluyeNombre(t *testing.T) {
	records := []entity.SalesRecord{
		sale("P1", "Burger", 1, entity.ChannelFoodCourt),
		sale("P1", "Burger XL", 2, entity.ChannelFoodCourt),
	}
	rep, err := report.Aggregate(records, nil)
	require.NoError(t, err)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "Burger", rep.Rows[0].ProductName)
	assert.Equal(t, "Burger XL", rep.Rows[1].ProductName)
}

func TestAggregate_FiltraFilasTotalQty(t *testing.T) {
	records := []entity.SalesRecord{
		sale("P1", "Burger", 1, entity.ChannelFoodCourt),
		sale("12-Total Qty-Sum", "", 99, entity.ChannelFoodCourt),
		sale("Total Qty", "", 50, entity.ChannelRestaurant),
		sale("total qty", "minúsculas", 1, entity.ChannelRestaurant),
	}
	rep, err := report.Aggregate(records, nil)
	require.NoError(t, err)
	for _, r := range rep.Rows {
		assert.NotContains(t, r.ProductID, "Total Qty")
	}
	assert.Len(t, rep.Rows, 2, "el filtro distingue mayúsculas")
}

func TestAggregate_CanalDesconocido(t *testing.T) {
	_, err := report.Aggregate([]entity.SalesRecord{sale("P1", "x", 1, "Kiosk")}, nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestAggregate_ConLedger(t *testing.T) {
	records := []entity.SalesRecord{
		sale("P1", "Burger", 5, entity.ChannelFoodCourt),
		sale("P1", "Burger", 3, entity.ChannelRestaurant),
		sale("P2", "Soda", 7, entity.ChannelRestaurant),
		sale("P3", "Fries", 1, entity.ChannelFoodCourt),
	}
	ledger := &entity.Ledger{Records: []entity.StockRecord{
		stock("P1", "20", "5", "12"),
		stock("P2", "10", "0", "N/A"),
		stock("P9", "1", "1", "1"),
		stock("P1", "999", "999", "999"),
	}}
	rep, err := report.Aggregate(records, ledger)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Product ID", "Product Name", "Food Court", "Restaurant", "Delivery",
		"Opening Stock", "Issuance Stock", "Physical Stock", "Total Quantity Sold", "Stock Difference",
	}, rep.Header())
	require.Len(t, rep.Rows, 3, "left join: las filas del ledger sin venta se descartan")

	p1 := findRow(t, rep, "P1")
	require.NotNil(t, p1.Stock)
	assert.True(t, p1.Stock.OpeningStock.Decimal.Equal(dec(20)), "gana la primera aparición del ID")
	assert.True(t, p1.StockDifference.Valid)
	assert.True(t, p1.StockDifference.Decimal.Equal(dec(4)))
	d, ok := p1.Quantities[entity.ChannelDelivery]
	require.True(t, ok)
	assert.True(t, d.IsZero())

	p2 := findRow(t, rep, "P2")
	require.NotNil(t, p2.Stock)
	assert.False(t, p2.Stock.PhysicalStock.Valid)
	assert.False(t, p2.StockDifference.Valid, "stock físico faltante => diferencia faltante")

	p3 := findRow(t, rep, "P3")
	assert.Nil(t, p3.Stock)
	assert.False(t, p3.StockDifference.Valid, "sin coincidencia => faltante, no cero")

	cells := rep.Cells(p3)
	require.Len(t, cells, 10)
	assert.False(t, cells[5].(decimal.NullDecimal).Valid)
}

func TestAggregate_LedgerVacioSigueSiendoLedger(t *testing.T) {
	rep, err := report.Aggregate([]entity.SalesRecord{sale("P1", "x", 1, entity.ChannelDelivery)}, &entity.Ledger{})
	require.NoError(t, err)
	assert.True(t, rep.WithLedger)
	assert.Equal(t, entity.Channels(), rep.Channels)
}

func TestAggregate_JoinSoloPorProductID(t *testing.T) {
	records := []entity.SalesRecord{sale("P1", "Nombre en PDF", 2, entity.ChannelFoodCourt)}
	ledger := &entity.Ledger{Records: []entity.StockRecord{stock("P1", "1", "1", "10")}}
	rep, err := report.Aggregate(records, ledger)
	require.NoError(t, err)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "Nombre en PDF", rep.Rows[0].ProductName)
	assert.True(t, rep.Rows[0].StockDifference.Decimal.Equal(dec(8)))
}

func TestAggregate_Invariantes(t *testing.T) {
	var records []entity.SalesRecord
	for i := 0; i < 40; i++ {
		c := entity.Channels()[i%3]
		records = append(records, entity.SalesRecord{
			ProductID:    fmt.Sprintf("P%d", i%7),
			ProductName:  fmt.Sprintf("Producto %d", i%7),
			QuantitySold: decimal.RequireFromString(fmt.Sprintf("%d.1", i)),
			Channel:      c,
		})
	}
	ledger := &entity.Ledger{Records: []entity.StockRecord{stock("P1", "1", "2", "100.3"), stock("P4", "", "", "7")}}

	for _, l := range []*entity.Ledger{nil, ledger} {
		rep, err := report.Aggregate(records, l)
		require.NoError(t, err)
		for _, row := range rep.Rows {
			sum := decimal.Zero
			for _, c := range rep.Channels {
				sum = sum.Add(row.Quantity(c))
			}
			assert.True(t, sum.Equal(row.TotalQuantitySold), "total = suma por canal en %s", row.ProductID)
			if row.Stock != nil && row.Stock.PhysicalStock.Valid {
				assert.True(t, row.StockDifference.Decimal.Equal(row.Stock.PhysicalStock.Decimal.Sub(row.TotalQuantitySold)))
			}
		}
	}
}

func TestAggregate_Idempotente(t *testing.T) {
	records := []entity.SalesRecord{
		sale("B", "b", 1, entity.ChannelRestaurant),
		sale("A", "a", 2, entity.ChannelFoodCourt),
		sale("C", "c", 3, entity.ChannelDelivery),
		sale("A", "a", 4, entity.ChannelDelivery),
	}
	render := func() string {
		rep, err := report.Aggregate(records, nil)
		require.NoError(t, err)
		var sb strings.Builder
		sb.WriteString(strings.Join(rep.Header(), "|"))
		for _, r := range rep.Rows {
			sb.WriteString(fmt.Sprint(rep.Cells(r)...))
		}
		return sb.String()
	}
	assert.Equal(t, render(), render())
}
