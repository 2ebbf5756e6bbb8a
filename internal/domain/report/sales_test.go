package report_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/daily-inventory/internal/domain"
	"github.com/jhoicas/daily-inventory/internal/domain/entity"
	"github.com/jhoicas/daily-inventory/internal/domain/report"
)

var header = []string{"Product ID", "Product Name", "Quantity Sold"}

func TestExtractSales_DescartaCabeceraYConservaOrden(t *testing.T) {
	tables := []entity.Table{
		{Page: 1, Rows: [][]string{header, {"P1", "Burger", "5"}, {"P2", "Fries", "2"}}},
		{Page: 2, Rows: [][]string{header, {"P3", "Soda", "1"}}},
	}
	recs, err := report.ExtractSales(tables, entity.ChannelFoodCourt, report.ProductNameRaw)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"P1", "P2", "P3"}, []string{recs[0].ProductID, recs[1].ProductID, recs[2].ProductID})
	for _, r := range recs {
		assert.Equal(t, entity.ChannelFoodCourt, r.Channel)
	}
	assert.True(t, recs[0].QuantitySold.Equal(decimal.NewFromInt(5)))
}

func TestExtractSales_PaginaSinTablaNoAporta(t *testing.T) {
	tables := []entity.Table{
		{Page: 1},
		{Page: 2, Rows: [][]string{header}},
	}
	recs, err := report.ExtractSales(tables, entity.ChannelDelivery, report.ProductNameRaw)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestExtractSales_CantidadNA_EsCero(t *testing.T) {
	tables := []entity.Table{{Page: 1, Rows: [][]string{header, {"P1", "Burger", "N/A"}}}}
	recs, err := report.ExtractSales(tables, entity.ChannelRestaurant, report.ProductNameRaw)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].QuantitySold.IsZero())
}

func TestExtractSales_PoliticaDeNombre(t *testing.T) {
	tables := []entity.Table{{Page: 1, Rows: [][]string{header, {"", "", "3"}, {"P9", " ", "1"}}}}

	raw, err := report.ExtractSales(tables, entity.ChannelDelivery, report.ProductNameRaw)
	require.NoError(t, err)
	assert.Equal(t, "", raw[0].ProductName)
	assert.Equal(t, "", raw[0].ProductID, "el ID vacío se conserva tal cual")
	assert.Equal(t, " ", raw[1].ProductName)

	ph, err := report.ExtractSales(tables, entity.ChannelDelivery, report.ProductNamePlaceholder)
	require.NoError(t, err)
	assert.Equal(t, report.UnknownProductName, ph[0].ProductName)
	assert.Equal(t, report.UnknownProductName, ph[1].ProductName)
}

func TestExtractSales_FilaCorta_RowError(t *testing.T) {
	tables := []entity.Table{{Page: 4, Rows: [][]string{header, {"P1", "Burger", "1"}, {"P2", "Fries"}}}}
	_, err := report.ExtractSales(tables, entity.ChannelFoodCourt, report.ProductNameRaw)
	require.Error(t, err)

	var rowErr *domain.RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 4, rowErr.Page)
	assert.Equal(t, 2, rowErr.Row)
	assert.Equal(t, 2, rowErr.Columns)
	assert.Equal(t, "Food Court", rowErr.Channel)
}
