package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/daily-inventory/internal/domain/entity"
)

// ReportPreviewResponse respuesta de POST /api/report/preview.
type ReportPreviewResponse struct {
	Columns    []string       `json:"columns"`
	Channels   []string       `json:"channels"`
	WithLedger bool           `json:"with_ledger"`
	Total      int            `json:"total"`
	Rows       []ReportRowDTO `json:"rows"`
}

// ReportRowDTO fila pivotada. Los campos de stock solo aparecen con hoja de stock;
// un valor faltante se serializa como null.
type ReportRowDTO struct {
	ProductID         string                     `json:"product_id"`
	ProductName       string                     `json:"product_name"`
	Quantities        map[string]decimal.Decimal `json:"quantities"`
	TotalQuantitySold decimal.Decimal            `json:"total_quantity_sold"`
	OpeningStock      *decimal.NullDecimal       `json:"opening_stock,omitempty"`
	IssuanceStock     *decimal.NullDecimal       `json:"issuance_stock,omitempty"`
	PhysicalStock     *decimal.NullDecimal       `json:"physical_stock,omitempty"`
	StockDifference   *decimal.NullDecimal       `json:"stock_difference,omitempty"`
}

// NewReportPreviewResponse convierte el reporte de dominio en el cuerpo JSON.
func NewReportPreviewResponse(rep *entity.Report) ReportPreviewResponse {
	out := ReportPreviewResponse{
		Columns:    rep.Header(),
		WithLedger: rep.WithLedger,
		Total:      len(rep.Rows),
		Rows:       make([]ReportRowDTO, 0, len(rep.Rows)),
	}
	for _, c := range rep.Channels {
		out.Channels = append(out.Channels, c.String())
	}
	for _, r := range rep.Rows {
		row := ReportRowDTO{
			ProductID:         r.ProductID,
			ProductName:       r.ProductName,
			Quantities:        make(map[string]decimal.Decimal, len(rep.Channels)),
			TotalQuantitySold: r.TotalQuantitySold,
		}
		for _, c := range rep.Channels {
			row.Quantities[c.String()] = r.Quantity(c)
		}
		if rep.WithLedger {
			stock := entity.StockFigures{}
			if r.Stock != nil {
				stock = *r.Stock
			}
			diff := r.StockDifference
			row.OpeningStock = &stock.OpeningStock
			row.IssuanceStock = &stock.IssuanceStock
			row.PhysicalStock = &stock.PhysicalStock
			row.StockDifference = &diff
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}
