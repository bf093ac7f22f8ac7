package dto

import "github.com/shopspring/decimal"

// CategoryValuationDTO valor del inventario de una categoría.
type CategoryValuationDTO struct {
	Category  string          `json:"category"`
	Items     int             `json:"items"`
	Units     int             `json:"units"`
	Value     decimal.Decimal `json:"value"`      // stock * precio de compra
	SaleValue decimal.Decimal `json:"sale_value"` // stock * precio de venta
}

// ValuationReportDTO valoración del inventario completo.
type ValuationReportDTO struct {
	Categories     []CategoryValuationDTO `json:"categories"`
	GrandTotal     decimal.Decimal        `json:"grand_total"`
	GrandSaleTotal decimal.Decimal        `json:"grand_sale_total"`
	PotentialGain  decimal.Decimal        `json:"potential_gain"`
}
