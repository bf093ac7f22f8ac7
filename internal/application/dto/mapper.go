package dto

import "github.com/jhoicas/stock-ledger/internal/domain/entity"

// FromItem convierte la entidad a su salida HTTP.
func FromItem(i *entity.Item) ItemResponse {
	return ItemResponse{
		ID:            i.ID,
		Code:          i.Code,
		Name:          i.Name,
		Category:      i.Category,
		PurchasePrice: i.PurchasePrice,
		SalePrice:     i.SalePrice,
		Stock:         i.Stock,
	}
}

// FromItems convierte una lista de items.
func FromItems(list []*entity.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(list))
	for _, i := range list {
		out = append(out, FromItem(i))
	}
	return out
}

// FromMovement convierte un movimiento a su salida HTTP.
func FromMovement(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		ItemCode:  m.ItemCode,
		Quantity:  m.Quantity,
		Type:      string(m.Type),
		Timestamp: m.Timestamp,
		Note:      m.Note,
		UnitPrice: m.UnitPrice,
	}
}

// FromMovements convierte una lista de movimientos.
func FromMovements(list []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMovement(m))
	}
	return out
}

// FromMovementsWithItem convierte la proyección desnormalizada.
func FromMovementsWithItem(list []*entity.MovementWithItem) []MovementWithItemResponse {
	out := make([]MovementWithItemResponse, 0, len(list))
	for _, m := range list {
		out = append(out, MovementWithItemResponse{
			MovementResponse: FromMovement(&m.Movement),
			Item: ItemSummary{
				ID:            m.ItemID,
				Code:          m.ItemCode,
				Name:          m.ItemName,
				Category:      m.ItemCategory,
				PurchasePrice: m.ItemPurchasePrice,
				SalePrice:     m.ItemSalePrice,
			},
		})
	}
	return out
}
