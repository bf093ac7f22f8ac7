package dto

// CreateItemRequest entrada para crear un item. Stock es el stock inicial.
type CreateItemRequest struct {
	Code          string `json:"code" validate:"required,max=64"`
	Name          string `json:"name" validate:"required,max=200"`
	Category      string `json:"category" validate:"max=100"`
	PurchasePrice int64  `json:"purchase_price" validate:"gte=0"`
	SalePrice     int64  `json:"sale_price" validate:"gte=0"`
	Stock         int    `json:"stock" validate:"gte=0"`
}

// UpdateItemRequest entrada para actualizar un item (sin Stock: ver ReconcileStockRequest).
type UpdateItemRequest struct {
	Code          *string `json:"code" validate:"omitempty,min=1,max=64"`
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	Category      *string `json:"category" validate:"omitempty,max=100"`
	PurchasePrice *int64  `json:"purchase_price" validate:"omitempty,gte=0"`
	SalePrice     *int64  `json:"sale_price" validate:"omitempty,gte=0"`
}

// ReconcileStockRequest sobrescritura manual del stock (reconteo físico).
type ReconcileStockRequest struct {
	Stock  *int   `json:"stock" validate:"required,gte=0"`
	Reason string `json:"reason" validate:"max=500"`
}

// ItemResponse salida de un item.
type ItemResponse struct {
	ID            int64  `json:"id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	PurchasePrice int64  `json:"purchase_price"`
	SalePrice     int64  `json:"sale_price"`
	Stock         int    `json:"stock"`
}
