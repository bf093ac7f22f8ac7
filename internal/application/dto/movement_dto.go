package dto

import "time"

// MovementRequest body para registrar o corregir un movimiento.
// La validación de cantidad y tipo la hace el libro (ErrInvalidMovement).
type MovementRequest struct {
	Quantity  int        `json:"quantity"`
	Type      string     `json:"type"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Note      *string    `json:"note,omitempty"`
}

// MovementQuery filtros de fecha para listados (RFC3339 o YYYY-MM-DD).
type MovementQuery struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID        int64     `json:"id"`
	ItemCode  string    `json:"item_code"`
	Quantity  int       `json:"quantity"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
	UnitPrice int64     `json:"unit_price"`
}

// MovementResult resultado de una escritura del libro: el movimiento afectado y el item con su stock nuevo.
type MovementResult struct {
	Movement MovementResponse `json:"movement"`
	Item     ItemResponse     `json:"item"`
}

// MovementWithItemResponse proyección movimiento + item para historial y exportación.
type MovementWithItemResponse struct {
	MovementResponse
	Item ItemSummary `json:"item"`
}

// ItemSummary campos descriptivos del item en la proyección.
type ItemSummary struct {
	ID            int64  `json:"id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	PurchasePrice int64  `json:"purchase_price"`
	SalePrice     int64  `json:"sale_price"`
}

// StockAuditEntry comparación entre stock cacheado y stock derivado del libro.
type StockAuditEntry struct {
	ItemID      int64  `json:"item_id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Stock       int    `json:"stock"`
	LedgerStock int    `json:"ledger_stock"`
	Drift       int    `json:"drift"` // Stock - LedgerStock
	Movements   int    `json:"movements"`
}

// StockAuditReport resultado de la auditoría completa.
type StockAuditReport struct {
	CheckedAt  time.Time         `json:"checked_at"`
	Items      int               `json:"items"`
	Consistent bool              `json:"consistent"`
	Drifted    []StockAuditEntry `json:"drifted"`
}
