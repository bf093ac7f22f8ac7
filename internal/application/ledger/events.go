package ledger

import "time"

// Tipos de evento emitidos tras cada escritura confirmada.
const (
	EventMovementRecorded  = "movement.recorded"
	EventMovementCorrected = "movement.corrected"
	EventMovementReversed  = "movement.reversed"
)

// MovementEvent cuerpo de los eventos del libro.
type MovementEvent struct {
	EventType   string    `json:"event_type"`
	OperationID string    `json:"operation_id"`
	ItemID      int64     `json:"item_id"`
	ItemCode    string    `json:"item_code"`
	MovementID  int64     `json:"movement_id"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	StockBefore int       `json:"stock_before"`
	StockAfter  int       `json:"stock_after"`
	OccurredAt  time.Time `json:"occurred_at"`
}
