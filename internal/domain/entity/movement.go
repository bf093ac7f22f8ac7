package entity

import "time"

// MovementType tipo de movimiento de stock (enumeración cerrada).
type MovementType string

const (
	MovementTypeIn      MovementType = "in"      // entrada
	MovementTypeOut     MovementType = "out"     // salida
	MovementTypeDamaged MovementType = "damaged" // baja por daño
)

// Valid indica si el tipo pertenece a la enumeración.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeDamaged:
		return true
	}
	return false
}

// Movement un evento de stock ligado a un Item por su código.
type Movement struct {
	ID        int64
	ItemCode  string
	Quantity  int // siempre positiva; el signo lo da Type
	Type      MovementType
	Timestamp time.Time
	Note      string
	UnitPrice int64 // precio de compra (in) o de venta (out/damaged) al momento del movimiento
}

// MovementFilter rango opcional de fechas para listados. From y To son inclusivos.
type MovementFilter struct {
	From *time.Time
	To   *time.Time
}

// Match aplica el filtro a un instante.
func (f MovementFilter) Match(ts time.Time) bool {
	if f.From != nil && ts.Before(*f.From) {
		return false
	}
	if f.To != nil && ts.After(*f.To) {
		return false
	}
	return true
}

// MovementWithItem proyección desnormalizada para reportes (solo lectura).
type MovementWithItem struct {
	Movement
	ItemID            int64
	ItemName          string
	ItemCategory      string
	ItemPurchasePrice int64
	ItemSalePrice     int64
}
