package inventory

import (
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// Servicio de dominio puro: aritmética del libro de movimientos.
// in suma, out y damaged restan. Ninguna función toca persistencia.

// ValidateMovement exige cantidad positiva y un tipo conocido.
func ValidateMovement(quantity int, t entity.MovementType) error {
	if quantity <= 0 || !t.Valid() {
		return domain.ErrInvalidMovement
	}
	return nil
}

// Delta efecto con signo de un movimiento sobre el stock.
func Delta(t entity.MovementType, quantity int) int {
	if t == entity.MovementTypeIn {
		return quantity
	}
	return -quantity
}

// Apply aplica un movimiento nuevo. Falla con ErrInsufficientStock si el resultado es negativo.
func Apply(stock int, t entity.MovementType, quantity int) (int, error) {
	next := stock + Delta(t, quantity)
	if next < 0 {
		return stock, domain.ErrInsufficientStock
	}
	return next, nil
}

// Rebase deshace el efecto del movimiento anterior y aplica el nuevo sobre esa base.
// Nunca calcula diferencia de deltas: así un cambio de tipo in <-> out/damaged no invierte signos.
func Rebase(stock int, oldType entity.MovementType, oldQty int, newType entity.MovementType, newQty int) (int, error) {
	undone := stock - Delta(oldType, oldQty)
	next := undone + Delta(newType, newQty)
	if next < 0 {
		return stock, domain.ErrInsufficientStock
	}
	return next, nil
}

// Reverse quita el efecto de un movimiento eliminado. Un resultado negativo se rechaza.
func Reverse(stock int, t entity.MovementType, quantity int) (int, error) {
	next := stock - Delta(t, quantity)
	if next < 0 {
		return stock, domain.ErrInsufficientStock
	}
	return next, nil
}

// UnitPrice precio a congelar en el movimiento: compra para in, venta para out/damaged.
func UnitPrice(item *entity.Item, t entity.MovementType) int64 {
	if t == entity.MovementTypeIn {
		return item.PurchasePrice
	}
	return item.SalePrice
}

// LedgerStock stock derivado de una lista de movimientos.
func LedgerStock(movements []*entity.Movement) int {
	total := 0
	for _, m := range movements {
		total += Delta(m.Type, m.Quantity)
	}
	return total
}
