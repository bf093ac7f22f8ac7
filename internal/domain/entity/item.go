package entity

// Item representa un artículo del catálogo con su stock cacheado.
// Stock es el único contador autoritativo y solo lo modifica el libro de movimientos
// (o ReconcileStock, que lo sobrescribe de forma explícita).
type Item struct {
	ID            int64
	Code          string // clave de negocio, única; los movimientos la referencian
	Name          string
	Category      string
	PurchasePrice int64 // unidad monetaria mínima
	SalePrice     int64
	Stock         int
}
