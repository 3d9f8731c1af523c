package entity

import "github.com/shopspring/decimal"

// AllocationRequest cantidad de bodega disponible para repartir de un UPC.
type AllocationRequest struct {
	ItemID   string
	Quantity decimal.Decimal
}

// AllocationLine cantidad de bodega asignada a una tienda para un UPC.
type AllocationLine struct {
	StoreID  string
	ItemID   string
	Quantity decimal.Decimal
}
