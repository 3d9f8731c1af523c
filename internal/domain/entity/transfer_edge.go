package entity

import "github.com/shopspring/decimal"

// TransferEdge es un traslado propuesto entre dos tiendas para un mismo ítem.
// Solo lo crea el motor de emparejamiento; no se modifica después.
type TransferEdge struct {
	ScopeID         string // zona en la variante regional, vacío en las demás
	SellingItemID   string
	SendingUnitID   string // tienda que entrega
	ReceivingUnitID string // tienda que recibe
	Quantity        decimal.Decimal
}
