package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord representa una fila cruda del dataset de movimientos (tienda × diseño en un período),
// ya normalizada: cantidades numéricas y fecha de primera recepción parseada.
type InventoryRecord struct {
	ZoneID           string // solo en la variante regional
	StoreID          string
	ItemID           string // DESIGN o UPC según la variante
	FirstReceiveDate time.Time
	ReceivedQty      decimal.Decimal
	DispatchedQty    decimal.Decimal // devoluciones / averías
	OnHandQty        decimal.Decimal
	SoldQty          decimal.Decimal

	// AdjustedReceiveDate = max(FirstReceiveDate, lanzamiento de temporada). Se fija en la agregación.
	AdjustedReceiveDate time.Time
}
