package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status clasifica una unidad frente al sell-through de su grupo padre.
type Status string

const (
	StatusHigh Status = "High"
	StatusLow  Status = "Low"
)

// AggregateRow es la fila agregada por unidad de venta (tienda+fecha+ítem, con zona en regional)
// con todas las métricas derivadas. Pertenece a una sola corrida.
type AggregateRow struct {
	ZoneID              string
	StoreID             string
	ItemID              string
	AdjustedReceiveDate time.Time

	ReceivedQty   decimal.Decimal
	DispatchedQty decimal.Decimal
	OnHandQty     decimal.Decimal
	SoldQty       decimal.Decimal

	NetReceiving      decimal.Decimal // ReceivedQty - DispatchedQty
	UnitSellThrough   decimal.Decimal // % entero
	ParentSellThrough decimal.Decimal // % entero del grupo padre
	AgeDays           int
	DateDifference    int // max(AgeDays) del grupo padre
	Status            Status
	DesiredCover      decimal.Decimal // días de cobertura del grupo padre
	TransferNeed      decimal.Decimal // + necesita stock, - tiene excedente
}

// UnitID identifica la unidad dentro de la corrida (clave de agrupación completa).
func (r AggregateRow) UnitID() string {
	return strings.Join([]string{r.ZoneID, r.StoreID, r.AdjustedReceiveDate.Format("2006-01-02"), r.ItemID}, "|")
}

// Record reconstruye el registro base a partir de la fila agregada (usado para recalcular métricas).
func (r AggregateRow) Record() InventoryRecord {
	return InventoryRecord{
		ZoneID:              r.ZoneID,
		StoreID:             r.StoreID,
		ItemID:              r.ItemID,
		FirstReceiveDate:    r.AdjustedReceiveDate,
		AdjustedReceiveDate: r.AdjustedReceiveDate,
		ReceivedQty:         r.ReceivedQty,
		DispatchedQty:       r.DispatchedQty,
		OnHandQty:           r.OnHandQty,
		SoldQty:             r.SoldQty,
	}
}
