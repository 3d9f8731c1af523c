package rebalance

import (
	"math"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ist-rebalancer/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// ratio num/den con la regla de normalización única del motor: denominador cero → 0.
// decimal no tiene NaN ni infinitos, así que este es el único caso a normalizar.
func ratio(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}

// sellThrough sold / net × 100 redondeado al entero. negatives cuenta las recepciones netas
// negativas (puede ser nil para los agregados de padre).
func sellThrough(sold, net decimal.Decimal, policy NegativeNetPolicy, negatives *int) decimal.Decimal {
	if net.IsNegative() {
		if negatives != nil {
			*negatives++
		}
		if policy == NegativeNetZero {
			return decimal.Zero
		}
	}
	return ratio(sold, net).Mul(hundred).Round(0)
}

// Aggregate ajusta fechas, agrupa por la clave de unidad y calcula todas las métricas:
// sell-through de unidad y de padre, estado, edad, cobertura deseada y necesidad de traslado.
func Aggregate(records []entity.InventoryRecord, v Variant, p Params) ([]entity.AggregateRow, Diagnostics) {
	launch := p.launchDate()

	rows := make([]entity.AggregateRow, 0, len(records))
	index := make(map[string]int, len(records))
	for _, rec := range records {
		// 1. Fecha ajustada: las recepciones previas al lanzamiento cuentan desde el lanzamiento.
		adjusted := rec.FirstReceiveDate
		if !adjusted.After(launch) {
			adjusted = launch
		}
		r := entity.AggregateRow{
			ZoneID:              rec.ZoneID,
			StoreID:             rec.StoreID,
			ItemID:              rec.ItemID,
			AdjustedReceiveDate: adjusted,
		}
		if !v.UsesZone() {
			r.ZoneID = ""
		}

		// 2. Suma por clave de unidad.
		id := v.unitID(r)
		i, ok := index[id]
		if !ok {
			i = len(rows)
			index[id] = i
			rows = append(rows, r)
		}
		agg := &rows[i]
		if adjusted.Before(agg.AdjustedReceiveDate) {
			agg.AdjustedReceiveDate = adjusted
		}
		agg.ReceivedQty = agg.ReceivedQty.Add(rec.ReceivedQty)
		agg.DispatchedQty = agg.DispatchedQty.Add(rec.DispatchedQty)
		agg.OnHandQty = agg.OnHandQty.Add(rec.OnHandQty)
		agg.SoldQty = agg.SoldQty.Add(rec.SoldQty)
	}

	slices.SortStableFunc(rows, v.compareUnits)

	diag := computeMetrics(rows, v, p)
	return rows, diag
}

// Recompute recalcula las métricas de una tabla ya agregada con los mismos parámetros.
// No acumula: el resultado coincide con la corrida original.
func Recompute(rows []entity.AggregateRow, v Variant, p Params) ([]entity.AggregateRow, Diagnostics) {
	records := make([]entity.InventoryRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.Record())
	}
	return Aggregate(records, v, p)
}

type parentTotals struct {
	sold, net, onHand decimal.Decimal
	maxAge            int
	seen              bool
}

func computeMetrics(rows []entity.AggregateRow, v Variant, p Params) Diagnostics {
	var diag Diagnostics
	policy := p.negativeNet()
	now := p.now()

	parents := make(map[string]*parentTotals)
	for i := range rows {
		r := &rows[i]

		// 3. Sell-through de la unidad.
		r.NetReceiving = r.ReceivedQty.Sub(r.DispatchedQty)
		r.UnitSellThrough = sellThrough(r.SoldQty, r.NetReceiving, policy, &diag.NegativeNetReceiving)

		// 6. Edad en días completos, sin tope.
		r.AgeDays = ageDays(now, r.AdjustedReceiveDate)

		pid := v.ParentID(*r)
		t, ok := parents[pid]
		if !ok {
			t = &parentTotals{}
			parents[pid] = t
		}
		t.sold = t.sold.Add(r.SoldQty)
		t.net = t.net.Add(r.NetReceiving)
		t.onHand = t.onHand.Add(r.OnHandQty)
		if !t.seen || r.AgeDays > t.maxAge {
			t.maxAge = r.AgeDays
		}
		t.seen = true
	}

	for i := range rows {
		r := &rows[i]
		t := parents[v.ParentID(*r)]

		// 4. Sell-through del padre.
		r.ParentSellThrough = sellThrough(t.sold, t.net, policy, nil)

		// 5. Estado.
		r.Status = classify(*r, v, p)

		// 7. Cobertura deseada del grupo: stock total / venta diaria del grupo.
		r.DateDifference = t.maxAge
		velocity := ratio(t.sold, decimal.NewFromInt(int64(t.maxAge)))
		r.DesiredCover = ratio(t.onHand, velocity).Truncate(0)

		// 8. Necesidad de traslado: + pide stock, - tiene excedente.
		r.TransferNeed = transferNeed(*r)
	}
	return diag
}

func transferNeed(r entity.AggregateRow) decimal.Decimal {
	if r.AgeDays == 0 {
		return decimal.Zero
	}
	velocity := ratio(r.SoldQty, decimal.NewFromInt(int64(r.AgeDays)))
	return r.DesiredCover.Mul(velocity).Sub(r.OnHandQty).Truncate(0)
}

func ageDays(now, since time.Time) int {
	return int(math.Floor(now.Sub(since).Hours() / 24))
}
