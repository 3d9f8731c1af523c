package rebalance

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ist-rebalancer/internal/domain/entity"
)

// MatchResult libro de traslados más la tabla elegible con las necesidades ya compensadas.
type MatchResult struct {
	Transfers []entity.TransferEdge
	Rows      []entity.AggregateRow
}

// needLedger necesidad restante (con signo) por unidad. Es el único estado mutable del emparejamiento.
type needLedger map[string]decimal.Decimal

// capacity cantidad que la unidad todavía puede entregar o recibir.
func (l needLedger) capacity(id string) decimal.Decimal {
	return l[id].Abs()
}

// settle acerca la necesidad a cero en qty unidades, sin cruzar el cero.
func (l needLedger) settle(id string, qty decimal.Decimal) {
	need := l[id]
	if need.IsPositive() {
		l[id] = need.Sub(qty)
	} else {
		l[id] = need.Add(qty)
	}
}

// Match empareja de forma voraz unidades con déficit y con excedente del mismo ítem y alcance.
// Trabaja sobre una copia de rows. No es óptimo: cada conductor toma los mejores candidatos
// (mayor sell-through de unidad, luego de padre) hasta cubrirse o agotarlos.
func Match(rows []entity.AggregateRow, v Variant) MatchResult {
	settled := slices.Clone(rows)

	ledger := make(needLedger, len(settled))
	var sending, receiving []int
	for i, r := range settled {
		ledger[r.UnitID()] = r.TransferNeed
		switch r.TransferNeed.Sign() {
		case -1:
			sending = append(sending, i)
		case 1:
			receiving = append(receiving, i)
		}
	}

	drivers, pool := receiving, sending
	if v.Driver == DriveSending {
		drivers, pool = sending, receiving
	}

	transfers := make([]entity.TransferEdge, 0)
	for _, d := range drivers {
		driver := settled[d]
		driverID := driver.UnitID()

		for _, c := range candidates(settled, pool, driver, v) {
			remaining := ledger.capacity(driverID)
			if !remaining.IsPositive() {
				break
			}
			candidate := settled[c]
			candidateID := candidate.UnitID()
			available := ledger.capacity(candidateID)
			if !available.IsPositive() {
				continue
			}

			qty := decimal.Min(remaining, available)
			ledger.settle(driverID, qty)
			ledger.settle(candidateID, qty)

			sender, receiver := candidate, driver
			if v.Driver == DriveSending {
				sender, receiver = driver, candidate
			}
			transfers = append(transfers, entity.TransferEdge{
				ScopeID:         v.ScopeID(driver),
				SellingItemID:   driver.ItemID,
				SendingUnitID:   sender.StoreID,
				ReceivingUnitID: receiver.StoreID,
				Quantity:        qty,
			})
		}
	}

	for i := range settled {
		settled[i].TransferNeed = ledger[settled[i].UnitID()]
	}
	return MatchResult{Transfers: transfers, Rows: settled}
}

// candidates índices del lado opuesto con el mismo ítem y alcance y otra tienda,
// ordenados por sell-through de unidad y de padre descendentes (estable por orden de fila).
func candidates(rows []entity.AggregateRow, pool []int, driver entity.AggregateRow, v Variant) []int {
	out := make([]int, 0, len(pool))
	for _, i := range pool {
		r := rows[i]
		if r.ItemID != driver.ItemID || r.StoreID == driver.StoreID || !v.SameScope(r, driver) {
			continue
		}
		out = append(out, i)
	}
	slices.SortStableFunc(out, func(a, b int) int {
		if c := rows[b].UnitSellThrough.Cmp(rows[a].UnitSellThrough); c != 0 {
			return c
		}
		return rows[b].ParentSellThrough.Cmp(rows[a].ParentSellThrough)
	})
	return out
}
