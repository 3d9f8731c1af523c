package rebalance

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ist-rebalancer/internal/domain/entity"
)

// classify High si el sell-through de la unidad supera estrictamente la referencia; empate → Low.
func classify(r entity.AggregateRow, v Variant, p Params) entity.Status {
	ref := r.ParentSellThrough
	if v.StatusRule == CompareThreshold {
		ref = decimal.NewFromInt(int64(p.SellThroughThreshold))
	}
	if r.UnitSellThrough.GreaterThan(ref) {
		return entity.StatusHigh
	}
	return entity.StatusLow
}

// Classify recalcula el estado de cada fila (copia; no modifica la entrada).
func Classify(rows []entity.AggregateRow, v Variant, p Params) []entity.AggregateRow {
	out := make([]entity.AggregateRow, len(rows))
	for i, r := range rows {
		r.Status = classify(r, v, p)
		out[i] = r
	}
	return out
}

// Eligible compuerta de rebalanceo: conserva solo las unidades cuyo padre vende por encima del
// umbral y cuya edad supera el mínimo. Las demás conservan su necesidad pero no participan.
func Eligible(rows []entity.AggregateRow, p Params) []entity.AggregateRow {
	threshold := decimal.NewFromInt(int64(p.SellThroughThreshold))
	out := make([]entity.AggregateRow, 0, len(rows))
	for _, r := range rows {
		if r.ParentSellThrough.GreaterThan(threshold) && r.AgeDays > p.DaysThreshold {
			out = append(out, r)
		}
	}
	return out
}
