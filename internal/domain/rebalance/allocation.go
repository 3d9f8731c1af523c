package rebalance

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ist-rebalancer/internal/domain/entity"
)

// AllocationResult reparto de stock de bodega entre tiendas High.
type AllocationResult struct {
	Lines         []entity.AllocationLine
	Undistributed []entity.AllocationRequest // lo que no encontró tienda elegible
}

// Allocate reparte cada línea de bodega entre las tiendas High del mismo UPC, de mejor a peor
// sell-through. Cada tienda recibe como máximo su venta acumulada entre todas las líneas;
// venta negativa no recibe nada.
func Allocate(rows []entity.AggregateRow, requests []entity.AllocationRequest) AllocationResult {
	high := make([]int, 0, len(rows))
	for i, r := range rows {
		if r.Status == entity.StatusHigh {
			high = append(high, i)
		}
	}
	slices.SortStableFunc(high, func(a, b int) int {
		if c := rows[b].UnitSellThrough.Cmp(rows[a].UnitSellThrough); c != 0 {
			return c
		}
		return rows[b].ParentSellThrough.Cmp(rows[a].ParentSellThrough)
	})

	allocated := make(map[int]decimal.Decimal, len(high))
	var order []int
	var undistributed []entity.AllocationRequest

	for _, req := range requests {
		left := req.Quantity
		for _, i := range high {
			if !left.IsPositive() {
				break
			}
			r := rows[i]
			if r.ItemID != req.ItemID || r.SoldQty.IsNegative() {
				continue
			}
			current, seen := allocated[i]
			add := decimal.Min(r.SoldQty, left, r.SoldQty.Sub(current))
			if !add.IsPositive() {
				continue
			}
			if !seen {
				order = append(order, i)
			}
			allocated[i] = current.Add(add)
			left = left.Sub(add)
		}
		if left.IsPositive() {
			undistributed = append(undistributed, entity.AllocationRequest{ItemID: req.ItemID, Quantity: left})
		}
	}

	lines := make([]entity.AllocationLine, 0, len(order))
	for _, i := range order {
		lines = append(lines, entity.AllocationLine{
			StoreID:  rows[i].StoreID,
			ItemID:   rows[i].ItemID,
			Quantity: allocated[i],
		})
	}
	return AllocationResult{Lines: lines, Undistributed: undistributed}
}
