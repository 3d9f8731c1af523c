package rebalance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ist-rebalancer/internal/domain/entity"
	"github.com/jhoicas/ist-rebalancer/internal/domain/rebalance"
)

func allocRow(store, upc string, sold, unitST int64, status entity.Status) entity.AggregateRow {
	return entity.AggregateRow{
		StoreID:         store,
		ItemID:          upc,
		SoldQty:         decimal.NewFromInt(sold),
		UnitSellThrough: decimal.NewFromInt(unitST),
		Status:          status,
	}
}

func request(upc string, qty int64) entity.AllocationRequest {
	return entity.AllocationRequest{ItemID: upc, Quantity: decimal.NewFromInt(qty)}
}

func TestAllocate_RepartePorSellThrough(t *testing.T) {
	rows := []entity.AggregateRow{
		allocRow("S1", "U1", 10, 50, entity.StatusHigh),
		allocRow("S2", "U1", 8, 90, entity.StatusHigh),
		allocRow("S3", "U1", 30, 10, entity.StatusLow),
	}

	res := rebalance.Allocate(rows, []entity.AllocationRequest{request("U1", 12)})

	require.Len(t, res.Lines, 2)
	assert.Equal(t, "S2", res.Lines[0].StoreID)
	assert.True(t, res.Lines[0].Quantity.Equal(decimal.NewFromInt(8)), "tope: venta de la tienda")
	assert.Equal(t, "S1", res.Lines[1].StoreID)
	assert.True(t, res.Lines[1].Quantity.Equal(decimal.NewFromInt(4)))
	assert.Empty(t, res.Undistributed)
}

func TestAllocate_TopeAcumuladoEntreLineas(t *testing.T) {
	rows := []entity.AggregateRow{
		allocRow("S1", "U1", 10, 80, entity.StatusHigh),
	}

	res := rebalance.Allocate(rows, []entity.AllocationRequest{request("U1", 6), request("U1", 6)})

	require.Len(t, res.Lines, 1)
	assert.True(t, res.Lines[0].Quantity.Equal(decimal.NewFromInt(10)))
	require.Len(t, res.Undistributed, 1)
	assert.True(t, res.Undistributed[0].Quantity.Equal(decimal.NewFromInt(2)))
}

func TestAllocate_SinTiendasElegibles(t *testing.T) {
	rows := []entity.AggregateRow{
		allocRow("S1", "U1", -3, 80, entity.StatusHigh),
		allocRow("S2", "U2", 10, 80, entity.StatusHigh),
	}

	res := rebalance.Allocate(rows, []entity.AllocationRequest{request("U1", 5)})

	assert.Empty(t, res.Lines)
	require.Len(t, res.Undistributed, 1)
	assert.Equal(t, "U1", res.Undistributed[0].ItemID)
}
