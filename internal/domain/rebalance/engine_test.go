package rebalance_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ist-rebalancer/internal/domain"
	"github.com/jhoicas/ist-rebalancer/internal/domain/rebalance"
)

func TestRun_RegionalDeExtremoAExtremo(t *testing.T) {
	sheet := rebalance.Sheet{
		Header: []string{"Zone", "STORE_NAME", "DESIGN", "1st Rcv Date", "Shop Rcv Qty", "Disp. Qty", "O.H Qty", "Sold Qty"},
		Rows: [][]string{
			{"Z1", "StoreA", "D1", "2023-12-01", "100", "0", "20", "80"},
			{"Z1", "StoreB", "D1", "2024-01-01", "100", "0", "80", "20"},
			{"Z2", "StoreC", "D1", "2024-01-01", "100", "0", "90", "10"},
		},
	}

	res, err := rebalance.Run(sheet, rebalance.Regional, params())
	require.NoError(t, err)

	assert.Equal(t, "regional", res.Variant.Name)
	assert.Len(t, res.Rows, 3)
	assert.Equal(t, 3, res.Diagnostics.RowsRead)

	// Z2 vende 10 % (bajo el umbral de 40) y queda fuera.
	assert.Len(t, res.Eligible, 2)

	require.Len(t, res.Transfers, 1)
	edge := res.Transfers[0]
	assert.Equal(t, "Z1", edge.ScopeID)
	assert.Equal(t, "StoreB", edge.SendingUnitID)
	assert.Equal(t, "StoreA", edge.ReceivingUnitID)
	assert.Equal(t, int64(60), edge.Quantity.IntPart())

	for _, r := range res.Eligible {
		assert.True(t, r.TransferNeed.IsZero(), "necesidad de %s no compensada", r.StoreID)
	}
}

func TestRun_ErroresDeEntrada(t *testing.T) {
	t.Run("umbral fuera de rango", func(t *testing.T) {
		p := params()
		p.SellThroughThreshold = 120
		_, err := rebalance.Run(rebalance.Sheet{Header: networkHeader}, rebalance.Network, p)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("días negativos", func(t *testing.T) {
		p := params()
		p.DaysThreshold = -1
		_, err := rebalance.Run(rebalance.Sheet{Header: networkHeader}, rebalance.Network, p)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("esquema incompleto", func(t *testing.T) {
		_, err := rebalance.Run(rebalance.Sheet{Header: []string{"STORE_NAME"}}, rebalance.Network, params())
		assert.True(t, errors.Is(err, domain.ErrSchema))
	})

	t.Run("dataset vacío no es error", func(t *testing.T) {
		res, err := rebalance.Run(rebalance.Sheet{Header: networkHeader}, rebalance.Network, params())
		require.NoError(t, err)
		assert.Empty(t, res.Rows)
		assert.Empty(t, res.Transfers)
	})
}

func TestVariantByName(t *testing.T) {
	v, err := rebalance.VariantByName(" Regional ")
	require.NoError(t, err)
	assert.Equal(t, rebalance.Regional.Name, v.Name)

	_, err = rebalance.VariantByName("global")
	assert.True(t, errors.Is(err, domain.ErrUnknownVariant))
}
