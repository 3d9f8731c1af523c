package rebalance_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ist-rebalancer/internal/domain/entity"
	"github.com/jhoicas/ist-rebalancer/internal/domain/rebalance"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// unit construye una fila ya clasificada con necesidad y sell-through dados.
func unit(zone, store, item string, need, unitST, parentST int64) entity.AggregateRow {
	return entity.AggregateRow{
		ZoneID:              zone,
		StoreID:             store,
		ItemID:              item,
		AdjustedReceiveDate: testDate,
		UnitSellThrough:     decimal.NewFromInt(unitST),
		ParentSellThrough:   decimal.NewFromInt(parentST),
		TransferNeed:        decimal.NewFromInt(need),
	}
}

func needOf(t *testing.T, rows []entity.AggregateRow, store string) int64 {
	t.Helper()
	for _, r := range rows {
		if r.StoreID == store {
			return r.TransferNeed.IntPart()
		}
	}
	t.Fatalf("tienda %s no encontrada", store)
	return 0
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios base
// ──────────────────────────────────────────────────────────────────────────────

// Escenario A: Store1 con excedente -50, Store2 con déficit +30 → un traslado de 30.
func TestMatch_ExcedenteCubreDeficit(t *testing.T) {
	rows := []entity.AggregateRow{
		unit("", "Store1", "D1", -50, 10, 40),
		unit("", "Store2", "D1", 30, 70, 40),
	}

	res := rebalance.Match(rows, rebalance.Network)

	require.Len(t, res.Transfers, 1)
	edge := res.Transfers[0]
	assert.Equal(t, "D1", edge.SellingItemID)
	assert.Equal(t, "Store1", edge.SendingUnitID)
	assert.Equal(t, "Store2", edge.ReceivingUnitID)
	assert.True(t, edge.Quantity.Equal(decimal.NewFromInt(30)))

	assert.Equal(t, int64(-20), needOf(t, res.Rows, "Store1"))
	assert.Equal(t, int64(0), needOf(t, res.Rows, "Store2"))

	// La entrada no se modifica.
	assert.Equal(t, int64(-50), rows[0].TransferNeed.IntPart())
}

// Escenario C: el conductor no tiene origen del mismo ítem en su zona → sin traslados.
func TestMatch_RegionalSinCandidatoEnZona(t *testing.T) {
	rows := []entity.AggregateRow{
		unit("Z1", "Store1", "D1", 25, 80, 50),
		unit("Z2", "Store2", "D1", -40, 10, 50),
		unit("Z1", "Store3", "D2", -40, 10, 50),
	}

	res := rebalance.Match(rows, rebalance.Regional)

	assert.Empty(t, res.Transfers)
	assert.Equal(t, int64(25), needOf(t, res.Rows, "Store1"))
	assert.Equal(t, int64(-40), needOf(t, res.Rows, "Store2"))
}

func TestMatch_RegionalConfinadoALaZona(t *testing.T) {
	rows := []entity.AggregateRow{
		unit("Z1", "Store1", "D1", 25, 80, 50),
		unit("Z2", "Store2", "D1", -40, 10, 50),
		unit("Z1", "Store3", "D1", -10, 20, 50),
	}

	res := rebalance.Match(rows, rebalance.Regional)

	require.Len(t, res.Transfers, 1)
	assert.Equal(t, "Store3", res.Transfers[0].SendingUnitID)
	assert.Equal(t, "Z1", res.Transfers[0].ScopeID)
	assert.True(t, res.Transfers[0].Quantity.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, int64(15), needOf(t, res.Rows, "Store1"))
}

func TestMatch_NuncaTrasladaALaMismaTienda(t *testing.T) {
	a := unit("", "Store1", "D1", 10, 60, 40)
	b := unit("", "Store1", "D1", -10, 20, 40)
	b.AdjustedReceiveDate = testDate.AddDate(0, 0, 7)

	res := rebalance.Match([]entity.AggregateRow{a, b}, rebalance.Network)

	assert.Empty(t, res.Transfers)
}

// Los mejores destinos/orígenes por sell-through se atienden primero.
func TestMatch_OrdenaCandidatosPorSellThrough(t *testing.T) {
	rows := []entity.AggregateRow{
		unit("", "Driver", "D1", 30, 90, 50),
		unit("", "Slow", "D1", -20, 10, 50),
		unit("", "Fast", "D1", -20, 45, 50),
	}

	res := rebalance.Match(rows, rebalance.Network)

	require.Len(t, res.Transfers, 2)
	assert.Equal(t, "Fast", res.Transfers[0].SendingUnitID)
	assert.True(t, res.Transfers[0].Quantity.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, "Slow", res.Transfers[1].SendingUnitID)
	assert.True(t, res.Transfers[1].Quantity.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, int64(-10), needOf(t, res.Rows, "Slow"))
}

// En surtido conducen las tiendas con excedente.
func TestMatch_SurtidoConducidoPorExcedente(t *testing.T) {
	rows := []entity.AggregateRow{
		unit("", "S1", "U1", -30, 5, 50),
		unit("", "S2", "U1", 10, 40, 50),
		unit("", "S3", "U1", 50, 90, 50),
	}

	res := rebalance.Match(rows, rebalance.Assortment)

	require.Len(t, res.Transfers, 1)
	assert.Equal(t, "S1", res.Transfers[0].SendingUnitID)
	assert.Equal(t, "S3", res.Transfers[0].ReceivingUnitID)
	assert.True(t, res.Transfers[0].Quantity.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, int64(20), needOf(t, res.Rows, "S3"))
	assert.Equal(t, int64(10), needOf(t, res.Rows, "S2"))
}

// Conservación: lo enviado/recibido por unidad nunca supera su necesidad original,
// todo traslado es positivo y entre tiendas distintas del mismo ítem.
func TestMatch_Conservacion(t *testing.T) {
	rows := []entity.AggregateRow{
		unit("", "A", "D1", 40, 90, 50),
		unit("", "B", "D1", -15, 20, 50),
		unit("", "C", "D1", 12, 70, 50),
		unit("", "D", "D1", -30, 35, 50),
		unit("", "E", "D2", -8, 10, 30),
		unit("", "F", "D2", 20, 60, 30),
		unit("", "G", "D2", 3, 55, 30),
		unit("", "H", "D1", 0, 50, 50),
	}
	original := make(map[string]decimal.Decimal)
	for _, r := range rows {
		original[r.StoreID+"|"+r.ItemID] = r.TransferNeed.Abs()
	}

	res := rebalance.Match(rows, rebalance.Network)
	require.NotEmpty(t, res.Transfers)

	sent := make(map[string]decimal.Decimal)
	received := make(map[string]decimal.Decimal)
	for _, e := range res.Transfers {
		assert.True(t, e.Quantity.IsPositive())
		assert.NotEqual(t, e.SendingUnitID, e.ReceivingUnitID)
		sk := e.SendingUnitID + "|" + e.SellingItemID
		rk := e.ReceivingUnitID + "|" + e.SellingItemID
		sent[sk] = sent[sk].Add(e.Quantity)
		received[rk] = received[rk].Add(e.Quantity)
	}
	for k, q := range sent {
		assert.True(t, q.LessThanOrEqual(original[k]), "envío de %s excede su excedente", k)
	}
	for k, q := range received {
		assert.True(t, q.LessThanOrEqual(original[k]), "recepción de %s excede su déficit", k)
	}
	// La necesidad se acerca a cero sin cruzarlo.
	for i, r := range res.Rows {
		assert.True(t, r.TransferNeed.Sign()*rows[i].TransferNeed.Sign() >= 0, "necesidad de %s cambió de signo", r.StoreID)
		assert.True(t, r.TransferNeed.Abs().LessThanOrEqual(rows[i].TransferNeed.Abs()))
	}
	assert.Equal(t, int64(0), needOf(t, res.Rows, "H"))
}
