package rebalance

import (
	"time"

	"github.com/jhoicas/ist-rebalancer/internal/domain"
)

// NegativeNetPolicy qué hacer con el sell-through cuando la recepción neta es negativa.
type NegativeNetPolicy string

const (
	// NegativeNetZero trata la recepción neta negativa como sin recepción (sell-through 0).
	NegativeNetZero NegativeNetPolicy = "zero"
	// NegativeNetPassThrough conserva el ratio negativo finito (comportamiento histórico de las planillas).
	NegativeNetPassThrough NegativeNetPolicy = "passthrough"
)

// Params parámetros de una corrida.
type Params struct {
	SeasonLaunchDate     time.Time
	SellThroughThreshold int // 0-100
	DaysThreshold        int // edad mínima en días
	Now                  time.Time
	NegativeNet          NegativeNetPolicy
}

// Validate verifica rangos; fuera de rango → domain.ErrInvalidInput.
func (p Params) Validate() error {
	if p.SellThroughThreshold < 0 || p.SellThroughThreshold > 100 {
		return domain.ErrInvalidInput
	}
	if p.DaysThreshold < 0 {
		return domain.ErrInvalidInput
	}
	switch p.NegativeNet {
	case "", NegativeNetZero, NegativeNetPassThrough:
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

func (p Params) now() time.Time {
	if p.Now.IsZero() {
		return time.Now()
	}
	return p.Now
}

func (p Params) launchDate() time.Time {
	y, m, d := p.SeasonLaunchDate.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (p Params) negativeNet() NegativeNetPolicy {
	if p.NegativeNet == "" {
		return NegativeNetZero
	}
	return p.NegativeNet
}

// Diagnostics contadores de condiciones recuperadas localmente. Nunca se elevan como error.
type Diagnostics struct {
	RowsRead             int `json:"rows_read"`
	DroppedRows          int `json:"dropped_rows"`          // fecha ilegible
	CoercedCells         int `json:"coerced_cells"`         // celdas no numéricas llevadas a cero
	NegativeNetReceiving int `json:"negative_net_receiving"` // unidades con recepción neta negativa
}

func (d *Diagnostics) add(o Diagnostics) {
	d.RowsRead += o.RowsRead
	d.DroppedRows += o.DroppedRows
	d.CoercedCells += o.CoercedCells
	d.NegativeNetReceiving += o.NegativeNetReceiving
}
