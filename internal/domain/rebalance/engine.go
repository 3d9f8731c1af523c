// Package rebalance implementa el motor de traslados entre tiendas (IST):
//
//	Sheet ─► Normalize ─► Aggregate ─► Eligible ─► Match ─► libro de traslados
//
// Las tres variantes (network, regional, assortment) comparten el mismo código; solo cambian
// las claves de agrupación, el alcance de los traslados y la dirección del barrido (ver Variant).
// Todas las funciones son puras: cada corrida trabaja sobre sus propias tablas.
package rebalance

import (
	"github.com/jhoicas/ist-rebalancer/internal/domain/entity"
)

// Result salida completa de una corrida.
type Result struct {
	Variant     Variant
	Rows        []entity.AggregateRow // tabla completa con métricas
	Eligible    []entity.AggregateRow // filtrada y con necesidades compensadas tras el emparejamiento
	Transfers   []entity.TransferEdge
	Diagnostics Diagnostics
}

// Run ejecuta el pipeline completo sobre un dataset crudo.
func Run(sheet Sheet, v Variant, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	records, diag, err := Normalize(sheet, v, p)
	if err != nil {
		return nil, err
	}
	return RunRecords(records, v, p, diag)
}

// RunRecords ejecuta el pipeline desde registros ya normalizados.
func RunRecords(records []entity.InventoryRecord, v Variant, p Params, diag Diagnostics) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	rows, aggDiag := Aggregate(records, v, p)
	diag.add(aggDiag)

	matched := Match(Eligible(rows, p), v)

	return &Result{
		Variant:     v,
		Rows:        rows,
		Eligible:    matched.Rows,
		Transfers:   matched.Transfers,
		Diagnostics: diag,
	}, nil
}
