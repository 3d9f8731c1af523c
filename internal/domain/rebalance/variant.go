package rebalance

import (
	"strings"

	"github.com/jhoicas/ist-rebalancer/internal/domain"
	"github.com/jhoicas/ist-rebalancer/internal/domain/entity"
)

// Field identifica una columna lógica del dataset de movimientos.
type Field string

const (
	FieldZone        Field = "zone_id"
	FieldStore       Field = "store_id"
	FieldItem        Field = "item_id"
	FieldReceiveDate Field = "first_receive_date"
	FieldReceived    Field = "received_qty"
	FieldDispatched  Field = "dispatched_qty"
	FieldOnHand      Field = "on_hand_qty"
	FieldSold        Field = "sold_qty"
)

// Side lado de la partición que conduce el barrido del emparejamiento.
type Side int

const (
	DriveReceiving Side = iota // las tiendas con déficit buscan origen
	DriveSending               // las tiendas con excedente buscan destino
)

// StatusRule regla para marcar una unidad como High o Low.
type StatusRule int

const (
	CompareParent    StatusRule = iota // sell-through unidad > sell-through padre
	CompareThreshold                   // sell-through unidad > umbral del llamador
)

// Variant parametriza el motor: jerarquía de agrupación, alcance de los traslados,
// dirección del barrido y columnas esperadas. Las tres variantes comparten el mismo código.
type Variant struct {
	Name       string
	ItemColumn string // nombre de la columna de ítem en las tablas de salida

	UnitKeys   []Field // clave de la unidad; también define el orden de la tabla agregada
	ParentKeys []Field // grupo padre para sell-through y cobertura
	ScopeKeys  []Field // los traslados no pueden cruzar este alcance

	Driver     Side
	StatusRule StatusRule

	Required    []Field
	Optional    []Field
	ItemAliases []string
}

var baseAliases = map[Field][]string{
	FieldZone:        {"zone", "zone_id"},
	FieldStore:       {"store_name", "store_id", "store"},
	FieldReceiveDate: {"1st rcv date", "first_receive_date"},
	FieldReceived:    {"shop rcv qty", "received_qty"},
	FieldDispatched:  {"disp. qty", "dispatched_qty"},
	FieldOnHand:      {"o.h qty", "on_hand_qty"},
	FieldSold:        {"sold qty", "sold_qty"},
}

// Network traslados entre cualquier par de tiendas para el mismo diseño.
var Network = Variant{
	Name:        "network",
	ItemColumn:  "design_id",
	UnitKeys:    []Field{FieldItem, FieldStore, FieldReceiveDate},
	ParentKeys:  []Field{FieldItem},
	Driver:      DriveReceiving,
	StatusRule:  CompareParent,
	Required:    []Field{FieldStore, FieldItem, FieldReceiveDate, FieldReceived, FieldDispatched, FieldOnHand, FieldSold},
	ItemAliases: []string{"design", "design_id"},
}

// Regional traslados solo entre tiendas de la misma zona.
var Regional = Variant{
	Name:        "regional",
	ItemColumn:  "design_id",
	UnitKeys:    []Field{FieldZone, FieldStore, FieldReceiveDate, FieldItem},
	ParentKeys:  []Field{FieldZone, FieldItem},
	ScopeKeys:   []Field{FieldZone},
	Driver:      DriveReceiving,
	StatusRule:  CompareParent,
	Required:    []Field{FieldZone, FieldStore, FieldItem, FieldReceiveDate, FieldReceived, FieldDispatched, FieldOnHand, FieldSold},
	ItemAliases: []string{"design", "design_id"},
}

// Assortment tienda+UPC, estado contra umbral y barrido conducido por las tiendas con excedente.
var Assortment = Variant{
	Name:        "assortment",
	ItemColumn:  "upc",
	UnitKeys:    []Field{FieldStore, FieldItem},
	ParentKeys:  []Field{FieldItem},
	Driver:      DriveSending,
	StatusRule:  CompareThreshold,
	Required:    []Field{FieldStore, FieldItem, FieldReceived, FieldDispatched, FieldSold},
	Optional:    []Field{FieldReceiveDate, FieldOnHand},
	ItemAliases: []string{"upc", "upc_id"},
}

// Variants variantes registradas por nombre.
var Variants = map[string]Variant{
	Network.Name:    Network,
	Regional.Name:   Regional,
	Assortment.Name: Assortment,
}

// VariantByName resuelve una variante; nombre desconocido → domain.ErrUnknownVariant.
func VariantByName(name string) (Variant, error) {
	v, ok := Variants[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Variant{}, domain.ErrUnknownVariant
	}
	return v, nil
}

// UsesZone indica si la zona forma parte de la clave de unidad.
func (v Variant) UsesZone() bool {
	for _, f := range v.UnitKeys {
		if f == FieldZone {
			return true
		}
	}
	return false
}

func (v Variant) aliases(f Field) []string {
	if f == FieldItem {
		return v.ItemAliases
	}
	return baseAliases[f]
}

// SameScope indica si dos filas pueden intercambiar stock según el alcance de la variante.
func (v Variant) SameScope(a, b entity.AggregateRow) bool {
	return keyOf(a, v.ScopeKeys) == keyOf(b, v.ScopeKeys)
}

// ScopeID valor del alcance de una fila (zona en regional, vacío en las demás).
func (v Variant) ScopeID(r entity.AggregateRow) string {
	return keyOf(r, v.ScopeKeys)
}

// ParentID clave del grupo padre de una fila.
func (v Variant) ParentID(r entity.AggregateRow) string {
	return keyOf(r, v.ParentKeys)
}

func (v Variant) unitID(r entity.AggregateRow) string {
	return keyOf(r, v.UnitKeys)
}

func keyOf(r entity.AggregateRow, fields []Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fieldValue(r, f))
	}
	return strings.Join(parts, "|")
}

func fieldValue(r entity.AggregateRow, f Field) string {
	switch f {
	case FieldZone:
		return r.ZoneID
	case FieldStore:
		return r.StoreID
	case FieldItem:
		return r.ItemID
	case FieldReceiveDate:
		return r.AdjustedReceiveDate.Format("2006-01-02")
	}
	return ""
}

// compareUnits ordena dos filas por la tupla de claves de unidad (fechas en orden cronológico).
func (v Variant) compareUnits(a, b entity.AggregateRow) int {
	for _, f := range v.UnitKeys {
		if f == FieldReceiveDate {
			if c := a.AdjustedReceiveDate.Compare(b.AdjustedReceiveDate); c != 0 {
				return c
			}
			continue
		}
		if c := strings.Compare(fieldValue(a, f), fieldValue(b, f)); c != 0 {
			return c
		}
	}
	return 0
}
