package rebalance

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ist-rebalancer/internal/domain"
	"github.com/jhoicas/ist-rebalancer/internal/domain/entity"
)

// Sheet dataset tabular crudo: encabezado + filas de texto, tal como llega de CSV/XLSX.
type Sheet struct {
	Header []string
	Rows   [][]string
}

// Formatos de fecha aceptados, en orden de prueba. Los campos sin cero inicial aceptan uno o dos
// dígitos. Ante una fecha ambigua gana mes/día (formato corto de Excel en CSV); día/mes solo
// aplica cuando el primer campo no puede ser un mes.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"1/2/06",
	"2/1/2006",
	"2/1/2006 15:04",
	"2-1-2006",
}

// excelEpoch origen de los seriales de fecha de Excel (sistema 1900 con el bug del 29/02/1900).
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// Normalize valida el encabezado y convierte las filas en registros tipados.
// Columna obligatoria ausente → *domain.SchemaError. Celdas numéricas sucias → cero;
// fechas ilegibles → fila descartada. Ambas quedan contadas en Diagnostics.
func Normalize(sheet Sheet, v Variant, p Params) ([]entity.InventoryRecord, Diagnostics, error) {
	var diag Diagnostics

	cols, err := resolveColumns(sheet.Header, v)
	if err != nil {
		return nil, diag, err
	}

	launch := p.launchDate()
	records := make([]entity.InventoryRecord, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		if blank(row) {
			continue
		}
		diag.RowsRead++

		rec := entity.InventoryRecord{
			ZoneID:  cell(row, cols, FieldZone),
			StoreID: cell(row, cols, FieldStore),
			ItemID:  cell(row, cols, FieldItem),
		}

		if _, ok := cols[FieldReceiveDate]; ok {
			d, ok := parseDate(cell(row, cols, FieldReceiveDate))
			if !ok {
				diag.DroppedRows++
				continue
			}
			rec.FirstReceiveDate = d
		} else {
			rec.FirstReceiveDate = launch
		}

		rec.ReceivedQty = quantity(row, cols, FieldReceived, &diag)
		rec.DispatchedQty = quantity(row, cols, FieldDispatched, &diag)
		rec.OnHandQty = quantity(row, cols, FieldOnHand, &diag)
		rec.SoldQty = quantity(row, cols, FieldSold, &diag)

		records = append(records, rec)
	}
	return records, diag, nil
}

// NormalizeAllocation carga la planilla de bodega (UPC, QTY) para el reparto de surtido.
func NormalizeAllocation(sheet Sheet) ([]entity.AllocationRequest, Diagnostics, error) {
	var diag Diagnostics
	idx := headerIndex(sheet.Header)

	upcCol, okUPC := lookup(idx, []string{"upc", "upc_id", "item_id"})
	qtyCol, okQty := lookup(idx, []string{"qty", "quantity"})
	var missing []string
	if !okUPC {
		missing = append(missing, "UPC")
	}
	if !okQty {
		missing = append(missing, "QTY")
	}
	if len(missing) > 0 {
		return nil, diag, &domain.SchemaError{Missing: missing}
	}

	reqs := make([]entity.AllocationRequest, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		if blank(row) {
			continue
		}
		diag.RowsRead++
		q, ok := parseQuantity(at(row, qtyCol))
		if !ok {
			diag.CoercedCells++
		}
		reqs = append(reqs, entity.AllocationRequest{ItemID: at(row, upcCol), Quantity: q})
	}
	return reqs, diag, nil
}

func resolveColumns(header []string, v Variant) (map[Field]int, error) {
	idx := headerIndex(header)
	cols := make(map[Field]int, len(v.Required)+len(v.Optional))

	var missing []string
	for _, f := range v.Required {
		i, ok := lookup(idx, v.aliases(f))
		if !ok {
			missing = append(missing, displayName(v, f))
			continue
		}
		cols[f] = i
	}
	if len(missing) > 0 {
		return nil, &domain.SchemaError{Missing: missing}
	}
	for _, f := range v.Optional {
		if i, ok := lookup(idx, v.aliases(f)); ok {
			cols[f] = i
		}
	}
	return cols, nil
}

// displayName nombre de columna que se reporta al llamador: el encabezado original de las planillas.
func displayName(v Variant, f Field) string {
	switch f {
	case FieldZone:
		return "Zone"
	case FieldStore:
		return "STORE_NAME"
	case FieldItem:
		return strings.ToUpper(v.ItemAliases[0])
	case FieldReceiveDate:
		return "1st Rcv Date"
	case FieldReceived:
		return "Shop Rcv Qty"
	case FieldDispatched:
		return "Disp. Qty"
	case FieldOnHand:
		return "O.H Qty"
	case FieldSold:
		return "Sold Qty"
	}
	return string(f)
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

func lookup(idx map[string]int, aliases []string) (int, bool) {
	for _, a := range aliases {
		if i, ok := idx[a]; ok {
			return i, true
		}
	}
	return 0, false
}

func cell(row []string, cols map[Field]int, f Field) string {
	i, ok := cols[f]
	if !ok {
		return ""
	}
	return at(row, i)
}

func at(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func quantity(row []string, cols map[Field]int, f Field, diag *Diagnostics) decimal.Decimal {
	if _, ok := cols[f]; !ok {
		return decimal.Zero
	}
	q, ok := parseQuantity(cell(row, cols, f))
	if !ok {
		diag.CoercedCells++
	}
	return q
}

// parseQuantity convierte una celda a decimal. Vacía o no numérica → cero, false.
func parseQuantity(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}
	q, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return q, true
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	// Celda de fecha leída como valor crudo de Excel (serial de días).
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 1 && serial < 2958466 {
		days := math.Floor(serial)
		frac := serial - days
		t := excelEpoch.AddDate(0, 0, int(days)).Add(time.Duration(frac * float64(24*time.Hour)))
		return t, true
	}
	return time.Time{}, false
}
