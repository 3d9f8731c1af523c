package rebalance

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ist-rebalancer/internal/application/dto"
	"github.com/jhoicas/ist-rebalancer/internal/domain/entity"
	engine "github.com/jhoicas/ist-rebalancer/internal/domain/rebalance"
)

// Nombres de hoja de las exportaciones.
const (
	SheetProcessed  = "Processed Data"
	SheetTransfers  = "Transfer Details"
	SheetAllRows    = "All Metrics"
	SheetAllocation = "Allocation"
)

// RowsTable tabla agregada con todas las métricas. La zona solo aparece en regional.
// En una corrida recibe las filas elegibles, con la necesidad ya compensada por los traslados.
func RowsTable(v engine.Variant, rows []entity.AggregateRow) dto.Table {
	header := make([]string, 0, 16)
	if v.UsesZone() {
		header = append(header, "zone_id")
	}
	header = append(header,
		"store_id", v.ItemColumn, "adjusted_receive_date",
		"received_qty", "dispatched_qty", "on_hand_qty", "sold_qty",
		"net_receiving", "unit_sell_through", "parent_sell_through",
		"age_days", "date_difference", "status", "desired_cover", "transfer_need",
	)

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		line := make([]string, 0, len(header))
		if v.UsesZone() {
			line = append(line, r.ZoneID)
		}
		line = append(line,
			r.StoreID, r.ItemID, r.AdjustedReceiveDate.Format(dateLayout),
			r.ReceivedQty.String(), r.DispatchedQty.String(), r.OnHandQty.String(), r.SoldQty.String(),
			r.NetReceiving.String(), r.UnitSellThrough.String(), r.ParentSellThrough.String(),
			strconv.Itoa(r.AgeDays), strconv.Itoa(r.DateDifference), string(r.Status),
			r.DesiredCover.String(), r.TransferNeed.String(),
		)
		out = append(out, line)
	}
	return dto.Table{Name: SheetProcessed, Header: header, Rows: out}
}

// AllRowsTable tabla completa previa al filtro de elegibilidad, con la necesidad sin compensar.
func AllRowsTable(v engine.Variant, rows []entity.AggregateRow) dto.Table {
	t := RowsTable(v, rows)
	t.Name = SheetAllRows
	return t
}

// TransfersTable libro de traslados.
func TransfersTable(v engine.Variant, transfers []entity.TransferEdge) dto.Table {
	header := make([]string, 0, 5)
	if v.UsesZone() {
		header = append(header, "zone_id")
	}
	header = append(header, "selling_item_id", "sending_unit_id", "receiving_unit_id", "quantity_transferred")

	out := make([][]string, 0, len(transfers))
	for _, e := range transfers {
		line := make([]string, 0, len(header))
		if v.UsesZone() {
			line = append(line, e.ScopeID)
		}
		line = append(line, e.SellingItemID, e.SendingUnitID, e.ReceivingUnitID, e.Quantity.String())
		out = append(out, line)
	}
	return dto.Table{Name: SheetTransfers, Header: header, Rows: out}
}

// AllocationTable líneas de reparto de bodega.
func AllocationTable(lines []entity.AllocationLine) dto.Table {
	out := make([][]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, []string{l.StoreID, l.ItemID, l.Quantity.String()})
	}
	return dto.Table{
		Name:   SheetAllocation,
		Header: []string{"store_id", "upc", "quantity_allocated"},
		Rows:   out,
	}
}

// ToResponse respuesta JSON de una corrida. rows son las filas elegibles ya compensadas.
func ToResponse(report *Report) dto.RebalanceResponse {
	res := report.Result
	rows := make([]dto.RowDTO, 0, len(res.Eligible))
	for _, r := range res.Eligible {
		rows = append(rows, dto.RowDTO{
			ZoneID:              r.ZoneID,
			StoreID:             r.StoreID,
			ItemID:              r.ItemID,
			AdjustedReceiveDate: r.AdjustedReceiveDate,
			ReceivedQty:         r.ReceivedQty,
			DispatchedQty:       r.DispatchedQty,
			OnHandQty:           r.OnHandQty,
			SoldQty:             r.SoldQty,
			NetReceiving:        r.NetReceiving,
			UnitSellThrough:     r.UnitSellThrough,
			ParentSellThrough:   r.ParentSellThrough,
			AgeDays:             r.AgeDays,
			DateDifference:      r.DateDifference,
			Status:              string(r.Status),
			DesiredCover:        r.DesiredCover,
			TransferNeed:        r.TransferNeed,
		})
	}

	return dto.RebalanceResponse{
		RunID:                report.RunID,
		Variant:              res.Variant.Name,
		SeasonLaunchDate:     report.Params.SeasonLaunchDate.Format(dateLayout),
		SellThroughThreshold: report.Params.SellThroughThreshold,
		DaysThreshold:        report.Params.DaysThreshold,
		Rows:                 rows,
		Transfers:            transferDTOs(res.Transfers),
		TotalTransferred:     totalTransferred(res.Transfers).String(),
		Diagnostics:          diagnosticsDTO(res.Diagnostics),
	}
}

// ToAllocationResponse respuesta JSON del reparto.
func ToAllocationResponse(report *AllocationReport) dto.AllocationResponse {
	lines := make([]dto.AllocationLineDTO, 0, len(report.Allocation.Lines))
	for _, l := range report.Allocation.Lines {
		lines = append(lines, dto.AllocationLineDTO{StoreID: l.StoreID, UPC: l.ItemID, Quantity: l.Quantity})
	}
	rest := make([]dto.UndistributedDTO, 0, len(report.Allocation.Undistributed))
	for _, u := range report.Allocation.Undistributed {
		rest = append(rest, dto.UndistributedDTO{UPC: u.ItemID, Quantity: u.Quantity})
	}
	return dto.AllocationResponse{
		RunID:         report.RunID,
		Lines:         lines,
		Undistributed: rest,
		Diagnostics:   diagnosticsDTO(report.Diagnostics),
	}
}

// TransferSheetOf datos de la hoja imprimible de una corrida.
func TransferSheetOf(report *Report) dto.TransferSheet {
	stores := make(map[string]struct{})
	for _, e := range report.Result.Transfers {
		stores[e.SendingUnitID] = struct{}{}
		stores[e.ReceivingUnitID] = struct{}{}
	}
	return dto.TransferSheet{
		RunID:            report.RunID,
		Variant:          report.Result.Variant.Name,
		SeasonLaunchDate: report.Params.SeasonLaunchDate,
		GeneratedAt:      report.GeneratedAt,
		Transfers:        transferDTOs(report.Result.Transfers),
		TotalTransferred: totalTransferred(report.Result.Transfers),
		Stores:           len(stores),
	}
}

func transferDTOs(transfers []entity.TransferEdge) []dto.TransferDTO {
	out := make([]dto.TransferDTO, 0, len(transfers))
	for _, e := range transfers {
		out = append(out, dto.TransferDTO{
			ZoneID:          e.ScopeID,
			SellingItemID:   e.SellingItemID,
			SendingUnitID:   e.SendingUnitID,
			ReceivingUnitID: e.ReceivingUnitID,
			Quantity:        e.Quantity,
		})
	}
	return out
}

func totalTransferred(transfers []entity.TransferEdge) decimal.Decimal {
	total := decimal.Zero
	for _, e := range transfers {
		total = total.Add(e.Quantity)
	}
	return total
}

func diagnosticsDTO(d engine.Diagnostics) dto.DiagnosticsDTO {
	return dto.DiagnosticsDTO{
		RowsRead:             d.RowsRead,
		DroppedRows:          d.DroppedRows,
		CoercedCells:         d.CoercedCells,
		NegativeNetReceiving: d.NegativeNetReceiving,
	}
}
