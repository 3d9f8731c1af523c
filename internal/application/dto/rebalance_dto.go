package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RebalanceRequest parámetros de una corrida. Los punteros nil toman el valor por defecto de la configuración.
type RebalanceRequest struct {
	Variant              string `json:"variant"`
	FileName             string `json:"file_name"`
	SeasonLaunchDate     string `json:"season_launch_date" form:"season_launch_date"` // YYYY-MM-DD
	SellThroughThreshold *int   `json:"sell_through_threshold,omitempty" form:"sell_through_threshold"`
	DaysThreshold        *int   `json:"days_threshold,omitempty" form:"days_threshold"`
}

// AllocationRequest parámetros del reparto de bodega (variante surtido).
type AllocationRequest struct {
	FileName             string `json:"file_name"`
	AllocationFileName   string `json:"allocation_file_name"`
	SeasonLaunchDate     string `json:"season_launch_date,omitempty" form:"season_launch_date"`
	SellThroughThreshold *int   `json:"sell_through_threshold,omitempty" form:"sell_through_threshold"`
}

// RowDTO fila de la tabla agregada.
type RowDTO struct {
	ZoneID              string          `json:"zone_id,omitempty"`
	StoreID             string          `json:"store_id"`
	ItemID              string          `json:"item_id"`
	AdjustedReceiveDate time.Time       `json:"adjusted_receive_date"`
	ReceivedQty         decimal.Decimal `json:"received_qty"`
	DispatchedQty       decimal.Decimal `json:"dispatched_qty"`
	OnHandQty           decimal.Decimal `json:"on_hand_qty"`
	SoldQty             decimal.Decimal `json:"sold_qty"`
	NetReceiving        decimal.Decimal `json:"net_receiving"`
	UnitSellThrough     decimal.Decimal `json:"unit_sell_through"`
	ParentSellThrough   decimal.Decimal `json:"parent_sell_through"`
	AgeDays             int             `json:"age_days"`
	DateDifference      int             `json:"date_difference"`
	Status              string          `json:"status"`
	DesiredCover        decimal.Decimal `json:"desired_cover"`
	TransferNeed        decimal.Decimal `json:"transfer_need"`
}

// TransferDTO línea del libro de traslados.
type TransferDTO struct {
	ZoneID          string          `json:"zone_id,omitempty"`
	SellingItemID   string          `json:"selling_item_id"`
	SendingUnitID   string          `json:"sending_unit_id"`
	ReceivingUnitID string          `json:"receiving_unit_id"`
	Quantity        decimal.Decimal `json:"quantity_transferred"`
}

// DiagnosticsDTO contadores de condiciones corregidas durante la corrida.
type DiagnosticsDTO struct {
	RowsRead             int `json:"rows_read"`
	DroppedRows          int `json:"dropped_rows"`
	CoercedCells         int `json:"coerced_cells"`
	NegativeNetReceiving int `json:"negative_net_receiving"`
}

// RebalanceResponse resultado JSON de una corrida.
type RebalanceResponse struct {
	RunID                string         `json:"run_id"`
	Variant              string         `json:"variant"`
	SeasonLaunchDate     string         `json:"season_launch_date"`
	SellThroughThreshold int            `json:"sell_through_threshold"`
	DaysThreshold        int            `json:"days_threshold"`
	Rows                 []RowDTO       `json:"rows"`
	Transfers            []TransferDTO  `json:"transfers"`
	TotalTransferred     string         `json:"total_transferred"`
	Diagnostics          DiagnosticsDTO `json:"diagnostics"`
}

// AllocationLineDTO cantidad asignada a una tienda para un UPC.
type AllocationLineDTO struct {
	StoreID  string          `json:"store_id"`
	UPC      string          `json:"upc"`
	Quantity decimal.Decimal `json:"quantity_allocated"`
}

// UndistributedDTO saldo de bodega que no encontró tienda elegible.
type UndistributedDTO struct {
	UPC      string          `json:"upc"`
	Quantity decimal.Decimal `json:"quantity"`
}

// AllocationResponse resultado JSON del reparto.
type AllocationResponse struct {
	RunID         string              `json:"run_id"`
	Lines         []AllocationLineDTO `json:"lines"`
	Undistributed []UndistributedDTO  `json:"undistributed"`
	Diagnostics   DiagnosticsDTO      `json:"diagnostics"`
}

// TransferSheet datos para la hoja de traslados imprimible.
type TransferSheet struct {
	RunID            string
	Variant          string
	SeasonLaunchDate time.Time
	GeneratedAt      time.Time
	Transfers        []TransferDTO
	TotalTransferred decimal.Decimal
	Stores           int
}
