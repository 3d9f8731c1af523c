// Package rebalance orquesta las corridas del motor de traslados: lectura de la planilla,
// parámetros por defecto, ejecución, logging y exportación de resultados.
package rebalance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ist-rebalancer/internal/application/dto"
	"github.com/jhoicas/ist-rebalancer/internal/domain"
	"github.com/jhoicas/ist-rebalancer/internal/domain/entity"
	engine "github.com/jhoicas/ist-rebalancer/internal/domain/rebalance"
	"github.com/jhoicas/ist-rebalancer/pkg/logger"
)

const dateLayout = "2006-01-02"

// Formatos de exportación.
const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// Tablas exportables como CSV.
const (
	TableRows      = "rows"
	TableTransfers = "transfers"
	TableAllRows   = "all_rows"
)

// Defaults valores que aplica la corrida cuando el request no los trae.
type Defaults struct {
	Variant              string
	SellThroughThreshold int
	DaysThreshold        int
	NegativeNet          engine.NegativeNetPolicy
}

// Report resultado de una corrida de rebalanceo con su identificador.
type Report struct {
	RunID       string
	Params      engine.Params
	Result      *engine.Result
	GeneratedAt time.Time
}

// AllocationReport resultado del reparto de bodega.
type AllocationReport struct {
	RunID       string
	Rows        []entity.AggregateRow
	Allocation  engine.AllocationResult
	Diagnostics engine.Diagnostics
	GeneratedAt time.Time
}

// UseCase casos de uso de rebalanceo y reparto.
type UseCase struct {
	reader   SheetReader
	writer   TableWriter
	pdf      TransferSheetGenerator
	defaults Defaults
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso inyectando lector, escritor, generador PDF y defaults.
func NewUseCase(reader SheetReader, writer TableWriter, pdf TransferSheetGenerator, defaults Defaults, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		reader:   reader,
		writer:   writer,
		pdf:      pdf,
		defaults: defaults,
		log:      log,
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests y corridas reproducibles).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Rebalance ejecuta una corrida completa sobre el archivo recibido.
//
// Retorna:
//   - domain.ErrUnknownVariant   si la variante no existe.
//   - domain.ErrInvalidInput     si la fecha o los umbrales son inválidos.
//   - domain.ErrUnreadableInput  si el archivo no se puede leer.
//   - *domain.SchemaError        si faltan columnas obligatorias.
func (uc *UseCase) Rebalance(ctx context.Context, req dto.RebalanceRequest, file io.Reader) (*Report, error) {
	name := req.Variant
	if strings.TrimSpace(name) == "" {
		name = uc.defaults.Variant
	}
	v, err := engine.VariantByName(name)
	if err != nil {
		return nil, err
	}

	launch, err := parseLaunchDate(req.SeasonLaunchDate, true)
	if err != nil {
		return nil, err
	}
	p := uc.params(launch, req.SellThroughThreshold, req.DaysThreshold)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sheet, err := uc.reader.ReadSheet(req.FileName, file)
	if err != nil {
		return nil, fmt.Errorf("rebalance: leer %q: %w", req.FileName, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	result, err := engine.Run(sheet, v, p)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:       uuid.NewString(),
		Params:      p,
		Result:      result,
		GeneratedAt: p.Now,
	}

	runLog := uc.log.Child(uc.log.With().Str("run_id", report.RunID).Str("variant", v.Name))
	runLog.Info().
		Str("file", req.FileName).
		Int("rows", len(result.Rows)).
		Int("eligible", len(result.Eligible)).
		Int("transfers", len(result.Transfers)).
		Str("total_transferred", totalTransferred(result.Transfers).String()).
		Dur("elapsed", time.Since(start)).
		Msg("corrida IST completada")
	logDiagnostics(runLog, result.Diagnostics)

	return report, nil
}

// Allocate carga la planilla de surtido y la de bodega y reparte el stock entre las tiendas High.
// La fecha de lanzamiento es opcional; sin ella se usa la fecha del día.
func (uc *UseCase) Allocate(ctx context.Context, req dto.AllocationRequest, file, allocation io.Reader) (*AllocationReport, error) {
	launch, err := parseLaunchDate(req.SeasonLaunchDate, false)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if launch.IsZero() {
		launch = now
	}
	p := uc.params(launch, req.SellThroughThreshold, nil)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	sheet, err := uc.reader.ReadSheet(req.FileName, file)
	if err != nil {
		return nil, fmt.Errorf("allocate: leer %q: %w", req.FileName, err)
	}
	records, diag, err := engine.Normalize(sheet, engine.Assortment, p)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	allocSheet, err := uc.reader.ReadSheet(req.AllocationFileName, allocation)
	if err != nil {
		return nil, fmt.Errorf("allocate: leer %q: %w", req.AllocationFileName, err)
	}
	requests, allocDiag, err := engine.NormalizeAllocation(allocSheet)
	if err != nil {
		return nil, err
	}

	rows, aggDiag := engine.Aggregate(records, engine.Assortment, p)
	result := engine.Allocate(rows, requests)

	diag.RowsRead += allocDiag.RowsRead
	diag.CoercedCells += allocDiag.CoercedCells + aggDiag.CoercedCells
	diag.NegativeNetReceiving += aggDiag.NegativeNetReceiving

	report := &AllocationReport{
		RunID:       uuid.NewString(),
		Rows:        rows,
		Allocation:  result,
		Diagnostics: diag,
		GeneratedAt: p.Now,
	}

	runLog := uc.log.Child(uc.log.With().Str("run_id", report.RunID).Str("variant", engine.Assortment.Name))
	runLog.Info().
		Int("rows", len(rows)).
		Int("requests", len(requests)).
		Int("lines", len(result.Lines)).
		Int("undistributed", len(result.Undistributed)).
		Msg("reparto de bodega completado")
	logDiagnostics(runLog, diag)

	return report, nil
}

// Export serializa una corrida en el formato pedido.
// table solo aplica a CSV (rows | transfers | all_rows; vacío = transfers).
// rows es la tabla filtrada y compensada; all_rows la tabla completa antes del emparejamiento.
func (uc *UseCase) Export(ctx context.Context, report *Report, format, table string) (*dto.ExportFile, error) {
	v := report.Result.Variant
	base := fmt.Sprintf("ist_%s_%s", v.Name, shortID(report.RunID))

	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case FormatXLSX:
		rows := RowsTable(v, report.Result.Eligible)
		transfers := TransfersTable(v, report.Result.Transfers)
		all := AllRowsTable(v, report.Result.Rows)
		if err := uc.writer.WriteXLSX(&buf, rows, transfers, all); err != nil {
			return nil, fmt.Errorf("export: xlsx: %w", err)
		}
		return &dto.ExportFile{
			Filename:    base + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     buf.Bytes(),
		}, nil

	case FormatCSV:
		var t dto.Table
		switch strings.ToLower(table) {
		case "", TableTransfers:
			t = TransfersTable(v, report.Result.Transfers)
			table = TableTransfers
		case TableRows:
			t = RowsTable(v, report.Result.Eligible)
		case TableAllRows:
			t = AllRowsTable(v, report.Result.Rows)
		default:
			return nil, fmt.Errorf("%w: tabla %q", domain.ErrInvalidInput, table)
		}
		if err := uc.writer.WriteCSV(&buf, t); err != nil {
			return nil, fmt.Errorf("export: csv: %w", err)
		}
		return &dto.ExportFile{
			Filename:    base + "_" + table + ".csv",
			ContentType: "text/csv; charset=utf-8",
			Content:     buf.Bytes(),
		}, nil

	case FormatPDF:
		content, err := uc.pdf.GenerateTransferSheet(ctx, TransferSheetOf(report))
		if err != nil {
			return nil, fmt.Errorf("export: pdf: %w", err)
		}
		return &dto.ExportFile{
			Filename:    base + ".pdf",
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	}
	return nil, fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, format)
}

// ExportAllocation serializa el reparto como CSV o XLSX.
func (uc *UseCase) ExportAllocation(_ context.Context, report *AllocationReport, format string) (*dto.ExportFile, error) {
	base := "allocation_" + shortID(report.RunID)
	t := AllocationTable(report.Allocation.Lines)

	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case FormatCSV:
		if err := uc.writer.WriteCSV(&buf, t); err != nil {
			return nil, fmt.Errorf("export: csv: %w", err)
		}
		return &dto.ExportFile{Filename: base + ".csv", ContentType: "text/csv; charset=utf-8", Content: buf.Bytes()}, nil
	case FormatXLSX:
		rows := RowsTable(engine.Assortment, report.Rows)
		if err := uc.writer.WriteXLSX(&buf, t, rows); err != nil {
			return nil, fmt.Errorf("export: xlsx: %w", err)
		}
		return &dto.ExportFile{
			Filename:    base + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     buf.Bytes(),
		}, nil
	}
	return nil, fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, format)
}

func (uc *UseCase) params(launch time.Time, sellThrough, days *int) engine.Params {
	p := engine.Params{
		SeasonLaunchDate:     launch,
		SellThroughThreshold: uc.defaults.SellThroughThreshold,
		DaysThreshold:        uc.defaults.DaysThreshold,
		Now:                  uc.now(),
		NegativeNet:          uc.defaults.NegativeNet,
	}
	if sellThrough != nil {
		p.SellThroughThreshold = *sellThrough
	}
	if days != nil {
		p.DaysThreshold = *days
	}
	return p
}

func parseLaunchDate(s string, required bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		if required {
			return time.Time{}, fmt.Errorf("%w: season_launch_date requerido", domain.ErrInvalidInput)
		}
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: season_launch_date debe ser YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return t, nil
}

func logDiagnostics(l *logger.Logger, d engine.Diagnostics) {
	if d.CoercedCells > 0 {
		l.Warn().Int("coerced_cells", d.CoercedCells).Msg("celdas no numéricas tratadas como cero")
	}
	if d.DroppedRows > 0 {
		l.Warn().Int("dropped_rows", d.DroppedRows).Msg("filas descartadas por fecha ilegible")
	}
	if d.NegativeNetReceiving > 0 {
		l.Warn().Int("negative_net_receiving", d.NegativeNetReceiving).Msg("unidades con recepción neta negativa")
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
