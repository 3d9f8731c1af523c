package rebalance

import (
	"context"
	"io"

	"github.com/jhoicas/ist-rebalancer/internal/application/dto"
	engine "github.com/jhoicas/ist-rebalancer/internal/domain/rebalance"
)

// SheetReader convierte un archivo subido (CSV/XLSX) en un dataset crudo.
// name se usa para decidir el formato por extensión.
type SheetReader interface {
	ReadSheet(name string, r io.Reader) (engine.Sheet, error)
}

// TableWriter serializa tablas de salida.
type TableWriter interface {
	WriteXLSX(w io.Writer, tables ...dto.Table) error
	WriteCSV(w io.Writer, table dto.Table) error
}

// TransferSheetGenerator genera la hoja de traslados imprimible (PDF).
type TransferSheetGenerator interface {
	GenerateTransferSheet(ctx context.Context, sheet dto.TransferSheet) ([]byte, error)
}
