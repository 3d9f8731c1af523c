package tabular

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/ist-rebalancer/internal/application/dto"
)

// Writer implementa rebalance.TableWriter.
type Writer struct{}

// NewWriter construye el escritor.
func NewWriter() *Writer { return &Writer{} }

// WriteCSV escribe encabezado y filas de una tabla.
func (w *Writer) WriteCSV(dst io.Writer, t dto.Table) error {
	cw := csv.NewWriter(dst)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX escribe un libro con una hoja por tabla, en el orden recibido.
func (w *Writer) WriteXLSX(dst io.Writer, tables ...dto.Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("xlsx: sin tablas")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	})
	if err != nil {
		return fmt.Errorf("xlsx: estilo: %w", err)
	}

	for i, t := range tables {
		name := t.Name
		if name == "" {
			name = fmt.Sprintf("Sheet%d", i+1)
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("xlsx: hoja %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("xlsx: hoja %q: %w", name, err)
		}

		if err := writeRow(f, name, 1, t.Header); err != nil {
			return err
		}
		if err := f.SetRowStyle(name, 1, 1, headerStyle); err != nil {
			return fmt.Errorf("xlsx: estilo encabezado: %w", err)
		}
		for r, row := range t.Rows {
			if err := writeRow(f, name, r+2, row); err != nil {
				return err
			}
		}
		if len(t.Header) > 0 {
			last, _ := excelize.ColumnNumberToName(len(t.Header))
			_ = f.SetColWidth(name, "A", last, 18)
		}
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(dst); err != nil {
		return fmt.Errorf("xlsx: escribir: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsx: fila %d: %w", row, err)
	}
	return nil
}
