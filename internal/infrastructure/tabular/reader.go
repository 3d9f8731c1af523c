// Package tabular lee y escribe las planillas del motor de traslados (CSV y XLSX).
package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/ist-rebalancer/internal/domain"
	engine "github.com/jhoicas/ist-rebalancer/internal/domain/rebalance"
)

// Reader implementa rebalance.SheetReader para .csv y .xlsx.
type Reader struct{}

// NewReader construye el lector.
func NewReader() *Reader { return &Reader{} }

// ReadSheet detecta el formato por extensión (sin extensión se asume CSV) y devuelve
// la primera fila como encabezado y el resto como filas de texto.
func (r *Reader) ReadSheet(name string, src io.Reader) (engine.Sheet, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return readXLSX(src)
	case ".csv", ".txt", "":
		return readCSV(src)
	}
	return engine.Sheet{}, fmt.Errorf("%w: extensión no soportada %q", domain.ErrUnreadableInput, filepath.Ext(name))
}

func readCSV(src io.Reader) (engine.Sheet, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return engine.Sheet{}, fmt.Errorf("%w: %v", domain.ErrUnreadableInput, err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	// Las planillas exportadas desde Excel en Windows llegan en CP-1252.
	var in io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		in = transform.NewReader(in, charmap.Windows1252.NewDecoder())
	}

	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return engine.Sheet{}, fmt.Errorf("%w: csv: %v", domain.ErrUnreadableInput, err)
	}
	return toSheet(records), nil
}

func readXLSX(src io.Reader) (engine.Sheet, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return engine.Sheet{}, fmt.Errorf("%w: xlsx: %v", domain.ErrUnreadableInput, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return engine.Sheet{}, fmt.Errorf("%w: xlsx sin hojas", domain.ErrUnreadableInput)
	}
	// Valores crudos: las fechas llegan como serial y las cantidades sin formato de miles.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return engine.Sheet{}, fmt.Errorf("%w: xlsx: %v", domain.ErrUnreadableInput, err)
	}
	return toSheet(rows), nil
}

func toSheet(records [][]string) engine.Sheet {
	if len(records) == 0 {
		return engine.Sheet{}
	}
	return engine.Sheet{Header: records[0], Rows: records[1:]}
}
