// Package pdf genera la hoja de traslados imprimible que se entrega a las tiendas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Hoja de traslados + variante │ Corrida + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Lanzamiento / Tiendas / Unidades trasladadas       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Zona | Ítem | Origen | Destino | Cantidad            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: firmas de despacho y recepción                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/ist-rebalancer/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa rebalance.TransferSheetGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateTransferSheet genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateTransferSheet(_ context.Context, sheet dto.TransferSheet) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de traslados "+sheet.RunID, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(sheet.Transfers)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sheet))
	m.AddRows(line.NewRow(10))
	m.AddRows(signatureRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + variante (izq) y corrida + fecha (der).
func headerRow(sheet dto.TransferSheet) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("HOJA DE TRASLADOS ENTRE TIENDAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Variante: "+sheet.Variant, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CORRIDA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(sheet.RunID, props.Text{
				Size: 7, Align: align.Right, Top: 6,
			}),
			text.New("Generada: "+sheet.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// summaryRow: parámetros y totales de la corrida.
func summaryRow(sheet dto.TransferSheet) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("RESUMEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Lanzamiento: %s   |   Tiendas involucradas: %d   |   Traslados: %d",
				sheet.SeasonLaunchDate.Format("02/01/2006"),
				sheet.Stores,
				len(sheet.Transfers),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de traslados.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Zona", 2, align.Left),
		h("Ítem", 3, align.Left),
		h("Origen", 3, align.Left),
		h("Destino", 3, align.Left),
		h("Cant.", 1, align.Right),
	)
}

// tableDetailRows: una fila por traslado, con franjas alternas.
func tableDetailRows(transfers []dto.TransferDTO) []core.Row {
	result := make([]core.Row, 0, len(transfers))
	for i, t := range transfers {
		r := row.New(7).Add(
			col.New(2).Add(text.New(nonEmpty(t.ZoneID, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(t.SellingItemID, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(t.SendingUnitID, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(t.ReceivingUnitID, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(formatQty(t.Quantity.StringFixed(0)), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	if len(result) == 0 {
		result = append(result, row.New(8).Add(col.New(12).Add(
			text.New("Sin traslados para esta corrida.", props.Text{
				Size: 8, Align: align.Center, Top: 2, Color: colorGray,
			}),
		)))
	}
	return result
}

// totalsRow: unidades totales a mover.
func totalsRow(sheet dto.TransferSheet) core.Row {
	return row.New(10).Add(
		col.New(8),
		col.New(3).Add(text.New("TOTAL UNIDADES:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(1).Add(text.New(formatQty(sheet.TotalTransferred.StringFixed(0)), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// signatureRow: espacios de firma para despacho y recepción.
func signatureRow() core.Row {
	sig := func(label string) core.Col {
		return col.New(6).Add(
			text.New("______________________________", props.Text{Size: 9, Align: align.Center}),
			text.New(label, props.Text{Size: 8, Align: align.Center, Top: 5, Color: colorGray}),
		)
	}
	return row.New(14).Add(sig("Despacha"), sig("Recibe"))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatQty inserta puntos de miles en un entero con signo opcional.
// Ej: "25000" → "25.000", "-1000" → "-1.000"
func formatQty(s string) string {
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
