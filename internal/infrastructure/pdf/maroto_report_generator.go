// Package pdf genera el reporte de inventario de un tenant en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de inventario  │  Tenant + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Productos | Unidades | Bajo | Agotado | Exceso     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Cantidad | Mínimo | Máximo          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

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

	"github.com/jhoicas/pos-inventory/internal/application/dto"
	"github.com/jhoicas/pos-inventory/internal/application/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa inventory.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

var _ inventory.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// Generate arma el documento y devuelve sus bytes.
func (g *MarotoReportGenerator) Generate(report *dto.InventoryReportDTO) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(report)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("PRODUCTOS CON STOCK BAJO O AGOTADO"))
	if len(report.LowStockProducts) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin productos bajo el mínimo.", props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	} else {
		m.AddRows(tableHeaderRow())
		m.AddRows(tableRows(report.LowStockProducts)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report *dto.InventoryReportDTO) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Tenant: "+report.TenantID, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// summaryRows: tarjetas de totales en una fila de etiquetas y otra de valores.
func summaryRows(report *dto.InventoryReportDTO) []core.Row {
	type kpi struct {
		label string
		value string
		warn  bool
	}
	kpis := []kpi{
		{"Productos", strconv.Itoa(report.TotalProducts), false},
		{"Unidades", formatUnits(report.TotalUnits), false},
		{"Stock bajo", strconv.Itoa(report.LowStockCount), report.LowStockCount > 0},
		{"Agotados", strconv.Itoa(report.OutOfStockCount), report.OutOfStockCount > 0},
		{"Exceso", strconv.Itoa(report.OverstockCount), report.OverstockCount > 0},
		{"Alertas abiertas", strconv.Itoa(report.OpenAlertsCount), report.OpenAlertsCount > 0},
	}
	labels := row.New(6)
	values := row.New(10)
	for _, k := range kpis {
		labels.Add(col.New(2).Add(text.New(k.label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: align.Center, Color: colorGray, Top: 1,
		})))
		c := colorPrimary
		if k.warn {
			c = colorAlert
		}
		values.Add(col.New(2).Add(text.New(k.value, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: c, Top: 1,
		})))
	}
	return []core.Row{labels, values}
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 5, align.Left),
		h("Cantidad", 2, align.Right),
		h("Mínimo", 1, align.Right),
		h("Máximo", 2, align.Right),
	)
}

// tableRows: una fila por registro bajo el mínimo; los agotados en rojo.
func tableRows(records []dto.InventoryRecordDTO) []core.Row {
	out := make([]core.Row, 0, len(records))
	for _, r := range records {
		qtyColor := colorGray
		if r.Quantity <= 0 {
			qtyColor = colorAlert
		}
		maxStock := "-"
		if r.MaxStock != nil {
			maxStock = formatUnits(*r.MaxStock)
		}
		out = append(out, row.New(6).Add(
			col.New(2).Add(text.New(nonEmpty(r.ProductSKU, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(nonEmpty(r.ProductName, r.ProductID), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatUnits(r.Quantity), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: qtyColor, Style: fontstyle.Bold,
			})),
			col.New(1).Add(text.New(formatUnits(r.MinStock), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(maxStock, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatUnits inserta puntos de miles. Ej: 25000 → "25.000", -1200 → "-1.200".
func formatUnits(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
