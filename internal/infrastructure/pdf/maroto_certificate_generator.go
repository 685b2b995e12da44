// Package pdf implementa la generación de la Constancia de Fumigación en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Constancia de Fumigación  │  N° Operación + Fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE / DEPÓSITO / MERCADERÍA / MÉTODO / FUMIGADOR        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Evento | Toneladas                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Toneladas tratadas / Producto aplicado             │
//	│  FOOTER: Resultado de garantía + vencimiento                 │
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

	"github.com/jhoicas/fumigacion-api/internal/application/operation"
	"github.com/jhoicas/fumigacion-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ operation.CertificatePDFGenerator = (*MarotoCertificateGenerator)(nil)

// MarotoCertificateGenerator implementa operation.CertificatePDFGenerator usando Maroto v2.
type MarotoCertificateGenerator struct{}

// NewMarotoCertificateGenerator construye el generador.
func NewMarotoCertificateGenerator() *MarotoCertificateGenerator { return &MarotoCertificateGenerator{} }

// GenerateCertificate genera el PDF y devuelve sus bytes.
func (g *MarotoCertificateGenerator) GenerateCertificate(_ context.Context, data operation.CertificateData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Constancia de Fumigación", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(detailRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range eventRows(data.Events) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data))
	m.AddRows(line.NewRow(3))
	m.AddRows(warrantyRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y N° de operación + fechas (der).
func headerRow(data operation.CertificateData) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("CONSTANCIA DE FUMIGACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Operación N° "+data.OperationID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Inicio: "+data.StartedAt.Format("02/01/2006"), props.Text{
				Size: 9, Top: 2, Align: align.Right,
			}),
			text.New("Cierre: "+data.FinishedAt.Format("02/01/2006"), props.Text{
				Size: 9, Top: 8, Align: align.Right,
			}),
		),
	)
}

// detailRow: cliente, depósito, mercadería, método y fumigador.
func detailRow(data operation.CertificateData) core.Row {
	method := "pastillas"
	if data.Method == entity.MethodLiquid {
		method = "líquido"
	}
	return row.New(22).Add(
		col.New(6).Add(
			text.New("Cliente: "+data.ClientName, props.Text{Size: 9, Top: 1}),
			text.New("Depósito: "+data.WarehouseName, props.Text{Size: 9, Top: 7}),
			text.New("Mercadería: "+data.MerchandiseName, props.Text{Size: 9, Top: 13}),
		),
		col.New(6).Add(
			text.New("Método: "+method, props.Text{Size: 9, Top: 1}),
			text.New("Fumigador: "+data.OperatorName, props.Text{Size: 9, Top: 7}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary}
	return row.New(7).Add(
		col.New(3).Add(text.New("Fecha", header)),
		col.New(6).Add(text.New("Evento", header)),
		col.New(3).Add(text.New("Toneladas", propsRight(header))),
	)
}

func eventRows(events []operation.CertificateEvent) []core.Row {
	labels := map[entity.RecordKind]string{
		entity.KindInitial:            "Apertura",
		entity.KindProductApplication: "Aplicación de producto",
		entity.KindMovement:           "Movimiento de mercadería",
		entity.KindSampling:           "Muestreo",
		entity.KindFinalization:       "Cierre",
	}
	rows := make([]core.Row, 0, len(events))
	for _, e := range events {
		tons := "-"
		if e.Tons != nil {
			tons = e.Tons.StringFixed(2)
		}
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(e.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 8})),
			col.New(6).Add(text.New(labels[e.Kind], props.Text{Size: 8})),
			col.New(3).Add(text.New(tons, propsRight(props.Text{Size: 8}))),
		))
	}
	return rows
}

func totalsRow(data operation.CertificateData) core.Row {
	unit := "pastillas"
	if data.Method == entity.MethodLiquid {
		unit = "cm³"
	}
	return row.New(12).Add(
		col.New(6).Add(
			text.New("Toneladas tratadas: "+data.TotalTons.StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 10, Top: 2}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Producto aplicado: %s %s", data.TotalProduct.StringFixed(0), unit), props.Text{Style: fontstyle.Bold, Size: 10, Top: 2, Align: align.Right}),
		),
	)
}

// warrantyRow: resultado de la garantía de desinsectación.
func warrantyRow(data operation.CertificateData) core.Row {
	if !data.HasWarranty {
		return row.New(10).Add(
			col.New(12).Add(
				text.New("Operación SIN garantía de desinsectación.", props.Text{Size: 10, Color: colorGray}),
			),
		)
	}
	expiry := ""
	if data.WarrantyExpiry != nil {
		expiry = " Vigente hasta el " + data.WarrantyExpiry.Format("02/01/2006") + "."
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New("Operación CON garantía de desinsectación."+expiry, props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPrimary,
			}),
		),
	)
}

func propsRight(p props.Text) props.Text {
	p.Align = align.Right
	return p
}
