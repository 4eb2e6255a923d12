// Package pdf genera el reporte imprimible del ranking de productos por satisfacción.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Producto | Categoría | Feedbacks | Media | Nivel │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de productos y de feedbacks                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

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

	"github.com/davihchagas/feedback-system-project/internal/application/ports"
	"github.com/davihchagas/feedback-system-project/internal/domain/feedback"
	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
)

var _ ports.RankingPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorZebra   = &props.Color{Red: 240, Green: 244, Blue: 248}
)

var classificationLabels = map[feedback.Classification]string{
	feedback.ClassificationLow:    "Baja",
	feedback.ClassificationMedium: "Media",
	feedback.ClassificationHigh:   "Alta",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.RankingPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateRankingPDF genera el PDF del ranking y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateRankingPDF(rows []repository.ProductRankingRow, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ranking de productos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(rows)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("Ranking de productos por satisfacción", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.UTC().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Producto", 4, align.Left),
		h("Categoría", 3, align.Left),
		h("Feedbacks", 1, align.Right),
		h("Media", 1, align.Right),
		h("Nivel", 2, align.Center),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRows(rows []repository.ProductRankingRow) []core.Row {
	if len(rows) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(text.New("Sin productos registrados", props.Text{
			Size: 8, Align: align.Center, Top: 2, Color: colorGray,
		})))}
	}
	out := make([]core.Row, 0, len(rows))
	for i, r := range rows {
		c := func(value string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 2, Left: 1, Right: 1}))
		}
		name := r.ProductName
		if !r.Active {
			name += " (inactivo)"
		}
		pr := row.New(7).Add(
			c(fmt.Sprintf("%d", i+1), 1, align.Center),
			c(name, 4, align.Left),
			c(r.Category, 3, align.Left),
			c(fmt.Sprintf("%d", r.FeedbackCount), 1, align.Right),
			c(r.AverageRating.StringFixed(2), 1, align.Right),
			c(levelLabel(r), 2, align.Center),
		)
		if i%2 == 1 {
			pr.WithStyle(&props.Cell{BackgroundColor: colorZebra})
		}
		out = append(out, pr)
	}
	return out
}

func footerRow(rows []repository.ProductRankingRow) core.Row {
	var total int64
	for _, r := range rows {
		total += r.FeedbackCount
	}
	return row.New(10).Add(
		col.New(12).Add(text.New(fmt.Sprintf("%d productos · %d feedbacks", len(rows), total), props.Text{
			Size: 8, Align: align.Right, Top: 3, Color: colorGray,
		})),
	)
}

// levelLabel nivel de satisfacción según la media redondeada; "N/D" sin feedback.
func levelLabel(r repository.ProductRankingRow) string {
	if r.FeedbackCount == 0 {
		return "N/D"
	}
	cls, err := feedback.Classify(int(r.AverageRating.Round(0).IntPart()))
	if err != nil {
		return "N/D"
	}
	return classificationLabels[cls]
}
