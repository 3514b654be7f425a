// Package render lays enhanced resume text out as a Letter sized PDF.
package render

import (
	"bytes"

	"github.com/Abraxas-365/resumeforge/pkg/resume"
	"github.com/go-pdf/fpdf"
)

type rgb struct{ r, g, b int }

type style struct {
	size   float64
	bold   bool
	color  rgb
	indent float64
	before float64
	after  float64
}

var (
	black    = rgb{0, 0, 0}
	darkBlue = rgb{0, 0, 139}

	styles = map[Kind]style{
		// Headers get an extra 12pt spacer on top of their own spacing.
		KindHeader:    {size: 14, bold: true, color: darkBlue, before: 24, after: 12},
		KindSubheader: {size: 11, bold: true, color: black, before: 6, after: 6},
		KindBullet:    {size: 10, color: black, indent: 20, before: 1, after: 3},
		KindContact:   {size: 10, color: black, before: 1, after: 2},
		KindSkills:    {size: 10, color: black, before: 2, after: 4},
		KindParagraph: {size: 10, color: black, before: 2, after: 4},
	}
)

const (
	fontFamily = "Helvetica"
	margin     = 72.0
	leading    = 1.2
)

// Renderer implements resume.Renderer with fpdf.
type Renderer struct {
	pageSize string
	margin   float64
}

var _ resume.Renderer = (*Renderer)(nil)

type Option func(*Renderer)

// WithPageSize selects an fpdf page size name such as "A4".
func WithPageSize(size string) Option {
	return func(r *Renderer) { r.pageSize = size }
}

func WithMargin(pt float64) Option {
	return func(r *Renderer) { r.margin = pt }
}

func New(opts ...Option) *Renderer {
	r := &Renderer{pageSize: "Letter", margin: margin}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render returns the PDF bytes for text. Characters outside cp1252 are
// replaced by the translator.
func (r *Renderer) Render(text string) ([]byte, error) {
	pdf := fpdf.New("P", "pt", r.pageSize, "")
	pdf.SetMargins(r.margin, r.margin, r.margin)
	pdf.SetAutoPageBreak(true, r.margin)
	pdf.SetCreator("resumeforge", true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, block := range Layout(text) {
		st := styles[block.Kind]
		fontStyle := ""
		if st.bold {
			fontStyle = "B"
		}

		pdf.Ln(st.before)
		pdf.SetFont(fontFamily, fontStyle, st.size)
		pdf.SetTextColor(st.color.r, st.color.g, st.color.b)
		pdf.SetX(r.margin + st.indent)
		pdf.MultiCell(0, st.size*leading, tr(block.Text), "", "L", false)
		pdf.Ln(st.after)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
