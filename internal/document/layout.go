package document

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"strconv"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
)

// Page geometry and table metrics, in millimeters. Both document kinds use
// the same values so quote and invoice stay visually aligned.
const (
	marginLeft  = 20.0
	tableLeft   = 20.0
	tableWidth  = 170.0
	itemCol     = 25.0
	amountCol   = 185.0
	headerBandH = 50.0
	gradSteps   = 15
	wrapWidth   = 170.0
	notesWidth  = 140.0
	notesIndent = 30.0
)

// page wraps a gofpdf document with a cursor and the UTF-8 to cp1252
// translator the core fonts need (the currency symbol in particular).
type page struct {
	pdf   *gofpdf.Fpdf
	tr    func(string) string
	width float64
	y     float64
}

func newPage() *page {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	w, _ := pdf.GetPageSize()
	return &page{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		width: w,
		y:     15,
	}
}

// header draws the branded band: a solid black rectangle across the top of
// the page, then a 15-step gradient fade from black to white beneath it,
// with the logo (or a bold business-name fallback) layered on top.
func (p *page) header(biz BusinessData) {
	p.pdf.SetFillColor(0, 0, 0)
	p.pdf.Rect(0, 0, p.width, headerBandH, "F")

	for i := 0; i < gradSteps; i++ {
		gray := i * 255 / gradSteps
		p.pdf.SetFillColor(gray, gray, gray)
		p.pdf.Rect(0, headerBandH+float64(i), p.width, 1, "F")
	}

	if p.placeLogo(biz.Logo) {
		p.y += 50
		return
	}

	// Logo missing or unusable: bold white business name, generation continues.
	name := biz.Name
	if name == "" {
		name = "Business Name"
	}
	p.pdf.SetFont("Helvetica", "B", 20)
	p.pdf.SetTextColor(255, 255, 255)
	p.pdf.Text(marginLeft, p.y, p.tr(name))
	p.pdf.SetTextColor(0, 0, 0)
	p.y += 10
}

// placeLogo registers the image bytes and draws them 60mm wide at the top
// left. The image is decoded up front so a bad asset never poisons the pdf
// object's error state.
func (p *page) placeLogo(logo []byte) bool {
	if len(logo) == 0 {
		return false
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(logo))
	if err != nil || cfg.Width == 0 {
		log.Printf("document: logo not usable, falling back to text: %v", err)
		return false
	}
	var imgType string
	switch format {
	case "png":
		imgType = "PNG"
	case "jpeg":
		imgType = "JPG"
	case "gif":
		imgType = "GIF"
	default:
		log.Printf("document: unsupported logo format %q, falling back to text", format)
		return false
	}
	opts := gofpdf.ImageOptions{ImageType: imgType}
	p.pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(logo))
	// Width 60mm, height 0 lets the renderer keep the aspect ratio.
	p.pdf.ImageOptions("logo", marginLeft, p.y, 60, 0, false, opts, 0, "")
	return p.pdf.Ok()
}

func (p *page) font(style string, size float64) {
	p.pdf.SetFont("Helvetica", style, size)
}

func (p *page) text(x float64, s string) {
	p.pdf.Text(x, p.y, p.tr(s))
}

// textRight draws s with its right edge at x.
func (p *page) textRight(x float64, s string) {
	t := p.tr(s)
	p.pdf.Text(x-p.pdf.GetStringWidth(t), p.y, t)
}

// textCenter draws s centered on the page.
func (p *page) textCenter(s string) {
	t := p.tr(s)
	p.pdf.Text((p.width-p.pdf.GetStringWidth(t))/2, p.y, t)
}

// wrap splits s into lines no wider than w at the current font.
func (p *page) wrap(s string, w float64) []string {
	raw := p.pdf.SplitLines([]byte(p.tr(s)), w)
	lines := make([]string, len(raw))
	for i, b := range raw {
		lines[i] = string(b)
	}
	return lines
}

// wrapped draws s word-wrapped to w at x, advancing the cursor by step per
// line. The first line lands on the current cursor position.
func (p *page) wrapped(s string, x, w, step float64) {
	lines := p.wrap(s, w)
	for i, line := range lines {
		p.pdf.Text(x, p.y+float64(i)*step, line)
	}
	p.y += float64(len(lines)) * step
}

// addressLines renders each newline-separated line of addr as its own row,
// blank lines included, advancing the cursor by step before each line.
func (p *page) addressLines(addr string, step float64) {
	for _, line := range strings.Split(addr, "\n") {
		p.y += step
		p.text(marginLeft, line)
	}
}

// mutedNote renders wrapped free-text under a breakdown row in the smaller
// gray font, restoring the row font afterwards.
func (p *page) mutedNote(s string) {
	p.font("", 8)
	p.pdf.SetTextColor(100, 100, 100)
	p.wrapped(s, notesIndent, notesWidth, 4)
	p.font("", 10)
	p.pdf.SetTextColor(0, 0, 0)
}

// tableHeader draws the shaded Item/Amount header row.
func (p *page) tableHeader() {
	p.pdf.SetFillColor(240, 240, 240)
	p.pdf.Rect(tableLeft, p.y-5, tableWidth, 8, "F")
	p.font("B", 10)
	p.text(itemCol, "Item")
	p.textRight(160, "Amount")
	p.y += 10
	p.font("", 10)
}

// rule draws the divider line above the totals.
func (p *page) rule() {
	p.pdf.Line(tableLeft, p.y, tableLeft+tableWidth, p.y)
}

func (p *page) output() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// money formats a monetary value with the fixed currency symbol and exactly
// two decimal places. Decimal keeps display rounding explicit.
func money(v float64) string {
	return "£" + decimal.NewFromFloat(v).StringFixed(2)
}

// days formats a day count the way it was entered: no trailing zeros.
func days(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func positive(p *float64) bool {
	return p != nil && *p > 0
}

// splitLinesVerbatim splits free text strictly on newlines. Blank lines stay
// as empty rows; nothing is trimmed or collapsed.
func splitLinesVerbatim(s string) []string {
	return strings.Split(s, "\n")
}
