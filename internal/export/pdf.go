package export

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
)

// PDF 版式参数（毫米）
const (
	pdfMargin       = 15.0
	pdfBottomMargin = 20.0
	pdfLogoWidth    = 35.0
	pdfRowHeight    = 7.0
	pdfLineHeight   = 5.0
	pdfFont         = "Helvetica"
)

var (
	pdfHeaderFill = [3]int{68, 114, 196}
	pdfStripeFill = [3]int{242, 242, 242}
	pdfMetricFill = [3]int{230, 236, 247}
)

// PDF 渲染分页 PDF：徽标（可选）、标题、元信息、三项汇总指标、数据表，
// 每页页脚含生成日期与页码。徽标加载失败只记录日志，不影响导出
func (e *Exporter) PDF(doc *Document) (*bytes.Buffer, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(doc.Title, true)
	if doc.Subtitle != "" {
		pdf.SetAuthor(doc.Subtitle, true)
	}
	pdf.SetCreationDate(doc.GeneratedAt)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfBottomMargin)
	pdf.AliasNbPages("")

	generated := "Generado el " + doc.GeneratedAt.Format("02/01/2006 15:04")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(0, 10, tr(generated), "", 0, "L", false, 0, "")
		pdf.SetX(pdfMargin)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Página %d de {nb}", pdf.PageNo())), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 2*pdfMargin

	// ── 徽标 ──
	if lg, err := loadLogo(e.opts.LogoPath, e.opts.LogoWidthPx); err != nil {
		e.logger.Warn("报表 logo 不可用，跳过", zap.String("path", e.opts.LogoPath), zap.Error(err))
	} else {
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(lg.png))
		if pdf.Ok() {
			h := pdfLogoWidth * float64(lg.height) / float64(lg.width)
			pdf.ImageOptions("logo", pdfMargin, pdfMargin, pdfLogoWidth, h, false, opts, 0, "")
			pdf.SetY(pdfMargin + h + 4)
		} else {
			e.logger.Warn("报表 logo 嵌入失败，跳过", zap.Error(pdf.Error()))
			pdf.ClearError()
		}
	}

	// ── 标题 ──
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(pdfFont, "B", 16)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "C", false, 0, "")
	if doc.Subtitle != "" {
		pdf.SetFont(pdfFont, "", 11)
		pdf.CellFormat(0, 7, tr(doc.Subtitle), "", 1, "C", false, 0, "")
	}
	pdf.Ln(3)

	// ── 元信息 ──
	for _, m := range doc.Meta {
		pdf.SetFont(pdfFont, "B", 10)
		pdf.CellFormat(35, 6, tr(m.Label+":"), "", 0, "L", false, 0, "")
		pdf.SetFont(pdfFont, "", 10)
		pdf.CellFormat(0, 6, tr(FormatValue(m.Value)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// ── 汇总指标 ──
	if n := len(doc.Metrics); n > 0 {
		boxW := contentW / float64(n)
		pdf.SetFillColor(pdfMetricFill[0], pdfMetricFill[1], pdfMetricFill[2])
		pdf.SetFont(pdfFont, "", 9)
		for i, m := range doc.Metrics {
			ln := 0
			if i == n-1 {
				ln = 1
			}
			pdf.CellFormat(boxW, 6, tr(m.Label), "LTR", ln, "C", true, 0, "")
		}
		pdf.SetFont(pdfFont, "B", 12)
		for i, m := range doc.Metrics {
			ln := 0
			if i == n-1 {
				ln = 1
			}
			pdf.CellFormat(boxW, 8, tr(FormatValue(m.Value)), "LBR", ln, "C", true, 0, "")
		}
		pdf.Ln(5)
	}

	// ── 数据表 ──
	widths := make([]float64, len(doc.Columns))
	for i, c := range doc.Columns {
		widths[i] = c.Ratio * contentW
	}

	drawHeader := func() {
		pdf.SetFont(pdfFont, "B", 9)
		pdf.SetFillColor(pdfHeaderFill[0], pdfHeaderFill[1], pdfHeaderFill[2])
		pdf.SetTextColor(255, 255, 255)
		for i, c := range doc.Columns {
			pdf.CellFormat(widths[i], pdfRowHeight, tr(c.Header), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont(pdfFont, "", 9)
	}
	drawHeader()

	if len(doc.Rows) == 0 && doc.EmptyMessage != "" {
		pdf.SetFont(pdfFont, "I", 9)
		pdf.CellFormat(contentW, pdfRowHeight, tr(doc.EmptyMessage), "1", 1, "C", false, 0, "")
	}

	for n, row := range doc.Rows {
		cells := make([][]string, len(widths))
		lines := 1
		for i := range widths {
			text := ""
			if i < len(row) {
				text = tr(FormatValue(row[i]))
			}
			cells[i] = wrapText(pdf, text, widths[i]-2)
			lines = max(lines, len(cells[i]))
		}
		rowH := math.Max(pdfRowHeight, float64(lines)*pdfLineHeight+2)

		if pdf.GetY()+rowH > pageH-pdfBottomMargin {
			pdf.AddPage()
			drawHeader()
		}
		style := "D"
		if n%2 == 1 {
			style = "FD"
		}
		pdf.SetFillColor(pdfStripeFill[0], pdfStripeFill[1], pdfStripeFill[2])

		x0, y0 := pdf.GetX(), pdf.GetY()
		x := x0
		for i, w := range widths {
			align := "L"
			if doc.Columns[i].Kind == KindHours || doc.Columns[i].Kind == KindCount {
				align = "R"
			}
			pdf.Rect(x, y0, w, rowH, style)
			top := y0 + (rowH-float64(len(cells[i]))*pdfLineHeight)/2
			for j, ln := range cells[i] {
				pdf.SetXY(x, top+float64(j)*pdfLineHeight)
				pdf.CellFormat(w, pdfLineHeight, ln, "", 0, align, false, 0, "")
			}
			x += w
		}
		pdf.SetXY(x0, y0+rowH)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		e.logger.Error("生成 PDF 失败", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf, nil
}

// wrapText 按单元格宽度折行（文本已转换为 cp1252 单字节编码），超长单词按字节断开
func wrapText(pdf *fpdf.Fpdf, s string, width float64) []string {
	if pdf.GetStringWidth(s) <= width {
		return []string{s}
	}
	var lines []string
	line := ""
	for _, word := range strings.Fields(s) {
		for pdf.GetStringWidth(word) > width {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			n := len(word)
			for n > 1 && pdf.GetStringWidth(word[:n]) > width {
				n--
			}
			lines = append(lines, word[:n])
			word = word[n:]
		}
		if word == "" {
			continue
		}
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if pdf.GetStringWidth(candidate) <= width {
			line = candidate
		} else {
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" || len(lines) == 0 {
		lines = append(lines, line)
	}
	return lines
}
