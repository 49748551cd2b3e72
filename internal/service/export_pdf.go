package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"workday-attendance/backend/internal/dto"
	"workday-attendance/backend/internal/model"
	"workday-attendance/backend/pkg/fonts"
	"workday-attendance/backend/pkg/rtl"
)

// ── PDF 版式参数（单位 pt）──

const (
	pdfMargin      = 30.0
	pdfTitleSize   = 16.0
	pdfTitleLine   = 22.0
	pdfTitleGap    = 10.0
	pdfTableSize   = 10.0
	pdfCellPadding = 6.0
	pdfRowHeight   = 20.0 // 单行行高
	pdfLineHeight  = 13.0 // 折行后每行增加的高度
	pdfMaxColWidth = 160.0
)

// pdfDoc 封装 fpdf 与整形器
// 所有文本以逻辑顺序传入，测宽与绘制前才整形
type pdfDoc struct {
	*fpdf.Fpdf
	shaper rtl.Shaper
}

// newPDFDoc 创建 A4 纵向文档并注册字体；字体无法解析时返回错误
func newPDFDoc(font []byte, shaper rtl.Shaper, title string) (doc *pdfDoc, err error) {
	// 截断的 TTF 会使 fpdf 解析时越界 panic
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("解析字体失败: %v", r)
		}
	}()

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	// 手动分页，以便在新页重复表头
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetCellMargin(pdfCellPadding)
	pdf.SetTitle(title, true)

	pdf.AddUTF8FontFromBytes(fonts.DefaultFamily, "", font)
	pdf.SetFont(fonts.DefaultFamily, "", pdfTableSize)
	if err := pdf.Error(); err != nil {
		return nil, err
	}
	return &pdfDoc{Fpdf: pdf, shaper: shaper}, nil
}

// ═══════════════════════════════════════════════════════════
// ExportPDF 导出为 PDF
// ═══════════════════════════════════════════════════════════
//
// 版式：A4 纵向，四边 30pt；居中标题（过长时折行）后接网格表格。
// fpdf 按从左到右绘制，因此表头与每行数据都按列倒序输出，
// 单元格先按逻辑顺序折行，再逐行经 rtl.Shaper 连字与重排。
// 一页放不下时换页并重复表头；高于整页的行拆到后续页继续。

func (s *exportService) ExportPDF(ctx context.Context, req *dto.ExportRequest) (*bytes.Buffer, string, error) {
	title, records, err := s.load(ctx, req)
	if err != nil {
		return nil, "", err
	}

	doc, err := newPDFDoc(s.font, s.shaper, title)
	if err != nil {
		return nil, "", s.generateFailed("pdf", err)
	}
	doc.AddPage()

	pageW, pageH := doc.GetPageSize()
	left, top, right, bottom := doc.GetMargins()
	contentW := pageW - left - right

	// 1. 标题
	doc.SetFont(fonts.DefaultFamily, "", pdfTitleSize)
	for _, line := range doc.wrap(title, contentW) {
		doc.CellFormat(contentW, pdfTitleLine, doc.shaper.Shape(line), "", 1, "CM", false, 0, "")
	}
	doc.Ln(pdfTitleGap)

	// 2. 组装表格（视觉顺序）
	doc.SetFont(fonts.DefaultFamily, "", pdfTableSize)
	cells := make([][]string, 0, len(records)+1)
	cells = append(cells, reverseCells(exportHeaders))
	for i := range records {
		cells = append(cells, reverseCells(pdfCells(i+1, &records[i])))
	}

	widths := doc.columnWidths(cells, contentW)
	tableW := 0.0
	for _, w := range widths {
		tableW += w
	}
	x := left + (contentW-tableW)/2

	header := doc.layoutRow(cells[0], widths)
	bodyH := pageH - bottom - top - header.height

	// 3. 绘制
	doc.SetFillColor(211, 211, 211)
	doc.drawRow(x, widths, header, true)
	for _, c := range cells[1:] {
		row := doc.layoutRow(c, widths)
		for row.height > pageH-bottom-doc.GetY() {
			if row.height > bodyH {
				if head, tail, ok := row.split(pageH - bottom - doc.GetY()); ok {
					doc.drawRow(x, widths, head, false)
					row = tail
				}
			}
			doc.AddPage()
			doc.drawRow(x, widths, header, true)
		}
		doc.drawRow(x, widths, row, false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, "", s.generateFailed("pdf", err)
	}

	s.logger.Info("PDF 导出完成",
		zap.Int("records", len(records)),
		zap.Int("pages", doc.PageNo()),
		zap.Int("bytes", buf.Len()),
	)
	return &buf, title + ".pdf", nil
}

// pdfCells 一条记录的逻辑顺序单元格文本
func pdfCells(seq int, wd *model.WorkDay) []string {
	return []string{
		strconv.Itoa(seq),
		displayDate(wd),
		wd.Weekday(),
		wd.StartArabic(),
		wd.EndArabic(),
		formatHours(wd.BreakHours),
		formatHours(wd.WorkHours),
		wd.DriverName,
		wd.Notes,
	}
}

// reverseCells 列倒序，使第一列位于最右侧
func reverseCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[len(cells)-1-i] = c
	}
	return out
}

// ── 测宽与折行 ──

func (d *pdfDoc) textWidth(s string) float64 {
	return d.GetStringWidth(d.shaper.Shape(s))
}

// wrap 按单词折行，使每行整形后的宽度不超过 w 减去左右内边距
func (d *pdfDoc) wrap(text string, w float64) []string {
	avail := w - 2*d.GetCellMargin()
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := ""
	for _, word := range words {
		for _, part := range d.breakWord(word, avail) {
			if line == "" {
				line = part
				continue
			}
			if cand := line + " " + part; d.textWidth(cand) <= avail {
				line = cand
				continue
			}
			lines = append(lines, line)
			line = part
		}
	}
	return append(lines, line)
}

// breakWord 单个单词超宽时按字符断开
func (d *pdfDoc) breakWord(word string, avail float64) []string {
	if d.textWidth(word) <= avail {
		return []string{word}
	}
	runes := []rune(word)
	var parts []string
	start := 0
	for i := start + 2; i <= len(runes); i++ {
		if d.textWidth(string(runes[start:i])) > avail {
			parts = append(parts, string(runes[start:i-1]))
			start = i - 1
		}
	}
	return append(parts, string(runes[start:]))
}

// columnWidths 按单行内容计算列宽，单列不超过 pdfMaxColWidth，总宽超出时压缩最宽的列
func (d *pdfDoc) columnWidths(rows [][]string, maxW float64) []float64 {
	widths := make([]float64, len(rows[0]))
	for _, row := range rows {
		for i, c := range row {
			if w := d.textWidth(c) + 2*d.GetCellMargin(); w > widths[i] {
				widths[i] = min(w, pdfMaxColWidth)
			}
		}
	}
	fitWidths(widths, maxW)
	return widths
}

// fitWidths 求上限 c 使 Σmin(wᵢ, c) = maxW，只截短超过 c 的列
func fitWidths(widths []float64, maxW float64) {
	total := 0.0
	for _, w := range widths {
		total += w
	}
	if total <= maxW {
		return
	}

	sorted := append([]float64(nil), widths...)
	sort.Float64s(sorted)
	rest := maxW
	for i, w := range sorted {
		n := float64(len(sorted) - i)
		if w*n >= rest {
			limit := rest / n
			for j := range widths {
				widths[j] = min(widths[j], limit)
			}
			return
		}
		rest -= w
	}
}

// ── 行布局与绘制 ──

// pdfTableRow 已按列宽折行的一行
type pdfTableRow struct {
	lines  [][]string
	height float64
}

func newTableRow(lines [][]string) pdfTableRow {
	n := 1
	for _, l := range lines {
		n = max(n, len(l))
	}
	return pdfTableRow{
		lines:  lines,
		height: pdfRowHeight + float64(n-1)*pdfLineHeight,
	}
}

func (d *pdfDoc) layoutRow(cells []string, widths []float64) pdfTableRow {
	lines := make([][]string, len(cells))
	for i, c := range cells {
		lines[i] = d.wrap(c, widths[i])
	}
	return newTableRow(lines)
}

// split 取前若干行使高度不超过 maxH，剩余部分留给下一页
func (r pdfTableRow) split(maxH float64) (head, tail pdfTableRow, ok bool) {
	keep := int((maxH-pdfRowHeight)/pdfLineHeight) + 1
	if maxH < pdfRowHeight || keep < 1 {
		return head, tail, false
	}

	headLines := make([][]string, len(r.lines))
	tailLines := make([][]string, len(r.lines))
	for i, l := range r.lines {
		k := min(keep, len(l))
		headLines[i] = l[:k]
		tailLines[i] = l[k:]
	}
	return newTableRow(headLines), newTableRow(tailLines), true
}

func (d *pdfDoc) drawRow(x float64, widths []float64, row pdfTableRow, fill bool) {
	style := "D"
	if fill {
		style = "FD"
	}

	y := d.GetY()
	cx := x
	for i, lines := range row.lines {
		d.Rect(cx, y, widths[i], row.height, style)
		// 单元格内容垂直居中
		top := y + (row.height-pdfRowHeight-float64(len(lines)-1)*pdfLineHeight)/2
		for j, line := range lines {
			d.SetXY(cx, top+float64(j)*pdfLineHeight)
			d.CellFormat(widths[i], pdfRowHeight, d.shaper.Shape(line), "", 0, "CM", false, 0, "")
		}
		cx += widths[i]
	}
	d.SetXY(x, y+row.height)
}
