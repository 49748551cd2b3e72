package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"workday-attendance/backend/config"
	"workday-attendance/backend/internal/dto"
	"workday-attendance/backend/internal/model"
	"workday-attendance/backend/internal/repository"
	apperrors "workday-attendance/backend/pkg/errors"
	"workday-attendance/backend/pkg/fonts"
	"workday-attendance/backend/pkg/rtl"
)

// exportHeaders 导出表格的列头（逻辑顺序，从右往左阅读）
var exportHeaders = []string{
	"م",
	"التاريخ",
	"اليوم",
	"وقت البداية",
	"وقت النهاية",
	"ساعات الاستراحة",
	"ساعات العمل",
	"اسم السائق",
	"ملاحظات",
}

const (
	maxColumnWidth = 50
	headerFill     = "E5E7EB"
)

// ExportService 导出业务接口
//
// 两种格式共用同一套过滤条件与记录顺序；结果以 bytes.Buffer 返回，
// 由 Handler 层设置下载响应头。记录为空时仍输出仅含标题与表头的文档。
type ExportService interface {
	// ExportExcel 导出为 .xlsx
	ExportExcel(ctx context.Context, req *dto.ExportRequest) (*bytes.Buffer, string, error)
	// ExportPDF 导出为 A4 PDF
	ExportPDF(ctx context.Context, req *dto.ExportRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	cfg    *config.ExportConfig
	shaper rtl.Shaper
	font   []byte // PDF 使用的 TTF 字体
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
// font_path 为空时使用内置字体；指定的字体无法读取或解析时返回错误
func NewExportService(repo *repository.Repository, cfg *config.ExportConfig, shaper rtl.Shaper, logger *zap.Logger) (ExportService, error) {
	if shaper == nil {
		shaper = rtl.Default
	}

	font, err := fonts.Load(cfg.FontPath)
	if err != nil {
		return nil, err
	}
	if _, err := newPDFDoc(font, shaper, ""); err != nil {
		return nil, fmt.Errorf("PDF 字体不可用 (%s): %w", cfg.FontPath, err)
	}

	return &exportService{
		repo:   repo,
		cfg:    cfg,
		shaper: shaper,
		font:   font,
		logger: logger,
	}, nil
}

// ═══════════════════════════════════════════════════════════
// ExportExcel 导出为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单个工作表，右到左视图
//   - 第 1 行：A1:I1 合并的标题 "<label> - <title>"，加粗 14 号居中
//   - 第 2 行：九列阿拉伯语表头，加粗、灰底
//   - 之后每条记录一行，白底、细边框、居中
//   - 列宽 = min(该列最长文本字符数 + 2, 50)

func (s *exportService) ExportExcel(ctx context.Context, req *dto.ExportRequest) (*bytes.Buffer, string, error) {
	title, records, err := s.load(ctx, req)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := s.cfg.SheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", s.generateFailed("excel", err)
	}
	rightToLeft := true
	if err := f.SetSheetView(sheet, 0, &excelize.ViewOptions{RightToLeft: &rightToLeft}); err != nil {
		return nil, "", s.generateFailed("excel", err)
	}

	styles, err := newSheetStyles(f)
	if err != nil {
		return nil, "", s.generateFailed("excel", err)
	}

	// 1. 标题
	lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
	_ = f.SetCellValue(sheet, "A1", title)
	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return nil, "", s.generateFailed("excel", err)
	}
	_ = f.SetCellStyle(sheet, "A1", lastCol+"1", styles.title)

	// 2. 表头
	widths := make([]int, len(exportHeaders))
	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
		widths[i] = utf8.RuneCountInString(h)
	}
	if err := f.SetSheetRow(sheet, "A2", &header); err != nil {
		return nil, "", s.generateFailed("excel", err)
	}
	_ = f.SetCellStyle(sheet, "A2", lastCol+"2", styles.header)

	// 3. 数据行
	for i := range records {
		row := excelRow(i+1, &records[i])
		cell, _ := excelize.CoordinatesToCellName(1, i+3)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, "", s.generateFailed("excel", err)
		}
		for col, v := range row {
			if n := utf8.RuneCountInString(cellText(v)); n > widths[col] {
				widths[col] = n
			}
		}
	}
	if len(records) > 0 {
		_ = f.SetCellStyle(sheet, "A3", fmt.Sprintf("%s%d", lastCol, len(records)+2), styles.body)
	}

	// 4. 列宽
	for i, w := range widths {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, name, name, float64(min(w+2, maxColumnWidth))); err != nil {
			return nil, "", s.generateFailed("excel", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", s.generateFailed("excel", err)
	}

	s.logger.Info("Excel 导出完成", zap.Int("records", len(records)), zap.Int("bytes", buf.Len()))
	return buf, title + ".xlsx", nil
}

type sheetStyles struct {
	title, header, body int
}

func newSheetStyles(f *excelize.File) (*sheetStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}

	var st sheetStyles
	var err error
	if st.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: center,
		Border:    border,
	}); err != nil {
		return nil, err
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: center,
		Border:    border,
	}); err != nil {
		return nil, err
	}
	if st.body, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFFFFF"}, Pattern: 1},
		Alignment: center,
		Border:    border,
	}); err != nil {
		return nil, err
	}
	return &st, nil
}

// excelRow 序号与小时数保持数值类型，便于在表格中继续计算
func excelRow(seq int, wd *model.WorkDay) []interface{} {
	return []interface{}{
		seq,
		displayDate(wd),
		wd.Weekday(),
		wd.StartArabic(),
		wd.EndArabic(),
		model.RoundHours(wd.BreakHours),
		model.RoundHours(wd.WorkHours),
		wd.DriverName,
		wd.Notes,
	}
}

func cellText(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return formatHours(x)
	default:
		return fmt.Sprint(x)
	}
}

// ── 共用逻辑 ──

// load 校验标题、查询记录，返回 "<label> - <title>"
func (s *exportService) load(ctx context.Context, req *dto.ExportRequest) (string, []model.WorkDay, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return "", nil, apperrors.NewValidation("title is required")
	}

	filter, err := buildFilter(&req.WorkDayListRequest)
	if err != nil {
		return "", nil, err
	}

	records, err := s.repo.WorkDay.List(ctx, filter)
	if err != nil {
		s.logger.Error("导出时查询考勤记录失败", zap.Any("filter", filter), zap.Error(err))
		return "", nil, err
	}
	return s.cfg.Label + " - " + title, records, nil
}

func (s *exportService) generateFailed(format string, err error) error {
	s.logger.Error("生成导出文件失败", zap.String("format", format), zap.Error(err))
	return fmt.Errorf("generate %s: %w", format, err)
}

func displayDate(wd *model.WorkDay) string {
	if d, err := wd.Day(); err == nil {
		return d.Format(model.DateLayout)
	}
	return wd.Date
}

// formatHours 保留至多两位小数，整数也带一位小数（7 → "7.0"）
func formatHours(h float64) string {
	s := strconv.FormatFloat(model.RoundHours(h), 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
