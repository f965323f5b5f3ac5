package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// xlsxTotalWidth 表格总列宽（字符），按列比例分配
const xlsxTotalWidth = 110.0

// XLSX 渲染单工作表 Excel：元信息行 + 汇总行 + 数据表
func (e *Exporter) XLSX(doc *Document) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := doc.SheetName
	if sheet == "" {
		sheet = "Reporte"
	}
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	f.SetActiveSheet(idx)
	if sheet != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	lastCol := colName(len(doc.Columns) - 1)

	// 列宽
	for i, c := range doc.Columns {
		col := colName(i)
		f.SetColWidth(sheet, col, col, c.Ratio*xlsxTotalWidth)
	}

	// 样式
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	labelStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	hoursStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	dateStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr("dd/mm/yyyy")})

	// 标题行
	row := 1
	f.SetCellValue(sheet, cell("A", row), doc.Title)
	f.MergeCell(sheet, cell("A", row), cell(lastCol, row))
	f.SetCellStyle(sheet, cell("A", row), cell("A", row), titleStyle)
	row++

	if doc.Subtitle != "" {
		f.SetCellValue(sheet, cell("A", row), doc.Subtitle)
		f.MergeCell(sheet, cell("A", row), cell(lastCol, row))
		row++
	}

	// 元信息 + 汇总
	for _, group := range [][]Field{doc.Meta, doc.Metrics} {
		for _, m := range group {
			f.SetCellValue(sheet, cell("A", row), m.Label)
			f.SetCellStyle(sheet, cell("A", row), cell("A", row), labelStyle)
			f.SetCellValue(sheet, cell("B", row), m.Value)
			if _, ok := m.Value.(float64); ok {
				f.SetCellStyle(sheet, cell("B", row), cell("B", row), hoursStyle)
			}
			row++
		}
	}
	row++

	// 表头
	header := make([]interface{}, len(doc.Columns))
	for i, c := range doc.Columns {
		header[i] = c.Header
	}
	if err := f.SetSheetRow(sheet, cell("A", row), &header); err != nil {
		e.logger.Error("写入 Excel 表头失败", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	f.SetCellStyle(sheet, cell("A", row), cell(lastCol, row), headerStyle)
	row++

	// 数据行
	if len(doc.Rows) == 0 && doc.EmptyMessage != "" {
		f.SetCellValue(sheet, cell("A", row), doc.EmptyMessage)
		f.MergeCell(sheet, cell("A", row), cell(lastCol, row))
	}
	for _, r := range doc.Rows {
		values := make([]interface{}, len(r))
		for i, v := range r {
			if t, ok := v.(time.Time); ok && t.IsZero() {
				values[i] = ""
				continue
			}
			values[i] = v
		}
		if err := f.SetSheetRow(sheet, cell("A", row), &values); err != nil {
			e.logger.Error("写入 Excel 数据行失败", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrRender, err)
		}
		for i, c := range doc.Columns {
			switch c.Kind {
			case KindHours:
				f.SetCellStyle(sheet, cell(colName(i), row), cell(colName(i), row), hoursStyle)
			case KindDate:
				f.SetCellStyle(sheet, cell(colName(i), row), cell(colName(i), row), dateStyle)
			}
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		e.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf, nil
}

// ── 辅助函数 ──

// colName 0 起始的列序号转列名（0 → A）
func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func strPtr(s string) *string { return &s }
