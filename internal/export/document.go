package export

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ── 导出模块错误 ──

var (
	ErrUnknownFormat = errors.New("不支持的导出格式")
	ErrRender        = errors.New("生成导出文件失败")
)

// Format 导出文件格式
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Formats 全部支持的格式，按推荐顺序
var Formats = []Format{FormatPDF, FormatXLSX, FormatCSV}

// ParseFormat 解析格式名（大小写不敏感，允许 "excel"）
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType 返回 HTTP 响应的 MIME 类型
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// ColumnKind 决定单元格的格式化方式
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindHours
	KindCount
	KindDate
)

// Column 表格列定义；Ratio 为占页面内容宽度的比例，各列之和为 1
type Column struct {
	Header string
	Ratio  float64
	Kind   ColumnKind
}

// Field 标签-值对，用于表头元信息与汇总指标
type Field struct {
	Label string
	Value any
}

// Document 与格式无关的报表内容，三种导出器渲染同一份 Document
type Document struct {
	Title        string
	Subtitle     string
	Meta         []Field
	Metrics      []Field
	Columns      []Column
	Rows         [][]any
	EmptyMessage string
	SheetName    string
	GeneratedAt  time.Time
}

// FormatValue 将单元格值格式化为文本（PDF / CSV 使用）
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	case int:
		return strconv.Itoa(x)
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(DisplayDateLayout)
	default:
		return fmt.Sprint(x)
	}
}

// DisplayDateLayout 导出文件中的日期展示格式
const DisplayDateLayout = "02/01/2006"

// FileName 生成下载文件名：reporte_<kind>_<subject>_<YYYY-MM-DD>.<ext>
func FileName(kind, subject string, date time.Time, f Format) string {
	return fmt.Sprintf("reporte_%s_%s_%s.%s", kind, sanitizeFileComponent(subject), date.Format("2006-01-02"), f)
}

func sanitizeFileComponent(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '"' || r == '*' || r == '?' || r == '<' || r == '>' || r == '|':
			return '-'
		case r < 0x20:
			return -1
		}
		return r
	}, s)
}
