package export

import (
	"bytes"
	"fmt"

	"go.uber.org/zap"
)

// Options 导出器配置
type Options struct {
	LogoPath    string
	LogoWidthPx int
}

// Exporter 将 Document 渲染为 PDF / Excel / CSV
type Exporter struct {
	opts   Options
	logger *zap.Logger
}

// NewExporter 创建导出器
func NewExporter(opts Options, logger *zap.Logger) *Exporter {
	return &Exporter{opts: opts, logger: logger}
}

// Render 按格式渲染文档，返回文件内容
func (e *Exporter) Render(doc *Document, f Format) (*bytes.Buffer, error) {
	switch f {
	case FormatPDF:
		return e.PDF(doc)
	case FormatXLSX:
		return e.XLSX(doc)
	case FormatCSV:
		return e.CSV(doc)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}
