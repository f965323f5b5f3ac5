package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"go.uber.org/zap"
)

// CSV 渲染 CSV：标题与元信息行、空行、表头行、数据行（无数据时为空状态说明）
// 含逗号、引号或换行的字段按 RFC 4180 加引号
func (e *Exporter) CSV(doc *Document) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	records := [][]string{{doc.Title}}
	if doc.Subtitle != "" {
		records = append(records, []string{doc.Subtitle})
	}
	for _, m := range doc.Meta {
		records = append(records, []string{m.Label, FormatValue(m.Value)})
	}
	for _, m := range doc.Metrics {
		records = append(records, []string{m.Label, FormatValue(m.Value)})
	}
	records = append(records, []string{})

	header := make([]string, len(doc.Columns))
	for i, c := range doc.Columns {
		header[i] = c.Header
	}
	records = append(records, header)
	if len(doc.Rows) == 0 && doc.EmptyMessage != "" {
		records = append(records, []string{doc.EmptyMessage})
	}

	for _, row := range doc.Rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = FormatValue(v)
		}
		records = append(records, rec)
	}

	if err := w.WriteAll(records); err != nil {
		e.logger.Error("写入 CSV 失败", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf, nil
}
