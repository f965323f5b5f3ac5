// Package importer 从离线文件（.xlsx / .xls / .csv）读取排班与员工列表。
// 首行为表头，表头文本即记录字段名，因此与上游 API 共用同一套别名解析
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"shiftdesk/internal/model"
)

var (
	ErrUnsupportedFile = errors.New("不支持的文件类型")
	ErrNoWorksheet     = errors.New("文件中没有工作表")
	ErrEmptySheet      = errors.New("工作表为空")
)

// xls 单表最大读取行数
const maxXLSRows = 100000

// Excel 日期序列号的合理范围（约 1954 - 2119 年）
const (
	minDateSerial = 20000
	maxDateSerial = 80000
)

var (
	dateHeaders  = map[string]bool{"date": true, "shift_date": true, "shiftdate": true, "fecha": true}
	clockHeaders = map[string]bool{
		"start_time": true, "starttime": true, "start": true, "hora_inicio": true,
		"end_time": true, "endtime": true, "end": true, "hora_fin": true,
	}
)

// ReadShiftsFile 读取排班文件
func ReadShiftsFile(path string) ([]model.ShiftRecord, error) {
	raws, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return model.DecodeShifts(raws), nil
}

// ReadEmployeesFile 读取员工文件
func ReadEmployeesFile(path string) ([]model.EmployeeRecord, error) {
	raws, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return model.DecodeEmployees(raws), nil
}

// ReadFile 打开文件并按扩展名解析为记录
func ReadFile(path string) ([]map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开文件失败: %w", err)
	}
	defer f.Close()
	return Read(f, filepath.Base(path))
}

// Read 解析文件内容；filename 仅用于判断格式
func Read(r io.Reader, filename string) ([]map[string]any, error) {
	rows, err := readRows(r, filename)
	if err != nil {
		return nil, err
	}
	return toRecords(rows), nil
}

func readRows(r io.Reader, filename string) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("读取文件失败: %w", err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		cr := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
		cr.FieldsPerRecord = -1
		cr.TrimLeadingSpace = true
		rows, err := cr.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("解析 CSV 失败: %w", err)
		}
		if len(rows) == 0 {
			return nil, ErrEmptySheet
		}
		return rows, nil

	case ".xls":
		wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, fmt.Errorf("解析 xls 失败: %w", err)
		}
		if wb.NumSheets() == 0 {
			return nil, ErrNoWorksheet
		}
		rows := wb.ReadAllCells(maxXLSRows)
		if len(rows) == 0 {
			return nil, ErrEmptySheet
		}
		return rows, nil

	case ".xlsx", ".xlsm":
		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("解析 xlsx 失败: %w", err)
		}
		defer func() { _ = f.Close() }()

		sheet := f.GetSheetName(0)
		if sheet == "" {
			return nil, ErrNoWorksheet
		}
		// 原始值：日期与时刻以序列号返回，由 toRecords 统一转换
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("读取工作表失败: %w", err)
		}
		if len(rows) == 0 {
			return nil, ErrEmptySheet
		}
		return rows, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filename)
}

// toRecords 首行作为表头，其余行映射为记录；空行跳过，空单元格不写入
func toRecords(rows [][]string) []map[string]any {
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	out := make([]map[string]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]any, len(header))
		for i, key := range header {
			if key == "" || i >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[i])
			if v == "" {
				continue
			}
			rec[key] = convertCell(key, v)
		}
		if len(rec) > 0 {
			out = append(out, rec)
		}
	}
	return out
}

// convertCell 将 Excel 序列号形式的日期、时刻转换为文本
func convertCell(key, v string) string {
	k := strings.ToLower(key)
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v
	}
	switch {
	case dateHeaders[k] && n >= minDateSerial && n <= maxDateSerial:
		if t, err := excelize.ExcelDateToTime(n, false); err == nil {
			return t.Format("2006-01-02")
		}
	case clockHeaders[k] && n >= 0 && n < 1:
		mins := int(n*24*60 + 0.5)
		return fmt.Sprintf("%02d:%02d", mins/60%24, mins%60)
	}
	return v
}
