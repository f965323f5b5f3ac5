package report

import (
	"errors"
	"strings"
	"time"
)

// 日期范围相关错误
var (
	ErrDateRangeMissing  = errors.New("开始日期与结束日期均不能为空")
	ErrDateInvalid       = errors.New("日期格式无效，应为 YYYY-MM-DD")
	ErrDateRangeInverted = errors.New("开始日期不能晚于结束日期")
)

// DateLayout 报表筛选使用的日期格式
const DateLayout = "2006-01-02"

var dateLayouts = []string{DateLayout, "02/01/2006", "2006/01/02"}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

var clockLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM"}

// DateRange 闭区间日期范围，Start 与 End 均为当天零点（UTC）
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange 解析 YYYY-MM-DD 格式的起止日期
func ParseDateRange(start, end string) (DateRange, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" || end == "" {
		return DateRange{}, ErrDateRangeMissing
	}
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, ErrDateInvalid
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, ErrDateInvalid
	}
	if s.After(e) {
		return DateRange{}, ErrDateRangeInverted
	}
	return DateRange{Start: s, End: e}, nil
}

// Contains 判断日期是否落在闭区间内
func (r DateRange) Contains(d time.Time) bool {
	d = civil(d)
	return !d.Before(r.Start) && !d.After(r.End)
}

// ShiftDate 解析排班所属日期：优先 Date 字段，其次开始时间戳的日期部分
func ShiftDate(date, start string) (time.Time, bool) {
	if d, ok := parseDate(date); ok {
		return d, true
	}
	if t, ok := parseTimestamp(start); ok {
		return civil(t), true
	}
	return time.Time{}, false
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	// 带时间部分的日期字段，如 "2024-05-01T00:00:00Z"
	if t, ok := parseTimestamp(s); ok {
		return civil(t), true
	}
	return time.Time{}, false
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) < len(DateLayout) {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// clockSeconds 解析时刻为当天秒数，支持 "HH:MM"、"HH:MM:SS" 与完整时间戳
func clockSeconds(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if t, ok := parseTimestamp(s); ok {
		return t.Hour()*3600 + t.Minute()*60 + t.Second(), true
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour()*3600 + t.Minute()*60 + t.Second(), true
		}
	}
	return 0, false
}

// ClockLabel 返回 "HH:MM" 形式的时刻标签，无法解析时原样返回
func ClockLabel(s string) string {
	sec, ok := clockSeconds(s)
	if !ok {
		return strings.TrimSpace(s)
	}
	return time.Date(0, 1, 1, 0, 0, sec, 0, time.UTC).Format("15:04")
}

// civil 保留时间戳书写时的年月日，丢弃时分秒与时区
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
