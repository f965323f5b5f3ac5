package report

import (
	"sort"
	"strings"
	"time"

	"shiftdesk/internal/model"
)

// DetailLine 个人报表中的单条排班
type DetailLine struct {
	Date       time.Time `json:"date"`
	Start      string    `json:"start"`
	End        string    `json:"end"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	Hours      float64   `json:"hours"`
}

// DetailSummary 个人报表汇总
type DetailSummary struct {
	TotalHours   float64 `json:"total_hours"`
	ShiftCount   int     `json:"shift_count"`
	AverageHours float64 `json:"average_hours_per_shift"`
}

// Detail 个人工时报表
type Detail struct {
	Employee string        `json:"employee"`
	Lines    []DetailLine  `json:"lines"`
	Summary  DetailSummary `json:"summary"`
}

// Empty 无任何排班
func (d *Detail) Empty() bool {
	return d == nil || len(d.Lines) == 0
}

// BuildDetail 为已按员工筛选的排班生成逐条明细，按日期与开始时刻排序
// fallbackName 用于排班本身没有姓名时的展示
func BuildDetail(shifts []model.ShiftRecord, ix *Index, fallbackName string) Detail {
	d := Detail{Lines: make([]DetailLine, 0, len(shifts))}
	for i := range shifts {
		s := &shifts[i]
		date, _ := ShiftDate(s.Date, s.StartTime)
		if d.Employee == "" {
			d.Employee = strings.TrimSpace(s.EmployeeName)
		}
		line := DetailLine{
			Date:       date,
			Start:      ClockLabel(s.StartTime),
			End:        ClockLabel(s.EndTime),
			Department: ResolveDepartment(s, ix),
			Position:   ResolvePosition(s, ix),
			Hours:      ShiftHours(s),
		}
		d.Lines = append(d.Lines, line)
		d.Summary.TotalHours = addRounded(d.Summary.TotalHours, line.Hours)
	}

	sort.SliceStable(d.Lines, func(i, j int) bool {
		if !d.Lines[i].Date.Equal(d.Lines[j].Date) {
			return d.Lines[i].Date.Before(d.Lines[j].Date)
		}
		return d.Lines[i].Start < d.Lines[j].Start
	})

	if d.Employee == "" {
		d.Employee = strings.TrimSpace(fallbackName)
	}
	if d.Employee == "" {
		d.Employee = UnnamedEmployee
	}
	d.Summary.ShiftCount = len(d.Lines)
	if d.Summary.ShiftCount > 0 {
		d.Summary.AverageHours = Round2(d.Summary.TotalHours / float64(d.Summary.ShiftCount))
	}
	return d
}
