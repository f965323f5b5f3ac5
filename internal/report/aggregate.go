package report

import (
	"strings"

	"shiftdesk/internal/model"
)

// UnnamedEmployee 排班记录缺少员工姓名时的分组名（展示用占位，不是错误）
const UnnamedEmployee = "Sin nombre"

// Row 按员工聚合的一行
type Row struct {
	Employee   string  `json:"employee"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	TotalHours float64 `json:"total_hours"`
	Shifts     int     `json:"shifts"`
}

// Summary 报表汇总指标
type Summary struct {
	TotalHours    float64 `json:"total_hours"`
	EmployeeCount int     `json:"employee_count"`
	AverageHours  float64 `json:"average_hours_per_employee"`
}

// Result 一次报表生成的结果；每次生成新建，不在生成之间共享
type Result struct {
	Rows    []Row   `json:"rows"`
	Summary Summary `json:"summary"`
}

// Empty 无任何聚合行
func (r *Result) Empty() bool {
	return r == nil || len(r.Rows) == 0
}

// Aggregate 按员工姓名分组聚合已筛选的排班
//
// 行顺序为员工首次出现的顺序。部门/岗位按 ResolveDepartment 的优先级解析，
// 一旦某组取得非空值，后续排班不会覆盖
func Aggregate(shifts []model.ShiftRecord, ix *Index) Result {
	rows := make([]Row, 0)
	pos := make(map[string]int)

	for i := range shifts {
		s := &shifts[i]
		name := strings.TrimSpace(s.EmployeeName)
		if name == "" {
			name = UnnamedEmployee
		}

		idx, ok := pos[name]
		if !ok {
			rows = append(rows, Row{Employee: name})
			idx = len(rows) - 1
			pos[name] = idx
		}
		row := &rows[idx]

		row.TotalHours = addRounded(row.TotalHours, ShiftHours(s))
		row.Shifts++
		if row.Department == "" {
			row.Department = ResolveDepartment(s, ix)
		}
		if row.Position == "" {
			row.Position = ResolvePosition(s, ix)
		}
	}

	return Result{Rows: rows, Summary: Summarize(rows)}
}

// Summarize 由聚合行重新计算汇总：总工时、员工数、人均工时（员工数为 0 时人均为 0）
func Summarize(rows []Row) Summary {
	var total float64
	for _, r := range rows {
		total = addRounded(total, r.TotalHours)
	}
	sum := Summary{TotalHours: total, EmployeeCount: len(rows)}
	if sum.EmployeeCount > 0 {
		sum.AverageHours = Round2(total / float64(sum.EmployeeCount))
	}
	return sum
}
