package report

import (
	"strings"

	"shiftdesk/internal/model"
	"shiftdesk/pkg/textnorm"
)

// FilterByDepartment 筛选日期在闭区间内、且解析出的部门与目标部门规范化后完全相等的排班
//
// 无法解析日期或部门的排班一律排除。部门比较使用完全相等而非子串包含，
// "Atención" 不会命中 "Atención al Cliente"
func FilterByDepartment(shifts []model.ShiftRecord, r DateRange, department string, ix *Index) []model.ShiftRecord {
	out := make([]model.ShiftRecord, 0)
	target := textnorm.Normalize(department)
	if target == "" {
		return out
	}
	for i := range shifts {
		s := &shifts[i]
		if !inRange(s, r) {
			continue
		}
		dept := ResolveDepartment(s, ix)
		if dept == "" || textnorm.Normalize(dept) != target {
			continue
		}
		out = append(out, *s)
	}
	return out
}

// FilterByEmployee 筛选日期在闭区间内、且属于指定员工的排班
//
// key 可以是员工 ID、账号 ID 或姓名；若 key 能在索引中命中员工，
// 该员工的其余标识同样参与匹配
func FilterByEmployee(shifts []model.ShiftRecord, r DateRange, key string, ix *Index) []model.ShiftRecord {
	out := make([]model.ShiftRecord, 0)
	m := newEmployeeMatcher(key, ix)
	if m.empty() {
		return out
	}
	for i := range shifts {
		s := &shifts[i]
		if !inRange(s, r) || !m.match(s) {
			continue
		}
		out = append(out, *s)
	}
	return out
}

func inRange(s *model.ShiftRecord, r DateRange) bool {
	d, ok := ShiftDate(s.Date, s.StartTime)
	return ok && r.Contains(d)
}

type employeeMatcher struct {
	ids      map[string]bool
	accounts map[string]bool
	names    map[string]bool
}

func newEmployeeMatcher(key string, ix *Index) employeeMatcher {
	m := employeeMatcher{
		ids:      make(map[string]bool),
		accounts: make(map[string]bool),
		names:    make(map[string]bool),
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return m
	}
	m.add(model.EmployeeRecord{ID: key, AccountID: key, Name: key})
	if e, ok := ix.ByID(key); ok {
		m.add(e)
	}
	if e, ok := ix.ByAccount(key); ok {
		m.add(e)
	}
	if e, ok := ix.ByName(key); ok {
		m.add(e)
	}
	return m
}

func (m employeeMatcher) add(e model.EmployeeRecord) {
	if v := strings.TrimSpace(e.ID); v != "" {
		m.ids[v] = true
	}
	if v := strings.TrimSpace(e.AccountID); v != "" {
		m.accounts[v] = true
	}
	if v := textnorm.Normalize(e.Name); v != "" {
		m.names[v] = true
	}
}

func (m employeeMatcher) empty() bool {
	return len(m.ids) == 0 && len(m.accounts) == 0 && len(m.names) == 0
}

func (m employeeMatcher) match(s *model.ShiftRecord) bool {
	if id := strings.TrimSpace(s.EmployeeID); id != "" && m.ids[id] {
		return true
	}
	if acc := strings.TrimSpace(s.AccountID); acc != "" && m.accounts[acc] {
		return true
	}
	if name := textnorm.Normalize(s.EmployeeName); name != "" && m.names[name] {
		return true
	}
	return false
}
