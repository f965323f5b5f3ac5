package report

import (
	"sort"
	"strings"

	"shiftdesk/internal/model"
	"shiftdesk/pkg/textnorm"
)

// Index 员工目录的三路查找表：按员工 ID、按账号 ID、按规范化姓名
// 键均为字符串；重复键以后写入者为准
type Index struct {
	byID      map[string]model.EmployeeRecord
	byAccount map[string]model.EmployeeRecord
	byName    map[string]model.EmployeeRecord
}

// BuildIndex 由员工列表构建索引，空列表得到三张空表
func BuildIndex(employees []model.EmployeeRecord) *Index {
	ix := &Index{
		byID:      make(map[string]model.EmployeeRecord, len(employees)),
		byAccount: make(map[string]model.EmployeeRecord, len(employees)),
		byName:    make(map[string]model.EmployeeRecord, len(employees)),
	}
	for _, e := range employees {
		if id := strings.TrimSpace(e.ID); id != "" {
			ix.byID[id] = e
		}
		if acc := strings.TrimSpace(e.AccountID); acc != "" {
			ix.byAccount[acc] = e
		}
		if name := textnorm.Normalize(e.Name); name != "" {
			ix.byName[name] = e
		}
	}
	return ix
}

// ByID 按员工 ID 查找
func (ix *Index) ByID(id string) (model.EmployeeRecord, bool) {
	if ix == nil {
		return model.EmployeeRecord{}, false
	}
	return lookup(ix.byID, strings.TrimSpace(id))
}

// ByAccount 按账号 ID 查找
func (ix *Index) ByAccount(accountID string) (model.EmployeeRecord, bool) {
	if ix == nil {
		return model.EmployeeRecord{}, false
	}
	return lookup(ix.byAccount, strings.TrimSpace(accountID))
}

// ByName 按规范化姓名查找
func (ix *Index) ByName(name string) (model.EmployeeRecord, bool) {
	if ix == nil {
		return model.EmployeeRecord{}, false
	}
	return lookup(ix.byName, textnorm.Normalize(name))
}

// Len 返回三张表的条目数
func (ix *Index) Len() (byID, byAccount, byName int) {
	if ix == nil {
		return 0, 0, 0
	}
	return len(ix.byID), len(ix.byAccount), len(ix.byName)
}

func lookup(m map[string]model.EmployeeRecord, key string) (model.EmployeeRecord, bool) {
	if key == "" {
		return model.EmployeeRecord{}, false
	}
	e, ok := m[key]
	return e, ok
}

// ── 部门/岗位解析 ──

// ResolveDepartment 解析排班所属部门
// 顺序：排班自带字段 → 员工 ID 查找 → 账号 ID 查找 → 姓名查找，首个非空结果即返回
func ResolveDepartment(s *model.ShiftRecord, ix *Index) string {
	return resolve(s, ix, s.Department, func(e model.EmployeeRecord) string { return e.Department })
}

// ResolvePosition 解析排班岗位，顺序同 ResolveDepartment
func ResolvePosition(s *model.ShiftRecord, ix *Index) string {
	return resolve(s, ix, s.Position, func(e model.EmployeeRecord) string { return e.Position })
}

func resolve(s *model.ShiftRecord, ix *Index, direct string, pick func(model.EmployeeRecord) string) string {
	if v := strings.TrimSpace(direct); v != "" {
		return v
	}
	lookups := []func() (model.EmployeeRecord, bool){
		func() (model.EmployeeRecord, bool) { return ix.ByID(s.EmployeeID) },
		func() (model.EmployeeRecord, bool) { return ix.ByAccount(s.AccountID) },
		func() (model.EmployeeRecord, bool) { return ix.ByName(s.EmployeeName) },
	}
	for _, find := range lookups {
		if e, ok := find(); ok {
			if v := strings.TrimSpace(pick(e)); v != "" {
				return v
			}
		}
	}
	return ""
}

// Departments 返回员工目录中出现的部门名称（按规范化形式去重、排序）
func Departments(employees []model.EmployeeRecord) []string {
	seen := make(map[string]string)
	for _, e := range employees {
		name := strings.TrimSpace(e.Department)
		key := textnorm.Normalize(name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; !ok {
			seen[key] = name
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, seen[k])
	}
	return out
}
