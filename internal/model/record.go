package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Credential 调用方凭据，由 Handler 从已验证的 Bearer Token 构造后显式传递给数据源
type Credential struct {
	Token   string
	Subject string
}

// ShiftRecord 单条排班记录的规范化视图
//
// 上游 API 对同一字段使用多种命名（employee_id / employeeId / employee_db_id 等），
// 由 DecodeShift 统一映射到本结构
type ShiftRecord struct {
	ID            string   `json:"id"`
	EmployeeID    string   `json:"employee_id,omitempty"`
	AccountID     string   `json:"account_id,omitempty"`
	EmployeeName  string   `json:"employee_name,omitempty"`
	Date          string   `json:"date,omitempty"`
	StartTime     string   `json:"start_time,omitempty"` // "HH:MM" 或完整时间戳
	EndTime       string   `json:"end_time,omitempty"`
	DurationHours *float64 `json:"duration_hours,omitempty"`
	Department    string   `json:"department,omitempty"`
	Position      string   `json:"position,omitempty"`
}

// EmployeeRecord 员工目录条目，仅作为补全排班部门/岗位的关联目标
type EmployeeRecord struct {
	ID         string `json:"id"`
	AccountID  string `json:"account_id,omitempty"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
}

// ── 字段别名表 ──

var (
	shiftIDKeys         = []string{"id", "shift_id", "shiftId", "_id"}
	shiftEmployeeIDKeys = []string{"employee_id", "employeeId", "employee_db_id", "employeeDbId", "employee.id"}
	shiftAccountIDKeys  = []string{"user_id", "userId", "account_id", "accountId", "employee.user_id", "employee.userId"}
	shiftNameKeys       = []string{"employee_name", "employeeName", "name", "full_name", "fullName", "employee.name", "employee.full_name", "employee"}
	shiftDateKeys       = []string{"date", "shift_date", "shiftDate", "fecha"}
	shiftStartKeys      = []string{"start_time", "startTime", "start", "start_at", "startAt", "hora_inicio"}
	shiftEndKeys        = []string{"end_time", "endTime", "end", "end_at", "endAt", "hora_fin"}
	shiftDurationKeys   = []string{"duration_hours", "durationHours", "hours", "duration", "total_hours", "totalHours", "horas"}
	departmentKeys      = []string{"department", "department_name", "departmentName", "departamento", "employee.department", "employee.department_name"}
	positionKeys        = []string{"position", "position_name", "positionName", "cargo", "puesto", "employee.position"}

	employeeIDKeys      = []string{"id", "employee_id", "employeeId", "employee_db_id", "_id"}
	employeeAccountKeys = []string{"user_id", "userId", "account_id", "accountId", "user.id"}
	employeeNameKeys    = []string{"name", "full_name", "fullName", "employee_name", "employeeName", "nombre", "user.name"}
)

// DecodeShift 将上游返回的松散记录映射为 ShiftRecord
func DecodeShift(raw map[string]any) ShiftRecord {
	rec := ShiftRecord{
		ID:           firstString(raw, shiftIDKeys...),
		EmployeeID:   firstString(raw, shiftEmployeeIDKeys...),
		AccountID:    firstString(raw, shiftAccountIDKeys...),
		EmployeeName: firstString(raw, shiftNameKeys...),
		Date:         firstString(raw, shiftDateKeys...),
		StartTime:    firstString(raw, shiftStartKeys...),
		EndTime:      firstString(raw, shiftEndKeys...),
		Department:   firstString(raw, departmentKeys...),
		Position:     firstString(raw, positionKeys...),
	}
	if h, ok := firstNumber(raw, shiftDurationKeys...); ok {
		rec.DurationHours = &h
	}
	return rec
}

// DecodeEmployee 将上游返回的松散记录映射为 EmployeeRecord
func DecodeEmployee(raw map[string]any) EmployeeRecord {
	rec := EmployeeRecord{
		ID:         firstString(raw, employeeIDKeys...),
		AccountID:  firstString(raw, employeeAccountKeys...),
		Name:       firstString(raw, employeeNameKeys...),
		Department: firstString(raw, departmentKeys...),
		Position:   firstString(raw, positionKeys...),
	}
	if rec.Name == "" {
		first := firstString(raw, "first_name", "firstName", "nombres")
		last := firstString(raw, "last_name", "lastName", "apellidos")
		rec.Name = strings.TrimSpace(first + " " + last)
	}
	return rec
}

// DecodeShifts 批量映射
func DecodeShifts(raws []map[string]any) []ShiftRecord {
	out := make([]ShiftRecord, 0, len(raws))
	for _, r := range raws {
		out = append(out, DecodeShift(r))
	}
	return out
}

// DecodeEmployees 批量映射
func DecodeEmployees(raws []map[string]any) []EmployeeRecord {
	out := make([]EmployeeRecord, 0, len(raws))
	for _, r := range raws {
		out = append(out, DecodeEmployee(r))
	}
	return out
}

// ── 内部辅助 ──

// lookup 支持 "employee.name" 形式的嵌套路径
func lookup(raw map[string]any, path string) (any, bool) {
	cur := raw
	parts := strings.Split(path, ".")
	for i, p := range parts {
		v, ok := cur[p]
		if !ok || v == nil {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

func firstString(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := lookup(raw, k)
		if !ok {
			continue
		}
		if s := CoerceString(v); s != "" {
			return s
		}
	}
	return ""
}

func firstNumber(raw map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		v, ok := lookup(raw, k)
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case float32:
			return float64(n), true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		case json.Number:
			if f, err := n.Float64(); err == nil {
				return f, true
			}
		case string:
			s := strings.ReplaceAll(strings.TrimSpace(n), ",", ".")
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// CoerceString 将标量值转为字符串键；整数值的浮点数不带小数部分（12.0 → "12"）
// 对象与数组返回空串
func CoerceString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}
