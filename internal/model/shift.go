package model

import "time"

// Shift 排班表，对应 shifts（db 数据源）
type Shift struct {
	ShiftID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	EmployeeID     *int64    `gorm:"index"                                          json:"employee_id,omitempty"`
	AccountID      string    `gorm:"type:varchar(64)"                               json:"account_id,omitempty"`
	EmployeeName   string    `gorm:"type:varchar(150)"                              json:"employee_name,omitempty"`
	ShiftDate      time.Time `gorm:"type:date;not null;index"                       json:"shift_date"`
	StartTime      string    `gorm:"type:varchar(8)"                                json:"start_time"` // HH:MM
	EndTime        string    `gorm:"type:varchar(8)"                                json:"end_time"`
	DurationHours  *float64  `gorm:"type:numeric(6,2)"                              json:"duration_hours,omitempty"`
	DepartmentName string    `gorm:"type:varchar(100)"                              json:"department_name,omitempty"`
	PositionName   string    `gorm:"type:varchar(100)"                              json:"position_name,omitempty"`
	SoftDeleteModel

	// 关联
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName 指定表名
func (Shift) TableName() string { return "shifts" }

// ToRecord 转为报表使用的 ShiftRecord
// 排班行本身的部门/岗位为空时保持为空，由报表按员工目录补全
func (s *Shift) ToRecord() ShiftRecord {
	rec := ShiftRecord{
		ID:            s.ShiftID,
		AccountID:     s.AccountID,
		EmployeeName:  s.EmployeeName,
		Date:          s.ShiftDate.Format("2006-01-02"),
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		DurationHours: s.DurationHours,
		Department:    s.DepartmentName,
		Position:      s.PositionName,
	}
	if s.EmployeeID != nil {
		rec.EmployeeID = CoerceString(*s.EmployeeID)
	}
	if rec.EmployeeName == "" && s.Employee != nil {
		rec.EmployeeName = s.Employee.Name
	}
	return rec
}
