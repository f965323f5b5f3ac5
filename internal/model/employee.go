package model

// Employee 员工表，对应 employees（db 数据源）
type Employee struct {
	EmployeeID     int64  `gorm:"primaryKey;autoIncrement"        json:"employee_id"`
	AccountID      string `gorm:"type:varchar(64);index"          json:"account_id"`
	Name           string `gorm:"type:varchar(150);not null"      json:"name"`
	DepartmentName string `gorm:"type:varchar(100)"               json:"department_name"`
	PositionName   string `gorm:"type:varchar(100)"               json:"position_name"`
	IsActive       bool   `gorm:"not null;default:true"           json:"is_active"`
	SoftDeleteModel
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// ToRecord 转为报表使用的 EmployeeRecord
func (e *Employee) ToRecord() EmployeeRecord {
	return EmployeeRecord{
		ID:         CoerceString(e.EmployeeID),
		AccountID:  e.AccountID,
		Name:       e.Name,
		Department: e.DepartmentName,
		Position:   e.PositionName,
	}
}
