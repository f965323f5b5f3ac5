package dto

import (
	"time"

	"shiftdesk/internal/report"
)

// ── 工时报表模块 DTO ──
//
// 日期参数为空时不在绑定层拦截，由 Service 统一返回 "输入不完整"

// DepartmentReportRequest 部门工时报表查询参数
type DepartmentReportRequest struct {
	Department string `form:"department" binding:"omitempty,max=100"`
	StartDate  string `form:"start_date" binding:"omitempty,isodate"`
	EndDate    string `form:"end_date"   binding:"omitempty,isodate"`
}

// ExportDepartmentReportRequest 部门报表导出参数；format 为空时导出 PDF
type ExportDepartmentReportRequest struct {
	DepartmentReportRequest
	Format string `form:"format" binding:"omitempty,oneof=pdf xlsx excel csv"`
}

// EmployeeReportRequest 个人工时报表查询参数；employee 可为员工 ID、账号 ID 或姓名
type EmployeeReportRequest struct {
	Employee  string `form:"employee"   binding:"omitempty,max=150"`
	StartDate string `form:"start_date" binding:"omitempty,isodate"`
	EndDate   string `form:"end_date"   binding:"omitempty,isodate"`
}

// ExportEmployeeReportRequest 个人报表导出参数
type ExportEmployeeReportRequest struct {
	EmployeeReportRequest
	Format string `form:"format" binding:"omitempty,oneof=pdf xlsx excel csv"`
}

// DepartmentReportResponse 部门工时报表响应
//
// Report 为 null 表示所选条件下没有排班（空状态，不是错误），此时 Message 给出提示。
// EmployeeError 非空表示员工目录获取失败，依赖目录解析部门的排班可能被排除
type DepartmentReportResponse struct {
	Generation    uint64         `json:"generation"`
	Department    string         `json:"department"`
	StartDate     string         `json:"start_date"`
	EndDate       string         `json:"end_date"`
	Report        *report.Result `json:"report"`
	Message       string         `json:"message,omitempty"`
	EmployeeError string         `json:"employee_error,omitempty"`
	GeneratedAt   time.Time      `json:"generated_at"`
}

// EmployeeReportResponse 个人工时报表响应
type EmployeeReportResponse struct {
	Employee      string         `json:"employee"`
	StartDate     string         `json:"start_date"`
	EndDate       string         `json:"end_date"`
	Report        *report.Detail `json:"report"`
	Message       string         `json:"message,omitempty"`
	EmployeeError string         `json:"employee_error,omitempty"`
	GeneratedAt   time.Time      `json:"generated_at"`
}

// DepartmentOptionsResponse 部门下拉选项
type DepartmentOptionsResponse struct {
	List          []string `json:"list"`
	EmployeeError string   `json:"employee_error,omitempty"`
}
