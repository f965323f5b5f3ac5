package export

import (
	"time"

	"shiftdesk/internal/report"
)

// 报表文件名中的类别
const (
	KindDepartment = "departamento"
	KindEmployee   = "empleado"
)

// NoDepartment 行内部门为空时的占位文本
const NoDepartment = "Sin departamento"

// Period 报表期间
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) label() string {
	return p.Start.Format(DisplayDateLayout) + " - " + p.End.Format(DisplayDateLayout)
}

// DepartmentColumns 部门报表列：员工 / 部门 / 岗位 / 总工时 / 班次数（30/25/25/12/8）
var DepartmentColumns = []Column{
	{Header: "Empleado", Ratio: 0.30, Kind: KindText},
	{Header: "Departamento", Ratio: 0.25, Kind: KindText},
	{Header: "Cargo", Ratio: 0.25, Kind: KindText},
	{Header: "Total horas", Ratio: 0.12, Kind: KindHours},
	{Header: "Turnos", Ratio: 0.08, Kind: KindCount},
}

// EmployeeColumns 个人报表列
var EmployeeColumns = []Column{
	{Header: "Fecha", Ratio: 0.16, Kind: KindDate},
	{Header: "Entrada", Ratio: 0.12, Kind: KindText},
	{Header: "Salida", Ratio: 0.12, Kind: KindText},
	{Header: "Departamento", Ratio: 0.25, Kind: KindText},
	{Header: "Cargo", Ratio: 0.23, Kind: KindText},
	{Header: "Horas", Ratio: 0.12, Kind: KindHours},
}

// DepartmentDocument 由部门聚合结果构造导出文档
func DepartmentDocument(department, company string, period Period, res report.Result, now time.Time) *Document {
	doc := &Document{
		Title:    "Reporte de Horas por Departamento",
		Subtitle: company,
		Meta: []Field{
			{Label: "Departamento", Value: department},
			{Label: "Período", Value: period.label()},
		},
		Metrics: []Field{
			{Label: "Total de horas", Value: res.Summary.TotalHours},
			{Label: "Empleados", Value: res.Summary.EmployeeCount},
			{Label: "Promedio por empleado", Value: res.Summary.AverageHours},
		},
		Columns:      DepartmentColumns,
		Rows:         make([][]any, 0, len(res.Rows)),
		EmptyMessage: "No se encontraron turnos para el departamento y período seleccionados.",
		SheetName:    "Reporte",
		GeneratedAt:  now,
	}
	for _, r := range res.Rows {
		dept := r.Department
		if dept == "" {
			dept = NoDepartment
		}
		doc.Rows = append(doc.Rows, []any{r.Employee, dept, r.Position, r.TotalHours, r.Shifts})
	}
	return doc
}

// EmployeeDocument 由个人明细构造导出文档
func EmployeeDocument(company string, period Period, d report.Detail, now time.Time) *Document {
	doc := &Document{
		Title:    "Reporte de Horas por Empleado",
		Subtitle: company,
		Meta: []Field{
			{Label: "Empleado", Value: d.Employee},
			{Label: "Período", Value: period.label()},
		},
		Metrics: []Field{
			{Label: "Total de horas", Value: d.Summary.TotalHours},
			{Label: "Turnos", Value: d.Summary.ShiftCount},
			{Label: "Promedio por turno", Value: d.Summary.AverageHours},
		},
		Columns:      EmployeeColumns,
		Rows:         make([][]any, 0, len(d.Lines)),
		EmptyMessage: "No se encontraron turnos para el empleado y período seleccionados.",
		SheetName:    "Reporte",
		GeneratedAt:  now,
	}
	for _, l := range d.Lines {
		dept := l.Department
		if dept == "" {
			dept = NoDepartment
		}
		doc.Rows = append(doc.Rows, []any{l.Date, l.Start, l.End, dept, l.Position, l.Hours})
	}
	return doc
}
