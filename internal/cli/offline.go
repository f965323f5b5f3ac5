package cli

import (
	"fmt"

	"shiftdesk/internal/importer"
	"shiftdesk/internal/service"
)

// offlineSource 从本地文件读取排班与员工
// 未给员工文件时员工目录为空；员工文件读取失败按目录不可用处理，报表降级继续
func offlineSource(f *sourceFlags) (service.Source, func(), error) {
	src := &service.StaticSource{}

	if f.shiftsFile != "" {
		shifts, err := importer.ReadShiftsFile(f.shiftsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("读取排班文件失败: %w", err)
		}
		src.Shifts = shifts
	}

	if f.employeesFile != "" {
		employees, err := importer.ReadEmployeesFile(f.employeesFile)
		if err != nil {
			src.EmployeesErr = fmt.Errorf("读取员工文件失败: %w", err)
		} else {
			src.Employees = employees
		}
	}

	return src, func() {}, nil
}
