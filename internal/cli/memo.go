package cli

import (
	"context"
	"sync"

	"shiftdesk/internal/model"
	"shiftdesk/internal/service"
)

// memoSource 一次命令内只请求一次在线数据源，多个导出格式共用同一份数据
type memoSource struct {
	inner service.Source

	shiftsOnce    sync.Once
	shifts        []model.ShiftRecord
	shiftsErr     error
	employeesOnce sync.Once
	employees     []model.EmployeeRecord
	employeesErr  error
}

func (m *memoSource) ListShifts(ctx context.Context, cred model.Credential) ([]model.ShiftRecord, error) {
	m.shiftsOnce.Do(func() {
		m.shifts, m.shiftsErr = m.inner.ListShifts(ctx, cred)
	})
	return m.shifts, m.shiftsErr
}

func (m *memoSource) ListEmployees(ctx context.Context, cred model.Credential) ([]model.EmployeeRecord, error) {
	m.employeesOnce.Do(func() {
		m.employees, m.employeesErr = m.inner.ListEmployees(ctx, cred)
	})
	return m.employees, m.employeesErr
}
