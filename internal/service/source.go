package service

import (
	"context"
	"fmt"

	"shiftdesk/internal/model"
	"shiftdesk/internal/repository"
)

// Source 排班与员工数据来源
//
// 凭证由调用方显式传入；上游 API 客户端（upstream.Client）直接实现本接口
type Source interface {
	ListShifts(ctx context.Context, cred model.Credential) ([]model.ShiftRecord, error)
	ListEmployees(ctx context.Context, cred model.Credential) ([]model.EmployeeRecord, error)
}

// ── 数据库数据源 ──

type dbSource struct {
	repo *repository.Repository
}

// NewDBSource 基于 employees / shifts 表的数据源，忽略调用方凭证
func NewDBSource(repo *repository.Repository) Source {
	return &dbSource{repo: repo}
}

func (s *dbSource) ListShifts(ctx context.Context, _ model.Credential) ([]model.ShiftRecord, error) {
	rows, err := s.repo.Shift.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询排班失败: %w", err)
	}
	out := make([]model.ShiftRecord, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToRecord())
	}
	return out, nil
}

func (s *dbSource) ListEmployees(ctx context.Context, _ model.Credential) ([]model.EmployeeRecord, error) {
	rows, err := s.repo.Employee.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询员工失败: %w", err)
	}
	out := make([]model.EmployeeRecord, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToRecord())
	}
	return out, nil
}

// ── 静态数据源 ──

// StaticSource 内存数据源，离线导入（reportctl --shifts）使用
type StaticSource struct {
	Shifts       []model.ShiftRecord
	Employees    []model.EmployeeRecord
	EmployeesErr error
}

func (s *StaticSource) ListShifts(_ context.Context, _ model.Credential) ([]model.ShiftRecord, error) {
	return s.Shifts, nil
}

func (s *StaticSource) ListEmployees(_ context.Context, _ model.Credential) ([]model.EmployeeRecord, error) {
	if s.EmployeesErr != nil {
		return nil, s.EmployeesErr
	}
	return s.Employees, nil
}
