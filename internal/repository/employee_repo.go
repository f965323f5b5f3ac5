package repository

import (
	"context"

	"gorm.io/gorm"

	"shiftdesk/internal/model"
)

// EmployeeRepository 员工目录数据访问接口
type EmployeeRepository interface {
	ListActive(ctx context.Context) ([]model.Employee, error)
}

// employeeRepo EmployeeRepository 的 GORM 实现
type employeeRepo struct {
	db *gorm.DB
}

// NewEmployeeRepo 创建 EmployeeRepository 实例
func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) ListActive(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("employee_id ASC").
		Find(&employees).Error
	return employees, err
}
