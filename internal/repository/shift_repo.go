package repository

import (
	"context"

	"gorm.io/gorm"

	"shiftdesk/internal/model"
)

// ShiftRepository 排班数据访问接口
type ShiftRepository interface {
	ListAll(ctx context.Context) ([]model.Shift, error)
}

// shiftRepo ShiftRepository 的 GORM 实现
type shiftRepo struct {
	db *gorm.DB
}

// NewShiftRepo 创建 ShiftRepository 实例
func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db: db}
}

func (r *shiftRepo) ListAll(ctx context.Context) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Order("shift_date ASC, start_time ASC").
		Find(&shifts).Error
	return shifts, err
}
