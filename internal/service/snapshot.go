package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"shiftdesk/internal/model"
	"shiftdesk/pkg/redis"
)

// SnapshotCache 快照缓存（pkg/redis.Client 实现）
type SnapshotCache interface {
	GetJSON(ctx context.Context, key string, dst any) error
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
}

// snapshot 一次报表生成使用的数据快照
type snapshot struct {
	Shifts    []model.ShiftRecord    `json:"shifts"`
	Employees []model.EmployeeRecord `json:"employees"`
	// 员工目录获取失败时记录原因；此时 Employees 为空列表
	EmployeesErr error `json:"-"`
}

const snapshotKeyPrefix = "report:snapshot:"

// snapshotLoader 并发获取排班与员工列表
//
// 员工列表失败时降级为空列表并保留错误；排班列表失败时整体失败。
// 只有两者都成功时才写入缓存
type snapshotLoader struct {
	source Source
	cache  SnapshotCache
	ttl    time.Duration
	logger *zap.Logger
}

func (l *snapshotLoader) load(ctx context.Context, cred model.Credential) (*snapshot, error) {
	key := snapshotKeyPrefix + cred.Subject
	if l.cache != nil && l.ttl > 0 && cred.Subject != "" {
		var snap snapshot
		err := l.cache.GetJSON(ctx, key, &snap)
		if err == nil {
			l.logger.Debug("命中报表数据快照缓存", zap.String("subject", cred.Subject))
			return &snap, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			l.logger.Warn("读取快照缓存失败", zap.Error(err))
		}
	}

	var (
		wg                      sync.WaitGroup
		shifts                  []model.ShiftRecord
		employees               []model.EmployeeRecord
		shiftsErr, employeesErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		shifts, shiftsErr = l.source.ListShifts(ctx, cred)
	}()
	go func() {
		defer wg.Done()
		employees, employeesErr = l.source.ListEmployees(ctx, cred)
	}()
	wg.Wait()

	if shiftsErr != nil {
		return nil, shiftsErr
	}

	snap := &snapshot{Shifts: shifts, Employees: employees}
	if snap.Shifts == nil {
		snap.Shifts = []model.ShiftRecord{}
	}
	if employeesErr != nil {
		l.logger.Warn("获取员工列表失败，部门解析可能不完整", zap.Error(employeesErr))
		snap.Employees = []model.EmployeeRecord{}
		snap.EmployeesErr = employeesErr
		return snap, nil
	}
	if snap.Employees == nil {
		snap.Employees = []model.EmployeeRecord{}
	}

	if l.cache != nil && l.ttl > 0 && cred.Subject != "" {
		if err := l.cache.SetJSON(ctx, key, snap, l.ttl); err != nil {
			l.logger.Warn("写入快照缓存失败", zap.Error(err))
		}
	}
	return snap, nil
}
