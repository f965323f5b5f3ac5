package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"shiftdesk/internal/model"
	"shiftdesk/pkg/redis"
)

// ── Mock Source ──

type mockSource struct {
	mu           sync.Mutex
	shifts       []model.ShiftRecord
	employees    []model.EmployeeRecord
	shiftsErr    error
	employeesErr error
	shiftCalls   int
	lastCred     model.Credential
}

func newMockSource() *mockSource {
	hours := func(h float64) *float64 { return &h }
	return &mockSource{
		shifts: []model.ShiftRecord{
			{ID: "s1", EmployeeID: "1", EmployeeName: "Ana Gómez", Date: "2024-03-04", DurationHours: hours(4.5), Department: "ATENCION AL CLIENTE"},
			{ID: "s2", EmployeeID: "1", EmployeeName: "Ana Gómez", Date: "2024-03-05", StartTime: "09:00", EndTime: "12:15"},
			{ID: "s3", EmployeeID: "2", EmployeeName: "Luis Pérez", Date: "2024-03-05", StartTime: "22:00", EndTime: "06:00"},
			{ID: "s4", AccountID: "u-3", EmployeeName: "Marta Ruiz", Date: "2024-03-06", StartTime: "08:00", EndTime: "16:00"},
			{ID: "s5", EmployeeID: "2", EmployeeName: "Luis Pérez", Date: "2024-04-01", StartTime: "08:00", EndTime: "12:00"},
		},
		employees: []model.EmployeeRecord{
			{ID: "1", AccountID: "u-1", Name: "Ana Gómez", Department: "Atención al Cliente", Position: "Agente"},
			{ID: "2", AccountID: "u-2", Name: "Luis Pérez", Department: "Atención al Cliente", Position: "Supervisor"},
			{ID: "3", AccountID: "u-3", Name: "Marta Ruiz", Department: "Ventas", Position: "Vendedora"},
		},
	}
}

func (m *mockSource) ListShifts(_ context.Context, cred model.Credential) ([]model.ShiftRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shiftCalls++
	m.lastCred = cred
	if m.shiftsErr != nil {
		return nil, m.shiftsErr
	}
	return m.shifts, nil
}

func (m *mockSource) ListEmployees(_ context.Context, _ model.Credential) ([]model.EmployeeRecord, error) {
	if m.employeesErr != nil {
		return nil, m.employeesErr
	}
	return m.employees, nil
}

func (m *mockSource) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shiftCalls
}

// ── Mock SnapshotCache ──

type mockCache struct {
	mu      sync.Mutex
	entries map[string]any
	sets    int
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]any)}
}

func (c *mockCache) GetJSON(_ context.Context, key string, dst any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if !ok {
		return redis.ErrCacheMiss
	}
	snap, ok := v.(*snapshot)
	target, ok2 := dst.(*snapshot)
	if !ok || !ok2 {
		return errors.New("unexpected type")
	}
	*target = *snap
	return nil
}

func (c *mockCache) SetJSON(_ context.Context, key string, v any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = v
	c.sets++
	return nil
}
