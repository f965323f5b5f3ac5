package service

import (
	"sync"

	"shiftdesk/internal/dto"
)

// generationTracker 为每个调用方分配单调递增的生成号
//
// 生成完成后只有在该调用方没有开始更新的生成时才会发布，过期结果被丢弃
type generationTracker struct {
	mu        sync.Mutex
	next      uint64
	started   map[string]uint64
	published map[string]*dto.DepartmentReportResponse
}

func newGenerationTracker() *generationTracker {
	return &generationTracker{
		started:   make(map[string]uint64),
		published: make(map[string]*dto.DepartmentReportResponse),
	}
}

// begin 开始一次生成，返回其生成号
func (g *generationTracker) begin(caller string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	g.started[caller] = g.next
	return g.next
}

// publish 发布生成结果；若期间已有更新的生成开始则返回 false
func (g *generationTracker) publish(caller string, gen uint64, res *dto.DepartmentReportResponse) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.started[caller] != gen {
		return false
	}
	g.published[caller] = res
	return true
}

// latest 返回调用方最近一次发布的结果
func (g *generationTracker) latest(caller string) (*dto.DepartmentReportResponse, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	res, ok := g.published[caller]
	return res, ok
}
