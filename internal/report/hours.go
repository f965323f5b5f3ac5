package report

import (
	"math"

	"shiftdesk/internal/model"
)

// Round2 四舍五入到两位小数
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// addRounded 累加并将结果保留两位小数
// 单条工时与累计值各舍入一次，与旧版报表保持一致
func addRounded(total, v float64) float64 {
	return Round2(total + v)
}

// ShiftHours 计算单条排班工时
//
// 优先使用显式时长字段；否则由起止时刻之差求得，结束早于开始视为跨零点，加 24 小时。
// 两者皆缺时返回 0
func ShiftHours(s *model.ShiftRecord) float64 {
	if s.DurationHours != nil {
		return Round2(*s.DurationHours)
	}
	start, ok := clockSeconds(s.StartTime)
	if !ok {
		return 0
	}
	end, ok := clockSeconds(s.EndTime)
	if !ok {
		return 0
	}
	diff := float64(end-start) / 3600
	if diff < 0 {
		diff += 24
	}
	return Round2(diff)
}
