package service

import (
	"go.uber.org/zap"

	"shiftdesk/config"
	"shiftdesk/internal/export"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Report ReportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	source Source,
	cache SnapshotCache,
	logger *zap.Logger,
) *Service {
	exporter := export.NewExporter(export.Options{
		LogoPath:    cfg.Report.LogoPath,
		LogoWidthPx: cfg.Report.LogoWidthPx,
	}, logger)

	return &Service{
		Report: NewReportService(source, cache, exporter, ReportOptions{
			CompanyName: cfg.Report.CompanyName,
			Location:    cfg.Report.Location(),
			SnapshotTTL: cfg.Redis.SnapshotTTL,
		}, logger),
	}
}
