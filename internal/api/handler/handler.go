package handler

import "shiftdesk/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Report *ReportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Report: NewReportHandler(svc.Report),
	}
}
