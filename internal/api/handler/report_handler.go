package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"shiftdesk/internal/dto"
	"shiftdesk/internal/service"
	"shiftdesk/pkg/response"
)

// ReportHandler 工时报表模块 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// ListDepartments 部门下拉选项
// GET /api/v1/reports/departments
func (h *ReportHandler) ListDepartments(c *gin.Context) {
	cred, ok := MustGetCredential(c)
	if !ok {
		return
	}

	result, err := h.reportSvc.Departments(c.Request.Context(), cred)
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	response.OK(c, result)
}

// GetDepartmentReport 部门工时报表
// GET /api/v1/reports/department?department=xxx&start_date=2024-03-01&end_date=2024-03-31
func (h *ReportHandler) GetDepartmentReport(c *gin.Context) {
	cred, ok := MustGetCredential(c)
	if !ok {
		return
	}

	var req dto.DepartmentReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败: "+err.Error())
		return
	}

	result, err := h.reportSvc.DepartmentReport(c.Request.Context(), cred, &req)
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	response.OK(c, result)
}

// GetLatestDepartmentReport 调用方最近一次生成的部门报表
// GET /api/v1/reports/department/latest
func (h *ReportHandler) GetLatestDepartmentReport(c *gin.Context) {
	cred, ok := MustGetCredential(c)
	if !ok {
		return
	}

	result, err := h.reportSvc.LatestDepartmentReport(c.Request.Context(), cred)
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	response.OK(c, result)
}

// ExportDepartmentReport 导出部门报表
// GET /api/v1/reports/department/export?department=xxx&start_date=...&end_date=...&format=pdf|xlsx|csv
func (h *ReportHandler) ExportDepartmentReport(c *gin.Context) {
	cred, ok := MustGetCredential(c)
	if !ok {
		return
	}

	var req dto.ExportDepartmentReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败: "+err.Error())
		return
	}

	file, err := h.reportSvc.ExportDepartmentReport(c.Request.Context(), cred, &req)
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	writeDownload(c, file)
}

// GetEmployeeReport 个人工时报表
// GET /api/v1/reports/employee?employee=xxx&start_date=...&end_date=...
func (h *ReportHandler) GetEmployeeReport(c *gin.Context) {
	cred, ok := MustGetCredential(c)
	if !ok {
		return
	}

	var req dto.EmployeeReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败: "+err.Error())
		return
	}

	result, err := h.reportSvc.EmployeeReport(c.Request.Context(), cred, &req)
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	response.OK(c, result)
}

// ExportEmployeeReport 导出个人报表
// GET /api/v1/reports/employee/export?employee=xxx&start_date=...&end_date=...&format=pdf|xlsx|csv
func (h *ReportHandler) ExportEmployeeReport(c *gin.Context) {
	cred, ok := MustGetCredential(c)
	if !ok {
		return
	}

	var req dto.ExportEmployeeReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败: "+err.Error())
		return
	}

	file, err := h.reportSvc.ExportEmployeeReport(c.Request.Context(), cred, &req)
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	writeDownload(c, file)
}

// writeDownload 设置下载响应头并写入文件内容
func writeDownload(c *gin.Context, file *service.ExportFile) {
	encodedFilename := url.QueryEscape(file.Filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Data.Bytes())
}

func (h *ReportHandler) handleReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReportInputIncomplete):
		response.BadRequest(c, 17001, "请选择部门并填写起止日期")
	case errors.Is(err, service.ErrReportEmployeeMissing):
		response.BadRequest(c, 17002, "请选择员工并填写起止日期")
	case errors.Is(err, service.ErrReportInvalidDate):
		response.BadRequest(c, 17003, "日期格式应为 YYYY-MM-DD")
	case errors.Is(err, service.ErrReportInvalidRange):
		response.BadRequest(c, 17004, "开始日期不能晚于结束日期")
	case errors.Is(err, service.ErrReportUnknownFormat):
		response.BadRequest(c, 17005, "不支持的导出格式")
	case errors.Is(err, service.ErrReportNoLatest):
		response.NotFound(c, 17006, "尚未生成过部门报表")
	case errors.Is(err, service.ErrReportUnauthorized):
		response.Unauthorized(c, 10002, "上游认证失败，请重新登录")
	case errors.Is(err, service.ErrReportShiftFetch):
		response.BadGateway(c, 17101, "获取排班数据失败，请稍后重试")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
