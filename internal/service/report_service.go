package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"shiftdesk/internal/dto"
	"shiftdesk/internal/export"
	"shiftdesk/internal/model"
	"shiftdesk/internal/report"
	pkgerrors "shiftdesk/pkg/errors"
)

// ── 工时报表模块业务错误 ──

var (
	ErrReportInputIncomplete = errors.New("请选择部门并填写起止日期")
	ErrReportEmployeeMissing = errors.New("请选择员工并填写起止日期")
	ErrReportInvalidDate     = errors.New("日期格式应为 YYYY-MM-DD")
	ErrReportInvalidRange    = errors.New("开始日期不能晚于结束日期")
	ErrReportShiftFetch      = errors.New("获取排班数据失败")
	ErrReportUnauthorized    = pkgerrors.ErrUpstreamUnauthorized
	ErrReportUnknownFormat   = errors.New("不支持的导出格式")
	ErrReportNoLatest        = errors.New("尚未生成过部门报表")
	ErrExportGenerateFail    = errors.New("生成导出文件失败")
)

// 空状态提示
const (
	msgDepartmentNoData = "所选部门在该期间没有排班记录"
	msgEmployeeNoData   = "所选员工在该期间没有排班记录"
	msgEmployeeDegraded = "员工目录获取失败，缺少部门字段的排班可能未计入"
)

// ExportFile 导出结果，由 Handler 设置下载响应头后写入 Response
type ExportFile struct {
	Filename    string
	ContentType string
	Data        *bytes.Buffer
}

// ReportService 工时报表业务接口
//
// 设计说明：
//   - 每次生成重新获取排班与员工快照（可由 Redis 短期缓存），筛选与聚合为纯计算
//   - 无数据不是错误：Report 为 nil 并附带提示
//   - 员工目录获取失败时降级继续，响应中带 employee_error
//   - 导出在内存中渲染，PDF logo 缺失不影响导出
type ReportService interface {
	Departments(ctx context.Context, cred model.Credential) (*dto.DepartmentOptionsResponse, error)
	DepartmentReport(ctx context.Context, cred model.Credential, req *dto.DepartmentReportRequest) (*dto.DepartmentReportResponse, error)
	LatestDepartmentReport(ctx context.Context, cred model.Credential) (*dto.DepartmentReportResponse, error)
	ExportDepartmentReport(ctx context.Context, cred model.Credential, req *dto.ExportDepartmentReportRequest) (*ExportFile, error)
	EmployeeReport(ctx context.Context, cred model.Credential, req *dto.EmployeeReportRequest) (*dto.EmployeeReportResponse, error)
	ExportEmployeeReport(ctx context.Context, cred model.Credential, req *dto.ExportEmployeeReportRequest) (*ExportFile, error)
}

// ReportOptions 报表展示参数
type ReportOptions struct {
	CompanyName string
	Location    *time.Location
	SnapshotTTL time.Duration
}

type reportService struct {
	loader      *snapshotLoader
	generations *generationTracker
	exporter    *export.Exporter
	opts        ReportOptions
	now         func() time.Time
	logger      *zap.Logger
}

// NewReportService 创建 ReportService 实例；cache 为 nil 时不缓存快照
func NewReportService(source Source, cache SnapshotCache, exporter *export.Exporter, opts ReportOptions, logger *zap.Logger) ReportService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &reportService{
		loader:      &snapshotLoader{source: source, cache: cache, ttl: opts.SnapshotTTL, logger: logger},
		generations: newGenerationTracker(),
		exporter:    exporter,
		opts:        opts,
		now:         time.Now,
		logger:      logger,
	}
}

// ═══════════════════════════════════════════════════════════
// Departments 部门下拉选项
// ═══════════════════════════════════════════════════════════

func (s *reportService) Departments(ctx context.Context, cred model.Credential) (*dto.DepartmentOptionsResponse, error) {
	snap, err := s.loadSnapshot(ctx, cred)
	if err != nil {
		return nil, err
	}
	return &dto.DepartmentOptionsResponse{
		List:          report.Departments(snap.Employees),
		EmployeeError: employeeError(snap),
	}, nil
}

// ═══════════════════════════════════════════════════════════
// DepartmentReport 部门工时报表
// ═══════════════════════════════════════════════════════════

func (s *reportService) DepartmentReport(ctx context.Context, cred model.Credential, req *dto.DepartmentReportRequest) (*dto.DepartmentReportResponse, error) {
	department := strings.TrimSpace(req.Department)
	if department == "" {
		return nil, ErrReportInputIncomplete
	}
	r, err := parseRange(req.StartDate, req.EndDate, ErrReportInputIncomplete)
	if err != nil {
		return nil, err
	}

	gen := s.generations.begin(callerKey(cred))

	res, snap, err := s.buildDepartment(ctx, cred, department, r)
	if err != nil {
		return nil, err
	}

	resp := &dto.DepartmentReportResponse{
		Generation:    gen,
		Department:    department,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		EmployeeError: employeeError(snap),
		GeneratedAt:   s.now().In(s.opts.Location),
	}
	if res.Empty() {
		resp.Message = msgDepartmentNoData
	} else {
		resp.Report = &res
	}

	if !s.generations.publish(callerKey(cred), gen, resp) {
		s.logger.Debug("丢弃过期的报表生成结果",
			zap.String("caller", callerKey(cred)),
			zap.Uint64("generation", gen),
		)
	}
	return resp, nil
}

// LatestDepartmentReport 返回调用方最近一次发布的部门报表
func (s *reportService) LatestDepartmentReport(_ context.Context, cred model.Credential) (*dto.DepartmentReportResponse, error) {
	resp, ok := s.generations.latest(callerKey(cred))
	if !ok {
		return nil, ErrReportNoLatest
	}
	return resp, nil
}

// ExportDepartmentReport 导出部门报表；无数据时导出带空状态说明的文件
func (s *reportService) ExportDepartmentReport(ctx context.Context, cred model.Credential, req *dto.ExportDepartmentReportRequest) (*ExportFile, error) {
	format, err := parseFormat(req.Format)
	if err != nil {
		return nil, err
	}
	department := strings.TrimSpace(req.Department)
	if department == "" {
		return nil, ErrReportInputIncomplete
	}
	r, err := parseRange(req.StartDate, req.EndDate, ErrReportInputIncomplete)
	if err != nil {
		return nil, err
	}

	res, _, err := s.buildDepartment(ctx, cred, department, r)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.opts.Location)
	doc := export.DepartmentDocument(department, s.opts.CompanyName, export.Period{Start: r.Start, End: r.End}, res, now)
	return s.render(doc, format, export.FileName(export.KindDepartment, department, now, format))
}

func (s *reportService) buildDepartment(ctx context.Context, cred model.Credential, department string, r report.DateRange) (report.Result, *snapshot, error) {
	snap, err := s.loadSnapshot(ctx, cred)
	if err != nil {
		return report.Result{}, nil, err
	}
	ix := report.BuildIndex(snap.Employees)
	filtered := report.FilterByDepartment(snap.Shifts, r, department, ix)
	res := report.Aggregate(filtered, ix)

	s.logger.Info("生成部门工时报表",
		zap.String("department", department),
		zap.Int("shifts_total", len(snap.Shifts)),
		zap.Int("shifts_matched", len(filtered)),
		zap.Int("employees", res.Summary.EmployeeCount),
	)
	return res, snap, nil
}

// ═══════════════════════════════════════════════════════════
// EmployeeReport 个人工时报表
// ═══════════════════════════════════════════════════════════

func (s *reportService) EmployeeReport(ctx context.Context, cred model.Credential, req *dto.EmployeeReportRequest) (*dto.EmployeeReportResponse, error) {
	key := strings.TrimSpace(req.Employee)
	if key == "" {
		return nil, ErrReportEmployeeMissing
	}
	r, err := parseRange(req.StartDate, req.EndDate, ErrReportEmployeeMissing)
	if err != nil {
		return nil, err
	}

	d, snap, err := s.buildEmployee(ctx, cred, key, r)
	if err != nil {
		return nil, err
	}

	resp := &dto.EmployeeReportResponse{
		Employee:      d.Employee,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		EmployeeError: employeeError(snap),
		GeneratedAt:   s.now().In(s.opts.Location),
	}
	if d.Empty() {
		resp.Message = msgEmployeeNoData
	} else {
		resp.Report = &d
	}
	return resp, nil
}

// ExportEmployeeReport 导出个人报表
func (s *reportService) ExportEmployeeReport(ctx context.Context, cred model.Credential, req *dto.ExportEmployeeReportRequest) (*ExportFile, error) {
	format, err := parseFormat(req.Format)
	if err != nil {
		return nil, err
	}
	key := strings.TrimSpace(req.Employee)
	if key == "" {
		return nil, ErrReportEmployeeMissing
	}
	r, err := parseRange(req.StartDate, req.EndDate, ErrReportEmployeeMissing)
	if err != nil {
		return nil, err
	}

	d, _, err := s.buildEmployee(ctx, cred, key, r)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.opts.Location)
	doc := export.EmployeeDocument(s.opts.CompanyName, export.Period{Start: r.Start, End: r.End}, d, now)
	return s.render(doc, format, export.FileName(export.KindEmployee, d.Employee, now, format))
}

func (s *reportService) buildEmployee(ctx context.Context, cred model.Credential, key string, r report.DateRange) (report.Detail, *snapshot, error) {
	snap, err := s.loadSnapshot(ctx, cred)
	if err != nil {
		return report.Detail{}, nil, err
	}
	ix := report.BuildIndex(snap.Employees)
	filtered := report.FilterByEmployee(snap.Shifts, r, key, ix)

	name := key
	if e, ok := ix.ByID(key); ok && e.Name != "" {
		name = e.Name
	} else if e, ok := ix.ByAccount(key); ok && e.Name != "" {
		name = e.Name
	} else if e, ok := ix.ByName(key); ok && e.Name != "" {
		name = e.Name
	}
	d := report.BuildDetail(filtered, ix, name)
	if d.Employee == "" {
		d.Employee = name
	}

	s.logger.Info("生成个人工时报表",
		zap.String("employee", d.Employee),
		zap.Int("shifts_matched", len(filtered)),
	)
	return d, snap, nil
}

// ── 内部辅助 ──

func (s *reportService) loadSnapshot(ctx context.Context, cred model.Credential) (*snapshot, error) {
	snap, err := s.loader.load(ctx, cred)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrUpstreamUnauthorized) {
			return nil, ErrReportUnauthorized
		}
		s.logger.Error("获取排班列表失败", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrReportShiftFetch, err)
	}
	return snap, nil
}

func (s *reportService) render(doc *export.Document, format export.Format, filename string) (*ExportFile, error) {
	buf, err := s.exporter.Render(doc, format)
	if err != nil {
		s.logger.Error("渲染导出文件失败", zap.String("format", string(format)), zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	return &ExportFile{
		Filename:    filename,
		ContentType: format.ContentType(),
		Data:        buf,
	}, nil
}

// parseRange 解析日期范围；缺少日期时返回 incomplete
func parseRange(start, end string, incomplete error) (report.DateRange, error) {
	r, err := report.ParseDateRange(start, end)
	switch {
	case err == nil:
		return r, nil
	case errors.Is(err, report.ErrDateRangeMissing):
		return r, incomplete
	case errors.Is(err, report.ErrDateRangeInverted):
		return r, ErrReportInvalidRange
	default:
		return r, ErrReportInvalidDate
	}
}

func parseFormat(s string) (export.Format, error) {
	if strings.TrimSpace(s) == "" {
		return export.FormatPDF, nil
	}
	f, err := export.ParseFormat(s)
	if err != nil {
		return "", ErrReportUnknownFormat
	}
	return f, nil
}

func employeeError(snap *snapshot) string {
	if snap == nil || snap.EmployeesErr == nil {
		return ""
	}
	return msgEmployeeDegraded
}

// callerKey 生成号按调用方区分；无主体时共用匿名槽位
func callerKey(cred model.Credential) string {
	if cred.Subject == "" {
		return "anonymous"
	}
	return cred.Subject
}
