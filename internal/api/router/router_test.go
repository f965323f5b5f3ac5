package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"shiftdesk/config"
	"shiftdesk/internal/api/handler"
	"shiftdesk/internal/model"
	"shiftdesk/internal/service"
	"shiftdesk/pkg/jwt"
)

func hoursPtr(h float64) *float64 { return &h }

// newTestEngine 使用内存数据源组装完整路由
func newTestEngine(t *testing.T) (http.Handler, *jwt.Manager) {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{
			BodyLimitKB: 64,
			CORS:        config.CORSConfig{AllowOrigins: []string{"http://localhost:5173"}},
		},
		Auth: config.AuthConfig{
			JWTSecret:      "router-test-secret-2026",
			Issuer:         "shiftdesk",
			AccessTokenTTL: 15 * time.Minute,
		},
		Report: config.ReportConfig{CompanyName: "Acme", ExportRateLimit: 5, ExportRateWindow: time.Minute},
	}

	src := &service.StaticSource{
		Shifts: []model.ShiftRecord{
			{ID: "1", EmployeeID: "1", Date: "2024-03-04", StartTime: "09:00", EndTime: "17:00"},
			{ID: "2", EmployeeID: "2", Date: "2024-03-05", DurationHours: hoursPtr(6)},
		},
		Employees: []model.EmployeeRecord{
			{ID: "1", Name: "Ana Gómez", Department: "Ventas", Position: "Cajera"},
			{ID: "2", Name: "Luis Pérez", Department: "Logística"},
		},
	}

	logger := zap.NewNop()
	h := handler.NewHandler(service.NewService(cfg, src, nil, logger))
	mgr := jwt.NewManager(&cfg.Auth)
	return Setup(cfg, h, mgr, nil, logger), mgr
}

func doGet(t *testing.T, engine http.Handler, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	engine, _ := newTestEngine(t)
	w := doGet(t, engine, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("响应应带 X-Request-ID")
	}
}

func TestReports_AuthAndRoles(t *testing.T) {
	engine, mgr := newTestEngine(t)
	employee, _ := mgr.GenerateAccessToken("u-9", "employee")

	if w := doGet(t, engine, "/api/v1/reports/departments", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("未认证应返回 401, got %d", w.Code)
	}
	if w := doGet(t, engine, "/api/v1/reports/departments", employee); w.Code != http.StatusForbidden {
		t.Errorf("普通员工应返回 403, got %d", w.Code)
	}
}

func TestReports_DepartmentFlow(t *testing.T) {
	engine, mgr := newTestEngine(t)
	token, _ := mgr.GenerateAccessToken("u-1", "supervisor")

	w := doGet(t, engine, "/api/v1/reports/departments", token)
	if w.Code != http.StatusOK {
		t.Fatalf("departments expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var opts struct {
		Data struct {
			List []string `json:"list"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &opts); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if strings.Join(opts.Data.List, ",") != "Logística,Ventas" {
		t.Errorf("unexpected departments: %v", opts.Data.List)
	}

	if w := doGet(t, engine, "/api/v1/reports/department/latest", token); w.Code != http.StatusNotFound {
		t.Errorf("未生成过报表时应返回 404, got %d", w.Code)
	}

	w = doGet(t, engine, "/api/v1/reports/department?department=ventas&start_date=2024-03-01&end_date=2024-03-31", token)
	if w.Code != http.StatusOK {
		t.Fatalf("department expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var rep struct {
		Data struct {
			Generation uint64 `json:"generation"`
			Report     struct {
				Summary struct {
					TotalHours    float64 `json:"total_hours"`
					EmployeeCount int     `json:"employee_count"`
				} `json:"summary"`
			} `json:"report"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &rep); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if rep.Data.Report.Summary.TotalHours != 8 || rep.Data.Report.Summary.EmployeeCount != 1 {
		t.Errorf("unexpected summary: %+v", rep.Data.Report.Summary)
	}

	w = doGet(t, engine, "/api/v1/reports/department/latest", token)
	if w.Code != http.StatusOK {
		t.Errorf("生成后 latest 应返回 200, got %d", w.Code)
	}
}

func TestReports_Validation(t *testing.T) {
	engine, mgr := newTestEngine(t)
	token, _ := mgr.GenerateAccessToken("u-1", "admin")

	tests := []struct {
		name string
		path string
		want int
	}{
		{"日期格式错误", "/api/v1/reports/department?department=Ventas&start_date=2024-3-1&end_date=2024-03-31", http.StatusBadRequest},
		{"缺少部门", "/api/v1/reports/department?start_date=2024-03-01&end_date=2024-03-31", http.StatusBadRequest},
		{"范围倒置", "/api/v1/reports/employee?employee=1&start_date=2024-03-31&end_date=2024-03-01", http.StatusBadRequest},
		{"未知导出格式", "/api/v1/reports/department/export?department=Ventas&start_date=2024-03-01&end_date=2024-03-31&format=docx", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := doGet(t, engine, tt.path, token); w.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestReports_ExportDownload(t *testing.T) {
	engine, mgr := newTestEngine(t)
	token, _ := mgr.GenerateAccessToken("u-1", "admin")

	w := doGet(t, engine, "/api/v1/reports/employee/export?employee=ana%20gomez&start_date=2024-03-01&end_date=2024-03-31&format=csv", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment;") || !strings.Contains(cd, ".csv") {
		t.Errorf("unexpected Content-Disposition: %q", cd)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv") {
		t.Errorf("unexpected Content-Type: %q", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "Ana Gómez") {
		t.Error("CSV 应包含员工姓名")
	}
}
