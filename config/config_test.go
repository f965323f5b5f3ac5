package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
source:
  kind: api
upstream:
  base_url: http://upstream.test
  timeout: 5s
auth:
  jwt_secret: 0123456789abcdef
report:
  timezone: America/Bogota
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("默认端口应为 8080, got %d", cfg.Server.Port)
	}
	if cfg.Upstream.Timeout != 5*time.Second {
		t.Errorf("upstream.timeout 应为 5s, got %v", cfg.Upstream.Timeout)
	}
	if cfg.Upstream.ShiftsPath != "/api/shifts" {
		t.Errorf("shifts_path 默认值错误: %q", cfg.Upstream.ShiftsPath)
	}
	if cfg.Redis.SnapshotTTL != 30*time.Second {
		t.Errorf("snapshot_ttl 默认值错误: %v", cfg.Redis.SnapshotTTL)
	}
	if cfg.Auth.AccessTokenTTL != 15*time.Minute {
		t.Errorf("access_token_ttl 默认值错误: %v", cfg.Auth.AccessTokenTTL)
	}
	if got := cfg.Report.Location().String(); got != "America/Bogota" {
		t.Errorf("报表时区错误: %s", got)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
upstream:
  base_url: http://upstream.test
auth:
  jwt_secret: 0123456789abcdef
`)
	t.Setenv("SHIFTDESK_SERVER_PORT", "9090")
	t.Setenv("SHIFTDESK_AUTH_JWT_SECRET", "env-secret-0123456789")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("环境变量应覆盖端口, got %d", cfg.Server.Port)
	}
	if cfg.Auth.JWTSecret != "env-secret-0123456789" {
		t.Errorf("环境变量应覆盖 jwt_secret, got %q", cfg.Auth.JWTSecret)
	}
}

func TestLoadUnvalidated_SkipsValidation(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\n")

	if _, err := Load(path); err == nil {
		t.Fatal("缺少 jwt_secret 时 Load 应返回错误")
	}
	cfg, err := LoadUnvalidated(path)
	if err != nil {
		t.Fatalf("LoadUnvalidated 失败: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level 应为 debug, got %q", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080},
			Source:   SourceConfig{Kind: SourceAPI},
			Upstream: UpstreamConfig{BaseURL: "http://upstream.test"},
			Auth:     AuthConfig{JWTSecret: "0123456789abcdef"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"合法配置", func(c *Config) {}, ""},
		{"数据库数据源无需上游地址", func(c *Config) { c.Source.Kind = SourceDB; c.Upstream.BaseURL = "" }, ""},
		{"缺少密钥", func(c *Config) { c.Auth.JWTSecret = "" }, "jwt_secret 不能为空"},
		{"密钥过短", func(c *Config) { c.Auth.JWTSecret = "short" }, "不能少于 16"},
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"缺少上游地址", func(c *Config) { c.Upstream.BaseURL = "" }, "upstream.base_url"},
		{"未知数据源", func(c *Config) { c.Source.Kind = "ftp" }, "source.kind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected nil, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestReportLocation_Fallback(t *testing.T) {
	c := &ReportConfig{Timezone: "Mars/Olympus"}
	if c.Location() != time.UTC {
		t.Errorf("无效时区应回退 UTC")
	}
	if (&ReportConfig{}).Location() != time.UTC {
		t.Errorf("空时区应为 UTC")
	}
}
