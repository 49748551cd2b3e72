package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("无配置文件时应回退到默认值: %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("期望默认 port=8000，实际=%d", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverSQLite || cfg.Database.Path != "db.sqlite3" {
		t.Errorf("默认数据库配置错误: %+v", cfg.Database)
	}
	if cfg.Export.FontPath != "" {
		t.Errorf("默认应使用内置字体，实际 font_path=%q", cfg.Export.FontPath)
	}
	if cfg.Export.RateWindow != time.Minute {
		t.Errorf("期望默认 rate_window=1m，实际=%s", cfg.Export.RateWindow)
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("显式指定的配置文件不存在时应报错")
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server:
  port: 9090
db:
  driver: sqlite
  path: /tmp/attendance.db
export:
  rate_limit: 5
  rate_window: 30s
log:
  level: debug
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("期望 port=9090，实际=%d", cfg.Server.Port)
	}
	if cfg.Database.DSN() != "/tmp/attendance.db" {
		t.Errorf("期望 sqlite DSN 为文件路径，实际=%s", cfg.Database.DSN())
	}
	if cfg.Export.RateLimit != 5 || cfg.Export.RateWindow != 30*time.Second {
		t.Errorf("导出限流配置错误: %+v", cfg.Export)
	}
	if cfg.Export.Label == "" || cfg.Export.SheetName == "" {
		t.Error("导出标签应有默认值")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("期望 log.level=debug，实际=%s", cfg.Log.Level)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}
	t.Setenv("ATTENDANCE_SERVER_PORT", "7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("环境变量应覆盖配置文件，实际 port=%d", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Server:   ServerConfig{Port: 8000},
			Database: DatabaseConfig{Driver: DriverSQLite, Path: "db.sqlite3"},
			Export:   ExportConfig{Label: "label", SheetName: "sheet"},
		}
	}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"sqlite without path", func(c *Config) { c.Database.Path = "" }, true},
		{"postgres", func(c *Config) { c.Database.Driver = DriverPostgres }, false},
		{"empty label", func(c *Config) { c.Export.Label = "  " }, true},
		{"sheet name too long", func(c *Config) { c.Export.SheetName = "بيان عدد ساعات عمل لودر أحمد تمام" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("wantErr=%v，实际 err=%v", tc.wantErr, err)
			}
		})
	}
}
