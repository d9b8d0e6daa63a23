package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestConfigFromEnv(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		wantLevel  string
		wantFormat string
		wantDev    bool
	}{
		{
			name:       "默认为开发环境",
			env:        map[string]string{},
			wantLevel:  "debug",
			wantFormat: "console",
			wantDev:    true,
		},
		{
			name:       "生产环境",
			env:        map[string]string{EnvMode: "production"},
			wantLevel:  "info",
			wantFormat: "json",
			wantDev:    false,
		},
		{
			name:       "覆盖级别与格式",
			env:        map[string]string{EnvMode: "production", EnvLevel: "warn", EnvFormat: "console"},
			wantLevel:  "warn",
			wantFormat: "console",
			wantDev:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvMode, "")
			t.Setenv(EnvLevel, "")
			t.Setenv(EnvFormat, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg := ConfigFromEnv()
			if cfg.Level != tt.wantLevel {
				t.Errorf("Level = %q, want %q", cfg.Level, tt.wantLevel)
			}
			if cfg.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", cfg.Format, tt.wantFormat)
			}
			if cfg.Development != tt.wantDev {
				t.Errorf("Development = %v, want %v", cfg.Development, tt.wantDev)
			}
		})
	}
}

func TestNewWithInvalidLevelFallsBack(t *testing.T) {
	l, err := New(Config{Level: "not-a-level", Format: "json"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = l.Sync() }()

	if !l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("Expected info level to be enabled after fallback")
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Error("OrNop(nil) should return a usable logger")
	}
}
