package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultAreaConfig(t *testing.T) {
	cfg := DefaultAreaConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.SpawnCount != 4 {
		t.Errorf("expected spawnCount = 4, got %d", cfg.SpawnCount)
	}
	if cfg.PreySpeed != 0.5 {
		t.Errorf("expected preySpeed = 0.5, got %f", cfg.PreySpeed)
	}
	if cfg.Prey != (PlacementRange{MinAngle: 100, MaxAngle: 260, MinRadius: 2, MaxRadius: 13}) {
		t.Errorf("unexpected prey range: %+v", cfg.Prey)
	}
	if cfg.Baby != (PlacementRange{MinAngle: -45, MaxAngle: 45, MinRadius: 4, MaxRadius: 9}) {
		t.Errorf("unexpected baby range: %+v", cfg.Baby)
	}
	if cfg.Agent != (PlacementRange{MinAngle: 0, MaxAngle: 360, MinRadius: 0, MaxRadius: 9}) {
		t.Errorf("unexpected agent range: %+v", cfg.Agent)
	}
}

func TestLoadAreaConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *AreaConfig)
	}{
		{
			name: "完整配置",
			yamlContent: `
spawnCount: 6
preySpeed: 1.25
fixedDeltaTime: 0.05
prey:
  minAngle: 90
  maxAngle: 270
  minRadius: 1
  maxRadius: 10
`,
			validate: func(t *testing.T, cfg *AreaConfig) {
				if cfg.SpawnCount != 6 {
					t.Errorf("expected spawnCount = 6, got %d", cfg.SpawnCount)
				}
				if cfg.PreySpeed != 1.25 {
					t.Errorf("expected preySpeed = 1.25, got %f", cfg.PreySpeed)
				}
				if cfg.Prey.MaxRadius != 10 {
					t.Errorf("expected prey maxRadius = 10, got %f", cfg.Prey.MaxRadius)
				}
				// 未配置的字段保持默认值
				if cfg.Baby.MinRadius != 4 {
					t.Errorf("expected default baby minRadius = 4, got %f", cfg.Baby.MinRadius)
				}
				if cfg.GroundClearance != DefaultGroundClearance {
					t.Errorf("expected default ground clearance, got %f", cfg.GroundClearance)
				}
			},
		},
		{
			name:        "空文件使用默认值",
			yamlContent: ``,
			validate: func(t *testing.T, cfg *AreaConfig) {
				if cfg.SpawnCount != DefaultSpawnCount {
					t.Errorf("expected default spawnCount, got %d", cfg.SpawnCount)
				}
			},
		},
		{
			name: "猎物半径范围反转",
			yamlContent: `
prey:
  minRadius: 13
  maxRadius: 2
`,
			wantErr:     true,
			errContains: "prey radius range invalid",
		},
		{
			name: "负半径",
			yamlContent: `
baby:
  minRadius: -1
`,
			wantErr:     true,
			errContains: "baby minRadius",
		},
		{
			name:        "非法帧时长",
			yamlContent: `fixedDeltaTime: 0`,
			wantErr:     true,
			errContains: "fixedDeltaTime",
		},
		{
			name: "速度倍率为零",
			yamlContent: `
speedJitter:
  min: 0
  max: 1
`,
			wantErr:     true,
			errContains: "speedJitter.min",
		},
		{
			name:        "非法 YAML",
			yamlContent: "spawnCount: [1, 2",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "area_config.yaml")
			if err := os.WriteFile(path, []byte(tt.yamlContent), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			cfg, err := LoadAreaConfig(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %v", tt.errContains, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadAreaConfigMissingFile(t *testing.T) {
	_, err := LoadAreaConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read area config") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestShippedAreaConfigMatchesDefaults(t *testing.T) {
	cfg, err := LoadAreaConfig(filepath.Join("..", "..", "data", "area_config.yaml"))
	if err != nil {
		t.Fatalf("failed to load shipped config: %v", err)
	}
	if *cfg != *DefaultAreaConfig() {
		t.Errorf("shipped config differs from defaults:\n got  %+v\n want %+v", *cfg, *DefaultAreaConfig())
	}
}
