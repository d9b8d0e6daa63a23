package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func resetState() {
	dataFS = nil
	initialized = false
}

func TestIsInitialized(t *testing.T) {
	resetState()
	defer resetState()

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}
	Init(fstest.MapFS{})
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
	Init(nil)
	if IsInitialized() {
		t.Error("Init(nil) should leave the package uninitialized")
	}
}

func TestReadFileNotInitialized(t *testing.T) {
	resetState()

	if _, err := ReadFile(DefaultAreaConfigPath); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile() error = %v, want ErrNotInitialized", err)
	}
	if Exists(DefaultAreaConfigPath) {
		t.Error("Exists() should be false before Init()")
	}
}

func TestReadFile(t *testing.T) {
	resetState()
	defer resetState()
	Init(fstest.MapFS{
		"data/area_config.yaml": {Data: []byte("spawnCount: 4\n")},
	})

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"正常路径", "data/area_config.yaml", "spawnCount: 4\n", false},
		{"带 ./ 前缀", "./data/area_config.yaml", "spawnCount: 4\n", false},
		{"文件不存在", "data/missing.yaml", "", true},
		{"错误前缀", "assets/area_config.yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ReadFile(%q) expected error", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadFile(%q) error: %v", tt.path, err)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
			if !Exists(tt.path) {
				t.Errorf("Exists(%q) = false", tt.path)
			}
		})
	}
}
