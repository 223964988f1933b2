package main

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Versifine/cellstage/internal/camera"
	"github.com/Versifine/cellstage/internal/config"
	"github.com/Versifine/cellstage/internal/keys"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Scripts.Microbe = filepath.Join("..", "..", "scripts", "microbe_control.lua")
	return cfg
}

// TestRun 测试启动流程的错误都通过返回值交给 main
func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(cfg *config.Config)
		wantErr func(err error) bool
	}{
		{
			name:    "非交互终端",
			modify:  func(cfg *config.Config) {},
			wantErr: func(err error) bool { return errors.Is(err, errNoTerminal) },
		},
		{
			name: "无效按键",
			modify: func(cfg *config.Config) {
				cfg.Keys = map[string][]string{keys.ControlMoveForward: {"hyper+w"}}
			},
			wantErr: func(err error) bool { return errors.Is(err, keys.ErrUnknownKey) },
		},
		{
			name: "退化相机",
			modify: func(cfg *config.Config) {
				cfg.Camera.LookAt = cfg.Camera.Position
			},
			wantErr: func(err error) bool { return errors.Is(err, camera.ErrDegenerateCamera) },
		},
		{
			name: "脚本不存在",
			modify: func(cfg *config.Config) {
				cfg.Scripts.Microbe = filepath.Join(t.TempDir(), "missing.lua")
			},
			wantErr: func(err error) bool { return err != nil && strings.Contains(err.Error(), "missing.lua") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.modify(cfg)
			err := run(context.Background(), cfg, false)
			if !tt.wantErr(err) {
				t.Fatalf("run() error = %v", err)
			}
		})
	}
}
