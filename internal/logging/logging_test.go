package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/mj1618/desktop-clippy/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		cfg       config.LogConfig
		wantLevel zapcore.Level
	}{
		{config.LogConfig{Level: "info", Format: "console"}, zapcore.InfoLevel},
		{config.LogConfig{Level: "debug", Format: "json"}, zapcore.DebugLevel},
		{config.LogConfig{Level: "warn"}, zapcore.WarnLevel},
	}
	for _, tt := range tests {
		logger, err := New(tt.cfg)
		if err != nil {
			t.Fatalf("New(%+v): %v", tt.cfg, err)
		}
		if !logger.Core().Enabled(tt.wantLevel) {
			t.Errorf("New(%+v): level %v not enabled", tt.cfg, tt.wantLevel)
		}
		if tt.wantLevel > zapcore.DebugLevel && logger.Core().Enabled(tt.wantLevel-1) {
			t.Errorf("New(%+v): level below %v should be disabled", tt.cfg, tt.wantLevel)
		}
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "loud", Format: "console"}); err == nil {
		t.Error("expected error for unknown level")
	}
	if _, err := New(config.LogConfig{Level: "info", Format: "xml"}); err == nil {
		t.Error("expected error for unknown format")
	}
}
