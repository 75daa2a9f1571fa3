package server

import (
	"strings"
	"testing"
)

func TestBackupRequiresStore(t *testing.T) {
	env := newTestEnv(t)
	env.game.Conf.BackupDir = t.TempDir()

	env.game.DispatchCommand(env.player, "@backup")
	if out := getOutput(env.player); !strings.Contains(out, "no database store") {
		t.Errorf("output = %q", out)
	}
}

func TestBackupWizardOnly(t *testing.T) {
	env := newTestEnv(t)

	env.game.DispatchCommand(env.bob, "@backup")
	if out := getOutput(env.bob); !strings.Contains(out, "Permission denied.") {
		t.Errorf("output = %q", out)
	}
}

func TestBackupListEmpty(t *testing.T) {
	env := newTestEnv(t)
	env.game.Conf.BackupDir = t.TempDir()

	env.game.DispatchCommand(env.player, "@backup/list")
	if out := getOutput(env.player); !strings.Contains(out, "No backups found.") {
		t.Errorf("output = %q", out)
	}
}

func TestBackupUnknownSwitch(t *testing.T) {
	env := newTestEnv(t)

	env.game.DispatchCommand(env.player, "@backup/frobnicate")
	if out := getOutput(env.player); !strings.Contains(out, "Unknown switch 'frobnicate'") {
		t.Errorf("output = %q", out)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 << 20, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
