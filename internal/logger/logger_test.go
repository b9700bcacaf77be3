package logger

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestInitCreatesLogDir(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after Init")
	}

	if _, err := os.Stat(filepath.Join(configDir, "logs")); err != nil {
		t.Errorf("log directory missing: %v", err)
	}

	Debug("debug line")
	Info("info line", "key", "value")
	Warn("warn line")
	Error("error line")
}

func TestInitDefaultsToUserConfigDir(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG_CONFIG_HOME only applies on unix-likes")
	}
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	if err := Init(Config{}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if _, err := os.Stat(filepath.Join(base, "accountable", "logs")); err != nil {
		t.Errorf("default log directory missing: %v", err)
	}
}

func TestInitDebug(t *testing.T) {
	if err := Init(Config{Debug: true, ConfigDir: t.TempDir()}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after Init")
	}
	Debug("visible in debug mode")
}

func TestHelpersNoopWithoutInit(t *testing.T) {
	Logger = nil

	Debug("no-op")
	Info("no-op")
	Warn("no-op")
	Error("no-op")
}

func TestInitUnwritableDir(t *testing.T) {
	err := Init(Config{ConfigDir: "/proc/accountable-no-such-dir"})
	if err == nil {
		t.Skip("directory was unexpectedly writable")
	}
}
