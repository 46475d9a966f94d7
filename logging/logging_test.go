package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewDisabledByDefault(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Dir = dir

	log, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("discarded")
	if log.Core().Enabled(-1) {
		t.Error("disabled logger has an enabled core")
	}
	if _, err := os.Stat(filepath.Join(dir, DefaultFile)); !os.IsNotExist(err) {
		t.Error("log file created while debug is off")
	}
}

func TestNewWritesFileWithDebug(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		t.Run(format, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "nested")
			cfg := Config{Debug: true, Level: "info", Dir: dir, File: "test.log", Format: format}

			log, err := New(cfg)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			log.Debug("below level")
			log.Info("kickoff")
			_ = log.Sync()

			data, err := os.ReadFile(filepath.Join(dir, "test.log"))
			if err != nil {
				t.Fatalf("read log: %v", err)
			}
			text := string(data)
			if !strings.Contains(text, "kickoff") {
				t.Errorf("log missing message: %q", text)
			}
			if strings.Contains(text, "below level") {
				t.Error("debug line written at info level")
			}
			t.Logf("✓ %s log written to %s", format, cfg.Path())
		})
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"defaults", DefaultConfig(), true},
		{"empty", Config{}, true},
		{"bad level", Config{Level: "loud"}, false},
		{"bad format", Config{Format: "xml"}, false},
	}
	for _, tc := range cases {
		err := tc.cfg.Validate()
		if (err == nil) != tc.ok {
			t.Errorf("%s: Validate() = %v", tc.name, err)
		}
	}

	if _, err := New(Config{Debug: true, Level: "loud", Dir: t.TempDir()}); err == nil {
		t.Error("New accepted a bad level")
	}
}

func TestPathDefaults(t *testing.T) {
	if got := (Config{}).Path(); got != filepath.Join(DefaultDir, DefaultFile) {
		t.Errorf("Path() = %s", got)
	}
}
