package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig_Validates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if !cfg.WindowStateDefaults.Floating.Centered {
		t.Fatalf("expected floating windows centered by default")
	}
	if len(cfg.General.DefaultWorkspaceNames) == 0 {
		t.Fatalf("expected default workspace names")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Gaps.InnerGap != DefaultConfig().Gaps.InnerGap {
		t.Fatalf("expected default inner gap, got %d", cfg.Gaps.InnerGap)
	}
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("# empty\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Gaps.OuterGap != DefaultConfig().Gaps.OuterGap {
		t.Fatalf("expected default outer gap, got %d", cfg.Gaps.OuterGap)
	}
}

func TestLoad_PartialFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := strings.Join([]string{
		"gaps:",
		"  inner_gap: 0",
		"window_state_defaults:",
		"  floating:",
		"    centered: false",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Gaps.InnerGap != 0 {
		t.Fatalf("expected inner_gap 0 from file, got %d", cfg.Gaps.InnerGap)
	}
	if cfg.Gaps.OuterGap != DefaultConfig().Gaps.OuterGap {
		t.Fatalf("expected outer_gap to keep its default, got %d", cfg.Gaps.OuterGap)
	}
	if cfg.WindowStateDefaults.Floating.Centered {
		t.Fatalf("expected centered overridden to false")
	}
	if cfg.WindowStateDefaults.Fullscreen.Maximized {
		t.Fatalf("expected untouched fullscreen defaults")
	}
}

func TestLoad_UnknownKeyFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("gapz:\n  inner_gap: 4\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestLoad_NegativeGapFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("gaps:\n  inner_gap: -4\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected validation error for negative gap")
	}
	if !strings.Contains(err.Error(), "gaps.inner_gap") {
		t.Fatalf("expected error to name the YAML path, got %v", err)
	}
}

func TestValidate_NegativeDebounceFails(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.FocusSyncDebounceMs = -1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for negative debounce")
	}
}
