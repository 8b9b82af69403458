// Package config loads and validates the perch YAML configuration.
package config

import "fmt"

// Gaps controls spacing between tiled windows and screen edges.
type Gaps struct {
	// InnerGap is the spacing between adjacent tiled windows.
	InnerGap int `yaml:"inner_gap"`
	// OuterGap is the spacing between tiled windows and the monitor edge.
	OuterGap int `yaml:"outer_gap"`
}

// FloatingStateConfig holds defaults applied when a window becomes
// floating.
type FloatingStateConfig struct {
	// Centered places newly floating windows at the center of their
	// workspace instead of keeping the OS-reported position.
	Centered bool `yaml:"centered"`
	// ShownOnTop keeps floating windows above tiled ones.
	ShownOnTop bool `yaml:"shown_on_top"`
}

// FullscreenStateConfig holds defaults applied when a window becomes
// fullscreen.
type FullscreenStateConfig struct {
	// Maximized uses the OS maximize operation instead of borderless
	// fullscreen.
	Maximized bool `yaml:"maximized"`
	// ShownOnTop keeps fullscreen windows above all others.
	ShownOnTop bool `yaml:"shown_on_top"`
}

// WindowStateDefaults groups the per-state default sub-configs.
type WindowStateDefaults struct {
	Floating   FloatingStateConfig   `yaml:"floating"`
	Fullscreen FullscreenStateConfig `yaml:"fullscreen"`
}

// General holds daemon-wide settings.
type General struct {
	// DefaultWorkspaceNames seeds one workspace per monitor at startup;
	// monitors beyond the list get numeric names.
	DefaultWorkspaceNames []string `yaml:"default_workspace_names"`
	// FocusSyncDebounceMs suppresses OS focus-steal events for this long
	// after a window is unmanaged or minimized.
	FocusSyncDebounceMs int `yaml:"focus_sync_debounce_ms"`
}

// Config is the effective, validated configuration snapshot. The engine
// reads it and never mutates it.
type Config struct {
	Gaps                Gaps                `yaml:"gaps"`
	WindowStateDefaults WindowStateDefaults `yaml:"window_state_defaults"`
	General             General             `yaml:"general"`
}

// DefaultConfig returns the built-in configuration used when no file is
// present.
func DefaultConfig() *Config {
	return &Config{
		Gaps: Gaps{
			InnerGap: 8,
			OuterGap: 8,
		},
		WindowStateDefaults: WindowStateDefaults{
			Floating: FloatingStateConfig{
				Centered:   true,
				ShownOnTop: false,
			},
			Fullscreen: FullscreenStateConfig{
				Maximized: false,
			},
		},
		General: General{
			DefaultWorkspaceNames: []string{"1", "2", "3", "4"},
			FocusSyncDebounceMs:   100,
		},
	}
}

// Validate checks the configuration for out-of-range values. Errors name
// the offending YAML path.
func (c *Config) Validate() error {
	if c.Gaps.InnerGap < 0 {
		return fmt.Errorf("gaps.inner_gap must be >= 0, got %d", c.Gaps.InnerGap)
	}
	if c.Gaps.OuterGap < 0 {
		return fmt.Errorf("gaps.outer_gap must be >= 0, got %d", c.Gaps.OuterGap)
	}
	if c.General.FocusSyncDebounceMs < 0 {
		return fmt.Errorf("general.focus_sync_debounce_ms must be >= 0, got %d", c.General.FocusSyncDebounceMs)
	}
	return nil
}
