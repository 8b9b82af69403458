package config

// Raw mirrors Config with pointer fields so that an absent key can be told
// apart from a zero value. Raw values are merged over the defaults in
// ApplyTo; only keys present in the file overwrite.

type RawGaps struct {
	InnerGap *int `yaml:"inner_gap"`
	OuterGap *int `yaml:"outer_gap"`
}

type RawFloatingStateConfig struct {
	Centered   *bool `yaml:"centered"`
	ShownOnTop *bool `yaml:"shown_on_top"`
}

type RawFullscreenStateConfig struct {
	Maximized  *bool `yaml:"maximized"`
	ShownOnTop *bool `yaml:"shown_on_top"`
}

type RawWindowStateDefaults struct {
	Floating   *RawFloatingStateConfig   `yaml:"floating"`
	Fullscreen *RawFullscreenStateConfig `yaml:"fullscreen"`
}

type RawGeneral struct {
	DefaultWorkspaceNames []string `yaml:"default_workspace_names"`
	FocusSyncDebounceMs   *int     `yaml:"focus_sync_debounce_ms"`
}

type RawConfig struct {
	Gaps                *RawGaps                `yaml:"gaps"`
	WindowStateDefaults *RawWindowStateDefaults `yaml:"window_state_defaults"`
	General             *RawGeneral             `yaml:"general"`
}

// ApplyTo overlays the raw values present in r onto cfg.
func (r *RawConfig) ApplyTo(cfg *Config) {
	if r.Gaps != nil {
		if r.Gaps.InnerGap != nil {
			cfg.Gaps.InnerGap = *r.Gaps.InnerGap
		}
		if r.Gaps.OuterGap != nil {
			cfg.Gaps.OuterGap = *r.Gaps.OuterGap
		}
	}
	if r.WindowStateDefaults != nil {
		if f := r.WindowStateDefaults.Floating; f != nil {
			if f.Centered != nil {
				cfg.WindowStateDefaults.Floating.Centered = *f.Centered
			}
			if f.ShownOnTop != nil {
				cfg.WindowStateDefaults.Floating.ShownOnTop = *f.ShownOnTop
			}
		}
		if f := r.WindowStateDefaults.Fullscreen; f != nil {
			if f.Maximized != nil {
				cfg.WindowStateDefaults.Fullscreen.Maximized = *f.Maximized
			}
			if f.ShownOnTop != nil {
				cfg.WindowStateDefaults.Fullscreen.ShownOnTop = *f.ShownOnTop
			}
		}
	}
	if r.General != nil {
		if r.General.DefaultWorkspaceNames != nil {
			cfg.General.DefaultWorkspaceNames = r.General.DefaultWorkspaceNames
		}
		if r.General.FocusSyncDebounceMs != nil {
			cfg.General.FocusSyncDebounceMs = *r.General.FocusSyncDebounceMs
		}
	}
}
