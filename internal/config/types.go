package config

// Config is the persisted FileOrbit configuration. The on-disk form is a flat
// JSON document with one nested object per section; unknown keys are ignored
// and missing keys keep their defaults.
type Config struct {
	Appearance     AppearanceConfig `json:"appearance"`
	Behavior       BehaviorConfig   `json:"behavior"`
	Window         WindowConfig     `json:"window"`
	Panels         PanelsConfig     `json:"panels"`
	FileOperations FileOpsConfig    `json:"file_operations"`
}

// AppearanceConfig holds display preferences
type AppearanceConfig struct {
	Theme           string `json:"theme"`
	ShowHiddenFiles bool   `json:"show_hidden_files"`
	DualPaneMode    bool   `json:"dual_pane_mode"`
}

// BehaviorConfig holds interaction preferences
type BehaviorConfig struct {
	ConfirmDelete   bool `json:"confirm_delete"`
	AutoRefresh     bool `json:"auto_refresh"`
	RememberTabs    bool `json:"remember_tabs"`
	SingleClickOpen bool `json:"single_click_open"`
	UseTrash        bool `json:"use_trash"`
}

// WindowConfig holds window state
type WindowConfig struct {
	Geometry  *Geometry `json:"geometry,omitempty"`
	Maximized bool      `json:"maximized"`
}

// Geometry is a window position and size
type Geometry struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PanelsConfig holds dual-pane state
type PanelsConfig struct {
	LeftPath    string `json:"left_path"`
	RightPath   string `json:"right_path"`
	ActivePanel string `json:"active_panel"`
}

// FileOpsConfig holds file operation tuning
type FileOpsConfig struct {
	// CopyBufferSize overrides the adaptive buffer when non-zero
	CopyBufferSize  int  `json:"copy_buffer_size"`
	ShowProgress    bool `json:"show_progress"`
	VerifyChecksums bool `json:"verify_checksums"`
}

// DefaultConfig returns the default FileOrbit configuration
func DefaultConfig() *Config {
	home := homeDir()
	return &Config{
		Appearance: AppearanceConfig{
			Theme:           "dark",
			ShowHiddenFiles: false,
			DualPaneMode:    true,
		},
		Behavior: BehaviorConfig{
			ConfirmDelete: true,
			AutoRefresh:   true,
			RememberTabs:  true,
			UseTrash:      true,
		},
		Window: WindowConfig{},
		Panels: PanelsConfig{
			LeftPath:    home,
			RightPath:   home,
			ActivePanel: "left",
		},
		FileOperations: FileOpsConfig{
			ShowProgress: true,
		},
	}
}
