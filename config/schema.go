// Package config owns the application configuration document: schema,
// per-OS defaults and the load/validate/persist lifecycle.
package config

// ProgramMode selects how an abstract platform action is executed.
type ProgramMode string

const (
	// ModeAuto probes an OS-specific candidate list for the first program
	// that launches.
	ModeAuto ProgramMode = "auto"
	// ModeDefault uses the OS's registered default handler.
	ModeDefault ProgramMode = "default"
	// ModeCustom runs a user-specified executable with user-specified args.
	ModeCustom ProgramMode = "custom"
	// ModeScript runs a user-specified script through the OS default shell.
	ModeScript ProgramMode = "script"
)

// ThemeMode selects the UI theme.
type ThemeMode string

const (
	ThemeAuto  ThemeMode = "auto"
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// LogLevel is the persisted logging verbosity.
type LogLevel string

const (
	LogError LogLevel = "error"
	LogWarn  LogLevel = "warn"
	LogInfo  LogLevel = "info"
	LogDebug LogLevel = "debug"
)

// AppConfig is the whole configuration document, persisted verbatim as JSON.
type AppConfig struct {
	Version   string           `json:"version"`
	Platform  PlatformConfig   `json:"platform"`
	Backup    BackupConfig     `json:"backup"`
	Ui        UiConfig         `json:"ui"`
	Advanced  AdvancedConfig   `json:"advanced"`
	Shortcuts *ShortcutsConfig `json:"shortcuts,omitempty"`
}

// PlatformConfig holds one ProgramConfig per abstract action plus free-form
// environment variables handed to spawned programs.
type PlatformConfig struct {
	Terminal    ProgramConfig     `json:"terminal"`
	Browser     ProgramConfig     `json:"browser"`
	FileManager ProgramConfig     `json:"file_manager"`
	TextEditor  ProgramConfig     `json:"text_editor"`
	Environment map[string]string `json:"environment"`
}

// ProgramConfig configures a single action.
type ProgramConfig struct {
	Mode         ProgramMode `json:"mode"`
	CustomPath   *string     `json:"custom_path,omitempty"`
	CustomArgs   []string    `json:"custom_args"`
	CustomScript *string     `json:"custom_script,omitempty"`
}

// BackupConfig configures backup generation. The scheduling fields are
// persisted for the UI; nothing in the backend runs a timer.
type BackupConfig struct {
	DefaultPath        *string `json:"default_path,omitempty"`
	AutoBackupEnabled  bool    `json:"auto_backup_enabled"`
	AutoBackupInterval uint32  `json:"auto_backup_interval"`
	CleanupOldBackups  bool    `json:"cleanup_old_backups"`
	RetentionDays      uint32  `json:"retention_days"`
}

// UiConfig holds presentation preferences.
type UiConfig struct {
	Theme         ThemeMode `json:"theme"`
	Language      string    `json:"language"`
	ConfirmDelete bool      `json:"confirm_delete"`
	ShowWelcome   bool      `json:"show_welcome"`
}

// AdvancedConfig holds the escape hatches.
type AdvancedConfig struct {
	LogLevel         LogLevel `json:"log_level"`
	EnableAnalytics  bool     `json:"enable_analytics"`
	DatabasePath     *string  `json:"database_path,omitempty"`
	EnableAutoUpdate bool     `json:"enable_auto_update"`
}

// ShortcutsConfig maps action names to key bindings.
type ShortcutsConfig struct {
	Enabled   bool                       `json:"enabled"`
	Shortcuts map[string]ShortcutBinding `json:"shortcuts"`
}

// ShortcutBinding is one configurable key binding.
type ShortcutBinding struct {
	Key         string  `json:"key"`
	Enabled     bool    `json:"enabled"`
	Description *string `json:"description,omitempty"`
}

// Clone returns a deep copy; readers never receive a mutable alias of the
// manager's in-memory document.
func (c AppConfig) Clone() AppConfig {
	out := c
	out.Platform.Terminal = c.Platform.Terminal.clone()
	out.Platform.Browser = c.Platform.Browser.clone()
	out.Platform.FileManager = c.Platform.FileManager.clone()
	out.Platform.TextEditor = c.Platform.TextEditor.clone()

	out.Platform.Environment = make(map[string]string, len(c.Platform.Environment))
	for k, v := range c.Platform.Environment {
		out.Platform.Environment[k] = v
	}

	out.Backup.DefaultPath = cloneString(c.Backup.DefaultPath)
	out.Advanced.DatabasePath = cloneString(c.Advanced.DatabasePath)

	if c.Shortcuts != nil {
		shortcuts := ShortcutsConfig{
			Enabled:   c.Shortcuts.Enabled,
			Shortcuts: make(map[string]ShortcutBinding, len(c.Shortcuts.Shortcuts)),
		}
		for name, binding := range c.Shortcuts.Shortcuts {
			binding.Description = cloneString(binding.Description)
			shortcuts.Shortcuts[name] = binding
		}
		out.Shortcuts = &shortcuts
	}
	return out
}

func (p ProgramConfig) clone() ProgramConfig {
	out := p
	out.CustomPath = cloneString(p.CustomPath)
	out.CustomScript = cloneString(p.CustomScript)
	out.CustomArgs = append([]string(nil), p.CustomArgs...)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
