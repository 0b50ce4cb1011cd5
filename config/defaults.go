package config

import (
	"os"
	"runtime"
)

// Version is the configuration schema version written to new files.
const Version = "0.3.0"

func defaultProgram() ProgramConfig {
	return ProgramConfig{Mode: ModeAuto, CustomArgs: []string{}}
}

// Defaults builds the configuration for a first run, seeded with
// OS-specific environment variables and key-binding modifiers.
func Defaults() AppConfig {
	cfg := AppConfig{
		Version: Version,
		Platform: PlatformConfig{
			Terminal:    defaultProgram(),
			Browser:     defaultProgram(),
			FileManager: defaultProgram(),
			TextEditor:  defaultProgram(),
			Environment: map[string]string{},
		},
		Backup: BackupConfig{
			AutoBackupEnabled:  false,
			AutoBackupInterval: 7,
			CleanupOldBackups:  false,
			RetentionDays:      30,
		},
		Ui: UiConfig{
			Theme:         ThemeAuto,
			Language:      "en",
			ConfirmDelete: true,
			ShowWelcome:   true,
		},
		Advanced: AdvancedConfig{
			LogLevel:         LogInfo,
			EnableAnalytics:  true,
			EnableAutoUpdate: true,
		},
		Shortcuts: defaultShortcuts(),
	}

	switch runtime.GOOS {
	case "windows":
		cfg.Platform.Environment["USERPROFILE"] = os.Getenv("USERPROFILE")
	default:
		cfg.Platform.Environment["HOME"] = os.Getenv("HOME")
	}

	return cfg
}

func defaultShortcuts() *ShortcutsConfig {
	modifier := "Ctrl"
	if runtime.GOOS == "darwin" {
		modifier = "Cmd"
	}

	describe := func(s string) *string { return &s }
	shortcuts := map[string]ShortcutBinding{
		"new_project": {
			Key:         modifier + "+N",
			Enabled:     true,
			Description: describe("Create a new project"),
		},
		"search": {
			Key:         modifier + "+F",
			Enabled:     true,
			Description: describe("Search projects"),
		},
		"settings": {
			Key:         modifier + "+Comma",
			Enabled:     true,
			Description: describe("Open settings"),
		},
		"analytics": {
			Key:         modifier + "+Shift+A",
			Enabled:     true,
			Description: describe("Open statistics"),
		},
		"refresh": {
			Key:         modifier + "+R",
			Enabled:     true,
			Description: describe("Reload the project list"),
		},
		"close_modal": {
			Key:         "Escape",
			Enabled:     true,
			Description: describe("Close the active modal"),
		},
	}

	return &ShortcutsConfig{Enabled: true, Shortcuts: shortcuts}
}
