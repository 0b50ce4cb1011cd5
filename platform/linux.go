package platform

import (
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"go.uber.org/zap"

	"projdesk/config"
	"projdesk/models"
)

// linuxTerminals is the Auto-mode probe order. xterm last: it has no
// working-directory flag, so it gets a cd-then-shell command line instead.
var linuxTerminals = []candidate{
	{"konsole", []string{"--workdir", "{path}"}},
	{"gnome-terminal", []string{"--working-directory", "{path}"}},
	{"alacritty", []string{"--working-directory", "{path}"}},
	{"kitty", []string{"--directory", "{path}"}},
	{"xfce4-terminal", []string{"--working-directory", "{path}"}},
	{"tilix", []string{"-w", "{path}"}},
	{"xterm", []string{"-e", "cd '{path}' && exec $SHELL"}},
}

var linuxFileManagers = []candidate{
	{"nautilus", []string{"{path}"}},
	{"dolphin", []string{"{path}"}},
	{"thunar", []string{"{path}"}},
	{"pcmanfm", []string{"{path}"}},
	{"nemo", []string{"{path}"}},
	{"xdg-open", []string{"{path}"}},
}

type linuxLauncher struct {
	sp  spawner
	log *zap.Logger
}

func newLinuxLauncher(log *zap.Logger) *linuxLauncher {
	return &linuxLauncher{sp: execSpawner{}, log: log}
}

func (l *linuxLauncher) OpenTerminal(path string, cfg config.AppConfig) error {
	pc := cfg.Platform.Terminal
	vars := map[string]string{"path": path}

	switch pc.Mode {
	case config.ModeCustom:
		return spawnCustom(l.sp, pc, "terminal", vars)
	case config.ModeScript:
		script, err := scriptBody(pc, "terminal")
		if err != nil {
			return err
		}
		return l.ExecuteScript(script, vars)
	case config.ModeDefault:
		// Debian-alternatives symlink; absent on many distros, so the probe
		// list stays as the fallback.
		if err := l.sp.Spawn("x-terminal-emulator", "--working-directory", path); err == nil {
			return nil
		}
		fallthrough
	default:
		return probe(l.sp, linuxTerminals, vars, l.log)
	}
}

func (l *linuxLauncher) OpenURL(url string, cfg config.AppConfig) error {
	pc := cfg.Platform.Browser
	vars := map[string]string{"url": url}

	switch pc.Mode {
	case config.ModeCustom:
		return spawnCustom(l.sp, pc, "browser", vars)
	case config.ModeScript:
		script, err := scriptBody(pc, "browser")
		if err != nil {
			return err
		}
		return l.ExecuteScript(script, vars)
	default:
		if err := l.sp.Spawn("xdg-open", url); err != nil {
			return fmt.Errorf("failed to open url with xdg-open: %w", models.ErrProgramNotFound)
		}
		return nil
	}
}

func (l *linuxLauncher) OpenFileManager(path string, cfg config.AppConfig) error {
	pc := cfg.Platform.FileManager
	vars := map[string]string{"path": path}

	switch pc.Mode {
	case config.ModeCustom:
		return spawnCustom(l.sp, pc, "file manager", vars)
	case config.ModeScript:
		script, err := scriptBody(pc, "file manager")
		if err != nil {
			return err
		}
		return l.ExecuteScript(script, vars)
	case config.ModeDefault:
		if err := l.sp.Spawn("xdg-open", path); err == nil {
			return nil
		}
		fallthrough
	default:
		return probe(l.sp, linuxFileManagers, vars, l.log)
	}
}

func (l *linuxLauncher) OpenTextEditor(path string, cfg config.AppConfig) error {
	pc := cfg.Platform.TextEditor
	vars := map[string]string{"path": path}

	switch pc.Mode {
	case config.ModeCustom:
		return spawnCustom(l.sp, pc, "text editor", vars)
	case config.ModeScript:
		script, err := scriptBody(pc, "text editor")
		if err != nil {
			return err
		}
		return l.ExecuteScript(script, vars)
	default:
		if err := l.sp.Spawn("xdg-open", path); err != nil {
			return fmt.Errorf("failed to open editor with xdg-open: %w", models.ErrProgramNotFound)
		}
		return nil
	}
}

func (l *linuxLauncher) ExecuteScript(script string, vars map[string]string) error {
	body := replaceVariables(script, vars)
	if err := l.sp.Spawn("bash", "-c", body); err != nil {
		return fmt.Errorf("failed to run script: %w", err)
	}
	return nil
}

func (l *linuxLauncher) ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(dir, "projdesk"), nil
}

func (l *linuxLauncher) DataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "projdesk"), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "projdesk"), nil
}

func (l *linuxLauncher) DefaultBackupPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, "Backups", "projdesk"), nil
}
