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

// windowsTerminals prefers Windows Terminal when installed, then PowerShell,
// then classic cmd.
var windowsTerminals = []candidate{
	{"wt", []string{"-d", "{path}"}},
	{"powershell", []string{"-NoExit", "-Command", "Set-Location '{path}'"}},
	{"cmd", []string{"/K", `cd /d "{path}"`}},
}

var windowsFileManagers = []candidate{
	{"explorer", []string{"{path}"}},
}

type windowsLauncher struct {
	sp  spawner
	log *zap.Logger
}

func newWindowsLauncher(log *zap.Logger) *windowsLauncher {
	return &windowsLauncher{sp: execSpawner{}, log: log}
}

func (w *windowsLauncher) OpenTerminal(path string, cfg config.AppConfig) error {
	pc := cfg.Platform.Terminal
	vars := map[string]string{"path": path}

	switch pc.Mode {
	case config.ModeCustom:
		return spawnCustom(w.sp, pc, "terminal", vars)
	case config.ModeScript:
		script, err := scriptBody(pc, "terminal")
		if err != nil {
			return err
		}
		return w.ExecuteScript(script, vars)
	case config.ModeDefault:
		if err := w.sp.Spawn("cmd", "/K", `cd /d "`+path+`"`); err == nil {
			return nil
		}
		fallthrough
	default:
		return probe(w.sp, windowsTerminals, vars, w.log)
	}
}

func (w *windowsLauncher) OpenURL(url string, cfg config.AppConfig) error {
	pc := cfg.Platform.Browser
	vars := map[string]string{"url": url}

	switch pc.Mode {
	case config.ModeCustom:
		return spawnCustom(w.sp, pc, "browser", vars)
	case config.ModeScript:
		script, err := scriptBody(pc, "browser")
		if err != nil {
			return err
		}
		return w.ExecuteScript(script, vars)
	default:
		// "start" is a cmd builtin, not an executable.
		if err := w.sp.Spawn("cmd", "/c", "start", url); err != nil {
			return fmt.Errorf("failed to open url: %w", models.ErrProgramNotFound)
		}
		return nil
	}
}

func (w *windowsLauncher) OpenFileManager(path string, cfg config.AppConfig) error {
	pc := cfg.Platform.FileManager
	vars := map[string]string{"path": path}

	switch pc.Mode {
	case config.ModeCustom:
		return spawnCustom(w.sp, pc, "file manager", vars)
	case config.ModeScript:
		script, err := scriptBody(pc, "file manager")
		if err != nil {
			return err
		}
		return w.ExecuteScript(script, vars)
	case config.ModeDefault:
		if err := w.sp.Spawn("explorer", path); err == nil {
			return nil
		}
		fallthrough
	default:
		return probe(w.sp, windowsFileManagers, vars, w.log)
	}
}

func (w *windowsLauncher) OpenTextEditor(path string, cfg config.AppConfig) error {
	pc := cfg.Platform.TextEditor
	vars := map[string]string{"path": path}

	switch pc.Mode {
	case config.ModeCustom:
		return spawnCustom(w.sp, pc, "text editor", vars)
	case config.ModeScript:
		script, err := scriptBody(pc, "text editor")
		if err != nil {
			return err
		}
		return w.ExecuteScript(script, vars)
	default:
		// "start" with an empty title routes the path through the file-type
		// association, falling back to notepad.
		if err := w.sp.Spawn("cmd", "/c", "start", "", path); err == nil {
			return nil
		}
		if err := w.sp.Spawn("notepad", path); err != nil {
			return fmt.Errorf("failed to open editor: %w", models.ErrProgramNotFound)
		}
		return nil
	}
}

func (w *windowsLauncher) ExecuteScript(script string, vars map[string]string) error {
	body := replaceVariables(script, vars)
	if err := w.sp.Spawn("cmd", "/C", body); err != nil {
		return fmt.Errorf("failed to run script: %w", err)
	}
	return nil
}

func (w *windowsLauncher) ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(dir, "projdesk"), nil
}

func (w *windowsLauncher) DataDir() (string, error) {
	if local := os.Getenv("LOCALAPPDATA"); local != "" {
		return filepath.Join(local, "projdesk"), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, "AppData", "Local", "projdesk"), nil
}

func (w *windowsLauncher) DefaultBackupPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, "Documents", "projdesk-backups"), nil
}
