// Package platform maps abstract desktop actions (open a terminal, URL,
// file manager or editor) onto OS-level process launches, driven by the
// per-action strategy in the configuration document.
package platform

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"projdesk/config"
	"projdesk/models"
)

// Launcher is the per-OS capability set. Exactly one implementation is active
// per process, chosen by New at startup.
type Launcher interface {
	OpenTerminal(path string, cfg config.AppConfig) error
	OpenURL(url string, cfg config.AppConfig) error
	OpenFileManager(path string, cfg config.AppConfig) error
	OpenTextEditor(path string, cfg config.AppConfig) error

	ConfigDir() (string, error)
	DataDir() (string, error)
	DefaultBackupPath() (string, error)

	// ExecuteScript substitutes vars into the script body and runs it through
	// the OS default shell. Fire-and-forget like the launch actions.
	ExecuteScript(script string, vars map[string]string) error
}

// New selects the implementation for the running OS. An unsupported OS is a
// startup failure, not a runtime condition.
func New(log *zap.Logger) (Launcher, error) {
	switch runtime.GOOS {
	case "linux":
		return newLinuxLauncher(log), nil
	case "windows":
		return newWindowsLauncher(log), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// spawner launches a process without waiting for it. Tests substitute a fake
// to observe which candidates were tried.
type spawner interface {
	Spawn(name string, args ...string) error
}

// execSpawner is the real thing: a successful Start is a successful launch,
// and the child is never waited on or inspected afterwards.
type execSpawner struct{}

func (execSpawner) Spawn(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// candidate is one entry of an Auto-mode probe list. Args may contain
// {path}/{url} placeholders.
type candidate struct {
	name string
	args []string
}

// probe tries each candidate in order and stops at the first whose launch
// succeeds. All candidates failing to spawn is ErrProgramNotFound.
func probe(sp spawner, candidates []candidate, vars map[string]string, log *zap.Logger) error {
	for _, c := range candidates {
		args := make([]string, len(c.args))
		for i, a := range c.args {
			args[i] = replaceVariables(a, vars)
		}
		if err := sp.Spawn(c.name, args...); err == nil {
			log.Debug("launched program", zap.String("program", c.name))
			return nil
		}
	}
	return fmt.Errorf("no candidate program could be launched: %w", models.ErrProgramNotFound)
}

// spawnCustom runs the user-configured executable for an action, with
// variable substitution applied to each argument.
func spawnCustom(sp spawner, pc config.ProgramConfig, action string, vars map[string]string) error {
	if pc.CustomPath == nil {
		return fmt.Errorf("no custom %s path configured: %w", action, models.ErrConfig)
	}
	args := make([]string, len(pc.CustomArgs))
	for i, a := range pc.CustomArgs {
		args[i] = replaceVariables(a, vars)
	}
	if err := sp.Spawn(*pc.CustomPath, args...); err != nil {
		return fmt.Errorf("failed to launch custom %s %q: %w", action, *pc.CustomPath, err)
	}
	return nil
}

// scriptBody extracts the configured script for an action.
func scriptBody(pc config.ProgramConfig, action string) (string, error) {
	if pc.CustomScript == nil {
		return "", fmt.Errorf("no %s script configured: %w", action, models.ErrConfig)
	}
	return *pc.CustomScript, nil
}

// replaceVariables substitutes {key} tokens with their values. The replace is
// literal, non-recursive and applies no shell escaping: targets are handed to
// the shell exactly as supplied, which existing configurations rely on.
func replaceVariables(s string, vars map[string]string) string {
	for key, value := range vars {
		s = strings.ReplaceAll(s, "{"+key+"}", value)
	}
	return s
}
