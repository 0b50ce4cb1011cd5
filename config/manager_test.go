package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"projdesk/models"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	mgr, err := NewManager(dir, zap.NewNop())
	require.NoError(t, err)
	return mgr, dir
}

func TestFirstRunWritesDefaults(t *testing.T) {
	mgr, dir := newTestManager(t)

	_, err := os.Stat(filepath.Join(dir, "config.json"))
	require.NoError(t, err, "config file must exist after first run")

	cfg := mgr.Get()
	assert.Equal(t, Version, cfg.Version)
	assert.Equal(t, ModeAuto, cfg.Platform.Terminal.Mode)
	assert.Equal(t, ThemeAuto, cfg.Ui.Theme)
	assert.True(t, cfg.Ui.ConfirmDelete)
	require.NotNil(t, cfg.Shortcuts)
	assert.True(t, cfg.Shortcuts.Enabled)
	assert.Contains(t, cfg.Shortcuts.Shortcuts, "new_project")
}

func TestUpdatePersistsAcrossReload(t *testing.T) {
	mgr, dir := newTestManager(t)

	cfg := mgr.Get()
	cfg.Ui.Theme = ThemeDark
	cfg.Ui.Language = "es"
	cfg.Platform.Browser.Mode = ModeScript
	script := "firefox {url}"
	cfg.Platform.Browser.CustomScript = &script
	require.NoError(t, mgr.Update(cfg))

	reloaded, err := NewManager(dir, zap.NewNop())
	require.NoError(t, err)
	got := reloaded.Get()
	assert.Equal(t, ThemeDark, got.Ui.Theme)
	assert.Equal(t, "es", got.Ui.Language)
	assert.Equal(t, ModeScript, got.Platform.Browser.Mode)
	require.NotNil(t, got.Platform.Browser.CustomScript)
	assert.Equal(t, "firefox {url}", *got.Platform.Browser.CustomScript)
}

func TestUpdateRejectsMissingTerminalBinary(t *testing.T) {
	mgr, _ := newTestManager(t)

	cfg := mgr.Get()
	missing := "/nonexistent/bin/myterm"
	cfg.Platform.Terminal.Mode = ModeCustom
	cfg.Platform.Terminal.CustomPath = &missing
	err := mgr.Update(cfg)
	assert.ErrorIs(t, err, models.ErrConfig)

	got := mgr.Get()
	assert.Equal(t, ModeAuto, got.Platform.Terminal.Mode, "rejected update must not change state")
	assert.Nil(t, got.Platform.Terminal.CustomPath)
}

func TestUpdateCreatesBackupPath(t *testing.T) {
	mgr, _ := newTestManager(t)

	backupDir := filepath.Join(t.TempDir(), "backups", "nested")
	cfg := mgr.Get()
	cfg.Backup.DefaultPath = &backupDir
	require.NoError(t, mgr.Update(cfg))

	info, err := os.Stat(backupDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestConcurrentUpdatesKeepFileConsistent(t *testing.T) {
	mgr, dir := newTestManager(t)

	var wg sync.WaitGroup
	for _, language := range []string{"en", "es", "de", "fr"} {
		wg.Add(1)
		go func(language string) {
			defer wg.Done()
			cfg := mgr.Get()
			cfg.Ui.Language = language
			assert.NoError(t, mgr.Update(cfg))
		}(language)
	}
	wg.Wait()

	// Whichever update landed last must have written both memory and disk.
	reloaded, err := NewManager(dir, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, mgr.Get().Ui.Language, reloaded.Get().Ui.Language)
}

func TestReset(t *testing.T) {
	mgr, _ := newTestManager(t)

	cfg := mgr.Get()
	cfg.Ui.Theme = ThemeDark
	require.NoError(t, mgr.Update(cfg))

	restored, err := mgr.Reset()
	require.NoError(t, err)
	assert.Equal(t, ThemeAuto, restored.Ui.Theme)
	assert.Equal(t, ThemeAuto, mgr.Get().Ui.Theme)
}

func TestGetReturnsIsolatedCopy(t *testing.T) {
	mgr, _ := newTestManager(t)

	cfg := mgr.Get()
	cfg.Platform.Environment["INJECTED"] = "value"
	cfg.Ui.Theme = ThemeDark
	if cfg.Shortcuts != nil {
		cfg.Shortcuts.Shortcuts["new_project"] = ShortcutBinding{Key: "Ctrl+X", Enabled: false}
	}

	fresh := mgr.Get()
	assert.NotContains(t, fresh.Platform.Environment, "INJECTED")
	assert.Equal(t, ThemeAuto, fresh.Ui.Theme)
	require.NotNil(t, fresh.Shortcuts)
	assert.NotEqual(t, "Ctrl+X", fresh.Shortcuts.Shortcuts["new_project"].Key)
}

func TestCloneIsDeep(t *testing.T) {
	original := Defaults()
	path := "/usr/bin/kitty"
	original.Platform.Terminal.CustomPath = &path
	original.Platform.Terminal.CustomArgs = []string{"--directory", "{path}"}

	clone := original.Clone()
	*clone.Platform.Terminal.CustomPath = "/usr/bin/other"
	clone.Platform.Terminal.CustomArgs[0] = "--mutated"
	clone.Platform.Environment["EXTRA"] = "x"

	assert.Equal(t, "/usr/bin/kitty", *original.Platform.Terminal.CustomPath)
	assert.Equal(t, "--directory", original.Platform.Terminal.CustomArgs[0])
	assert.NotContains(t, original.Platform.Environment, "EXTRA")
}
