package platform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"projdesk/config"
	"projdesk/models"
)

// fakeSpawner records every launch attempt and fails the first failures of
// them, so probe order and substitution are observable.
type fakeSpawner struct {
	calls    [][]string
	failures int
}

func (f *fakeSpawner) Spawn(name string, args ...string) error {
	f.calls = append(f.calls, append([]string{name}, args...))
	if len(f.calls) <= f.failures {
		return errors.New("spawn failed")
	}
	return nil
}

func testLauncher(failures int) (*linuxLauncher, *fakeSpawner) {
	sp := &fakeSpawner{failures: failures}
	return &linuxLauncher{sp: sp, log: zap.NewNop()}, sp
}

func TestReplaceVariables(t *testing.T) {
	vars := map[string]string{"path": "/tmp/proj", "url": "https://example.com"}

	assert.Equal(t, "cd /tmp/proj", replaceVariables("cd {path}", vars))
	assert.Equal(t, "open https://example.com", replaceVariables("open {url}", vars))
	assert.Equal(t, "{unknown} stays", replaceVariables("{unknown} stays", vars))
	assert.Equal(t, "no tokens", replaceVariables("no tokens", vars))
	// No shell escaping: spaces and quotes pass through untouched.
	assert.Equal(t, `cd /tmp/my proj`, replaceVariables("cd {path}", map[string]string{"path": "/tmp/my proj"}))
}

func TestAutoModeProbesInOrder(t *testing.T) {
	launcher, sp := testLauncher(2)
	cfg := config.Defaults()

	require.NoError(t, launcher.OpenTerminal("/tmp/proj", cfg))
	require.Len(t, sp.calls, 3)
	assert.Equal(t, "konsole", sp.calls[0][0])
	assert.Equal(t, "gnome-terminal", sp.calls[1][0])
	assert.Equal(t, []string{"alacritty", "--working-directory", "/tmp/proj"}, sp.calls[2])
}

func TestAutoModeExhaustsCandidates(t *testing.T) {
	launcher, sp := testLauncher(len(linuxTerminals))
	cfg := config.Defaults()

	err := launcher.OpenTerminal("/tmp/proj", cfg)
	assert.ErrorIs(t, err, models.ErrProgramNotFound)
	assert.Len(t, sp.calls, len(linuxTerminals))
}

func TestDefaultModeFallsBackToProbe(t *testing.T) {
	launcher, sp := testLauncher(1)
	cfg := config.Defaults()
	cfg.Platform.Terminal.Mode = config.ModeDefault

	require.NoError(t, launcher.OpenTerminal("/tmp/proj", cfg))
	require.Len(t, sp.calls, 2)
	assert.Equal(t, "x-terminal-emulator", sp.calls[0][0])
	assert.Equal(t, "konsole", sp.calls[1][0])
}

func TestCustomModeSubstitutesArgs(t *testing.T) {
	launcher, sp := testLauncher(0)
	cfg := config.Defaults()
	path := "/usr/bin/myterm"
	cfg.Platform.Terminal.Mode = config.ModeCustom
	cfg.Platform.Terminal.CustomPath = &path
	cfg.Platform.Terminal.CustomArgs = []string{"--workdir", "{path}"}

	require.NoError(t, launcher.OpenTerminal("/tmp/proj", cfg))
	require.Len(t, sp.calls, 1)
	assert.Equal(t, []string{"/usr/bin/myterm", "--workdir", "/tmp/proj"}, sp.calls[0])
}

func TestCustomModeWithoutPath(t *testing.T) {
	launcher, sp := testLauncher(0)
	cfg := config.Defaults()
	cfg.Platform.Terminal.Mode = config.ModeCustom

	err := launcher.OpenTerminal("/tmp/proj", cfg)
	assert.ErrorIs(t, err, models.ErrConfig)
	assert.Empty(t, sp.calls, "misconfiguration must not launch anything")
}

func TestScriptMode(t *testing.T) {
	launcher, sp := testLauncher(0)
	cfg := config.Defaults()
	script := "cd {path} && make run"
	cfg.Platform.Terminal.Mode = config.ModeScript
	cfg.Platform.Terminal.CustomScript = &script

	require.NoError(t, launcher.OpenTerminal("/tmp/proj", cfg))
	require.Len(t, sp.calls, 1)
	assert.Equal(t, []string{"bash", "-c", "cd /tmp/proj && make run"}, sp.calls[0])
}

func TestScriptModeWithoutScript(t *testing.T) {
	launcher, sp := testLauncher(0)
	cfg := config.Defaults()
	cfg.Platform.Browser.Mode = config.ModeScript

	err := launcher.OpenURL("https://example.com", cfg)
	assert.ErrorIs(t, err, models.ErrConfig)
	assert.Empty(t, sp.calls)
}

func TestOpenURLUsesDefaultHandler(t *testing.T) {
	launcher, sp := testLauncher(0)
	cfg := config.Defaults()

	require.NoError(t, launcher.OpenURL("https://example.com", cfg))
	require.Len(t, sp.calls, 1)
	assert.Equal(t, []string{"xdg-open", "https://example.com"}, sp.calls[0])
}

func TestOpenFileManagerAutoProbes(t *testing.T) {
	launcher, sp := testLauncher(1)
	cfg := config.Defaults()

	require.NoError(t, launcher.OpenFileManager("/tmp/proj", cfg))
	require.Len(t, sp.calls, 2)
	assert.Equal(t, "nautilus", sp.calls[0][0])
	assert.Equal(t, []string{"dolphin", "/tmp/proj"}, sp.calls[1])
}

func TestOpenTextEditorCustom(t *testing.T) {
	launcher, sp := testLauncher(0)
	cfg := config.Defaults()
	path := "/usr/bin/code"
	cfg.Platform.TextEditor.Mode = config.ModeCustom
	cfg.Platform.TextEditor.CustomPath = &path
	cfg.Platform.TextEditor.CustomArgs = []string{"{path}"}

	require.NoError(t, launcher.OpenTextEditor("/tmp/proj/main.go", cfg))
	require.Len(t, sp.calls, 1)
	assert.Equal(t, []string{"/usr/bin/code", "/tmp/proj/main.go"}, sp.calls[0])
}

func TestXtermFallbackCommandLine(t *testing.T) {
	launcher, sp := testLauncher(len(linuxTerminals) - 1)
	cfg := config.Defaults()

	require.NoError(t, launcher.OpenTerminal("/tmp/proj", cfg))
	last := sp.calls[len(sp.calls)-1]
	assert.Equal(t, []string{"xterm", "-e", "cd '/tmp/proj' && exec $SHELL"}, last)
}

func TestWindowsTerminalProbe(t *testing.T) {
	sp := &fakeSpawner{failures: 1}
	launcher := &windowsLauncher{sp: sp, log: zap.NewNop()}
	cfg := config.Defaults()

	require.NoError(t, launcher.OpenTerminal(`C:\proj`, cfg))
	require.Len(t, sp.calls, 2)
	assert.Equal(t, []string{"wt", "-d", `C:\proj`}, sp.calls[0])
	assert.Equal(t, []string{"powershell", "-NoExit", "-Command", `Set-Location 'C:\proj'`}, sp.calls[1])
}
