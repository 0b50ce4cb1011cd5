package engine

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"
)

// defaultRsyncIgnore seeds projects that have no exclusion file yet with the
// usual build, dependency and editor noise.
const defaultRsyncIgnore = `# Files and directories excluded from sync

# Node.js dependencies
node_modules/
npm-debug.log*
yarn-debug.log*
yarn-error.log*
pnpm-debug.log*

# Build output
dist/
build/
out/
.next/
.nuxt/

# Temporary files
.tmp/
temp/
*.tmp
*.temp

# Logs
*.log
logs/

# OS noise
.DS_Store
Thumbs.db
*.swp
*.swo
*~

# IDE/editor state
.vscode/settings.json
.idea/
*.sublime-*

# Version control
.git/
.gitignore

# Caches
.cache/
.parcel-cache/

# Test output
coverage/
.nyc_output/

# Backups
*.backup
*.bak
`

// SyncProjectToBackup mirrors a project directory into the configured backup
// location, respecting a .rsyncignore file it seeds on first use. Unlike the
// launcher actions this waits for rsync and inspects its exit status.
func (e *Engine) SyncProjectToBackup(projectID int64) (string, error) {
	project, err := e.store.GetProject(projectID)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve project: %w", err)
	}

	cfg := e.cfg.Get()
	var base string
	if cfg.Backup.DefaultPath != nil && *cfg.Backup.DefaultPath != "" {
		base = *cfg.Backup.DefaultPath
	} else {
		base, err = e.launcher.DefaultBackupPath()
		if err != nil {
			return "", err
		}
	}
	destination := filepath.Join(base, project.Name)

	if err := os.MkdirAll(destination, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory %s: %w", destination, err)
	}

	ignorePath := filepath.Join(project.LocalPath, ".rsyncignore")
	if _, err := os.Stat(ignorePath); os.IsNotExist(err) {
		e.log.Info("seeding .rsyncignore", zap.String("path", ignorePath))
		if err := os.WriteFile(ignorePath, []byte(defaultRsyncIgnore), 0o644); err != nil {
			return "", fmt.Errorf("failed to create .rsyncignore: %w", err)
		}
	}

	// Trailing slash on the source: sync contents, not the directory itself.
	cmd := exec.Command("rsync",
		"-av",
		"--delete",
		"--progress",
		"--exclude-from=.rsyncignore",
		project.LocalPath+"/",
		destination,
	)
	cmd.Dir = project.LocalPath
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("rsync failed: %w: %s", err, string(output))
	}

	e.log.Info("project synced",
		zap.String("source", project.LocalPath),
		zap.String("destination", destination))
	return fmt.Sprintf("Project synced: %s -> %s", project.LocalPath, destination), nil
}

// SyncProject mirrors an arbitrary directory into destinationPath, copying
// only files newer than the destination's.
func (e *Engine) SyncProject(sourcePath, destinationPath string) (string, error) {
	if _, err := exec.LookPath("rsync"); err != nil {
		return "", fmt.Errorf("rsync is not installed: %w", err)
	}

	cmd := exec.Command("rsync",
		"-av",
		"--update",
		"--progress",
		sourcePath+"/",
		destinationPath,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("rsync failed: %w: %s", err, string(output))
	}

	e.log.Info("directory synced",
		zap.String("source", sourcePath),
		zap.String("destination", destinationPath))
	return fmt.Sprintf("Sync completed to: %s", destinationPath), nil
}
