package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// BackupData is a generated backup document plus the suggested location to
// write it. Writing is a separate step so the UI can let the user pick a
// different destination first.
type BackupData struct {
	Content  string `json:"content"`
	Path     string `json:"path"`
	Filename string `json:"filename"`
}

// CreateProjectBackup renders a project's metadata as a markdown document.
// The suggested path places it inside the project directory itself.
func (e *Engine) CreateProjectBackup(projectID int64) (*BackupData, error) {
	project, err := e.store.GetProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve project: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s - Project Information\n\n", project.Name)
	fmt.Fprintf(&b, "**Generated:** %s\n\n---\n\n", time.Now().Format("2006-01-02 15:04:05"))

	b.WriteString("## General\n\n")
	fmt.Fprintf(&b, "- **Name:** %s\n", project.Name)
	fmt.Fprintf(&b, "- **Description:** %s\n", project.Description)
	fmt.Fprintf(&b, "- **Local Path:** `%s`\n\n---\n\n", project.LocalPath)

	b.WriteString("## Links and Resources\n\n")
	fmt.Fprintf(&b, "### Documentation\n%s\n\n", markdownLink(project.DocumentationURL))
	fmt.Fprintf(&b, "### AI Documentation\n%s\n\n", markdownLink(project.AIDocumentationURL))
	fmt.Fprintf(&b, "### Drive\n%s\n\n---\n\n", markdownLink(project.DriveLink))

	b.WriteString("## Timestamps\n\n")
	fmt.Fprintf(&b, "- **Created:** %s\n", project.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- **Last updated:** %s\n\n---\n\n", project.UpdatedAt.Format("2006-01-02 15:04:05"))
	b.WriteString("*Backup generated automatically by projdesk*\n")

	filename := strings.ReplaceAll(project.Name, " ", "_") + "_BACKUP.md"
	data := &BackupData{
		Content:  b.String(),
		Path:     filepath.Join(project.LocalPath, filename),
		Filename: filename,
	}
	e.log.Info("backup document generated",
		zap.Int64("project_id", projectID),
		zap.Int("bytes", len(data.Content)))
	return data, nil
}

func markdownLink(url *string) string {
	if url == nil || *url == "" {
		return "Not configured"
	}
	return fmt.Sprintf("[%s](%s)", *url, *url)
}

// WriteFileToPath writes content to path, creating parent directories as
// needed.
func (e *Engine) WriteFileToPath(path, content string) error {
	if parent := filepath.Dir(path); parent != "" {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", parent, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	e.log.Info("file written", zap.String("path", path))
	return nil
}
