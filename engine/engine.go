// Package engine is the command surface of the application: one method per
// operation the UI can invoke, delegating to the store, the configuration
// manager and the platform launcher.
package engine

import (
	"go.uber.org/zap"

	"projdesk/config"
	"projdesk/db"
	"projdesk/models"
	"projdesk/platform"
)

// Engine bundles the backend subsystems behind a flat method set.
type Engine struct {
	store    *db.Store
	cfg      *config.Manager
	launcher platform.Launcher
	log      *zap.Logger
}

func New(store *db.Store, cfg *config.Manager, launcher platform.Launcher, log *zap.Logger) *Engine {
	return &Engine{store: store, cfg: cfg, launcher: launcher, log: log}
}

// Projects

func (e *Engine) CreateProject(in models.CreateProjectInput) (*models.Project, error) {
	return e.store.CreateProject(in)
}

func (e *Engine) GetProject(id int64) (*models.Project, error) {
	return e.store.GetProject(id)
}

func (e *Engine) ListProjects() ([]models.Project, error) {
	return e.store.ListProjects()
}

func (e *Engine) SearchProjects(query string) ([]models.Project, error) {
	return e.store.SearchProjects(query)
}

func (e *Engine) UpdateProject(id int64, in models.UpdateProjectInput) (*models.Project, error) {
	return e.store.UpdateProject(id, in)
}

func (e *Engine) DeleteProject(id int64) error {
	return e.store.DeleteProject(id)
}

func (e *Engine) UpdateProjectStatus(id int64, status string) error {
	return e.store.UpdateProjectStatus(id, status)
}

func (e *Engine) TogglePin(id int64) (bool, error) {
	return e.store.TogglePin(id)
}

func (e *Engine) ReorderPinned(ids []int64) error {
	return e.store.ReorderPinned(ids)
}

// Links

func (e *Engine) CreateLink(in models.CreateLinkInput) (*models.ProjectLink, error) {
	return e.store.CreateLink(in)
}

func (e *Engine) GetLinks(projectID int64) ([]models.ProjectLink, error) {
	return e.store.GetLinks(projectID)
}

func (e *Engine) UpdateLink(id int64, in models.UpdateLinkInput) (*models.ProjectLink, error) {
	return e.store.UpdateLink(id, in)
}

func (e *Engine) DeleteLink(id int64) error {
	return e.store.DeleteLink(id)
}

// Attachments

func (e *Engine) AddAttachment(in models.CreateAttachmentInput) (*models.ProjectAttachment, error) {
	return e.store.CreateAttachment(in)
}

func (e *Engine) GetAttachments(projectID int64) ([]models.ProjectAttachment, error) {
	return e.store.GetAttachments(projectID)
}

func (e *Engine) DeleteAttachment(id int64) error {
	return e.store.DeleteAttachment(id)
}

// Journal

func (e *Engine) CreateJournalEntry(in models.CreateJournalEntryInput) (*models.JournalEntry, error) {
	return e.store.CreateJournalEntry(in)
}

func (e *Engine) GetJournalEntries(projectID int64) ([]models.JournalEntry, error) {
	return e.store.GetJournalEntries(projectID)
}

func (e *Engine) UpdateJournalEntry(id int64, in models.UpdateJournalEntryInput) (*models.JournalEntry, error) {
	return e.store.UpdateJournalEntry(id, in)
}

func (e *Engine) DeleteJournalEntry(id int64) error {
	return e.store.DeleteJournalEntry(id)
}

// Todos

func (e *Engine) CreateTodo(in models.CreateTodoInput) (*models.ProjectTodo, error) {
	return e.store.CreateTodo(in)
}

func (e *Engine) GetTodos(projectID int64) ([]models.ProjectTodo, error) {
	return e.store.GetTodos(projectID)
}

func (e *Engine) UpdateTodo(id int64, in models.UpdateTodoInput) (*models.ProjectTodo, error) {
	return e.store.UpdateTodo(id, in)
}

func (e *Engine) DeleteTodo(id int64) error {
	return e.store.DeleteTodo(id)
}

// Analytics

func (e *Engine) TrackProjectOpen(id int64) error {
	return e.store.TrackOpen(id)
}

func (e *Engine) AddProjectTime(id int64, seconds int64) error {
	return e.store.AddTime(id, seconds)
}

func (e *Engine) GetProjectStats() (*models.ProjectStats, error) {
	return e.store.GetStats()
}

func (e *Engine) GetProjectActivities(projectID int64, limit int) ([]models.ProjectActivity, error) {
	return e.store.GetActivities(projectID, limit)
}

// Platform actions

func (e *Engine) OpenTerminal(path string) error {
	e.log.Info("opening terminal", zap.String("path", path))
	return e.launcher.OpenTerminal(path, e.cfg.Get())
}

func (e *Engine) OpenURL(url string) error {
	e.log.Info("opening url", zap.String("url", url))
	return e.launcher.OpenURL(url, e.cfg.Get())
}

func (e *Engine) OpenFileManager(path string) error {
	e.log.Info("opening file manager", zap.String("path", path))
	return e.launcher.OpenFileManager(path, e.cfg.Get())
}

func (e *Engine) OpenTextEditor(path string) error {
	e.log.Info("opening text editor", zap.String("path", path))
	return e.launcher.OpenTextEditor(path, e.cfg.Get())
}

func (e *Engine) DetectPrograms() platform.DetectedPrograms {
	return platform.DetectPrograms()
}

// Configuration

func (e *Engine) GetConfig() config.AppConfig {
	return e.cfg.Get()
}

func (e *Engine) UpdateConfig(cfg config.AppConfig) error {
	return e.cfg.Update(cfg)
}

func (e *Engine) ResetConfig() (config.AppConfig, error) {
	return e.cfg.Reset()
}
