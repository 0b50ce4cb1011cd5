package models

import "time"

// Project represents a managed project in the database. The Links collection
// is not persisted inline; the store attaches it on every read.
type Project struct {
	ID                 int64         `gorm:"primaryKey" json:"id"`
	Name               string        `gorm:"not null" json:"name"`
	Description        string        `gorm:"not null" json:"description"`
	LocalPath          string        `gorm:"not null" json:"local_path"`
	DocumentationURL   *string       `json:"documentation_url"`
	AIDocumentationURL *string       `gorm:"column:ai_documentation_url" json:"ai_documentation_url"`
	DriveLink          *string       `json:"drive_link"`
	Notes              *string       `json:"notes"`
	ImageData          *string       `json:"image_data"`
	Links              []ProjectLink `gorm:"-" json:"links"`
	CreatedAt          time.Time     `gorm:"type:datetime" json:"created_at"`
	UpdatedAt          time.Time     `gorm:"type:datetime" json:"updated_at"`
	LastOpenedAt       *time.Time    `gorm:"type:datetime" json:"last_opened_at"`
	OpenedCount        int64         `gorm:"default:0" json:"opened_count"`
	TotalTimeSeconds   int64         `gorm:"default:0" json:"total_time_seconds"`
	Status             string        `gorm:"default:active" json:"status"`
	StatusChangedAt    *time.Time    `gorm:"type:datetime" json:"status_changed_at"`
	IsPinned           bool          `gorm:"default:false" json:"is_pinned"`
	PinnedOrder        int64         `gorm:"default:0" json:"pinned_order"`
}

// ProjectLink is a titled URL owned by a project.
type ProjectLink struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	ProjectID int64     `gorm:"not null" json:"project_id"`
	LinkType  string    `gorm:"not null" json:"link_type"`
	Title     string    `gorm:"not null" json:"title"`
	URL       string    `gorm:"not null" json:"url"`
	CreatedAt time.Time `gorm:"type:datetime" json:"created_at"`
}

// ProjectAttachment is a small file stored inline (base64 in FileData).
type ProjectAttachment struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	ProjectID int64     `gorm:"not null" json:"project_id"`
	Filename  string    `gorm:"not null" json:"filename"`
	FileData  string    `gorm:"not null" json:"file_data"`
	FileSize  int64     `gorm:"not null" json:"file_size"`
	MimeType  string    `gorm:"not null" json:"mime_type"`
	CreatedAt time.Time `gorm:"type:datetime" json:"created_at"`
}

// JournalEntry is a dated note attached to a project.
type JournalEntry struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	ProjectID int64     `gorm:"not null" json:"project_id"`
	Content   string    `gorm:"not null" json:"content"`
	Tags      *string   `json:"tags"`
	CreatedAt time.Time `gorm:"type:datetime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime" json:"updated_at"`
}

func (JournalEntry) TableName() string { return "project_journal" }

// ProjectTodo is a checklist item. CompletedAt is set when the item
// transitions to completed and cleared when it is reopened.
type ProjectTodo struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	ProjectID   int64      `gorm:"not null" json:"project_id"`
	Content     string     `gorm:"not null" json:"content"`
	IsCompleted bool       `gorm:"default:false" json:"is_completed"`
	CreatedAt   time.Time  `gorm:"type:datetime" json:"created_at"`
	CompletedAt *time.Time `gorm:"type:datetime" json:"completed_at"`
}

// ProjectActivity is an append-only timeline entry. Rows are never updated or
// deleted except by cascade when the parent project goes away.
type ProjectActivity struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	ProjectID       int64     `gorm:"not null" json:"project_id"`
	ActivityType    string    `gorm:"not null" json:"activity_type"`
	Description     *string   `json:"description"`
	DurationSeconds *int64    `json:"duration_seconds"`
	CreatedAt       time.Time `gorm:"type:datetime" json:"created_at"`
}

func (ProjectActivity) TableName() string { return "project_activity" }

// CreateProjectInput carries the caller-supplied fields for a new project.
type CreateProjectInput struct {
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	LocalPath          string  `json:"local_path"`
	DocumentationURL   *string `json:"documentation_url"`
	AIDocumentationURL *string `json:"ai_documentation_url"`
	DriveLink          *string `json:"drive_link"`
	Notes              *string `json:"notes"`
	ImageData          *string `json:"image_data"`
}

// UpdateProjectInput is a sparse update: a nil field means "leave unchanged".
type UpdateProjectInput struct {
	Name               *string `json:"name"`
	Description        *string `json:"description"`
	LocalPath          *string `json:"local_path"`
	DocumentationURL   *string `json:"documentation_url"`
	AIDocumentationURL *string `json:"ai_documentation_url"`
	DriveLink          *string `json:"drive_link"`
	Notes              *string `json:"notes"`
	ImageData          *string `json:"image_data"`
}

type CreateLinkInput struct {
	ProjectID int64  `json:"project_id"`
	LinkType  string `json:"link_type"`
	Title     string `json:"title"`
	URL       string `json:"url"`
}

type UpdateLinkInput struct {
	LinkType *string `json:"link_type"`
	Title    *string `json:"title"`
	URL      *string `json:"url"`
}

type CreateAttachmentInput struct {
	ProjectID int64  `json:"project_id"`
	Filename  string `json:"filename"`
	FileData  string `json:"file_data"`
	FileSize  int64  `json:"file_size"`
	MimeType  string `json:"mime_type"`
}

type CreateJournalEntryInput struct {
	ProjectID int64   `json:"project_id"`
	Content   string  `json:"content"`
	Tags      *string `json:"tags"`
}

type UpdateJournalEntryInput struct {
	Content *string `json:"content"`
	Tags    *string `json:"tags"`
}

type CreateTodoInput struct {
	ProjectID int64  `json:"project_id"`
	Content   string `json:"content"`
}

type UpdateTodoInput struct {
	Content     *string `json:"content"`
	IsCompleted *bool   `json:"is_completed"`
}

// ProjectStats aggregates the analytics dashboard numbers.
type ProjectStats struct {
	TotalProjects     int64             `json:"total_projects"`
	ActiveToday       int64             `json:"active_today"`
	TotalTimeHours    float64           `json:"total_time_hours"`
	MostActiveProject *string           `json:"most_active_project"`
	RecentActivities  []ProjectActivity `json:"recent_activities"`
}
