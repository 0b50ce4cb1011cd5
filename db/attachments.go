package db

import (
	"fmt"

	"projdesk/models"
)

// MaxAttachmentSize is the hard cap on stored file size: 5 MiB.
const MaxAttachmentSize int64 = 5 * 1024 * 1024

// CreateAttachment stores a file inline. Requests over MaxAttachmentSize are
// rejected before anything touches the database.
func (s *Store) CreateAttachment(in models.CreateAttachmentInput) (*models.ProjectAttachment, error) {
	if in.FileSize > MaxAttachmentSize {
		return nil, fmt.Errorf("create attachment: file size %d exceeds %d byte limit: %w",
			in.FileSize, MaxAttachmentSize, models.ErrConstraint)
	}
	if in.Filename == "" {
		return nil, fmt.Errorf("create attachment: filename is required: %w", models.ErrConstraint)
	}

	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	attachment := models.ProjectAttachment{
		ProjectID: in.ProjectID,
		Filename:  in.Filename,
		FileData:  in.FileData,
		FileSize:  in.FileSize,
		MimeType:  in.MimeType,
	}
	if err := s.orm.Create(&attachment).Error; err != nil {
		return nil, storeErr("create attachment", err)
	}
	return s.getAttachmentLocked(attachment.ID)
}

// GetAttachment returns a single attachment by id.
func (s *Store) GetAttachment(id int64) (*models.ProjectAttachment, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()
	return s.getAttachmentLocked(id)
}

func (s *Store) getAttachmentLocked(id int64) (*models.ProjectAttachment, error) {
	var attachment models.ProjectAttachment
	if err := s.orm.First(&attachment, id).Error; err != nil {
		return nil, storeErr("get attachment", err)
	}
	return &attachment, nil
}

// GetAttachments returns a project's attachments, newest first.
func (s *Store) GetAttachments(projectID int64) ([]models.ProjectAttachment, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	attachments := []models.ProjectAttachment{}
	err := s.orm.
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&attachments).Error
	if err != nil {
		return nil, storeErr("list attachments", err)
	}
	return attachments, nil
}

// DeleteAttachment removes an attachment; missing ids are a silent no-op.
func (s *Store) DeleteAttachment(id int64) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	if err := s.orm.Exec("DELETE FROM project_attachments WHERE id = ?", id).Error; err != nil {
		return storeErr("delete attachment", err)
	}
	return nil
}
