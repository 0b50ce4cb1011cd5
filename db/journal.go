package db

import (
	"fmt"

	"projdesk/models"
)

// CreateJournalEntry adds a journal entry and returns the stored row.
func (s *Store) CreateJournalEntry(in models.CreateJournalEntryInput) (*models.JournalEntry, error) {
	if in.Content == "" {
		return nil, fmt.Errorf("create journal entry: content is required: %w", models.ErrConstraint)
	}

	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	entry := models.JournalEntry{
		ProjectID: in.ProjectID,
		Content:   in.Content,
		Tags:      in.Tags,
	}
	if err := s.orm.Create(&entry).Error; err != nil {
		return nil, storeErr("create journal entry", err)
	}
	return s.getJournalEntryLocked(entry.ID)
}

// GetJournalEntry returns a single journal entry by id.
func (s *Store) GetJournalEntry(id int64) (*models.JournalEntry, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()
	return s.getJournalEntryLocked(id)
}

func (s *Store) getJournalEntryLocked(id int64) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	if err := s.orm.First(&entry, id).Error; err != nil {
		return nil, storeErr("get journal entry", err)
	}
	return &entry, nil
}

// GetJournalEntries returns a project's journal, newest first.
func (s *Store) GetJournalEntries(projectID int64) ([]models.JournalEntry, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	entries := []models.JournalEntry{}
	err := s.orm.
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, storeErr("list journal entries", err)
	}
	return entries, nil
}

// UpdateJournalEntry applies a sparse update, bumps updated_at and returns
// the stored row.
func (s *Store) UpdateJournalEntry(id int64, in models.UpdateJournalEntryInput) (*models.JournalEntry, error) {
	var sets []setClause
	if in.Content != nil {
		sets = append(sets, setClause{"content", *in.Content})
	}
	if in.Tags != nil {
		sets = append(sets, setClause{"tags", *in.Tags})
	}

	if err := s.acquire(); err != nil {
		return nil, err
	}
	err := s.execPartialUpdate("project_journal", id, sets, true)
	s.release()
	if err != nil {
		return nil, err
	}

	return s.GetJournalEntry(id)
}

// DeleteJournalEntry removes an entry; missing ids are a silent no-op.
func (s *Store) DeleteJournalEntry(id int64) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	if err := s.orm.Exec("DELETE FROM project_journal WHERE id = ?", id).Error; err != nil {
		return storeErr("delete journal entry", err)
	}
	return nil
}
