package db

import (
	"fmt"

	"projdesk/models"
)

// CreateLink adds a link to a project and returns the stored row.
func (s *Store) CreateLink(in models.CreateLinkInput) (*models.ProjectLink, error) {
	if in.Title == "" || in.URL == "" {
		return nil, fmt.Errorf("create link: title and url are required: %w", models.ErrConstraint)
	}

	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	link := models.ProjectLink{
		ProjectID: in.ProjectID,
		LinkType:  in.LinkType,
		Title:     in.Title,
		URL:       in.URL,
	}
	if err := s.orm.Create(&link).Error; err != nil {
		return nil, storeErr("create link", err)
	}
	return s.getLinkLocked(link.ID)
}

// GetLink returns a single link by id.
func (s *Store) GetLink(id int64) (*models.ProjectLink, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()
	return s.getLinkLocked(id)
}

func (s *Store) getLinkLocked(id int64) (*models.ProjectLink, error) {
	var link models.ProjectLink
	if err := s.orm.First(&link, id).Error; err != nil {
		return nil, storeErr("get link", err)
	}
	return &link, nil
}

// GetLinks returns a project's links, newest first.
func (s *Store) GetLinks(projectID int64) ([]models.ProjectLink, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	links := []models.ProjectLink{}
	err := s.orm.
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&links).Error
	if err != nil {
		return nil, storeErr("list links", err)
	}
	return links, nil
}

// UpdateLink applies a sparse update and returns the stored row.
func (s *Store) UpdateLink(id int64, in models.UpdateLinkInput) (*models.ProjectLink, error) {
	var sets []setClause
	if in.LinkType != nil {
		sets = append(sets, setClause{"link_type", *in.LinkType})
	}
	if in.Title != nil {
		sets = append(sets, setClause{"title", *in.Title})
	}
	if in.URL != nil {
		sets = append(sets, setClause{"url", *in.URL})
	}

	if err := s.acquire(); err != nil {
		return nil, err
	}
	err := s.execPartialUpdate("project_links", id, sets, false)
	s.release()
	if err != nil {
		return nil, err
	}

	return s.GetLink(id)
}

// DeleteLink removes a link; missing ids are a silent no-op.
func (s *Store) DeleteLink(id int64) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	if err := s.orm.Exec("DELETE FROM project_links WHERE id = ?", id).Error; err != nil {
		return storeErr("delete link", err)
	}
	return nil
}
