package db

import (
	"fmt"

	"go.uber.org/zap"

	"projdesk/models"
)

// CreateProject inserts a new project and returns the stored row, re-read by
// its assigned id so server-computed defaults are included.
func (s *Store) CreateProject(in models.CreateProjectInput) (*models.Project, error) {
	if in.Name == "" || in.LocalPath == "" {
		return nil, fmt.Errorf("create project: name and local_path are required: %w", models.ErrConstraint)
	}

	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	project := models.Project{
		Name:               in.Name,
		Description:        in.Description,
		LocalPath:          in.LocalPath,
		DocumentationURL:   in.DocumentationURL,
		AIDocumentationURL: in.AIDocumentationURL,
		DriveLink:          in.DriveLink,
		Notes:              in.Notes,
		ImageData:          in.ImageData,
		Status:             "active",
	}
	if err := s.orm.Create(&project).Error; err != nil {
		return nil, storeErr("create project", err)
	}

	return s.getProjectLocked(project.ID)
}

// GetProject returns a project with its links collection attached.
func (s *Store) GetProject(id int64) (*models.Project, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()
	return s.getProjectLocked(id)
}

// getProjectLocked must be called with the store lock held.
func (s *Store) getProjectLocked(id int64) (*models.Project, error) {
	var project models.Project
	if err := s.orm.First(&project, id).Error; err != nil {
		return nil, storeErr("get project", err)
	}
	project.Links = s.loadLinksLocked(id)
	return &project, nil
}

// loadLinksLocked fetches a project's links, degrading to an empty collection
// on failure rather than failing the whole read.
func (s *Store) loadLinksLocked(projectID int64) []models.ProjectLink {
	links := []models.ProjectLink{}
	err := s.orm.
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&links).Error
	if err != nil {
		s.log.Warn("failed to load project links", zap.Int64("project_id", projectID), zap.Error(err))
		return []models.ProjectLink{}
	}
	return links
}

// ListProjects returns all projects, pinned first, pinned ones in manual
// order, the rest most-recently-updated first.
func (s *Store) ListProjects() ([]models.Project, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	var projects []models.Project
	err := s.orm.
		Order("is_pinned DESC, pinned_order ASC, updated_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, storeErr("list projects", err)
	}
	for i := range projects {
		projects[i].Links = s.loadLinksLocked(projects[i].ID)
	}
	return projects, nil
}

// SearchProjects matches the query as a substring of name, description,
// local_path or notes (LIKE semantics), with the same ordering as ListProjects.
func (s *Store) SearchProjects(query string) ([]models.Project, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	pattern := "%" + query + "%"
	var projects []models.Project
	err := s.orm.
		Where("name LIKE ? OR description LIKE ? OR local_path LIKE ? OR notes LIKE ?",
			pattern, pattern, pattern, pattern).
		Order("is_pinned DESC, pinned_order ASC, updated_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, storeErr("search projects", err)
	}
	for i := range projects {
		projects[i].Links = s.loadLinksLocked(projects[i].ID)
	}
	return projects, nil
}

// projectSets walks the fixed project field list in declaration order and
// collects a clause for every supplied field.
func projectSets(in models.UpdateProjectInput) []setClause {
	var sets []setClause
	if in.Name != nil {
		sets = append(sets, setClause{"name", *in.Name})
	}
	if in.Description != nil {
		sets = append(sets, setClause{"description", *in.Description})
	}
	if in.LocalPath != nil {
		sets = append(sets, setClause{"local_path", *in.LocalPath})
	}
	if in.DocumentationURL != nil {
		sets = append(sets, setClause{"documentation_url", *in.DocumentationURL})
	}
	if in.AIDocumentationURL != nil {
		sets = append(sets, setClause{"ai_documentation_url", *in.AIDocumentationURL})
	}
	if in.DriveLink != nil {
		sets = append(sets, setClause{"drive_link", *in.DriveLink})
	}
	if in.Notes != nil {
		sets = append(sets, setClause{"notes", *in.Notes})
	}
	if in.ImageData != nil {
		sets = append(sets, setClause{"image_data", *in.ImageData})
	}
	return sets
}

// UpdateProject applies a sparse update and returns the stored row. The
// reload goes through GetProject after the lock is released; a single
// non-reentrant lock would otherwise deadlock on itself.
func (s *Store) UpdateProject(id int64, in models.UpdateProjectInput) (*models.Project, error) {
	sets := projectSets(in)

	if err := s.acquire(); err != nil {
		return nil, err
	}
	err := s.execPartialUpdate("projects", id, sets, true)
	s.release()
	if err != nil {
		return nil, err
	}

	return s.GetProject(id)
}

// DeleteProject removes a project; children go with it via cascade. Deleting
// an id that does not exist is a silent no-op (affected rows are unchecked).
func (s *Store) DeleteProject(id int64) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	if err := s.orm.Exec("DELETE FROM projects WHERE id = ?", id).Error; err != nil {
		return storeErr("delete project", err)
	}
	return nil
}

// UpdateProjectStatus sets the lifecycle tag and stamps status_changed_at.
func (s *Store) UpdateProjectStatus(id int64, status string) error {
	if status == "" {
		return fmt.Errorf("update status: status is required: %w", models.ErrInvalidRequest)
	}

	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	err := s.orm.Exec(
		"UPDATE projects SET status = ?, status_changed_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	).Error
	if err != nil {
		return storeErr("update status", err)
	}
	return nil
}

// TogglePin flips a project's pinned state and returns the new state. A newly
// pinned project goes to the end of the manual order.
func (s *Store) TogglePin(id int64) (bool, error) {
	if err := s.acquire(); err != nil {
		return false, err
	}
	defer s.release()

	var project models.Project
	if err := s.orm.Select("id", "is_pinned").First(&project, id).Error; err != nil {
		return false, storeErr("toggle pin", err)
	}

	if project.IsPinned {
		err := s.orm.Exec(
			"UPDATE projects SET is_pinned = 0, pinned_order = 0 WHERE id = ?", id,
		).Error
		if err != nil {
			return false, storeErr("toggle pin", err)
		}
		return false, nil
	}

	err := s.orm.Exec(
		"UPDATE projects SET is_pinned = 1, pinned_order = (SELECT COALESCE(MAX(pinned_order), 0) + 1 FROM projects WHERE is_pinned = 1) WHERE id = ?",
		id,
	).Error
	if err != nil {
		return false, storeErr("toggle pin", err)
	}
	return true, nil
}

// ReorderPinned rewrites pinned_order so pinned projects match the given
// id order.
func (s *Store) ReorderPinned(ids []int64) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	for i, id := range ids {
		err := s.orm.Exec(
			"UPDATE projects SET pinned_order = ? WHERE id = ? AND is_pinned = 1", i+1, id,
		).Error
		if err != nil {
			return storeErr("reorder pinned", err)
		}
	}
	return nil
}
