package db

import (
	"fmt"
	"time"

	"projdesk/models"
)

// CreateTodo adds a checklist item and returns the stored row.
func (s *Store) CreateTodo(in models.CreateTodoInput) (*models.ProjectTodo, error) {
	if in.Content == "" {
		return nil, fmt.Errorf("create todo: content is required: %w", models.ErrConstraint)
	}

	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	todo := models.ProjectTodo{
		ProjectID: in.ProjectID,
		Content:   in.Content,
	}
	if err := s.orm.Create(&todo).Error; err != nil {
		return nil, storeErr("create todo", err)
	}
	return s.getTodoLocked(todo.ID)
}

// GetTodo returns a single todo by id.
func (s *Store) GetTodo(id int64) (*models.ProjectTodo, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()
	return s.getTodoLocked(id)
}

func (s *Store) getTodoLocked(id int64) (*models.ProjectTodo, error) {
	var todo models.ProjectTodo
	if err := s.orm.First(&todo, id).Error; err != nil {
		return nil, storeErr("get todo", err)
	}
	return &todo, nil
}

// GetTodos returns a project's todos, open items first, newest first within
// each group.
func (s *Store) GetTodos(projectID int64) ([]models.ProjectTodo, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	todos := []models.ProjectTodo{}
	err := s.orm.
		Where("project_id = ?", projectID).
		Order("is_completed ASC, created_at DESC").
		Find(&todos).Error
	if err != nil {
		return nil, storeErr("list todos", err)
	}
	return todos, nil
}

// UpdateTodo applies a sparse update. Completing an item stamps completed_at;
// reopening it clears the stamp.
func (s *Store) UpdateTodo(id int64, in models.UpdateTodoInput) (*models.ProjectTodo, error) {
	var sets []setClause
	if in.Content != nil {
		sets = append(sets, setClause{"content", *in.Content})
	}
	if in.IsCompleted != nil {
		sets = append(sets, setClause{"is_completed", *in.IsCompleted})
		if *in.IsCompleted {
			sets = append(sets, setClause{"completed_at", time.Now()})
		} else {
			sets = append(sets, setClause{"completed_at", nil})
		}
	}

	if err := s.acquire(); err != nil {
		return nil, err
	}
	err := s.execPartialUpdate("project_todos", id, sets, false)
	s.release()
	if err != nil {
		return nil, err
	}

	return s.GetTodo(id)
}

// DeleteTodo removes a todo; missing ids are a silent no-op.
func (s *Store) DeleteTodo(id int64) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	if err := s.orm.Exec("DELETE FROM project_todos WHERE id = ?", id).Error; err != nil {
		return storeErr("delete todo", err)
	}
	return nil
}
