package db

import (
	"go.uber.org/zap"

	"projdesk/models"
)

// TrackOpen bumps the open counter and appends an "opened" activity row. The
// two statements run under one lock acquisition but not in a transaction; a
// crash in between can leave the counter ahead of the timeline, which is
// acceptable for analytics data.
func (s *Store) TrackOpen(id int64) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	err := s.orm.Exec(
		"UPDATE projects SET last_opened_at = CURRENT_TIMESTAMP, opened_count = COALESCE(opened_count, 0) + 1 WHERE id = ?",
		id,
	).Error
	if err != nil {
		return storeErr("track open", err)
	}

	description := "Project opened"
	activity := models.ProjectActivity{
		ProjectID:    id,
		ActivityType: "opened",
		Description:  &description,
	}
	if err := s.orm.Create(&activity).Error; err != nil {
		return storeErr("track open", err)
	}
	return nil
}

// AddTime accumulates worked seconds on a project.
func (s *Store) AddTime(id int64, seconds int64) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	err := s.orm.Exec(
		"UPDATE projects SET total_time_seconds = COALESCE(total_time_seconds, 0) + ? WHERE id = ?",
		seconds, id,
	).Error
	if err != nil {
		return storeErr("add time", err)
	}
	return nil
}

// GetStats aggregates the dashboard numbers: totals, today's active project
// count, tracked hours, the most-opened project and the 20 most recent
// activity rows across all projects.
func (s *Store) GetStats() (*models.ProjectStats, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	stats := models.ProjectStats{RecentActivities: []models.ProjectActivity{}}

	if err := s.orm.Raw("SELECT COUNT(*) FROM projects").Scan(&stats.TotalProjects).Error; err != nil {
		return nil, storeErr("get stats", err)
	}

	err := s.orm.Raw(
		"SELECT COUNT(DISTINCT project_id) FROM project_activity WHERE DATE(created_at) = DATE('now')",
	).Scan(&stats.ActiveToday).Error
	if err != nil {
		s.log.Warn("failed to count today's activity", zap.Error(err))
	}

	var totalSeconds int64
	err = s.orm.Raw("SELECT COALESCE(SUM(total_time_seconds), 0) FROM projects").Scan(&totalSeconds).Error
	if err != nil {
		s.log.Warn("failed to sum tracked time", zap.Error(err))
	}
	stats.TotalTimeHours = float64(totalSeconds) / 3600.0

	var name string
	err = s.orm.Raw(
		"SELECT name FROM projects WHERE opened_count = (SELECT MAX(opened_count) FROM projects) LIMIT 1",
	).Scan(&name).Error
	if err == nil && name != "" {
		stats.MostActiveProject = &name
	}

	err = s.orm.
		Order("created_at DESC").
		Limit(20).
		Find(&stats.RecentActivities).Error
	if err != nil {
		return nil, storeErr("get stats", err)
	}

	return &stats, nil
}

// GetActivities returns a project's most recent activity rows.
func (s *Store) GetActivities(projectID int64, limit int) ([]models.ProjectActivity, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	activities := []models.ProjectActivity{}
	err := s.orm.
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, storeErr("get activities", err)
	}
	return activities, nil
}
