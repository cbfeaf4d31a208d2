package repository

import (
	"time"

	"github.com/projtrack/project-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// ListByOwner lists an owner's projects ordered by creation time ascending
func (r *GormProjectRepository) ListByOwner(ownerID uint64) ([]models.Project, error) {
	projects := []models.Project{}
	err := r.db.
		Where("user_id = ?", ownerID).
		Order("created_at ASC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// FindByIDAndOwner finds a project by ID scoped to the owner
func (r *GormProjectRepository) FindByIDAndOwner(id, ownerID uint64) (*models.Project, error) {
	var project models.Project
	err := r.db.
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateByIDAndOwner applies a partial field set scoped to the owner.
// Returns gorm.ErrRecordNotFound when the id/owner pair matches no row,
// which covers both absence and ownership by someone else.
func (r *GormProjectRepository) UpdateByIDAndOwner(id, ownerID uint64, updates map[string]interface{}) (*models.Project, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	// Stamp the update time even when no field changed
	updates["updated_at"] = time.Now()

	res := r.db.Model(&models.Project{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindByIDAndOwner(id, ownerID)
}

// DeleteByIDAndOwner deletes a project scoped to the owner
func (r *GormProjectRepository) DeleteByIDAndOwner(id, ownerID uint64) (bool, error) {
	res := r.db.
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Project{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// StatsByOwner computes total and per-status counts in a single aggregate query
func (r *GormProjectRepository) StatsByOwner(ownerID uint64) (*ProjectStats, error) {
	var stats ProjectStats
	err := r.db.Model(&models.Project{}).
		Select(
			"COUNT(*) AS total, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pendente, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS andamento, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS concluido",
			models.ProjectStatusPending,
			models.ProjectStatusInProgress,
			models.ProjectStatusCompleted,
		).
		Where("user_id = ?", ownerID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
