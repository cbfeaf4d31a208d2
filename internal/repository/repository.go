package repository

import (
	"github.com/projtrack/project-tracker-api/internal/models"
)

// ProjectStats aggregates an owner's projects by status.
type ProjectStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `gorm:"column:pendente" json:"pendente"`
	InProgress int64 `gorm:"column:andamento" json:"andamento"`
	Completed  int64 `gorm:"column:concluido" json:"concluido"`
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// ProjectRepository defines the interface for project data access.
// Every lookup and mutation is scoped by the owning user; a project belonging
// to another owner behaves exactly like a missing one.
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// ListByOwner lists an owner's projects ordered by creation time ascending
	ListByOwner(ownerID uint64) ([]models.Project, error)

	// FindByIDAndOwner finds a project by ID scoped to the owner
	FindByIDAndOwner(id, ownerID uint64) (*models.Project, error)

	// UpdateByIDAndOwner applies a partial field set and returns the updated
	// project. The update timestamp always advances, even for an empty set.
	UpdateByIDAndOwner(id, ownerID uint64, updates map[string]interface{}) (*models.Project, error)

	// DeleteByIDAndOwner deletes a project scoped to the owner and reports
	// whether a row was removed
	DeleteByIDAndOwner(id, ownerID uint64) (bool, error)

	// StatsByOwner computes total and per-status counts over the owner's projects
	StatsByOwner(ownerID uint64) (*ProjectStats, error)
}
