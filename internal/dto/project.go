package dto

import (
	"time"

	"github.com/projtrack/project-tracker-api/internal/models"
)

// CreateProjectRequest is the project creation payload. The owner comes from
// the authenticated context, never from the body.
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,min=3"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"required,oneof=pendente andamento concluido"`
	StartDate   string `json:"startDate" binding:"required"`
}

// UpdateProjectRequest is the partial update payload; only supplied fields
// are applied.
type UpdateProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=3"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=pendente andamento concluido"`
	StartDate   *string `json:"startDate"`
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status"`
	StartDate   time.Time            `json:"startDate"`
	UserID      uint64               `json:"userId"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		StartDate:   project.StartDate,
		UserID:      project.UserID,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// ToProjectDTOs converts a slice of Project models
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	items := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		items[i] = ToProjectDTO(project)
	}
	return items
}
