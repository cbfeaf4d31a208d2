package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/projtrack/project-tracker-api/internal/dto"
	apierrors "github.com/projtrack/project-tracker-api/internal/errors"
	"github.com/projtrack/project-tracker-api/internal/middleware"
	"github.com/projtrack/project-tracker-api/internal/models"
	"github.com/projtrack/project-tracker-api/internal/repository"
	"gorm.io/gorm"
)

// ProjectHandler coordinates project CRUD handlers. Every operation is
// scoped to the authenticated owner.
type ProjectHandler struct {
	projectRepo repository.ProjectRepository
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectRepo repository.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{
		projectRepo: projectRepo,
	}
}

// ListProjects returns the current user's projects in creation order
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projects, err := h.projectRepo.ListByOwner(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}

// GetProjectStats returns total and per-status counts for the current user
func (h *ProjectHandler) GetProjectStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	stats, err := h.projectRepo.StatsByOwner(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to compute project stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// CreateProject creates a project owned by the current user
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, bindingErrorMessage(err))
		return
	}

	startDate, err := parseStartDate(req.StartDate)
	if err != nil {
		apierrors.BadRequest(c, "startDate must be a valid date")
		return
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      models.ProjectStatus(req.Status),
		StartDate:   startDate,
		UserID:      userID,
	}

	if err := h.projectRepo.Create(&project); err != nil {
		apierrors.InternalError(c, "Failed to create project")
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(project))
}

// GetProject returns a single project owned by the current user
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, projectID, ok := h.ownerAndProjectID(c)
	if !ok {
		return
	}

	project, err := h.projectRepo.FindByIDAndOwner(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Project not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch project")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// UpdateProject applies a partial update to a project owned by the current user
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, projectID, ok := h.ownerAndProjectID(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, bindingErrorMessage(err))
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.StartDate != nil {
		startDate, err := parseStartDate(*req.StartDate)
		if err != nil {
			apierrors.BadRequest(c, "startDate must be a valid date")
			return
		}
		updates["start_date"] = startDate
	}

	project, err := h.projectRepo.UpdateByIDAndOwner(projectID, userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Project not found")
			return
		}
		apierrors.InternalError(c, "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject deletes a project owned by the current user
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, projectID, ok := h.ownerAndProjectID(c)
	if !ok {
		return
	}

	deleted, err := h.projectRepo.DeleteByIDAndOwner(projectID, userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to delete project")
		return
	}
	if !deleted {
		apierrors.NotFound(c, "Project not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// ownerAndProjectID pulls the authenticated user and the :id route parameter.
// A non-numeric id answers 404; it can never match an existing project.
func (h *ProjectHandler) ownerAndProjectID(c *gin.Context) (uint64, uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, 0, false
	}

	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.NotFound(c, "Project not found")
		return 0, 0, false
	}

	return userID, projectID, true
}
