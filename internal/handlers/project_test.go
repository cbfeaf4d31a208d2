package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/projtrack/project-tracker-api/internal/constants"
	"github.com/projtrack/project-tracker-api/internal/database"
	"github.com/projtrack/project-tracker-api/internal/dto"
	"github.com/projtrack/project-tracker-api/internal/models"
	"github.com/projtrack/project-tracker-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ProjectHandlerTestSuite defines the test suite for ProjectHandler
type ProjectHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *ProjectHandler
}

// SetupTest runs before each test
func (suite *ProjectHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	suite.handler = NewProjectHandler(repository.NewProjectRepository(suite.db))

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *ProjectHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *ProjectHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *ProjectHandlerTestSuite) createTestProject(name string, ownerID uint64, status models.ProjectStatus) *models.Project {
	project := &models.Project{
		Name:      name,
		Status:    status,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		UserID:    ownerID,
	}
	suite.db.Create(project)
	return project
}

// Helper function to create authenticated context
func (suite *ProjectHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *ProjectHandlerTestSuite) setProjectParam(c *gin.Context, id string) {
	c.Params = gin.Params{{Key: "id", Value: id}}
}

func (suite *ProjectHandlerTestSuite) marshal(payload interface{}) []byte {
	body, err := json.Marshal(payload)
	suite.Require().NoError(err)
	return body
}

// TestCreateProject_Success tests successful project creation
func (suite *ProjectHandlerTestSuite) TestCreateProject_Success() {
	user := suite.createTestUser("owner@example.com")

	body := suite.marshal(map[string]string{
		"name":      "Site",
		"status":    "pendente",
		"startDate": "2025-01-01",
	})
	c, w := suite.createAuthContext("POST", "/api/projects", body, user.ID)

	suite.handler.CreateProject(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.ProjectDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Site", response.Name)
	assert.Equal(suite.T(), models.ProjectStatusPending, response.Status)
	assert.Equal(suite.T(), user.ID, response.UserID)
}

// TestCreateProject_OwnerComesFromToken ensures the body cannot pick an owner
func (suite *ProjectHandlerTestSuite) TestCreateProject_OwnerComesFromToken() {
	user := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")

	body := suite.marshal(map[string]interface{}{
		"name":      "Sneaky",
		"status":    "pendente",
		"startDate": "2025-01-01",
		"userId":    other.ID,
	})
	c, w := suite.createAuthContext("POST", "/api/projects", body, user.ID)

	suite.handler.CreateProject(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.ProjectDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), user.ID, response.UserID)
}

// TestCreateProject_Validation tests the rejected payloads
func (suite *ProjectHandlerTestSuite) TestCreateProject_Validation() {
	user := suite.createTestUser("owner@example.com")

	cases := []struct {
		name    string
		payload map[string]string
	}{
		{"missing name", map[string]string{"status": "pendente", "startDate": "2025-01-01"}},
		{"short name", map[string]string{"name": "ab", "status": "pendente", "startDate": "2025-01-01"}},
		{"unknown status", map[string]string{"name": "Site", "status": "paused", "startDate": "2025-01-01"}},
		{"missing start date", map[string]string{"name": "Site", "status": "pendente"}},
		{"unparseable start date", map[string]string{"name": "Site", "status": "pendente", "startDate": "soon"}},
	}

	for _, tc := range cases {
		c, w := suite.createAuthContext("POST", "/api/projects", suite.marshal(tc.payload), user.ID)
		suite.handler.CreateProject(c)
		assert.Equal(suite.T(), http.StatusBadRequest, w.Code, tc.name)
	}

	// No partial writes
	var count int64
	suite.db.Model(&models.Project{}).Count(&count)
	assert.Zero(suite.T(), count)
}

// TestListProjects_OwnerScopedAndOrdered tests listing
func (suite *ProjectHandlerTestSuite) TestListProjects_OwnerScopedAndOrdered() {
	user := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")

	first := suite.createTestProject("First", user.ID, models.ProjectStatusPending)
	second := &models.Project{
		Name:      "Second",
		Status:    models.ProjectStatusInProgress,
		StartDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		UserID:    user.ID,
		CreatedAt: first.CreatedAt.Add(time.Second),
	}
	suite.db.Create(second)
	suite.createTestProject("Foreign", other.ID, models.ProjectStatusPending)

	c, w := suite.createAuthContext("GET", "/api/projects", nil, user.ID)

	suite.handler.ListProjects(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response []dto.ProjectDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response, 2)
	assert.Equal(suite.T(), "First", response[0].Name)
	assert.Equal(suite.T(), "Second", response[1].Name)
}

// TestGetProject_Success tests fetching an owned project
func (suite *ProjectHandlerTestSuite) TestGetProject_Success() {
	user := suite.createTestUser("owner@example.com")
	project := suite.createTestProject("Mine", user.ID, models.ProjectStatusPending)

	c, w := suite.createAuthContext("GET", "/api/projects/1", nil, user.ID)
	suite.setProjectParam(c, "1")

	suite.handler.GetProject(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.ProjectDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), project.ID, response.ID)
}

// TestGetProject_NotOwned must be indistinguishable from absence
func (suite *ProjectHandlerTestSuite) TestGetProject_NotOwned() {
	owner := suite.createTestUser("owner@example.com")
	stranger := suite.createTestUser("stranger@example.com")
	suite.createTestProject("Private", owner.ID, models.ProjectStatusPending)

	notOwnedCtx, notOwned := suite.createAuthContext("GET", "/api/projects/1", nil, stranger.ID)
	suite.setProjectParam(notOwnedCtx, "1")
	suite.handler.GetProject(notOwnedCtx)

	absentCtx, absent := suite.createAuthContext("GET", "/api/projects/999", nil, stranger.ID)
	suite.setProjectParam(absentCtx, "999")
	suite.handler.GetProject(absentCtx)

	assert.Equal(suite.T(), http.StatusNotFound, notOwned.Code)
	assert.Equal(suite.T(), http.StatusNotFound, absent.Code)
	assert.Equal(suite.T(), absent.Body.String(), notOwned.Body.String())
}

// TestUpdateProject_Partial tests that only supplied fields change
func (suite *ProjectHandlerTestSuite) TestUpdateProject_Partial() {
	user := suite.createTestUser("owner@example.com")
	project := suite.createTestProject("Site", user.ID, models.ProjectStatusPending)
	before := project.UpdatedAt

	time.Sleep(10 * time.Millisecond)

	body := suite.marshal(map[string]string{"status": "concluido"})
	c, w := suite.createAuthContext("PUT", "/api/projects/1", body, user.ID)
	suite.setProjectParam(c, "1")

	suite.handler.UpdateProject(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.ProjectDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), models.ProjectStatusCompleted, response.Status)
	assert.Equal(suite.T(), "Site", response.Name)
	assert.True(suite.T(), response.UpdatedAt.After(before))
}

// TestUpdateProject_Validation tests rejected update payloads
func (suite *ProjectHandlerTestSuite) TestUpdateProject_Validation() {
	user := suite.createTestUser("owner@example.com")
	suite.createTestProject("Site", user.ID, models.ProjectStatusPending)

	cases := []struct {
		name    string
		payload map[string]string
	}{
		{"short name", map[string]string{"name": "ab"}},
		{"unknown status", map[string]string{"status": "paused"}},
		{"unparseable start date", map[string]string{"startDate": "soon"}},
	}

	for _, tc := range cases {
		c, w := suite.createAuthContext("PUT", "/api/projects/1", suite.marshal(tc.payload), user.ID)
		suite.setProjectParam(c, "1")
		suite.handler.UpdateProject(c)
		assert.Equal(suite.T(), http.StatusBadRequest, w.Code, tc.name)
	}

	// The project is untouched
	var project models.Project
	suite.db.First(&project, 1)
	assert.Equal(suite.T(), "Site", project.Name)
	assert.Equal(suite.T(), models.ProjectStatusPending, project.Status)
}

// TestUpdateProject_NotOwned tests ownership isolation on update
func (suite *ProjectHandlerTestSuite) TestUpdateProject_NotOwned() {
	owner := suite.createTestUser("owner@example.com")
	stranger := suite.createTestUser("stranger@example.com")
	suite.createTestProject("Private", owner.ID, models.ProjectStatusPending)

	body := suite.marshal(map[string]string{"name": "Hijacked"})
	c, w := suite.createAuthContext("PUT", "/api/projects/1", body, stranger.ID)
	suite.setProjectParam(c, "1")

	suite.handler.UpdateProject(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var project models.Project
	suite.db.First(&project, 1)
	assert.Equal(suite.T(), "Private", project.Name)
}

// TestDeleteProject tests delete and the second-delete 404
func (suite *ProjectHandlerTestSuite) TestDeleteProject() {
	user := suite.createTestUser("owner@example.com")
	suite.createTestProject("Doomed", user.ID, models.ProjectStatusPending)

	c, w := suite.createAuthContext("DELETE", "/api/projects/1", nil, user.ID)
	suite.setProjectParam(c, "1")
	suite.handler.DeleteProject(c)

	assert.Equal(suite.T(), http.StatusNoContent, w.Code)
	assert.Empty(suite.T(), w.Body.String())

	c, w = suite.createAuthContext("DELETE", "/api/projects/1", nil, user.ID)
	suite.setProjectParam(c, "1")
	suite.handler.DeleteProject(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestDeleteProject_NotOwned tests ownership isolation on delete
func (suite *ProjectHandlerTestSuite) TestDeleteProject_NotOwned() {
	owner := suite.createTestUser("owner@example.com")
	stranger := suite.createTestUser("stranger@example.com")
	suite.createTestProject("Private", owner.ID, models.ProjectStatusPending)

	c, w := suite.createAuthContext("DELETE", "/api/projects/1", nil, stranger.ID)
	suite.setProjectParam(c, "1")
	suite.handler.DeleteProject(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var count int64
	suite.db.Model(&models.Project{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestGetProjectStats tests the aggregate response
func (suite *ProjectHandlerTestSuite) TestGetProjectStats() {
	user := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")

	suite.createTestProject("A", user.ID, models.ProjectStatusPending)
	suite.createTestProject("B", user.ID, models.ProjectStatusInProgress)
	suite.createTestProject("C", user.ID, models.ProjectStatusInProgress)
	suite.createTestProject("D", user.ID, models.ProjectStatusCompleted)
	suite.createTestProject("E", other.ID, models.ProjectStatusCompleted)

	c, w := suite.createAuthContext("GET", "/api/projects/stats", nil, user.ID)

	suite.handler.GetProjectStats(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response repository.ProjectStats
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), int64(4), response.Total)
	assert.Equal(suite.T(), int64(1), response.Pending)
	assert.Equal(suite.T(), int64(2), response.InProgress)
	assert.Equal(suite.T(), int64(1), response.Completed)
}

// TestGetProjectStats_SingleProjectScenario mirrors a fresh account's first project
func (suite *ProjectHandlerTestSuite) TestGetProjectStats_SingleProjectScenario() {
	user := suite.createTestUser("ana@x.com")

	body := suite.marshal(map[string]string{
		"name":      "Site",
		"status":    "pendente",
		"startDate": "2025-01-01",
	})
	c, w := suite.createAuthContext("POST", "/api/projects", body, user.ID)
	suite.handler.CreateProject(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	c, w = suite.createAuthContext("GET", "/api/projects/stats", nil, user.ID)
	suite.handler.GetProjectStats(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(),
		`{"total":1,"pendente":1,"andamento":0,"concluido":0}`,
		w.Body.String())
}

// TestProjectHandlerTestSuite runs the test suite
func TestProjectHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectHandlerTestSuite))
}
