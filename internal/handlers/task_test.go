package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/harukisol/board-management-api/internal/database"
	"github.com/harukisol/board-management-api/internal/models"
	"github.com/harukisol/board-management-api/internal/realtime"
	"github.com/harukisol/board-management-api/internal/repository"
	"github.com/harukisol/board-management-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
	board   *models.Board
	list    *models.List
	user    *models.User
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.BoardMember{},
		&models.List{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	taskRepo := repository.NewTaskRepository(suite.db)
	listRepo := repository.NewListRepository(suite.db)
	taskService := services.NewTaskService(taskRepo, listRepo, realtime.NoopNotifier{})
	suite.handler = NewTaskHandler(taskService)

	gin.SetMode(gin.TestMode)

	suite.user = &models.User{Username: "tester", Email: "tester@example.com", PasswordHash: "hashedpassword"}
	suite.Require().NoError(suite.db.Create(suite.user).Error)

	suite.board = &models.Board{Title: "Test Board", OwnerID: suite.user.ID}
	suite.Require().NoError(suite.db.Create(suite.board).Error)

	suite.list = &models.List{BoardID: suite.board.ID, Title: "Todo", Position: 1}
	suite.Require().NoError(suite.db.Create(suite.list).Error)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, position int) *models.Task {
	task := &models.Task{
		ListID:    suite.list.ID,
		CreatorID: suite.user.ID,
		Title:     title,
		Position:  position,
	}
	suite.db.Create(task)
	return task
}

// createAuthContext builds a context with the authenticated user set
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
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
	c.Set("user_id", suite.user.ID)

	return c, w
}

// setBoardContext simulates RequireBoardAccess middleware
func (suite *TaskHandlerTestSuite) setBoardContext(c *gin.Context) {
	c.Set("board", *suite.board)
}

// setTaskContext simulates RequireTaskAccess middleware
func (suite *TaskHandlerTestSuite) setTaskContext(c *gin.Context, task models.Task) {
	c.Set("task", task)
}

// TestCreateTask_Success tests successful task creation
func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	requestBody := map[string]interface{}{
		"title":       "New Task",
		"description": "Task Description",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/boards/1/lists/1/tasks", body)
	c.Params = gin.Params{{Key: "list_id", Value: "1"}}
	suite.setBoardContext(c)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response models.Task
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "New Task", response.Title)
	assert.Equal(suite.T(), 0, response.Position)
	assert.Equal(suite.T(), suite.user.ID, response.CreatorID)
}

// TestCreateTask_AppendsToTail tests that new tasks land at the end
func (suite *TaskHandlerTestSuite) TestCreateTask_AppendsToTail() {
	suite.createTestTask("Existing", 0)

	requestBody := map[string]interface{}{
		"title": "Second",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/boards/1/lists/1/tasks", body)
	c.Params = gin.Params{{Key: "list_id", Value: "1"}}
	suite.setBoardContext(c)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response models.Task
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, response.Position)
}

// TestCreateTask_InvalidRequest tests task creation without a title
func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidRequest() {
	requestBody := map[string]interface{}{
		"description": "no title",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/boards/1/lists/1/tasks", body)
	c.Params = gin.Params{{Key: "list_id", Value: "1"}}
	suite.setBoardContext(c)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateTask_UnknownList tests creation against a missing list
func (suite *TaskHandlerTestSuite) TestCreateTask_UnknownList() {
	requestBody := map[string]interface{}{
		"title": "New Task",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/boards/1/lists/999/tasks", body)
	c.Params = gin.Params{{Key: "list_id", Value: "999"}}
	suite.setBoardContext(c)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestGetTask_Success tests task retrieval from the middleware context
func (suite *TaskHandlerTestSuite) TestGetTask_Success() {
	task := suite.createTestTask("Test Task", 0)

	c, w := suite.createAuthContext("GET", "/api/tasks/1", nil)
	suite.setTaskContext(c, *task)

	suite.handler.GetTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response models.Task
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), task.ID, response.ID)
	assert.Equal(suite.T(), task.Title, response.Title)
}

// TestUpdateTask_Success tests task field updates
func (suite *TaskHandlerTestSuite) TestUpdateTask_Success() {
	task := suite.createTestTask("Old Title", 0)

	requestBody := map[string]interface{}{
		"title":       "Updated Title",
		"description": "Updated Description",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PUT", "/api/tasks/1", body)
	suite.setTaskContext(c, *task)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response models.Task
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Updated Title", response.Title)
	assert.Equal(suite.T(), "Updated Description", response.Description)
}

// TestUpdateTask_DoneSetsCompletedAt tests the DONE transition stamping
func (suite *TaskHandlerTestSuite) TestUpdateTask_DoneSetsCompletedAt() {
	task := suite.createTestTask("Task", 0)

	requestBody := map[string]interface{}{
		"status": "DONE",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PUT", "/api/tasks/1", body)
	suite.setTaskContext(c, *task)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response models.Task
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.TaskStatusDone, response.Status)
	assert.NotNil(suite.T(), response.CompletedAt)
}

// TestUpdateTask_InvalidRequest tests malformed update payloads
func (suite *TaskHandlerTestSuite) TestUpdateTask_InvalidRequest() {
	task := suite.createTestTask("Task", 0)

	c, w := suite.createAuthContext("PUT", "/api/tasks/1", []byte("invalid json"))
	suite.setTaskContext(c, *task)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestMoveTask_WithinList tests reordering inside one list
func (suite *TaskHandlerTestSuite) TestMoveTask_WithinList() {
	suite.createTestTask("A", 0)
	suite.createTestTask("B", 1)
	taskC := suite.createTestTask("C", 2)

	requestBody := map[string]interface{}{
		"position": 0,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PUT", "/api/tasks/3/move", body)
	suite.setTaskContext(c, *taskC)

	suite.handler.MoveTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var tasks []models.Task
	suite.Require().NoError(suite.db.
		Where("list_id = ?", suite.list.ID).
		Order("position ASC").
		Find(&tasks).Error)
	assert.Equal(suite.T(), "C", tasks[0].Title)
	assert.Equal(suite.T(), "A", tasks[1].Title)
	assert.Equal(suite.T(), "B", tasks[2].Title)
}

// TestMoveTask_ToOtherList tests the cross-list move
func (suite *TaskHandlerTestSuite) TestMoveTask_ToOtherList() {
	dest := &models.List{BoardID: suite.board.ID, Title: "Doing", Position: 2}
	suite.Require().NoError(suite.db.Create(dest).Error)
	task := suite.createTestTask("A", 0)

	requestBody := map[string]interface{}{
		"position": 0,
		"list_id":  dest.ID,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PUT", "/api/tasks/1/move", body)
	suite.setTaskContext(c, *task)

	suite.handler.MoveTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var moved models.Task
	suite.Require().NoError(suite.db.First(&moved, task.ID).Error)
	assert.Equal(suite.T(), dest.ID, moved.ListID)
	assert.Equal(suite.T(), 0, moved.Position)
}

// TestMoveTask_UnknownDestination tests a move into a missing list
func (suite *TaskHandlerTestSuite) TestMoveTask_UnknownDestination() {
	task := suite.createTestTask("A", 0)

	requestBody := map[string]interface{}{
		"position": 0,
		"list_id":  999,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PUT", "/api/tasks/1/move", body)
	suite.setTaskContext(c, *task)

	suite.handler.MoveTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestDeleteTask_Success tests deletion and gap closing
func (suite *TaskHandlerTestSuite) TestDeleteTask_Success() {
	taskA := suite.createTestTask("A", 0)
	suite.createTestTask("B", 1)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil)
	suite.setTaskContext(c, *taskA)

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Task deleted successfully", response["message"])

	// The survivor slid into position 0
	var remaining models.Task
	suite.Require().NoError(suite.db.Where("title = ?", "B").First(&remaining).Error)
	assert.Equal(suite.T(), 0, remaining.Position)
}

// TestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
