package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

// BoardHandlerTestSuite defines the test suite for BoardHandler
type BoardHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *BoardHandler
}

// SetupTest runs before each test
func (suite *BoardHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.BoardMember{},
		&models.List{},
		&models.Task{},
		&models.Invite{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	boardRepo := repository.NewBoardRepository(suite.db)
	boardService := services.NewBoardService(boardRepo, realtime.NoopNotifier{})
	membershipService := services.NewMembershipService(boardRepo, realtime.NoopNotifier{})
	suite.handler = NewBoardHandler(boardService, membershipService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *BoardHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *BoardHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *BoardHandlerTestSuite) createTestBoard(title string, ownerID uint64) *models.Board {
	board := &models.Board{
		Title:      title,
		OwnerID:    ownerID,
		Visibility: models.VisibilityPrivate,
	}
	suite.db.Create(board)
	suite.db.Create(&models.BoardMember{
		BoardID:  board.ID,
		UserID:   ownerID,
		Role:     models.RoleAdmin,
		JoinedAt: time.Now(),
	})
	return board
}

// createAuthContext builds a context with the authenticated user set
func (suite *BoardHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
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
	c.Set("user_id", userID)

	return c, w
}

// setBoardContext simulates RequireBoardAccess middleware
func (suite *BoardHandlerTestSuite) setBoardContext(c *gin.Context, board models.Board, member models.BoardMember) {
	c.Set("board", board)
	c.Set("board_member", member)
}

func (suite *BoardHandlerTestSuite) memberOf(boardID, userID uint64) models.BoardMember {
	var member models.BoardMember
	suite.Require().NoError(suite.db.
		Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&member).Error)
	return member
}

// TestCreateBoard_Success tests successful board creation
func (suite *BoardHandlerTestSuite) TestCreateBoard_Success() {
	user := suite.createTestUser("owner")

	requestBody := map[string]interface{}{
		"title":      "New Board",
		"visibility": "TEAM",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/boards", body, user.ID)

	suite.handler.CreateBoard(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "New Board", response["title"])

	// Owner membership is written alongside the board
	var member models.BoardMember
	err = suite.db.Where("user_id = ?", user.ID).First(&member).Error
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.RoleAdmin, member.Role)
}

// TestCreateBoard_EmptyTitle tests board creation with a blank title
func (suite *BoardHandlerTestSuite) TestCreateBoard_EmptyTitle() {
	user := suite.createTestUser("owner")

	requestBody := map[string]interface{}{
		"title": "   ",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/boards", body, user.ID)

	suite.handler.CreateBoard(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestListBoards_FiltersArchived tests that archived boards are hidden
func (suite *BoardHandlerTestSuite) TestListBoards_FiltersArchived() {
	user := suite.createTestUser("owner")
	suite.createTestBoard("Active Board", user.ID)
	archived := suite.createTestBoard("Archived Board", user.ID)
	suite.db.Model(&models.Board{}).Where("id = ?", archived.ID).Update("is_archived", true)

	c, w := suite.createAuthContext("GET", "/api/boards", nil, user.ID)

	suite.handler.ListBoards(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	boards := response["boards"].([]interface{})
	assert.Len(suite.T(), boards, 1)
}

// TestGetBoard_Success tests board detail retrieval
func (suite *BoardHandlerTestSuite) TestGetBoard_Success() {
	user := suite.createTestUser("owner")
	board := suite.createTestBoard("Test Board", user.ID)

	c, w := suite.createAuthContext("GET", "/api/boards/1", nil, user.ID)
	suite.setBoardContext(c, *board, suite.memberOf(board.ID, user.ID))

	suite.handler.GetBoard(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Test Board", response["title"])
	assert.Equal(suite.T(), "ADMIN", response["your_role"])

	members := response["members"].([]interface{})
	assert.Len(suite.T(), members, 1)
}

// TestUpdateBoard_Success tests board update
func (suite *BoardHandlerTestSuite) TestUpdateBoard_Success() {
	user := suite.createTestUser("owner")
	board := suite.createTestBoard("Old Title", user.ID)

	requestBody := map[string]interface{}{
		"title": "New Title",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PUT", "/api/boards/1", body, user.ID)
	suite.setBoardContext(c, *board, suite.memberOf(board.ID, user.ID))

	suite.handler.UpdateBoard(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var updated models.Board
	suite.Require().NoError(suite.db.First(&updated, board.ID).Error)
	assert.Equal(suite.T(), "New Title", updated.Title)
}

// TestDeleteBoard_CascadesContent tests that deletion takes all content along
func (suite *BoardHandlerTestSuite) TestDeleteBoard_CascadesContent() {
	user := suite.createTestUser("owner")
	board := suite.createTestBoard("Doomed Board", user.ID)

	list := &models.List{BoardID: board.ID, Title: "Todo", Position: 1}
	suite.Require().NoError(suite.db.Create(list).Error)
	task := &models.Task{ListID: list.ID, CreatorID: user.ID, Title: "Task", Position: 0}
	suite.Require().NoError(suite.db.Create(task).Error)

	c, w := suite.createAuthContext("DELETE", "/api/boards/1", nil, user.ID)
	suite.setBoardContext(c, *board, suite.memberOf(board.ID, user.ID))

	suite.handler.DeleteBoard(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var boardCount, listCount, taskCount int64
	suite.db.Model(&models.Board{}).Where("id = ?", board.ID).Count(&boardCount)
	suite.db.Model(&models.List{}).Where("board_id = ?", board.ID).Count(&listCount)
	suite.db.Model(&models.Task{}).Where("list_id = ?", list.ID).Count(&taskCount)
	assert.EqualValues(suite.T(), 0, boardCount)
	assert.EqualValues(suite.T(), 0, listCount)
	assert.EqualValues(suite.T(), 0, taskCount)
}

// TestRemoveMember_OwnerLeavesSuccession tests member removal through the
// handler with the owner handing the board to the oldest admin
func (suite *BoardHandlerTestSuite) TestRemoveMember_OwnerLeavesSuccession() {
	owner := suite.createTestUser("owner")
	admin := suite.createTestUser("admin")
	board := suite.createTestBoard("Shared Board", owner.ID)
	suite.db.Create(&models.BoardMember{
		BoardID:  board.ID,
		UserID:   admin.ID,
		Role:     models.RoleAdmin,
		JoinedAt: time.Now(),
	})

	c, w := suite.createAuthContext("DELETE", "/api/boards/1/members/1", nil, owner.ID)
	c.Params = gin.Params{{Key: "user_id", Value: "1"}}
	suite.setBoardContext(c, *board, suite.memberOf(board.ID, owner.ID))

	suite.handler.RemoveMember(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var updated models.Board
	suite.Require().NoError(suite.db.First(&updated, board.ID).Error)
	assert.Equal(suite.T(), admin.ID, updated.OwnerID)
}

// TestRemoveMember_NonAdminForbidden tests that a MEMBER cannot remove others
func (suite *BoardHandlerTestSuite) TestRemoveMember_NonAdminForbidden() {
	owner := suite.createTestUser("owner")
	member := suite.createTestUser("member")
	board := suite.createTestBoard("Shared Board", owner.ID)
	suite.db.Create(&models.BoardMember{
		BoardID:  board.ID,
		UserID:   member.ID,
		Role:     models.RoleMember,
		JoinedAt: time.Now(),
	})

	c, w := suite.createAuthContext("DELETE", "/api/boards/1/members/1", nil, member.ID)
	c.Params = gin.Params{{Key: "user_id", Value: "1"}}
	suite.setBoardContext(c, *board, suite.memberOf(board.ID, member.ID))

	suite.handler.RemoveMember(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestChangeMemberRole_LastAdmin tests that demoting the only admin fails
func (suite *BoardHandlerTestSuite) TestChangeMemberRole_LastAdmin() {
	owner := suite.createTestUser("owner")
	admin := suite.createTestUser("admin")
	board := suite.createTestBoard("Shared Board", owner.ID)
	suite.db.Create(&models.BoardMember{
		BoardID:  board.ID,
		UserID:   admin.ID,
		Role:     models.RoleAdmin,
		JoinedAt: time.Now(),
	})

	// Step the owner down so admin is the only ADMIN left.
	suite.db.Model(&models.BoardMember{}).
		Where("board_id = ? AND user_id = ?", board.ID, owner.ID).
		Update("role", models.RoleMember)

	requestBody := map[string]interface{}{
		"role": "MEMBER",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PUT", "/api/boards/1/members/2/role", body, owner.ID)
	c.Params = gin.Params{{Key: "user_id", Value: "2"}}
	suite.setBoardContext(c, *board, suite.memberOf(board.ID, owner.ID))

	suite.handler.ChangeMemberRole(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestSuite runs the test suite
func TestBoardHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BoardHandlerTestSuite))
}
