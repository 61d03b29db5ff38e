package services

import (
	"testing"

	"github.com/harukisol/board-management-api/internal/models"
	"github.com/harukisol/board-management-api/internal/realtime"
	"github.com/harukisol/board-management-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ListServiceTestSuite covers list CRUD and the dense 1-based position
// sequence.
type ListServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ListService
	board   *models.Board
}

func (suite *ListServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.List{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	listRepo := repository.NewListRepository(suite.db)
	suite.service = NewListService(listRepo, realtime.NoopNotifier{})

	suite.board = &models.Board{Title: "Test Board", OwnerID: 1}
	suite.Require().NoError(suite.db.Create(suite.board).Error)
}

func (suite *ListServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ListServiceTestSuite) createLists(titles ...string) []*models.List {
	lists := make([]*models.List, len(titles))
	for i, title := range titles {
		list, err := suite.service.CreateList(CreateListInput{
			BoardID: suite.board.ID,
			Title:   title,
		})
		suite.Require().NoError(err)
		lists[i] = list
	}
	return lists
}

// positionsByTitle reads back the board's lists as title -> position.
func (suite *ListServiceTestSuite) positionsByTitle() map[string]int {
	lists, err := suite.service.ListLists(suite.board.ID)
	suite.Require().NoError(err)

	result := make(map[string]int, len(lists))
	for _, l := range lists {
		result[l.Title] = l.Position
	}
	return result
}

// assertDensePositions checks the board's positions form exactly 1..N.
func (suite *ListServiceTestSuite) assertDensePositions() {
	lists, err := suite.service.ListLists(suite.board.ID)
	suite.Require().NoError(err)

	for i, l := range lists {
		assert.Equal(suite.T(), i+1, l.Position, "list %q out of sequence", l.Title)
	}
}

func (suite *ListServiceTestSuite) TestCreateList_PositionsAreSequential() {
	suite.createLists("Todo", "Doing", "Done")

	positions := suite.positionsByTitle()
	assert.Equal(suite.T(), 1, positions["Todo"])
	assert.Equal(suite.T(), 2, positions["Doing"])
	assert.Equal(suite.T(), 3, positions["Done"])
}

func (suite *ListServiceTestSuite) TestCreateList_EmptyTitleRejected() {
	_, err := suite.service.CreateList(CreateListInput{
		BoardID: suite.board.ID,
		Title:   "   ",
	})
	assert.ErrorIs(suite.T(), err, ErrListTitleReq)
}

func (suite *ListServiceTestSuite) TestMoveList_TowardFront() {
	lists := suite.createLists("A", "B", "C", "D")

	_, err := suite.service.MoveList(suite.board.ID, lists[3].ID, 1)
	assert.NoError(suite.T(), err)

	positions := suite.positionsByTitle()
	assert.Equal(suite.T(), 1, positions["D"])
	assert.Equal(suite.T(), 2, positions["A"])
	assert.Equal(suite.T(), 3, positions["B"])
	assert.Equal(suite.T(), 4, positions["C"])
	suite.assertDensePositions()
}

func (suite *ListServiceTestSuite) TestMoveList_TowardBack() {
	lists := suite.createLists("A", "B", "C", "D")

	_, err := suite.service.MoveList(suite.board.ID, lists[0].ID, 3)
	assert.NoError(suite.T(), err)

	positions := suite.positionsByTitle()
	assert.Equal(suite.T(), 1, positions["B"])
	assert.Equal(suite.T(), 2, positions["C"])
	assert.Equal(suite.T(), 3, positions["A"])
	assert.Equal(suite.T(), 4, positions["D"])
	suite.assertDensePositions()
}

func (suite *ListServiceTestSuite) TestMoveList_ToOwnPositionIsNoop() {
	lists := suite.createLists("A", "B", "C")

	moved, err := suite.service.MoveList(suite.board.ID, lists[1].ID, 2)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, moved.Position)

	positions := suite.positionsByTitle()
	assert.Equal(suite.T(), 1, positions["A"])
	assert.Equal(suite.T(), 2, positions["B"])
	assert.Equal(suite.T(), 3, positions["C"])
}

func (suite *ListServiceTestSuite) TestMoveList_SequenceOfMovesStaysDense() {
	lists := suite.createLists("A", "B", "C", "D", "E")

	_, err := suite.service.MoveList(suite.board.ID, lists[0].ID, 5)
	suite.Require().NoError(err)
	_, err = suite.service.MoveList(suite.board.ID, lists[2].ID, 1)
	suite.Require().NoError(err)
	_, err = suite.service.MoveList(suite.board.ID, lists[4].ID, 3)
	suite.Require().NoError(err)

	suite.assertDensePositions()
}

func (suite *ListServiceTestSuite) TestMoveList_WrongBoardIsNotFound() {
	other := &models.Board{Title: "Other Board", OwnerID: 2}
	suite.Require().NoError(suite.db.Create(other).Error)
	lists := suite.createLists("A")

	_, err := suite.service.MoveList(other.ID, lists[0].ID, 1)
	assert.ErrorIs(suite.T(), err, ErrListNotFound)
}

func (suite *ListServiceTestSuite) TestDeleteList_ClosesGap() {
	lists := suite.createLists("A", "B", "C")

	err := suite.service.DeleteList(suite.board.ID, lists[1].ID)
	assert.NoError(suite.T(), err)

	positions := suite.positionsByTitle()
	assert.Equal(suite.T(), 1, positions["A"])
	assert.Equal(suite.T(), 2, positions["C"])
	suite.assertDensePositions()
}

func (suite *ListServiceTestSuite) TestDeleteList_RejectsNonEmpty() {
	lists := suite.createLists("A")

	task := &models.Task{ListID: lists[0].ID, CreatorID: 1, Title: "Task", Position: 0}
	suite.Require().NoError(suite.db.Create(task).Error)

	err := suite.service.DeleteList(suite.board.ID, lists[0].ID)
	assert.ErrorIs(suite.T(), err, ErrListNotEmpty)
}

func (suite *ListServiceTestSuite) TestDeleteList_AllowsArchivedTasksOnly() {
	lists := suite.createLists("A")

	task := &models.Task{ListID: lists[0].ID, CreatorID: 1, Title: "Task", Position: 0, IsArchived: true}
	suite.Require().NoError(suite.db.Create(task).Error)

	err := suite.service.DeleteList(suite.board.ID, lists[0].ID)
	assert.NoError(suite.T(), err)
}

func TestListServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ListServiceTestSuite))
}
