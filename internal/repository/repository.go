package repository

import (
	"github.com/harukisol/board-management-api/internal/models"
	"github.com/harukisol/board-management-api/internal/utils"
)

// BoardRepository defines the interface for board and membership data access
type BoardRepository interface {
	// Create creates a board and its owner membership atomically
	Create(board *models.Board, owner *models.BoardMember) error

	// FindByID finds a board by ID
	FindByID(id uint64) (*models.Board, error)

	// Update updates a board
	Update(board *models.Board) error

	// Delete deletes a board and all related data (lists, tasks, members, invites)
	Delete(id uint64) error

	// AddMember adds a member to a board
	AddMember(member *models.BoardMember) error

	// RemoveMember removes a member from a board
	RemoveMember(boardID, userID uint64) error

	// FindMember finds a specific board member
	FindMember(boardID, userID uint64) (*models.BoardMember, error)

	// ListMembers lists all members of a board
	ListMembers(boardID uint64) ([]models.BoardMember, error)

	// ListMembersByUserID lists all boards a user is a member of
	ListMembersByUserID(userID uint64) ([]models.BoardMember, error)

	// CountAdmins counts the board's ADMIN memberships
	CountAdmins(boardID uint64) (int64, error)

	// FindOldestMemberWithRole finds the member with the given role who joined
	// first, excluding the given user
	FindOldestMemberWithRole(boardID uint64, role models.BoardRole, excludeUserID uint64) (*models.BoardMember, error)

	// UpdateMemberRole persists a member's new role
	UpdateMemberRole(boardID, userID uint64, role models.BoardRole) error

	// TransferOwnership moves board ownership to newOwnerID, promoting them to
	// ADMIN when promote is set, and deletes the departing owner's membership.
	// All three writes happen in one transaction.
	TransferOwnership(boardID, departingUserID, newOwnerID uint64, promote bool) error
}

// ListRepository defines the interface for list data access
type ListRepository interface {
	// Create creates a new list
	Create(list *models.List) error

	// CreateInBatch bulk-inserts lists with caller-supplied positions
	CreateInBatch(lists []models.List) error

	// FindByID finds a list by ID
	FindByID(id uint64) (*models.List, error)

	// ListByBoard lists all lists of a board ordered by position
	ListByBoard(boardID uint64) ([]models.List, error)

	// MaxPosition returns the highest position among a board's lists, 0 when empty
	MaxPosition(boardID uint64) (int, error)

	// Update updates a list
	Update(list *models.List) error

	// UpdatePosition moves a list to newPosition, shifting siblings in the same
	// transaction
	UpdatePosition(list *models.List, newPosition int) error

	// Delete removes a list and closes the position gap transactionally
	Delete(list *models.List) error

	// CountActiveTasks counts the list's non-archived tasks
	CountActiveTasks(listID uint64) (int64, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// CreateInBatch bulk-inserts tasks with caller-supplied positions
	CreateInBatch(tasks []models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByList lists a page of a list's tasks ordered by position
	ListByList(listID uint64, params utils.PaginationParams) ([]models.Task, error)

	// CountByList counts tasks in a list
	CountByList(listID uint64) (int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// UpdatePosition moves a task within its list, shifting siblings in the
	// same transaction
	UpdatePosition(task *models.Task, newPosition int) error

	// MoveToList moves a task to another list at newPosition, closing the
	// source gap and opening the destination slot atomically
	MoveToList(task *models.Task, destListID uint64, newPosition int) error

	// Delete removes a task and closes the position gap transactionally
	Delete(task *models.Task) error
}

// InviteRepository defines the interface for invite data access
type InviteRepository interface {
	// Create creates a new invite
	Create(invite *models.Invite) error

	// FindByID finds an invite by ID
	FindByID(id uint64) (*models.Invite, error)

	// FindPending finds the pending invite for a (board, recipient) pair
	FindPending(boardID, recipientID uint64) (*models.Invite, error)

	// ListByRecipient lists all pending invites addressed to a user
	ListByRecipient(recipientID uint64) ([]models.Invite, error)

	// Delete removes an invite
	Delete(id uint64) error

	// Accept converts an invite into a board membership and deletes the invite
	// in one transaction
	Accept(invite *models.Invite) (*models.BoardMember, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}
