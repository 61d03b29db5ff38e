package repository

import (
	"github.com/harukisol/board-management-api/internal/models"
	"gorm.io/gorm"
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

// Create creates a board and its owner membership atomically
func (r *GormBoardRepository) Create(board *models.Board, owner *models.BoardMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}

		owner.BoardID = board.ID
		owner.UserID = board.OwnerID

		return tx.Create(owner).Error
	})
}

// FindByID finds a board by ID
func (r *GormBoardRepository) FindByID(id uint64) (*models.Board, error) {
	var board models.Board
	if err := r.db.First(&board, id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// Update updates a board
func (r *GormBoardRepository) Update(board *models.Board) error {
	return r.db.Save(board).Error
}

// Delete deletes a board and all related data in a transaction
func (r *GormBoardRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Delete tasks of all lists on the board
		listIDs := tx.Model(&models.List{}).Select("id").Where("board_id = ?", id)
		if err := tx.Where("list_id IN (?)", listIDs).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Where("board_id = ?", id).Delete(&models.List{}).Error; err != nil {
			return err
		}

		if err := tx.Where("board_id = ?", id).Delete(&models.BoardMember{}).Error; err != nil {
			return err
		}

		if err := tx.Where("board_id = ?", id).Delete(&models.Invite{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Board{}, id).Error
	})
}

// AddMember adds a member to a board
func (r *GormBoardRepository) AddMember(member *models.BoardMember) error {
	return r.db.Create(member).Error
}

// RemoveMember removes a member from a board
func (r *GormBoardRepository) RemoveMember(boardID, userID uint64) error {
	return r.db.Where("board_id = ? AND user_id = ?", boardID, userID).
		Delete(&models.BoardMember{}).Error
}

// FindMember finds a specific board member
func (r *GormBoardRepository) FindMember(boardID, userID uint64) (*models.BoardMember, error) {
	var member models.BoardMember
	if err := r.db.Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists all members of a board
func (r *GormBoardRepository) ListMembers(boardID uint64) ([]models.BoardMember, error) {
	var members []models.BoardMember
	if err := r.db.Preload("User").
		Where("board_id = ?", boardID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListMembersByUserID lists all boards a user is a member of
func (r *GormBoardRepository) ListMembersByUserID(userID uint64) ([]models.BoardMember, error) {
	var memberships []models.BoardMember
	if err := r.db.Preload("Board").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// CountAdmins counts the board's ADMIN memberships
func (r *GormBoardRepository) CountAdmins(boardID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.BoardMember{}).
		Where("board_id = ? AND role = ?", boardID, models.RoleAdmin).
		Count(&count).Error
	return count, err
}

// FindOldestMemberWithRole finds the earliest-joined member holding the role,
// excluding the given user
func (r *GormBoardRepository) FindOldestMemberWithRole(boardID uint64, role models.BoardRole, excludeUserID uint64) (*models.BoardMember, error) {
	var member models.BoardMember
	if err := r.db.Where("board_id = ? AND role = ? AND user_id != ?", boardID, role, excludeUserID).
		Order("joined_at ASC").
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateMemberRole persists a member's new role
func (r *GormBoardRepository) UpdateMemberRole(boardID, userID uint64, role models.BoardRole) error {
	return r.db.Model(&models.BoardMember{}).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Update("role", role).Error
}

// TransferOwnership promotes the successor when needed, points the board at
// them, and deletes the departing owner's membership in one transaction.
func (r *GormBoardRepository) TransferOwnership(boardID, departingUserID, newOwnerID uint64, promote bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if promote {
			if err := tx.Model(&models.BoardMember{}).
				Where("board_id = ? AND user_id = ?", boardID, newOwnerID).
				Update("role", models.RoleAdmin).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Board{}).
			Where("id = ?", boardID).
			Update("owner_id", newOwnerID).Error; err != nil {
			return err
		}

		return tx.Where("board_id = ? AND user_id = ?", boardID, departingUserID).
			Delete(&models.BoardMember{}).Error
	})
}
