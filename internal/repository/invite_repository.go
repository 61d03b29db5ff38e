package repository

import (
	"time"

	"github.com/harukisol/board-management-api/internal/models"
	"gorm.io/gorm"
)

// GormInviteRepository is a GORM implementation of InviteRepository
type GormInviteRepository struct {
	db *gorm.DB
}

// NewInviteRepository creates a new InviteRepository
func NewInviteRepository(db *gorm.DB) InviteRepository {
	return &GormInviteRepository{db: db}
}

// Create creates a new invite
func (r *GormInviteRepository) Create(invite *models.Invite) error {
	return r.db.Create(invite).Error
}

// FindByID finds an invite by ID
func (r *GormInviteRepository) FindByID(id uint64) (*models.Invite, error) {
	var invite models.Invite
	if err := r.db.First(&invite, id).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

// FindPending finds the pending invite for a (board, recipient) pair
func (r *GormInviteRepository) FindPending(boardID, recipientID uint64) (*models.Invite, error) {
	var invite models.Invite
	if err := r.db.Where("board_id = ? AND recipient_id = ? AND status = ?",
		boardID, recipientID, models.InviteStatusPending).
		First(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

// ListByRecipient lists all pending invites addressed to a user
func (r *GormInviteRepository) ListByRecipient(recipientID uint64) ([]models.Invite, error) {
	var invites []models.Invite
	if err := r.db.Preload("Board").Preload("Sender").
		Where("recipient_id = ? AND status = ?", recipientID, models.InviteStatusPending).
		Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}

// Delete removes an invite
func (r *GormInviteRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Invite{}, id).Error
}

// Accept converts an invite into a board membership and deletes the invite.
// Both writes happen in one transaction so acceptance can never leave a
// dangling invite or a membership without cleanup.
func (r *GormInviteRepository) Accept(invite *models.Invite) (*models.BoardMember, error) {
	member := &models.BoardMember{
		BoardID:  invite.BoardID,
		UserID:   invite.RecipientID,
		Role:     invite.Role,
		JoinedAt: time.Now(),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(member).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Invite{}, invite.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return member, nil
}
