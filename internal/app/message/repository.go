package message

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(msg *Message) error
	GetByID(id string) (*Message, error)
	ListBetween(userA string, userB string) ([]*Message, error)
	UpdateBody(id string, newBody string) error
	SoftDelete(id string) error
	AddReaction(reaction *Reaction) error
	MarkRead(id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(msg *Message) error {
	return r.db.Create(msg).Error
}

// GetByID excludes soft-deleted rows; a deleted message is gone from every
// read path even though the row is retained.
func (r *repository) GetByID(id string) (*Message, error) {
	var msg Message
	err := r.db.
		Preload("Reactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("message_reactions.id ASC")
		}).
		Where("id = ? AND deleted = ?", id, false).
		First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *repository) ListBetween(userA string, userB string) ([]*Message, error) {
	var messages []*Message
	err := r.db.
		Preload("Reactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("message_reactions.id ASC")
		}).
		Where("deleted = ?", false).
		Where(
			r.db.Where("sender = ? AND receiver = ?", userA, userB).
				Or("sender = ? AND receiver = ?", userB, userA),
		).
		Order("timestamp ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *repository) UpdateBody(id string, newBody string) error {
	return r.db.Model(&Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"message": newBody,
			"edited":  true,
		}).Error
}

func (r *repository) SoftDelete(id string) error {
	return r.db.Model(&Message{}).
		Where("id = ?", id).
		Update("deleted", true).Error
}

func (r *repository) AddReaction(reaction *Reaction) error {
	return r.db.Create(reaction).Error
}

func (r *repository) MarkRead(id string) error {
	return r.db.Model(&Message{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}
