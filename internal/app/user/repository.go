package user

import (
	"gorm.io/gorm"
)

type Repository interface {
	GetUserByID(id string) (*User, error)
	GetUserByEmail(email string) (*User, error)
	FindByTeam(teamID string, excludeEmail string, excludeID string) ([]*User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetUserByID(id string) (*User, error) {
	var user User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) GetUserByEmail(email string) (*User, error) {
	var user User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindByTeam(teamID string, excludeEmail string, excludeID string) ([]*User, error) {
	var users []*User
	err := r.db.
		Where("team_id = ?", teamID).
		Where("email <> ?", excludeEmail).
		Where("id <> ?", excludeID).
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
