package db

import (
	"backend/internal/app/message"
	"backend/internal/app/session"
	"backend/internal/app/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB, logger *zap.Logger) error {
	if err := db.AutoMigrate(
		&user.User{},
		&session.Session{},
		&message.Message{},
		&message.Reaction{},
	); err != nil {
		return err
	}

	logger.Info("Database migrations applied")
	return nil
}
