package seeder

import (
	"backend/internal/app/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewSeeder(db *gorm.DB, logger *zap.Logger) *Seeder {
	return &Seeder{
		db:     db,
		logger: logger,
	}
}

func (s *Seeder) Seed() error {
	s.logger.Info("Running database seeders...")

	if err := s.seedUsers(); err != nil {
		return err
	}

	s.logger.Info("Database seeders completed successfully")
	return nil
}

// seedUsers creates a demo team for local bring-up.
func (s *Seeder) seedUsers() error {
	var count int64
	s.db.Model(&user.User{}).Count(&count)
	if count > 0 {
		s.logger.Info("Users already exist, skipping seed")
		return nil
	}

	users := []user.User{
		{ID: uuid.New().String(), Name: "Alice Carter", Role: "manager", Email: "alice@example.com", TeamID: "team-demo"},
		{ID: uuid.New().String(), Name: "Bram Novak", Role: "developer", Email: "bram@example.com", TeamID: "team-demo"},
		{ID: uuid.New().String(), Name: "Chidi Okafor", Role: "developer", Email: "chidi@example.com", TeamID: "team-demo"},
		{ID: uuid.New().String(), Name: "Dana Lim", Role: "designer", Email: "dana@example.com", TeamID: "team-demo"},
	}

	if err := s.db.Create(&users).Error; err != nil {
		return err
	}

	s.logger.Info("Seeded demo team users", zap.Int("count", len(users)))
	return nil
}
