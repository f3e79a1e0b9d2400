package user

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"backend/internal/providers/minio"
	"backend/internal/providers/redis"

	"go.uber.org/zap"
)

const userCacheTTL = 5 * time.Minute

type Service interface {
	GetUserByID(ctx context.Context, id string) (*User, error)
	TeamPartners(ctx context.Context, teamID string, excludeEmail string, callerID string) ([]*Partner, error)
}

type service struct {
	repo   Repository
	redisP *redis.RedisProvider
	minioP *minio.MinioProvider
	logger *zap.SugaredLogger
}

func NewService(repo Repository, redisP *redis.RedisProvider, minioP *minio.MinioProvider, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		redisP: redisP,
		minioP: minioP,
		logger: logger.Sugar(),
	}
}

func (s *service) GetUserByID(ctx context.Context, id string) (*User, error) {
	cacheKey := fmt.Sprintf("user:id:%s", id)

	if s.redisP != nil {
		if cached, err := s.redisP.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var user User
			if json.Unmarshal([]byte(cached), &user) == nil {
				user.PhotoURL = s.photoURL(user.ProfilePhoto)
				return &user, nil
			}
		}
	}

	user, err := s.repo.GetUserByID(id)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	if s.redisP != nil {
		if data, err := json.Marshal(user); err == nil {
			s.redisP.SetEX(ctx, cacheKey, data, userCacheTTL)
		}
	}

	user.PhotoURL = s.photoURL(user.ProfilePhoto)
	return user, nil
}

func (s *service) TeamPartners(ctx context.Context, teamID string, excludeEmail string, callerID string) ([]*Partner, error) {
	cacheKey := fmt.Sprintf("users:team:%s:exclude:%s:%s", teamID, excludeEmail, callerID)

	if s.redisP != nil {
		if cached, err := s.redisP.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var partners []*Partner
			if json.Unmarshal([]byte(cached), &partners) == nil {
				return partners, nil
			}
		}
	}

	users, err := s.repo.FindByTeam(teamID, excludeEmail, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}

	partners := make([]*Partner, 0, len(users))
	for _, u := range users {
		partners = append(partners, &Partner{
			ID:       u.ID,
			Name:     u.Name,
			Role:     u.Role,
			Email:    u.Email,
			PhotoURL: s.photoURL(u.ProfilePhoto),
		})
	}

	if s.redisP != nil && len(partners) > 0 {
		if data, err := json.Marshal(partners); err == nil {
			s.redisP.SetEX(ctx, cacheKey, data, userCacheTTL)
		}
	}

	return partners, nil
}

func (s *service) photoURL(objectName string) string {
	if objectName == "" || s.minioP == nil {
		return ""
	}
	return s.minioP.FileURL(objectName)
}
