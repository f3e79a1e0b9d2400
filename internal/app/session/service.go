package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

type Service interface {
	CreateSession(email string, userAgent string) (*Session, *User, error)
	GetUserBySessionKey(sessionKey string) (*User, error)
	GetSessionByKey(sessionKey string) (*Session, error)
	EndSession(sessionKey string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateSession issues a fresh session key for an already-registered user.
// Account registration and password checks are handled by the auth subsystem;
// this layer only binds a key to an identity.
func (s *service) CreateSession(email string, userAgent string) (*Session, *User, error) {
	user, err := s.repo.GetUserByEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("user not found: %w", err)
	}

	sessionKey, err := generateSessionKey()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate session key: %w", err)
	}

	session := &Session{
		SessionKey: sessionKey,
		UserAgent:  &userAgent,
		UserID:     user.ID,
		StartedAt:  time.Now().UTC(),
	}

	if err := s.repo.CreateSession(session); err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, user, nil
}

func (s *service) GetUserBySessionKey(sessionKey string) (*User, error) {
	session, err := s.repo.GetSessionByKey(sessionKey)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	if session.EndedAt != nil {
		return nil, fmt.Errorf("session ended")
	}

	user, err := s.repo.GetUserByID(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return user, nil
}

func (s *service) GetSessionByKey(sessionKey string) (*Session, error) {
	return s.repo.GetSessionByKey(sessionKey)
}

func (s *service) EndSession(sessionKey string) error {
	session, err := s.repo.GetSessionByKey(sessionKey)
	if err != nil {
		return fmt.Errorf("session not found: %w", err)
	}
	return s.repo.UpdateSessionEndedAt(session.ID)
}

func generateSessionKey() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
