package app

import (
	"strings"

	"wellnesshub/internal/model"
)

// PreferenceStore is the slice of the user repository the preference service
// needs. Each update touches exactly one column.
type PreferenceStore interface {
	GetByID(id uint) (*model.User, error)
	UpdateTheme(id uint, theme string) error
	UpdateLanguage(id uint, language string) error
	UpdateNotificationsEnabled(id uint, enabled bool) error
	UpdateIncognito(id uint, incognito bool) error
}

type PreferenceService struct {
	users PreferenceStore
}

func NewPreferenceService(users PreferenceStore) *PreferenceService {
	return &PreferenceService{users: users}
}

func (s *PreferenceService) SetTheme(userID uint, theme string) (string, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return "", ErrInvalidInput
	}
	if err := s.requireUser(userID); err != nil {
		return "", err
	}
	if err := s.users.UpdateTheme(userID, theme); err != nil {
		return "", err
	}
	return theme, nil
}

func (s *PreferenceService) SetLanguage(userID uint, language string) (string, error) {
	language = strings.TrimSpace(language)
	if language == "" {
		return "", ErrInvalidInput
	}
	if err := s.requireUser(userID); err != nil {
		return "", err
	}
	if err := s.users.UpdateLanguage(userID, language); err != nil {
		return "", err
	}
	return language, nil
}

func (s *PreferenceService) SetNotifications(userID uint, enabled bool) (bool, error) {
	if err := s.requireUser(userID); err != nil {
		return false, err
	}
	if err := s.users.UpdateNotificationsEnabled(userID, enabled); err != nil {
		return false, err
	}
	return enabled, nil
}

func (s *PreferenceService) SetIncognito(userID uint, incognito bool) (bool, error) {
	if err := s.requireUser(userID); err != nil {
		return false, err
	}
	if err := s.users.UpdateIncognito(userID, incognito); err != nil {
		return false, err
	}
	return incognito, nil
}

func (s *PreferenceService) Get(userID uint) (*model.User, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// requireUser fails with ErrUserNotFound before any write happens.
func (s *PreferenceService) requireUser(userID uint) error {
	if userID == 0 {
		return ErrInvalidInput
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return nil
}
