package app

import (
	"context"
	"errors"
	"io"
	"strings"

	"wellnesshub/internal/ai"
	"wellnesshub/internal/model"
)

type fakeUserStore struct {
	users  map[uint]*model.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint]*model.User{}}
}

func (s *fakeUserStore) Create(user *model.User) error {
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return errors.New("duplicate username")
		}
	}
	s.nextID++
	user.ID = s.nextID
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *fakeUserStore) GetByUsername(username string) (*model.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) GetByID(id uint) (*model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (s *fakeUserStore) UpdateTheme(id uint, theme string) error {
	if user, ok := s.users[id]; ok {
		user.Theme = theme
	}
	return nil
}

func (s *fakeUserStore) UpdateLanguage(id uint, language string) error {
	if user, ok := s.users[id]; ok {
		user.Language = language
	}
	return nil
}

func (s *fakeUserStore) UpdateNotificationsEnabled(id uint, enabled bool) error {
	if user, ok := s.users[id]; ok {
		user.NotificationsEnabled = enabled
	}
	return nil
}

func (s *fakeUserStore) UpdateIncognito(id uint, incognito bool) error {
	if user, ok := s.users[id]; ok {
		user.Incognito = incognito
	}
	return nil
}

type fakeSessionStore struct {
	sessions map[uint]*model.Session
	nextID   uint
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[uint]*model.Session{}}
}

func (s *fakeSessionStore) Create(session *model.Session) error {
	s.nextID++
	session.ID = s.nextID
	clone := *session
	s.sessions[session.ID] = &clone
	return nil
}

func (s *fakeSessionStore) ListByUserID(userID uint) ([]model.Session, error) {
	var out []model.Session
	for _, session := range s.sessions {
		if session.UserID == userID {
			out = append(out, *session)
		}
	}
	return out, nil
}

func (s *fakeSessionStore) GetByIDAndUserID(sessionID, userID uint) (*model.Session, error) {
	session, ok := s.sessions[sessionID]
	if !ok || session.UserID != userID {
		return nil, nil
	}
	clone := *session
	return &clone, nil
}

func (s *fakeSessionStore) DeleteByIDAndUserID(sessionID, userID uint) error {
	if session, ok := s.sessions[sessionID]; ok && session.UserID == userID {
		delete(s.sessions, sessionID)
	}
	return nil
}

type fakeMessageStore struct {
	messages []model.Message
}

func (s *fakeMessageStore) ListBySessionID(sessionID uint, limit int) ([]model.Message, error) {
	var out []model.Message
	for _, msg := range s.messages {
		if msg.SessionID == sessionID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (s *fakeMessageStore) ListRecentBySessionID(sessionID uint, limit int) ([]model.Message, error) {
	return s.ListBySessionID(sessionID, limit)
}

func (s *fakeMessageStore) DeleteBySessionID(sessionID uint) error {
	var kept []model.Message
	for _, msg := range s.messages {
		if msg.SessionID != sessionID {
			kept = append(kept, msg)
		}
	}
	s.messages = kept
	return nil
}

type fakePublisher struct {
	published []model.Message
	failNext  bool
}

func (p *fakePublisher) Publish(_ context.Context, msg model.Message) error {
	if p.failNext {
		return errors.New("broker down")
	}
	p.published = append(p.published, msg)
	return nil
}

type fakeLLM struct {
	reply    string
	err      error
	prompts  [][]ai.ChatMessage
	audioIn  string
	textBack string
}

func (f *fakeLLM) Complete(_ context.Context, _ ai.ChatConfig, messages []ai.ChatMessage) (string, error) {
	f.prompts = append(f.prompts, messages)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) StreamComplete(_ context.Context, _ ai.ChatConfig, messages []ai.ChatMessage, onChunk func(string) error) (string, error) {
	f.prompts = append(f.prompts, messages)
	if f.err != nil {
		return "", f.err
	}
	for _, part := range strings.Fields(f.reply) {
		if err := onChunk(part); err != nil {
			return "", err
		}
	}
	return f.reply, nil
}

func (f *fakeLLM) Transcribe(_ context.Context, _ ai.TranscribeConfig, filename string, audio io.Reader) (string, error) {
	f.audioIn = filename
	if f.err != nil {
		return "", f.err
	}
	_, _ = io.Copy(io.Discard, audio)
	return f.textBack, nil
}

func testLLMConfig() ai.ChatConfig {
	return ai.ChatConfig{
		BaseURL: "https://llm.invalid/v1",
		APIKey:  "test-key",
		Model:   "test-model",
	}
}
