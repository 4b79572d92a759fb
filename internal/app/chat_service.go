package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"wellnesshub/internal/ai"
	"wellnesshub/internal/model"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrMessageEmpty    = errors.New("message content is empty")
	ErrLLMConfig       = errors.New("llm config is invalid")
	ErrMessageEnqueue  = errors.New("message enqueue failed")
	ErrUpstream        = errors.New("upstream llm request failed")
)

// The assistant persona the original product shipped with. Category context
// is appended per request.
const wellnessSystemPrompt = "You are WellnessHub, an AI-powered assistant for medical and emotional support. " +
	"Provide empathetic, accurate responses. For medical queries, advise consulting a doctor. " +
	"For emotional support, be supportive and suggest coping strategies. Keep responses concise and helpful."

type SessionStore interface {
	Create(session *model.Session) error
	ListByUserID(userID uint) ([]model.Session, error)
	GetByIDAndUserID(sessionID, userID uint) (*model.Session, error)
	DeleteByIDAndUserID(sessionID, userID uint) error
}

type MessageStore interface {
	ListBySessionID(sessionID uint, limit int) ([]model.Message, error)
	ListRecentBySessionID(sessionID uint, limit int) ([]model.Message, error)
	DeleteBySessionID(sessionID uint) error
}

type UserLookup interface {
	GetByID(id uint) (*model.User, error)
}

type AsyncMessagePublisher interface {
	Publish(ctx context.Context, msg model.Message) error
}

type HistoryCache interface {
	GetHistory(ctx context.Context, sessionID uint) ([]model.Message, bool, error)
	SetHistory(ctx context.Context, sessionID uint, messages []model.Message) error
	DeleteHistory(ctx context.Context, sessionID uint) error
	MarkDirty(ctx context.Context, sessionID uint) error
	IsDirty(ctx context.Context, sessionID uint) (bool, error)
}

type CompletionClient interface {
	Complete(ctx context.Context, cfg ai.ChatConfig, messages []ai.ChatMessage) (string, error)
	StreamComplete(ctx context.Context, cfg ai.ChatConfig, messages []ai.ChatMessage, onChunk func(string) error) (string, error)
	Transcribe(ctx context.Context, cfg ai.TranscribeConfig, filename string, audio io.Reader) (string, error)
}

type ChatService struct {
	sessionRepo     SessionStore
	messageRepo     MessageStore
	users           UserLookup
	publisher       AsyncMessagePublisher
	historyCache    HistoryCache
	llmClient       CompletionClient
	defaultLLM      ai.ChatConfig
	transcribeModel string
	maxContext      int
}

type CreateSessionInput struct {
	UserID uint
	Title  string
}

type SendMessageInput struct {
	UserID    uint
	SessionID uint
	Content   string
	Category  string
}

type QuickReplyInput struct {
	UserID   uint
	Content  string
	Category string
}

func NewChatService(
	sessionRepo SessionStore,
	messageRepo MessageStore,
	users UserLookup,
	publisher AsyncMessagePublisher,
	historyCache HistoryCache,
	llmClient CompletionClient,
	defaultLLM ai.ChatConfig,
	transcribeModel string,
	maxContext int,
) *ChatService {
	if maxContext <= 0 {
		maxContext = 20
	}
	return &ChatService{
		sessionRepo:     sessionRepo,
		messageRepo:     messageRepo,
		users:           users,
		publisher:       publisher,
		historyCache:    historyCache,
		llmClient:       llmClient,
		defaultLLM:      defaultLLM,
		transcribeModel: transcribeModel,
		maxContext:      maxContext,
	}
}

// QuickReply proxies a single message straight to the model without touching
// session history. Nothing is persisted.
func (s *ChatService) QuickReply(ctx context.Context, input QuickReplyInput) (string, error) {
	if input.UserID == 0 {
		return "", ErrInvalidInput
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return "", ErrMessageEmpty
	}

	cfg, err := s.resolveLLM()
	if err != nil {
		return "", err
	}

	messages := promptPreamble(input.Category)
	messages = append(messages, ai.ChatMessage{Role: "user", Content: content})

	reply, err := s.llmClient.Complete(ctx, cfg, messages)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		reply = "The model returned an empty response."
	}
	return reply, nil
}

func (s *ChatService) CreateSession(input CreateSessionInput) (*model.Session, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = "New Chat"
	}

	session := &model.Session{
		UserID: input.UserID,
		Title:  title,
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *ChatService) ListSessions(userID uint) ([]model.Session, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.sessionRepo.ListByUserID(userID)
}

func (s *ChatService) DeleteSession(userID, sessionID uint) error {
	if userID == 0 || sessionID == 0 {
		return ErrInvalidInput
	}
	session, err := s.sessionRepo.GetByIDAndUserID(sessionID, userID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}
	if err := s.messageRepo.DeleteBySessionID(sessionID); err != nil {
		return err
	}
	if err := s.sessionRepo.DeleteByIDAndUserID(sessionID, userID); err != nil {
		return err
	}
	if s.historyCache != nil {
		_ = s.historyCache.DeleteHistory(context.Background(), sessionID)
	}
	return nil
}

func (s *ChatService) SendMessage(ctx context.Context, input SendMessageInput) ([]model.Message, error) {
	content := strings.TrimSpace(input.Content)
	persist, promptMessages, err := s.prepareTurn(ctx, input, content)
	if err != nil {
		return nil, err
	}

	cfg, err := s.resolveLLM()
	if err != nil {
		return nil, err
	}

	userMessage := model.Message{
		SessionID: input.SessionID,
		UserID:    input.UserID,
		Role:      "user",
		Category:  strings.TrimSpace(input.Category),
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.recordMessage(ctx, userMessage, persist); err != nil {
		return nil, err
	}

	reply, err := s.llmClient.Complete(ctx, cfg, promptMessages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		reply = "The model returned an empty response."
	}

	assistantMessage := model.Message{
		SessionID: input.SessionID,
		UserID:    input.UserID,
		Role:      "assistant",
		Content:   reply,
		CreatedAt: time.Now(),
	}
	if err := s.recordMessage(ctx, assistantMessage, persist); err != nil {
		return nil, err
	}

	return []model.Message{userMessage, assistantMessage}, nil
}

func (s *ChatService) StreamMessage(
	ctx context.Context,
	input SendMessageInput,
	onChunk func(string) error,
) (string, error) {
	content := strings.TrimSpace(input.Content)
	persist, promptMessages, err := s.prepareTurn(ctx, input, content)
	if err != nil {
		return "", err
	}

	cfg, err := s.resolveLLM()
	if err != nil {
		return "", err
	}

	userMessage := model.Message{
		SessionID: input.SessionID,
		UserID:    input.UserID,
		Role:      "user",
		Category:  strings.TrimSpace(input.Category),
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.recordMessage(ctx, userMessage, persist); err != nil {
		return "", err
	}

	full, err := s.llmClient.StreamComplete(ctx, cfg, promptMessages, onChunk)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	full = strings.TrimSpace(full)
	if full == "" {
		full = "The model returned an empty response."
	}

	assistantMessage := model.Message{
		SessionID: input.SessionID,
		UserID:    input.UserID,
		Role:      "assistant",
		Content:   full,
		CreatedAt: time.Now(),
	}
	if err := s.recordMessage(ctx, assistantMessage, persist); err != nil {
		return "", err
	}

	return full, nil
}

func (s *ChatService) GetHistory(userID, sessionID uint, limit int) ([]model.Message, error) {
	if userID == 0 || sessionID == 0 {
		return nil, ErrInvalidInput
	}

	session, err := s.sessionRepo.GetByIDAndUserID(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	ctx := context.Background()
	if s.historyCache != nil {
		dirty, err := s.historyCache.IsDirty(ctx, sessionID)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.historyCache.GetHistory(ctx, sessionID); cacheErr == nil && hit {
				return trimMessages(cached, limit), nil
			}
		}
	}

	messages, err := s.messageRepo.ListBySessionID(sessionID, limit)
	if err != nil {
		return nil, err
	}
	if s.historyCache != nil {
		if dirty, dirtyErr := s.historyCache.IsDirty(ctx, sessionID); dirtyErr == nil && !dirty {
			_ = s.historyCache.SetHistory(ctx, sessionID, messages)
		}
	}
	return messages, nil
}

// Transcribe proxies an uploaded audio file to the speech endpoint and
// returns the recognized text.
func (s *ChatService) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	cfg, err := s.resolveLLM()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(s.transcribeModel) == "" {
		return "", ErrLLMConfig
	}

	text, err := s.llmClient.Transcribe(ctx, ai.TranscribeConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   s.transcribeModel,
	}, filename, audio)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return strings.TrimSpace(text), nil
}

// prepareTurn validates the turn, decides whether it may be persisted
// (incognito users leave no trace) and builds the prompt window.
func (s *ChatService) prepareTurn(ctx context.Context, input SendMessageInput, content string) (bool, []ai.ChatMessage, error) {
	if input.UserID == 0 || input.SessionID == 0 {
		return false, nil, ErrInvalidInput
	}
	if content == "" {
		return false, nil, ErrMessageEmpty
	}

	session, err := s.sessionRepo.GetByIDAndUserID(input.SessionID, input.UserID)
	if err != nil {
		return false, nil, err
	}
	if session == nil {
		return false, nil, ErrSessionNotFound
	}

	user, err := s.users.GetByID(input.UserID)
	if err != nil {
		return false, nil, err
	}
	if user == nil {
		return false, nil, ErrUserNotFound
	}
	persist := !user.Incognito

	promptMessages, err := s.buildPromptMessages(input.SessionID, input.Category, content)
	if err != nil {
		return false, nil, err
	}
	return persist, promptMessages, nil
}

// recordMessage enqueues the message for async persistence and invalidates
// cached history. For incognito turns both are skipped.
func (s *ChatService) recordMessage(ctx context.Context, msg model.Message, persist bool) error {
	if !persist {
		return nil
	}
	if s.publisher == nil {
		return ErrMessageEnqueue
	}
	if s.historyCache != nil {
		_ = s.historyCache.MarkDirty(ctx, msg.SessionID)
		_ = s.historyCache.DeleteHistory(ctx, msg.SessionID)
	}
	if err := s.publisher.Publish(ctx, msg); err != nil {
		return ErrMessageEnqueue
	}
	return nil
}

func (s *ChatService) resolveLLM() (ai.ChatConfig, error) {
	cfg := s.defaultLLM
	if cfg.BaseURL == "" || cfg.APIKey == "" || cfg.Model == "" {
		return ai.ChatConfig{}, ErrLLMConfig
	}
	return cfg, nil
}

func (s *ChatService) buildPromptMessages(sessionID uint, category, currentUserInput string) ([]ai.ChatMessage, error) {
	recent, err := s.messageRepo.ListRecentBySessionID(sessionID, s.maxContext)
	if err != nil {
		return nil, err
	}

	messages := promptPreamble(category)
	for _, item := range recent {
		role := item.Role
		if role == "" {
			role = "user"
		}
		messages = append(messages, ai.ChatMessage{
			Role:    role,
			Content: item.Content,
		})
	}
	messages = append(messages, ai.ChatMessage{
		Role:    "user",
		Content: currentUserInput,
	})
	return messages, nil
}

func promptPreamble(category string) []ai.ChatMessage {
	system := wellnessSystemPrompt
	if c := strings.TrimSpace(category); c != "" {
		system += "\nCategory: " + c
	}
	return []ai.ChatMessage{{Role: "system", Content: system}}
}

func trimMessages(messages []model.Message, limit int) []model.Message {
	if limit <= 0 || limit >= len(messages) {
		return messages
	}
	return messages[len(messages)-limit:]
}
