package app

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellnesshub/internal/model"
)

type chatFixture struct {
	users     *fakeUserStore
	sessions  *fakeSessionStore
	messages  *fakeMessageStore
	publisher *fakePublisher
	llm       *fakeLLM
	svc       *ChatService
}

func newChatFixture() *chatFixture {
	f := &chatFixture{
		users:     newFakeUserStore(),
		sessions:  newFakeSessionStore(),
		messages:  &fakeMessageStore{},
		publisher: &fakePublisher{},
		llm:       &fakeLLM{reply: "stay hydrated"},
	}
	f.svc = NewChatService(
		f.sessions,
		f.messages,
		f.users,
		f.publisher,
		nil,
		f.llm,
		testLLMConfig(),
		"whisper-test",
		20,
	)
	return f
}

func (f *chatFixture) seedUserAndSession(incognito bool) (uint, uint) {
	user := &model.User{Username: "alice", PasswordHash: "x", Incognito: incognito}
	_ = f.users.Create(user)
	session := &model.Session{UserID: user.ID, Title: "checkup"}
	_ = f.sessions.Create(session)
	return user.ID, session.ID
}

func TestQuickReply(t *testing.T) {
	t.Parallel()

	f := newChatFixture()
	userID, _ := f.seedUserAndSession(false)

	reply, err := f.svc.QuickReply(context.Background(), QuickReplyInput{
		UserID:   userID,
		Content:  "I have a headache",
		Category: "medical",
	})
	require.NoError(t, err)
	assert.Equal(t, "stay hydrated", reply)

	require.Len(t, f.llm.prompts, 1)
	prompt := f.llm.prompts[0]
	require.Len(t, prompt, 2)
	assert.Equal(t, "system", prompt[0].Role)
	assert.Contains(t, prompt[0].Content, "WellnessHub")
	assert.Contains(t, prompt[0].Content, "Category: medical")
	assert.Equal(t, "I have a headache", prompt[1].Content)

	// stateless: nothing enqueued
	assert.Empty(t, f.publisher.published)
}

func TestQuickReply_EmptyMessage(t *testing.T) {
	t.Parallel()

	f := newChatFixture()
	userID, _ := f.seedUserAndSession(false)

	_, err := f.svc.QuickReply(context.Background(), QuickReplyInput{UserID: userID, Content: "  "})
	assert.ErrorIs(t, err, ErrMessageEmpty)
}

func TestQuickReply_UpstreamFailure(t *testing.T) {
	t.Parallel()

	f := newChatFixture()
	userID, _ := f.seedUserAndSession(false)
	f.llm.err = assert.AnError

	_, err := f.svc.QuickReply(context.Background(), QuickReplyInput{UserID: userID, Content: "hello"})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestSendMessage(t *testing.T) {
	t.Parallel()

	f := newChatFixture()
	userID, sessionID := f.seedUserAndSession(false)

	messages, err := f.svc.SendMessage(context.Background(), SendMessageInput{
		UserID:    userID,
		SessionID: sessionID,
		Content:   "I feel anxious",
		Category:  "emotional",
	})
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[0].Role)
	assert.Equal(t, "assistant", messages[1].Role)
	assert.Equal(t, "stay hydrated", messages[1].Content)

	// both turns were enqueued for persistence
	require.Len(t, f.publisher.published, 2)
	assert.Equal(t, sessionID, f.publisher.published[0].SessionID)
}

func TestSendMessage_SessionNotFound(t *testing.T) {
	t.Parallel()

	f := newChatFixture()
	userID, _ := f.seedUserAndSession(false)

	_, err := f.svc.SendMessage(context.Background(), SendMessageInput{
		UserID:    userID,
		SessionID: 999,
		Content:   "hello",
	})
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, f.publisher.published)
}

func TestSendMessage_OtherUsersSession(t *testing.T) {
	t.Parallel()

	f := newChatFixture()
	_, sessionID := f.seedUserAndSession(false)

	other := &model.User{Username: "mallory", PasswordHash: "x"}
	_ = f.users.Create(other)

	_, err := f.svc.SendMessage(context.Background(), SendMessageInput{
		UserID:    other.ID,
		SessionID: sessionID,
		Content:   "hello",
	})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSendMessage_IncognitoSkipsPersistence(t *testing.T) {
	t.Parallel()

	f := newChatFixture()
	userID, sessionID := f.seedUserAndSession(true)

	messages, err := f.svc.SendMessage(context.Background(), SendMessageInput{
		UserID:    userID,
		SessionID: sessionID,
		Content:   "keep this private",
	})
	require.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Empty(t, f.publisher.published)
}

func TestSendMessage_EnqueueFailure(t *testing.T) {
	t.Parallel()

	f := newChatFixture()
	userID, sessionID := f.seedUserAndSession(false)
	f.publisher.failNext = true

	_, err := f.svc.SendMessage(context.Background(), SendMessageInput{
		UserID:    userID,
		SessionID: sessionID,
		Content:   "hello",
	})
	assert.ErrorIs(t, err, ErrMessageEnqueue)
}

func TestStreamMessage(t *testing.T) {
	t.Parallel()

	f := newChatFixture()
	userID, sessionID := f.seedUserAndSession(false)
	f.llm.reply = "rest and drink water"

	var chunks []string
	full, err := f.svc.StreamMessage(context.Background(), SendMessageInput{
		UserID:    userID,
		SessionID: sessionID,
		Content:   "I have a cold",
	}, func(chunk string) error {
		chunks = append(chunks, chunk)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "rest and drink water", full)
	assert.Equal(t, strings.Fields(full), chunks)
	assert.Len(t, f.publisher.published, 2)
}

func TestCreateAndDeleteSession(t *testing.T) {
	t.Parallel()

	f := newChatFixture()
	userID, _ := f.seedUserAndSession(false)

	session, err := f.svc.CreateSession(CreateSessionInput{UserID: userID, Title: "  "})
	require.NoError(t, err)
	assert.Equal(t, "New Chat", session.Title)

	require.NoError(t, f.svc.DeleteSession(userID, session.ID))
	assert.ErrorIs(t, f.svc.DeleteSession(userID, session.ID), ErrSessionNotFound)
}

func TestTranscribe(t *testing.T) {
	t.Parallel()

	f := newChatFixture()
	f.llm.textBack = "hello world"

	text, err := f.svc.Transcribe(context.Background(), "note.wav", strings.NewReader("RIFF"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
	assert.Equal(t, "note.wav", f.llm.audioIn)
}

func TestTranscribe_UpstreamFailure(t *testing.T) {
	t.Parallel()

	f := newChatFixture()
	f.llm.err = assert.AnError

	_, err := f.svc.Transcribe(context.Background(), "note.wav", strings.NewReader("RIFF"))
	assert.ErrorIs(t, err, ErrUpstream)
}
