package application

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurocare/neurocare-api/internal/domain/entity"
)

func createTestWellnessService(t *testing.T) (*WellnessService, *fakeAccountRepo) {
	t.Helper()
	store := newFakeAccountRepo()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewWellnessService(store, nil, "", logger), store
}

func seedAccount(t *testing.T, store *fakeAccountRepo, email string) {
	t.Helper()
	require.NoError(t, store.Create(context.Background(), &entity.Account{
		Name: "u", Email: email, Password: "digest", Membership: entity.MembershipFree,
	}))
}

func TestWellnessService_ChatMessageSentiment(t *testing.T) {
	svc, store := createTestWellnessService(t)
	ctx := context.Background()
	seedAccount(t, store, "u@x.com")

	m, err := svc.AddChatMessage(ctx, "u@x.com", "I feel anxious and tired")
	require.NoError(t, err)
	assert.Equal(t, entity.SenderUser, m.Sender)
	assert.Equal(t, SentimentNegative, m.Sentiment)
	assert.False(t, m.Timestamp.IsZero())

	history, err := svc.ChatHistory(ctx, "u@x.com")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "I feel anxious and tired", history[0].Message)
}

func TestWellnessService_ChatHistoryEmpty(t *testing.T) {
	svc, store := createTestWellnessService(t)
	ctx := context.Background()
	seedAccount(t, store, "u@x.com")

	history, err := svc.ChatHistory(ctx, "u@x.com")
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestWellnessService_UnknownAccount(t *testing.T) {
	svc, _ := createTestWellnessService(t)
	ctx := context.Background()

	_, err := svc.AddChatMessage(ctx, "nobody@x.com", "hi")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	_, err = svc.ChatHistory(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	_, err = svc.LogMood(ctx, "nobody@x.com", "happy", "")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	err = svc.UpdateSettings(ctx, "nobody@x.com", entity.Settings{})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestWellnessService_MoodLogs(t *testing.T) {
	svc, store := createTestWellnessService(t)
	ctx := context.Background()
	seedAccount(t, store, "u@x.com")

	_, err := svc.LogMood(ctx, "u@x.com", "calm", "slept well")
	require.NoError(t, err)
	_, err = svc.LogMood(ctx, "u@x.com", "stressed", "deadline")
	require.NoError(t, err)

	logs, err := svc.MoodLogs(ctx, "u@x.com")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "calm", logs[0].Mood)
	assert.Equal(t, "deadline", logs[1].Note)
}

func TestWellnessService_UpdateSettings(t *testing.T) {
	svc, store := createTestWellnessService(t)
	ctx := context.Background()
	seedAccount(t, store, "u@x.com")

	want := entity.Settings{Timezone: "Europe/Berlin", DailyReminder: true}
	require.NoError(t, svc.UpdateSettings(ctx, "u@x.com", want))

	a, err := store.GetByEmail(ctx, "u@x.com")
	require.NoError(t, err)
	assert.Equal(t, want, a.Settings)
}
