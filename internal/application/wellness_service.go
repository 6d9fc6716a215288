package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/neurocare/neurocare-api/internal/domain/entity"
	repo "github.com/neurocare/neurocare-api/internal/domain/repository"
	"github.com/neurocare/neurocare-api/pkg/helpers"
)

// WellnessService owns the chat-history, mood-log and profile-settings
// operations hanging off an account document.
type WellnessService struct {
	Repo      repo.AccountRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewWellnessService(repo repo.AccountRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *WellnessService {
	return &WellnessService{Repo: repo, GCS: gcs, GCSBucket: gcsBucket, Logger: logger}
}

// AddChatMessage appends a user message to the account's chat history with a
// derived sentiment label.
func (s *WellnessService) AddChatMessage(ctx context.Context, email, message string) (entity.ChatMessage, error) {
	m := entity.ChatMessage{
		Message:   message,
		Sender:    entity.SenderUser,
		Sentiment: ClassifySentiment(message),
		Timestamp: time.Now().UTC(),
	}
	if err := s.Repo.AppendChatMessage(ctx, email, m); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return entity.ChatMessage{}, ErrAccountNotFound
		}
		return entity.ChatMessage{}, err
	}
	return m, nil
}

func (s *WellnessService) ChatHistory(ctx context.Context, email string) ([]entity.ChatMessage, error) {
	a, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if a.ChatHistory == nil {
		return []entity.ChatMessage{}, nil
	}
	return a.ChatHistory, nil
}

// LogMood appends one mood journal entry.
func (s *WellnessService) LogMood(ctx context.Context, email, mood, note string) (entity.MoodLog, error) {
	l := entity.MoodLog{
		Mood:      mood,
		Note:      note,
		Timestamp: time.Now().UTC(),
	}
	if err := s.Repo.AppendMoodLog(ctx, email, l); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return entity.MoodLog{}, ErrAccountNotFound
		}
		return entity.MoodLog{}, err
	}
	return l, nil
}

func (s *WellnessService) MoodLogs(ctx context.Context, email string) ([]entity.MoodLog, error) {
	a, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if a.MoodLogs == nil {
		return []entity.MoodLog{}, nil
	}
	return a.MoodLogs, nil
}

// UpdateSettings replaces the account's settings sub-document.
func (s *WellnessService) UpdateSettings(ctx context.Context, email string, settings entity.Settings) error {
	if err := s.Repo.UpdateSettings(ctx, email, settings); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	return nil
}

// UploadAvatar stores the image in GCS and records its public URL in the
// account's settings.
func (s *WellnessService) UploadAvatar(ctx context.Context, email string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	a, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrAccountNotFound
		}
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", a.ID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}

	a.Settings.AvatarURL = url
	if err := s.Repo.UpdateSettings(ctx, email, a.Settings); err != nil {
		return "", err
	}
	return url, nil
}
