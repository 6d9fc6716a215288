package repository

import (
	"context"
	"errors"

	"github.com/neurocare/neurocare-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no account matches the lookup key.
	ErrNotFound = errors.New("account not found")
	// ErrDuplicateEmail is returned when an insert collides with the unique
	// email index, including the case where two signups race.
	ErrDuplicateEmail = errors.New("email already registered")
)

// AccountRepository defines the interface for account document storage.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetAll(ctx context.Context) ([]entity.Account, error)
	UpdateSettings(ctx context.Context, email string, s entity.Settings) error
	AppendChatMessage(ctx context.Context, email string, m entity.ChatMessage) error
	AppendMoodLog(ctx context.Context, email string, l entity.MoodLog) error
}
