package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/neurocare/neurocare-api/internal/domain/entity"
	"github.com/neurocare/neurocare-api/internal/domain/repository"
)

// uniqueViolation is the Postgres error code raised by the accounts_email_key
// index. It is what makes concurrent signups with the same email safe: the
// store, not the application, arbitrates the check-then-insert race.
const uniqueViolation = "23505"

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (name, email, password_hash, membership, settings)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, a.Name, a.Email, a.Password, a.Membership, a.Settings)

	if err := row.Scan(&a.ID, &a.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	a := &entity.Account{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, membership, settings, chat_history, mood_logs, created_at
		FROM accounts
		WHERE email = $1
	`, email)

	if err := scanAccount(row, a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AccountRepository) GetAll(ctx context.Context) ([]entity.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, password_hash, membership, settings, chat_history, mood_logs, created_at
		FROM accounts
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Account
	for rows.Next() {
		var a entity.Account
		if err := scanAccount(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AccountRepository) UpdateSettings(ctx context.Context, email string, s entity.Settings) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE accounts SET settings = $1 WHERE email = $2
	`, s, email)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) AppendChatMessage(ctx context.Context, email string, m entity.ChatMessage) error {
	return r.appendJSON(ctx, "chat_history", email, m)
}

func (r *AccountRepository) AppendMoodLog(ctx context.Context, email string, l entity.MoodLog) error {
	return r.appendJSON(ctx, "mood_logs", email, l)
}

// appendJSON pushes one element onto a JSONB array column. col is always one
// of the two fixed column names above, never caller input.
func (r *AccountRepository) appendJSON(ctx context.Context, col, email string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE accounts SET `+col+` = `+col+` || $1::jsonb WHERE email = $2
	`, b, email)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanAccount(row pgx.Row, a *entity.Account) error {
	return row.Scan(&a.ID, &a.Name, &a.Email, &a.Password, &a.Membership,
		&a.Settings, &a.ChatHistory, &a.MoodLogs, &a.CreatedAt)
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
