package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/neurocare/neurocare-api/internal/domain/entity"
	repo "github.com/neurocare/neurocare-api/internal/domain/repository"
	"github.com/neurocare/neurocare-api/pkg/helpers"
	"github.com/neurocare/neurocare-api/pkg/mailer"
)

var (
	ErrDuplicateAccount = errors.New("email already registered")
	// ErrInvalidCredentials covers both "no such account" and "wrong
	// password" so a caller cannot tell them apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAccountNotFound    = errors.New("account not found")
)

// AccountService orchestrates the credential store, the password hasher, the
// token issuer and the session blacklist.
type AccountService struct {
	Repo            repo.AccountRepository
	Tokens          *helpers.TokenManager
	Blacklist       repo.TokenBlacklist
	Logger          *logrus.Logger
	Pub             *helpers.RabbitPublisher
	MailEnabled     bool
	ES              *elasticsearch.Client
	ESAccountsIndex string
}

func NewAccountService(repo repo.AccountRepository, tokens *helpers.TokenManager, bl repo.TokenBlacklist, logger *logrus.Logger, pub *helpers.RabbitPublisher, mailEnabled bool, es *elasticsearch.Client, esIndex string) *AccountService {
	return &AccountService{
		Repo:            repo,
		Tokens:          tokens,
		Blacklist:       bl,
		Logger:          logger,
		Pub:             pub,
		MailEnabled:     mailEnabled,
		ES:              es,
		ESAccountsIndex: esIndex,
	}
}

// AccountView is the externally visible projection of an Account. The
// password digest and the bulky sub-documents never leave through it.
type AccountView struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Membership string          `json:"membership"`
	Settings   entity.Settings `json:"settings"`
	CreatedAt  time.Time       `json:"created_at"`
}

func NewAccountView(a *entity.Account) AccountView {
	return AccountView{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email,
		Membership: a.Membership,
		Settings:   a.Settings,
		CreatedAt:  a.CreatedAt,
	}
}

// Signup hashes the password and persists a new account. The email pre-check
// gives duplicate callers a fast answer; two signups racing past it are
// arbitrated by the store's unique index, so at most one row ever lands.
func (s *AccountService) Signup(ctx context.Context, name, email, password string) error {
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return ErrDuplicateAccount
	} else if !errors.Is(err, repo.ErrNotFound) {
		return err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return err
	}
	a := &entity.Account{
		Name:       name,
		Email:      email,
		Password:   hash,
		Membership: entity.MembershipFree,
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return ErrDuplicateAccount
		}
		return err
	}

	s.enqueueWelcomeEmail(ctx, a)
	s.indexAccount(ctx, a)
	return nil
}

// Login verifies the credentials and issues a session token bound to the
// email claim. Unknown email and wrong password are indistinguishable.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	a, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || a == nil {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if !helpers.CheckPassword(a.Password, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}
	token, exp, err := s.Tokens.Generate(a.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", a.Email).Error("generate session token failed")
		}
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// Logout revokes the presented token. The token is not validated first: a
// malformed or already-expired string is blacklisted all the same, which
// keeps the operation idempotent and never leaks token state to the caller.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	ttl := s.Tokens.TTL
	if claims, err := s.Tokens.Parse(token); err == nil && claims.ExpiresAt != nil {
		if rem := time.Until(claims.ExpiresAt.Time); rem > 0 {
			ttl = rem
		}
	}
	return s.Blacklist.Revoke(ctx, token, ttl)
}

// CurrentUser resolves the caller's account from a bearer token: blacklist
// first, then signature/expiry, then the store lookup.
func (s *AccountService) CurrentUser(ctx context.Context, token string) (*AccountView, error) {
	revoked, err := s.Blacklist.IsRevoked(ctx, token)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	claims, err := s.Tokens.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	a, err := s.Repo.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	v := NewAccountView(a)
	return &v, nil
}

// ListAll returns every account as a sanitized view.
func (s *AccountService) ListAll(ctx context.Context) ([]AccountView, error) {
	accounts, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AccountView, 0, len(accounts))
	for i := range accounts {
		out = append(out, NewAccountView(&accounts[i]))
	}
	return out, nil
}

func (s *AccountService) enqueueWelcomeEmail(ctx context.Context, a *entity.Account) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{To: a.Email, Template: "welcome", Data: map[string]any{"Name": a.Name}}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", a.Email).Warn("enqueue welcome email failed")
	}
}

func (s *AccountService) indexAccount(ctx context.Context, a *entity.Account) {
	if s.ES == nil || s.ESAccountsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         a.ID,
		"email":      a.Email,
		"name":       a.Name,
		"membership": a.Membership,
		"created_at": a.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESAccountsIndex, DocumentID: a.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", a.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("account_id", a.ID).Warn("es index response error")
	}
}

// SearchAccounts performs a simple multi_match search on email and name.
func (s *AccountService) SearchAccounts(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESAccountsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESAccountsIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
