// Package services contains the identity service's business logic: account
// creation, sign-in with session tokens, sign-out through a token deny list,
// and account deletion.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/caresupport/internal/common"
	"github.com/dmitrijs2005/caresupport/internal/cryptox"
	"github.com/dmitrijs2005/caresupport/internal/idp/auth"
	"github.com/dmitrijs2005/caresupport/internal/idp/config"
	"github.com/dmitrijs2005/caresupport/internal/idp/models"
	"github.com/dmitrijs2005/caresupport/internal/idp/repositories/repomanager"
	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidEmail = errors.New("invalid email")
	ErrWeakPassword = errors.New("weak password")
)

// dummySalt feeds the key derivation run for unknown emails.
var dummySalt = make([]byte, cryptox.SaltSize)

// Session is a signed-in account with its session token.
type Session struct {
	Account *models.Account
	Token   string
}

type AccountService struct {
	repomanager       repomanager.RepositoryManager
	validate          *validator.Validate
	jwtSecret         []byte
	tokenValidity     time.Duration
	minPasswordLength int
}

func NewAccountService(m repomanager.RepositoryManager, cfg *config.Config) *AccountService {
	return &AccountService{
		repomanager:       m,
		validate:          validator.New(),
		jwtSecret:         []byte(cfg.SecretKey),
		tokenValidity:     cfg.TokenValidityDuration,
		minPasswordLength: cfg.MinPasswordLength,
	}
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create registers an account and signs it in.
func (s *AccountService) Create(ctx context.Context, email string, password []byte, displayName string) (*Session, error) {
	email = normaliseEmail(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(password) < s.minPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, salt, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	account := &models.Account{
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: hash,
		Salt:         salt,
	}
	created, err := s.repomanager.Repositories().Accounts.Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}
	return s.newSession(created)
}

// SignIn verifies the credentials. Unknown emails and wrong passwords both
// yield common.ErrUnauthorized.
func (s *AccountService) SignIn(ctx context.Context, email string, password []byte) (*Session, error) {
	account, err := s.repomanager.Repositories().Accounts.GetByEmail(ctx, normaliseEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// keep timing close to the wrong-password path
			cryptox.DeriveKey(password, dummySalt)
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}
	if !cryptox.VerifyPassword(password, account.Salt, account.PasswordHash) {
		return nil, common.ErrUnauthorized
	}
	return s.newSession(account)
}

// Authenticate verifies a session token and rejects revoked ones.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	revoked, err := s.repomanager.Repositories().RevokedTokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, common.ErrInternal
	}
	if revoked {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// SignOut revokes the session token described by claims.
func (s *AccountService) SignOut(ctx context.Context, claims *auth.Claims) error {
	if err := s.repomanager.Repositories().RevokedTokens.Revoke(ctx, revocation(claims)); err != nil {
		return common.ErrInternal
	}
	return nil
}

// Delete removes the signed-in account and revokes its token. userID, when
// given, must name the token's account.
func (s *AccountService) Delete(ctx context.Context, claims *auth.Claims, userID string) error {
	if userID != "" && userID != claims.UserID {
		return common.ErrUnauthorized
	}
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		if err := repos.Accounts.Delete(ctx, claims.UserID); err != nil {
			return err
		}
		return repos.RevokedTokens.Revoke(ctx, revocation(claims))
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrUnauthorized
		}
		return common.ErrInternal
	}
	return nil
}

// PurgeRevoked drops deny-list entries for tokens that have expired.
func (s *AccountService) PurgeRevoked(ctx context.Context) (int64, error) {
	return s.repomanager.Repositories().RevokedTokens.DeleteExpired(ctx, time.Now())
}

func (s *AccountService) Ping(ctx context.Context) error {
	return s.repomanager.Ping(ctx)
}

func (s *AccountService) newSession(account *models.Account) (*Session, error) {
	token, err := auth.GenerateToken(account.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, common.ErrInternal
	}
	return &Session{Account: account, Token: token}, nil
}

func revocation(claims *auth.Claims) models.RevokedToken {
	t := models.RevokedToken{TokenID: claims.ID, UserID: claims.UserID}
	if claims.ExpiresAt != nil {
		t.ExpiresAt = claims.ExpiresAt.Time
	}
	return t
}
