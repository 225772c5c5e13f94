// Package services contains server-side business logic. This file implements
// UserService: credential registration and verification plus token issuance.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avlasov/fileshare/internal/common"
	"github.com/avlasov/fileshare/internal/server/auth"
	"github.com/avlasov/fileshare/internal/server/models"
	"github.com/avlasov/fileshare/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// UserService provides authentication-related operations:
// - Register: create an account and mint its first token
// - Login: verify credentials and mint a token
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenManager

	// dummyHash is compared against when the username does not exist, so
	// unknown-username and wrong-password logins take the same time.
	dummyHash string
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenManager) (*UserService, error) {
	dummy, err := auth.HashPassword(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("error preparing dummy hash: %w", err)
	}
	return &UserService{db: db, repomanager: m, tokens: tokens, dummyHash: dummy}, nil
}

// Register creates a new account and returns a token for it. A taken
// username yields common.ErrorAlreadyExists, including when the duplicate
// arrives concurrently.
func (s *UserService) Register(ctx context.Context, userName, password string) (string, error) {
	if userName == "" || password == "" {
		return "", common.ErrorValidation
	}

	digest, err := auth.HashPassword(password)
	if err != nil {
		return "", common.ErrorInternal
	}

	user := &models.User{ID: uuid.NewString(), UserName: userName, PasswordHash: digest}

	repo := s.repomanager.Users(s.db)
	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrorAlreadyExists
		}
		return "", storeError(err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// Login verifies the credentials and returns a fresh token. Unknown
// usernames and wrong passwords are both reported as
// common.ErrorUnauthorized and are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, userName, password string) (string, error) {
	if userName == "" || password == "" {
		return "", common.ErrorValidation
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn the same bcrypt work as a real comparison
			auth.CheckPassword(password, s.dummyHash)
			return "", common.ErrorUnauthorized
		}
		return "", storeError(err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// storeError classifies repository failures: known sentinels pass through,
// anything else means the durable store itself failed.
func storeError(err error) error {
	if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorAlreadyExists) {
		return err
	}
	return fmt.Errorf("%w: %v", common.ErrorStoreUnavailable, err)
}
