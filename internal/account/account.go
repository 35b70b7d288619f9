// Package account registers users and checks their passwords against the
// hashes kept in the user store.
package account

import (
	"context"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/emrgen/wiki/internal/store"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"
)

var (
	ErrUsernameTaken = errors.New("username is taken")
	ErrUserNotFound  = store.ErrUserNotFound
	ErrWrongPassword = errors.New("wrong password")
	ErrInvalidInput  = errors.New("username and password are required")
)

type Service struct {
	users  store.UserStore
	secret string
}

func NewService(users store.UserStore, siteSecret string) *Service {
	return &Service{
		users:  users,
		secret: siteSecret,
	}
}

// HashPassword returns the hex BLAKE2b-512 digest of the lowercased username,
// the site secret and the password.
func (s *Service) HashPassword(username, password string) string {
	sum := blake2b.Sum512([]byte(strings.ToLower(username) + s.secret + password))
	return hex.EncodeToString(sum[:])
}

func (s *Service) SignUp(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrInvalidInput
	}

	err := s.users.PutPasswordHash(ctx, username, s.HashPassword(username, password), 0)
	if errors.Is(err, store.ErrUserExists) {
		return fmt.Errorf("%w: %s", ErrUsernameTaken, username)
	}
	if err != nil {
		return err
	}

	logrus.Infof("user %s signed up", strings.ToLower(username))
	return nil
}

func (s *Service) SignIn(ctx context.Context, username, password string) error {
	stored, err := s.users.GetPasswordHash(ctx, username)
	if err != nil {
		return err
	}

	hash := s.HashPassword(username, password)
	if subtle.ConstantTimeCompare([]byte(stored), []byte(hash)) != 1 {
		return ErrWrongPassword
	}

	return nil
}

// Exists reports whether username is registered.
func (s *Service) Exists(ctx context.Context, username string) (bool, error) {
	users, err := s.users.ListUsernames(ctx)
	if err != nil {
		return false, err
	}

	return users.Contains(strings.ToLower(username)), nil
}
