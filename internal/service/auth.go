package service

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/amadeuio/zeronotes-backend/internal/apperr"
	"github.com/amadeuio/zeronotes-backend/internal/db"
	"github.com/amadeuio/zeronotes-backend/internal/store"
	"github.com/amadeuio/zeronotes-backend/internal/token"
)

type Auth struct {
	users  *store.UserStore
	tokens *token.Manager
	logger *zap.SugaredLogger
}

func NewAuth(users *store.UserStore, tokens *token.Manager, logger *zap.SugaredLogger) *Auth {
	return &Auth{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

func (s *Auth) Register(email, pass string) (*db.User, string, error) {
	existing, err := s.users.ByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", apperr.Conflict("User already exists")
	}

	hash, err := s.bcryptGen(pass)
	if err != nil {
		return nil, "", errors.Wrap(err, "bcryptGen")
	}

	user := db.User{
		ID:       uuid.New().String(),
		Email:    email,
		Password: hash,
	}
	if err := s.users.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperr.Conflict("User already exists")
		}
		return nil, "", errors.Wrap(err, "creating user")
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", errors.Wrap(err, "issuing token")
	}

	return &user, tok, nil
}

// Login fails identically for an unknown email and a wrong password so the
// response never reveals which of the two was off.
func (s *Auth) Login(email, pass string) (*db.User, string, error) {
	user, err := s.users.ByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", apperr.Auth("Invalid credentials")
	}

	if err := s.bcryptCheck(user.Password, pass); err != nil {
		return nil, "", apperr.Auth("Invalid credentials")
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", errors.Wrap(err, "issuing token")
	}

	return user, tok, nil
}

func (s *Auth) UserByID(id string) (*db.User, error) {
	return s.users.ByID(id)
}

func (s *Auth) bcryptGen(pass string) (string, error) {
	passwordHashB, err := bcrypt.GenerateFromPassword([]byte(pass), 14)
	if err != nil {
		return "", errors.Wrap(err, "generate password hash")
	}
	return string(passwordHashB), nil
}

func (s *Auth) bcryptCheck(hash, pass string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pass))
}
