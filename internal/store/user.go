package store

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/amadeuio/zeronotes-backend/internal/db"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(user *db.User) error {
	res := s.db.Create(user)
	if res.Error != nil {
		return res.Error
	}
	return nil
}

// ByEmail returns nil without an error when no user carries the email.
func (s *UserStore) ByEmail(email string) (*db.User, error) {
	user := db.User{}
	res := s.db.Where("email = ?", email).First(&user)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "finding user by email")
	}
	return &user, nil
}

func (s *UserStore) ByID(id string) (*db.User, error) {
	user := db.User{}
	res := s.db.Where("id = ?", id).First(&user)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "finding user by id")
	}
	return &user, nil
}
