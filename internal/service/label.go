package service

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/amadeuio/zeronotes-backend/internal/apperr"
	"github.com/amadeuio/zeronotes-backend/internal/db"
	"github.com/amadeuio/zeronotes-backend/internal/store"
)

type Labels struct {
	labels *store.LabelStore
	logger *zap.SugaredLogger
}

func NewLabels(labels *store.LabelStore, logger *zap.SugaredLogger) *Labels {
	return &Labels{
		labels: labels,
		logger: logger,
	}
}

func (s *Labels) FindAll(userID string) ([]db.Label, error) {
	return s.labels.FindAll(userID)
}

func (s *Labels) Create(userID, id, name string) (string, error) {
	label := db.Label{
		ID:     id,
		Name:   name,
		UserID: userID,
	}
	if err := s.labels.Create(&label); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", apperr.Conflict("Label already exists")
		}
		return "", errors.Wrap(err, "creating label")
	}
	return label.ID, nil
}

func (s *Labels) Update(userID, id, name string) (string, error) {
	found, err := s.labels.UpdateName(userID, id, name)
	if err != nil {
		return "", err
	}
	if !found {
		return "", apperr.NotFound("Label")
	}
	return id, nil
}

// Delete removes the label and, through the storage cascade, every
// association pointing at it. The notes themselves are untouched.
func (s *Labels) Delete(userID, id string) error {
	found, err := s.labels.Delete(userID, id)
	if err != nil {
		return err
	}
	if !found {
		return apperr.NotFound("Label")
	}
	return nil
}
