package store

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/amadeuio/zeronotes-backend/internal/db"
)

type LabelStore struct {
	db *gorm.DB
}

func NewLabelStore(db *gorm.DB) *LabelStore {
	return &LabelStore{db: db}
}

func (s *LabelStore) FindAll(userID string) ([]db.Label, error) {
	labels := make([]db.Label, 0)
	res := s.db.Where("user_id = ?", userID).Find(&labels)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "finding labels")
	}
	return labels, nil
}

func (s *LabelStore) Create(label *db.Label) error {
	res := s.db.Create(label)
	if res.Error != nil {
		return res.Error
	}
	return nil
}

func (s *LabelStore) UpdateName(userID, id, name string) (bool, error) {
	res := s.db.Model(&db.Label{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("name", name)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "updating label")
	}
	return res.RowsAffected > 0, nil
}

// Delete removes the label; the storage layer's cascade rule cleans up the
// note_labels rows referencing it.
func (s *LabelStore) Delete(userID, id string) (bool, error) {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&db.Label{})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "deleting label")
	}
	return res.RowsAffected > 0, nil
}

// ByIDs returns the subset of ids that exist and belong to the user.
func (s *LabelStore) ByIDs(userID string, ids []string) ([]db.Label, error) {
	labels := make([]db.Label, 0)
	if len(ids) == 0 {
		return labels, nil
	}
	res := s.db.Where("user_id = ? AND id IN ?", userID, ids).Find(&labels)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "finding labels by ids")
	}
	return labels, nil
}

// ByID returns nil without an error when the label does not exist or belongs
// to another user.
func (s *LabelStore) ByID(userID, id string) (*db.Label, error) {
	label := db.Label{}
	res := s.db.Where("id = ? AND user_id = ?", id, userID).First(&label)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "finding label")
	}
	return &label, nil
}
