package store

import (
	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const conflictSkip = "ON CONFLICT (note_id, label_id) DO NOTHING"

// NoteLabelStore manages the note_labels join table directly. Adds are
// idempotent: an existing pair is skipped, not an error.
type NoteLabelStore struct {
	db *gorm.DB
}

func NewNoteLabelStore(db *gorm.DB) *NoteLabelStore {
	return &NoteLabelStore{db: db}
}

func (s *NoteLabelStore) Add(noteID, labelID string) error {
	sql, args, err := squirrel.
		Insert("note_labels").
		Columns("note_id", "label_id").
		Values(noteID, labelID).
		Suffix(conflictSkip).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "build sql")
	}

	res := s.db.Exec(sql, args...)
	if res.Error != nil {
		return errors.Wrap(res.Error, "inserting association")
	}
	return nil
}

// AddBatch inserts every (noteID, labelID) pair in a single statement,
// skipping pairs that already exist. An empty labelIDs is a no-op.
func (s *NoteLabelStore) AddBatch(noteID string, labelIDs []string) error {
	if len(labelIDs) == 0 {
		return nil
	}

	q := squirrel.Insert("note_labels").Columns("note_id", "label_id")
	for _, labelID := range labelIDs {
		q = q.Values(noteID, labelID)
	}

	sql, args, err := q.Suffix(conflictSkip).ToSql()
	if err != nil {
		return errors.Wrap(err, "build sql")
	}

	res := s.db.Exec(sql, args...)
	if res.Error != nil {
		return errors.Wrap(res.Error, "inserting associations")
	}
	return nil
}

func (s *NoteLabelStore) Remove(noteID, labelID string) (bool, error) {
	sql, args, err := squirrel.
		Delete("note_labels").
		Where(squirrel.Eq{
			"note_id":  noteID,
			"label_id": labelID,
		}).
		ToSql()
	if err != nil {
		return false, errors.Wrap(err, "build sql")
	}

	res := s.db.Exec(sql, args...)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "deleting association")
	}
	return res.RowsAffected > 0, nil
}
