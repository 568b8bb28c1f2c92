package store

import (
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/amadeuio/zeronotes-backend/internal/db"
)

type NoteStore struct {
	db *gorm.DB
}

func NewNoteStore(db *gorm.DB) *NoteStore {
	return &NoteStore{db: db}
}

// FindAllWithLabels returns the user's notes with their labels preloaded,
// sorted by the order column ascending, newest-created first among ties.
// A non-empty labelIDs narrows the result to notes carrying at least one of
// the given labels.
func (s *NoteStore) FindAllWithLabels(userID string, labelIDs []string) ([]db.Note, error) {
	q := s.db.Where("user_id = ?", userID)

	if len(labelIDs) != 0 {
		sql, args, err := squirrel.
			Select("DISTINCT n.id").From("notes n").
			LeftJoin("note_labels nl ON n.id = nl.note_id").
			Where(squirrel.Eq{
				"n.user_id":   userID,
				"nl.label_id": labelIDs,
			}).
			ToSql()
		if err != nil {
			return nil, errors.Wrap(err, "build sql")
		}

		matching := make([]string, 0)
		res := s.db.Raw(sql, args...).Scan(&matching)
		if res.Error != nil {
			return nil, errors.Wrap(res.Error, "scan matching ids")
		}
		if len(matching) == 0 {
			return []db.Note{}, nil
		}
		q = q.Where("id IN ?", matching)
	}

	notes := make([]db.Note, 0)
	res := q.Preload("Labels").Order(`"order" ASC, created_at DESC`).Find(&notes)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "finding notes")
	}
	return notes, nil
}

// NextPrependOrder computes the order value for a note being prepended: one
// below the user's current minimum, or -1 when the user has no notes yet.
func (s *NoteStore) NextPrependOrder(userID string) (int, error) {
	sql, args, err := squirrel.
		Select(`MIN("order") AS min_order`).From("notes").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "build sql")
	}

	var row struct {
		MinOrder *int
	}
	res := s.db.Raw(sql, args...).Scan(&row)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "scan min order")
	}

	if row.MinOrder == nil {
		return -1, nil
	}
	return *row.MinOrder - 1, nil
}

func (s *NoteStore) Create(note *db.Note) error {
	res := s.db.Create(note)
	if res.Error != nil {
		return res.Error
	}
	return nil
}

// Update writes only the given columns, always refreshing updated_at. The
// returned bool reports whether a row matched (id, userID) at all.
func (s *NoteStore) Update(userID, id string, fields map[string]interface{}) (bool, error) {
	if len(fields) == 0 {
		fields = map[string]interface{}{"updated_at": time.Now()}
	}

	res := s.db.Model(&db.Note{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "updating note")
	}
	return res.RowsAffected > 0, nil
}

func (s *NoteStore) Delete(userID, id string) (bool, error) {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&db.Note{})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "deleting note")
	}
	return res.RowsAffected > 0, nil
}

// ByID returns nil without an error when the note does not exist or belongs
// to another user.
func (s *NoteStore) ByID(userID, id string) (*db.Note, error) {
	note := db.Note{}
	res := s.db.Where("id = ? AND user_id = ?", id, userID).First(&note)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "finding note")
	}
	return &note, nil
}

// ReorderAll assigns each id its position index as the new order value, in
// one transaction. Ids not owned by the user fall through the user_id guard
// untouched; ids omitted from the list keep their previous order value.
func (s *NoteStore) ReorderAll(userID string, noteIDs []string) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "begin reorder")
	}

	for position, id := range noteIDs {
		res := tx.Model(&db.Note{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("order", position)
		if res.Error != nil {
			tx.Rollback()
			return errors.Wrapf(res.Error, "assigning position %d", position)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "commit reorder")
	}
	return nil
}
