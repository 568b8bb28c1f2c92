package service

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/amadeuio/zeronotes-backend/internal/apperr"
	"github.com/amadeuio/zeronotes-backend/internal/db"
	"github.com/amadeuio/zeronotes-backend/internal/store"
)

type (
	Notes struct {
		notes  *store.NoteStore
		labels *store.LabelStore
		assoc  *store.NoteLabelStore
		logger *zap.SugaredLogger
	}

	CreateNoteParams struct {
		ID         string
		Title      *string
		Content    *string
		ColorID    *string
		IsPinned   *bool
		IsArchived *bool
		LabelIDs   []string
	}

	UpdateNoteParams struct {
		Title      *string
		Content    *string
		ColorID    *string
		IsPinned   *bool
		IsArchived *bool
		IsTrashed  *bool
	}
)

func NewNotes(notes *store.NoteStore, labels *store.LabelStore, assoc *store.NoteLabelStore, logger *zap.SugaredLogger) *Notes {
	return &Notes{
		notes:  notes,
		labels: labels,
		assoc:  assoc,
		logger: logger,
	}
}

// FindAll returns the user's notes in display order, labels preloaded.
func (s *Notes) FindAll(userID string, filterLabelIDs []string) ([]db.Note, error) {
	return s.notes.FindAllWithLabels(userID, filterLabelIDs)
}

// Create inserts the note below the user's current minimum order so it sorts
// first, then attaches the given labels in one conflict-skipping batch. Every
// label id must exist and belong to the user.
func (s *Notes) Create(userID string, p CreateNoteParams) (string, error) {
	if err := s.requireLabels(userID, p.LabelIDs); err != nil {
		return "", err
	}

	order, err := s.notes.NextPrependOrder(userID)
	if err != nil {
		return "", err
	}

	note := db.Note{
		ID:      p.ID,
		Order:   order,
		Title:   p.Title,
		Content: p.Content,
		ColorID: p.ColorID,
		UserID:  userID,
	}
	if p.IsPinned != nil {
		note.IsPinned = *p.IsPinned
	}
	if p.IsArchived != nil {
		note.IsArchived = *p.IsArchived
	}

	if err := s.notes.Create(&note); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", apperr.Conflict("Note already exists")
		}
		return "", errors.Wrap(err, "creating note")
	}

	if err := s.assoc.AddBatch(note.ID, p.LabelIDs); err != nil {
		return "", err
	}

	return note.ID, nil
}

// Update writes only the fields present in p; updated_at is always refreshed.
func (s *Notes) Update(userID, id string, p UpdateNoteParams) error {
	fields := map[string]interface{}{}
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Content != nil {
		fields["content"] = *p.Content
	}
	if p.ColorID != nil {
		fields["color_id"] = *p.ColorID
	}
	if p.IsPinned != nil {
		fields["is_pinned"] = *p.IsPinned
	}
	if p.IsArchived != nil {
		fields["is_archived"] = *p.IsArchived
	}
	if p.IsTrashed != nil {
		fields["is_trashed"] = *p.IsTrashed
	}

	found, err := s.notes.Update(userID, id, fields)
	if err != nil {
		return err
	}
	if !found {
		return apperr.NotFound("Note")
	}
	return nil
}

func (s *Notes) Delete(userID, id string) error {
	found, err := s.notes.Delete(userID, id)
	if err != nil {
		return err
	}
	if !found {
		return apperr.NotFound("Note")
	}
	return nil
}

// AddLabel attaches a label to a note. The note must belong to the user and
// the label must exist under the same user; attaching twice is a no-op.
func (s *Notes) AddLabel(userID, noteID, labelID string) error {
	note, err := s.notes.ByID(userID, noteID)
	if err != nil {
		return err
	}
	if note == nil {
		return apperr.NotFound("Note")
	}

	if err := s.requireLabels(userID, []string{labelID}); err != nil {
		return err
	}

	return s.assoc.Add(noteID, labelID)
}

func (s *Notes) RemoveLabel(userID, noteID, labelID string) error {
	note, err := s.notes.ByID(userID, noteID)
	if err != nil {
		return err
	}
	if note == nil {
		return apperr.NotFound("Note")
	}

	_, err = s.assoc.Remove(noteID, labelID)
	return err
}

// Reorder assigns 0-based positions following noteIDs, atomically. Callers
// are expected to submit the user's complete note id set; omitted notes keep
// their old order value and foreign ids are ignored.
func (s *Notes) Reorder(userID string, noteIDs []string) error {
	return s.notes.ReorderAll(userID, noteIDs)
}

func (s *Notes) requireLabels(userID string, labelIDs []string) error {
	if len(labelIDs) == 0 {
		return nil
	}
	owned, err := s.labels.ByIDs(userID, labelIDs)
	if err != nil {
		return err
	}
	if len(owned) != len(uniqueStrings(labelIDs)) {
		return apperr.Validation("Label not found")
	}
	return nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
