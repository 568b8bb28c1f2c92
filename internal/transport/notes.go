package transport

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/amadeuio/zeronotes-backend/internal/db"
	"github.com/amadeuio/zeronotes-backend/internal/service"
)

type (
	NoteCreateReq struct {
		ID         string   `json:"id" validate:"required,uuid"`
		Title      *string  `json:"title" validate:"omitempty,max=500"`
		Content    *string  `json:"content"`
		ColorID    *string  `json:"colorId" validate:"omitempty,uuid"`
		IsPinned   *bool    `json:"isPinned"`
		IsArchived *bool    `json:"isArchived"`
		LabelIDs   []string `json:"labelIds" validate:"omitempty,dive,uuid"`
	}

	NoteUpdateReq struct {
		Title      *string `json:"title" validate:"omitempty,max=500"`
		Content    *string `json:"content"`
		ColorID    *string `json:"colorId" validate:"omitempty,uuid"`
		IsPinned   *bool   `json:"isPinned"`
		IsArchived *bool   `json:"isArchived"`
		IsTrashed  *bool   `json:"isTrashed"`
	}

	NoteReorderReq struct {
		NoteIDs []string `json:"noteIds" validate:"required,min=1,dive,uuid"`
	}

	NoteResp struct {
		ID         string    `json:"id"`
		Title      *string   `json:"title"`
		Content    *string   `json:"content"`
		ColorID    *string   `json:"colorId"`
		IsPinned   bool      `json:"isPinned"`
		IsArchived bool      `json:"isArchived"`
		IsTrashed  bool      `json:"isTrashed"`
		Order      int       `json:"order"`
		LabelIDs   []string  `json:"labelIds"`
		CreatedAt  time.Time `json:"createdAt"`
		UpdatedAt  time.Time `json:"updatedAt"`
	}

	NoteListResp struct {
		NotesByID  map[string]NoteResp `json:"notesById"`
		NotesOrder []string            `json:"notesOrder"`
	}

	IDResp struct {
		ID string `json:"id"`
	}
)

func (s *HTTPServer) NoteList(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	filter, err := labelFilter(c)
	if err != nil {
		return err
	}

	notes, err := s.notes.FindAll(user.ID, filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, buildNoteList(notes))
}

func (s *HTTPServer) NoteCreate(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := NoteCreateReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := s.notes.Create(user.ID, service.CreateNoteParams{
		ID:         req.ID,
		Title:      req.Title,
		Content:    req.Content,
		ColorID:    req.ColorID,
		IsPinned:   req.IsPinned,
		IsArchived: req.IsArchived,
		LabelIDs:   req.LabelIDs,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, IDResp{ID: id})
}

func (s *HTTPServer) NoteUpdate(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := NoteUpdateReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	if err := s.notes.Update(user.ID, id, service.UpdateNoteParams{
		Title:      req.Title,
		Content:    req.Content,
		ColorID:    req.ColorID,
		IsPinned:   req.IsPinned,
		IsArchived: req.IsArchived,
		IsTrashed:  req.IsTrashed,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, IDResp{ID: id})
}

func (s *HTTPServer) NoteDelete(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	if err := s.notes.Delete(user.ID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) NoteAddLabel(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}
	labelID, err := GetUUIDParam(c, "labelId")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	if err := s.notes.AddLabel(user.ID, id, labelID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) NoteRemoveLabel(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}
	labelID, err := GetUUIDParam(c, "labelId")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	if err := s.notes.RemoveLabel(user.ID, id, labelID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// NoteCreateLabel creates a label and attaches it to the note in one call.
func (s *HTTPServer) NoteCreateLabel(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := LabelCreateReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	labelID, err := s.labels.Create(user.ID, req.ID, req.Name)
	if err != nil {
		return err
	}

	if err := s.notes.AddLabel(user.ID, id, labelID); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, IDResp{ID: labelID})
}

// NoteReorder assigns each id its position in the submitted list. Clients
// are expected to send the full note id set.
func (s *HTTPServer) NoteReorder(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := NoteReorderReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	if err := s.notes.Reorder(user.ID, req.NoteIDs); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func buildNoteList(notes []db.Note) NoteListResp {
	resp := NoteListResp{
		NotesByID:  make(map[string]NoteResp, len(notes)),
		NotesOrder: make([]string, 0, len(notes)),
	}
	for i := range notes {
		note := noteToResp(&notes[i])
		resp.NotesByID[note.ID] = note
		resp.NotesOrder = append(resp.NotesOrder, note.ID)
	}
	return resp
}

func noteToResp(note *db.Note) NoteResp {
	labelIDs := make([]string, 0, len(note.Labels))
	for i := range note.Labels {
		labelIDs = append(labelIDs, note.Labels[i].ID)
	}

	return NoteResp{
		ID:         note.ID,
		Title:      note.Title,
		Content:    note.Content,
		ColorID:    note.ColorID,
		IsPinned:   note.IsPinned,
		IsArchived: note.IsArchived,
		IsTrashed:  note.IsTrashed,
		Order:      note.Order,
		LabelIDs:   labelIDs,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
	}
}

func labelFilter(c echo.Context) ([]string, error) {
	raw := c.QueryParam("labels")
	if raw == "" {
		return nil, nil
	}

	ids := strings.Split(raw, ",")
	for _, id := range ids {
		if err := ValidateUUID(id); err != nil {
			return nil, err
		}
	}
	return ids, nil
}
