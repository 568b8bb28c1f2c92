package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type BootstrapResp struct {
	NotesByID  map[string]NoteResp  `json:"notesById"`
	NotesOrder []string             `json:"notesOrder"`
	LabelsByID map[string]LabelResp `json:"labelsById"`
}

// Bootstrap returns the combined notes+labels snapshot for initial client
// hydration.
func (s *HTTPServer) Bootstrap(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	result, err := s.bootstrap.FindAll(user.ID)
	if err != nil {
		return err
	}

	notes := buildNoteList(result.Notes)
	return c.JSON(http.StatusOK, BootstrapResp{
		NotesByID:  notes.NotesByID,
		NotesOrder: notes.NotesOrder,
		LabelsByID: buildLabelMap(result.Labels),
	})
}
