package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amadeuio/zeronotes-backend/internal/db"
)

type (
	LabelCreateReq struct {
		ID   string `json:"id" validate:"required,uuid"`
		Name string `json:"name" validate:"required,min=1,max=100"`
	}

	LabelUpdateReq struct {
		Name string `json:"name" validate:"required,min=1,max=100"`
	}

	LabelResp struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
)

// LabelList presents labels keyed by id; ordering is irrelevant to callers.
func (s *HTTPServer) LabelList(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	labels, err := s.labels.FindAll(user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, buildLabelMap(labels))
}

func (s *HTTPServer) LabelCreate(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := LabelCreateReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := s.labels.Create(user.ID, req.ID, req.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, IDResp{ID: id})
}

func (s *HTTPServer) LabelUpdate(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := LabelUpdateReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := s.labels.Update(user.ID, id, req.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, IDResp{ID: updated})
}

func (s *HTTPServer) LabelDelete(c echo.Context) error {
	id, err := GetUUIDParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	if err := s.labels.Delete(user.ID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func buildLabelMap(labels []db.Label) map[string]LabelResp {
	byID := make(map[string]LabelResp, len(labels))
	for i := range labels {
		byID[labels[i].ID] = LabelResp{
			ID:   labels[i].ID,
			Name: labels[i].Name,
		}
	}
	return byID
}
