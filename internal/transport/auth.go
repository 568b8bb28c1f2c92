package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amadeuio/zeronotes-backend/internal/db"
)

type (
	RegisterReq struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8,max=100"`
	}

	LoginReq struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	UserResp struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}

	AuthResp struct {
		User  UserResp `json:"user"`
		Token string   `json:"token"`
	}
)

func (s *HTTPServer) Register(c echo.Context) error {
	req := RegisterReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	user, tok, err := s.auth.Register(req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, AuthResp{
		User:  userToResp(user),
		Token: tok,
	})
}

func (s *HTTPServer) Login(c echo.Context) error {
	req := LoginReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	user, tok, err := s.auth.Login(req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, AuthResp{
		User:  userToResp(user),
		Token: tok,
	})
}

func (s *HTTPServer) Me(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userToResp(user))
}

func userToResp(user *db.User) UserResp {
	return UserResp{
		ID:    user.ID,
		Email: user.Email,
	}
}
