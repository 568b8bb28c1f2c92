package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/amadeuio/zeronotes-backend/internal/apperr"
	"github.com/amadeuio/zeronotes-backend/internal/config"
	"github.com/amadeuio/zeronotes-backend/internal/db"
	"github.com/amadeuio/zeronotes-backend/internal/service"
	"github.com/amadeuio/zeronotes-backend/internal/token"
)

var Module = fx.Provide(
	NewHTTPServer,
)

type (
	CustomValidator struct {
		validator *validator.Validate
	}

	HTTPServer struct {
		e         *echo.Echo
		auth      *service.Auth
		notes     *service.Notes
		labels    *service.Labels
		bootstrap *service.Bootstrap
		tokens    *token.Manager
		logger    *zap.SugaredLogger
	}

	errorBody struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
)

func NewHTTPServer(
	lc fx.Lifecycle,
	cfg *config.Config,
	auth *service.Auth,
	notes *service.Notes,
	labels *service.Labels,
	bootstrap *service.Bootstrap,
	tokens *token.Manager,
	logger *zap.SugaredLogger,
) *HTTPServer {
	e := echo.New()
	e.HideBanner = true

	instance := HTTPServer{
		e:         e,
		auth:      auth,
		notes:     notes,
		labels:    labels,
		bootstrap: bootstrap,
		tokens:    tokens,
		logger:    logger,
	}

	api := e.Group("/api")

	authG := api.Group("/auth")
	authG.Use(instance.CensoredBodyLog)
	authG.POST("/register", instance.Register)
	authG.POST("/login", instance.Login)
	authG.GET("/me", instance.Me, instance.AuthMiddleware)

	api.GET("/bootstrap", instance.Bootstrap, instance.AuthMiddleware)

	noteG := api.Group("/notes", instance.AuthMiddleware)
	noteG.GET("", instance.NoteList)
	noteG.POST("", instance.NoteCreate)
	noteG.POST("/reorder", instance.NoteReorder)
	noteG.PUT("/:id", instance.NoteUpdate)
	noteG.DELETE("/:id", instance.NoteDelete)
	noteG.POST("/:id/labels", instance.NoteCreateLabel)
	noteG.POST("/:id/labels/:labelId", instance.NoteAddLabel)
	noteG.DELETE("/:id/labels/:labelId", instance.NoteRemoveLabel)

	labelG := api.Group("/labels", instance.AuthMiddleware)
	labelG.GET("", instance.LabelList)
	labelG.POST("", instance.LabelCreate)
	labelG.PUT("/:id", instance.LabelUpdate)
	labelG.DELETE("/:id", instance.LabelDelete)

	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = instance.ErrorHandler

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				listen := cfg.Host + ":" + cfg.Port
				if err := e.Start(listen); err != nil && err != http.ErrServerClosed {
					e.Logger.Fatal("shutting down the server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server.")
			return e.Shutdown(ctx)
		},
	})

	return &instance
}

// Echo exposes the underlying router, mainly for in-process tests.
func (s *HTTPServer) Echo() *echo.Echo {
	return s.e
}

// AuthMiddleware fails closed: no bearer header, an unverifiable token, or a
// token whose subject user no longer exists all reject before any handler
// runs. On success the resolved user rides the request context.
func (s *HTTPServer) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return apperr.Auth("No token provided")
		}

		userID, err := s.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return apperr.Auth("Invalid or expired token")
		}

		user, err := s.auth.UserByID(userID)
		if err != nil {
			return err
		}
		if user == nil {
			return apperr.Auth("User not found")
		}

		c.Set("user", user)
		return next(c)
	}
}

// CensoredBodyLog logs auth request bodies with the password field redacted.
func (s *HTTPServer) CensoredBodyLog(next echo.HandlerFunc) echo.HandlerFunc {
	return middleware.BodyDump(func(c echo.Context, reqBody, resBody []byte) {
		if len(reqBody) == 0 {
			return
		}
		s.logger.Infow("auth request",
			"method", c.Request().Method,
			"path", c.Path(),
			"status", c.Response().Status,
			"body", string(censorBody(reqBody)),
		)
	})(next)
}

func censorBody(b []byte) []byte {
	body := map[string]interface{}{}
	if err := json.Unmarshal(b, &body); err != nil {
		return b
	}
	if _, ok := body["password"]; ok {
		body["password"] = "$censored"
	}
	out, err := json.Marshal(body)
	if err != nil {
		return b
	}
	return out
}

// ErrorHandler is the single boundary translator: every error escaping a
// handler becomes a {error, code} body with the taxonomy's status code.
// Unexpected failures degrade to 500 with no internal detail leaked.
func (s *HTTPServer) ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		_ = c.JSON(appErr.Status, errorBody{Error: appErr.Message, Code: appErr.Code})
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code := apperr.CodeServer
		switch httpErr.Code {
		case http.StatusBadRequest:
			code = apperr.CodeValidation
		case http.StatusUnauthorized:
			code = apperr.CodeAuth
		case http.StatusNotFound:
			code = apperr.CodeNotFound
		}
		_ = c.JSON(httpErr.Code, errorBody{Error: fmt.Sprintf("%v", httpErr.Message), Code: code})
		return
	}

	s.logger.Errorw("unhandled error", "path", c.Path(), "err", err)
	_ = c.JSON(http.StatusInternalServerError, errorBody{Error: "Internal server error", Code: apperr.CodeServer})
}

////////

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return apperr.Validation(err.Error())
	}
	return nil
}

// BindAndValidate decodes a JSON body strictly (unrecognized keys are
// rejected, not ignored) and runs struct validation.
func BindAndValidate(c echo.Context, v interface{}) error {
	req := c.Request()
	if req.Body != nil && req.ContentLength != 0 {
		dec := json.NewDecoder(req.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return apperr.Validation(err.Error())
		}
	}
	if err := c.Validate(v); err != nil {
		return err
	}
	return nil
}

func GetUserFromContext(c echo.Context) (*db.User, error) {
	user, ok := c.Get("user").(*db.User)
	if !ok || user == nil {
		return nil, errors.New("no user found in context")
	}
	return user, nil
}

func GetUUIDParam(c echo.Context, name string) (string, error) {
	value := c.Param(name)
	if value == "" {
		return "", apperr.Validation("invalid path param '" + name + "'")
	}
	if err := ValidateUUID(value); err != nil {
		return "", err
	}
	return value, nil
}

func ValidateUUID(value string) error {
	if _, err := uuid.Parse(value); err != nil {
		return apperr.Validation("Invalid UUID format")
	}
	return nil
}
