package main

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/amadeuio/zeronotes-backend/internal/config"
	"github.com/amadeuio/zeronotes-backend/internal/db"
	"github.com/amadeuio/zeronotes-backend/internal/service"
	"github.com/amadeuio/zeronotes-backend/internal/store"
	"github.com/amadeuio/zeronotes-backend/internal/token"
	"github.com/amadeuio/zeronotes-backend/internal/transport"
)

func main() {
	app := fx.New(
		config.Module,
		db.Module,
		token.Module,
		store.Module,
		service.Module,
		transport.Module,
		fx.Provide(newLogger),
		fx.Invoke(func(*transport.HTTPServer) {}),
	)

	app.Run()
}

func newLogger() (*zap.SugaredLogger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
