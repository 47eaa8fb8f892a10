//go:build wireinject
// +build wireinject

package main

import (
	"Scribe/config"
	"Scribe/dao"
	"Scribe/dao/cache"
	"Scribe/handler"
	"Scribe/middleware"
	"Scribe/pkg/client"
	"Scribe/pkg/database"
	"Scribe/pkg/markdown"
	"Scribe/pkg/server"
	"Scribe/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) (*server.AppProvider, error) {
	wire.Build(
		client.NewRedisClient,
		database.NewDB,
		markdown.New,
		config.ProvideStorageConfig,
		config.ProvideFortuneConfig,
		server.NewGinEngine,
		cache.ProviderSet,
		dao.ProviderSet,
		service.ProviderSet,

		wire.Struct(new(middleware.Authorizer), "*"),
		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.User), "*"),
		wire.Struct(new(handler.Document), "*"),
		wire.Struct(new(handler.Comment), "*"),
		wire.Struct(new(handler.Message), "*"),
		wire.Struct(new(handler.Fortune), "*"),
		wire.Struct(new(handler.Admin), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),
	)
	return nil, nil
}
