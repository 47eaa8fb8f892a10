package main

import (
	"Scribe/config"
	"Scribe/dao"
	"Scribe/pkg/database"
	"Scribe/pkg/log"
	"Scribe/pkg/server"
	"Scribe/service"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	// .env 不存在时忽略
	_ = godotenv.Load()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	path := fmt.Sprintf("configs/config.%s.yaml", env)

	cliApp := &cli.App{
		Name:  "api-server",
		Usage: "Markdown document sharing service",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: path, Usage: "config file"},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					cfg := config.New(ctx.String("config"))
					log.SetDebug(cfg.Debug())
					appProvider, err := InitServer(cfg)
					if err != nil {
						return err
					}
					return server.Run(ctx, appProvider)
				},
			},
			{
				Name:  "migrate",
				Usage: "create or update tables",
				Action: func(ctx *cli.Context) error {
					cfg := config.New(ctx.String("config"))
					db, err := database.NewDB(cfg)
					if err != nil {
						return err
					}
					if err := dao.AutoMigrate(db); err != nil {
						return err
					}
					log.L.Info("migrate done", zap.String("driver", cfg.Database.Driver))
					return nil
				},
			},
			{
				Name:  "create-admin",
				Usage: "create an administrator or promote an existing user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "nickname", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: func(ctx *cli.Context) error {
					cfg := config.New(ctx.String("config"))
					db, err := database.NewDB(cfg)
					if err != nil {
						return err
					}
					users := &service.UserService{Config: cfg, UsersRepo: dao.NewUsers(db)}
					user, err := users.EnsureAdmin(ctx.Context, ctx.String("nickname"), ctx.String("password"))
					if err != nil {
						return err
					}
					fmt.Printf("admin %s (%d) ready\n", user.Nickname, user.ID)
					return nil
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("failed to start server", zap.Error(err))
	}
}
