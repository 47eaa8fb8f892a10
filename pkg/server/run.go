package server

import (
	"Scribe/config"
	"Scribe/pkg/log"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 5 * time.Second

type AppProvider struct {
	Config *config.Config
	Engine *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

// 服务唯一ID，格式 ip:pid
var serverId = fmt.Sprintf("%s:%d", localIP(), os.Getpid())

func GetServerId() string {
	return serverId
}

// localIP 第一个非回环的 IPv4 地址
func localIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "127.0.0.1"
	}
	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
			return ipnet.IP.String()
		}
	}
	return "127.0.0.1"
}

// Run 启动 http 服务，收到退出信号后优雅关闭并释放数据库与 redis 连接
func Run(ctx *cli.Context, app *AppProvider) error {
	sigCtx, stop := signal.NotifyContext(ctx.Context, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)
	defer stop()

	serv := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.Config.Server.Http),
		Handler:           app.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.L.Info("server starting", zap.String("serverId", serverId),
		zap.Int("port", app.Config.Server.Http),
		zap.String("env", app.Config.App.Env),
	)

	eg, egCtx := errgroup.WithContext(sigCtx)
	eg.Go(func() error {
		if err := serv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		log.L.Info("server stopping", zap.String("serverId", serverId))

		timeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return serv.Shutdown(timeCtx)
	})

	err := eg.Wait()
	app.close()
	if err != nil {
		log.L.Error("server exited with error", zap.Error(err))
		return err
	}
	log.L.Info("server stopped", zap.String("serverId", serverId))
	return nil
}

func (app *AppProvider) close() {
	if app.DB != nil {
		if sqlDB, err := app.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if app.Redis != nil {
		_ = app.Redis.Close()
	}
}
