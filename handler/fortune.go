package handler

import (
	"Scribe/middleware"
	"Scribe/pkg/context"
	"Scribe/pkg/response"
	"Scribe/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Fortune struct {
	Authorizer     *middleware.Authorizer
	FortuneService service.IFortuneService
}

func (f *Fortune) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/fortune", f.Authorizer.Required())
	g.GET("/today", context.Wrap(f.Today))
	g.POST("/draw", context.Wrap(f.Draw))
	g.GET("/history", context.Wrap(f.History))
}

// Today 今日运势状态
func (f *Fortune) Today(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	status, err := f.FortuneService.Status(c.Request.Context(), uid)
	if err != nil {
		return err
	}
	response.Success(c, status)
	return nil
}

func (f *Fortune) Draw(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	item, err := f.FortuneService.Draw(c.Request.Context(), uid)
	if err != nil {
		return err
	}
	response.Success(c, item)
	return nil
}

func (f *Fortune) History(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := f.FortuneService.History(c.Request.Context(), uid, limit)
	if err != nil {
		return err
	}
	response.Success(c, items)
	return nil
}
