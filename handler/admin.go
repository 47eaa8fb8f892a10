package handler

import (
	"Scribe/middleware"
	"Scribe/pkg/context"
	"Scribe/pkg/response"
	"Scribe/service"
	"Scribe/types"

	"github.com/gin-gonic/gin"
)

// Admin 后台接口，全部经过 AdminOnly
type Admin struct {
	Authorizer   *middleware.Authorizer
	AdminService service.IAdminService
}

func (a *Admin) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/admin", a.Authorizer.Required(), a.Authorizer.AdminOnly())
	g.GET("/users", context.Wrap(a.Users))
	g.GET("/documents", context.Wrap(a.Documents))
	g.GET("/stats", context.Wrap(a.Stats))
	g.POST("/users/:id/admin", context.Wrap(a.SetAdmin))
	g.POST("/users/:id/delete", context.Wrap(a.DeleteUser))
	g.POST("/documents/:id/delete", context.Wrap(a.DeleteDocument))
}

func (a *Admin) Users(c *gin.Context) error {
	var req types.AdminListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return badParams(err)
	}
	req.Normalize()

	resp, err := a.AdminService.ListUsers(c.Request.Context(), req.Query, req.Page, req.PageSize)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (a *Admin) Documents(c *gin.Context) error {
	var req types.AdminListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return badParams(err)
	}
	req.Normalize()

	resp, err := a.AdminService.ListDocuments(c.Request.Context(), req.Query, req.Page, req.PageSize)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (a *Admin) Stats(c *gin.Context) error {
	stats, err := a.AdminService.Stats(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, stats)
	return nil
}

// SetAdmin 设置 / 取消管理员
func (a *Admin) SetAdmin(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	target, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req types.SetAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badParams(err)
	}

	profile, err := a.AdminService.SetAdmin(c.Request.Context(), uid, target, req.IsAdmin)
	if err != nil {
		return err
	}
	response.Success(c, profile)
	return nil
}

// DeleteUser 删除用户及其全部数据
func (a *Admin) DeleteUser(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	target, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := a.AdminService.DeleteUser(c.Request.Context(), uid, target); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

func (a *Admin) DeleteDocument(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := a.AdminService.DeleteDocument(c.Request.Context(), id); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}
