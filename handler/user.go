package handler

import (
	"Scribe/middleware"
	"Scribe/pkg/context"
	"Scribe/pkg/response"
	"Scribe/service"
	"Scribe/types"

	"github.com/gin-gonic/gin"
)

type User struct {
	Authorizer      *middleware.Authorizer
	UserService     service.IUserService
	MessageService  service.IMessageService
	DocumentService service.IDocumentService
}

func (u *User) RegisterRouter(r gin.IRouter) {
	user := r.Group("/v1/user")
	user.GET("/me", u.Authorizer.Required(), context.Wrap(u.Me))
	user.POST("/profile", u.Authorizer.Required(), context.Wrap(u.UpdateProfile))
	user.GET("/contacts", u.Authorizer.Required(), context.Wrap(u.Contacts))
	user.GET("/:id/documents", context.Wrap(u.Documents))
}

// Me 当前用户资料，每次从数据库读取
func (u *User) Me(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	user, err := u.UserService.Profile(c.Request.Context(), uid)
	if err != nil {
		return err
	}
	response.Success(c, service.ToProfile(user))
	return nil
}

func (u *User) UpdateProfile(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badParams(err)
	}

	user, err := u.UserService.UpdateProfile(c.Request.Context(), uid, &req)
	if err != nil {
		return err
	}
	response.Success(c, service.ToProfile(user))
	return nil
}

// Contacts 私信联系人
func (u *User) Contacts(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	contacts, err := u.MessageService.Contacts(c.Request.Context(), uid)
	if err != nil {
		return err
	}
	response.Success(c, contacts)
	return nil
}

// Documents 某个用户发布的文档
func (u *User) Documents(c *gin.Context) error {
	authorID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req types.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return badParams(err)
	}
	req.Normalize()

	resp, err := u.DocumentService.ListByAuthor(c.Request.Context(), authorID, req.Page, req.PageSize)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}
