package handler

import (
	"Scribe/middleware"
	"Scribe/pkg/context"
	"Scribe/pkg/response"
	"Scribe/service"
	"Scribe/types"

	"github.com/gin-gonic/gin"
)

type Auth struct {
	Authorizer  *middleware.Authorizer
	UserService service.IUserService
}

func (u *Auth) RegisterRouter(r gin.IRouter) {
	auth := r.Group("/v1/auth")
	auth.POST("/register", context.Wrap(u.Register))
	auth.POST("/login", context.Wrap(u.Login))
	auth.POST("/logout", u.Authorizer.Required(), context.Wrap(u.Logout))
}

// Register 注册后直接登录
func (u *Auth) Register(c *gin.Context) error {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badParams(err)
	}

	ctx := c.Request.Context()
	if _, err := u.UserService.Register(ctx, &service.UserRegisterOpt{
		Nickname: req.Nickname,
		Password: req.Password,
	}); err != nil {
		return err
	}

	resp, err := u.UserService.Login(ctx, req.Nickname, req.Password)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (u *Auth) Login(c *gin.Context) error {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badParams(err)
	}

	resp, err := u.UserService.Login(c.Request.Context(), req.Nickname, req.Password)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (u *Auth) Logout(c *gin.Context) error {
	if err := u.UserService.Logout(c.Request.Context(), context.GetClaims(c)); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}
