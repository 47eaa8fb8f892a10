package middleware

import (
	"Scribe/config"
	"Scribe/dao"
	"Scribe/dao/cache"
	"Scribe/pkg/context"
	"Scribe/pkg/jwt"
	"Scribe/pkg/log"
	"Scribe/pkg/response"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Authorizer 校验访问令牌，管理员权限每次从数据库读取
type Authorizer struct {
	Config *config.Config
	Tokens *cache.TokenStorage
	Users  *dao.Users
}

// Required 必须登录
func (a *Authorizer) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, be := a.authenticate(c)
		if be != nil {
			response.Abort(c, be.Code, be.Msg)
			return
		}
		a.bind(c, claims)
		c.Next()
	}
}

// Optional 有令牌时解析，无令牌或令牌无效按游客处理
func (a *Authorizer) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if claims, be := a.authenticate(c); be == nil {
				a.bind(c, claims)
			}
		}
		c.Next()
	}
}

// AdminOnly 需要挂在 Required 之后
func (a *Authorizer) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := context.MustUserID(c)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, response.ErrUnauthorized.Msg)
			return
		}

		user, err := a.Users.FindById(c.Request.Context(), uid)
		if err != nil {
			if dao.IsNotFound(err) {
				response.Abort(c, http.StatusUnauthorized, response.ErrUnauthorized.Msg)
				return
			}
			log.L.Error("load admin failed", zap.Int64("user_id", uid), zap.Error(err))
			response.Abort(c, http.StatusInternalServerError, response.ErrInternal.Msg)
			return
		}
		if !user.IsAdmin {
			response.Abort(c, http.StatusForbidden, response.ErrForbidden.Msg)
			return
		}
		c.Next()
	}
}

var errTokenExpired = response.NewError(http.StatusUnauthorized, "登录已失效，请重新登录")

func (a *Authorizer) authenticate(c *gin.Context) (*jwt.Claims, *response.BizError) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, response.NewError(http.StatusUnauthorized, "缺少 Authorization")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, response.NewError(http.StatusUnauthorized, "Authorization 格式错误")
	}

	claims, err := jwt.ParseToken([]byte(a.Config.Jwt.Secret), jwt.TypeAccess, parts[1])
	if err != nil {
		return nil, errTokenExpired
	}

	ctx := c.Request.Context()
	revoked, err := a.Tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		log.L.Error("check revoked token failed", zap.Error(err))
		return nil, response.ErrInternal
	}
	if revoked {
		return nil, errTokenExpired
	}

	// 用户被删除后令牌随之失效
	exist, err := a.Users.IsExist(ctx, "id = ?", claims.UserID)
	if err != nil {
		log.L.Error("check user failed", zap.Int64("user_id", claims.UserID), zap.Error(err))
		return nil, response.ErrInternal
	}
	if !exist {
		return nil, response.NewError(http.StatusUnauthorized, "用户不存在")
	}
	return claims, nil
}

func (a *Authorizer) bind(c *gin.Context, claims *jwt.Claims) {
	c.Set(context.CtxUserID, claims.UserID)
	c.Set(context.CtxClaims, claims)
}
