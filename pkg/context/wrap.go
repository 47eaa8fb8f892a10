package context

import (
	"Scribe/pkg/jwt"
	"Scribe/pkg/log"
	"Scribe/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxUserID = "user_id"
	CtxClaims = "claims"
)

type HandlerFunc func(*gin.Context) error

func Wrap(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// 如果已经写过响应，直接返回
			if c.Writer.Written() {
				return
			}
			// 业务错误
			var be *response.BizError
			if errors.As(err, &be) {
				response.Fail(c, be.Code, be.Msg)
				return
			}
			// 其余错误不向客户端暴露细节
			log.L.Error("handler error", zap.String("path", c.FullPath()), zap.Error(err))
			c.JSON(http.StatusInternalServerError, response.Response{
				Code: 500,
				Msg:  response.ErrInternal.Msg,
			})
		}
	}
}

func GetUserID(c *gin.Context) (int64, error) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, errors.New("user_id 不存在")
	}

	uid, ok := v.(int64)
	if !ok {
		return 0, errors.New("user_id 类型错误")
	}

	return uid, nil
}

// MustUserID 取当前登录用户，未登录返回 401 业务错误
func MustUserID(c *gin.Context) (int64, error) {
	uid, err := GetUserID(c)
	if err != nil || uid == 0 {
		return 0, response.ErrUnauthorized
	}
	return uid, nil
}

// GetClaims 当前请求的令牌，未登录时为 nil
func GetClaims(c *gin.Context) *jwt.Claims {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}
