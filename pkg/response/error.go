package response

import (
	"Scribe/pkg/log"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BizError struct {
	Code int
	Msg  string
}

func (e *BizError) Error() string {
	return e.Msg
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

var (
	ErrUnauthorized = NewError(http.StatusUnauthorized, "请先登录")
	ErrForbidden    = NewError(http.StatusForbidden, "没有权限")
	ErrBusy         = NewError(http.StatusTooManyRequests, "操作太频繁,请稍后重试")
	ErrInternal     = NewError(http.StatusInternalServerError, "系统繁忙,请稍后重试")
)

// IsCode 判断 err 是否为指定 code 的业务错误
func IsCode(err error, code int) bool {
	var be *BizError
	return errors.As(err, &be) && be.Code == code
}

func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.L.Error("panic recovered", zap.Any("panic", r), zap.String("path", c.Request.URL.Path))
				c.JSON(http.StatusInternalServerError, Response{
					Code: 500,
					Msg:  "系统异常",
				})
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last().Err

			var be *BizError
			if errors.As(err, &be) {
				Fail(c, be.Code, be.Msg)
			} else {
				Fail(c, 500, ErrInternal.Msg)
			}
			c.Abort()
		}
	}
}

func Abort(c *gin.Context, httpStatus int, msg string) {
	c.AbortWithStatusJSON(httpStatus, Response{
		Code: httpStatus,
		Msg:  msg,
		Data: nil,
	})
}
