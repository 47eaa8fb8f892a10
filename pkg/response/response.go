package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

// Success 成功响应，code 固定为 0
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code: 0,
		Msg:  "success",
		Data: data,
	})
}

// Fail 失败响应，code 在合法区间内时同时作为 HTTP 状态码
func Fail(c *gin.Context, code int, msg string) {
	c.JSON(HttpStatus(code), Response{
		Code: code,
		Msg:  msg,
	})
}

func HttpStatus(code int) int {
	if code >= 400 && code < 600 {
		return code
	}
	return http.StatusOK
}
