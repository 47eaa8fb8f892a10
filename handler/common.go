package handler

import (
	"Scribe/pkg/response"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// paramID 解析路径中的 id
func paramID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, response.NewError(http.StatusBadRequest, "参数错误")
	}
	return id, nil
}

func badParams(err error) error {
	return response.NewError(http.StatusBadRequest, "参数错误")
}
