package service

import (
	"Scribe/models"
	"Scribe/pkg/response"
	"Scribe/types"
	"net/http"
	"strings"
	"unicode/utf8"
)

var (
	ErrUserNotFound     = response.NewError(http.StatusNotFound, "用户不存在")
	ErrDocumentNotFound = response.NewError(http.StatusNotFound, "文档不存在")
	ErrCommentNotFound  = response.NewError(http.StatusNotFound, "评论不存在")
	ErrNicknameTaken    = response.NewError(http.StatusConflict, "昵称已被使用")
	ErrAlreadyDrawn     = response.NewError(http.StatusConflict, "今天已经抽过签了，明天再来吧")
)

func badRequest(msg string) error {
	return response.NewError(http.StatusBadRequest, msg)
}

// checkText 去除首尾空白后校验字数，字数按字符计算
func checkText(s, field string, max int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", badRequest(field + "不能为空")
	}
	if utf8.RuneCountInString(s) > max {
		return "", badRequest(field + "过长")
	}
	return s, nil
}

func toAuthor(u *models.User) *types.Author {
	if u == nil {
		return &types.Author{Nickname: "已注销用户", NicknameColor: models.DefaultNicknameColor}
	}
	return &types.Author{ID: u.ID, Nickname: u.Nickname, NicknameColor: u.NicknameColor}
}

// ToProfile 用户资料，不含密码
func ToProfile(u *models.User) *types.UserProfile {
	return &types.UserProfile{
		ID:            u.ID,
		Nickname:      u.Nickname,
		NicknameColor: u.NicknameColor,
		IsAdmin:       u.IsAdmin,
		CreatedAt:     u.CreatedAt,
	}
}
