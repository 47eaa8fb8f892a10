package handler

import (
	"Scribe/middleware"
	"Scribe/pkg/context"
	"Scribe/pkg/response"
	"Scribe/service"
	"Scribe/types"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Message struct {
	Authorizer     *middleware.Authorizer
	MessageService service.IMessageService
}

func (m *Message) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/message", m.Authorizer.Required())
	g.POST("/send", context.Wrap(m.Send))
	g.GET("/conversation/:peer_id", context.Wrap(m.Conversation))
	g.GET("/unread", context.Wrap(m.Unread))
}

// Send 支持 JSON 与 multipart，图片字段为 image
func (m *Message) Send(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}

	var req types.SendMessageRequest
	opt := &service.SendMessageOpt{SenderID: uid}

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBind(&req); err != nil {
			return badParams(err)
		}
		header, err := c.FormFile("image")
		if err != nil && !errors.Is(err, http.ErrMissingFile) {
			return response.NewError(http.StatusBadRequest, "图片读取失败")
		}
		opt.Image = header
	} else if err := c.ShouldBindJSON(&req); err != nil {
		return badParams(err)
	}

	opt.ReceiverID = req.ReceiverID
	opt.Content = req.Content
	item, err := m.MessageService.Send(c.Request.Context(), opt)
	if err != nil {
		return err
	}
	response.Success(c, item)
	return nil
}

// Conversation 与某人的聊天记录，打开即已读
func (m *Message) Conversation(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	peerID, err := paramID(c, "peer_id")
	if err != nil {
		return err
	}

	var req types.ConversationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return badParams(err)
	}

	items, err := m.MessageService.Conversation(c.Request.Context(), uid, peerID, req.AfterID, req.Limit)
	if err != nil {
		return err
	}
	response.Success(c, items)
	return nil
}

func (m *Message) Unread(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	resp, err := m.MessageService.Unread(c.Request.Context(), uid)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}
