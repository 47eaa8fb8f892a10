package handler

import (
	"Scribe/middleware"
	"Scribe/pkg/context"
	"Scribe/pkg/response"
	"Scribe/service"
	"Scribe/types"

	"github.com/gin-gonic/gin"
)

type Comment struct {
	Authorizer     *middleware.Authorizer
	CommentService service.ICommentService
}

func (ch *Comment) RegisterRouter(r gin.IRouter) {
	authorize := ch.Authorizer.Required()
	comments := r.Group("/v1/comment")
	comments.GET("/list/:document_id", context.Wrap(ch.List))
	comments.POST("/create", authorize, context.Wrap(ch.Create))
	comments.POST("/:id/delete", authorize, context.Wrap(ch.Delete))
}

// List 文档评论，按时间正序
func (ch *Comment) List(c *gin.Context) error {
	docID, err := paramID(c, "document_id")
	if err != nil {
		return err
	}
	items, err := ch.CommentService.List(c.Request.Context(), docID)
	if err != nil {
		return err
	}
	response.Success(c, items)
	return nil
}

// Create 创建评论
func (ch *Comment) Create(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}

	var req types.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badParams(err)
	}

	item, err := ch.CommentService.Create(c.Request.Context(), uid, req.DocumentID, req.Content)
	if err != nil {
		return err
	}
	response.Success(c, item)
	return nil
}

func (ch *Comment) Delete(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := ch.CommentService.Delete(c.Request.Context(), uid, id); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}
