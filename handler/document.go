package handler

import (
	"Scribe/middleware"
	"Scribe/pkg/context"
	"Scribe/pkg/response"
	"Scribe/service"
	"Scribe/types"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Document struct {
	Authorizer      *middleware.Authorizer
	DocumentService service.IDocumentService
	LikeService     service.ILikeService
	FavoriteService service.IFavoriteService
}

func (d *Document) RegisterRouter(r gin.IRouter) {
	authorize := d.Authorizer.Required()
	g := r.Group("/v1/document")
	g.GET("/list", context.Wrap(d.List))
	g.GET("/favorites", authorize, context.Wrap(d.Favorites))
	g.GET("/:id", d.Authorizer.Optional(), context.Wrap(d.Detail))
	g.POST("/create", authorize, context.Wrap(d.Create))
	g.POST("/import", authorize, context.Wrap(d.Import))
	g.POST("/:id/delete", authorize, context.Wrap(d.Delete))
	g.POST("/:id/like", authorize, context.Wrap(d.ToggleLike))
	g.POST("/:id/unlike", authorize, context.Wrap(d.Unlike))
	g.POST("/:id/favorite", authorize, context.Wrap(d.ToggleFavorite))
	g.POST("/:id/unfavorite", authorize, context.Wrap(d.Unfavorite))
}

// List 首页文档列表
func (d *Document) List(c *gin.Context) error {
	var req types.ListDocumentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return badParams(err)
	}
	req.Normalize()

	resp, err := d.DocumentService.List(c.Request.Context(), req.Query, req.Page, req.PageSize)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

// Favorites 我的收藏
func (d *Document) Favorites(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}

	var req types.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return badParams(err)
	}
	req.Normalize()

	resp, err := d.DocumentService.ListFavorites(c.Request.Context(), uid, req.Page, req.PageSize)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

// Detail 游客也可以查看，登录后带上点赞收藏状态
func (d *Document) Detail(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	viewer, _ := context.GetUserID(c)

	detail, err := d.DocumentService.Detail(c.Request.Context(), id, viewer)
	if err != nil {
		return err
	}
	response.Success(c, detail)
	return nil
}

func (d *Document) Create(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}

	var req types.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badParams(err)
	}

	doc, err := d.DocumentService.Create(c.Request.Context(), uid, &service.DocumentOpt{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
	})
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"id": strconv.FormatInt(doc.ID, 10)})
	return nil
}

// Import 上传 Markdown 文件发布
func (d *Document) Import(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}

	header, err := c.FormFile("file")
	if err != nil {
		return response.NewError(http.StatusBadRequest, "请选择文件")
	}

	doc, err := d.DocumentService.Import(c.Request.Context(), uid, &service.DocumentOpt{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	}, header)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"id": strconv.FormatInt(doc.ID, 10)})
	return nil
}

func (d *Document) Delete(c *gin.Context) error {
	uid, id, err := d.params(c)
	if err != nil {
		return err
	}
	if err := d.DocumentService.Delete(c.Request.Context(), uid, id); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

func (d *Document) ToggleLike(c *gin.Context) error {
	uid, id, err := d.params(c)
	if err != nil {
		return err
	}
	resp, err := d.LikeService.Toggle(c.Request.Context(), uid, id)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (d *Document) Unlike(c *gin.Context) error {
	uid, id, err := d.params(c)
	if err != nil {
		return err
	}
	resp, err := d.LikeService.Unlike(c.Request.Context(), uid, id)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (d *Document) ToggleFavorite(c *gin.Context) error {
	uid, id, err := d.params(c)
	if err != nil {
		return err
	}
	resp, err := d.FavoriteService.Toggle(c.Request.Context(), uid, id)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (d *Document) Unfavorite(c *gin.Context) error {
	uid, id, err := d.params(c)
	if err != nil {
		return err
	}
	resp, err := d.FavoriteService.Unfavorite(c.Request.Context(), uid, id)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

// params 当前用户与路径中的文档 id
func (d *Document) params(c *gin.Context) (int64, int64, error) {
	uid, err := context.MustUserID(c)
	if err != nil {
		return 0, 0, err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	return uid, id, nil
}
