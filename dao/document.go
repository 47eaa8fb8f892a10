package dao

import (
	"Scribe/models"
	"context"
	"strings"

	"gorm.io/gorm"
)

type DocumentDAO struct {
	Repo[models.Document]
}

func NewDocumentDAO(db *gorm.DB) *DocumentDAO {
	return &DocumentDAO{
		Repo: NewRepo[models.Document](db),
	}
}

// List 首页列表，按创建时间倒序，query 匹配标题或简介
func (d *DocumentDAO) List(ctx context.Context, query string, page, size int) ([]*models.Document, int64, error) {
	q := d.Db.WithContext(ctx).Model(&models.Document{})
	if query = strings.TrimSpace(query); query != "" {
		p := likePattern(query)
		q = q.Where("LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!'", p, p)
	}
	return d.page(q, page, size)
}

// ListByAuthor 某个作者的文档
func (d *DocumentDAO) ListByAuthor(ctx context.Context, authorID int64, page, size int) ([]*models.Document, int64, error) {
	q := d.Db.WithContext(ctx).Model(&models.Document{}).Where("author_id = ?", authorID)
	return d.page(q, page, size)
}

// ListFavoritedBy 用户收藏的文档，按收藏时间倒序
func (d *DocumentDAO) ListFavoritedBy(ctx context.Context, userID int64, page, size int) ([]*models.Document, int64, error) {
	q := d.Db.WithContext(ctx).Model(&models.Document{}).
		Joins("JOIN favorites ON favorites.document_id = documents.id").
		Where("favorites.user_id = ?", userID)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*models.Document
	err := q.Select("documents.*").
		Order("favorites.created_at DESC").
		Scopes(Paginate(page, size)).
		Find(&items).Error
	return items, total, err
}

// AdminSearch 后台文档列表，query 匹配标题或作者昵称
func (d *DocumentDAO) AdminSearch(ctx context.Context, query string, page, size int) ([]*models.Document, int64, error) {
	q := d.Db.WithContext(ctx).Model(&models.Document{})
	if query = strings.TrimSpace(query); query != "" {
		p := likePattern(query)
		q = q.Joins("LEFT JOIN users ON users.id = documents.author_id").
			Where("LOWER(documents.title) LIKE ? ESCAPE '!' OR LOWER(users.nickname) LIKE ? ESCAPE '!'", p, p)
	}
	return d.page(q, page, size)
}

func (d *DocumentDAO) page(q *gorm.DB, page, size int) ([]*models.Document, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*models.Document
	err := q.Select("documents.*").
		Order("documents.created_at DESC").
		Order("documents.id DESC").
		Scopes(Paginate(page, size)).
		Find(&items).Error
	return items, total, err
}

// IdsByAuthorTx 事务内查询作者全部文档 id
func (d *DocumentDAO) IdsByAuthorTx(tx *gorm.DB, authorID int64) ([]int64, error) {
	var ids []int64
	err := tx.Model(&models.Document{}).Where("author_id = ?", authorID).Pluck("id", &ids).Error
	return ids, err
}

// DeleteTx 事务内删除文档以及其评论、点赞、收藏
func (d *DocumentDAO) DeleteTx(tx *gorm.DB, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("document_id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("document_id IN ?", ids).Delete(&models.Like{}).Error; err != nil {
		return err
	}
	if err := tx.Where("document_id IN ?", ids).Delete(&models.Favorite{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Document{}).Error
}
