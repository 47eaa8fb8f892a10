package dao

import (
	"Scribe/models"
	"context"
	"strings"

	"gorm.io/gorm"
)

type Users struct {
	Repo[models.User]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		Repo: NewRepo[models.User](db),
	}
}

// FindByNickname 昵称查询
func (u *Users) FindByNickname(ctx context.Context, nickname string) (*models.User, error) {
	return u.Repo.FindByWhere(ctx, "nickname = ?", nickname)
}

// IsNicknameExist 判断昵称是否被占用，excludeID 为当前用户时跳过自己
func (u *Users) IsNicknameExist(ctx context.Context, nickname string, excludeID int64) (bool, error) {
	return u.Repo.IsExist(ctx, "nickname = ? AND id <> ?", nickname, excludeID)
}

// ListOthers 除自己外的全部用户，按昵称排序
func (u *Users) ListOthers(ctx context.Context, uid int64) ([]*models.User, error) {
	var items []*models.User
	err := u.Db.WithContext(ctx).
		Where("id <> ?", uid).
		Order("nickname ASC").
		Find(&items).Error
	return items, err
}

// Search 后台用户列表，按昵称模糊匹配
func (u *Users) Search(ctx context.Context, query string, page, size int) ([]*models.User, int64, error) {
	q := u.Db.WithContext(ctx).Model(&models.User{})
	if query = strings.TrimSpace(query); query != "" {
		q = q.Where("LOWER(nickname) LIKE ? ESCAPE '!'", likePattern(query))
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*models.User
	err := q.Order("created_at DESC").Scopes(Paginate(page, size)).Find(&items).Error
	return items, total, err
}

// FindMap 批量查询，返回 id => user
func (u *Users) FindMap(ctx context.Context, ids []int64) (map[int64]*models.User, error) {
	items, err := u.FindByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	m := make(map[int64]*models.User, len(items))
	for _, item := range items {
		m[item.ID] = item
	}
	return m, nil
}

// DeleteTx 事务内删除用户行
func (u *Users) DeleteTx(tx *gorm.DB, uid int64) error {
	return tx.Where("id = ?", uid).Delete(&models.User{}).Error
}

// 不用反斜杠，mysql 字面量会吞掉它
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// likePattern 大小写不敏感的包含匹配，用户输入的通配符按字面匹配
// 配合 "LIKE ? ESCAPE '!'" 使用
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
