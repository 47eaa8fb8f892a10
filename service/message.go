package service

import (
	"Scribe/config"
	"Scribe/dao"
	"Scribe/dao/cache"
	"Scribe/models"
	"Scribe/pkg/log"
	"Scribe/pkg/response"
	"Scribe/pkg/snowflake"
	"Scribe/types"
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

const (
	messageMaxLen = 1000
	// 单次拉取上限
	conversationMaxLimit = 500
)

// 允许的图片类型 => 扩展名
var messageImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var _ IMessageService = (*MessageService)(nil)

type IMessageService interface {
	Send(ctx context.Context, opt *SendMessageOpt) (*types.MessageItem, error)
	Conversation(ctx context.Context, uid, peerID int64, afterID int64, limit int) ([]*types.MessageItem, error)
	Unread(ctx context.Context, uid int64) (*types.UnreadResponse, error)
	Contacts(ctx context.Context, uid int64) ([]*types.Contact, error)
}

type MessageService struct {
	Config      *config.Config
	MessageDao  *dao.MessageDAO
	UsersRepo   *dao.Users
	UnreadCache *cache.UnreadStorage
	Storage     IStorage
	Now         func() time.Time
}

type SendMessageOpt struct {
	SenderID   int64
	ReceiverID int64
	Content    string
	Image      *multipart.FileHeader
}

// Send 发送私信，文字与图片至少有一个
func (s *MessageService) Send(ctx context.Context, opt *SendMessageOpt) (*types.MessageItem, error) {
	content := strings.TrimSpace(opt.Content)
	if content == "" && opt.Image == nil {
		return nil, badRequest("消息内容不能为空")
	}
	if utf8.RuneCountInString(content) > messageMaxLen {
		return nil, badRequest("消息过长")
	}
	if opt.ReceiverID == opt.SenderID {
		return nil, badRequest("不能给自己发消息")
	}

	exist, err := s.UsersRepo.IsExist(ctx, "id = ?", opt.ReceiverID)
	if err != nil {
		return nil, err
	}
	if !exist {
		return nil, ErrUserNotFound
	}

	now := s.now()
	msg := &models.Message{
		ID:         snowflake.GenID(),
		SenderID:   opt.SenderID,
		ReceiverID: opt.ReceiverID,
		Content:    content,
		CreatedAt:  now,
	}

	if opt.Image != nil {
		key, err := s.putImage(ctx, msg.ID, now, opt.Image)
		if err != nil {
			return nil, err
		}
		msg.ImageKey = &key
	}

	if err := s.MessageDao.Create(ctx, msg); err != nil {
		if msg.ImageKey != nil {
			if derr := s.Storage.Delete(ctx, *msg.ImageKey); derr != nil {
				log.L.Warn("delete orphan image failed", zap.String("key", *msg.ImageKey), zap.Error(derr))
			}
		}
		return nil, err
	}

	if err := s.UnreadCache.Incr(ctx, opt.ReceiverID, opt.SenderID); err != nil {
		// 缓存失败不影响发送，读取时会从数据库重建
		log.L.Warn("incr unread failed", zap.Int64("receiver_id", opt.ReceiverID), zap.Error(err))
		_ = s.UnreadCache.Del(ctx, opt.ReceiverID)
	}

	return s.toItem(ctx, msg), nil
}

// Conversation 两人之间的消息，按时间正序，同时将本次返回的对方消息标记为已读
func (s *MessageService) Conversation(ctx context.Context, uid, peerID int64, afterID int64, limit int) ([]*types.MessageItem, error) {
	exist, err := s.UsersRepo.IsExist(ctx, "id = ?", peerID)
	if err != nil {
		return nil, err
	}
	if !exist {
		return nil, ErrUserNotFound
	}

	if limit <= 0 || limit > conversationMaxLimit {
		limit = conversationMaxLimit
	}
	msgs, err := s.MessageDao.Conversation(ctx, uid, peerID, afterID, limit)
	if err != nil {
		return nil, err
	}

	if err := s.markRead(ctx, uid, peerID, msgs); err != nil {
		return nil, err
	}

	items := make([]*types.MessageItem, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, s.toItem(ctx, m))
	}
	return items, nil
}

// markRead 只标记本次返回的消息，之后的仍保持未读
func (s *MessageService) markRead(ctx context.Context, uid, peerID int64, msgs []*models.Message) error {
	var lastID int64
	for _, m := range msgs {
		lastID = max(lastID, m.ID)
	}
	if lastID == 0 {
		return nil
	}

	now := s.now()
	affected, err := s.MessageDao.MarkRead(ctx, uid, peerID, lastID, now)
	if err != nil {
		return err
	}
	if affected == 0 {
		return nil
	}
	for _, m := range msgs {
		if m.ReceiverID == uid && m.ReadAt == nil {
			m.ReadAt = &now
		}
	}
	if err := s.UnreadCache.Decr(ctx, uid, peerID, affected); err != nil {
		log.L.Warn("decr unread failed", zap.Int64("user_id", uid), zap.Error(err))
		_ = s.UnreadCache.Del(ctx, uid)
	}
	return nil
}

// Unread 未读数，缓存未命中时从数据库统计并回填
func (s *MessageService) Unread(ctx context.Context, uid int64) (*types.UnreadResponse, error) {
	counts, err := s.unreadCounts(ctx, uid)
	if err != nil {
		return nil, err
	}

	resp := &types.UnreadResponse{ByPeer: make(map[string]int64, len(counts))}
	for peer, n := range counts {
		resp.Total += n
		resp.ByPeer[strconv.FormatInt(peer, 10)] = n
	}
	return resp, nil
}

// Contacts 除自己外的全部用户及其未读数
func (s *MessageService) Contacts(ctx context.Context, uid int64) ([]*types.Contact, error) {
	users, err := s.UsersRepo.ListOthers(ctx, uid)
	if err != nil {
		return nil, err
	}
	counts, err := s.unreadCounts(ctx, uid)
	if err != nil {
		return nil, err
	}

	contacts := make([]*types.Contact, 0, len(users))
	for _, u := range users {
		contacts = append(contacts, &types.Contact{
			Author: *toAuthor(u),
			Unread: counts[u.ID],
		})
	}
	return contacts, nil
}

func (s *MessageService) unreadCounts(ctx context.Context, uid int64) (map[int64]int64, error) {
	counts, ok, err := s.UnreadCache.Get(ctx, uid)
	if err != nil {
		log.L.Warn("get unread cache failed", zap.Int64("user_id", uid), zap.Error(err))
	}
	if ok {
		return counts, nil
	}

	rows, err := s.MessageDao.UnreadBySender(ctx, uid)
	if err != nil {
		return nil, err
	}
	counts = make(map[int64]int64, len(rows))
	for _, r := range rows {
		counts[r.SenderID] = r.Total
	}
	if err := s.UnreadCache.Set(ctx, uid, counts); err != nil {
		log.L.Warn("rebuild unread cache failed", zap.Int64("user_id", uid), zap.Error(err))
	}
	return counts, nil
}

// putImage 校验图片后上传，返回对象 key
func (s *MessageService) putImage(ctx context.Context, id int64, now time.Time, header *multipart.FileHeader) (string, error) {
	maxSize := s.Config.Upload.MessageImageMaxSize
	tooLarge := response.NewError(http.StatusRequestEntityTooLarge, fmt.Sprintf("图片不能超过 %dMB", maxSize>>20))
	if header.Size > maxSize {
		return "", tooLarge
	}

	f, err := header.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > maxSize {
		return "", tooLarge
	}
	if len(data) == 0 {
		return "", badRequest("图片为空")
	}

	// 以文件内容为准，不信任客户端的 Content-Type
	contentType := http.DetectContentType(data)
	ext, ok := messageImageTypes[contentType]
	if !ok {
		return "", badRequest("只支持 jpg、png、gif、webp 图片")
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", badRequest("图片已损坏")
	}

	key := fmt.Sprintf("message-images/%s/%d%s", now.Format("2006/01/02"), id, ext)
	if err := s.Storage.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return "", err
	}
	return key, nil
}

func (s *MessageService) toItem(ctx context.Context, m *models.Message) *types.MessageItem {
	item := &types.MessageItem{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		ReadAt:     m.ReadAt,
		CreatedAt:  m.CreatedAt,
	}
	if m.ImageKey != nil {
		url, err := s.Storage.URL(ctx, *m.ImageKey)
		if err != nil {
			log.L.Warn("image url failed", zap.String("key", *m.ImageKey), zap.Error(err))
		}
		item.ImageURL = url
	}
	return item
}

func (s *MessageService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
