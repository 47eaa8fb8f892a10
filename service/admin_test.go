package service_test

import (
	"Scribe/models"
	"Scribe/service"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetAdmin(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	root := s.register(t, "root")
	bob := s.register(t, "bob")

	profile, err := s.admin.SetAdmin(ctx, root.ID, bob.ID, true)
	require.NoError(t, err)
	require.True(t, profile.IsAdmin)
	require.Equal(t, models.AdminNicknameColor, profile.NicknameColor)

	profile, err = s.admin.SetAdmin(ctx, root.ID, bob.ID, false)
	require.NoError(t, err)
	require.False(t, profile.IsAdmin)
	require.Equal(t, models.DefaultNicknameColor, profile.NicknameColor)

	_, err = s.admin.SetAdmin(ctx, root.ID, root.ID, false)
	requireCode(t, err, http.StatusBadRequest)

	_, err = s.admin.SetAdmin(ctx, root.ID, 42, true)
	requireCode(t, err, http.StatusNotFound)
}

func TestDeleteUser_Cascade(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	root := s.register(t, "root")
	alice := s.register(t, "alice")
	bob := s.register(t, "bob")

	aliceDoc := s.publish(t, alice, "Alice doc")
	bobDoc := s.publish(t, bob, "Bob doc")

	// bob 在 alice 的文档下留下的痕迹随 alice 的文档一起删除
	_, err := s.likes.Like(ctx, bob.ID, aliceDoc.ID)
	require.NoError(t, err)
	_, err = s.comments.Create(ctx, bob.ID, aliceDoc.ID, "nice")
	require.NoError(t, err)

	// alice 在 bob 的文档下的点赞收藏评论要删除并回写计数
	_, err = s.likes.Like(ctx, alice.ID, bobDoc.ID)
	require.NoError(t, err)
	_, err = s.favorites.Favorite(ctx, alice.ID, bobDoc.ID)
	require.NoError(t, err)
	_, err = s.comments.Create(ctx, alice.ID, bobDoc.ID, "thanks")
	require.NoError(t, err)

	// bob 已经建立未读缓存，alice 的未读消息要从中移除
	_, err = s.messages.Unread(ctx, bob.ID)
	require.NoError(t, err)
	img, err := s.messages.Send(ctx, &service.SendMessageOpt{
		SenderID:   alice.ID,
		ReceiverID: bob.ID,
		Content:    "pic",
		Image:      fileHeader(t, "a.png", pngBytes(t)),
	})
	require.NoError(t, err)
	require.Len(t, s.storage.Objects, 1)

	_, err = s.fortune.Draw(ctx, alice.ID)
	require.NoError(t, err)

	require.NoError(t, s.admin.DeleteUser(ctx, root.ID, alice.ID))

	_, err = s.users.Profile(ctx, alice.ID)
	requireCode(t, err, http.StatusNotFound)
	_, err = s.documents.Detail(ctx, aliceDoc.ID, 0)
	requireCode(t, err, http.StatusNotFound)

	detail, err := s.documents.Detail(ctx, bobDoc.ID, 0)
	require.NoError(t, err)
	require.Zero(t, detail.LikesCount)
	require.Zero(t, detail.FavoritesCount)
	require.Empty(t, detail.Comments)

	unread, err := s.messages.Unread(ctx, bob.ID)
	require.NoError(t, err)
	require.Zero(t, unread.Total)

	key := strings.TrimPrefix(img.ImageURL, "https://cdn.test/")
	require.False(t, s.storage.Has(key))

	for _, m := range []any{&models.Like{}, &models.Comment{}, &models.Message{}, &models.FortuneRecord{}} {
		var n int64
		require.NoError(t, s.db.Model(m).Count(&n).Error)
		require.Zero(t, n)
	}

	stats, err := s.admin.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.Users)
	require.Equal(t, int64(1), stats.Documents)
}

func TestDeleteUser_Refused(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	root := s.register(t, "root")

	err := s.admin.DeleteUser(ctx, root.ID, root.ID)
	requireCode(t, err, http.StatusBadRequest)

	err = s.admin.DeleteUser(ctx, root.ID, 42)
	requireCode(t, err, http.StatusNotFound)
}

func TestAdminLists(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	root := s.register(t, "root")
	alice := s.register(t, "alice")
	s.publish(t, alice, "Alpha")
	s.publish(t, root, "Beta")

	users, err := s.admin.ListUsers(ctx, "ALI", 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), users.Total)
	require.Equal(t, alice.ID, users.List[0].ID)

	docs, err := s.admin.ListDocuments(ctx, "alice", 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), docs.Total)
	require.Equal(t, "Alpha", docs.List[0].Title)

	require.NoError(t, s.admin.DeleteDocument(ctx, docs.List[0].ID))
	err = s.admin.DeleteDocument(ctx, docs.List[0].ID)
	requireCode(t, err, http.StatusNotFound)
}
