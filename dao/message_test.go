package dao_test

import (
	"Scribe/dao"
	"Scribe/internal/testutil"
	"Scribe/models"
	"Scribe/pkg/snowflake"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMessageConversationAndRead(t *testing.T) {
	db := testutil.NewDB(t)
	msgs := dao.NewMessageDAO(db)
	ctx := context.Background()

	base := time.Now()
	send := func(from, to int64, offset int) *models.Message {
		m := &models.Message{
			ID:         snowflake.GenID(),
			SenderID:   from,
			ReceiverID: to,
			Content:    "hi",
			CreatedAt:  base.Add(time.Duration(offset) * time.Second),
		}
		require.NoError(t, msgs.Create(ctx, m))
		return m
	}
	first := send(1, 2, 0)
	send(2, 1, 1)
	third := send(1, 2, 2)
	send(3, 2, 3)

	list, err := msgs.Conversation(ctx, 2, 1, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, first.ID, list[0].ID)

	list, err = msgs.Conversation(ctx, 2, 1, first.ID, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)

	rows, err := msgs.UnreadBySender(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	affected, err := msgs.MarkRead(ctx, 2, 1, first.ID, time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	rows, err = msgs.UnreadBySender(ctx, 2)
	require.NoError(t, err)
	require.ElementsMatch(t, []dao.UnreadRow{{SenderID: 1, Total: 1}, {SenderID: 3, Total: 1}}, rows)

	affected, err = msgs.MarkRead(ctx, 2, 1, third.ID, time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	rows, err = msgs.UnreadBySender(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []dao.UnreadRow{{SenderID: 3, Total: 1}}, rows)
}

func TestFortuneUniquePerDay(t *testing.T) {
	db := testutil.NewDB(t)
	fortunes := dao.NewFortuneDAO(db)
	ctx := context.Background()

	rec := &models.FortuneRecord{ID: snowflake.GenID(), UserID: 1, DrawDay: "2026-01-02", Fortune: "great_luck"}
	require.NoError(t, fortunes.Create(ctx, rec))

	err := fortunes.Create(ctx, &models.FortuneRecord{ID: snowflake.GenID(), UserID: 1, DrawDay: "2026-01-02", Fortune: "bad_luck"})
	require.True(t, dao.IsDuplicate(err))

	got, err := fortunes.FindByDay(ctx, 1, "2026-01-02")
	require.NoError(t, err)
	require.Equal(t, "great_luck", got.Fortune)

	got, err = fortunes.FindByDay(ctx, 1, "2026-01-03")
	require.NoError(t, err)
	require.Nil(t, got)
}
