package service_test

import (
	"Scribe/service"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocumentCreate_Validation(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	alice := s.register(t, "alice")

	cases := []struct {
		name string
		opt  *service.DocumentOpt
		code int
	}{
		{"empty title", &service.DocumentOpt{Title: " ", Description: "d", Content: "c"}, http.StatusBadRequest},
		{"long title", &service.DocumentOpt{Title: strings.Repeat("标", 21), Description: "d", Content: "c"}, http.StatusBadRequest},
		{"long description", &service.DocumentOpt{Title: "t", Description: strings.Repeat("简", 31), Content: "c"}, http.StatusBadRequest},
		{"empty content", &service.DocumentOpt{Title: "t", Description: "d", Content: "\n"}, http.StatusBadRequest},
		{"huge content", &service.DocumentOpt{Title: "t", Description: "d", Content: strings.Repeat("a", 65536)}, http.StatusRequestEntityTooLarge},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := s.documents.Create(ctx, alice.ID, c.opt)
			requireCode(t, err, c.code)
		})
	}

	doc, err := s.documents.Create(ctx, alice.ID, &service.DocumentOpt{
		Title:       strings.Repeat("标", 20),
		Description: strings.Repeat("简", 30),
		Content:     "body",
	})
	require.NoError(t, err)
	require.Zero(t, doc.LikesCount)
	require.Zero(t, doc.FavoritesCount)
}

func TestDocumentImport(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	alice := s.register(t, "alice")

	doc, err := s.documents.Import(ctx, alice.ID, &service.DocumentOpt{Description: "导入"},
		fileHeader(t, "notes.md", []byte("\ufeff# Notes\n\nhello")))
	require.NoError(t, err)
	require.Equal(t, "notes", doc.Title)
	require.Equal(t, "# Notes\n\nhello", doc.Content)

	_, err = s.documents.Import(ctx, alice.ID, &service.DocumentOpt{Description: "导入"},
		fileHeader(t, "image.png", []byte("x")))
	requireCode(t, err, http.StatusBadRequest)

	_, err = s.documents.Import(ctx, alice.ID, &service.DocumentOpt{Description: "导入"},
		fileHeader(t, "bad.txt", []byte{0xff, 0xfe, 0xfd}))
	requireCode(t, err, http.StatusBadRequest)

	_, err = s.documents.Import(ctx, alice.ID, &service.DocumentOpt{Description: "导入"},
		fileHeader(t, "big.md", []byte(strings.Repeat("a", 1<<20+1))))
	requireCode(t, err, http.StatusRequestEntityTooLarge)
}

func TestDocumentDetail(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	alice := s.register(t, "alice")
	bob := s.register(t, "bob")
	doc := s.publish(t, alice, "Hello")

	_, err := s.likes.Like(ctx, bob.ID, doc.ID)
	require.NoError(t, err)
	_, err = s.comments.Create(ctx, bob.ID, doc.ID, "**nice**")
	require.NoError(t, err)

	detail, err := s.documents.Detail(ctx, doc.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", detail.Author.Nickname)
	require.Contains(t, detail.HTML, "<h1")
	require.True(t, detail.IsLiked)
	require.False(t, detail.IsFavorited)
	require.Equal(t, int64(1), detail.LikesCount)
	require.Len(t, detail.Comments, 1)
	require.Contains(t, detail.Comments[0].HTML, "<strong>nice</strong>")

	anonymous, err := s.documents.Detail(ctx, doc.ID, 0)
	require.NoError(t, err)
	require.False(t, anonymous.IsLiked)

	_, err = s.documents.Detail(ctx, 42, 0)
	requireCode(t, err, http.StatusNotFound)
}

func TestDocumentDetail_EscapesRawHTML(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	alice := s.register(t, "alice")

	doc, err := s.documents.Create(ctx, alice.ID, &service.DocumentOpt{
		Title:       "xss",
		Description: "d",
		Content:     "<script>alert(1)</script>\n\n[x](javascript:alert(1))",
	})
	require.NoError(t, err)

	detail, err := s.documents.Detail(ctx, doc.ID, 0)
	require.NoError(t, err)
	require.NotContains(t, detail.HTML, "<script")
	require.NotContains(t, detail.HTML, "javascript:")
}

func TestDocumentListAndDelete(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	alice := s.register(t, "alice")
	bob := s.register(t, "bob")
	doc := s.publish(t, alice, "First")
	s.publish(t, bob, "Second")

	page, err := s.documents.List(ctx, "", 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(2), page.Total)
	require.Equal(t, "Second", page.List[0].Title)
	require.Equal(t, "bob", page.List[0].Author.Nickname)

	page, err = s.documents.ListByAuthor(ctx, alice.ID, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Total)

	_, err = s.favorites.Favorite(ctx, bob.ID, doc.ID)
	require.NoError(t, err)
	page, err = s.documents.ListFavorites(ctx, bob.ID, 1, 10)
	require.NoError(t, err)
	require.Equal(t, doc.ID, page.List[0].ID)

	err = s.documents.Delete(ctx, bob.ID, doc.ID)
	requireCode(t, err, http.StatusForbidden)

	require.NoError(t, s.documents.Delete(ctx, alice.ID, doc.ID))
	_, err = s.documents.Detail(ctx, doc.ID, 0)
	requireCode(t, err, http.StatusNotFound)

	page, err = s.documents.ListFavorites(ctx, bob.ID, 1, 10)
	require.NoError(t, err)
	require.Zero(t, page.Total)
}
