package service_test

import (
	"Scribe/models"
	"Scribe/pkg/jwt"
	"Scribe/service"
	"Scribe/types"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	user, err := s.users.Register(ctx, &service.UserRegisterOpt{Nickname: " alice ", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, "alice", user.Nickname)
	require.Equal(t, models.DefaultNicknameColor, user.NicknameColor)
	require.False(t, user.IsAdmin)

	_, err = s.users.Register(ctx, &service.UserRegisterOpt{Nickname: "alice", Password: "secret2"})
	requireCode(t, err, http.StatusConflict)

	_, err = s.users.Login(ctx, "alice", "wrong-password")
	requireCode(t, err, http.StatusUnauthorized)

	_, err = s.users.Login(ctx, "nobody", "secret1")
	requireCode(t, err, http.StatusUnauthorized)

	resp, err := s.users.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, user.ID, resp.User.ID)

	claims, err := jwt.ParseToken([]byte("test-secret"), jwt.TypeAccess, resp.Token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)

	require.NoError(t, s.users.Logout(ctx, claims))
	require.True(t, s.mr.Exists("scribe:revoked:"+claims.ID))
}

func TestRegister_Validation(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	cases := []struct {
		name string
		opt  *service.UserRegisterOpt
	}{
		{"empty nickname", &service.UserRegisterOpt{Nickname: "  ", Password: "secret1"}},
		{"long nickname", &service.UserRegisterOpt{Nickname: strings.Repeat("名", 21), Password: "secret1"}},
		{"short password", &service.UserRegisterOpt{Nickname: "bob", Password: "12345"}},
		{"long password", &service.UserRegisterOpt{Nickname: "bob", Password: strings.Repeat("a", 73)}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := s.users.Register(ctx, c.opt)
			requireCode(t, err, http.StatusBadRequest)
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	alice := s.register(t, "alice")
	s.register(t, "bob")

	taken := "bob"
	_, err := s.users.UpdateProfile(ctx, alice.ID, &types.UpdateProfileRequest{Nickname: &taken})
	requireCode(t, err, http.StatusConflict)

	bad := "red"
	_, err = s.users.UpdateProfile(ctx, alice.ID, &types.UpdateProfileRequest{NicknameColor: &bad})
	requireCode(t, err, http.StatusBadRequest)

	name, color := "alice2", "#ff0000"
	user, err := s.users.UpdateProfile(ctx, alice.ID, &types.UpdateProfileRequest{Nickname: &name, NicknameColor: &color})
	require.NoError(t, err)
	require.Equal(t, "alice2", user.Nickname)
	require.Equal(t, "#FF0000", user.NicknameColor)

	// 保留自己原来的昵称不算冲突
	user, err = s.users.UpdateProfile(ctx, alice.ID, &types.UpdateProfileRequest{Nickname: &name})
	require.NoError(t, err)
	require.Equal(t, "alice2", user.Nickname)
}

func TestEnsureAdmin(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	admin, err := s.users.EnsureAdmin(ctx, "root", "rootpass")
	require.NoError(t, err)
	require.True(t, admin.IsAdmin)
	require.Equal(t, models.AdminNicknameColor, admin.NicknameColor)

	again, err := s.users.EnsureAdmin(ctx, "root", "ignored")
	require.NoError(t, err)
	require.Equal(t, admin.ID, again.ID)
}
