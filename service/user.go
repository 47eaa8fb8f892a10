package service

import (
	"Scribe/config"
	"Scribe/dao"
	"Scribe/dao/cache"
	"Scribe/models"
	"Scribe/pkg/encrypt"
	"Scribe/pkg/jwt"
	"Scribe/pkg/log"
	"Scribe/pkg/response"
	"Scribe/pkg/snowflake"
	"Scribe/types"
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	nicknameMaxLen = 20
	passwordMinLen = 6
	// bcrypt 只使用前 72 字节
	passwordMaxLen = 72
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var errBadCredentials = response.NewError(http.StatusUnauthorized, "昵称或密码错误")

var _ IUserService = (*UserService)(nil)

type IUserService interface {
	Register(ctx context.Context, opt *UserRegisterOpt) (*models.User, error)
	Login(ctx context.Context, nickname, password string) (*types.LoginResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	Profile(ctx context.Context, uid int64) (*models.User, error)
	UpdateProfile(ctx context.Context, uid int64, opt *types.UpdateProfileRequest) (*models.User, error)
	EnsureAdmin(ctx context.Context, nickname, password string) (*models.User, error)
}

type UserService struct {
	Config    *config.Config
	UsersRepo *dao.Users
	Tokens    *cache.TokenStorage
}

type UserRegisterOpt struct {
	Nickname string
	Password string
}

// Register 注册用户，昵称唯一
func (s *UserService) Register(ctx context.Context, opt *UserRegisterOpt) (*models.User, error) {
	nickname, err := checkText(opt.Nickname, "昵称", nicknameMaxLen)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(opt.Password); err != nil {
		return nil, err
	}

	exist, err := s.UsersRepo.IsNicknameExist(ctx, nickname, 0)
	if err != nil {
		return nil, err
	}
	if exist {
		return nil, ErrNicknameTaken
	}

	hash, err := encrypt.HashPassword(opt.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:            snowflake.GenID(),
		Nickname:      nickname,
		PasswordHash:  hash,
		NicknameColor: models.DefaultNicknameColor,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := s.UsersRepo.Create(ctx, user); err != nil {
		// 并发注册同一个昵称
		if dao.IsDuplicate(err) {
			return nil, ErrNicknameTaken
		}
		return nil, err
	}

	return user, nil
}

// Login 登录并签发访问令牌
func (s *UserService) Login(ctx context.Context, nickname, password string) (*types.LoginResponse, error) {
	user, err := s.UsersRepo.FindByNickname(ctx, strings.TrimSpace(nickname))
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, errBadCredentials
		}
		return nil, err
	}

	if !encrypt.VerifyPassword(user.PasswordHash, password) {
		return nil, errBadCredentials
	}

	expire := time.Duration(s.Config.Jwt.ExpiresTime) * time.Second
	token, claims, err := jwt.GenerateToken([]byte(s.Config.Jwt.Secret), user.ID, jwt.TypeAccess, expire)
	if err != nil {
		return nil, err
	}

	return &types.LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      ToProfile(user),
	}, nil
}

// Logout 注销当前令牌，令牌过期前都会被拒绝
func (s *UserService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return s.Tokens.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

func (s *UserService) Profile(ctx context.Context, uid int64) (*models.User, error) {
	user, err := s.UsersRepo.FindById(ctx, uid)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile 修改昵称或昵称颜色
func (s *UserService) UpdateProfile(ctx context.Context, uid int64, opt *types.UpdateProfileRequest) (*models.User, error) {
	updates := map[string]any{}

	if opt.Nickname != nil {
		nickname, err := checkText(*opt.Nickname, "昵称", nicknameMaxLen)
		if err != nil {
			return nil, err
		}
		exist, err := s.UsersRepo.IsNicknameExist(ctx, nickname, uid)
		if err != nil {
			return nil, err
		}
		if exist {
			return nil, ErrNicknameTaken
		}
		updates["nickname"] = nickname
	}

	if opt.NicknameColor != nil {
		if !colorPattern.MatchString(*opt.NicknameColor) {
			return nil, badRequest("颜色格式应为 #RRGGBB")
		}
		updates["nickname_color"] = strings.ToUpper(*opt.NicknameColor)
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		affected, err := s.UsersRepo.UpdateById(ctx, uid, updates)
		if err != nil {
			if dao.IsDuplicate(err) {
				return nil, ErrNicknameTaken
			}
			return nil, err
		}
		if affected == 0 {
			return nil, ErrUserNotFound
		}
	}

	return s.Profile(ctx, uid)
}

// EnsureAdmin 初始化管理员，昵称已存在时直接提升权限
func (s *UserService) EnsureAdmin(ctx context.Context, nickname, password string) (*models.User, error) {
	user, err := s.UsersRepo.FindByNickname(ctx, strings.TrimSpace(nickname))
	if err != nil && !dao.IsNotFound(err) {
		return nil, err
	}
	if user == nil {
		user, err = s.Register(ctx, &UserRegisterOpt{Nickname: nickname, Password: password})
		if err != nil {
			return nil, err
		}
	}

	_, err = s.UsersRepo.UpdateById(ctx, user.ID, map[string]any{
		"is_admin":       true,
		"nickname_color": models.AdminNicknameColor,
		"updated_at":     time.Now(),
	})
	if err != nil {
		return nil, err
	}
	log.L.Info("admin ensured", zap.Int64("user_id", user.ID), zap.String("nickname", user.Nickname))
	return s.Profile(ctx, user.ID)
}

func checkPassword(password string) error {
	if len([]rune(password)) < passwordMinLen {
		return badRequest("密码至少 6 位")
	}
	if len(password) > passwordMaxLen {
		return badRequest("密码过长")
	}
	return nil
}
