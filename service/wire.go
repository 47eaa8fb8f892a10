package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(UserService), "*"),
	wire.Bind(new(IUserService), new(*UserService)),

	wire.Struct(new(DocumentService), "*"),
	wire.Bind(new(IDocumentService), new(*DocumentService)),

	wire.Struct(new(CommentService), "*"),
	wire.Bind(new(ICommentService), new(*CommentService)),

	wire.Struct(new(LikeService), "*"),
	wire.Bind(new(ILikeService), new(*LikeService)),

	wire.Struct(new(FavoriteService), "*"),
	wire.Bind(new(IFavoriteService), new(*FavoriteService)),

	wire.Struct(new(MessageService), "Config", "MessageDao", "UsersRepo", "UnreadCache", "Storage"),
	wire.Bind(new(IMessageService), new(*MessageService)),

	wire.Struct(new(FortuneService), "Config", "FortuneDAO"),
	wire.Bind(new(IFortuneService), new(*FortuneService)),

	wire.Struct(new(AdminService), "*"),
	wire.Bind(new(IAdminService), new(*AdminService)),

	NewStorage,
)
