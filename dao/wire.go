package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewUsers,
	NewDocumentDAO,
	NewLikeDAO,
	NewFavoriteDAO,
	NewComment,
	NewMessageDAO,
	NewFortuneDAO,
)
