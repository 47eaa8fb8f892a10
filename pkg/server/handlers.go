package server

import (
	"Scribe/handler"
)

type Handlers struct {
	Auth     *handler.Auth
	User     *handler.User
	Document *handler.Document
	Comment  *handler.Comment
	Message  *handler.Message
	Fortune  *handler.Fortune
	Admin    *handler.Admin
}
