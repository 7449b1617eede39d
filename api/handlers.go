package api

import (
	"blogward/auth"
	"blogward/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, tokens *auth.Tokens) *routeHandlers {
	return &routeHandlers{
		authHandler: newAuthHandler(db.UserRepo(), db.RoleRepo(), tokens),
		blogHandler: newBlogHandler(db),
	}
}
