package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the auth and blog endpoints. Read endpoints resolve
// the caller leniently so drafts stay visible to their author; every
// mutating blog endpoint requires a valid token.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handlers.authHandler.register())
		r.Post("/login", handlers.authHandler.login())
		r.Post("/logout", handlers.authHandler.logout())
		r.Post("/role/create", handlers.authHandler.createRole())

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.require)
			r.Get("/me", handlers.authHandler.me())
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.optional)
			r.Get("/get_blog/{blogID}", handlers.blogHandler.getBlog())
			r.Get("/blogs", handlers.blogHandler.listBlogs())
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.require)
			r.Post("/add_post", handlers.blogHandler.addPost())
			r.Delete("/delete_blog/{blogID}", handlers.blogHandler.deleteBlog())
			r.Patch("/change_blog_status/{blogID}", handlers.blogHandler.changeBlogStatus())
		})
	})
}
