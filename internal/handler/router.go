package handler

import (
	"github.com/Baaaki/screenshelf/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler of the API.
type Handlers struct {
	Auth    *AuthHandler
	User    *UserHandler
	Media   *MediaHandler
	Library *LibraryHandler
	Comment *CommentHandler
}

// RegisterRoutes mounts the API on api (normally /api/v1). Everything but
// /auth requires a bearer token.
func RegisterRoutes(api *gin.RouterGroup, h *Handlers, jwtSecret string) {
	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	// Protected routes (require JWT)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtSecret))

	users := protected.Group("/users")
	{
		users.GET("", middleware.AdminMiddleware(), h.User.ListUsers)
		users.GET("/me", h.User.Me)
		users.PUT("/me/profile", h.User.UpdateProfile)
		users.PUT("/me/privacy", h.User.UpdatePrivacy)
		users.PUT("/me/avatar", h.User.UpdateAvatar)
		users.GET("/:nickName", h.User.GetProfile)
		users.GET("/:nickName/media", h.User.ListUserMedia)
	}

	media := protected.Group("/media")
	{
		media.GET("", h.Media.ListMedia)
		media.POST("", h.Media.CreateMedia)
		media.GET("/search", h.Media.SearchMedia)
		media.GET("/bycategory", h.Media.ListByCategory)
		media.GET("/top/movies", h.Media.TopMovies)
		media.GET("/top/series", h.Media.TopSeries)
		media.GET("/ranking", h.Media.GlobalRanking)
		media.GET("/:id", h.Media.GetMedia)
		media.PUT("/:id", h.Media.UpdateMedia)
		media.DELETE("/:id", h.Media.DeleteMedia)
		media.POST("/:id/comments", h.Comment.CreateComment)
		media.GET("/:id/comments", h.Comment.ListMediaComments)
	}

	library := protected.Group("/library")
	{
		library.GET("", h.Library.ListLibrary)
		library.GET("/stats", h.Library.Stats)
		library.GET("/favorites", h.Library.ListFavorites)
		library.GET("/watched", h.Library.ListWatched)
		library.GET("/user/:nickName", h.Library.PublicLibrary)
		library.GET("/:mediaId", h.Library.GetEntry)
		library.POST("/:mediaId", h.Library.AddEntry)
		library.PUT("/:mediaId", h.Library.UpdateEntry)
		library.DELETE("/:mediaId", h.Library.RemoveEntry)
	}

	comments := protected.Group("/comments")
	{
		comments.GET("/user/:nickName", h.Comment.ListUserComments)
		comments.GET("/:commentId", h.Comment.GetComment)
		comments.PUT("/:commentId", h.Comment.UpdateComment)
		comments.DELETE("/:commentId", h.Comment.DeleteComment)
	}
}
