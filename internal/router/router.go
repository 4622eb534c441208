package router

import (
	"time"

	"ldcomedy/config"
	"ldcomedy/internal/handler"
	"ldcomedy/internal/middleware"
	"ldcomedy/internal/repository"
	"ldcomedy/internal/service"
	"ldcomedy/internal/ws"
	"ldcomedy/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	artistRepo := repository.NewArtistRepository(db)
	theaterRepo := repository.NewTheaterRepository(db)
	favRepo := repository.NewFavoriteRepository(db)
	posterRepo := repository.NewPosterRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	messageHub := ws.NewHub()

	// Services
	authSvc := service.NewAuthService(cfg, userRepo, artistRepo, theaterRepo)
	relationshipSvc := service.NewRelationshipService(favRepo, artistRepo, theaterRepo)
	notifSvc := service.NewNotificationService(posterRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc)
	favoriteHandler := handler.NewFavoriteHandler(relationshipSvc)
	profileHandler := handler.NewProfileHandler(artistRepo, theaterRepo, userRepo, cloud)
	posterHandler := handler.NewPosterHandler(posterRepo, cloud)
	messageHandler := handler.NewMessageHandler(messageRepo, artistRepo, theaterRepo, messageHub)
	meHandler := handler.NewMeHandler(favRepo, posterRepo, messageRepo, notifSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)
	profileMw := middleware.ProfileRequired(artistRepo, theaterRepo)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authMw, authHandler.Logout)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
			authGroup.POST("/google/token", googleOAuthHandler.Token)
		}

		// Public browsing
		api.GET("/artists", authMw, profileHandler.ListArtists)
		api.GET("/artists/:id", authMw, profileHandler.GetArtist)
		api.GET("/theaters", authMw, profileHandler.ListTheaters)
		api.GET("/theaters/:id", authMw, profileHandler.GetTheater)

		// Favorite / friendship edges (needs a resolved profile)
		fav := api.Group("/favorite")
		fav.Use(authMw, profileMw)
		{
			fav.POST("", favoriteHandler.Send)
			fav.DELETE("", favoriteHandler.Remove)
			fav.POST("/accept", favoriteHandler.Accept)
			fav.POST("/reject", favoriteHandler.Reject)
			fav.GET("/friends", favoriteHandler.ListFriends)
			fav.GET("/requests", favoriteHandler.ListIncoming)
			fav.GET("/sent", favoriteHandler.ListOutgoing)
			fav.GET("/check", favoriteHandler.Check)
		}

		me := api.Group("/me")
		me.Use(authMw, profileMw)
		{
			me.GET("/profile", profileHandler.GetMine)
			me.PUT("/profile", profileHandler.UpdateMine)
			me.POST("/profile/image", profileHandler.UploadImage)
			me.GET("/dashboard", meHandler.Dashboard)
			me.GET("/notifications", meHandler.Notifications)
			me.GET("/unread-count", messageHandler.UnreadCount)
		}

		// Affiches
		posters := api.Group("/posters")
		posters.Use(authMw)
		{
			posters.POST("", posterHandler.Create)
			posters.GET("", posterHandler.Feed)
			posters.GET("/:id", posterHandler.Get)
			posters.DELETE("/:id", posterHandler.Delete)
			posters.POST("/:id/comments", posterHandler.AddComment)
			posters.GET("/:id/comments", posterHandler.ListComments)
			posters.POST("/:id/like", posterHandler.ToggleLike)
		}

		// Direct messages
		conversations := api.Group("/conversations")
		conversations.Use(authMw, profileMw)
		{
			conversations.POST("", messageHandler.Open)
			conversations.GET("", messageHandler.List)
			conversations.GET("/:id/messages", messageHandler.Messages)
			conversations.POST("/:id/messages", messageHandler.Send)
		}
	}

	r.GET("/ws/messages", handler.UpgradeMessageWS(&cfg.JWT, messageHub, messageRepo, artistRepo, theaterRepo))

	return r
}
