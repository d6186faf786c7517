package router

import (
	"vibelink-backend/internal/handlers"
	"vibelink-backend/internal/middleware"
	"vibelink-backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Room        *handlers.RoomHandler
	Session     *handlers.SessionHandler
	Interaction *handlers.InteractionHandler
	WS          *handlers.WSHandler
	Health      *handlers.HealthHandler
}

func New(h Handlers, authService *services.AuthService) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws", h.WS.HandleWebSocket)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
		}

		me := api.Group("/me")
		me.Use(middleware.JWTAuth(authService))
		{
			me.GET("", h.User.GetProfile)
			me.PUT("", h.User.UpdateProfile)
			me.GET("/sessions", h.User.MySessions)
		}

		rooms := api.Group("/rooms")
		rooms.Use(middleware.JWTAuth(authService))
		{
			rooms.POST("", h.Room.CreateRoom)
			rooms.GET("", h.Room.ListRooms)
			rooms.GET("/:id", h.Room.GetRoom)
			rooms.POST("/:id/close", h.Room.CloseRoom)
		}

		sessions := api.Group("/sessions")
		sessions.Use(middleware.JWTAuth(authService))
		{
			sessions.POST("", h.Session.CreateSession)
			sessions.GET("", h.Session.ListSessions)
			sessions.GET("/:id", h.Session.GetSession)
			sessions.PATCH("/:id", h.Session.UpdateSession)
			sessions.POST("/:id/advance", h.Session.AdvanceRound)
			sessions.POST("/:id/end", h.Session.EndSession)
			sessions.GET("/:id/leaderboard", h.Session.GetLeaderboard)
			sessions.GET("/:id/matches", h.Session.GetMatches)
			sessions.POST("/:id/matches/recompute", h.Session.RecomputeMatches)
			sessions.POST("/:id/responses", h.Interaction.SubmitResponse)
			sessions.POST("/:id/messages", h.Interaction.PostMessage)
			sessions.GET("/:id/messages", h.Interaction.ListMessages)
			sessions.POST("/:id/memes", h.Interaction.UploadMeme)
			sessions.GET("/:id/memes", h.Interaction.ListMemes)
			sessions.POST("/:id/audience-votes", h.Interaction.CastAudienceVote)
		}

		memes := api.Group("/memes")
		memes.Use(middleware.JWTAuth(authService))
		{
			memes.POST("/:id/vote", h.Interaction.VoteMeme)
		}

		api.GET("/leaderboard", middleware.JWTAuth(authService), h.Session.PeriodLeaderboard)
	}

	return r
}
