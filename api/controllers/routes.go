package controllers

import (
	"net/http"

	"github.com/5pponent/diary-server/api/middlewares"

	"github.com/gin-gonic/gin"
)

func (s *Server) initializeRoutes() {
	requireAuth := middlewares.TokenAuthMiddleware(s.DB, s.Tokens)
	optionalAuth := middlewares.OptionalAuthMiddleware(s.Tokens)
	authLimit := middlewares.LoginRateLimitMiddleware()
	if !s.Config.Server.RateLimit {
		authLimit = func(c *gin.Context) { c.Next() }
	}

	s.Router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": "ok"})
	})
	s.Router.GET("/metrics", middlewares.MetricsHandler())

	v1 := s.Router.Group("/api/v1")
	{
		// Auth routes
		v1.POST("/auth/mail", authLimit, s.SendJoinMail)
		v1.POST("/auth/mail/check", authLimit, s.CheckMailCode)
		v1.POST("/join", authLimit, s.Join)
		v1.POST("/login", authLimit, s.Login)
		v1.POST("/login/mail", authLimit, s.LoginWithMail)

		// Occupation routes
		v1.GET("/occupations", s.GetOccupations)

		// Users routes
		v1.GET("/users", optionalAuth, s.SearchUsers)
		v1.GET("/users/:id", optionalAuth, s.GetUser)
		v1.PUT("/users/me/info", requireAuth, s.UpdateUserInfo)
		v1.PUT("/users/me/occupation", requireAuth, s.UpdateOccupation)
		v1.PUT("/users/me/interests", requireAuth, s.UpdateInterests)
		v1.PUT("/users/me/image", requireAuth, s.UpdateProfileImage)
		v1.PUT("/users/me/password", requireAuth, s.UpdatePassword)
		v1.DELETE("/users/me", requireAuth, s.DeleteUser)

		// Follow routes
		v1.POST("/users/:id/follow", requireAuth, s.FollowUser)
		v1.DELETE("/users/:id/follow", requireAuth, s.UnfollowUser)
		v1.GET("/users/:id/following", optionalAuth, s.GetFollowing)
		v1.GET("/users/:id/followers", optionalAuth, s.GetFollowers)

		// Feed routes
		v1.POST("/feeds", requireAuth, s.CreateFeed)
		v1.GET("/feeds", optionalAuth, s.GetFeeds)
		v1.GET("/feeds/all", optionalAuth, s.GetAllFeeds)
		v1.GET("/feeds/:id", optionalAuth, s.GetFeed)
		v1.PUT("/feeds/:id", requireAuth, s.UpdateFeed)
		v1.DELETE("/feeds/:id", requireAuth, s.DeleteFeed)

		// Feed like routes
		v1.GET("/feeds/:id/likes", optionalAuth, s.GetFeedLikes)
		v1.POST("/feeds/:id/likes", requireAuth, s.LikeFeed)
		v1.DELETE("/feeds/:id/likes", requireAuth, s.UnlikeFeed)

		// Comment routes
		v1.GET("/feeds/:id/comments", optionalAuth, s.GetComments)
		v1.POST("/feeds/:id/comments", requireAuth, s.CreateComment)
		v1.GET("/feeds/:id/comments/:commentId", optionalAuth, s.GetChildComments)
		v1.POST("/feeds/:id/comments/:commentId", requireAuth, s.CreateReply)
		v1.PUT("/feeds/:id/comments/:commentId", requireAuth, s.UpdateComment)
		v1.DELETE("/feeds/:id/comments/:commentId", requireAuth, s.DeleteComment)

		// Comment like routes
		v1.POST("/feeds/:id/comments/:commentId/likes", requireAuth, s.LikeComment)
		v1.DELETE("/feeds/:id/comments/:commentId/likes", requireAuth, s.UnlikeComment)
	}
}
