package middlewares

import (
	"net/http"

	"github.com/5pponent/diary-server/api/auth"
	"github.com/5pponent/diary-server/api/models"
	"github.com/5pponent/diary-server/api/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TokenAuthMiddleware rejects requests without a valid token for an existing user.
func TokenAuthMiddleware(db *gorm.DB, tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := tokens.ExtractTokenID(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
			return
		}

		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil || count == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
			return
		}

		httpctx.SetUserID(c, userID)
		c.Next()
	}
}

// OptionalAuthMiddleware records the viewer when a valid token is present and
// lets anonymous requests through.
func OptionalAuthMiddleware(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.ExtractToken(c.Request) != "" {
			if userID, err := tokens.ExtractTokenID(c.Request); err == nil {
				httpctx.SetUserID(c, userID)
			}
		}
		c.Next()
	}
}

// CORSMiddleware echoes the request origin when it is one of the configured
// frontend origins.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		for _, o := range allowedOrigins {
			if origin != "" && o == origin {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				break
			}
		}

		c.Writer.Header().Set("Vary", "Origin")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Authorization, Content-Length, X-CSRF-Token, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods",
			"POST, GET, OPTIONS, PUT, PATCH, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
