package httpctx

import "github.com/gin-gonic/gin"

const userIDKey = "userID"

// SetUserID records the authenticated user on the request.
func SetUserID(c *gin.Context, id uint) {
	c.Set(userIDKey, id)
}

// CurrentUserID retrieves the authenticated user ID from Gin context if present.
func CurrentUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	uid, ok := val.(uint)
	return uid, ok && uid != 0
}

// ViewerID is the authenticated user, or 0 for anonymous requests.
func ViewerID(c *gin.Context) uint {
	uid, _ := CurrentUserID(c)
	return uid
}
