package httpctx

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCurrentUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := CurrentUserID(c)
	assert.False(t, ok)
	assert.Equal(t, uint(0), ViewerID(c))

	SetUserID(c, 12)
	uid, ok := CurrentUserID(c)
	assert.True(t, ok)
	assert.Equal(t, uint(12), uid)
	assert.Equal(t, uint(12), ViewerID(c))

	c.Set(userIDKey, "12")
	_, ok = CurrentUserID(c)
	assert.False(t, ok)
}
