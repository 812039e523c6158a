package controllers

import (
	"net/http"

	"github.com/5pponent/diary-server/api/models"
	"github.com/5pponent/diary-server/api/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const followPageSize = 10

// FollowUser makes the authenticated user follow :id. Following twice is not
// an error.
func (server *Server) FollowUser(c *gin.Context) {
	requestorID, ok := httpctx.CurrentUserID(c)
	if !ok {
		respondMessage(c, http.StatusUnauthorized, "Unauthorized", "Unauthorized")
		return
	}
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}

	follow := models.Follow{UserID: requestorID, TargetID: targetID}
	created, err := follow.SaveFollow(server.db(c.Request.Context()))
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	message := "Already following user"
	if created {
		status = http.StatusCreated
		message = "User followed successfully"
	}
	c.JSON(status, gin.H{"status": status, "response": message})
}

func (server *Server) UnfollowUser(c *gin.Context) {
	requestorID, ok := httpctx.CurrentUserID(c)
	if !ok {
		respondMessage(c, http.StatusUnauthorized, "Unauthorized", "Unauthorized")
		return
	}
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if requestorID == targetID {
		respondError(c, models.ErrSelfFollow)
		return
	}

	removed, err := models.DeleteFollow(server.db(c.Request.Context()), requestorID, targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Not following user"
	if removed {
		message = "User unfollowed successfully"
	}
	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": message})
}

// GetFollowing lists who :id follows, by name, with the viewer's follow status.
func (server *Server) GetFollowing(c *gin.Context) {
	server.listFollows(c, models.FindFollowing)
}

// GetFollowers lists who follows :id, by name, with the viewer's follow status.
func (server *Server) GetFollowers(c *gin.Context) {
	server.listFollows(c, models.FindFollowers)
}

type followLister func(db *gorm.DB, userID, viewerID uint, req models.PageRequest) ([]models.UserView, models.PageInfo, error)

func (server *Server) listFollows(c *gin.Context, list followLister) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	req, ok := offsetPageRequest(c, followPageSize)
	if !ok {
		return
	}

	var (
		views []models.UserView
		info  models.PageInfo
	)
	err := server.readTx(c.Request.Context(), func(tx *gorm.DB) error {
		if _, err := models.FindUserByID(tx, userID); err != nil {
			return err
		}
		var err error
		views, info, err = list(tx, userID, httpctx.ViewerID(c), req)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userPageToDTO(views, info),
	})
}
