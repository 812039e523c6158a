package controllers

import (
	"net/http"

	"github.com/5pponent/diary-server/api/models"
	"github.com/5pponent/diary-server/api/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const likePageSize = 10

// GetFeedLikes lists the users who liked a feed, most recent first.
func (server *Server) GetFeedLikes(c *gin.Context) {
	feedID, ok := pathID(c, "id")
	if !ok {
		return
	}
	req, ok := pageRequest(c, likePageSize)
	if !ok {
		return
	}
	viewerID := httpctx.ViewerID(c)

	var (
		views []models.UserView
		info  models.PageInfo
	)
	err := server.readTx(c.Request.Context(), func(tx *gorm.DB) error {
		if _, err := visibleFeed(tx, feedID, viewerID); err != nil {
			return err
		}
		var err error
		views, info, err = models.FindFeedLikeUsers(tx, feedID, viewerID, req)
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

func (server *Server) LikeFeed(c *gin.Context) {
	userID := httpctx.ViewerID(c)
	feedID, ok := pathID(c, "id")
	if !ok {
		return
	}

	created := false
	err := server.db(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if _, err := visibleFeed(tx, feedID, userID); err != nil {
			return err
		}
		var err error
		created, err = models.LikeFeed(tx, userID, feedID)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondLike(c, created, "Feed liked successfully", "Already liked feed")
}

func (server *Server) UnlikeFeed(c *gin.Context) {
	userID := httpctx.ViewerID(c)
	feedID, ok := pathID(c, "id")
	if !ok {
		return
	}
	removed, err := models.UnlikeFeed(server.db(c.Request.Context()), userID, feedID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondUnlike(c, removed, "Feed unliked successfully", "Feed was not liked")
}

func (server *Server) LikeComment(c *gin.Context) {
	userID := httpctx.ViewerID(c)
	feedID, ok := pathID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	created := false
	err := server.db(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if _, err := visibleFeed(tx, feedID, userID); err != nil {
			return err
		}
		if _, err := models.FindComment(tx, feedID, commentID); err != nil {
			return err
		}
		var err error
		created, err = models.LikeComment(tx, userID, commentID)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondLike(c, created, "Comment liked successfully", "Already liked comment")
}

func (server *Server) UnlikeComment(c *gin.Context) {
	userID := httpctx.ViewerID(c)
	feedID, ok := pathID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	db := server.db(c.Request.Context())
	if _, err := models.FindComment(db, feedID, commentID); err != nil {
		respondError(c, err)
		return
	}
	removed, err := models.UnlikeComment(db, userID, commentID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondUnlike(c, removed, "Comment unliked successfully", "Comment was not liked")
}

func respondLike(c *gin.Context, created bool, createdMessage, existingMessage string) {
	status := http.StatusOK
	message := existingMessage
	if created {
		status = http.StatusCreated
		message = createdMessage
	}
	c.JSON(status, gin.H{"status": status, "response": message})
}

func respondUnlike(c *gin.Context, removed bool, removedMessage, missingMessage string) {
	message := missingMessage
	if removed {
		message = removedMessage
	}
	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": message})
}
