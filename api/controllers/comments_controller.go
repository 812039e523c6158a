package controllers

import (
	"net/http"

	"github.com/5pponent/diary-server/api/models"
	"github.com/5pponent/diary-server/api/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const commentPageSize = 10

type commentRequest struct {
	Content string `json:"content"`
}

// GetComments lists the root comments of a feed, optionally only those of ?userid.
func (server *Server) GetComments(c *gin.Context) {
	feedID, ok := pathID(c, "id")
	if !ok {
		return
	}
	writerID, ok := optionalQueryID(c, "userid")
	if !ok {
		return
	}
	req, ok := pageRequest(c, commentPageSize)
	if !ok {
		return
	}
	viewerID := httpctx.ViewerID(c)

	var (
		views []models.CommentView
		info  models.PageInfo
	)
	err := server.readTx(c.Request.Context(), func(tx *gorm.DB) error {
		if _, err := visibleFeed(tx, feedID, viewerID); err != nil {
			return err
		}
		var err error
		views, info, err = models.FindRootComments(tx, feedID, viewerID, writerID, req)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": commentPageToDTO(views, info),
	})
}

// GetChildComments lists the direct replies of :commentId.
func (server *Server) GetChildComments(c *gin.Context) {
	feedID, ok := pathID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}
	req, ok := pageRequest(c, commentPageSize)
	if !ok {
		return
	}
	viewerID := httpctx.ViewerID(c)

	var (
		views []models.CommentView
		info  models.PageInfo
	)
	err := server.readTx(c.Request.Context(), func(tx *gorm.DB) error {
		if _, err := visibleFeed(tx, feedID, viewerID); err != nil {
			return err
		}
		if _, err := models.FindComment(tx, feedID, commentID); err != nil {
			return err
		}
		var err error
		views, info, err = models.FindChildComments(tx, commentID, viewerID, req)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": commentPageToDTO(views, info),
	})
}

func (server *Server) CreateComment(c *gin.Context) {
	server.createComment(c, nil)
}

// CreateReply answers :commentId one layer below it.
func (server *Server) CreateReply(c *gin.Context) {
	parentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}
	server.createComment(c, &parentID)
}

func (server *Server) createComment(c *gin.Context, parentID *uint) {
	writerID := httpctx.ViewerID(c)
	feedID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusUnprocessableEntity, "Invalid_request", "Cannot unmarshal body")
		return
	}

	comment := models.Comment{FeedID: feedID, ParentID: parentID, WriterID: writerID, Content: req.Content}
	comment.Prepare()
	if errorMessages := comment.Validate(); len(errorMessages) > 0 {
		respondErrors(c, http.StatusUnprocessableEntity, errorMessages)
		return
	}

	var saved *models.Comment
	err := server.db(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if _, err := visibleFeed(tx, feedID, writerID); err != nil {
			return err
		}
		var err error
		saved, err = comment.SaveComment(tx)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	view := models.CommentView{
		Comment: *saved,
		Info:    models.CommentInfo{CommentID: saved.ID, IsFollowed: true},
	}
	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": commentViewToDTO(view),
	})
}

func (server *Server) UpdateComment(c *gin.Context) {
	writerID := httpctx.ViewerID(c)
	feedID, ok := pathID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusUnprocessableEntity, "Invalid_request", "Cannot unmarshal body")
		return
	}
	edit := models.Comment{FeedID: feedID, WriterID: writerID, Content: req.Content}
	edit.Prepare()
	if errorMessages := edit.Validate(); len(errorMessages) > 0 {
		respondErrors(c, http.StatusUnprocessableEntity, errorMessages)
		return
	}

	db := server.db(c.Request.Context())
	updated, err := models.UpdateComment(db, feedID, commentID, writerID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	infos, err := models.LoadCommentInfos(db, writerID, []models.Comment{*updated})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": commentViewToDTO(models.CommentView{Comment: *updated, Info: infos[0]}),
	})
}

// DeleteComment removes the comment with all of its replies and their likes.
func (server *Server) DeleteComment(c *gin.Context) {
	writerID := httpctx.ViewerID(c)
	feedID, ok := pathID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}
	if err := models.DeleteComment(server.db(c.Request.Context()), feedID, commentID, writerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Comment deleted",
	})
}
