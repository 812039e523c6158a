package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/5pponent/diary-server/api/models"
	"github.com/5pponent/diary-server/api/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const feedPageSize = 10

type createFeedForm struct {
	Content      string   `form:"content"`
	ShowScope    string   `form:"showScope" binding:"oneof=all follower me"`
	Descriptions []string `form:"descriptions"`
}

type updateFeedRequest struct {
	Content      string   `json:"content"`
	ShowScope    string   `json:"showScope"`
	Images       []uint   `json:"images"`
	Descriptions []string `json:"descriptions"`
}

// CreateFeed stores the uploaded images in upload order and saves the feed.
func (server *Server) CreateFeed(c *gin.Context) {
	writerID := httpctx.ViewerID(c)
	var form createFeedForm
	if err := c.ShouldBind(&form); err != nil {
		respondError(c, models.ErrInvalidShowScope)
		return
	}

	var headers []*multipart.FileHeader
	if mf, err := c.MultipartForm(); err == nil {
		headers = mf.File["images"]
	} else if !errors.Is(err, http.ErrNotMultipart) {
		respondMessage(c, http.StatusBadRequest, "Invalid_file", "Invalid form")
		return
	}

	feed := models.Feed{WriterID: writerID, Content: form.Content, ShowScope: form.ShowScope}
	feed.Prepare()
	if errorMessages := feed.Validate(len(headers)); len(errorMessages) > 0 {
		respondErrors(c, http.StatusUnprocessableEntity, errorMessages)
		return
	}

	ctx := c.Request.Context()
	for i, header := range headers {
		file, err := server.storeImage(ctx, header, feedImagePrefix, maxImageSize)
		if err != nil {
			server.removeStoredFiles(ctx, feed.Files)
			status, message := uploadErrorMessage(err)
			respondMessage(c, status, "Invalid_file", message)
			return
		}
		if i < len(form.Descriptions) {
			file.Description = form.Descriptions[i]
			file.Prepare()
		}
		file.Sequence = i
		feed.Files = append(feed.Files, file)
	}

	db := server.db(ctx)
	saved, err := feed.SaveFeed(db)
	if err != nil {
		server.removeStoredFiles(ctx, feed.Files)
		respondError(c, err)
		return
	}
	view, err := models.FindFeedView(db, saved.ID, writerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": feedViewToDTO(*view),
	})
}

// GetFeeds lists the feeds of ?userid (the viewer by default) that the viewer
// may see, optionally filtered by ?keyword.
func (server *Server) GetFeeds(c *gin.Context) {
	viewerID := httpctx.ViewerID(c)
	ownerID, ok := optionalQueryID(c, "userid")
	if !ok {
		return
	}
	if ownerID == nil {
		if viewerID == 0 {
			respondMessage(c, http.StatusBadRequest, "Invalid_request", "userid is required")
			return
		}
		ownerID = &viewerID
	}
	req, ok := pageRequest(c, feedPageSize)
	if !ok {
		return
	}
	keyword := c.Query("keyword")

	var (
		views []models.FeedView
		info  models.PageInfo
	)
	err := server.readTx(c.Request.Context(), func(tx *gorm.DB) error {
		if _, err := models.FindUserByID(tx, *ownerID); err != nil {
			return err
		}
		var err error
		views, info, err = models.FindFeedsByUser(tx, *ownerID, viewerID, keyword, req)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": feedPageToDTO(views, info),
	})
}

// GetAllFeeds lists every feed shown to everyone.
func (server *Server) GetAllFeeds(c *gin.Context) {
	req, ok := pageRequest(c, feedPageSize)
	if !ok {
		return
	}
	var (
		views []models.FeedView
		info  models.PageInfo
	)
	err := server.readTx(c.Request.Context(), func(tx *gorm.DB) error {
		var err error
		views, info, err = models.FindShowAllFeeds(tx, httpctx.ViewerID(c), req)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": feedPageToDTO(views, info),
	})
}

func (server *Server) GetFeed(c *gin.Context) {
	feedID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var view *models.FeedView
	err := server.readTx(c.Request.Context(), func(tx *gorm.DB) error {
		var err error
		view, err = models.FindFeedView(tx, feedID, httpctx.ViewerID(c))
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": feedViewToDTO(*view),
	})
}

// UpdateFeed edits the content and scope, keeps the listed images in the given
// order and drops the rest.
func (server *Server) UpdateFeed(c *gin.Context) {
	writerID := httpctx.ViewerID(c)
	feedID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusUnprocessableEntity, "Invalid_request", "Cannot unmarshal body")
		return
	}
	scope, err := models.ParseShowScope(req.ShowScope)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	db := server.db(ctx)
	_, removed, err := models.UpdateFeed(db, feedID, writerID, models.FeedUpdate{
		Content:      req.Content,
		ShowScope:    scope,
		Files:        req.Images,
		Descriptions: req.Descriptions,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	server.removeStoredFiles(ctx, removed)

	view, err := models.FindFeedView(db, feedID, writerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": feedViewToDTO(*view),
	})
}

// DeleteFeed removes the feed with its comments, likes and images.
func (server *Server) DeleteFeed(c *gin.Context) {
	writerID := httpctx.ViewerID(c)
	feedID, ok := pathID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	files, err := models.DeleteFeed(server.db(ctx), feedID, writerID)
	if err != nil {
		respondError(c, err)
		return
	}
	server.removeStoredFiles(ctx, files)
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Feed deleted",
	})
}
