package controllers

import (
	"github.com/5pponent/diary-server/api/models"

	"gorm.io/gorm"
)

// visibleFeed loads the feed and fails with models.ErrNotVisible when its show
// scope excludes the viewer.
func visibleFeed(db *gorm.DB, feedID, viewerID uint) (*models.Feed, error) {
	feed, err := models.FindFeed(db, feedID)
	if err != nil {
		return nil, err
	}
	allowed, _, err := models.CanViewFeed(db, viewerID, feed)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, models.ErrNotVisible
	}
	return feed, nil
}
