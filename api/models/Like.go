package models

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FeedLike struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_feed_likes_user_feed" json:"user_id"`
	FeedID    uint      `gorm:"not null;index;uniqueIndex:idx_feed_likes_user_feed" json:"feed_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type CommentLike struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_likes_user_comment" json:"user_id"`
	CommentID uint      `gorm:"not null;index;uniqueIndex:idx_comment_likes_user_comment" json:"comment_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// LikeFeed records the like once; created is false when it already existed.
func LikeFeed(db *gorm.DB, userID, feedID uint) (bool, error) {
	like := FeedLike{UserID: userID, FeedID: feedID}
	result := db.Omit("User").Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "like feed")
	}
	return result.RowsAffected > 0, nil
}

func UnlikeFeed(db *gorm.DB, userID, feedID uint) (bool, error) {
	result := db.Where("user_id = ? AND feed_id = ?", userID, feedID).Delete(&FeedLike{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "unlike feed")
	}
	return result.RowsAffected > 0, nil
}

func LikeComment(db *gorm.DB, userID, commentID uint) (bool, error) {
	like := CommentLike{UserID: userID, CommentID: commentID}
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "like comment")
	}
	return result.RowsAffected > 0, nil
}

func UnlikeComment(db *gorm.DB, userID, commentID uint) (bool, error) {
	result := db.Where("user_id = ? AND comment_id = ?", userID, commentID).Delete(&CommentLike{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "unlike comment")
	}
	return result.RowsAffected > 0, nil
}

func CountFeedLikes(db *gorm.DB, feedID uint) (int64, error) {
	var count int64
	err := db.Model(&FeedLike{}).Where("feed_id = ?", feedID).Count(&count).Error
	return count, err
}

func CountCommentLikes(db *gorm.DB, commentID uint) (int64, error) {
	var count int64
	err := db.Model(&CommentLike{}).Where("comment_id = ?", commentID).Count(&count).Error
	return count, err
}

// CountFeedComments counts every comment of the feed, children included.
func CountFeedComments(db *gorm.DB, feedID uint) (int64, error) {
	var count int64
	err := db.Model(&Comment{}).Where("feed_id = ?", feedID).Count(&count).Error
	return count, err
}
