package models

import (
	"html"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Comment belongs to a feed. Root comments have no parent and Layer 1; a reply
// sits one layer below its parent.
type Comment struct {
	ID        uint          `gorm:"primary_key;autoIncrement" json:"id"`
	FeedID    uint          `gorm:"not null;index" json:"feed_id"`
	ParentID  *uint         `gorm:"index" json:"parent_id"`
	WriterID  uint          `gorm:"not null;index" json:"writer_id"`
	Writer    User          `gorm:"foreignKey:WriterID" json:"writer"`
	Content   string        `gorm:"type:text;not null" json:"content"`
	Layer     int           `gorm:"not null;default:1" json:"layer"`
	Children  []Comment     `gorm:"foreignKey:ParentID" json:"-"`
	Likes     []CommentLike `gorm:"foreignKey:CommentID" json:"-"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (c *Comment) Prepare() {
	c.ID = 0
	c.Content = html.EscapeString(strings.TrimSpace(c.Content))
	c.Writer = User{}
}

func (c *Comment) Validate() map[string]string {
	var errorMessages = make(map[string]string)

	if c.Content == "" {
		errorMessages["Required_content"] = "Content is required"
	}
	if c.WriterID == 0 {
		errorMessages["Required_writer"] = "Writer is required"
	}
	if c.FeedID == 0 {
		errorMessages["Required_feed"] = "Feed is required"
	}
	return errorMessages
}

// SaveComment inserts a root comment, or a reply when ParentID is set. A reply's
// parent must belong to the same feed.
func (c *Comment) SaveComment(db *gorm.DB) (*Comment, error) {
	c.Layer = 1
	if c.ParentID != nil {
		parent, err := FindComment(db, c.FeedID, *c.ParentID)
		if err != nil {
			return nil, err
		}
		c.Layer = parent.Layer + 1
	}
	if err := db.Omit("Writer").Create(c).Error; err != nil {
		return nil, errors.Wrap(err, "create comment")
	}
	return findCommentWithWriter(db, c.ID)
}

// FindComment loads the comment and checks that it belongs to the feed.
func FindComment(db *gorm.DB, feedID, commentID uint) (*Comment, error) {
	comment, err := findCommentWithWriter(db, commentID)
	if err != nil {
		return nil, err
	}
	if comment.FeedID != feedID {
		return nil, ErrCommentNotInFeed
	}
	return comment, nil
}

func findCommentWithWriter(db *gorm.DB, commentID uint) (*Comment, error) {
	var comment Comment
	err := db.Preload("Writer.ProfileImage").Where("comments.id = ?", commentID).Take(&comment).Error
	if err != nil {
		return nil, notFoundOr(err, ErrCommentNotFound)
	}
	return &comment, nil
}

func UpdateComment(db *gorm.DB, feedID, commentID, writerID uint, content string) (*Comment, error) {
	comment, err := FindComment(db, feedID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.WriterID != writerID {
		return nil, ErrUnauthorized
	}
	err = db.Model(&Comment{}).Where("id = ?", commentID).Updates(map[string]interface{}{
		"content":    html.EscapeString(strings.TrimSpace(content)),
		"updated_at": time.Now(),
	}).Error
	if err != nil {
		return nil, errors.Wrap(err, "update comment")
	}
	return findCommentWithWriter(db, commentID)
}

// DeleteComment removes the comment of the writer, every reply below it and their likes.
func DeleteComment(db *gorm.DB, feedID, commentID, writerID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		comment, err := FindComment(tx, feedID, commentID)
		if err != nil {
			return err
		}
		if comment.WriterID != writerID {
			return ErrUnauthorized
		}
		return deleteCommentTrees(tx, []uint{commentID})
	})
}
