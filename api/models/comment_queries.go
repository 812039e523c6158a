package models

import "gorm.io/gorm"

// CommentView is a comment together with its figures for the viewer.
type CommentView struct {
	Comment Comment
	Info    CommentInfo
}

var commentListing = Listing{
	Key:   "comments.id",
	Order: "comments.id DESC",
	Load: func(db *gorm.DB) *gorm.DB {
		return db.Preload("Writer.ProfileImage")
	},
}

func commentID(c *Comment) uint { return c.ID }

// FindRootComments lists the top-level comments of a feed, optionally only those
// written by writerID.
func FindRootComments(db *gorm.DB, feedID, viewerID uint, writerID *uint, req PageRequest) ([]CommentView, PageInfo, error) {
	q := db.Model(&Comment{}).Where("comments.feed_id = ? AND comments.parent_id IS NULL", feedID)
	if writerID != nil {
		q = q.Where("comments.writer_id = ?", *writerID)
	}
	return listComments(db, q, viewerID, req)
}

// FindChildComments lists the direct replies of a comment.
func FindChildComments(db *gorm.DB, parentID, viewerID uint, req PageRequest) ([]CommentView, PageInfo, error) {
	q := db.Model(&Comment{}).Where("comments.parent_id = ?", parentID)
	return listComments(db, q, viewerID, req)
}

func listComments(db, q *gorm.DB, viewerID uint, req PageRequest) ([]CommentView, PageInfo, error) {
	comments, info, err := Paginate(q, req, commentListing, commentID)
	if err != nil {
		return nil, info, err
	}
	infos, err := LoadCommentInfos(db, viewerID, comments)
	if err != nil {
		return nil, info, err
	}
	byID := make(map[uint]CommentInfo, len(infos))
	for _, ci := range infos {
		byID[ci.CommentID] = ci
	}
	views := make([]CommentView, len(comments))
	for i, comment := range comments {
		views[i] = CommentView{Comment: comment, Info: byID[comment.ID]}
	}
	return views, info, nil
}
