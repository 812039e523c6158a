package models

import "gorm.io/gorm"

// CommentInfo holds the per-viewer figures shown next to a comment.
type CommentInfo struct {
	CommentID  uint
	ChildCount int64
	LikeCount  int64
	IsLiked    bool
	IsFollowed bool
}

// LoadCommentInfos computes the figures for a page of comments with at most
// four queries, aligned with comments by id. IsFollowed refers to the comment's
// writer.
func LoadCommentInfos(db *gorm.DB, viewerID uint, comments []Comment) ([]CommentInfo, error) {
	if len(comments) == 0 {
		return []CommentInfo{}, nil
	}
	ids := make([]uint, len(comments))
	writers := make([]uint, len(comments))
	for i, comment := range comments {
		ids[i] = comment.ID
		writers[i] = comment.WriterID
	}

	children, err := countGrouped(db, &Comment{}, "parent_id", ids)
	if err != nil {
		return nil, err
	}
	likes, err := countGrouped(db, &CommentLike{}, "comment_id", ids)
	if err != nil {
		return nil, err
	}
	liked, err := likedAmong(db, &CommentLike{}, "comment_id", viewerID, ids)
	if err != nil {
		return nil, err
	}
	following, err := FollowingSetAmong(db, viewerID, writers)
	if err != nil {
		return nil, err
	}

	infos := make([]CommentInfo, len(comments))
	for i, comment := range comments {
		infos[i] = CommentInfo{
			CommentID:  comment.ID,
			ChildCount: children[comment.ID],
			LikeCount:  likes[comment.ID],
			IsLiked:    liked[comment.ID],
			IsFollowed: following[comment.WriterID] || (viewerID != 0 && comment.WriterID == viewerID),
		}
	}
	return infos, nil
}
