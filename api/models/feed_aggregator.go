package models

import "gorm.io/gorm"

// FeedInfo holds the per-viewer figures shown next to a feed.
type FeedInfo struct {
	FeedID       uint
	CommentCount int64
	LikeCount    int64
	IsLiked      bool
	// IsFollowed is set only when writer follow status was requested.
	IsFollowed *bool
}

// LoadFeedInfos computes the figures for a page of feeds with at most four
// queries, independent of the page length. The result is aligned with feeds by
// id. With withWriterFollow the viewer's follow status of each writer is added.
func LoadFeedInfos(db *gorm.DB, viewerID uint, feeds []Feed, withWriterFollow bool) ([]FeedInfo, error) {
	if len(feeds) == 0 {
		return []FeedInfo{}, nil
	}
	ids := make([]uint, len(feeds))
	writers := make([]uint, len(feeds))
	for i, feed := range feeds {
		ids[i] = feed.ID
		writers[i] = feed.WriterID
	}

	comments, err := countGrouped(db, &Comment{}, "feed_id", ids)
	if err != nil {
		return nil, err
	}
	likes, err := countGrouped(db, &FeedLike{}, "feed_id", ids)
	if err != nil {
		return nil, err
	}
	liked, err := likedAmong(db, &FeedLike{}, "feed_id", viewerID, ids)
	if err != nil {
		return nil, err
	}
	var following map[uint]bool
	if withWriterFollow {
		if following, err = FollowingSetAmong(db, viewerID, writers); err != nil {
			return nil, err
		}
	}

	infos := make([]FeedInfo, len(feeds))
	for i, feed := range feeds {
		infos[i] = FeedInfo{
			FeedID:       feed.ID,
			CommentCount: comments[feed.ID],
			LikeCount:    likes[feed.ID],
			IsLiked:      liked[feed.ID],
		}
		if withWriterFollow {
			followed := following[feed.WriterID] || (viewerID != 0 && feed.WriterID == viewerID)
			infos[i].IsFollowed = &followed
		}
	}
	return infos, nil
}
