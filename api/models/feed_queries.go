package models

import (
	"strings"

	"gorm.io/gorm"
)

// FeedView is a feed together with its figures for the viewer.
type FeedView struct {
	Feed Feed
	Info FeedInfo
}

var feedListing = Listing{
	Key:   "feeds.id",
	Order: "feeds.id DESC",
	Load:  withFeedAssociations,
}

func feedID(f *Feed) uint { return f.ID }

// FindShowAllFeeds lists every feed shown to everyone, newest first.
func FindShowAllFeeds(db *gorm.DB, viewerID uint, req PageRequest) ([]FeedView, PageInfo, error) {
	q := PublicOnly(db.Model(&Feed{}))
	feeds, info, err := Paginate(q, req, feedListing, feedID)
	if err != nil {
		return nil, info, err
	}
	views, err := feedViews(db, viewerID, feeds, nil)
	return views, info, err
}

// FindFeedsByUser lists the owner's feeds visible to the viewer. A non-empty
// keyword matches the content or the description of any image.
func FindFeedsByUser(db *gorm.DB, ownerID, viewerID uint, keyword string, req PageRequest) ([]FeedView, PageInfo, error) {
	v, err := NewVisibility(db, viewerID, ownerID)
	if err != nil {
		return nil, PageInfo{}, err
	}
	q := v.Scope(db.Model(&Feed{}))
	if keyword = strings.TrimSpace(keyword); keyword != "" {
		like := "%" + escapeLike(keyword) + "%"
		q = q.Where(
			"(feeds.content LIKE ? ESCAPE '\\' OR EXISTS (SELECT 1 FROM files WHERE files.feed_id = feeds.id AND files.description LIKE ? ESCAPE '\\'))",
			like, like,
		)
	}
	feeds, info, err := Paginate(q, req, feedListing, feedID)
	if err != nil {
		return nil, info, err
	}
	following := v.Following
	views, err := feedViews(db, viewerID, feeds, &following)
	return views, info, err
}

// FindFeedView loads one feed for the viewer, enforcing its show scope.
func FindFeedView(db *gorm.DB, feedID, viewerID uint) (*FeedView, error) {
	feed, err := FindFeed(db, feedID)
	if err != nil {
		return nil, err
	}
	allowed, v, err := CanViewFeed(db, viewerID, feed)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrNotVisible
	}
	following := v.Following
	views, err := feedViews(db, viewerID, []Feed{*feed}, &following)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// feedViews pairs feeds with their figures. A nil writerFollowing resolves the
// viewer's follow status per writer; otherwise every feed shares the given one.
func feedViews(db *gorm.DB, viewerID uint, feeds []Feed, writerFollowing *bool) ([]FeedView, error) {
	infos, err := LoadFeedInfos(db, viewerID, feeds, writerFollowing == nil)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]FeedInfo, len(infos))
	for _, info := range infos {
		byID[info.FeedID] = info
	}
	views := make([]FeedView, len(feeds))
	for i, feed := range feeds {
		info := byID[feed.ID]
		if writerFollowing != nil {
			followed := *writerFollowing
			info.IsFollowed = &followed
		}
		views[i] = FeedView{Feed: feed, Info: info}
	}
	return views, nil
}

// UserView is a user together with the viewer's follow status of that user.
type UserView struct {
	User       User
	IsFollowed bool
}

// FindFeedLikeUsers lists the users who liked the feed, most recent like first.
func FindFeedLikeUsers(db *gorm.DB, feedID, viewerID uint, req PageRequest) ([]UserView, PageInfo, error) {
	q := db.Model(&FeedLike{}).Where("feed_likes.feed_id = ?", feedID)
	listing := Listing{
		Key:   "feed_likes.id",
		Order: "feed_likes.id DESC",
		Load: func(db *gorm.DB) *gorm.DB {
			return db.Preload("User.ProfileImage")
		},
	}
	likes, info, err := Paginate(q, req, listing, func(l *FeedLike) uint { return l.ID })
	if err != nil {
		return nil, info, err
	}
	users := make([]User, len(likes))
	for i, like := range likes {
		users[i] = like.User
	}
	views, err := userViews(db, viewerID, users)
	return views, info, err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
