package models

import (
	"strings"

	"gorm.io/gorm"
)

var userNameListing = Listing{
	Key:   "users.id",
	Order: "users.name ASC, users.id ASC",
	Load: func(db *gorm.DB) *gorm.DB {
		return db.Preload("ProfileImage")
	},
}

func userID(u *User) uint { return u.ID }

// FindFollowing lists the users userID follows, by name.
func FindFollowing(db *gorm.DB, userID, viewerID uint, req PageRequest) ([]UserView, PageInfo, error) {
	q := db.Model(&User{}).
		Joins("JOIN follows ON follows.target_id = users.id").
		Where("follows.user_id = ?", userID)
	return listUsers(db, q, viewerID, req, userNameListing)
}

// FindFollowers lists the users following userID, by name.
func FindFollowers(db *gorm.DB, userID, viewerID uint, req PageRequest) ([]UserView, PageInfo, error) {
	q := db.Model(&User{}).
		Joins("JOIN follows ON follows.user_id = users.id").
		Where("follows.target_id = ?", userID)
	return listUsers(db, q, viewerID, req, userNameListing)
}

// SearchUsers matches users whose e-mail starts with the keyword or whose name
// contains it, in registration order.
func SearchUsers(db *gorm.DB, keyword string, viewerID uint, req PageRequest) ([]UserView, PageInfo, error) {
	keyword = escapeLike(strings.TrimSpace(keyword))
	q := db.Model(&User{}).Where(
		"(users.email LIKE ? ESCAPE '\\' OR users.name LIKE ? ESCAPE '\\')",
		strings.ToLower(keyword)+"%", "%"+keyword+"%",
	)
	listing := userNameListing
	listing.Order = "users.id ASC"
	return listUsers(db, q, viewerID, req, listing)
}

func listUsers(db, q *gorm.DB, viewerID uint, req PageRequest, listing Listing) ([]UserView, PageInfo, error) {
	users, info, err := Paginate(q, req, listing, userID)
	if err != nil {
		return nil, info, err
	}
	views, err := userViews(db, viewerID, users)
	return views, info, err
}

func userViews(db *gorm.DB, viewerID uint, users []User) ([]UserView, error) {
	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	following, err := FollowingSetAmong(db, viewerID, ids)
	if err != nil {
		return nil, err
	}
	views := make([]UserView, len(users))
	for i, u := range users {
		views[i] = UserView{User: u, IsFollowed: following[u.ID]}
	}
	return views, nil
}

// UserDetail is a profile with its follow figures for the viewer.
type UserDetail struct {
	User           User
	FollowingCount int64
	FollowerCount  int64
	IsFollowed     bool
}

func FindUserDetail(db *gorm.DB, userID, viewerID uint) (*UserDetail, error) {
	user, err := FindUserByID(db, userID)
	if err != nil {
		return nil, err
	}
	following, followers, err := FollowCounts(db, userID)
	if err != nil {
		return nil, err
	}
	detail := &UserDetail{User: *user, FollowingCount: following, FollowerCount: followers}
	if viewerID == userID {
		detail.IsFollowed = true
	} else if viewerID != 0 {
		if detail.IsFollowed, err = IsFollowing(db, viewerID, userID); err != nil {
			return nil, err
		}
	}
	return detail, nil
}
