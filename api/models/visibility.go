package models

import (
	"regexp"
	"strings"

	"gorm.io/gorm"
)

const (
	ShowAll       = "all"
	ShowFollowers = "follower"
	ShowMe        = "me"
)

var showScopePattern = regexp.MustCompile(`^(all|follower|me)$`)

func ValidShowScope(scope string) bool {
	return showScopePattern.MatchString(scope)
}

func ParseShowScope(raw string) (string, error) {
	scope := strings.TrimSpace(raw)
	if !ValidShowScope(scope) {
		return "", ErrInvalidShowScope
	}
	return scope, nil
}

// Visibility decides which of an owner's feeds a viewer may see. Viewing one's
// own feeds always counts as following.
type Visibility struct {
	ViewerID  uint
	OwnerID   uint
	Following bool
}

func NewVisibility(db *gorm.DB, viewerID, ownerID uint) (Visibility, error) {
	v := Visibility{ViewerID: viewerID, OwnerID: ownerID}
	if viewerID != 0 && viewerID == ownerID {
		v.Following = true
		return v, nil
	}
	if viewerID == 0 {
		return v, nil
	}
	following, err := IsFollowing(db, viewerID, ownerID)
	if err != nil {
		return v, err
	}
	v.Following = following
	return v, nil
}

func (v Visibility) Self() bool {
	return v.ViewerID != 0 && v.ViewerID == v.OwnerID
}

// Scopes lists the show scopes visible to the viewer.
func (v Visibility) Scopes() []string {
	switch {
	case v.Self():
		return []string{ShowAll, ShowFollowers, ShowMe}
	case v.Following:
		return []string{ShowAll, ShowFollowers}
	default:
		return []string{ShowAll}
	}
}

func (v Visibility) Allows(scope string) bool {
	for _, s := range v.Scopes() {
		if s == scope {
			return true
		}
	}
	return false
}

// Scope restricts a feeds query to the owner's feeds the viewer may see.
func (v Visibility) Scope(db *gorm.DB) *gorm.DB {
	return db.Where("feeds.writer_id = ? AND feeds.show_scope IN ?", v.OwnerID, v.Scopes())
}

// PublicOnly restricts a feeds query to feeds shown to everyone.
func PublicOnly(db *gorm.DB) *gorm.DB {
	return db.Where("feeds.show_scope = ?", ShowAll)
}

// CanViewFeed applies the visibility rule of the feed's writer to one feed.
func CanViewFeed(db *gorm.DB, viewerID uint, feed *Feed) (bool, Visibility, error) {
	v, err := NewVisibility(db, viewerID, feed.WriterID)
	if err != nil {
		return false, v, err
	}
	return v.Allows(feed.ShowScope), v, nil
}
