package models

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IsFollowing reports whether userID follows targetID.
func IsFollowing(db *gorm.DB, userID, targetID uint) (bool, error) {
	var count int64
	err := db.Model(&Follow{}).
		Where("user_id = ? AND target_id = ?", userID, targetID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "check follow")
	}
	return count > 0, nil
}

// FollowingSetAmong returns the subset of candidates that userID follows, in one query.
func FollowingSetAmong(db *gorm.DB, userID uint, candidates []uint) (map[uint]bool, error) {
	following := make(map[uint]bool, len(candidates))
	if userID == 0 || len(candidates) == 0 {
		return following, nil
	}
	var ids []uint
	err := db.Model(&Follow{}).
		Where("user_id = ? AND target_id IN ?", userID, uniqueIDs(candidates)).
		Pluck("target_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "load following set")
	}
	for _, id := range ids {
		following[id] = true
	}
	return following, nil
}

// FollowCounts returns how many users userID follows and how many follow it,
// reading every edge touching the user once and partitioning by direction.
func FollowCounts(db *gorm.DB, userID uint) (following int64, followers int64, err error) {
	var edges []Follow
	err = db.Select("user_id", "target_id").
		Where("user_id = ? OR target_id = ?", userID, userID).
		Find(&edges).Error
	if err != nil {
		return 0, 0, errors.Wrap(err, "load follow counts")
	}
	for _, edge := range edges {
		if edge.UserID == userID {
			following++
		}
		if edge.TargetID == userID {
			followers++
		}
	}
	return following, followers, nil
}

// SaveFollow inserts the edge once; created is false when it already existed.
func (f *Follow) SaveFollow(db *gorm.DB) (bool, error) {
	if f.UserID == f.TargetID {
		return false, ErrSelfFollow
	}
	var created bool
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&User{}).Where("id = ?", f.TargetID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrUserNotFound
		}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(f)
		if result.Error != nil {
			return errors.Wrap(result.Error, "create follow")
		}
		created = result.RowsAffected > 0
		return nil
	})
	return created, err
}

// DeleteFollow removes the edge; removed is false when there was none.
func DeleteFollow(db *gorm.DB, userID, targetID uint) (bool, error) {
	result := db.Where("user_id = ? AND target_id = ?", userID, targetID).Delete(&Follow{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "delete follow")
	}
	return result.RowsAffected > 0, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
