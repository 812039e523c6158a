package models

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// deleteCommentTrees removes the given comments, all of their descendants and
// every like on them. It must run inside a transaction.
func deleteCommentTrees(tx *gorm.DB, rootIDs []uint) error {
	if len(rootIDs) == 0 {
		return nil
	}
	all := append([]uint(nil), rootIDs...)
	frontier := rootIDs
	for len(frontier) > 0 {
		var children []uint
		if err := tx.Model(&Comment{}).Where("parent_id IN ?", frontier).Pluck("id", &children).Error; err != nil {
			return errors.Wrap(err, "collect replies")
		}
		all = append(all, children...)
		frontier = children
	}
	return deleteComments(tx, all)
}

func deleteComments(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("comment_id IN ?", ids).Delete(&CommentLike{}).Error; err != nil {
		return errors.Wrap(err, "delete comment likes")
	}
	// Replies first so parent references never dangle.
	if err := tx.Where("id IN ? AND parent_id IS NOT NULL", ids).Delete(&Comment{}).Error; err != nil {
		return errors.Wrap(err, "delete replies")
	}
	if err := tx.Where("id IN ?", ids).Delete(&Comment{}).Error; err != nil {
		return errors.Wrap(err, "delete comments")
	}
	return nil
}

// deleteFeeds removes the feeds with their comments, likes and files, returning
// the removed file rows. It must run inside a transaction.
func deleteFeeds(tx *gorm.DB, feedIDs []uint) ([]File, error) {
	if len(feedIDs) == 0 {
		return nil, nil
	}
	var commentIDs []uint
	if err := tx.Model(&Comment{}).Where("feed_id IN ?", feedIDs).Pluck("id", &commentIDs).Error; err != nil {
		return nil, errors.Wrap(err, "collect feed comments")
	}
	if err := deleteComments(tx, commentIDs); err != nil {
		return nil, err
	}
	if err := tx.Where("feed_id IN ?", feedIDs).Delete(&FeedLike{}).Error; err != nil {
		return nil, errors.Wrap(err, "delete feed likes")
	}
	var files []File
	if err := tx.Where("feed_id IN ?", feedIDs).Find(&files).Error; err != nil {
		return nil, errors.Wrap(err, "collect feed files")
	}
	if err := tx.Where("feed_id IN ?", feedIDs).Delete(&File{}).Error; err != nil {
		return nil, errors.Wrap(err, "delete feed files")
	}
	if err := tx.Where("id IN ?", feedIDs).Delete(&Feed{}).Error; err != nil {
		return nil, errors.Wrap(err, "delete feeds")
	}
	return files, nil
}

// DeleteUser removes the user and everything that hangs off it: its feeds, its
// comments with their replies, its likes, its follow edges and its profile
// image. The removed file rows are returned so their objects can be deleted.
func DeleteUser(db *gorm.DB, userID uint) ([]File, error) {
	var files []File
	err := db.Transaction(func(tx *gorm.DB) error {
		user, err := FindUserByID(tx, userID)
		if err != nil {
			return err
		}

		var feedIDs []uint
		if err := tx.Model(&Feed{}).Where("writer_id = ?", userID).Pluck("id", &feedIDs).Error; err != nil {
			return errors.Wrap(err, "collect user feeds")
		}
		if files, err = deleteFeeds(tx, feedIDs); err != nil {
			return err
		}

		var commentIDs []uint
		if err := tx.Model(&Comment{}).Where("writer_id = ?", userID).Pluck("id", &commentIDs).Error; err != nil {
			return errors.Wrap(err, "collect user comments")
		}
		if err := deleteCommentTrees(tx, commentIDs); err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&FeedLike{}).Error; err != nil {
			return errors.Wrap(err, "delete user feed likes")
		}
		if err := tx.Where("user_id = ?", userID).Delete(&CommentLike{}).Error; err != nil {
			return errors.Wrap(err, "delete user comment likes")
		}
		if err := tx.Where("user_id = ? OR target_id = ?", userID, userID).Delete(&Follow{}).Error; err != nil {
			return errors.Wrap(err, "delete follow edges")
		}
		if err := tx.Delete(&User{}, userID).Error; err != nil {
			return errors.Wrap(err, "delete user")
		}
		if user.ProfileImage != nil {
			if err := tx.Delete(&File{}, user.ProfileImage.ID).Error; err != nil {
				return errors.Wrap(err, "delete profile image")
			}
			files = append(files, *user.ProfileImage)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
