package models

import (
	"html"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Feed struct {
	ID        uint       `gorm:"primary_key;autoIncrement" json:"id"`
	WriterID  uint       `gorm:"not null;index" json:"writer_id"`
	Writer    User       `gorm:"foreignKey:WriterID" json:"writer"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	ShowScope string     `gorm:"size:16;not null;index" json:"show_scope"`
	Files     []File     `gorm:"foreignKey:FeedID" json:"files"`
	Comments  []Comment  `gorm:"foreignKey:FeedID" json:"-"`
	Likes     []FeedLike `gorm:"foreignKey:FeedID" json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (f *Feed) Prepare() {
	f.ID = 0
	f.Content = html.EscapeString(strings.TrimSpace(f.Content))
	f.ShowScope = strings.TrimSpace(f.ShowScope)
	f.Writer = User{}
	for i := range f.Files {
		f.Files[i].Prepare()
		f.Files[i].Sequence = i
	}
}

// Validate checks a prepared feed that will carry the given number of images.
func (f *Feed) Validate(images int) map[string]string {
	var errorMessages = make(map[string]string)

	if !hasBody(f.Content, images) {
		errorMessages["Required_content"] = ErrRequiredContent.Error()
	}
	if f.WriterID == 0 {
		errorMessages["Required_writer"] = "Writer is required"
	}
	if !ValidShowScope(f.ShowScope) {
		errorMessages["Invalid_show_scope"] = ErrInvalidShowScope.Error()
	}
	return errorMessages
}

// hasBody reports whether a feed has text or at least one image.
func hasBody(content string, images int) bool {
	return strings.TrimSpace(content) != "" || images > 0
}

// SaveFeed inserts the feed together with its files.
func (f *Feed) SaveFeed(db *gorm.DB) (*Feed, error) {
	if !ValidShowScope(f.ShowScope) {
		return nil, ErrInvalidShowScope
	}
	if err := db.Omit("Writer").Create(f).Error; err != nil {
		return nil, errors.Wrap(err, "create feed")
	}
	return FindFeed(db, f.ID)
}

// FindFeed loads the feed with its writer and its files ordered by sequence.
func FindFeed(db *gorm.DB, feedID uint) (*Feed, error) {
	var feed Feed
	err := withFeedAssociations(db).Where("feeds.id = ?", feedID).Take(&feed).Error
	if err != nil {
		return nil, notFoundOr(err, ErrFeedNotFound)
	}
	return &feed, nil
}

func withFeedAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Writer.ProfileImage").
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("files.sequence ASC, files.id ASC")
		})
}

// FeedUpdate describes an edit of a feed. Files lists the ids of the images
// to keep, in their new order; Descriptions is aligned with Files.
type FeedUpdate struct {
	Content      string
	ShowScope    string
	Files        []uint
	Descriptions []string
}

// UpdateFeed applies the edit for the writer and returns the feed together with
// the file rows that were detached and removed.
func UpdateFeed(db *gorm.DB, feedID, writerID uint, update FeedUpdate) (*Feed, []File, error) {
	if !ValidShowScope(update.ShowScope) {
		return nil, nil, ErrInvalidShowScope
	}
	if !hasBody(update.Content, len(update.Files)) {
		return nil, nil, ErrRequiredContent
	}
	var removed []File
	err := db.Transaction(func(tx *gorm.DB) error {
		feed, err := FindFeed(tx, feedID)
		if err != nil {
			return err
		}
		if feed.WriterID != writerID {
			return ErrUnauthorized
		}

		keep := make(map[uint]int, len(update.Files))
		for i, id := range update.Files {
			keep[id] = i
		}
		existing := make(map[uint]struct{}, len(feed.Files))
		for _, file := range feed.Files {
			existing[file.ID] = struct{}{}
			if _, ok := keep[file.ID]; !ok {
				removed = append(removed, file)
			}
		}
		for _, id := range update.Files {
			if _, ok := existing[id]; !ok {
				return ErrUnknownFile
			}
		}

		for i, id := range update.Files {
			changes := map[string]interface{}{"sequence": i}
			if i < len(update.Descriptions) {
				changes["description"] = html.EscapeString(strings.TrimSpace(update.Descriptions[i]))
			}
			if err := tx.Model(&File{}).Where("id = ?", id).Updates(changes).Error; err != nil {
				return errors.Wrap(err, "update file")
			}
		}
		if len(removed) > 0 {
			ids := make([]uint, len(removed))
			for i, file := range removed {
				ids[i] = file.ID
			}
			if err := tx.Where("id IN ?", ids).Delete(&File{}).Error; err != nil {
				return errors.Wrap(err, "delete detached files")
			}
		}

		return tx.Model(&Feed{}).Where("id = ?", feedID).Updates(map[string]interface{}{
			"content":    html.EscapeString(strings.TrimSpace(update.Content)),
			"show_scope": update.ShowScope,
			"updated_at": time.Now(),
		}).Error
	})
	if err != nil {
		return nil, nil, err
	}
	feed, err := FindFeed(db, feedID)
	if err != nil {
		return nil, nil, err
	}
	return feed, removed, nil
}

// DeleteFeed removes the feed of the writer with its comments, likes and files.
// The removed file rows are returned so their objects can be deleted.
func DeleteFeed(db *gorm.DB, feedID, writerID uint) ([]File, error) {
	var files []File
	err := db.Transaction(func(tx *gorm.DB) error {
		var feed Feed
		if err := tx.Select("id", "writer_id").Where("id = ?", feedID).Take(&feed).Error; err != nil {
			return notFoundOr(err, ErrFeedNotFound)
		}
		if feed.WriterID != writerID {
			return ErrUnauthorized
		}
		var err error
		files, err = deleteFeeds(tx, []uint{feedID})
		return err
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
