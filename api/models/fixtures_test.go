package models_test

import (
	"fmt"
	"testing"

	"github.com/5pponent/diary-server/api/models"
	"github.com/5pponent/diary-server/api/utils/testdb"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testdb.Open(t)
}

func createUser(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()
	user := models.User{
		UID:      name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hashed",
		Name:     name,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func follow(t *testing.T, db *gorm.DB, from, to models.User) {
	t.Helper()
	f := models.Follow{UserID: from.ID, TargetID: to.ID}
	_, err := f.SaveFollow(db)
	require.NoError(t, err)
}

func createFeed(t *testing.T, db *gorm.DB, writer models.User, scope, content string, files ...models.File) models.Feed {
	t.Helper()
	feed := models.Feed{WriterID: writer.ID, ShowScope: scope, Content: content, Files: files}
	feed.Prepare()
	saved, err := feed.SaveFeed(db)
	require.NoError(t, err)
	return *saved
}

func createComment(t *testing.T, db *gorm.DB, feed models.Feed, writer models.User, parent *models.Comment, content string) models.Comment {
	t.Helper()
	comment := models.Comment{FeedID: feed.ID, WriterID: writer.ID, Content: content}
	if parent != nil {
		comment.ParentID = &parent.ID
	}
	saved, err := comment.SaveComment(db)
	require.NoError(t, err)
	return *saved
}

func feedIDs(views []models.FeedView) []uint {
	ids := make([]uint, len(views))
	for i, v := range views {
		ids[i] = v.Feed.ID
	}
	return ids
}

func commentIDs(views []models.CommentView) []uint {
	ids := make([]uint, len(views))
	for i, v := range views {
		ids[i] = v.Comment.ID
	}
	return ids
}
