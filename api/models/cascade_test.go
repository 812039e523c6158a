package models_test

import (
	"testing"

	"github.com/5pponent/diary-server/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestDeleteCommentRemovesDescendants(t *testing.T) {
	db := setupDB(t)
	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")
	feed := createFeed(t, db, a, models.ShowAll, "post")

	c1 := createComment(t, db, feed, a, nil, "root")
	c2 := createComment(t, db, feed, b, &c1, "child")
	c3 := createComment(t, db, feed, a, &c2, "grandchild")
	keep := createComment(t, db, feed, b, nil, "sibling")
	_, err := models.LikeComment(db, b.ID, c3.ID)
	require.NoError(t, err)
	_, err = models.LikeComment(db, a.ID, keep.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, models.DeleteComment(db, feed.ID, c1.ID, b.ID), models.ErrUnauthorized)
	require.NoError(t, models.DeleteComment(db, feed.ID, c1.ID, a.ID))

	var remaining []uint
	require.NoError(t, db.Model(&models.Comment{}).Pluck("id", &remaining).Error)
	assert.Equal(t, []uint{keep.ID}, remaining)
	assert.Equal(t, int64(1), count(t, db, &models.CommentLike{}))

	err = models.DeleteComment(db, feed.ID, c1.ID, a.ID)
	assert.True(t, models.IsNotFound(err))
}

func TestDeleteFeedCascades(t *testing.T) {
	db := setupDB(t)
	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")
	feed := createFeed(t, db, a, models.ShowAll, "post",
		models.File{OriginalName: "x.png", Source: "memory://x"},
		models.File{OriginalName: "y.png", Source: "memory://y"},
	)
	other := createFeed(t, db, b, models.ShowAll, "other")

	root := createComment(t, db, feed, b, nil, "root")
	reply := createComment(t, db, feed, a, &root, "reply")
	createComment(t, db, other, a, nil, "elsewhere")
	_, err := models.LikeComment(db, a.ID, reply.ID)
	require.NoError(t, err)
	_, err = models.LikeFeed(db, b.ID, feed.ID)
	require.NoError(t, err)
	_, err = models.LikeFeed(db, a.ID, other.ID)
	require.NoError(t, err)

	_, err = models.DeleteFeed(db, feed.ID, b.ID)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	files, err := models.DeleteFeed(db, feed.ID, a.ID)
	require.NoError(t, err)
	assert.Len(t, files, 2)

	assert.Equal(t, int64(1), count(t, db, &models.Feed{}))
	assert.Equal(t, int64(1), count(t, db, &models.Comment{}))
	assert.Equal(t, int64(0), count(t, db, &models.CommentLike{}))
	assert.Equal(t, int64(1), count(t, db, &models.FeedLike{}))
	assert.Equal(t, int64(0), count(t, db, &models.File{}))

	_, err = models.FindFeed(db, feed.ID)
	assert.ErrorIs(t, err, models.ErrFeedNotFound)
}

func TestUpdateFeedReordersAndDetachesFiles(t *testing.T) {
	db := setupDB(t)
	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")
	feed := createFeed(t, db, a, models.ShowAll, "post",
		models.File{OriginalName: "1.png", Source: "memory://1"},
		models.File{OriginalName: "2.png", Source: "memory://2"},
		models.File{OriginalName: "3.png", Source: "memory://3"},
	)
	first, second, third := feed.Files[0], feed.Files[1], feed.Files[2]

	_, _, err := models.UpdateFeed(db, feed.ID, b.ID, models.FeedUpdate{Content: "x", ShowScope: models.ShowAll})
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	_, _, err = models.UpdateFeed(db, feed.ID, a.ID, models.FeedUpdate{Content: "x", ShowScope: "friends"})
	assert.ErrorIs(t, err, models.ErrInvalidShowScope)

	_, _, err = models.UpdateFeed(db, feed.ID, a.ID, models.FeedUpdate{Content: "x", ShowScope: models.ShowAll, Files: []uint{9999}})
	assert.ErrorIs(t, err, models.ErrUnknownFile)

	updated, removed, err := models.UpdateFeed(db, feed.ID, a.ID, models.FeedUpdate{
		Content:      "edited",
		ShowScope:    models.ShowMe,
		Files:        []uint{third.ID, first.ID},
		Descriptions: []string{"now first", "now second"},
	})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.Equal(t, models.ShowMe, updated.ShowScope)
	require.Len(t, updated.Files, 2)
	assert.Equal(t, third.ID, updated.Files[0].ID)
	assert.Equal(t, "now first", updated.Files[0].Description)
	assert.Equal(t, first.ID, updated.Files[1].ID)
	require.Len(t, removed, 1)
	assert.Equal(t, second.ID, removed[0].ID)
	assert.Equal(t, int64(2), count(t, db, &models.File{}))
}

func TestDeleteUserCascades(t *testing.T) {
	db := setupDB(t)
	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")
	c := createUser(t, db, "carol")
	follow(t, db, a, b)
	follow(t, db, c, a)
	follow(t, db, b, c)

	feedA := createFeed(t, db, a, models.ShowAll, "mine", models.File{OriginalName: "a.png", Source: "memory://a"})
	feedB := createFeed(t, db, b, models.ShowAll, "bob's")
	createComment(t, db, feedA, b, nil, "on alice's feed")
	aliceRoot := createComment(t, db, feedB, a, nil, "alice on bob")
	createComment(t, db, feedB, c, &aliceRoot, "carol replies to alice")
	bobRoot := createComment(t, db, feedB, b, nil, "bob stays")
	_, err := models.LikeFeed(db, a.ID, feedB.ID)
	require.NoError(t, err)
	_, err = models.LikeComment(db, a.ID, bobRoot.ID)
	require.NoError(t, err)

	_, err = models.ReplaceProfileImage(db, a.ID, &models.File{OriginalName: "me.png", Source: "memory://me"})
	require.NoError(t, err)

	files, err := models.DeleteUser(db, a.ID)
	require.NoError(t, err)
	assert.Len(t, files, 2)

	_, err = models.FindUserByID(db, a.ID)
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	var comments []uint
	require.NoError(t, db.Model(&models.Comment{}).Pluck("id", &comments).Error)
	assert.Equal(t, []uint{bobRoot.ID}, comments)
	assert.Equal(t, int64(1), count(t, db, &models.Feed{}))
	assert.Equal(t, int64(0), count(t, db, &models.FeedLike{}))
	assert.Equal(t, int64(0), count(t, db, &models.CommentLike{}))
	assert.Equal(t, int64(1), count(t, db, &models.Follow{}))
	assert.Equal(t, int64(0), count(t, db, &models.File{}))
}
