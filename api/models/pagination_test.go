package models_test

import (
	"testing"

	"github.com/5pponent/diary-server/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func allPublicIDs(t *testing.T, db *gorm.DB) []uint {
	t.Helper()
	var ids []uint
	require.NoError(t, db.Model(&models.Feed{}).Where("show_scope = ?", models.ShowAll).Order("id DESC").Pluck("id", &ids).Error)
	return ids
}

func TestCursorPagesConcatenateToFullListing(t *testing.T) {
	db := setupDB(t)
	a := createUser(t, db, "alice")
	for i := 0; i < 23; i++ {
		scope := models.ShowAll
		if i%4 == 0 {
			scope = models.ShowMe
		}
		createFeed(t, db, a, scope, "post")
	}
	want := allPublicIDs(t, db)

	var got []uint
	req := models.CursorPage{Size: 5}
	inserted := false
	for pages := 0; pages < 20; pages++ {
		views, info, err := models.FindShowAllFeeds(db, a.ID, req)
		require.NoError(t, err)
		assert.Zero(t, info.TotalElements)
		got = append(got, feedIDs(views)...)

		if !inserted {
			// Newer feeds land above the cursor and never show up below it.
			createFeed(t, db, a, models.ShowAll, "late")
			inserted = true
		}
		if info.NextCursor == nil {
			break
		}
		req = models.CursorPage{LastID: info.NextCursor, Size: 5}
	}

	assert.Equal(t, want, got)
}

func TestOffsetPagesCountUnderSameFilter(t *testing.T) {
	db := setupDB(t)
	a := createUser(t, db, "alice")
	for i := 0; i < 12; i++ {
		scope := models.ShowAll
		if i%3 == 0 {
			scope = models.ShowFollowers
		}
		createFeed(t, db, a, scope, "post")
	}
	want := allPublicIDs(t, db)
	require.Len(t, want, 8)

	views, info, err := models.FindShowAllFeeds(db, a.ID, models.OffsetPage{Page: 1, Size: 5})
	require.NoError(t, err)
	assert.Equal(t, want[:5], feedIDs(views))
	assert.Equal(t, 1, info.CurrentPage)
	assert.Equal(t, 2, info.TotalPages)
	assert.Equal(t, int64(8), info.TotalElements)
	assert.Nil(t, info.NextCursor)

	views, info, err = models.FindShowAllFeeds(db, a.ID, models.OffsetPage{Page: 2, Size: 5})
	require.NoError(t, err)
	assert.Equal(t, want[5:], feedIDs(views))
	assert.Equal(t, 2, info.CurrentPage)

	views, info, err = models.FindShowAllFeeds(db, a.ID, models.OffsetPage{Page: 3, Size: 5})
	require.NoError(t, err)
	assert.Empty(t, views)
	assert.Equal(t, 2, info.TotalPages)
}

func TestPageSizeIsClamped(t *testing.T) {
	db := setupDB(t)
	a := createUser(t, db, "alice")
	for i := 0; i < 12; i++ {
		createFeed(t, db, a, models.ShowAll, "post")
	}

	views, info, err := models.FindShowAllFeeds(db, a.ID, models.CursorPage{})
	require.NoError(t, err)
	assert.Len(t, views, models.DefaultPageSize)
	require.NotNil(t, info.NextCursor)
	assert.Equal(t, views[len(views)-1].Feed.ID, *info.NextCursor)
}

func TestFeedFilesOrderedBySequence(t *testing.T) {
	db := setupDB(t)
	a := createUser(t, db, "alice")
	feed := createFeed(t, db, a, models.ShowAll, "trip",
		models.File{OriginalName: "first.png", Source: "memory://first"},
		models.File{OriginalName: "second.png", Source: "memory://second"},
		models.File{OriginalName: "third.png", Source: "memory://third"},
	)

	views, _, err := models.FindShowAllFeeds(db, a.ID, models.CursorPage{Size: 10})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Len(t, views[0].Feed.Files, 3)
	for i, file := range views[0].Feed.Files {
		assert.Equal(t, i, file.Sequence)
	}
	assert.Equal(t, "first.png", views[0].Feed.Files[0].OriginalName)
	assert.Equal(t, a.Name, views[0].Feed.Writer.Name)
	assert.Equal(t, feed.ID, views[0].Feed.ID)
}

func TestFindFeedsByUserKeyword(t *testing.T) {
	db := setupDB(t)
	a := createUser(t, db, "alice")
	beach := createFeed(t, db, a, models.ShowAll, "a day at the beach")
	photo := createFeed(t, db, a, models.ShowAll, "no words",
		models.File{OriginalName: "p.png", Source: "memory://p", Description: "sunset over the beach"})
	createFeed(t, db, a, models.ShowAll, "mountains")
	createFeed(t, db, a, models.ShowAll, "100% fun")

	views, _, err := models.FindFeedsByUser(db, a.ID, a.ID, "beach", models.CursorPage{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, []uint{photo.ID, beach.ID}, feedIDs(views))

	views, _, err = models.FindFeedsByUser(db, a.ID, a.ID, "%", models.CursorPage{Size: 10})
	require.NoError(t, err)
	assert.Len(t, views, 1)
}
