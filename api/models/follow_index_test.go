package models_test

import (
	"testing"

	"github.com/5pponent/diary-server/api/models"
	"github.com/5pponent/diary-server/api/utils/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveFollowIsIdempotent(t *testing.T) {
	db := setupDB(t)
	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")

	f := models.Follow{UserID: a.ID, TargetID: b.ID}
	created, err := f.SaveFollow(db)
	require.NoError(t, err)
	assert.True(t, created)

	again := models.Follow{UserID: a.ID, TargetID: b.ID}
	created, err = again.SaveFollow(db)
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSaveFollowRejectsSelfAndUnknownTarget(t *testing.T) {
	db := setupDB(t)
	a := createUser(t, db, "alice")

	self := models.Follow{UserID: a.ID, TargetID: a.ID}
	_, err := self.SaveFollow(db)
	assert.ErrorIs(t, err, models.ErrSelfFollow)
	assert.True(t, models.IsValidationError(err))

	ghost := models.Follow{UserID: a.ID, TargetID: a.ID + 100}
	_, err = ghost.SaveFollow(db)
	assert.True(t, models.IsNotFound(err))
}

func TestIsFollowingAndDeleteFollow(t *testing.T) {
	db := setupDB(t)
	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")
	follow(t, db, a, b)

	following, err := models.IsFollowing(db, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, following)

	following, err = models.IsFollowing(db, b.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, following)

	removed, err := models.DeleteFollow(db, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = models.DeleteFollow(db, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFollowingSetAmongUsesOneQuery(t *testing.T) {
	db := setupDB(t)
	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")
	c := createUser(t, db, "carol")
	d := createUser(t, db, "dave")
	follow(t, db, a, b)
	follow(t, db, a, d)
	follow(t, db, c, a)

	counter := testdb.CountQueries(db)

	set, err := models.FollowingSetAmong(db, a.ID, []uint{b.ID, c.ID, d.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, map[uint]bool{b.ID: true, d.ID: true}, set)
	assert.Equal(t, int64(1), counter.Count())

	counter.Reset()
	set, err = models.FollowingSetAmong(db, a.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, set)
	assert.Equal(t, int64(0), counter.Count())
}

func TestFollowCountsUsesOneQuery(t *testing.T) {
	db := setupDB(t)
	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")
	c := createUser(t, db, "carol")
	follow(t, db, a, b)
	follow(t, db, a, c)
	follow(t, db, c, a)
	follow(t, db, b, c)

	counter := testdb.CountQueries(db)
	following, followers, err := models.FollowCounts(db, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), following)
	assert.Equal(t, int64(1), followers)
	assert.Equal(t, int64(1), counter.Count())
}
