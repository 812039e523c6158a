package seed

import (
	"testing"

	"github.com/5pponent/diary-server/api/models"
	"github.com/5pponent/diary-server/api/utils/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeedsOnce(t *testing.T) {
	db := testdb.Open(t)

	require.NoError(t, Load(db))
	require.NoError(t, Load(db))

	var userCount, feedCount, commentCount, occupationCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Feed{}).Count(&feedCount).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&commentCount).Error)
	assert.Equal(t, int64(len(users)), userCount)
	assert.Equal(t, int64(len(feeds)), feedCount)
	assert.Equal(t, int64(2), commentCount)
	require.NoError(t, db.Model(&models.Occupation{}).Count(&occupationCount).Error)
	assert.Equal(t, int64(len(Occupations)), occupationCount)

	steven, err := models.FindUserByUID(db, "steven")
	require.NoError(t, err)
	assert.Equal(t, []string{"writer", "photographer"}, steven.InterestList())
	assert.Equal(t, "developer", steven.OccupationName())
}

func TestLoadOccupationsKeepsExistingEntries(t *testing.T) {
	db := testdb.Open(t)
	require.NoError(t, models.EnsureOccupations(db, []string{"developer", "astronaut"}))

	require.NoError(t, LoadOccupations(db))
	require.NoError(t, LoadOccupations(db))

	occupations, err := models.FindOccupations(db)
	require.NoError(t, err)
	assert.Len(t, occupations, len(Occupations)+1)
	assert.Equal(t, "astronaut", occupations[0].Name)
}
