package seed

import (
	"github.com/5pponent/diary-server/api/logging"
	"github.com/5pponent/diary-server/api/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const seedPassword = "password1!"

// Occupations is the catalog every database starts with.
var Occupations = []string{
	"developer", "designer", "planner", "marketer", "writer", "photographer",
	"musician", "teacher", "researcher", "chef", "student", "freelancer",
}

var users = []models.User{
	{UID: "steven", Email: "steven@example.com", Name: "steven", Message: "hello diary"},
	{UID: "martin", Email: "martin@example.com", Name: "martin"},
	{UID: "jisoo", Email: "jisoo@example.com", Name: "jisoo"},
}

var occupationOf = []string{"developer", "photographer", "chef"}

var feeds = []struct {
	writer  int
	scope   string
	content string
}{
	{0, models.ShowAll, "First day of the diary"},
	{0, models.ShowFollowers, "Only for the people who follow me"},
	{0, models.ShowMe, "A note to myself"},
	{1, models.ShowAll, "Went hiking today"},
	{2, models.ShowFollowers, "Baked bread for the first time"},
}

// LoadOccupations adds the catalog entries the database is missing.
func LoadOccupations(db *gorm.DB) error {
	return models.EnsureOccupations(db, Occupations)
}

// Load fills an empty database with the occupation catalog, a few users, follow
// edges, feeds of every show scope and a short comment thread. Users are only
// seeded once.
func Load(db *gorm.DB) error {
	if err := LoadOccupations(db); err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logging.Log.Info("database already has users, skipping seed")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		created := make([]models.User, len(users))
		for i := range users {
			user := users[i]
			user.Password = seedPassword
			if err := user.HashPassword(); err != nil {
				return err
			}
			if err := user.SetInterests([]string{"writer", "photographer"}); err != nil {
				return err
			}
			if err := tx.Create(&user).Error; err != nil {
				return errors.Wrap(err, "cannot seed users table")
			}
			if err := models.UpdateOccupation(tx, user.ID, occupationOf[i]); err != nil {
				return err
			}
			created[i] = user
		}

		edges := [][2]int{{1, 0}, {2, 0}, {0, 2}}
		for _, edge := range edges {
			follow := models.Follow{UserID: created[edge[0]].ID, TargetID: created[edge[1]].ID}
			if err := tx.Create(&follow).Error; err != nil {
				return errors.Wrap(err, "cannot seed follows table")
			}
		}

		var first models.Feed
		for i, f := range feeds {
			feed := models.Feed{WriterID: created[f.writer].ID, Content: f.content, ShowScope: f.scope}
			if err := tx.Omit("Writer").Create(&feed).Error; err != nil {
				return errors.Wrap(err, "cannot seed feeds table")
			}
			if i == 0 {
				first = feed
			}
		}

		root := models.Comment{FeedID: first.ID, WriterID: created[1].ID, Content: "Welcome!", Layer: 1}
		if err := tx.Omit("Writer").Create(&root).Error; err != nil {
			return errors.Wrap(err, "cannot seed comments table")
		}
		reply := models.Comment{FeedID: first.ID, ParentID: &root.ID, WriterID: created[0].ID, Content: "Thanks!", Layer: 2}
		if err := tx.Omit("Writer").Create(&reply).Error; err != nil {
			return errors.Wrap(err, "cannot seed comments table")
		}
		if _, err := models.LikeFeed(tx, created[1].ID, first.ID); err != nil {
			return err
		}

		logging.Log.WithField("users", len(created)).Info("seeded database")
		return nil
	})
}
