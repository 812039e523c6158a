package models

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Migrate creates or updates every table of the diary schema.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&Occupation{},
		&File{},
		&User{},
		&Follow{},
		&Feed{},
		&FeedLike{},
		&Comment{},
		&CommentLike{},
	)
	if err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	if db.Dialector.Name() == "postgres" {
		return ensurePostgresConstraints(db)
	}
	return nil
}

func ensurePostgresConstraints(db *gorm.DB) error {
	checks := []struct {
		table, name, definition string
	}{
		{"follows", "chk_follows_not_self", "CHECK (user_id <> target_id)"},
		{"feeds", "chk_feeds_show_scope", "CHECK (show_scope IN ('all', 'follower', 'me'))"},
		{"comments", "chk_comments_layer", "CHECK (layer >= 1)"},
	}
	for _, c := range checks {
		var count int64
		if err := db.Raw(
			`SELECT COUNT(1) FROM pg_constraint WHERE conname = ? AND conrelid = ?::regclass`,
			c.name, c.table,
		).Scan(&count).Error; err != nil {
			return errors.Wrapf(err, "inspect %s", c.name)
		}
		if count > 0 {
			continue
		}
		if err := db.Exec("ALTER TABLE " + c.table + " ADD CONSTRAINT " + c.name + " " + c.definition).Error; err != nil {
			return errors.Wrapf(err, "add %s", c.name)
		}
	}
	return nil
}
