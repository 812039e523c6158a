package models

import (
	"html"
	"strings"
	"time"
)

// File is an uploaded image. Feed images carry FeedID; profile images do not.
type File struct {
	ID           uint      `gorm:"primary_key;autoIncrement" json:"id"`
	FeedID       *uint     `gorm:"index" json:"-"`
	OriginalName string    `gorm:"size:255;not null" json:"original_name"`
	Source       string    `gorm:"size:512;not null" json:"source"`
	Description  string    `gorm:"type:text" json:"description"`
	Sequence     int       `gorm:"not null;default:0" json:"sequence"`
	CreatedAt    time.Time `json:"created_at"`
}

func (f *File) Prepare() {
	f.OriginalName = strings.TrimSpace(f.OriginalName)
	f.Description = html.EscapeString(strings.TrimSpace(f.Description))
}
