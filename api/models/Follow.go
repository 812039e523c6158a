package models

import "time"

// Follow is a directed edge: UserID follows TargetID.
type Follow struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_follows_user_target" json:"user_id"`
	TargetID  uint      `gorm:"not null;index;uniqueIndex:idx_follows_user_target" json:"target_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
