package models

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type groupedCount struct {
	ID    uint
	Total int64
}

// countGrouped counts rows of model per value of column for the given ids.
// Every id is present in the result; ids without rows count zero.
func countGrouped(db *gorm.DB, model interface{}, column string, ids []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(ids))
	for _, id := range ids {
		counts[id] = 0
	}
	var rows []groupedCount
	err := db.Model(model).
		Select(column+" AS id, COUNT(*) AS total").
		Where(column+" IN ?", ids).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrapf(err, "count %s", column)
	}
	for _, row := range rows {
		counts[row.ID] = row.Total
	}
	return counts, nil
}

// likedAmong returns which of ids userID has liked.
func likedAmong(db *gorm.DB, model interface{}, column string, userID uint, ids []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(ids))
	if userID == 0 {
		return liked, nil
	}
	var found []uint
	err := db.Model(model).
		Where("user_id = ? AND "+column+" IN ?", userID, ids).
		Pluck(column, &found).Error
	if err != nil {
		return nil, errors.Wrapf(err, "load liked %s", column)
	}
	for _, id := range found {
		liked[id] = true
	}
	return liked, nil
}
