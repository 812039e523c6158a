package models

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Occupation is an entry of the catalog users pick their occupation and
// interests from.
type Occupation struct {
	ID   uint   `gorm:"primary_key;autoIncrement" json:"id"`
	Name string `gorm:"size:50;not null;unique" json:"name"`
}

func unknownOccupation(name string) error {
	return &notFoundError{fmt.Sprintf("[%s] %s", name, ErrOccupationNotFound.Error())}
}

// FindOccupations lists the catalog by name.
func FindOccupations(db *gorm.DB) ([]Occupation, error) {
	var occupations []Occupation
	if err := db.Order("name ASC").Find(&occupations).Error; err != nil {
		return nil, errors.Wrap(err, "list occupations")
	}
	return occupations, nil
}

func FindOccupationByName(db *gorm.DB, name string) (*Occupation, error) {
	name = strings.TrimSpace(name)
	var occupation Occupation
	if err := db.Where("name = ?", name).Take(&occupation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unknownOccupation(name)
		}
		return nil, err
	}
	return &occupation, nil
}

// CheckOccupations fails with a not-found error naming the first entry of names
// missing from the catalog.
func CheckOccupations(db *gorm.DB, names []string) error {
	if len(names) == 0 {
		return nil
	}
	var found []string
	if err := db.Model(&Occupation{}).Where("name IN ?", names).Pluck("name", &found).Error; err != nil {
		return errors.Wrap(err, "check occupations")
	}
	known := make(map[string]struct{}, len(found))
	for _, name := range found {
		known[name] = struct{}{}
	}
	for _, name := range names {
		if _, ok := known[name]; !ok {
			return unknownOccupation(name)
		}
	}
	return nil
}

// EnsureOccupations adds the names missing from the catalog.
func EnsureOccupations(db *gorm.DB, names []string) error {
	if len(names) == 0 {
		return nil
	}
	occupations := make([]Occupation, len(names))
	for i, name := range names {
		occupations[i] = Occupation{Name: strings.TrimSpace(name)}
	}
	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&occupations).Error
	return errors.Wrap(err, "create occupations")
}
