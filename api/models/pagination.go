package models

import (
	"math"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest selects a page of a listing. OffsetPage counts the full result
// under the same filter; CursorPage continues below the last id seen and never
// counts.
type PageRequest interface {
	pageSize() int
}

// OffsetPage is a 1-based page number with a page size.
type OffsetPage struct {
	Page int
	Size int
}

// CursorPage returns rows with ids below LastID, newest first. A nil LastID
// starts from the newest row.
type CursorPage struct {
	LastID *uint
	Size   int
}

func (p OffsetPage) pageSize() int { return clampSize(p.Size) }
func (p CursorPage) pageSize() int { return clampSize(p.Size) }

func clampSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// PageInfo describes the returned page. Offset pages fill the totals; cursor
// pages fill NextCursor when a following page may exist.
type PageInfo struct {
	CurrentPage   int   `json:"currentPage,omitempty"`
	TotalPages    int   `json:"totalPages,omitempty"`
	TotalElements int64 `json:"totalElements,omitempty"`
	NextCursor    *uint `json:"nextCursor,omitempty"`
}

// Listing names the columns a paginated query is ordered by.
type Listing struct {
	// Key is the id column used by cursor pages, e.g. "feeds.id".
	Key string
	// Order is the ordering of offset pages, e.g. "feeds.id DESC".
	Order string
	// Load adds eager loading to the row fetch only.
	Load func(*gorm.DB) *gorm.DB
}

// Paginate runs the filtered query q for one page of req.
func Paginate[T any](q *gorm.DB, req PageRequest, listing Listing, idOf func(*T) uint) ([]T, PageInfo, error) {
	rows := []T{}
	size := req.pageSize()
	info := PageInfo{}

	fetch := q.Session(&gorm.Session{})
	if listing.Load != nil {
		fetch = listing.Load(fetch)
	}

	switch p := req.(type) {
	case OffsetPage:
		page := p.Page
		if page < 1 {
			page = 1
		}
		var total int64
		if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
			return nil, info, errors.Wrap(err, "count page")
		}
		info.CurrentPage = page
		info.TotalElements = total
		info.TotalPages = int(math.Ceil(float64(total) / float64(size)))
		if total == 0 || page > info.TotalPages {
			return rows, info, nil
		}
		err := fetch.Order(listing.Order).Offset((page - 1) * size).Limit(size).Find(&rows).Error
		if err != nil {
			return nil, info, errors.Wrap(err, "fetch page")
		}
	case CursorPage:
		if p.LastID != nil {
			fetch = fetch.Where(listing.Key+" < ?", *p.LastID)
		}
		err := fetch.Order(listing.Key + " DESC").Limit(size).Find(&rows).Error
		if err != nil {
			return nil, info, errors.Wrap(err, "fetch page")
		}
		if len(rows) == size {
			last := idOf(&rows[len(rows)-1])
			info.NextCursor = &last
		}
	default:
		return nil, info, errors.Errorf("unsupported page request %T", req)
	}
	return rows, info, nil
}
