package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/5pponent/diary-server/api/models"

	"github.com/gin-gonic/gin"
)

var errInvalidIdentifier = errors.New("invalid identifier")

func parseID(raw string) (uint, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, errInvalidIdentifier
	}
	id, err := strconv.ParseUint(trimmed, 10, 32)
	if err != nil || id == 0 {
		return 0, errInvalidIdentifier
	}
	return uint(id), nil
}

// pathID reads a numeric path parameter, answering 400 when it is malformed.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := parseID(c.Param(name))
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid_request", "Invalid "+name)
		return 0, false
	}
	return id, true
}

// optionalQueryID reads an optional numeric query parameter.
func optionalQueryID(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := parseID(raw)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid_request", "Invalid "+name)
		return nil, false
	}
	return &id, true
}

// pageRequest selects offset paging when "page" is given and cursor paging
// otherwise. A missing lastId starts from the newest row.
func pageRequest(c *gin.Context, size int) (models.PageRequest, bool) {
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			respondMessage(c, http.StatusBadRequest, "Invalid_request", "Invalid page")
			return nil, false
		}
		return models.OffsetPage{Page: page, Size: size}, true
	}
	lastID, ok := optionalQueryID(c, "lastId")
	if !ok {
		return nil, false
	}
	return models.CursorPage{LastID: lastID, Size: size}, true
}

// offsetPageRequest is used by listings that only page by offset.
func offsetPageRequest(c *gin.Context, size int) (models.PageRequest, bool) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		var err error
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			respondMessage(c, http.StatusBadRequest, "Invalid_request", "Invalid page")
			return nil, false
		}
	}
	return models.OffsetPage{Page: page, Size: size}, true
}
