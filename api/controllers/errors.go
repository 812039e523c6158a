package controllers

import (
	"errors"
	"net/http"

	"github.com/5pponent/diary-server/api/auth"
	"github.com/5pponent/diary-server/api/logging"
	"github.com/5pponent/diary-server/api/models"
	"github.com/5pponent/diary-server/api/utils/formaterror"

	"github.com/gin-gonic/gin"
)

func respondErrors(c *gin.Context, status int, errList map[string]string) {
	c.JSON(status, gin.H{
		"status": status,
		"error":  errList,
	})
}

func respondMessage(c *gin.Context, status int, key, message string) {
	respondErrors(c, status, map[string]string{key: message})
}

// respondError maps store and auth errors to their HTTP status.
func respondError(c *gin.Context, err error) {
	switch {
	case models.IsNotFound(err):
		message := err.Error()
		if !errors.Is(err, models.ErrNotFound) {
			message = "No Record Found"
		}
		respondMessage(c, http.StatusNotFound, "Not_found", message)
	case errors.Is(err, models.ErrInvalidShowScope):
		respondMessage(c, http.StatusBadRequest, "Invalid_show_scope", err.Error())
	case errors.Is(err, models.ErrCommentNotInFeed), errors.Is(err, models.ErrUnknownFile):
		respondMessage(c, http.StatusBadRequest, "Invalid_request", err.Error())
	case errors.Is(err, models.ErrRequiredContent):
		respondMessage(c, http.StatusUnprocessableEntity, "Required_content", err.Error())
	case models.IsValidationError(err):
		respondMessage(c, http.StatusUnprocessableEntity, "Invalid_request", err.Error())
	case errors.Is(err, models.ErrNotVisible):
		respondMessage(c, http.StatusForbidden, "Forbidden", "This feed is not visible to you")
	case errors.Is(err, models.ErrUnauthorized):
		respondMessage(c, http.StatusUnauthorized, "Unauthorized", "Unauthorized")
	case errors.Is(err, auth.ErrMailAuthRequired):
		respondMessage(c, http.StatusUnauthorized, "MAIL_AUTH_REQUIRED", "Mail authentication required")
	case errors.Is(err, auth.ErrAuthCodeMismatch):
		respondMessage(c, http.StatusUnauthorized, "Invalid_code", "Auth code does not match")
	case errors.Is(err, auth.ErrLoginFailed):
		respondMessage(c, http.StatusUnauthorized, "Login_failed", err.Error())
	default:
		logging.Log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		respondErrors(c, http.StatusInternalServerError, formaterror.FormatError(err.Error()))
	}
}
