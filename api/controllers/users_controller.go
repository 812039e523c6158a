package controllers

import (
	"net/http"
	"strings"

	"github.com/5pponent/diary-server/api/logging"
	"github.com/5pponent/diary-server/api/models"
	"github.com/5pponent/diary-server/api/security"
	"github.com/5pponent/diary-server/api/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const userPageSize = 10

type userInfoRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type occupationRequest struct {
	Occupation string `json:"occupation"`
}

type interestsRequest struct {
	Interests []string `json:"interests"`
}

type passwordRequest struct {
	Password         string `json:"password" binding:"required"`
	NewPassword      string `json:"newPassword" binding:"required"`
	NewPasswordCheck string `json:"newPasswordCheck" binding:"required"`
}

type deleteUserRequest struct {
	Password string `json:"password" binding:"required"`
}

// GetUser returns a profile with its follow counts and the viewer's follow status.
func (server *Server) GetUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var detail *models.UserDetail
	err := server.readTx(c.Request.Context(), func(tx *gorm.DB) error {
		var err error
		detail, err = models.FindUserDetail(tx, userID, httpctx.ViewerID(c))
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userDetailToDTO(detail),
	})
}

// SearchUsers matches e-mail prefixes and names containing the keyword.
func (server *Server) SearchUsers(c *gin.Context) {
	req, ok := offsetPageRequest(c, userPageSize)
	if !ok {
		return
	}
	keyword := c.Query("keyword")

	var (
		views []models.UserView
		info  models.PageInfo
	)
	err := server.readTx(c.Request.Context(), func(tx *gorm.DB) error {
		var err error
		views, info, err = models.SearchUsers(tx, keyword, httpctx.ViewerID(c), req)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userPageToDTO(views, info),
	})
}

func (server *Server) UpdateUserInfo(c *gin.Context) {
	userID := httpctx.ViewerID(c)
	var req userInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusUnprocessableEntity, "Invalid_request", "Cannot unmarshal body")
		return
	}

	user := models.User{ID: userID, Name: req.Name, Email: req.Email, Message: req.Message}
	user.Prepare()
	if errorMessages := user.Validate("info"); len(errorMessages) > 0 {
		respondErrors(c, http.StatusUnprocessableEntity, errorMessages)
		return
	}
	updated, err := user.UpdateInfo(server.db(c.Request.Context()))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userToDTO(updated),
	})
}

func (server *Server) UpdateOccupation(c *gin.Context) {
	userID := httpctx.ViewerID(c)
	var req occupationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusUnprocessableEntity, "Invalid_request", "Cannot unmarshal body")
		return
	}
	if strings.TrimSpace(req.Occupation) == "" {
		respondMessage(c, http.StatusUnprocessableEntity, "Required_occupation", "Required Occupation")
		return
	}
	db := server.db(c.Request.Context())
	if err := models.UpdateOccupation(db, userID, req.Occupation); err != nil {
		respondError(c, err)
		return
	}
	server.respondCurrentUser(c, db, userID)
}

func (server *Server) UpdateInterests(c *gin.Context) {
	userID := httpctx.ViewerID(c)
	var req interestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusUnprocessableEntity, "Invalid_request", "Cannot unmarshal body")
		return
	}
	user := models.User{ID: userID}
	if err := user.SetInterests(req.Interests); err != nil {
		respondError(c, err)
		return
	}
	db := server.db(c.Request.Context())
	if err := user.UpdateInterests(db); err != nil {
		respondError(c, err)
		return
	}
	server.respondCurrentUser(c, db, userID)
}

// UpdateProfileImage stores a new profile image and removes the previous one.
func (server *Server) UpdateProfileImage(c *gin.Context) {
	userID := httpctx.ViewerID(c)
	header, err := c.FormFile("image")
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid_file", "Invalid file")
		return
	}

	ctx := c.Request.Context()
	file, err := server.storeImage(ctx, header, profileImgPrefix, maxProfileSize)
	if err != nil {
		status, message := uploadErrorMessage(err)
		respondMessage(c, status, "Invalid_file", message)
		return
	}

	db := server.db(ctx)
	previous, err := models.ReplaceProfileImage(db, userID, &file)
	if err != nil {
		server.removeStoredFiles(ctx, []models.File{file})
		respondError(c, err)
		return
	}
	if previous != nil {
		server.removeStoredFiles(ctx, []models.File{*previous})
	}
	server.respondCurrentUser(c, db, userID)
}

func (server *Server) UpdatePassword(c *gin.Context) {
	userID := httpctx.ViewerID(c)
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusUnprocessableEntity, "Invalid_request", "Cannot unmarshal body")
		return
	}
	if req.NewPassword != req.NewPasswordCheck {
		respondMessage(c, http.StatusUnprocessableEntity, "Password_mismatch", "Passwords do not match")
		return
	}
	if !security.CheckPasswordPolicy(req.NewPassword) {
		respondMessage(c, http.StatusUnprocessableEntity, "Invalid_password", security.PasswordPolicyMessage)
		return
	}

	db := server.db(c.Request.Context())
	user, err := models.FindUserByID(db, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := security.VerifyPassword(user.Password, req.Password); err != nil {
		respondMessage(c, http.StatusUnauthorized, "Incorrect_password", "Incorrect Password")
		return
	}
	hashed, err := security.Hash(req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := models.UpdatePassword(db, userID, string(hashed)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Password updated",
	})
}

// DeleteUser removes the account with its feeds, comments, likes and follow edges.
func (server *Server) DeleteUser(c *gin.Context) {
	userID := httpctx.ViewerID(c)
	var req deleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusUnprocessableEntity, "Invalid_request", "Cannot unmarshal body")
		return
	}

	ctx := c.Request.Context()
	db := server.db(ctx)
	user, err := models.FindUserByID(db, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := security.VerifyPassword(user.Password, req.Password); err != nil {
		respondMessage(c, http.StatusUnauthorized, "Incorrect_password", "Incorrect Password")
		return
	}

	files, err := models.DeleteUser(db, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	server.removeStoredFiles(ctx, files)
	logging.Log.WithField("user_id", userID).Info("user deleted")

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "User deleted",
	})
}

func (server *Server) respondCurrentUser(c *gin.Context, db *gorm.DB, userID uint) {
	user, err := models.FindUserByID(db, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userToDTO(user),
	})
}
