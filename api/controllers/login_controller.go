package controllers

import (
	"net/http"
	"strings"

	"github.com/5pponent/diary-server/api/auth"
	"github.com/5pponent/diary-server/api/logging"
	"github.com/5pponent/diary-server/api/mailer"
	"github.com/5pponent/diary-server/api/models"
	"github.com/5pponent/diary-server/api/security"

	"github.com/badoux/checkmail"
	"github.com/gin-gonic/gin"
)

type mailRequest struct {
	Email string `json:"email" binding:"required"`
}

type mailCheckRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

type joinRequest struct {
	UID           string `json:"uid"`
	Password      string `json:"password"`
	PasswordCheck string `json:"passwordCheck"`
	Name          string `json:"name"`
	Email         string `json:"email"`
}

type loginRequest struct {
	UID      string `json:"uid"`
	Password string `json:"password"`
	Code     string `json:"code"`
}

func joinCodeKey(email string) string { return "join:" + email }

func loginCodeKey(uid string) string { return "login:" + uid }

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SendJoinMail mails a join code to an address that is not registered yet.
func (server *Server) SendJoinMail(c *gin.Context) {
	var req mailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusUnprocessableEntity, "Invalid_request", "Cannot unmarshal body")
		return
	}
	email := normalizeEmail(req.Email)
	if err := checkmail.ValidateFormat(email); err != nil {
		respondMessage(c, http.StatusUnprocessableEntity, "Invalid_email", "Invalid Email")
		return
	}

	ctx := c.Request.Context()
	taken, err := models.EmailExists(server.db(ctx), email, 0)
	if err != nil {
		respondError(c, err)
		return
	}
	if taken {
		respondError(c, models.ErrDuplicateEmail)
		return
	}

	code, err := server.Codes.Issue(ctx, joinCodeKey(email))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := server.Mailer.SendAuthCode(ctx, email, code, mailer.PurposeJoin); err != nil {
		logging.Log.WithError(err).WithField("email", email).Error("send join code")
		respondMessage(c, http.StatusInternalServerError, "Mail_failed", "Could not send the auth code")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Auth code sent",
	})
}

// CheckMailCode consumes a join code and marks the address verified.
func (server *Server) CheckMailCode(c *gin.Context) {
	var req mailCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusUnprocessableEntity, "Invalid_request", "Cannot unmarshal body")
		return
	}
	email := normalizeEmail(req.Email)
	ctx := c.Request.Context()

	if err := server.Codes.Check(ctx, joinCodeKey(email), strings.TrimSpace(req.Code)); err != nil {
		respondError(c, err)
		return
	}
	if err := server.Codes.MarkVerified(ctx, email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Email verified",
	})
}

// Join registers a user whose e-mail was verified and logs them in.
func (server *Server) Join(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusUnprocessableEntity, "Invalid_request", "Cannot unmarshal body")
		return
	}
	if req.Password != req.PasswordCheck {
		respondMessage(c, http.StatusUnprocessableEntity, "Password_mismatch", "Passwords do not match")
		return
	}

	user := models.User{
		UID:      req.UID,
		Password: req.Password,
		Name:     req.Name,
		Email:    req.Email,
	}
	user.Prepare()
	if errorMessages := user.Validate(""); len(errorMessages) > 0 {
		respondErrors(c, http.StatusUnprocessableEntity, errorMessages)
		return
	}

	ctx := c.Request.Context()
	db := server.db(ctx)
	if taken, err := models.UIDExists(db, user.UID); err != nil {
		respondError(c, err)
		return
	} else if taken {
		respondError(c, models.ErrDuplicateUID)
		return
	}
	if taken, err := models.EmailExists(db, user.Email, 0); err != nil {
		respondError(c, err)
		return
	} else if taken {
		respondError(c, models.ErrDuplicateEmail)
		return
	}
	if err := server.Codes.RequireVerified(ctx, user.Email); err != nil {
		respondError(c, err)
		return
	}

	if err := user.HashPassword(); err != nil {
		respondError(c, err)
		return
	}
	user.IP = c.ClientIP()
	created, err := user.SaveUser(db)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := server.Codes.ConsumeVerified(ctx, created.Email); err != nil {
		logging.Log.WithError(err).WithField("user_id", created.ID).Warn("cannot clear verified mail marker")
	}

	token, err := server.Tokens.CreateToken(created.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": LoginDTO{Token: token, User: userToDTO(created)},
	})
}

// Login issues a token, or asks for a mailed code when the request comes from
// an address the user has not confirmed.
func (server *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusUnprocessableEntity, "Invalid_request", "Cannot unmarshal body")
		return
	}
	ctx := c.Request.Context()
	user, ok := server.authenticate(c, req)
	if !ok {
		return
	}

	if user.LoginWait || user.IP != c.ClientIP() {
		db := server.db(ctx)
		if err := models.SetLoginWait(db, user.ID, true); err != nil {
			respondError(c, err)
			return
		}
		code, err := server.Codes.Issue(ctx, loginCodeKey(user.UID))
		if err != nil {
			respondError(c, err)
			return
		}
		if err := server.Mailer.SendAuthCode(ctx, user.Email, code, mailer.PurposeLogin); err != nil {
			logging.Log.WithError(err).WithField("uid", user.UID).Error("send login code")
		}
		respondError(c, auth.ErrMailAuthRequired)
		return
	}

	server.respondToken(c, http.StatusOK, user)
}

// LoginWithMail completes a login that required a mailed code and remembers
// the request address.
func (server *Server) LoginWithMail(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusUnprocessableEntity, "Invalid_request", "Cannot unmarshal body")
		return
	}
	ctx := c.Request.Context()
	user, ok := server.authenticate(c, req)
	if !ok {
		return
	}
	if err := server.Codes.Check(ctx, loginCodeKey(user.UID), strings.TrimSpace(req.Code)); err != nil {
		respondError(c, err)
		return
	}
	if err := models.ConfirmLogin(server.db(ctx), user.ID, c.ClientIP()); err != nil {
		respondError(c, err)
		return
	}
	server.respondToken(c, http.StatusOK, user)
}

func (server *Server) authenticate(c *gin.Context, req loginRequest) (*models.User, bool) {
	credentials := models.User{UID: req.UID, Password: req.Password}
	credentials.Prepare()
	if errorMessages := credentials.Validate("login"); len(errorMessages) > 0 {
		respondErrors(c, http.StatusUnprocessableEntity, errorMessages)
		return nil, false
	}

	user, err := models.FindUserByUID(server.db(c.Request.Context()), credentials.UID)
	if err != nil {
		if models.IsNotFound(err) {
			err = auth.ErrLoginFailed
		}
		respondError(c, err)
		return nil, false
	}
	if err := security.VerifyPassword(user.Password, credentials.Password); err != nil {
		respondError(c, auth.ErrLoginFailed)
		return nil, false
	}
	return user, true
}

func (server *Server) respondToken(c *gin.Context, status int, user *models.User) {
	token, err := server.Tokens.CreateToken(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, gin.H{
		"status":   status,
		"response": LoginDTO{Token: token, User: userToDTO(user)},
	})
}
