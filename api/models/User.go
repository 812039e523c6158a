package models

import (
	"encoding/json"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/5pponent/diary-server/api/security"

	"github.com/badoux/checkmail"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MaxNameLength    = 20
	MaxMessageLength = 100
	MaxInterests     = 3
)

type User struct {
	ID             uint           `gorm:"primary_key;autoIncrement" json:"id"`
	UID            string         `gorm:"column:uid;size:50;not null;unique" json:"uid"`
	Email          string         `gorm:"size:100;not null;unique" json:"email"`
	Password       string         `gorm:"size:255;not null" json:"-"`
	Name           string         `gorm:"size:20;not null;index" json:"name"`
	Message        string         `gorm:"size:100" json:"message"`
	OccupationID   *uint          `json:"-"`
	Occupation     *Occupation    `gorm:"foreignKey:OccupationID;constraint:OnDelete:SET NULL" json:"occupation,omitempty"`
	Interests      datatypes.JSON `json:"interests"`
	ProfileImageID *uint          `json:"-"`
	ProfileImage   *File          `gorm:"foreignKey:ProfileImageID;-:migration" json:"image,omitempty"`
	IP             string         `gorm:"column:ip;size:64" json:"-"`
	LoginWait      bool           `gorm:"not null;default:false" json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (u *User) HashPassword() error {
	hashedPassword, err := security.Hash(u.Password)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) Prepare() {
	u.UID = strings.TrimSpace(u.UID)
	u.Email = html.EscapeString(strings.ToLower(strings.TrimSpace(u.Email)))
	u.Name = html.EscapeString(strings.TrimSpace(u.Name))
	u.Message = html.EscapeString(strings.TrimSpace(u.Message))
}

func (u *User) Validate(action string) map[string]string {
	var errorMessages = make(map[string]string)

	switch strings.ToLower(action) {
	case "login":
		if u.UID == "" {
			errorMessages["Required_uid"] = "Required UID"
		}
		if u.Password == "" {
			errorMessages["Required_password"] = "Required Password"
		}
	case "info":
		u.validateProfile(errorMessages)
		if u.Email == "" {
			errorMessages["Required_email"] = "Required Email"
		} else if err := checkmail.ValidateFormat(u.Email); err != nil {
			errorMessages["Invalid_email"] = "Invalid Email"
		}
	default:
		if u.UID == "" {
			errorMessages["Required_uid"] = "Required UID"
		}
		if u.Password == "" {
			errorMessages["Required_password"] = "Required Password"
		} else if !security.CheckPasswordPolicy(u.Password) {
			errorMessages["Invalid_password"] = security.PasswordPolicyMessage
		}
		u.validateProfile(errorMessages)
		if u.Email == "" {
			errorMessages["Required_email"] = "Required Email"
		} else if err := checkmail.ValidateFormat(u.Email); err != nil {
			errorMessages["Invalid_email"] = "Invalid Email"
		}
	}
	return errorMessages
}

func (u *User) validateProfile(errorMessages map[string]string) {
	if u.Name == "" {
		errorMessages["Required_name"] = "Required Name"
	}
	if utf8.RuneCountInString(u.Name) > MaxNameLength {
		errorMessages["Invalid_name"] = "Name should be at most 20 characters"
	}
	if utf8.RuneCountInString(u.Message) > MaxMessageLength {
		errorMessages["Invalid_message"] = "Message should be at most 100 characters"
	}
}

// InterestList decodes the stored interests; a missing column reads as empty.
func (u *User) InterestList() []string {
	interests := []string{}
	if len(u.Interests) == 0 {
		return interests
	}
	if err := json.Unmarshal(u.Interests, &interests); err != nil {
		return []string{}
	}
	return interests
}

func (u *User) SetInterests(interests []string) error {
	cleaned := make([]string, 0, len(interests))
	seen := make(map[string]struct{}, len(interests))
	for _, interest := range interests {
		interest = strings.TrimSpace(interest)
		if interest == "" {
			continue
		}
		if _, ok := seen[interest]; ok {
			continue
		}
		seen[interest] = struct{}{}
		cleaned = append(cleaned, interest)
	}
	if len(cleaned) > MaxInterests {
		return ErrInterestsExceeded
	}
	raw, err := json.Marshal(cleaned)
	if err != nil {
		return err
	}
	u.Interests = datatypes.JSON(raw)
	return nil
}

// SaveUser inserts a new user after checking uid and e-mail uniqueness. The
// password must already be hashed.
func (u *User) SaveUser(db *gorm.DB) (*User, error) {
	if taken, err := UIDExists(db, u.UID); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrDuplicateUID
	}
	if taken, err := EmailExists(db, u.Email, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrDuplicateEmail
	}
	if err := db.Create(u).Error; err != nil {
		return nil, errors.Wrap(err, "create user")
	}
	return u, nil
}

func FindUserByID(db *gorm.DB, id uint) (*User, error) {
	var user User
	err := db.Preload("ProfileImage").Preload("Occupation").Where("id = ?", id).Take(&user).Error
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound)
	}
	return &user, nil
}

func FindUserByUID(db *gorm.DB, uid string) (*User, error) {
	var user User
	err := db.Preload("ProfileImage").Preload("Occupation").Where("uid = ?", uid).Take(&user).Error
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound)
	}
	return &user, nil
}

func UIDExists(db *gorm.DB, uid string) (bool, error) {
	var count int64
	if err := db.Model(&User{}).Where("uid = ?", uid).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// EmailExists reports whether another user than exceptID owns the address.
func EmailExists(db *gorm.DB, email string, exceptID uint) (bool, error) {
	var count int64
	q := db.Model(&User{}).Where("email = ?", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (u *User) UpdateInfo(db *gorm.DB) (*User, error) {
	if taken, err := EmailExists(db, u.Email, u.ID); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrDuplicateEmail
	}
	err := db.Model(&User{}).Where("id = ?", u.ID).Updates(map[string]interface{}{
		"name":       u.Name,
		"email":      u.Email,
		"message":    u.Message,
		"updated_at": time.Now(),
	}).Error
	if err != nil {
		return nil, errors.Wrap(err, "update user info")
	}
	return FindUserByID(db, u.ID)
}

// OccupationName is the name of the user's occupation, or "" when none is set.
func (u *User) OccupationName() string {
	if u.Occupation == nil {
		return ""
	}
	return u.Occupation.Name
}

// UpdateOccupation points the user at the catalog entry with the given name.
func UpdateOccupation(db *gorm.DB, userID uint, name string) error {
	occupation, err := FindOccupationByName(db, name)
	if err != nil {
		return err
	}
	return db.Model(&User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"occupation_id": occupation.ID,
		"updated_at":    time.Now(),
	}).Error
}

// UpdateInterests stores the interests set by SetInterests. Every interest
// must name a catalog occupation.
func (u *User) UpdateInterests(db *gorm.DB) error {
	if err := CheckOccupations(db, u.InterestList()); err != nil {
		return err
	}
	return db.Model(&User{}).Where("id = ?", u.ID).Updates(map[string]interface{}{
		"interests":  u.Interests,
		"updated_at": time.Now(),
	}).Error
}

func UpdatePassword(db *gorm.DB, userID uint, hashed string) error {
	return db.Model(&User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password":   hashed,
		"updated_at": time.Now(),
	}).Error
}

// SetLoginWait marks or clears the mail-confirmation requirement for the next login.
func SetLoginWait(db *gorm.DB, userID uint, wait bool) error {
	return db.Model(&User{}).Where("id = ?", userID).Update("login_wait", wait).Error
}

// ConfirmLogin records the address a login was confirmed from and clears login-wait.
func ConfirmLogin(db *gorm.DB, userID uint, ip string) error {
	return db.Model(&User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"ip":         ip,
		"login_wait": false,
	}).Error
}

// ReplaceProfileImage stores the new image row and points the user at it. The
// previous image row, if any, is removed and returned so its object can be deleted.
func ReplaceProfileImage(db *gorm.DB, userID uint, image *File) (*File, error) {
	var previous *File
	err := db.Transaction(func(tx *gorm.DB) error {
		user, err := FindUserByID(tx, userID)
		if err != nil {
			return err
		}
		image.FeedID = nil
		if err := tx.Create(image).Error; err != nil {
			return errors.Wrap(err, "create profile image")
		}
		if err := tx.Model(&User{}).Where("id = ?", userID).Update("profile_image_id", image.ID).Error; err != nil {
			return err
		}
		if user.ProfileImage != nil {
			previous = user.ProfileImage
			return tx.Delete(&File{}, previous.ID).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return previous, nil
}
