package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bitbucket.org/ksar/surveillance_backend/config"
	"bitbucket.org/ksar/surveillance_backend/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Username  string    `gorm:"size:50;not null;unique" json:"username"`
	FullName  string    `gorm:"size:255" json:"full_name"`
	Email     *string   `gorm:"size:255" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordInput struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,nefield=OldPassword"`
}

type LoginInfo struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

/*
caches:
	Token:$token -> username
	Tokens:$username -> set of live session tokens
*/

var errInvalidCredentials = fmt.Errorf("%w: invalid username or password", utils.ErrorUnauthorized)

// normalizeUsername is applied wherever a username is stored or looked up.
func normalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

func authenticate(ctx context.Context, input *LoginInput) (*User, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	db := config.GetDB()
	var user User
	err := db.WithContext(ctx).Where("username = ?", normalizeUsername(input.Username)).Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if err := utils.ComparePassword(user.Password, input.Password); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !utils.DereferencePtr(user.IsActive) {
		return nil, fmt.Errorf("%w: user is disabled", utils.ErrorUnauthorized)
	}
	return &user, nil
}

func Login(ctx context.Context, input *LoginInput) (*LoginInfo, error) {
	user, err := authenticate(ctx, input)
	if err != nil {
		return nil, err
	}

	token := uuid.New().String()
	// add new token to the user's tokens set
	if err := config.AddRedisSet("Tokens:"+user.Username, token); err != nil {
		return nil, err
	}
	if err := config.SetRedisValue("Token:"+token, user.Username, utils.TokenLifespan()); err != nil {
		return nil, err
	}

	return &LoginInfo{
		Token:    token,
		Username: user.Username,
		FullName: user.FullName,
	}, nil
}

// IssueApiToken exchanges credentials for a JWT for scripted clients.
func IssueApiToken(ctx context.Context, input *LoginInput) (string, error) {
	user, err := authenticate(ctx, input)
	if err != nil {
		return "", err
	}
	return utils.JwtGenerate(user.ID, user.Username)
}

// destroy current session
func Logout(ctx context.Context) (bool, error) {
	token, ok := utils.GetTokenFromContext(ctx)
	if !ok || token == "" {
		return false, fmt.Errorf("%w: token is required", utils.ErrorUnauthorized)
	}
	if err := config.RemoveRedisKey("Token:" + token); err != nil {
		return false, err
	}
	// remove current token from tokens list
	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok || username == "" {
		return false, utils.ErrorUnauthorized
	}
	if err := config.RemoveRedisSetMember("Tokens:"+username, token); err != nil {
		return false, err
	}
	return true, nil
}

func GetCurrentUser(ctx context.Context) (*User, error) {
	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok || username == "" {
		return nil, utils.ErrorUnauthorized
	}
	db := config.GetDB()
	var user User
	if err := db.WithContext(ctx).Where("username = ?", username).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorUnauthorized
		}
		return nil, err
	}
	return &user, nil
}

// ChangePassword also ends every other session of the user.
func ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	if err := utils.ValidateStruct(input); err != nil {
		return err
	}
	user, err := GetCurrentUser(ctx)
	if err != nil {
		return err
	}
	if err := utils.ComparePassword(user.Password, input.OldPassword); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("%w: old password is incorrect", utils.ErrorInvalidInput)
		}
		return err
	}
	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(&User{}).Where("id = ?", user.ID).Update("password", hashed).Error; err != nil {
		return err
	}

	current, _ := utils.GetTokenFromContext(ctx)
	return revokeSessions(user.Username, current)
}

func revokeSessions(username string, keep string) error {
	tokens, err := config.GetRedisSetMembers("Tokens:" + username)
	if err != nil {
		return err
	}
	for _, token := range tokens {
		if token == keep {
			continue
		}
		if err := config.RemoveRedisKey("Token:" + token); err != nil {
			return err
		}
		if err := config.RemoveRedisSetMember("Tokens:"+username, token); err != nil {
			return err
		}
	}
	return nil
}

// UpsertAdmin creates the user or resets its password and re-enables it.
func UpsertAdmin(ctx context.Context, db *gorm.DB, username string, fullName string, password string) (created bool, err error) {
	if len(password) < utils.MinPasswordLength {
		return false, fmt.Errorf("%w: password must be at least %d characters", utils.ErrorInvalidInput, utils.MinPasswordLength)
	}
	username = normalizeUsername(username)
	if username == "" {
		return false, fmt.Errorf("%w: username is required", utils.ErrorInvalidInput)
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return false, err
	}

	var existing User
	err = db.WithContext(ctx).Where("username = ?", username).Take(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}
		u := User{
			Username: username,
			FullName: fullName,
			Password: hashed,
			IsActive: utils.NewTrue(),
		}
		if err := db.WithContext(ctx).Create(&u).Error; err != nil {
			return false, err
		}
		return true, nil
	}

	if err := db.WithContext(ctx).Model(&User{}).Where("id = ?", existing.ID).Updates(map[string]any{
		"password":  hashed,
		"full_name": fullName,
		"is_active": true,
	}).Error; err != nil {
		return false, err
	}
	return false, revokeSessions(username, "")
}
