package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// User represents a registered author.
// The password is stored as a bcrypt hash, never in the clear.
// Whether a user is logged in is tracked in the session, not here.
type User struct {
	gorm.Model
	Username     string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Articles     []Article `gorm:"constraint:OnDelete:SET NULL;"`
}

func (c *Client) CreateUser(ctx context.Context, user *User) error {
	if err := c.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		log.Error("failed to create user", "error", err)
		return err
	}
	return nil
}

func (c *Client) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get user by ID", "error", err)
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get user by email", "error", err)
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetAllUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		log.Error("failed to get all users", "error", err)
		return nil, err
	}
	return users, nil
}

func (c *Client) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&User{}).Count(&count).Error; err != nil {
		log.Error("failed to count users", "error", err)
		return 0, err
	}
	return count, nil
}
