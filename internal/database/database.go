package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when a user's email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)

// DB defines the interface for database operations.
type DB interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	CountUsers(ctx context.Context) (int64, error)

	CreateArticle(ctx context.Context, article *Article) error
	GetArticleByID(ctx context.Context, id uint) (*Article, error)
	ListArticles(ctx context.Context, limit, offset int) ([]Article, error)
	CountArticles(ctx context.Context) (int64, error)
	SearchArticles(ctx context.Context, keyword string) ([]Article, error)
	UpdateArticle(ctx context.Context, article *Article) error
	DeleteArticle(ctx context.Context, id uint) error

	Migrate() error
	Close() error
}

var _ DB = (*Client)(nil) // Ensure Client implements DB

// Client wraps the gorm.DB instance.
type Client struct {
	db *gorm.DB
}

// New creates a new database connection and performs migrations.
func New(dbpath string) (*Client, error) {
	db, err := gorm.Open(sqlite.Open(dbpath), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	c := &Client{db: db}
	if err := c.Migrate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Migrate creates or updates the database schema.
func (c *Client) Migrate() error {
	if err := c.db.AutoMigrate(
		&User{},
		&Article{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
