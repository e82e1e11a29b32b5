package database

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Article represents a published article.
// UserID records the owner at creation time and never changes.
type Article struct {
	gorm.Model
	Title    string `gorm:"not null"`
	Summary  string `gorm:"not null"`
	Content  string `gorm:"not null"`
	Category string `gorm:"not null"`
	UserID   uint   `gorm:"index;not null"`
	User     User
}

func (c *Client) CreateArticle(ctx context.Context, article *Article) error {
	if err := c.db.WithContext(ctx).Omit(clause.Associations).Create(article).Error; err != nil {
		log.Error("failed to create article", "error", err)
		return err
	}
	return nil
}

func (c *Client) GetArticleByID(ctx context.Context, id uint) (*Article, error) {
	var article Article
	if err := c.db.WithContext(ctx).Preload("User").First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get article by ID", "error", err)
		return nil, err
	}
	return &article, nil
}

// ListArticles returns articles newest-first. A negative limit returns all articles.
func (c *Client) ListArticles(ctx context.Context, limit, offset int) ([]Article, error) {
	var articles []Article
	err := c.db.WithContext(ctx).
		Preload("User").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	if err != nil {
		log.Error("failed to list articles", "error", err)
		return nil, err
	}
	return articles, nil
}

func (c *Client) CountArticles(ctx context.Context) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&Article{}).Count(&count).Error; err != nil {
		log.Error("failed to count articles", "error", err)
		return 0, err
	}
	return count, nil
}

// SearchArticles matches a case-insensitive substring on title or content,
// newest-first. An empty keyword matches every article.
func (c *Client) SearchArticles(ctx context.Context, keyword string) ([]Article, error) {
	pattern := "%" + strings.ToLower(keyword) + "%"
	var articles []Article
	err := c.db.WithContext(ctx).
		Preload("User").
		Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern).
		Order("id DESC").
		Find(&articles).Error
	if err != nil {
		log.Error("failed to search articles", "error", err)
		return nil, err
	}
	return articles, nil
}

func (c *Client) UpdateArticle(ctx context.Context, article *Article) error {
	if err := c.db.WithContext(ctx).Omit(clause.Associations).Save(article).Error; err != nil {
		log.Error("failed to update article", "error", err)
		return err
	}
	return nil
}

func (c *Client) DeleteArticle(ctx context.Context, id uint) error {
	result := c.db.WithContext(ctx).Delete(&Article{}, id)
	if result.Error != nil {
		log.Error("failed to delete article", "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
