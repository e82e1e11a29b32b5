package models

import (
	"github.com/mergestat/timediff"
	"github.com/samber/lo"

	"github.com/penmark/penmark/internal/config"
	"github.com/penmark/penmark/internal/database"
	"github.com/penmark/penmark/internal/gravatar"
)

// avatarOptions maps the gravatar config section onto gravatar.Options.
// A nil section disables avatars.
func avatarOptions(cfg *config.GravatarConfig) gravatar.Options {
	if cfg == nil {
		return gravatar.Options{}
	}
	return gravatar.Options{
		Enabled:      cfg.Enabled,
		DefaultImage: cfg.DefaultImage,
		Rating:       cfg.Rating,
		Size:         cfg.Size,
	}
}

// ToArticle converts a database.Article to its client representation.
func ToArticle(a database.Article, cfg *config.GravatarConfig) Article {
	return Article{
		ID:           a.ID,
		Title:        a.Title,
		Summary:      a.Summary,
		Content:      a.Content,
		Category:     a.Category,
		Author:       a.User.Username,
		AuthorAvatar: gravatar.URL(a.User.Email, avatarOptions(cfg)),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
		PublishedAgo: timediff.TimeDiff(a.CreatedAt),
		UpdatedAgo:   timediff.TimeDiff(a.UpdatedAt),
	}
}

// ToArticles converts a slice of database.Article.
func ToArticles(articles []database.Article, cfg *config.GravatarConfig) []Article {
	return lo.Map(articles, func(a database.Article, _ int) Article {
		return ToArticle(a, cfg)
	})
}

// ToUser converts a database.User to its public representation.
// The email feeds the avatar hash but is never included itself.
func ToUser(u database.User, cfg *config.GravatarConfig) User {
	return User{
		ID:       u.ID,
		Username: u.Username,
		Avatar:   gravatar.URL(u.Email, avatarOptions(cfg)),
		JoinedAt: u.CreatedAt,
	}
}

// ToUsers converts a slice of database.User.
func ToUsers(users []database.User, cfg *config.GravatarConfig) []User {
	return lo.Map(users, func(u database.User, _ int) User {
		return ToUser(u, cfg)
	})
}
