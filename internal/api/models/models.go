package models

import "time"

// Article is the article representation returned to clients.
type Article struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	Content      string    `json:"content"`
	Category     string    `json:"category"`
	Author       string    `json:"author"`
	AuthorAvatar string    `json:"author_avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	PublishedAgo string    `json:"published_ago"`
	UpdatedAgo   string    `json:"updated_ago"`
}

// ArticlePage is one page of the paginated article list.
type ArticlePage struct {
	Articles   []Article `json:"articles"`
	Current    int       `json:"current"`
	TotalPages int       `json:"total_pages"`
}

// User is the public user representation.
// It deliberately excludes the email address and password hash.
type User struct {
	ID       uint      `json:"id"`
	Username string    `json:"username"`
	Avatar   string    `json:"avatar,omitempty"`
	JoinedAt time.Time `json:"joined_at"`
}
