package content

import (
	"strings"
	"time"
)

// User is the single admin account able to mutate content.
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"size:50;uniqueIndex:idx_users_username;not null"`
	PasswordHash string    `gorm:"size:128;not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName defines the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Post is a blog entry. Drafts (Published false) are only visible to the
// authenticated admin.
type Post struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"size:200;not null"`
	Slug      string    `gorm:"size:200;uniqueIndex:idx_posts_slug;not null"`
	Content   string    `gorm:"type:text;not null"`
	Excerpt   string    `gorm:"size:500"`
	Published bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName defines the table name for the Post model.
func (Post) TableName() string {
	return "posts"
}

// Project is a portfolio entry. All projects are publicly visible.
type Project struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"size:200;not null"`
	Description string    `gorm:"type:text;not null"`
	TechStack   string    `gorm:"size:500;not null"`
	URL         string    `gorm:"size:500"`
	GithubURL   string    `gorm:"size:500"`
	ImageURL    string    `gorm:"size:500"`
	Featured    bool      `gorm:"not null;default:false"`
	SortOrder   int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName defines the table name for the Project model.
func (Project) TableName() string {
	return "projects"
}

// TechList splits the comma-separated tech stack into an ordered list with
// whitespace trimmed per entry.
func (p Project) TechList() []string {
	if strings.TrimSpace(p.TechStack) == "" {
		return nil
	}

	parts := strings.Split(p.TechStack, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}
