package templates

import "time"

// Page carries the values every rendered page needs: site metadata from
// configuration and whether the admin is signed in.
type Page struct {
	SiteName    string
	Tagline     string
	GitHubURL   string
	LinkedInURL string
	Email       string
	SignedIn    bool
}

// PostView is a post prepared for rendering: Markdown already converted,
// preview text and reading time precomputed.
type PostView struct {
	ID          uint
	Title       string
	Slug        string
	Preview     string
	ContentHTML string
	Published   bool
	ReadingTime int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProjectView is a project prepared for rendering.
type ProjectView struct {
	ID              uint
	Title           string
	DescriptionHTML string
	Preview         string
	TechList        []string
	URL             string
	GithubURL       string
	ImageURL        string
	Featured        bool
	SortOrder       int
}

// HomeData bundles the landing page content.
type HomeData struct {
	FeaturedProjects []ProjectView
	RecentPosts      []PostView
}

// LoginData bundles the login form state.
type LoginData struct {
	Username string
	Error    string
}

// DashboardData bundles the admin dashboard content.
type DashboardData struct {
	TotalPosts     int64
	PublishedPosts int64
	DraftPosts     int64
	TotalProjects  int64
	RecentPosts    []PostView
	Projects       []ProjectView
}

// PostForm carries editor state for creating or updating a post. A zero ID
// means the form creates a new post.
type PostForm struct {
	ID        uint
	Title     string
	Content   string
	Excerpt   string
	Published bool
	Error     string
	Saved     bool
}

// ProjectForm carries editor state for creating or updating a project.
type ProjectForm struct {
	ID          uint
	Title       string
	Description string
	TechStack   string
	URL         string
	GithubURL   string
	ImageURL    string
	Featured    bool
	SortOrder   int
	Error       string
	Saved       bool
}

// ErrorData holds information for rendering an error view.
type ErrorData struct {
	StatusLabel string
	Message     string
}
