package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/gosimple/slug"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// ErrNotFound indicates the requested content does not exist or is not
// visible to the acting user. Drafts hidden from anonymous viewers produce
// the same error so their existence never leaks.
var ErrNotFound = eris.New("content not found")

// ValidationError marks rejected input. Handlers re-render the submitting
// form with the message instead of failing the request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidInput(message string) error {
	return &ValidationError{Message: message}
}

// Service defines the content operations exposed to the transport layer.
// Mutations are only reachable behind the admin gate; reads take the acting
// user explicitly (nil means anonymous) and apply visibility rules here
// rather than in the handlers.
type Service interface {
	CreatePost(ctx context.Context, input PostInput) (*Post, error)
	UpdatePost(ctx context.Context, id uint, input PostUpdate) (*Post, error)
	DeletePost(ctx context.Context, id uint) error
	GetPostByID(ctx context.Context, id uint) (*Post, error)
	GetPostBySlug(ctx context.Context, slugValue string, actor *User) (*Post, error)
	ListPosts(ctx context.Context, actor *User) ([]Post, error)
	RecentPublishedPosts(ctx context.Context, limit int) ([]Post, error)

	CreateProject(ctx context.Context, input ProjectInput) (*Project, error)
	UpdateProject(ctx context.Context, id uint, input ProjectUpdate) (*Project, error)
	DeleteProject(ctx context.Context, id uint) error
	GetProjectByID(ctx context.Context, id uint) (*Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	FeaturedProjects(ctx context.Context, limit int) ([]Project, error)

	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

// PostInput carries the fields for a new post.
type PostInput struct {
	Title     string
	Content   string
	Excerpt   string
	Published bool
}

// PostUpdate carries a partial update; nil fields are left unchanged.
type PostUpdate struct {
	Title     *string
	Content   *string
	Excerpt   *string
	Published *bool
}

// ProjectInput carries the fields for a new project.
type ProjectInput struct {
	Title       string
	Description string
	TechStack   string
	URL         string
	GithubURL   string
	ImageURL    string
	Featured    bool
	SortOrder   int
}

// ProjectUpdate carries a partial update; nil fields are left unchanged.
type ProjectUpdate struct {
	Title       *string
	Description *string
	TechStack   *string
	URL         *string
	GithubURL   *string
	ImageURL    *string
	Featured    *bool
	SortOrder   *int
}

// DashboardStats summarises content for the admin dashboard.
type DashboardStats struct {
	TotalPosts     int64
	PublishedPosts int64
	DraftPosts     int64
	TotalProjects  int64
	RecentPosts    []Post
	Projects       []Project
}

type service struct {
	repo      Repository
	logger    *logrus.Logger
	sentryHub *sentry.Hub
}

var _ Service = (*service)(nil)

// NewService wires the content service with its dependencies.
func NewService(repo Repository, logger *logrus.Logger, hub *sentry.Hub) (Service, error) {
	if repo == nil {
		return nil, eris.New("content repository is required")
	}

	return &service{repo: repo, logger: logger, sentryHub: hub}, nil
}

func (s *service) CreatePost(ctx context.Context, input PostInput) (*Post, error) {
	title := strings.TrimSpace(input.Title)
	body := strings.TrimSpace(input.Content)
	if title == "" || body == "" {
		return nil, invalidInput("Title and content are required")
	}
	if len(title) > 200 {
		return nil, invalidInput("Title must be 200 characters or fewer")
	}
	excerpt := strings.TrimSpace(input.Excerpt)
	if len(excerpt) > 500 {
		return nil, invalidInput("Excerpt must be 500 characters or fewer")
	}

	slugValue, err := s.uniquePostSlug(ctx, title, 0)
	if err != nil {
		return nil, err
	}

	post := &Post{
		Title:     title,
		Slug:      slugValue,
		Content:   body,
		Excerpt:   excerpt,
		Published: input.Published,
	}

	if err := s.repo.CreatePost(ctx, post); err != nil {
		s.recordError(logrus.Fields{"slug": slugValue}, err, "persisting new post")
		return nil, err
	}

	return post, nil
}

func (s *service) UpdatePost(ctx context.Context, id uint, input PostUpdate) (*Post, error) {
	post, err := s.repo.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, eris.Wrapf(ErrNotFound, "updating post: %d", id)
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, invalidInput("Title and content are required")
		}
		if len(title) > 200 {
			return nil, invalidInput("Title must be 200 characters or fewer")
		}
		post.Title = title
	}
	if input.Content != nil {
		body := strings.TrimSpace(*input.Content)
		if body == "" {
			return nil, invalidInput("Title and content are required")
		}
		post.Content = body
	}
	if input.Excerpt != nil {
		excerpt := strings.TrimSpace(*input.Excerpt)
		if len(excerpt) > 500 {
			return nil, invalidInput("Excerpt must be 500 characters or fewer")
		}
		post.Excerpt = excerpt
	}
	if input.Published != nil {
		post.Published = *input.Published
	}

	// Best-effort slug tracking: a retitled post adopts the freshly derived
	// slug only when no other post holds it. On collision the old slug is
	// silently kept so published URLs never break mid-update.
	if input.Title != nil {
		newSlug := slug.Make(post.Title)
		if newSlug != "" && newSlug != post.Slug {
			taken, err := s.repo.PostSlugTaken(ctx, newSlug, post.ID)
			if err != nil {
				return nil, err
			}
			if !taken {
				post.Slug = newSlug
			}
		}
	}

	if err := s.repo.SavePost(ctx, post); err != nil {
		s.recordError(logrus.Fields{"post_id": id}, err, "persisting post update")
		return nil, err
	}

	return post, nil
}

func (s *service) DeletePost(ctx context.Context, id uint) error {
	if err := s.repo.DeletePost(ctx, id); err != nil {
		if !eris.Is(err, ErrNotFound) {
			s.recordError(logrus.Fields{"post_id": id}, err, "deleting post")
		}
		return err
	}
	return nil
}

func (s *service) GetPostByID(ctx context.Context, id uint) (*Post, error) {
	post, err := s.repo.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, eris.Wrapf(ErrNotFound, "fetching post: %d", id)
	}
	return post, nil
}

func (s *service) GetPostBySlug(ctx context.Context, slugValue string, actor *User) (*Post, error) {
	trimmed := strings.TrimSpace(slugValue)
	if trimmed == "" {
		return nil, eris.Wrap(ErrNotFound, "fetching post: empty slug")
	}

	post, err := s.repo.GetPostBySlug(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	if post == nil || (actor == nil && !post.Published) {
		return nil, eris.Wrapf(ErrNotFound, "fetching post: %s", trimmed)
	}

	return post, nil
}

func (s *service) ListPosts(ctx context.Context, actor *User) ([]Post, error) {
	return s.repo.ListPosts(ctx, actor == nil, 0)
}

func (s *service) RecentPublishedPosts(ctx context.Context, limit int) ([]Post, error) {
	return s.repo.ListPosts(ctx, true, limit)
}

func (s *service) CreateProject(ctx context.Context, input ProjectInput) (*Project, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	techStack := strings.TrimSpace(input.TechStack)
	if title == "" || description == "" || techStack == "" {
		return nil, invalidInput("Title, description, and tech stack are required")
	}

	project := &Project{
		Title:       title,
		Description: description,
		TechStack:   techStack,
		URL:         normalizeLink(input.URL),
		GithubURL:   normalizeLink(input.GithubURL),
		ImageURL:    normalizeLink(input.ImageURL),
		Featured:    input.Featured,
		SortOrder:   input.SortOrder,
	}

	if err := s.repo.CreateProject(ctx, project); err != nil {
		s.recordError(logrus.Fields{"title": title}, err, "persisting new project")
		return nil, err
	}

	return project, nil
}

func (s *service) UpdateProject(ctx context.Context, id uint, input ProjectUpdate) (*Project, error) {
	project, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, eris.Wrapf(ErrNotFound, "updating project: %d", id)
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, invalidInput("Title, description, and tech stack are required")
		}
		project.Title = title
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return nil, invalidInput("Title, description, and tech stack are required")
		}
		project.Description = description
	}
	if input.TechStack != nil {
		techStack := strings.TrimSpace(*input.TechStack)
		if techStack == "" {
			return nil, invalidInput("Title, description, and tech stack are required")
		}
		project.TechStack = techStack
	}
	if input.URL != nil {
		project.URL = normalizeLink(*input.URL)
	}
	if input.GithubURL != nil {
		project.GithubURL = normalizeLink(*input.GithubURL)
	}
	if input.ImageURL != nil {
		project.ImageURL = normalizeLink(*input.ImageURL)
	}
	if input.Featured != nil {
		project.Featured = *input.Featured
	}
	if input.SortOrder != nil {
		project.SortOrder = *input.SortOrder
	}

	if err := s.repo.SaveProject(ctx, project); err != nil {
		s.recordError(logrus.Fields{"project_id": id}, err, "persisting project update")
		return nil, err
	}

	return project, nil
}

func (s *service) DeleteProject(ctx context.Context, id uint) error {
	if err := s.repo.DeleteProject(ctx, id); err != nil {
		if !eris.Is(err, ErrNotFound) {
			s.recordError(logrus.Fields{"project_id": id}, err, "deleting project")
		}
		return err
	}
	return nil
}

func (s *service) GetProjectByID(ctx context.Context, id uint) (*Project, error) {
	project, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, eris.Wrapf(ErrNotFound, "fetching project: %d", id)
	}
	return project, nil
}

func (s *service) ListProjects(ctx context.Context) ([]Project, error) {
	return s.repo.ListProjects(ctx)
}

func (s *service) FeaturedProjects(ctx context.Context, limit int) ([]Project, error) {
	return s.repo.FeaturedProjects(ctx, limit)
}

func (s *service) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	totalPosts, err := s.repo.CountPosts(ctx)
	if err != nil {
		return nil, err
	}

	publishedPosts, err := s.repo.CountPublishedPosts(ctx)
	if err != nil {
		return nil, err
	}

	totalProjects, err := s.repo.CountProjects(ctx)
	if err != nil {
		return nil, err
	}

	recentPosts, err := s.repo.RecentlyUpdatedPosts(ctx, 5)
	if err != nil {
		return nil, err
	}

	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalPosts:     totalPosts,
		PublishedPosts: publishedPosts,
		DraftPosts:     totalPosts - publishedPosts,
		TotalProjects:  totalProjects,
		RecentPosts:    recentPosts,
		Projects:       projects,
	}, nil
}

// uniquePostSlug derives a slug from the title and appends -1, -2, ... until
// it is free. The check and the later insert are not serialized; SQLite's
// unique index on the slug column is the backstop for concurrent creations.
func (s *service) uniquePostSlug(ctx context.Context, title string, excludeID uint) (string, error) {
	base := slug.Make(title)
	if base == "" {
		return "", invalidInput("Title must contain at least one usable character")
	}

	taken, err := s.repo.PostSlugTaken(ctx, base, excludeID)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s-%d", base, counter)
		taken, err := s.repo.PostSlugTaken(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

// normalizeLink prefixes bare links with https://, leaving empty values and
// links that already carry a scheme untouched.
func normalizeLink(link string) string {
	trimmed := strings.TrimSpace(link)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}

	return "https://" + trimmed
}

func (s *service) recordError(fields logrus.Fields, err error, message string) {
	if err == nil {
		return
	}

	if s.logger != nil {
		entry := s.logger.WithField("error", err.Error())
		if len(fields) > 0 {
			entry = entry.WithFields(fields)
		}
		entry.Error(message)
	}

	if s.sentryHub != nil {
		s.sentryHub.CaptureException(err)
	}
}
