package content

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Repository defines persistence operations for users, posts and projects.
type Repository interface {
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	CreatePost(ctx context.Context, post *Post) error
	SavePost(ctx context.Context, post *Post) error
	DeletePost(ctx context.Context, id uint) error
	GetPostByID(ctx context.Context, id uint) (*Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*Post, error)
	PostSlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
	ListPosts(ctx context.Context, publishedOnly bool, limit int) ([]Post, error)
	RecentlyUpdatedPosts(ctx context.Context, limit int) ([]Post, error)
	CountPosts(ctx context.Context) (int64, error)
	CountPublishedPosts(ctx context.Context) (int64, error)

	CreateProject(ctx context.Context, project *Project) error
	SaveProject(ctx context.Context, project *Project) error
	DeleteProject(ctx context.Context, id uint) error
	GetProjectByID(ctx context.Context, id uint) (*Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	FeaturedProjects(ctx context.Context, limit int) ([]Project, error)
	CountProjects(ctx context.Context) (int64, error)
}

// GormRepository persists content using a Gorm database connection.
type GormRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewRepository constructs a Gorm-backed repository implementation.
func NewRepository(conn *gorm.DB, logger *logrus.Logger) (*GormRepository, error) {
	if conn == nil {
		return nil, eris.New("gorm DB is required")
	}

	return &GormRepository{db: conn, logger: logger}, nil
}

var _ Repository = (*GormRepository)(nil)

// projectOrdering sorts by the admin-assigned order, ties broken by newest first.
const projectOrdering = "sort_order ASC, created_at DESC"

// GetUserByUsername returns the user for the provided username or nil when not found.
func (r *GormRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return nil, eris.New("username is required")
	}

	var user User
	err := r.db.WithContext(ctx).First(&user, "username = ?", trimmed).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logError(logrus.Fields{"username": trimmed}, err, "fetching user by username")
		return nil, eris.Wrapf(err, "fetching user by username: %s", trimmed)
	}

	return &user, nil
}

// CreatePost inserts a new post row.
func (r *GormRepository) CreatePost(ctx context.Context, post *Post) error {
	if post == nil {
		return eris.New("post is nil")
	}

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		r.logError(logrus.Fields{"slug": post.Slug}, err, "creating post")
		return eris.Wrapf(err, "creating post: %s", post.Slug)
	}

	return nil
}

// SavePost persists all fields of an existing post. Gorm refreshes UpdatedAt.
func (r *GormRepository) SavePost(ctx context.Context, post *Post) error {
	if post == nil {
		return eris.New("post is nil")
	}
	if post.ID == 0 {
		return eris.New("post ID is required")
	}

	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		r.logError(logrus.Fields{"post_id": post.ID}, err, "saving post")
		return eris.Wrapf(err, "saving post: %d", post.ID)
	}

	return nil
}

// DeletePost removes the post row permanently.
func (r *GormRepository) DeletePost(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Post{}, id)
	if result.Error != nil {
		r.logError(logrus.Fields{"post_id": id}, result.Error, "deleting post")
		return eris.Wrapf(result.Error, "deleting post: %d", id)
	}
	if result.RowsAffected == 0 {
		return eris.Wrapf(ErrNotFound, "deleting post: %d", id)
	}

	return nil
}

// GetPostByID returns the post for the provided id or nil when not found.
func (r *GormRepository) GetPostByID(ctx context.Context, id uint) (*Post, error) {
	var post Post
	err := r.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logError(logrus.Fields{"post_id": id}, err, "fetching post by id")
		return nil, eris.Wrapf(err, "fetching post by id: %d", id)
	}

	return &post, nil
}

// GetPostBySlug returns the post for the provided slug or nil when not found.
func (r *GormRepository) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, eris.New("slug is required")
	}

	var post Post
	err := r.db.WithContext(ctx).First(&post, "slug = ?", trimmed).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logError(logrus.Fields{"slug": trimmed}, err, "fetching post by slug")
		return nil, eris.Wrapf(err, "fetching post by slug: %s", trimmed)
	}

	return &post, nil
}

// PostSlugTaken reports whether a slug is already held by a post other than
// excludeID. Pass zero to consider every post.
func (r *GormRepository) PostSlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return false, eris.New("slug is required")
	}

	query := r.db.WithContext(ctx).Model(&Post{}).Where("slug = ?", trimmed)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		r.logError(logrus.Fields{"slug": trimmed}, err, "checking slug availability")
		return false, eris.Wrapf(err, "checking slug availability: %s", trimmed)
	}

	return count > 0, nil
}

// ListPosts returns posts ordered newest-created-first, optionally filtered
// to published posts and capped to limit (zero means no cap).
func (r *GormRepository) ListPosts(ctx context.Context, publishedOnly bool, limit int) ([]Post, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var posts []Post
	if err := query.Find(&posts).Error; err != nil {
		r.logError(nil, err, "listing posts")
		return nil, eris.Wrap(err, "listing posts")
	}

	return posts, nil
}

// RecentlyUpdatedPosts returns the most recently modified posts for the dashboard.
func (r *GormRepository) RecentlyUpdatedPosts(ctx context.Context, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = 5
	}

	var posts []Post
	err := r.db.WithContext(ctx).Order("updated_at DESC").Limit(limit).Find(&posts).Error
	if err != nil {
		r.logError(nil, err, "listing recently updated posts")
		return nil, eris.Wrap(err, "listing recently updated posts")
	}

	return posts, nil
}

// CountPosts returns the total number of posts.
func (r *GormRepository) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Post{}).Count(&count).Error; err != nil {
		r.logError(nil, err, "counting posts")
		return 0, eris.Wrap(err, "counting posts")
	}
	return count, nil
}

// CountPublishedPosts returns the number of published posts.
func (r *GormRepository) CountPublishedPosts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Post{}).Where("published = ?", true).Count(&count).Error
	if err != nil {
		r.logError(nil, err, "counting published posts")
		return 0, eris.Wrap(err, "counting published posts")
	}
	return count, nil
}

// CreateProject inserts a new project row.
func (r *GormRepository) CreateProject(ctx context.Context, project *Project) error {
	if project == nil {
		return eris.New("project is nil")
	}

	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		r.logError(logrus.Fields{"title": project.Title}, err, "creating project")
		return eris.Wrapf(err, "creating project: %s", project.Title)
	}

	return nil
}

// SaveProject persists all fields of an existing project.
func (r *GormRepository) SaveProject(ctx context.Context, project *Project) error {
	if project == nil {
		return eris.New("project is nil")
	}
	if project.ID == 0 {
		return eris.New("project ID is required")
	}

	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		r.logError(logrus.Fields{"project_id": project.ID}, err, "saving project")
		return eris.Wrapf(err, "saving project: %d", project.ID)
	}

	return nil
}

// DeleteProject removes the project row permanently.
func (r *GormRepository) DeleteProject(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Project{}, id)
	if result.Error != nil {
		r.logError(logrus.Fields{"project_id": id}, result.Error, "deleting project")
		return eris.Wrapf(result.Error, "deleting project: %d", id)
	}
	if result.RowsAffected == 0 {
		return eris.Wrapf(ErrNotFound, "deleting project: %d", id)
	}

	return nil
}

// GetProjectByID returns the project for the provided id or nil when not found.
func (r *GormRepository) GetProjectByID(ctx context.Context, id uint) (*Project, error) {
	var project Project
	err := r.db.WithContext(ctx).First(&project, id).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logError(logrus.Fields{"project_id": id}, err, "fetching project by id")
		return nil, eris.Wrapf(err, "fetching project by id: %d", id)
	}

	return &project, nil
}

// ListProjects returns every project in display order.
func (r *GormRepository) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := r.db.WithContext(ctx).Order(projectOrdering).Find(&projects).Error; err != nil {
		r.logError(nil, err, "listing projects")
		return nil, eris.Wrap(err, "listing projects")
	}

	return projects, nil
}

// FeaturedProjects returns featured projects in display order, capped to
// limit (zero means no cap).
func (r *GormRepository) FeaturedProjects(ctx context.Context, limit int) ([]Project, error) {
	query := r.db.WithContext(ctx).Where("featured = ?", true).Order(projectOrdering)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var projects []Project
	if err := query.Find(&projects).Error; err != nil {
		r.logError(nil, err, "listing featured projects")
		return nil, eris.Wrap(err, "listing featured projects")
	}

	return projects, nil
}

// CountProjects returns the total number of projects.
func (r *GormRepository) CountProjects(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Project{}).Count(&count).Error; err != nil {
		r.logError(nil, err, "counting projects")
		return 0, eris.Wrap(err, "counting projects")
	}
	return count, nil
}

func (r *GormRepository) logError(fields logrus.Fields, err error, message string) {
	if r.logger == nil {
		return
	}

	entry := r.logger.WithField("error", err.Error())
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error(message)
}
