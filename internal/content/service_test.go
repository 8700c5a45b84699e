package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
)

func setupService(t *testing.T) Service {
	t.Helper()

	repo := setupRepository(t)

	service, err := NewService(repo, nil, nil)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	return service
}

func TestCreatePostDerivesSlug(t *testing.T) {
	t.Parallel()

	service := setupService(t)
	ctx := context.Background()

	post, err := service.CreatePost(ctx, PostInput{Title: "Hello, World!", Content: "body"})
	if err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}

	if post.Slug != "hello-world" {
		t.Fatalf("expected slug hello-world, got %q", post.Slug)
	}

	if post.Published {
		t.Fatalf("expected new post to default to draft")
	}

	if post.CreatedAt.IsZero() || post.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
}

func TestCreatePostSlugCollisions(t *testing.T) {
	t.Parallel()

	service := setupService(t)
	ctx := context.Background()

	expected := []string{"my-title", "my-title-1", "my-title-2", "my-title-3"}
	for _, want := range expected {
		post, err := service.CreatePost(ctx, PostInput{Title: "My Title", Content: "body"})
		if err != nil {
			t.Fatalf("CreatePost returned error: %v", err)
		}
		if post.Slug != want {
			t.Fatalf("expected slug %q, got %q", want, post.Slug)
		}
	}
}

func TestCreatePostValidation(t *testing.T) {
	t.Parallel()

	service := setupService(t)
	ctx := context.Background()

	cases := []PostInput{
		{Title: "", Content: "body"},
		{Title: "Title", Content: ""},
		{Title: "   ", Content: "   "},
	}

	for _, input := range cases {
		_, err := service.CreatePost(ctx, input)
		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("expected validation error for %#v, got %v", input, err)
		}
	}
}

func TestPostExcerptLengthLimit(t *testing.T) {
	t.Parallel()

	service := setupService(t)
	ctx := context.Background()

	long := strings.Repeat("x", 501)

	_, err := service.CreatePost(ctx, PostInput{Title: "Title", Content: "body", Excerpt: long})
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error for oversized excerpt, got %v", err)
	}

	post, err := service.CreatePost(ctx, PostInput{Title: "Title", Content: "body", Excerpt: strings.Repeat("x", 500)})
	if err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}

	_, err = service.UpdatePost(ctx, post.ID, PostUpdate{Excerpt: &long})
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error for oversized excerpt update, got %v", err)
	}
}

func TestUpdatePostPartialFields(t *testing.T) {
	t.Parallel()

	service := setupService(t)
	ctx := context.Background()

	post, err := service.CreatePost(ctx, PostInput{Title: "Original", Content: "body", Excerpt: "preview"})
	if err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}

	published := true
	updated, err := service.UpdatePost(ctx, post.ID, PostUpdate{Published: &published})
	if err != nil {
		t.Fatalf("UpdatePost returned error: %v", err)
	}

	if !updated.Published {
		t.Fatalf("expected post to be published")
	}
	if updated.Title != "Original" || updated.Content != "body" || updated.Excerpt != "preview" {
		t.Fatalf("expected untouched fields preserved, got %#v", updated)
	}
}

func TestUpdatePostSlugFollowsTitle(t *testing.T) {
	t.Parallel()

	service := setupService(t)
	ctx := context.Background()

	post, err := service.CreatePost(ctx, PostInput{Title: "First Title", Content: "body"})
	if err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}

	newTitle := "Second Title"
	updated, err := service.UpdatePost(ctx, post.ID, PostUpdate{Title: &newTitle})
	if err != nil {
		t.Fatalf("UpdatePost returned error: %v", err)
	}

	if updated.Slug != "second-title" {
		t.Fatalf("expected slug second-title, got %q", updated.Slug)
	}
}

func TestUpdatePostSlugKeptOnCollision(t *testing.T) {
	t.Parallel()

	service := setupService(t)
	ctx := context.Background()

	if _, err := service.CreatePost(ctx, PostInput{Title: "Taken Title", Content: "body", Published: true}); err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}

	post, err := service.CreatePost(ctx, PostInput{Title: "Other Title", Content: "body", Published: true})
	if err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}

	// Retitle so the derived slug collides with the first post. The slug
	// silently stays put while the rest of the update lands.
	newTitle := "Taken Title"
	newContent := "fresh body"
	updated, err := service.UpdatePost(ctx, post.ID, PostUpdate{Title: &newTitle, Content: &newContent})
	if err != nil {
		t.Fatalf("UpdatePost returned error: %v", err)
	}

	if updated.Slug != "other-title" {
		t.Fatalf("expected slug to remain other-title, got %q", updated.Slug)
	}
	if updated.Title != "Taken Title" || updated.Content != "fresh body" {
		t.Fatalf("expected other fields updated, got %#v", updated)
	}
}

func TestUpdatePostMissing(t *testing.T) {
	t.Parallel()

	service := setupService(t)

	title := "Anything"
	_, err := service.UpdatePost(context.Background(), 12345, PostUpdate{Title: &title})
	if !eris.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetPostBySlugVisibility(t *testing.T) {
	t.Parallel()

	service := setupService(t)
	ctx := context.Background()

	draft, err := service.CreatePost(ctx, PostInput{Title: "Draft Post", Content: "body"})
	if err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}

	admin := &User{ID: 1, Username: "admin"}

	// Anonymous viewers must not see drafts or learn that they exist.
	if _, err := service.GetPostBySlug(ctx, draft.Slug, nil); !eris.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for anonymous draft access, got %v", err)
	}

	post, err := service.GetPostBySlug(ctx, draft.Slug, admin)
	if err != nil {
		t.Fatalf("GetPostBySlug returned error: %v", err)
	}
	if post.ID != draft.ID {
		t.Fatalf("expected draft visible to admin")
	}

	if _, err := service.GetPostBySlug(ctx, "no-such-slug", admin); !eris.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing slug, got %v", err)
	}
}

func TestListPostsVisibility(t *testing.T) {
	t.Parallel()

	service := setupService(t)
	ctx := context.Background()

	if _, err := service.CreatePost(ctx, PostInput{Title: "Public", Content: "body", Published: true}); err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}
	if _, err := service.CreatePost(ctx, PostInput{Title: "Hidden", Content: "body"}); err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}

	anonymous, err := service.ListPosts(ctx, nil)
	if err != nil {
		t.Fatalf("ListPosts returned error: %v", err)
	}
	if len(anonymous) != 1 || anonymous[0].Slug != "public" {
		t.Fatalf("expected only the published post for anonymous, got %#v", anonymous)
	}

	admin, err := service.ListPosts(ctx, &User{ID: 1, Username: "admin"})
	if err != nil {
		t.Fatalf("ListPosts returned error: %v", err)
	}
	if len(admin) != 2 {
		t.Fatalf("expected both posts for admin, got %d", len(admin))
	}
}

func TestDeletePostThenFetch(t *testing.T) {
	t.Parallel()

	service := setupService(t)
	ctx := context.Background()

	post, err := service.CreatePost(ctx, PostInput{Title: "Doomed", Content: "body", Published: true})
	if err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}

	if err := service.DeletePost(ctx, post.ID); err != nil {
		t.Fatalf("DeletePost returned error: %v", err)
	}

	admin := &User{ID: 1, Username: "admin"}
	if _, err := service.GetPostBySlug(ctx, post.Slug, admin); !eris.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCreateProjectNormalizesLinks(t *testing.T) {
	t.Parallel()

	service := setupService(t)
	ctx := context.Background()

	project, err := service.CreateProject(ctx, ProjectInput{
		Title:       "Portfolio",
		Description: "A site",
		TechStack:   "Go, SQLite, templ",
		URL:         "example.com",
		GithubURL:   "https://github.com/me/portfolio",
		ImageURL:    "",
	})
	if err != nil {
		t.Fatalf("CreateProject returned error: %v", err)
	}

	if project.URL != "https://example.com" {
		t.Fatalf("expected normalized URL, got %q", project.URL)
	}
	if project.GithubURL != "https://github.com/me/portfolio" {
		t.Fatalf("expected GitHub URL untouched, got %q", project.GithubURL)
	}
	if project.ImageURL != "" {
		t.Fatalf("expected empty image URL preserved, got %q", project.ImageURL)
	}

	techList := project.TechList()
	want := []string{"Go", "SQLite", "templ"}
	if fmt.Sprint(techList) != fmt.Sprint(want) {
		t.Fatalf("expected tech list %v, got %v", want, techList)
	}
}

func TestCreateProjectValidation(t *testing.T) {
	t.Parallel()

	service := setupService(t)

	_, err := service.CreateProject(context.Background(), ProjectInput{Title: "X", Description: "", TechStack: "Go"})
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateProjectPartialFields(t *testing.T) {
	t.Parallel()

	service := setupService(t)
	ctx := context.Background()

	project, err := service.CreateProject(ctx, ProjectInput{
		Title:       "Portfolio",
		Description: "A site",
		TechStack:   "Go",
		URL:         "example.com",
	})
	if err != nil {
		t.Fatalf("CreateProject returned error: %v", err)
	}

	newURL := "demo.example.org"
	featured := true
	updated, err := service.UpdateProject(ctx, project.ID, ProjectUpdate{URL: &newURL, Featured: &featured})
	if err != nil {
		t.Fatalf("UpdateProject returned error: %v", err)
	}

	if updated.URL != "https://demo.example.org" {
		t.Fatalf("expected normalized URL on update, got %q", updated.URL)
	}
	if !updated.Featured {
		t.Fatalf("expected project to be featured")
	}
	if updated.Title != "Portfolio" || updated.Description != "A site" {
		t.Fatalf("expected untouched fields preserved, got %#v", updated)
	}
}

func TestDashboardStats(t *testing.T) {
	t.Parallel()

	service := setupService(t)
	ctx := context.Background()

	if _, err := service.CreatePost(ctx, PostInput{Title: "Live", Content: "body", Published: true}); err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}
	if _, err := service.CreatePost(ctx, PostInput{Title: "Draft", Content: "body"}); err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}
	if _, err := service.CreateProject(ctx, ProjectInput{Title: "P", Description: "d", TechStack: "Go"}); err != nil {
		t.Fatalf("CreateProject returned error: %v", err)
	}

	stats, err := service.DashboardStats(ctx)
	if err != nil {
		t.Fatalf("DashboardStats returned error: %v", err)
	}

	if stats.TotalPosts != 2 || stats.PublishedPosts != 1 || stats.DraftPosts != 1 {
		t.Fatalf("unexpected post counts: %#v", stats)
	}
	if stats.TotalProjects != 1 {
		t.Fatalf("expected 1 project, got %d", stats.TotalProjects)
	}
	if len(stats.RecentPosts) != 2 {
		t.Fatalf("expected 2 recent posts, got %d", len(stats.RecentPosts))
	}
	if len(stats.Projects) != 1 {
		t.Fatalf("expected 1 project listed, got %d", len(stats.Projects))
	}
}
