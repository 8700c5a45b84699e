package http

import (
	"errors"
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"portfolio/app/internal/content"
	"portfolio/app/internal/http/templates"
	"portfolio/app/internal/markdown"
)

const (
	homeFeaturedLimit = 3
	homeRecentLimit   = 3
)

func (s *Server) handleHome(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	featured, err := s.contents.FeaturedProjects(r.Context(), homeFeaturedLimit)
	if err != nil {
		s.renderErrorPage(w, r, stdhttp.StatusInternalServerError, "Something went wrong on our end.")
		return
	}

	recent, err := s.contents.RecentPublishedPosts(r.Context(), homeRecentLimit)
	if err != nil {
		s.renderErrorPage(w, r, stdhttp.StatusInternalServerError, "Something went wrong on our end.")
		return
	}

	featuredViews, err := projectViews(featured)
	if err != nil {
		s.reportError(r, err, "rendering project markdown failed")
		s.renderErrorPage(w, r, stdhttp.StatusInternalServerError, "Something went wrong on our end.")
		return
	}

	data := templates.HomeData{
		FeaturedProjects: featuredViews,
		RecentPosts:      postViews(recent),
	}
	s.writePage(w, r, stdhttp.StatusOK, templates.HomePage(s.pageContext(r), data))
}

func (s *Server) handleAbout(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	s.writePage(w, r, stdhttp.StatusOK, templates.AboutPage(s.pageContext(r)))
}

func (s *Server) handleContact(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	s.writePage(w, r, stdhttp.StatusOK, templates.ContactPage(s.pageContext(r)))
}

func (s *Server) handleProjects(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	projects, err := s.contents.ListProjects(r.Context())
	if err != nil {
		s.renderErrorPage(w, r, stdhttp.StatusInternalServerError, "Something went wrong on our end.")
		return
	}

	views, err := projectViews(projects)
	if err != nil {
		s.reportError(r, err, "rendering project markdown failed")
		s.renderErrorPage(w, r, stdhttp.StatusInternalServerError, "Something went wrong on our end.")
		return
	}

	s.writePage(w, r, stdhttp.StatusOK, templates.ProjectsPage(s.pageContext(r), views))
}

func (s *Server) handleBlog(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	posts, err := s.contents.ListPosts(r.Context(), CurrentUserFromContext(r.Context()))
	if err != nil {
		s.renderErrorPage(w, r, stdhttp.StatusInternalServerError, "Something went wrong on our end.")
		return
	}

	s.writePage(w, r, stdhttp.StatusOK, templates.BlogPage(s.pageContext(r), postViews(posts)))
}

func (s *Server) handlePost(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := s.contents.GetPostBySlug(r.Context(), slug, CurrentUserFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			s.renderErrorPage(w, r, stdhttp.StatusNotFound, "The post you are looking for does not exist.")
			return
		}
		s.renderErrorPage(w, r, stdhttp.StatusInternalServerError, "Something went wrong on our end.")
		return
	}

	view, err := fullPostView(*post)
	if err != nil {
		s.reportError(r, err, "rendering post markdown failed")
		s.renderErrorPage(w, r, stdhttp.StatusInternalServerError, "Something went wrong on our end.")
		return
	}

	s.writePage(w, r, stdhttp.StatusOK, templates.PostPage(s.pageContext(r), view))
}

func postView(post content.Post) templates.PostView {
	preview := post.Excerpt
	if preview == "" {
		preview = markdown.Excerpt(post.Content, markdown.DefaultExcerptLength)
	}

	return templates.PostView{
		ID:          post.ID,
		Title:       post.Title,
		Slug:        post.Slug,
		Preview:     preview,
		Published:   post.Published,
		ReadingTime: markdown.ReadingTime(post.Content, markdown.DefaultWordsPerMinute),
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

func fullPostView(post content.Post) (templates.PostView, error) {
	view := postView(post)
	html, err := markdown.Render(post.Content)
	if err != nil {
		return templates.PostView{}, err
	}
	view.ContentHTML = html
	return view, nil
}

func postViews(posts []content.Post) []templates.PostView {
	views := make([]templates.PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, postView(post))
	}
	return views
}

func projectView(project content.Project) (templates.ProjectView, error) {
	html, err := markdown.Render(project.Description)
	if err != nil {
		return templates.ProjectView{}, err
	}

	return templates.ProjectView{
		ID:              project.ID,
		Title:           project.Title,
		DescriptionHTML: html,
		Preview:         markdown.Excerpt(project.Description, markdown.DefaultExcerptLength),
		TechList:        project.TechList(),
		URL:             project.URL,
		GithubURL:       project.GithubURL,
		ImageURL:        project.ImageURL,
		Featured:        project.Featured,
		SortOrder:       project.SortOrder,
	}, nil
}

func projectViews(projects []content.Project) ([]templates.ProjectView, error) {
	views := make([]templates.ProjectView, 0, len(projects))
	for _, project := range projects {
		view, err := projectView(project)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
