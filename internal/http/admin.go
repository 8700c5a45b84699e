package http

import (
	"errors"
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"portfolio/app/internal/content"
	"portfolio/app/internal/http/templates"
)

func (s *Server) handleDashboard(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	stats, err := s.contents.DashboardStats(r.Context())
	if err != nil {
		s.renderErrorPage(w, r, stdhttp.StatusInternalServerError, "Something went wrong on our end.")
		return
	}

	projects, err := projectViews(stats.Projects)
	if err != nil {
		s.reportError(r, err, "rendering project markdown failed")
		s.renderErrorPage(w, r, stdhttp.StatusInternalServerError, "Something went wrong on our end.")
		return
	}

	data := templates.DashboardData{
		TotalPosts:     stats.TotalPosts,
		PublishedPosts: stats.PublishedPosts,
		DraftPosts:     stats.DraftPosts,
		TotalProjects:  stats.TotalProjects,
		RecentPosts:    postViews(stats.RecentPosts),
		Projects:       projects,
	}
	s.writePage(w, r, stdhttp.StatusOK, templates.DashboardPage(s.pageContext(r), data))
}

func (s *Server) handleNewPostForm(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	s.writePage(w, r, stdhttp.StatusOK, templates.PostEditorPage(s.pageContext(r), templates.PostForm{}))
}

func (s *Server) handleCreatePost(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	form, ok := s.parsePostForm(w, r)
	if !ok {
		return
	}

	post, err := s.contents.CreatePost(r.Context(), content.PostInput{
		Title:     form.Title,
		Content:   form.Content,
		Excerpt:   form.Excerpt,
		Published: form.Published,
	})
	if err != nil {
		s.handlePostFormError(w, r, form, err)
		return
	}

	stdhttp.Redirect(w, r, postEditPath(post.ID)+"?saved=1", stdhttp.StatusFound)
}

func (s *Server) handleEditPostForm(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	post, err := s.contents.GetPostByID(r.Context(), id)
	if err != nil {
		s.renderContentError(w, r, err, "The post you are looking for does not exist.")
		return
	}

	form := templates.PostForm{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Excerpt:   post.Excerpt,
		Published: post.Published,
		Saved:     r.URL.Query().Get("saved") == "1",
	}
	s.writePage(w, r, stdhttp.StatusOK, templates.PostEditorPage(s.pageContext(r), form))
}

func (s *Server) handleUpdatePost(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	form, ok := s.parsePostForm(w, r)
	if !ok {
		return
	}
	form.ID = id

	post, err := s.contents.UpdatePost(r.Context(), id, content.PostUpdate{
		Title:     &form.Title,
		Content:   &form.Content,
		Excerpt:   &form.Excerpt,
		Published: &form.Published,
	})
	if err != nil {
		s.handlePostFormError(w, r, form, err)
		return
	}

	stdhttp.Redirect(w, r, postEditPath(post.ID)+"?saved=1", stdhttp.StatusFound)
}

func (s *Server) handleDeletePost(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := s.contents.DeletePost(r.Context(), id); err != nil {
		s.renderContentError(w, r, err, "The post you are looking for does not exist.")
		return
	}

	stdhttp.Redirect(w, r, "/admin", stdhttp.StatusFound)
}

func (s *Server) handleNewProjectForm(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	s.writePage(w, r, stdhttp.StatusOK, templates.ProjectEditorPage(s.pageContext(r), templates.ProjectForm{}))
}

func (s *Server) handleCreateProject(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	form, ok := s.parseProjectForm(w, r)
	if !ok {
		return
	}

	project, err := s.contents.CreateProject(r.Context(), content.ProjectInput{
		Title:       form.Title,
		Description: form.Description,
		TechStack:   form.TechStack,
		URL:         form.URL,
		GithubURL:   form.GithubURL,
		ImageURL:    form.ImageURL,
		Featured:    form.Featured,
		SortOrder:   form.SortOrder,
	})
	if err != nil {
		s.handleProjectFormError(w, r, form, err)
		return
	}

	stdhttp.Redirect(w, r, projectEditPath(project.ID)+"?saved=1", stdhttp.StatusFound)
}

func (s *Server) handleEditProjectForm(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	project, err := s.contents.GetProjectByID(r.Context(), id)
	if err != nil {
		s.renderContentError(w, r, err, "The project you are looking for does not exist.")
		return
	}

	form := templates.ProjectForm{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		TechStack:   project.TechStack,
		URL:         project.URL,
		GithubURL:   project.GithubURL,
		ImageURL:    project.ImageURL,
		Featured:    project.Featured,
		SortOrder:   project.SortOrder,
		Saved:       r.URL.Query().Get("saved") == "1",
	}
	s.writePage(w, r, stdhttp.StatusOK, templates.ProjectEditorPage(s.pageContext(r), form))
}

func (s *Server) handleUpdateProject(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	form, ok := s.parseProjectForm(w, r)
	if !ok {
		return
	}
	form.ID = id

	project, err := s.contents.UpdateProject(r.Context(), id, content.ProjectUpdate{
		Title:       &form.Title,
		Description: &form.Description,
		TechStack:   &form.TechStack,
		URL:         &form.URL,
		GithubURL:   &form.GithubURL,
		ImageURL:    &form.ImageURL,
		Featured:    &form.Featured,
		SortOrder:   &form.SortOrder,
	})
	if err != nil {
		s.handleProjectFormError(w, r, form, err)
		return
	}

	stdhttp.Redirect(w, r, projectEditPath(project.ID)+"?saved=1", stdhttp.StatusFound)
}

func (s *Server) handleDeleteProject(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := s.contents.DeleteProject(r.Context(), id); err != nil {
		s.renderContentError(w, r, err, "The project you are looking for does not exist.")
		return
	}

	stdhttp.Redirect(w, r, "/admin", stdhttp.StatusFound)
}

func (s *Server) pathID(w stdhttp.ResponseWriter, r *stdhttp.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		s.renderErrorPage(w, r, stdhttp.StatusNotFound, "The page you are looking for does not exist.")
		return 0, false
	}
	return uint(id), true
}

func (s *Server) parsePostForm(w stdhttp.ResponseWriter, r *stdhttp.Request) (templates.PostForm, bool) {
	if err := r.ParseForm(); err != nil {
		s.renderErrorPage(w, r, stdhttp.StatusBadRequest, "The form could not be read.")
		return templates.PostForm{}, false
	}

	return templates.PostForm{
		Title:     r.PostFormValue("title"),
		Content:   r.PostFormValue("content"),
		Excerpt:   r.PostFormValue("excerpt"),
		Published: r.PostFormValue("published") != "",
	}, true
}

func (s *Server) parseProjectForm(w stdhttp.ResponseWriter, r *stdhttp.Request) (templates.ProjectForm, bool) {
	if err := r.ParseForm(); err != nil {
		s.renderErrorPage(w, r, stdhttp.StatusBadRequest, "The form could not be read.")
		return templates.ProjectForm{}, false
	}

	order, err := strconv.Atoi(r.PostFormValue("order"))
	if err != nil {
		order = 0
	}

	return templates.ProjectForm{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		TechStack:   r.PostFormValue("tech_stack"),
		URL:         r.PostFormValue("url"),
		GithubURL:   r.PostFormValue("github_url"),
		ImageURL:    r.PostFormValue("image_url"),
		Featured:    r.PostFormValue("featured") != "",
		SortOrder:   order,
	}, true
}

func (s *Server) handlePostFormError(w stdhttp.ResponseWriter, r *stdhttp.Request, form templates.PostForm, err error) {
	var validation *content.ValidationError
	if errors.As(err, &validation) {
		form.Error = validation.Message
		s.writePage(w, r, stdhttp.StatusBadRequest, templates.PostEditorPage(s.pageContext(r), form))
		return
	}

	s.renderContentError(w, r, err, "The post you are looking for does not exist.")
}

func (s *Server) handleProjectFormError(w stdhttp.ResponseWriter, r *stdhttp.Request, form templates.ProjectForm, err error) {
	var validation *content.ValidationError
	if errors.As(err, &validation) {
		form.Error = validation.Message
		s.writePage(w, r, stdhttp.StatusBadRequest, templates.ProjectEditorPage(s.pageContext(r), form))
		return
	}

	s.renderContentError(w, r, err, "The project you are looking for does not exist.")
}

func (s *Server) renderContentError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error, notFoundMessage string) {
	if errors.Is(err, content.ErrNotFound) {
		s.renderErrorPage(w, r, stdhttp.StatusNotFound, notFoundMessage)
		return
	}

	s.renderErrorPage(w, r, stdhttp.StatusInternalServerError, "Something went wrong on our end.")
}

func postEditPath(id uint) string {
	return "/admin/posts/" + strconv.FormatUint(uint64(id), 10) + "/edit"
}

func projectEditPath(id uint) string {
	return "/admin/projects/" + strconv.FormatUint(uint64(id), 10) + "/edit"
}
