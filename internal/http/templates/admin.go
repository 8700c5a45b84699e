package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
)

// DashboardPage renders the admin overview: counts, recent posts, projects.
func DashboardPage(p Page, data DashboardData) templ.Component {
	body := page(func(_ context.Context, w *writer) {
		w.raw("<section class=\"dashboard\"><h1>Dashboard</h1>")

		w.raw("<div class=\"stats\">")
		stat(w, "Posts", data.TotalPosts)
		stat(w, "Published", data.PublishedPosts)
		stat(w, "Drafts", data.DraftPosts)
		stat(w, "Projects", data.TotalProjects)
		w.raw("</div>")

		w.raw("<div class=\"actions\">")
		w.raw("<a class=\"button\" href=\"/admin/posts/new\">New post</a>")
		w.raw("<a class=\"button\" href=\"/admin/projects/new\">New project</a>")
		w.raw("</div>")

		w.raw("<h2>Recent posts</h2>")
		if len(data.RecentPosts) == 0 {
			w.raw("<p>No posts yet.</p>")
		} else {
			w.raw("<table class=\"admin-table\"><thead><tr><th>Title</th><th>Status</th><th>Updated</th><th></th></tr></thead><tbody>")
			for _, post := range data.RecentPosts {
				w.raw("<tr><td>")
				w.text(post.Title)
				w.raw("</td><td>")
				if post.Published {
					w.raw("Published")
				} else {
					w.raw("Draft")
				}
				w.raw("</td><td>")
				w.text(post.UpdatedAt.Format(dateLayout))
				w.raw("</td><td><a")
				w.attr("href", "/admin/posts/"+strconv.FormatUint(uint64(post.ID), 10)+"/edit")
				w.raw(">Edit</a> ")
				deleteForm(w, "/admin/posts/"+strconv.FormatUint(uint64(post.ID), 10)+"/delete")
				w.raw("</td></tr>")
			}
			w.raw("</tbody></table>")
		}

		w.raw("<h2>Projects</h2>")
		if len(data.Projects) == 0 {
			w.raw("<p>No projects yet.</p>")
		} else {
			w.raw("<table class=\"admin-table\"><thead><tr><th>Title</th><th>Featured</th><th>Order</th><th></th></tr></thead><tbody>")
			for _, project := range data.Projects {
				w.raw("<tr><td>")
				w.text(project.Title)
				w.raw("</td><td>")
				if project.Featured {
					w.raw("Yes")
				} else {
					w.raw("No")
				}
				w.raw("</td><td>")
				w.raw(strconv.Itoa(project.SortOrder))
				w.raw("</td><td><a")
				w.attr("href", "/admin/projects/"+strconv.FormatUint(uint64(project.ID), 10)+"/edit")
				w.raw(">Edit</a> ")
				deleteForm(w, "/admin/projects/"+strconv.FormatUint(uint64(project.ID), 10)+"/delete")
				w.raw("</td></tr>")
			}
			w.raw("</tbody></table>")
		}

		w.raw("</section>")
	})

	return layout(p, "Dashboard", body)
}

// PostEditorPage renders the create/edit form for a post.
func PostEditorPage(p Page, form PostForm) templ.Component {
	action := "/admin/posts"
	heading := "New post"
	if form.ID != 0 {
		action = "/admin/posts/" + strconv.FormatUint(uint64(form.ID), 10)
		heading = "Edit post"
	}

	body := page(func(_ context.Context, w *writer) {
		w.raw("<section class=\"editor\"><h1>")
		w.raw(heading)
		w.raw("</h1>")
		formNotices(w, form.Error, form.Saved)

		w.raw("<form method=\"post\"")
		w.attr("action", action)
		w.raw(">")

		w.raw("<label>Title<input type=\"text\" name=\"title\" maxlength=\"200\"")
		w.attr("value", form.Title)
		w.raw(" required></label>")

		w.raw("<label>Content<textarea name=\"content\" rows=\"20\" required>")
		w.text(form.Content)
		w.raw("</textarea></label>")

		w.raw("<label>Excerpt <small>(optional, shown in listings)</small>")
		w.raw("<textarea name=\"excerpt\" rows=\"3\" maxlength=\"500\">")
		w.text(form.Excerpt)
		w.raw("</textarea></label>")

		w.raw("<label class=\"checkbox\"><input type=\"checkbox\" name=\"published\"")
		if form.Published {
			w.raw(" checked")
		}
		w.raw("> Published</label>")

		w.raw("<button type=\"submit\">Save</button>")
		w.raw("</form></section>")
	})

	return layout(p, heading, body)
}

// ProjectEditorPage renders the create/edit form for a project.
func ProjectEditorPage(p Page, form ProjectForm) templ.Component {
	action := "/admin/projects"
	heading := "New project"
	if form.ID != 0 {
		action = "/admin/projects/" + strconv.FormatUint(uint64(form.ID), 10)
		heading = "Edit project"
	}

	body := page(func(_ context.Context, w *writer) {
		w.raw("<section class=\"editor\"><h1>")
		w.raw(heading)
		w.raw("</h1>")
		formNotices(w, form.Error, form.Saved)

		w.raw("<form method=\"post\"")
		w.attr("action", action)
		w.raw(">")

		w.raw("<label>Title<input type=\"text\" name=\"title\" maxlength=\"200\"")
		w.attr("value", form.Title)
		w.raw(" required></label>")

		w.raw("<label>Description<textarea name=\"description\" rows=\"10\" required>")
		w.text(form.Description)
		w.raw("</textarea></label>")

		w.raw("<label>Tech stack <small>(comma-separated)</small>")
		w.raw("<input type=\"text\" name=\"tech_stack\" maxlength=\"500\"")
		w.attr("value", form.TechStack)
		w.raw(" required></label>")

		w.raw("<label>Live URL<input type=\"text\" name=\"url\"")
		w.attr("value", form.URL)
		w.raw("></label>")

		w.raw("<label>GitHub URL<input type=\"text\" name=\"github_url\"")
		w.attr("value", form.GithubURL)
		w.raw("></label>")

		w.raw("<label>Image URL<input type=\"text\" name=\"image_url\"")
		w.attr("value", form.ImageURL)
		w.raw("></label>")

		w.raw("<label>Order<input type=\"number\" name=\"order\" min=\"0\"")
		w.attr("value", strconv.Itoa(form.SortOrder))
		w.raw("></label>")

		w.raw("<label class=\"checkbox\"><input type=\"checkbox\" name=\"featured\"")
		if form.Featured {
			w.raw(" checked")
		}
		w.raw("> Featured on homepage</label>")

		w.raw("<button type=\"submit\">Save</button>")
		w.raw("</form></section>")
	})

	return layout(p, heading, body)
}

func stat(w *writer, label string, value int64) {
	w.raw("<div class=\"stat\"><span class=\"stat-value\">")
	w.raw(strconv.FormatInt(value, 10))
	w.raw("</span><span class=\"stat-label\">")
	w.text(label)
	w.raw("</span></div>")
}

func formNotices(w *writer, errMsg string, saved bool) {
	if errMsg != "" {
		w.raw("<p class=\"form-error\">")
		w.text(errMsg)
		w.raw("</p>")
	}
	if saved {
		w.raw("<p class=\"form-success\">Saved.</p>")
	}
}

func deleteForm(w *writer, action string) {
	w.raw("<form class=\"inline\" method=\"post\"")
	w.attr("action", action)
	w.raw("><button type=\"submit\" class=\"danger\">Delete</button></form>")
}
