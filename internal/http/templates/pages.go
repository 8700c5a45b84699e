package templates

import (
	"context"

	"github.com/a-h/templ"
)

const dateLayout = "January 2, 2006"

// HomePage renders the landing page: hero, featured projects, recent posts.
func HomePage(p Page, data HomeData) templ.Component {
	body := page(func(ctx context.Context, w *writer) {
		w.raw("<section class=\"hero\"><h1>")
		w.text(p.SiteName)
		w.raw("</h1><p class=\"tagline\">")
		w.text(p.Tagline)
		w.raw("</p></section>")

		if len(data.FeaturedProjects) > 0 {
			w.raw("<section class=\"featured\"><h2>Featured Projects</h2><div class=\"project-grid\">")
			for _, project := range data.FeaturedProjects {
				projectCard(w, project)
			}
			w.raw("</div></section>")
		}

		if len(data.RecentPosts) > 0 {
			w.raw("<section class=\"recent-posts\"><h2>Recent Posts</h2><ul class=\"post-list\">")
			for _, post := range data.RecentPosts {
				postListItem(w, post, false)
			}
			w.raw("</ul></section>")
		}
	})

	return layout(p, "", body)
}

// AboutPage renders the static about content.
func AboutPage(p Page) templ.Component {
	body := page(func(_ context.Context, w *writer) {
		w.raw("<section class=\"about\"><h1>About</h1><p>")
		w.text(p.Tagline)
		w.raw("</p></section>")
	})

	return layout(p, "About", body)
}

// ContactPage renders the static contact content.
func ContactPage(p Page) templ.Component {
	body := page(func(_ context.Context, w *writer) {
		w.raw("<section class=\"contact\"><h1>Contact</h1>")
		if p.Email != "" {
			w.raw("<p>Reach me at <a")
			w.attr("href", "mailto:"+p.Email)
			w.raw(">")
			w.text(p.Email)
			w.raw("</a>.</p>")
		} else {
			w.raw("<p>Find me on the links below.</p>")
		}
		w.raw("</section>")
	})

	return layout(p, "Contact", body)
}

// ProjectsPage renders every project in display order.
func ProjectsPage(p Page, projects []ProjectView) templ.Component {
	body := page(func(ctx context.Context, w *writer) {
		w.raw("<section class=\"projects\"><h1>Projects</h1>")
		if len(projects) == 0 {
			w.raw("<p>No projects yet.</p>")
		} else {
			w.raw("<div class=\"project-grid\">")
			for _, project := range projects {
				fullProjectCard(ctx, w, project)
			}
			w.raw("</div>")
		}
		w.raw("</section>")
	})

	return layout(p, "Projects", body)
}

// BlogPage renders the post listing. Drafts only reach this template for the
// signed-in admin and are labelled as such.
func BlogPage(p Page, posts []PostView) templ.Component {
	body := page(func(_ context.Context, w *writer) {
		w.raw("<section class=\"blog\"><h1>Blog</h1>")
		if len(posts) == 0 {
			w.raw("<p>No posts yet.</p>")
		} else {
			w.raw("<ul class=\"post-list\">")
			for _, post := range posts {
				postListItem(w, post, p.SignedIn)
			}
			w.raw("</ul>")
		}
		w.raw("</section>")
	})

	return layout(p, "Blog", body)
}

// PostPage renders a single post with its rendered Markdown body.
func PostPage(p Page, post PostView) templ.Component {
	body := page(func(ctx context.Context, w *writer) {
		w.raw("<article class=\"post\"><header><h1>")
		w.text(post.Title)
		w.raw("</h1><p class=\"post-meta\">")
		w.text(post.CreatedAt.Format(dateLayout))
		w.rawf(" · %d min read", post.ReadingTime)
		if !post.Published {
			w.raw(" · <span class=\"draft-badge\">Draft</span>")
		}
		w.raw("</p></header><div class=\"post-body\">")
		w.component(ctx, RawHTML(post.ContentHTML))
		w.raw("</div></article>")
	})

	return layout(p, post.Title, body)
}

// LoginPage renders the admin login form, preserving the submitted username
// on failure.
func LoginPage(p Page, data LoginData) templ.Component {
	body := page(func(_ context.Context, w *writer) {
		w.raw("<section class=\"login\"><h1>Sign in</h1>")
		if data.Error != "" {
			w.raw("<p class=\"form-error\">")
			w.text(data.Error)
			w.raw("</p>")
		}
		w.raw("<form method=\"post\" action=\"/auth/login\">")
		w.raw("<label>Username<input type=\"text\" name=\"username\"")
		w.attr("value", data.Username)
		w.raw(" required></label>")
		w.raw("<label>Password<input type=\"password\" name=\"password\" required></label>")
		w.raw("<button type=\"submit\">Sign in</button>")
		w.raw("</form></section>")
	})

	return layout(p, "Sign in", body)
}

func projectCard(w *writer, project ProjectView) {
	w.raw("<article class=\"project-card\">")
	if project.ImageURL != "" {
		w.raw("<img")
		w.attr("src", project.ImageURL)
		w.attr("alt", project.Title)
		w.raw(">")
	}
	w.raw("<h3>")
	w.text(project.Title)
	w.raw("</h3><p>")
	w.text(project.Preview)
	w.raw("</p>")
	projectCardFooter(w, project)
	w.raw("</article>")
}

// fullProjectCard shows the complete Markdown-rendered description instead of
// the plain-text preview used on the homepage.
func fullProjectCard(ctx context.Context, w *writer, project ProjectView) {
	w.raw("<article class=\"project-card\">")
	if project.ImageURL != "" {
		w.raw("<img")
		w.attr("src", project.ImageURL)
		w.attr("alt", project.Title)
		w.raw(">")
	}
	w.raw("<h3>")
	w.text(project.Title)
	w.raw("</h3><div class=\"project-description\">")
	w.component(ctx, RawHTML(project.DescriptionHTML))
	w.raw("</div>")
	projectCardFooter(w, project)
	w.raw("</article>")
}

func projectCardFooter(w *writer, project ProjectView) {
	w.raw("<ul class=\"tech-list\">")
	for _, tech := range project.TechList {
		w.raw("<li>")
		w.text(tech)
		w.raw("</li>")
	}
	w.raw("</ul><p class=\"project-links\">")
	if project.URL != "" {
		w.raw("<a")
		w.attr("href", project.URL)
		w.raw(">Live</a>")
	}
	if project.GithubURL != "" {
		w.raw("<a")
		w.attr("href", project.GithubURL)
		w.raw(">Source</a>")
	}
	w.raw("</p>")
}

func postListItem(w *writer, post PostView, showDraftBadge bool) {
	w.raw("<li class=\"post-item\"><a")
	w.attr("href", "/blog/"+post.Slug)
	w.raw("><h3>")
	w.text(post.Title)
	if showDraftBadge && !post.Published {
		w.raw(" <span class=\"draft-badge\">Draft</span>")
	}
	w.raw("</h3></a><p class=\"post-meta\">")
	w.text(post.CreatedAt.Format(dateLayout))
	w.rawf(" · %d min read", post.ReadingTime)
	w.raw("</p><p>")
	w.text(post.Preview)
	w.raw("</p></li>")
}
