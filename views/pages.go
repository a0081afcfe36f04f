package views

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"
)

// Home renders the post listing page.
func Home(cfg SiteConfig, p Page, posts []BlogPost) templ.Component {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s</h1>\n", esc(cfg.Name))
	if len(posts) == 0 {
		b.WriteString("<p class=\"empty\">No posts yet.</p>\n")
	}
	b.WriteString("<section class=\"posts\">\n")
	for _, post := range posts {
		b.WriteString("<article class=\"post-card\">\n")
		fmt.Fprintf(&b, "<h2><a href=\"/post/%d\">%s</a></h2>\n", post.ID, esc(post.Title))
		fmt.Fprintf(&b, "<p class=\"subtitle\">%s</p>\n", esc(post.Subtitle))
		fmt.Fprintf(&b, "<p class=\"meta\">%s · %s</p>\n", esc(post.Author), esc(post.Date))
		if p.IsAdmin {
			fmt.Fprintf(&b, "<p class=\"admin-actions\"><a href=\"/edit-post/%d\">Edit</a> <a href=\"/delete/%d\">Delete</a></p>\n", post.ID, post.ID)
		}
		b.WriteString("</article>\n")
	}
	b.WriteString("</section>\n")
	return component(layout(cfg, p, "Home", b.String()))
}

// Post renders a single post with its comments and the comment form.
func Post(cfg SiteConfig, p Page, post BlogPost, comments []Comment) templ.Component {
	var b strings.Builder
	b.WriteString("<article class=\"post\">\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", esc(post.Title))
	fmt.Fprintf(&b, "<h2 class=\"subtitle\">%s</h2>\n", esc(post.Subtitle))
	fmt.Fprintf(&b, "<p class=\"meta\">%s · %s</p>\n", esc(post.Author), esc(post.Date))
	if post.ImageURL != "" {
		fmt.Fprintf(&b, "<img class=\"cover\" src=\"%s\" alt=\"%s\">\n", esc(post.ImageURL), esc(post.Title))
	}
	// Body is editor-produced rich text and is stored as HTML, so it is
	// written through unescaped. Only the admin can author it.
	b.WriteString("<div class=\"body\">\n")
	b.WriteString(post.Body)
	b.WriteString("\n</div>\n")
	if p.IsAdmin {
		fmt.Fprintf(&b, "<p class=\"admin-actions\"><a href=\"/edit-post/%d\">Edit</a> <a href=\"/delete/%d\">Delete</a></p>\n", post.ID, post.ID)
	}
	b.WriteString("</article>\n")

	b.WriteString("<section class=\"comments\">\n<h3>Comments</h3>\n")
	if len(comments) == 0 {
		b.WriteString("<p class=\"empty\">No comments yet.</p>\n")
	}
	for _, cm := range comments {
		b.WriteString("<div class=\"comment\">\n")
		fmt.Fprintf(&b, "<p class=\"comment-author\">%s</p>\n", esc(cm.Author))
		fmt.Fprintf(&b, "<p class=\"comment-text\">%s</p>\n", esc(cm.Text))
		b.WriteString("</div>\n")
	}
	fmt.Fprintf(&b, "<form method=\"post\" action=\"/post/%d\">\n", post.ID)
	b.WriteString(csrfField(p))
	b.WriteString("<label>Comment<textarea name=\"text\" rows=\"4\"></textarea></label>\n")
	b.WriteString("<button type=\"submit\">Submit Comment</button>\n</form>\n")
	b.WriteString("</section>\n")
	return component(layout(cfg, p, post.Title, b.String()))
}

// Register renders the registration form, preserving submitted values on
// re-render after a validation failure.
func Register(cfg SiteConfig, p Page, name, email string) templ.Component {
	var b strings.Builder
	b.WriteString("<h1>Register</h1>\n")
	b.WriteString("<form method=\"post\" action=\"/register\">\n")
	b.WriteString(csrfField(p))
	b.WriteString(textField("text", "name", "Name", name))
	b.WriteString(textField("email", "email", "Email", email))
	b.WriteString(textField("password", "password", "Password", ""))
	b.WriteString("<button type=\"submit\">Sign Me Up</button>\n</form>\n")
	return component(layout(cfg, p, "Register", b.String()))
}

// Login renders the login form.
func Login(cfg SiteConfig, p Page, email string) templ.Component {
	var b strings.Builder
	b.WriteString("<h1>Log In</h1>\n")
	b.WriteString("<form method=\"post\" action=\"/login\">\n")
	b.WriteString(csrfField(p))
	b.WriteString(textField("email", "email", "Email", email))
	b.WriteString(textField("password", "password", "Password", ""))
	b.WriteString("<button type=\"submit\">Let Me In</button>\n</form>\n")
	return component(layout(cfg, p, "Log In", b.String()))
}

// PostForm renders the post creation/edit form. When editing, the form posts
// back to the post's edit URL and is pre-filled from the existing post.
func PostForm(cfg SiteConfig, p Page, post BlogPost, editing bool) templ.Component {
	title := "New Post"
	action := "/new-post"
	if editing {
		title = "Edit Post"
		action = fmt.Sprintf("/edit-post/%d", post.ID)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s</h1>\n", title)
	fmt.Fprintf(&b, "<form method=\"post\" action=\"%s\">\n", action)
	b.WriteString(csrfField(p))
	b.WriteString(textField("text", "title", "Blog Post Title", post.Title))
	b.WriteString(textField("text", "subtitle", "Subtitle", post.Subtitle))
	b.WriteString(textField("text", "image_url", "Blog Image URL", post.ImageURL))
	fmt.Fprintf(&b, "<label>Blog Content<textarea name=\"body\" rows=\"16\">%s</textarea></label>\n", esc(post.Body))
	b.WriteString("<button type=\"submit\">Submit Post</button>\n</form>\n")
	return component(layout(cfg, p, title, b.String()))
}

// ImageList renders the uploaded cover images with upload and delete forms.
func ImageList(cfg SiteConfig, p Page, images []Image) templ.Component {
	var b strings.Builder
	b.WriteString("<h1>Images</h1>\n")
	b.WriteString("<form method=\"post\" action=\"/images/upload\" enctype=\"multipart/form-data\">\n")
	b.WriteString(csrfField(p))
	b.WriteString("<label>Upload<input type=\"file\" name=\"image\" accept=\"image/*\"></label>\n")
	b.WriteString("<button type=\"submit\">Upload</button>\n</form>\n")
	if len(images) == 0 {
		b.WriteString("<p class=\"empty\">No images uploaded.</p>\n")
	}
	b.WriteString("<ul class=\"images\">\n")
	for _, img := range images {
		b.WriteString("<li>\n")
		fmt.Fprintf(&b, "<code>/public/uploads/%s</code> (%dx%d, %d bytes)\n",
			esc(img.Filename), img.Width, img.Height, img.Size)
		fmt.Fprintf(&b, "<form method=\"post\" action=\"/images/delete/%s\">\n", esc(img.Filename))
		b.WriteString(csrfField(p))
		b.WriteString("<button type=\"submit\">Delete</button>\n</form>\n")
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
	return component(layout(cfg, p, "Images", b.String()))
}

// About renders the static about page.
func About(cfg SiteConfig, p Page) templ.Component {
	var b strings.Builder
	b.WriteString("<h1>About Us</h1>\n")
	fmt.Fprintf(&b, "<p>%s is a small community blog. Posts are written by the site owner; anyone with an account can join the conversation in the comments.</p>\n", esc(cfg.Name))
	return component(layout(cfg, p, "About", b.String()))
}

// Contact renders the static contact page.
func Contact(cfg SiteConfig, p Page) templ.Component {
	var b strings.Builder
	b.WriteString("<h1>Contact</h1>\n")
	fmt.Fprintf(&b, "<p>Questions or feedback? Reach the site owner at the address listed on <a href=\"%s\">%s</a>.</p>\n", esc(cfg.URL), esc(cfg.URL))
	return component(layout(cfg, p, "Contact", b.String()))
}

// NotFound renders the 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	body := "<h1>404</h1>\n<p>That page does not exist. <a href=\"/\">Back to the blog.</a></p>\n"
	return component(layout(cfg, Page{}, "Not Found", body))
}

// Forbidden renders the 403 page shown when a non-admin hits an admin route.
func Forbidden(cfg SiteConfig) templ.Component {
	body := "<h1>403</h1>\n<p>You are not allowed to do that.</p>\n"
	return component(layout(cfg, Page{}, "Forbidden", body))
}

// ServerError renders the 500 page.
func ServerError(cfg SiteConfig) templ.Component {
	body := "<h1>500</h1>\n<p>Something went wrong on our end. Try again in a moment.</p>\n"
	return component(layout(cfg, Page{}, "Server Error", body))
}
