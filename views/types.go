package views

// SiteConfig holds site-wide settings populated from environment variables.
// Every handler passes this to templates so nothing is hardcoded.
type SiteConfig struct {
	Name string // SITE_NAME (default "Inkpost")
	URL  string // SITE_URL  (default "http://localhost:5000")
}

// Page carries per-request chrome state into the layout: who is logged in,
// any one-shot flash messages, and the CSRF token for forms.
type Page struct {
	UserName string // display name of the logged-in user, "" when anonymous
	LoggedIn bool
	IsAdmin  bool
	Flashes  []string
	CSRF     string
}

// BlogPost is the core content type stored in SQLite and rendered by templates.
type BlogPost struct {
	ID       int64
	Title    string
	Subtitle string
	Date     string // display string, e.g. "April 05, 2024"
	Body     string // rich text (HTML)
	ImageURL string
	AuthorID int64
	Author   string // display name of the authoring user
}

// Comment is a reader comment attached to a post.
type Comment struct {
	ID     int64
	Text   string
	PostID int64
	Author string // display name of the commenting user
}

// Image is metadata for an uploaded cover image.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}
