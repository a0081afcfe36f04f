// Inkpost is a small multi-user blog: visitors read posts, registered users comment,
// and the first-registered account manages posts.
package main

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	_ "modernc.org/sqlite"

	"inkpost/views"
)

// app holds shared dependencies injected into every handler.
type app struct {
	cfg       config
	store     *store
	cache     *postCache
	limiter   *loginLimiter
	staticDir string
}

func main() {
	cfg := configFromEnv()

	store, err := newStore(cfg.DatabasePath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	a := &app{
		cfg:       cfg,
		store:     store,
		cache:     newPostCache(store, 5*time.Minute),
		limiter:   newLoginLimiter(5, time.Minute),
		staticDir: "public",
	}

	e := a.newServer()
	if err := e.Start(cfg.Addr); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// newServer builds the Echo instance with all middleware and routes wired.
func (a *app) newServer() *echo.Echo {
	e := echo.New()
	e.Validator = newFormValidator()
	a.setupMiddleware(e)

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	e.GET("/about", a.handleAbout)
	e.GET("/contact", a.handleContact)
	e.GET("/post/:id", a.handlePost)
	e.POST("/post/:id", a.handleAddComment)

	e.GET("/register", a.handleRegisterForm)
	e.POST("/register", a.handleRegister)
	e.GET("/login", a.handleLoginForm)
	e.POST("/login", a.handleLogin)
	e.GET("/logout", a.handleLogout)

	// Content mutation is restricted to the admin account.
	admin := e.Group("", a.adminOnly)
	admin.GET("/new-post", a.handleNewPostForm)
	admin.POST("/new-post", a.handleNewPost)
	admin.GET("/edit-post/:id", a.handleEditPostForm)
	admin.POST("/edit-post/:id", a.handleEditPost)
	admin.GET("/delete/:id", a.handleDeletePost)
	admin.GET("/images", a.handleImageList)
	admin.POST("/images/upload", a.handleImageUpload)
	admin.POST("/images/delete/:filename", a.handleImageDelete)

	return e
}

// httpErrorHandler renders styled 403/404/500 pages; everything else falls
// through to Echo's default handler.
func (a *app) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok {
		switch he.Code {
		case http.StatusNotFound:
			_ = renderStatus(c, http.StatusNotFound, views.NotFound(a.cfg.Site))
			return
		case http.StatusForbidden:
			_ = renderStatus(c, http.StatusForbidden, views.Forbidden(a.cfg.Site))
			return
		}
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = renderStatus(c, code, views.ServerError(a.cfg.Site))
		return
	}
	c.Echo().DefaultHTTPErrorHandler(err, c)
}
