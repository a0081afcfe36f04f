package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"inkpost/views"
)

// postID parses the :id route parameter.
func postID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// handleHome serves the post listing page.
func (a *app) handleHome(c echo.Context) error {
	posts, err := a.cache.ListPosts()
	if err != nil {
		return err
	}
	return render(c, views.Home(a.cfg.Site, a.pageData(c), posts))
}

// handlePost serves a single post with its comments.
func (a *app) handlePost(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return renderStatus(c, http.StatusNotFound, views.NotFound(a.cfg.Site))
	}
	post, err := a.store.GetPost(id)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return renderStatus(c, http.StatusNotFound, views.NotFound(a.cfg.Site))
		}
		return err
	}
	comments, err := a.store.ListComments(id)
	if err != nil {
		return err
	}
	return render(c, views.Post(a.cfg.Site, a.pageData(c), post, comments))
}

// handleAddComment attaches a comment to a post for the logged-in user.
// Anonymous visitors are sent to the login page instead.
func (a *app) handleAddComment(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return renderStatus(c, http.StatusNotFound, views.NotFound(a.cfg.Site))
	}
	userID, _, ok := currentUser(c)
	if !ok {
		if err := addFlash(c, "You need to log in or register to comment."); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	post, err := a.store.GetPost(id)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return renderStatus(c, http.StatusNotFound, views.NotFound(a.cfg.Site))
		}
		return err
	}

	var f commentForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}
	if err := c.Validate(&f); err != nil {
		comments, listErr := a.store.ListComments(id)
		if listErr != nil {
			return listErr
		}
		p := a.pageData(c)
		p.Flashes = append(p.Flashes, validationMessage(err))
		return render(c, views.Post(a.cfg.Site, p, post, comments))
	}

	if _, err := a.store.CreateComment(id, userID, f.Text); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", id))
}

func (a *app) handleAbout(c echo.Context) error {
	return render(c, views.About(a.cfg.Site, a.pageData(c)))
}

func (a *app) handleContact(c echo.Context) error {
	return render(c, views.Contact(a.cfg.Site, a.pageData(c)))
}

// handleRobots generates robots.txt dynamically using SITE_URL.
func (a *app) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", a.cfg.Site.URL)
	return c.String(http.StatusOK, body)
}
