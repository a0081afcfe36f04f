package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"inkpost/views"
)

// postDateLayout is the display format stored on posts, e.g. "April 05, 2024".
const postDateLayout = "January 02, 2006"

func (a *app) handleNewPostForm(c echo.Context) error {
	return render(c, views.PostForm(a.cfg.Site, a.pageData(c), views.BlogPost{}, false))
}

func (a *app) handleNewPost(c echo.Context) error {
	var f postForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}
	draft := views.BlogPost{
		Title:    f.Title,
		Subtitle: f.Subtitle,
		Body:     f.Body,
		ImageURL: f.ImageURL,
	}
	if err := c.Validate(&f); err != nil {
		p := a.pageData(c)
		p.Flashes = append(p.Flashes, validationMessage(err))
		return render(c, views.PostForm(a.cfg.Site, p, draft, false))
	}

	userID, _, _ := currentUser(c)
	draft.AuthorID = userID
	draft.Date = time.Now().Format(postDateLayout)
	if _, err := a.store.CreatePost(draft); err != nil {
		if errors.Is(err, errDuplicateTitle) {
			p := a.pageData(c)
			p.Flashes = append(p.Flashes, "A post with that title already exists.")
			return render(c, views.PostForm(a.cfg.Site, p, draft, false))
		}
		return err
	}
	a.cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *app) handleEditPostForm(c echo.Context) error {
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
	return render(c, views.PostForm(a.cfg.Site, a.pageData(c), post, true))
}

func (a *app) handleEditPost(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return renderStatus(c, http.StatusNotFound, views.NotFound(a.cfg.Site))
	}
	var f postForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}
	userID, _, _ := currentUser(c)
	// The date is never touched on edit; the author is reassigned to the
	// editing user.
	updated := views.BlogPost{
		ID:       id,
		Title:    f.Title,
		Subtitle: f.Subtitle,
		Body:     f.Body,
		ImageURL: f.ImageURL,
		AuthorID: userID,
	}
	if err := c.Validate(&f); err != nil {
		p := a.pageData(c)
		p.Flashes = append(p.Flashes, validationMessage(err))
		return render(c, views.PostForm(a.cfg.Site, p, updated, true))
	}

	if err := a.store.UpdatePost(updated); err != nil {
		switch {
		case errors.Is(err, errDuplicateTitle):
			p := a.pageData(c)
			p.Flashes = append(p.Flashes, "A post with that title already exists.")
			return render(c, views.PostForm(a.cfg.Site, p, updated, true))
		case errors.Is(err, errNotFound):
			return renderStatus(c, http.StatusNotFound, views.NotFound(a.cfg.Site))
		}
		return err
	}
	a.cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", id))
}

func (a *app) handleDeletePost(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return renderStatus(c, http.StatusNotFound, views.NotFound(a.cfg.Site))
	}
	if err := a.store.DeletePost(id); err != nil {
		return err
	}
	a.cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/")
}
