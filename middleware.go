package main

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"inkpost/views"
)

const sessionName = "blog_session"

// adminUserID identifies the one account allowed to mutate posts: the first
// account ever registered.
const adminUserID int64 = 1

func (a *app) setupMiddleware(e *echo.Echo) {
	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/public/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; font-src 'self'; connect-src 'self'",
		HSTSMaxAge:            31536000,
		HSTSExcludeSubdomains: false,
	}))

	e.Use(session.Middleware(a.newSessionStore()))

	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		ContextKey:  middleware.DefaultCSRFConfig.ContextKey,
		TokenLookup: "header:X-CSRF-Token,form:_csrf",
		CookieName:  "_csrf",
		CookiePath:  "/",
		CookieSameSite: http.SameSiteLaxMode,
		CookieSecure:   a.cfg.CookieSecure,
		ErrorHandler: func(err error, c echo.Context) error {
			return c.String(http.StatusForbidden, "Forbidden")
		},
	}))

	e.Use(cacheControlMiddleware)
}

// cacheControlMiddleware sets Cache-Control headers based on the request path.
// Pages are session-dependent (nav state, flashes), so everything outside
// /public/ is no-store.
func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/public/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		case path == "/robots.txt" || path == "/sitemap.xml" || path == "/feed.xml":
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		default:
			c.Response().Header().Set("Cache-Control", "no-store")
		}
		return next(c)
	}
}

func (a *app) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(a.cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 12,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.cfg.CookieSecure,
	}
	return store
}

// currentUser reads the authenticated user's id and name from the session.
// ok is false for anonymous visitors.
func currentUser(c echo.Context) (id int64, name string, ok bool) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return 0, "", false
	}
	id, idOK := sess.Values["user_id"].(int64)
	name, _ = sess.Values["user_name"].(string)
	return id, name, idOK && id > 0
}

// signIn establishes a session for u and queues a flash, saving the session once.
func signIn(c echo.Context, u user, flash string) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values["user_id"] = u.ID
	sess.Values["user_name"] = u.Name
	if flash != "" {
		sess.AddFlash(flash)
	}
	return sess.Save(c.Request(), c.Response())
}

// signOut clears the session and queues a flash on a fresh one.
func signOut(c echo.Context, flash string) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	delete(sess.Values, "user_id")
	delete(sess.Values, "user_name")
	if flash != "" {
		sess.AddFlash(flash)
	}
	return sess.Save(c.Request(), c.Response())
}

// addFlash queues a one-shot message for the next rendered page.
func addFlash(c echo.Context, msg string) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.AddFlash(msg)
	return sess.Save(c.Request(), c.Response())
}

// pageData builds the per-request chrome state for the layout, consuming any
// pending flash messages.
func (a *app) pageData(c echo.Context) views.Page {
	p := views.Page{CSRF: csrfToken(c)}
	id, name, ok := currentUser(c)
	if ok {
		p.LoggedIn = true
		p.UserName = name
		p.IsAdmin = id == adminUserID
	}
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return p
	}
	if flashes := sess.Flashes(); len(flashes) > 0 {
		for _, f := range flashes {
			if s, ok := f.(string); ok {
				p.Flashes = append(p.Flashes, s)
			}
		}
		// Flashes() removed them from the session; persist that.
		_ = sess.Save(c.Request(), c.Response())
	}
	return p
}

// adminOnly guards content-mutation routes: the session must identify the
// admin account, otherwise the wrapped handler never runs.
func (a *app) adminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, _, ok := currentUser(c)
		if !ok || id != adminUserID {
			return echo.NewHTTPError(http.StatusForbidden)
		}
		return next(c)
	}
}

// csrfToken extracts the CSRF token from the Echo context.
func csrfToken(c echo.Context) string {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}
