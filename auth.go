package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"inkpost/views"
)

// hashPassword returns the bcrypt hash of a plaintext password.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// checkPassword compares a plaintext password against a stored bcrypt hash.
// bcrypt performs the comparison in constant time.
func checkPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (a *app) handleRegisterForm(c echo.Context) error {
	return render(c, views.Register(a.cfg.Site, a.pageData(c), "", ""))
}

func (a *app) handleRegister(c echo.Context) error {
	var f registerForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}
	if err := c.Validate(&f); err != nil {
		p := a.pageData(c)
		p.Flashes = append(p.Flashes, validationMessage(err))
		return render(c, views.Register(a.cfg.Site, p, f.Name, f.Email))
	}

	hash, err := hashPassword(f.Password)
	if err != nil {
		return err
	}
	u, err := a.store.CreateUser(f.Name, f.Email, hash, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		if errors.Is(err, errDuplicateEmail) {
			if err := addFlash(c, "You've already signed up with that email, log in instead."); err != nil {
				return err
			}
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return err
	}

	if err := signIn(c, u, fmt.Sprintf("%s, you have successfully registered!", u.Name)); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *app) handleLoginForm(c echo.Context) error {
	return render(c, views.Login(a.cfg.Site, a.pageData(c), ""))
}

func (a *app) handleLogin(c echo.Context) error {
	if !a.limiter.Check(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}

	var f loginForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}
	if err := c.Validate(&f); err != nil {
		p := a.pageData(c)
		p.Flashes = append(p.Flashes, validationMessage(err))
		return render(c, views.Login(a.cfg.Site, p, f.Email))
	}

	u, err := a.store.GetUserByEmail(f.Email)
	if err != nil {
		if errors.Is(err, errNotFound) {
			a.limiter.Record(c.RealIP())
			p := a.pageData(c)
			p.Flashes = append(p.Flashes, fmt.Sprintf("There is no account with the email %s. Please try again.", f.Email))
			return render(c, views.Login(a.cfg.Site, p, f.Email))
		}
		return err
	}
	if err := checkPassword(u.PasswordHash, f.Password); err != nil {
		a.limiter.Record(c.RealIP())
		p := a.pageData(c)
		p.Flashes = append(p.Flashes, "Password incorrect. Please try again.")
		return render(c, views.Login(a.cfg.Site, p, f.Email))
	}

	if err := signIn(c, u, fmt.Sprintf("%s, you have logged in successfully!", u.Name)); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *app) handleLogout(c echo.Context) error {
	_, name, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	if err := signOut(c, fmt.Sprintf("%s has logged out.", name)); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}
