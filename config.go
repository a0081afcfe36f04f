package main

import (
	"log"
	"os"
	"strings"

	"inkpost/views"
)

// config holds all process configuration, populated from environment variables.
type config struct {
	Site views.SiteConfig

	Addr         string // listen address (default ":5000")
	DatabasePath string // SQLite path (default "data/blog.db")

	SessionSecret string // required: session signing secret
	CookieSecure  bool   // set true when serving over HTTPS
}

func configFromEnv() config {
	return config{
		Site: views.SiteConfig{
			Name: envOr("SITE_NAME", "Inkpost"),
			URL:  strings.TrimSuffix(envOr("SITE_URL", "http://localhost:5000"), "/"),
		},
		Addr:          envOr("ADDR", ":5000"),
		DatabasePath:  envOr("DATABASE_PATH", "data/blog.db"),
		SessionSecret: mustEnv("SESSION_SECRET"),
		CookieSecure:  strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true"),
	}
}

// envOr returns the value of the environment variable key, or fallback if empty.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// mustEnv returns the value of the environment variable key, or fatally exits.
func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("required environment variable %s is not set", key)
	}
	return v
}
