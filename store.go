package main

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"inkpost/views"
)

// errNotFound is returned when a requested row does not exist.
var errNotFound = sql.ErrNoRows

// errDuplicateEmail is returned when registering an email already on file.
var errDuplicateEmail = errors.New("email already registered")

// errDuplicateTitle is returned when a post title collides with an existing post.
var errDuplicateTitle = errors.New("post title already exists")

// store wraps a SQLite database and provides CRUD operations for users,
// posts, and comments.
type store struct {
	db *sql.DB
}

// newStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema if absent.
func newStore(path string) (*store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write access, busy_timeout so writers wait
	// instead of returning SQLITE_BUSY, foreign_keys so comment rows follow
	// their post on delete.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA foreign_keys=ON;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *store) Close() error {
	return s.db.Close()
}

func (s *store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL UNIQUE,
    subtitle TEXT NOT NULL,
    date TEXT NOT NULL,
    body TEXT NOT NULL,
    image_url TEXT NOT NULL,
    author_id INTEGER NOT NULL REFERENCES users(id)
);
CREATE TABLE IF NOT EXISTS comments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    text TEXT NOT NULL,
    user_id INTEGER NOT NULL REFERENCES users(id),
    post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

// --- Users ---

// user is a registered account. Session state (logged in or not) is never
// persisted here; it lives in the cookie session only.
type user struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    string
}

// CreateUser inserts a new user and returns it with its assigned id.
// Returns errDuplicateEmail if the email is already registered.
func (s *store) CreateUser(name, email, passwordHash, createdAt string) (user, error) {
	var exists int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM users WHERE email = ?`, email).Scan(&exists)
	if err != nil {
		return user{}, err
	}
	if exists > 0 {
		return user{}, errDuplicateEmail
	}
	res, err := s.db.Exec(`INSERT INTO users (name, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		name, email, passwordHash, createdAt)
	if err != nil {
		return user{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return user{}, err
	}
	return user{ID: id, Name: name, Email: email, PasswordHash: passwordHash, CreatedAt: createdAt}, nil
}

// GetUserByEmail returns the user registered under email, or errNotFound.
func (s *store) GetUserByEmail(email string) (user, error) {
	var u user
	err := s.db.QueryRow(`SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return user{}, err
	}
	return u, nil
}

// GetUser returns the user with the given id, or errNotFound.
func (s *store) GetUser(id int64) (user, error) {
	var u user
	err := s.db.QueryRow(`SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return user{}, err
	}
	return u, nil
}

// --- Posts ---

// ListPosts returns all posts in insertion order, with author names resolved.
func (s *store) ListPosts() ([]views.BlogPost, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.title, p.subtitle, p.date, p.body, p.image_url, p.author_id, u.name
		FROM posts p JOIN users u ON u.id = p.author_id
		ORDER BY p.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []views.BlogPost
	for rows.Next() {
		var p views.BlogPost
		if err := rows.Scan(&p.ID, &p.Title, &p.Subtitle, &p.Date, &p.Body, &p.ImageURL, &p.AuthorID, &p.Author); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetPost returns a single post by id, or errNotFound.
func (s *store) GetPost(id int64) (views.BlogPost, error) {
	var p views.BlogPost
	err := s.db.QueryRow(`
		SELECT p.id, p.title, p.subtitle, p.date, p.body, p.image_url, p.author_id, u.name
		FROM posts p JOIN users u ON u.id = p.author_id
		WHERE p.id = ?`, id).
		Scan(&p.ID, &p.Title, &p.Subtitle, &p.Date, &p.Body, &p.ImageURL, &p.AuthorID, &p.Author)
	if err != nil {
		return views.BlogPost{}, err
	}
	return p, nil
}

// titleTaken reports whether another post (not excludeID) already uses title.
func (s *store) titleTaken(title string, excludeID int64) (bool, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM posts WHERE title = ? AND id != ?`, title, excludeID).Scan(&count)
	return count > 0, err
}

// CreatePost inserts a new post and returns its assigned id.
// Returns errDuplicateTitle if the title is already in use; the UNIQUE
// constraint on title is the backstop for races.
func (s *store) CreatePost(p views.BlogPost) (int64, error) {
	taken, err := s.titleTaken(p.Title, 0)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, errDuplicateTitle
	}
	res, err := s.db.Exec(`INSERT INTO posts (title, subtitle, date, body, image_url, author_id) VALUES (?, ?, ?, ?, ?, ?)`,
		p.Title, p.Subtitle, p.Date, p.Body, p.ImageURL, p.AuthorID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdatePost overwrites the mutable fields of an existing post. The date is
// left untouched. Returns errDuplicateTitle on a title collision with another
// post, errNotFound if the post does not exist.
func (s *store) UpdatePost(p views.BlogPost) error {
	taken, err := s.titleTaken(p.Title, p.ID)
	if err != nil {
		return err
	}
	if taken {
		return errDuplicateTitle
	}
	res, err := s.db.Exec(`UPDATE posts SET title = ?, subtitle = ?, body = ?, image_url = ?, author_id = ? WHERE id = ?`,
		p.Title, p.Subtitle, p.Body, p.ImageURL, p.AuthorID, p.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errNotFound
	}
	return nil
}

// DeletePost removes a post by id. Its comments are removed by the
// ON DELETE CASCADE on comments.post_id.
func (s *store) DeletePost(id int64) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	return err
}

// --- Comments ---

// ListComments returns the comments on a post in insertion order, with
// commenter names resolved.
func (s *store) ListComments(postID int64) ([]views.Comment, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.text, c.post_id, u.name
		FROM comments c JOIN users u ON u.id = c.user_id
		WHERE c.post_id = ?
		ORDER BY c.id`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []views.Comment
	for rows.Next() {
		var cm views.Comment
		if err := rows.Scan(&cm.ID, &cm.Text, &cm.PostID, &cm.Author); err != nil {
			return nil, err
		}
		comments = append(comments, cm)
	}
	return comments, rows.Err()
}

// CreateComment attaches a comment to a post and user.
func (s *store) CreateComment(postID, userID int64, text string) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO comments (text, user_id, post_id) VALUES (?, ?, ?)`,
		text, userID, postID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// CountComments returns the number of comments on a post.
func (s *store) CountComments(postID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM comments WHERE post_id = ?`, postID).Scan(&count)
	return count, err
}

// --- Images ---

// SaveImage records metadata for an uploaded cover image.
func (s *store) SaveImage(img views.Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns uploaded image metadata, newest first.
func (s *store) ListImages() ([]views.Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []views.Image
	for rows.Next() {
		var img views.Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// DeleteImage removes image metadata by filename.
func (s *store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}
