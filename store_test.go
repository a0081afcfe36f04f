package main

import (
	"errors"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"inkpost/views"
)

func setupTestStore(t *testing.T) *store {
	t.Helper()
	s, err := newStore(filepath.Join(t.TempDir(), "blog.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedUser(t *testing.T, s *store, name, email string) user {
	t.Helper()
	u, err := s.CreateUser(name, email, "not-a-real-hash", "2024-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", email, err)
	}
	return u
}

func seedPost(t *testing.T, s *store, authorID int64, title string) int64 {
	t.Helper()
	id, err := s.CreatePost(views.BlogPost{
		Title:    title,
		Subtitle: "a subtitle",
		Date:     "April 05, 2024",
		Body:     "<p>body</p>",
		ImageURL: "https://example.com/cover.jpg",
		AuthorID: authorID,
	})
	if err != nil {
		t.Fatalf("CreatePost(%s) failed: %v", title, err)
	}
	return id
}

func TestCreateUserAndGetByEmail(t *testing.T) {
	s := setupTestStore(t)

	u := seedUser(t, s, "Root", "root@example.com")
	if u.ID != 1 {
		t.Errorf("first user ID = %d, want 1", u.ID)
	}

	got, err := s.GetUserByEmail("root@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if got.Name != "Root" {
		t.Errorf("Name = %q, want %q", got.Name, "Root")
	}
	if got.PasswordHash != "not-a-real-hash" {
		t.Errorf("PasswordHash = %q, want stored hash", got.PasswordHash)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := setupTestStore(t)

	seedUser(t, s, "Root", "root@example.com")
	_, err := s.CreateUser("Imposter", "root@example.com", "other-hash", "2024-01-02T00:00:00Z")
	if !errors.Is(err, errDuplicateEmail) {
		t.Fatalf("expected errDuplicateEmail, got %v", err)
	}

	// The original row must be untouched.
	got, err := s.GetUserByEmail("root@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if got.Name != "Root" || got.ID != 1 {
		t.Errorf("existing user changed: got %+v", got)
	}
}

func TestGetUserNotFound(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.GetUser(42); !errors.Is(err, errNotFound) {
		t.Errorf("GetUser(42) err = %v, want errNotFound", err)
	}
	if _, err := s.GetUserByEmail("nobody@example.com"); !errors.Is(err, errNotFound) {
		t.Errorf("GetUserByEmail err = %v, want errNotFound", err)
	}
}

func TestCreateAndGetPost(t *testing.T) {
	s := setupTestStore(t)

	author := seedUser(t, s, "Root", "root@example.com")
	id := seedPost(t, s, author.ID, "Hello")

	got, err := s.GetPost(id)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Title != "Hello" {
		t.Errorf("Title = %q, want %q", got.Title, "Hello")
	}
	if got.Author != "Root" {
		t.Errorf("Author = %q, want %q (joined from users)", got.Author, "Root")
	}
	if got.Date != "April 05, 2024" {
		t.Errorf("Date = %q, want display string", got.Date)
	}
}

func TestGetPostNotFound(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.GetPost(7); !errors.Is(err, errNotFound) {
		t.Errorf("GetPost(7) err = %v, want errNotFound", err)
	}
}

func TestCreatePostDuplicateTitle(t *testing.T) {
	s := setupTestStore(t)

	author := seedUser(t, s, "Root", "root@example.com")
	seedPost(t, s, author.ID, "Hello")

	_, err := s.CreatePost(views.BlogPost{
		Title:    "Hello",
		Subtitle: "another",
		Date:     "April 06, 2024",
		Body:     "<p>other body</p>",
		ImageURL: "https://example.com/other.jpg",
		AuthorID: author.ID,
	})
	if !errors.Is(err, errDuplicateTitle) {
		t.Fatalf("expected errDuplicateTitle, got %v", err)
	}

	posts, err := s.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("post count = %d, want exactly 1 row for the title", len(posts))
	}
}

func TestUpdatePost(t *testing.T) {
	s := setupTestStore(t)

	root := seedUser(t, s, "Root", "root@example.com")
	editor := seedUser(t, s, "Editor", "editor@example.com")
	id := seedPost(t, s, root.ID, "Hello")

	err := s.UpdatePost(views.BlogPost{
		ID:       id,
		Title:    "Hello Again",
		Subtitle: "updated subtitle",
		Body:     "<p>updated</p>",
		ImageURL: "https://example.com/new.jpg",
		AuthorID: editor.ID,
	})
	if err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}

	got, err := s.GetPost(id)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Title != "Hello Again" {
		t.Errorf("Title = %q, want updated title", got.Title)
	}
	if got.Author != "Editor" {
		t.Errorf("Author = %q, want reassigned author", got.Author)
	}
	if got.Date != "April 05, 2024" {
		t.Errorf("Date = %q, edit must leave the date untouched", got.Date)
	}
}

func TestUpdatePostDuplicateTitle(t *testing.T) {
	s := setupTestStore(t)

	root := seedUser(t, s, "Root", "root@example.com")
	seedPost(t, s, root.ID, "First")
	second := seedPost(t, s, root.ID, "Second")

	err := s.UpdatePost(views.BlogPost{
		ID:       second,
		Title:    "First",
		Subtitle: "s",
		Body:     "b",
		ImageURL: "https://example.com/i.jpg",
		AuthorID: root.ID,
	})
	if !errors.Is(err, errDuplicateTitle) {
		t.Fatalf("expected errDuplicateTitle, got %v", err)
	}
}

func TestUpdatePostKeepOwnTitle(t *testing.T) {
	s := setupTestStore(t)

	root := seedUser(t, s, "Root", "root@example.com")
	id := seedPost(t, s, root.ID, "Hello")

	// Saving a post under its own unchanged title is not a collision.
	err := s.UpdatePost(views.BlogPost{
		ID:       id,
		Title:    "Hello",
		Subtitle: "new subtitle",
		Body:     "b",
		ImageURL: "https://example.com/i.jpg",
		AuthorID: root.ID,
	})
	if err != nil {
		t.Fatalf("UpdatePost with own title failed: %v", err)
	}
}

func TestUpdatePostNotFound(t *testing.T) {
	s := setupTestStore(t)

	seedUser(t, s, "Root", "root@example.com")
	err := s.UpdatePost(views.BlogPost{ID: 99, Title: "Ghost", Subtitle: "s", Body: "b", ImageURL: "https://example.com/i.jpg", AuthorID: 1})
	if !errors.Is(err, errNotFound) {
		t.Fatalf("expected errNotFound, got %v", err)
	}
}

func TestListPostsInsertionOrder(t *testing.T) {
	s := setupTestStore(t)

	root := seedUser(t, s, "Root", "root@example.com")
	seedPost(t, s, root.ID, "First")
	seedPost(t, s, root.ID, "Second")
	seedPost(t, s, root.ID, "Third")

	posts, err := s.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("post count = %d, want 3", len(posts))
	}
	for i, want := range []string{"First", "Second", "Third"} {
		if posts[i].Title != want {
			t.Errorf("posts[%d].Title = %q, want %q", i, posts[i].Title, want)
		}
	}
}

func TestCommentsRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	root := seedUser(t, s, "Root", "root@example.com")
	alice := seedUser(t, s, "Alice", "alice@example.com")
	id := seedPost(t, s, root.ID, "Hello")

	if _, err := s.CreateComment(id, alice.ID, "First!"); err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}
	if _, err := s.CreateComment(id, root.ID, "Thanks for reading."); err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	comments, err := s.ListComments(id)
	if err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("comment count = %d, want 2", len(comments))
	}
	if comments[0].Author != "Alice" || comments[0].Text != "First!" {
		t.Errorf("first comment = %+v, want Alice's", comments[0])
	}
	if comments[1].Author != "Root" {
		t.Errorf("second comment author = %q, want Root", comments[1].Author)
	}
}

func TestDeletePostCascadesComments(t *testing.T) {
	s := setupTestStore(t)

	root := seedUser(t, s, "Root", "root@example.com")
	id := seedPost(t, s, root.ID, "Hello")
	if _, err := s.CreateComment(id, root.ID, "a comment"); err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	if err := s.DeletePost(id); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}

	if _, err := s.GetPost(id); !errors.Is(err, errNotFound) {
		t.Errorf("GetPost after delete err = %v, want errNotFound", err)
	}
	count, err := s.CountComments(id)
	if err != nil {
		t.Fatalf("CountComments failed: %v", err)
	}
	if count != 0 {
		t.Errorf("comment count after delete = %d, want 0 (cascade)", count)
	}
}

func TestDeleteNonexistentPost(t *testing.T) {
	s := setupTestStore(t)

	if err := s.DeletePost(123); err != nil {
		t.Errorf("DeletePost on nonexistent should not error, got: %v", err)
	}
}

func TestImagesSaveListDelete(t *testing.T) {
	s := setupTestStore(t)

	img := views.Image{
		Filename:     "cover.jpg",
		OriginalName: "Cover Photo.png",
		Width:        800,
		Height:       600,
		Size:         12345,
		UploadedAt:   "2024-04-05T00:00:00Z",
	}
	if err := s.SaveImage(img); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	images, err := s.ListImages()
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(images) != 1 || images[0].Filename != "cover.jpg" {
		t.Fatalf("ListImages = %+v, want the saved image", images)
	}

	if err := s.DeleteImage("cover.jpg"); err != nil {
		t.Fatalf("DeleteImage failed: %v", err)
	}
	images, err = s.ListImages()
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(images) != 0 {
		t.Errorf("image count after delete = %d, want 0", len(images))
	}
}
