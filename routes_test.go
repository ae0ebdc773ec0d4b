package agrisite

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func testViews() ViewFuncs {
	empty := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error { return nil })
	return ViewFuncs{
		Home:           func(HomeData) templ.Component { return empty },
		Books:          func(BookListData) templ.Component { return empty },
		Courses:        func(CourseListData) templ.Component { return empty },
		Blog:           func(BlogListData) templ.Component { return empty },
		Article:        func(ArticleData) templ.Component { return empty },
		SignIn:         func(SignInData) templ.Component { return empty },
		AdminDashboard: func(AdminData) templ.Component { return empty },
		NotFound:       func() templ.Component { return empty },
		ServerError:    func() templ.Component { return empty },
	}
}

// setupTestApp builds a fully wired App (store, cache, middleware, routes)
// so requests exercise the same stack a browser hits.
func setupTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	a := New(SiteConfig{
		AdminEmail:    "admin@example.com",
		AdminPassword: "correct-horse",
		SessionSecret: "test-secret",
		DatabasePath:  filepath.Join(dir, "site.db"),
		CoverDir:      filepath.Join(dir, "covers"),
	}, testViews())
	if err := a.init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func postForm(a *App, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func TestSubscribeRoute(t *testing.T) {
	a := setupTestApp(t)

	rec := postForm(a, "/subscribe", url.Values{"email": {"reader@example.com"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d (%s), want 303", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/blog/") {
		t.Errorf("Location = %q, want a /blog/ redirect", loc)
	}

	subs, err := a.Store.ListSubscribers()
	if err != nil {
		t.Fatalf("ListSubscribers failed: %v", err)
	}
	if len(subs) != 1 || subs[0].Email != "reader@example.com" {
		t.Fatalf("subscribers = %v, want the one signup", subs)
	}
}

func TestSubscribeRouteDuplicate(t *testing.T) {
	a := setupTestApp(t)

	if rec := postForm(a, "/subscribe", url.Values{"email": {"reader@example.com"}}); rec.Code != http.StatusSeeOther {
		t.Fatalf("first signup status = %d, want 303", rec.Code)
	}
	rec := postForm(a, "/subscribe", url.Values{"email": {"reader@example.com"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("duplicate status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "already+subscribed") {
		t.Errorf("Location = %q, want the already-subscribed notice", loc)
	}

	subs, err := a.Store.ListSubscribers()
	if err != nil {
		t.Fatalf("ListSubscribers failed: %v", err)
	}
	if len(subs) != 1 {
		t.Errorf("subscriber count = %d, want 1", len(subs))
	}
}

func TestSubscribeRouteBlankEmail(t *testing.T) {
	a := setupTestApp(t)

	rec := postForm(a, "/subscribe", url.Values{})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "enter+your+email") {
		t.Errorf("Location = %q, want the blank-email notice", loc)
	}
}

func TestAdminRequiresSession(t *testing.T) {
	a := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/signin/" {
		t.Errorf("Location = %q, want /signin/", loc)
	}
}

func TestLikeRouteWithoutCsrfToken(t *testing.T) {
	a := setupTestApp(t)

	post := BlogPost{Title: "Likeable", Content: "c", Author: "a", Category: "News", Published: true}
	if err := a.Store.CreatePost(&post); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	// Anonymous readers carry no CSRF token; the endpoint must still work.
	rec := postForm(a, "/blog/"+post.Slug+"/like", url.Values{})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s), want 200", rec.Code, rec.Body.String())
	}
	var result LikeResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.Liked || result.Likes != 1 {
		t.Errorf("result = %+v, want liked with 1 like", result)
	}
}

func TestLikeRouteUnknownSlug(t *testing.T) {
	a := setupTestApp(t)

	rec := postForm(a, "/blog/no-such-post/like", url.Values{})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSignInPostRequiresCsrfToken(t *testing.T) {
	a := setupTestApp(t)

	rec := postForm(a, "/signin/", url.Values{
		"email":    {"admin@example.com"},
		"password": {"correct-horse"},
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 without a token", rec.Code)
	}
}
