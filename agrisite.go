// Package agrisite is a content engine for an agricultural services site,
// built with Go, Echo, and templ. It provides book and course catalogs, a
// blog with comments, likes and shares, newsletter signup, and a
// session-gated admin dashboard out of the box.
//
// Users provide their own templ components via the ViewFuncs struct, and
// agrisite handles the handler logic, validation, middleware, and database
// operations.
package agrisite

import (
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// HomeData feeds the landing page template.
type HomeData struct {
	Posts   []BlogPost
	SiteURL string
}

// BookListData feeds the library page: the filtered view plus the controls'
// current values.
type BookListData struct {
	Books    []Book
	Term     string
	Category string
	Sort     BookSort
}

// CourseListData feeds the courses page.
type CourseListData struct {
	Courses  []Course
	Term     string
	Category string
}

// BlogListData feeds the blog listing.
type BlogListData struct {
	Posts         []BlogPost
	Categories    []string
	CommentCounts map[string]int
	Liked         map[string]bool
	Term          string
	Category      string
	Sort          PostSort
	Message       string
}

// ArticleData feeds the article reader with its comment thread.
type ArticleData struct {
	Post      BlogPost
	Comments  []BlogComment
	Liked     bool
	Message   string
	CsrfToken string
}

// SignInData feeds the sign-in view.
type SignInData struct {
	ShowError bool
	CsrfToken string
}

// AdminData feeds the admin dashboard: every collection plus form state.
type AdminData struct {
	ActiveTab     string // "library", "courses", "blog", "subscribers"
	Books         []Book
	Courses       []Course
	Posts         []BlogPost
	Subscribers   []Subscriber
	EditingCourse *Course
	Message       string
	CsrfToken     string
}

// ViewFuncs holds user-provided templ components that the engine calls when
// rendering pages. This is the inversion-of-control mechanism that lets users
// own and customize all templates.
type ViewFuncs struct {
	Home           func(data HomeData) templ.Component
	Books          func(data BookListData) templ.Component
	Courses        func(data CourseListData) templ.Component
	Blog           func(data BlogListData) templ.Component
	Article        func(data ArticleData) templ.Component
	SignIn         func(data SignInData) templ.Component
	AdminDashboard func(data AdminData) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// App is the central agrisite application. It wires together the store,
// cache, cover bucket, handlers, middleware, and user-provided templates.
type App struct {
	Config       SiteConfig
	Echo         *echo.Echo
	Store        *Store
	Cache        *ContentCache
	Covers       *CoverBucket
	Views        ViewFuncs
	Interactions *Interactions

	log          zerolog.Logger
	loginLimiter *LoginLimiter
	books        *bookController
	courses      *courseController
	blog         *blogController
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new agrisite App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, cache, cover bucket, middleware, and routes,
// then starts the server.
func (a *App) Start() error {
	if err := a.init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) init() error {
	if a.Config.AdminEmail == "" {
		return fmt.Errorf("agrisite: AdminEmail is required")
	}
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("agrisite: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("agrisite: SessionSecret is required")
	}

	a.log = newLogger(a.Config)

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("agrisite: init store: %w", err)
	}
	a.Store = store

	covers, err := NewCoverBucket(a.Config.CoverDir, "/public/covers")
	if err != nil {
		return fmt.Errorf("agrisite: init cover bucket: %w", err)
	}
	a.Covers = covers

	a.Cache = NewContentCache(a.Store, a.Config.CacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)
	a.Interactions = &Interactions{store: a.Store, cache: a.Cache, log: a.log}
	a.books = &bookController{store: a.Store, covers: a.Covers, cache: a.Cache, log: a.log}
	a.courses = &courseController{store: a.Store, covers: a.Covers, cache: a.Cache, log: a.log}
	a.blog = &blogController{store: a.Store, covers: a.Covers, cache: a.Cache, log: a.log}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded placeholder cover, then the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/placeholder.svg", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/books/", a.handleBooks)
	e.GET("/courses/", a.handleCourses)
	e.GET("/blog/", a.handleBlog)
	e.GET("/blog/:slug/", a.handleArticle)
	e.POST("/blog/:slug/like", a.handleLike)
	e.POST("/blog/:slug/share", a.handleShare)
	e.POST("/blog/:slug/comments", a.handleComment)
	e.POST("/subscribe", a.handleSubscribe)

	// Auth gate
	e.GET("/signin/", a.handleSignInPage)
	e.POST("/signin/", a.handleSignIn)
	e.POST("/signout/", a.handleSignOut)

	// Admin routes, authenticated state only
	admin := e.Group("/admin", requireAdmin)
	admin.GET("/", a.handleAdmin)
	admin.POST("/books/", a.handleBookCreate)
	admin.POST("/books/:id/delete", a.handleBookDelete)
	admin.POST("/courses/", a.handleCourseSave)
	admin.GET("/courses/:id/edit/", a.handleCourseEdit)
	admin.POST("/courses/:id/delete", a.handleCourseDelete)
	admin.POST("/blog/", a.handleBlogCreate)
	admin.POST("/blog/:id/delete", a.handleBlogDelete)
	admin.POST("/subscribers/:id/delete", a.handleSubscriberDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("agrisite: required environment variable %s is not set", key)
	}
	return v
}
