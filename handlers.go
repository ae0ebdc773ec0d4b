package agrisite

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

func (a *App) handleHome(c echo.Context) error {
	posts, err := a.Cache.Posts()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(HomeData{Posts: posts, SiteURL: a.Config.URL}))
}

func (a *App) handleBooks(c echo.Context) error {
	books, err := a.Cache.Books()
	if err != nil {
		return err
	}
	term := c.QueryParam("q")
	category := c.QueryParam("category")
	if category == "" {
		category = CategoryAll
	}
	sortKey := BookSort(c.QueryParam("sort"))
	if sortKey == "" {
		sortKey = BookSortTitle
	}
	return Render(c, a.Views.Books(BookListData{
		Books:    QueryBooks(books, term, category, sortKey),
		Term:     term,
		Category: category,
		Sort:     sortKey,
	}))
}

func (a *App) handleCourses(c echo.Context) error {
	courses, err := a.Cache.Courses()
	if err != nil {
		return err
	}
	term := c.QueryParam("q")
	category := c.QueryParam("category")
	if category == "" {
		category = CategoryAll
	}
	return Render(c, a.Views.Courses(CourseListData{
		Courses:  QueryCourses(courses, term, category),
		Term:     term,
		Category: category,
	}))
}

func (a *App) handleBlog(c echo.Context) error {
	posts, err := a.Cache.Posts()
	if err != nil {
		return err
	}
	counts, err := a.Cache.CommentCounts()
	if err != nil {
		return err
	}
	term := c.QueryParam("q")
	category := c.QueryParam("category")
	if category == "" {
		category = CategoryAll
	}
	sortKey := PostSort(c.QueryParam("sort"))
	if sortKey == "" {
		sortKey = PostSortDate
	}
	return Render(c, a.Views.Blog(BlogListData{
		Posts:         QueryPosts(posts, term, category, sortKey),
		Categories:    PostCategories(posts),
		CommentCounts: counts,
		Liked:         a.Interactions.LikedPosts(visitorID(c)),
		Term:          term,
		Category:      category,
		Sort:          sortKey,
		Message:       c.QueryParam("msg"),
	}))
}

func (a *App) handleArticle(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Cache.PostBySlug(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	comments, err := a.Interactions.Comments(post.ID)
	if err != nil {
		return err
	}
	liked := a.Interactions.LikedPosts(visitorID(c))
	return Render(c, a.Views.Article(ArticleData{
		Post:      post,
		Comments:  comments,
		Liked:     liked[post.ID],
		Message:   c.QueryParam("msg"),
		CsrfToken: CsrfToken(c),
	}))
}

func (a *App) handleLike(c echo.Context) error {
	post, err := a.Cache.PostBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "post not found"})
		}
		return err
	}
	result, err := a.Interactions.ToggleLike(post.ID, visitorID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to update like"})
	}
	return c.JSON(http.StatusOK, result)
}

func (a *App) handleShare(c echo.Context) error {
	post, err := a.Cache.PostBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "post not found"})
		}
		return err
	}
	shares, err := a.Interactions.Share(post.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to share article"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"shares": shares,
		"url":    BuildURL(a.Config.URL, "blog", post.Slug),
	})
}

func (a *App) handleComment(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Cache.PostBySlug(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	err = a.Interactions.SubmitComment(post.ID,
		c.FormValue("name"), c.FormValue("email"), c.FormValue("text"))
	switch {
	case IsValidationError(err):
		return redirectMsg(c, "/blog/"+slug+"/", err.Error())
	case err != nil:
		return redirectMsg(c, "/blog/"+slug+"/", "Failed to post comment. Please try again.")
	}
	return redirectMsg(c, "/blog/"+slug+"/", "Your comment has been posted")
}

func (a *App) handleSubscribe(c echo.Context) error {
	email := c.FormValue("email")
	if email == "" {
		return redirectMsg(c, "/blog/", "Please enter your email")
	}
	_, err := a.Store.AddSubscriber(email)
	switch {
	case errors.Is(err, ErrAlreadySubscribed):
		return redirectMsg(c, "/blog/", "This email is already subscribed to our newsletter")
	case err != nil:
		a.log.Error().Err(err).Msg("subscribe failed")
		return redirectMsg(c, "/blog/", "Failed to subscribe. Please try again.")
	}
	return redirectMsg(c, "/blog/", "Thank you for subscribing to our newsletter")
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.Posts()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.Posts()
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

// redirectMsg sends the browser back with a transient notice in the query
// string (post/redirect/get).
func redirectMsg(c echo.Context, path, msg string) error {
	return c.Redirect(http.StatusSeeOther, path+"?msg="+url.QueryEscape(msg))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("server error")
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
