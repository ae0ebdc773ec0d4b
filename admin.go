package agrisite

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) handleAdmin(c echo.Context) error {
	tab := c.QueryParam("tab")
	if tab == "" {
		tab = "library"
	}
	return a.renderAdminDashboard(c, tab, c.QueryParam("msg"), nil)
}

// coverFromRequest stages an attached cover file, or returns nil when the
// form has none. The cleanup func must be called after the submit finishes.
func coverFromRequest(c echo.Context, field string) (*uploadedFile, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		// No file attached is a normal create-without-cover submit.
		return nil, func() {}, nil
	}
	if fh.Filename == "" || fh.Size == 0 {
		return nil, func() {}, nil
	}
	src, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &uploadedFile{Name: fh.Filename, Reader: src}, func() { src.Close() }, nil
}

// submitMessage converts a controller error to the notice rendered on the
// dashboard. Validation problems and double submits show their own text;
// backend failures show a generic, retriable message.
func submitMessage(err error, success, failure string) string {
	switch {
	case err == nil:
		return success
	case errors.Is(err, ErrSubmitInFlight):
		return "A submit is already in progress. Please wait."
	case IsValidationError(err):
		return err.Error()
	default:
		return failure
	}
}

func (a *App) handleBookCreate(c echo.Context) error {
	form := bookForm{
		Title:           c.FormValue("title"),
		Author:          c.FormValue("author"),
		Category:        c.FormValue("category"),
		Description:     c.FormValue("description"),
		ISBN:            c.FormValue("isbn"),
		PublicationDate: c.FormValue("publication_date"),
		WhatsappLink:    c.FormValue("whatsapp_link"),
		Rating:          c.FormValue("rating"),
		Price:           c.FormValue("price"),
	}
	cover, cleanup, err := coverFromRequest(c, "cover_image")
	if err != nil {
		return err
	}
	defer cleanup()

	err = a.books.Create(form, cover)
	msg := submitMessage(err,
		"The book has been successfully added to the library.",
		"Failed to add book. Please try again.")
	return a.renderAdminDashboard(c, "library", msg, nil)
}

func (a *App) handleBookDelete(c echo.Context) error {
	err := a.books.Delete(c.Param("id"), c.FormValue("cover_url"))
	msg := submitMessage(err,
		"The book has been successfully deleted.",
		"Failed to delete book. Please try again.")
	return a.renderAdminDashboard(c, "library", msg, nil)
}

func (a *App) handleCourseSave(c echo.Context) error {
	form := courseForm{
		Title:           c.FormValue("title"),
		Description:     c.FormValue("description"),
		Instructor:      c.FormValue("instructor"),
		Category:        c.FormValue("category"),
		DurationDays:    c.FormValue("duration_days"),
		DurationHours:   c.FormValue("duration_hours"),
		DifficultyLevel: c.FormValue("difficulty_level"),
		Price:           c.FormValue("price"),
		Prerequisites:   c.FormValue("prerequisites"),
		WhatsappLink:    c.FormValue("whatsapp_link"),
		CourseDate:      c.FormValue("course_date"),
		Classification:  c.FormValue("classification"),
	}
	editingID := c.FormValue("course_id")
	cover, cleanup, err := coverFromRequest(c, "cover_image")
	if err != nil {
		return err
	}
	defer cleanup()

	err = a.courses.Save(form, editingID, cover)
	success := "The course has been successfully created."
	failure := "Failed to create course. Please try again."
	if editingID != "" {
		success = "The course has been successfully updated."
		failure = "Failed to update course. Please try again."
	}
	return a.renderAdminDashboard(c, "courses", submitMessage(err, success, failure), nil)
}

// handleCourseEdit loads a course into the form. While a course is being
// edited, submit updates by id instead of inserting.
func (a *App) handleCourseEdit(c echo.Context) error {
	course, err := a.Store.GetCourse(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Redirect(http.StatusSeeOther, "/admin/?tab=courses")
		}
		return err
	}
	return a.renderAdminDashboard(c, "courses", "", &course)
}

func (a *App) handleCourseDelete(c echo.Context) error {
	err := a.courses.Delete(c.Param("id"), c.FormValue("cover_url"))
	msg := submitMessage(err,
		"The course has been successfully deleted.",
		"Failed to delete course. Please try again.")
	return a.renderAdminDashboard(c, "courses", msg, nil)
}

func (a *App) handleBlogCreate(c echo.Context) error {
	form := blogForm{
		Title:    c.FormValue("title"),
		Content:  c.FormValue("content"),
		Excerpt:  c.FormValue("excerpt"),
		Author:   c.FormValue("author"),
		Category: c.FormValue("category"),
		Status:   c.FormValue("status"),
	}
	cover, cleanup, err := coverFromRequest(c, "cover_image")
	if err != nil {
		return err
	}
	defer cleanup()

	err = a.blog.Create(form, cover)
	msg := submitMessage(err,
		"The blog post has been successfully published.",
		"Failed to publish blog post. Please try again.")
	return a.renderAdminDashboard(c, "blog", msg, nil)
}

func (a *App) handleBlogDelete(c echo.Context) error {
	err := a.blog.Delete(c.Param("id"))
	msg := submitMessage(err,
		"Blog post has been successfully deleted.",
		"Failed to delete blog post. Please try again.")
	return a.renderAdminDashboard(c, "blog", msg, nil)
}

// handleSubscriberDelete removes a subscriber, but only when the request
// carries the explicit confirmation field.
func (a *App) handleSubscriberDelete(c echo.Context) error {
	if c.FormValue("confirm") != "true" {
		return a.renderAdminDashboard(c, "subscribers", "Deleting a subscriber requires confirmation.", nil)
	}
	err := a.Store.DeleteSubscriber(c.Param("id"))
	if err != nil {
		a.log.Error().Err(err).Str("id", c.Param("id")).Msg("delete subscriber failed")
		return a.renderAdminDashboard(c, "subscribers", "Failed to delete subscriber.", nil)
	}
	return a.renderAdminDashboard(c, "subscribers", "Subscriber removed successfully.", nil)
}

// renderAdminDashboard reads every collection fresh from the store; admin
// views never go through the public cache.
func (a *App) renderAdminDashboard(c echo.Context, tab, msg string, editing *Course) error {
	books, err := a.Store.ListBooks()
	if err != nil {
		return err
	}
	courses, err := a.Store.ListCourses()
	if err != nil {
		return err
	}
	posts, err := a.Store.ListPosts(false)
	if err != nil {
		return err
	}
	subscribers, err := a.Store.ListSubscribers()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(AdminData{
		ActiveTab:     tab,
		Books:         books,
		Courses:       courses,
		Posts:         posts,
		Subscribers:   subscribers,
		EditingCourse: editing,
		Message:       msg,
		CsrfToken:     CsrfToken(c),
	}))
}
