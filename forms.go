package agrisite

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// requestState tracks a form controller's submit lifecycle. A second submit
// while one is in flight is rejected before any backend work happens.
type requestState int32

const (
	stateIdle requestState = iota
	stateSubmitting
	stateSucceeded
	stateFailed
)

// ErrSubmitInFlight is returned when a submit arrives while a previous one
// for the same form is still running.
var ErrSubmitInFlight = errors.New("agrisite: submit already in flight")

type submitGuard struct {
	state atomic.Int32
}

func (g *submitGuard) begin() error {
	for {
		cur := g.state.Load()
		if requestState(cur) == stateSubmitting {
			return ErrSubmitInFlight
		}
		if g.state.CompareAndSwap(cur, int32(stateSubmitting)) {
			return nil
		}
	}
}

func (g *submitGuard) finish(err error) {
	if err != nil {
		g.state.Store(int32(stateFailed))
		return
	}
	g.state.Store(int32(stateSucceeded))
}

func (g *submitGuard) current() requestState {
	return requestState(g.state.Load())
}

// ValidationError marks input problems detected before any backend call.
// These render inline and are never logged as system errors.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is user input rejection rather than
// a backend failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// uploadedFile is a staged cover attachment, decoupled from multipart so
// controllers are testable without HTTP plumbing.
type uploadedFile struct {
	Name   string
	Reader io.Reader
}

// CoverStore is the slice of the file bucket the form controllers need.
type CoverStore interface {
	Upload(originalName string, src io.Reader) (string, error)
	Remove(fileName string) error
}

// bookForm carries the raw book form fields. Numeric fields stay strings
// until validation so blank optionals never fail parsing.
type bookForm struct {
	Title           string
	Author          string
	Category        string
	Description     string
	ISBN            string
	PublicationDate string // yyyy-mm-dd; only the year is stored
	WhatsappLink    string
	Rating          string
	Price           string
}

func (f bookForm) toBook() (Book, error) {
	if strings.TrimSpace(f.Title) == "" {
		return Book{}, invalid("title is required")
	}
	if strings.TrimSpace(f.Author) == "" {
		return Book{}, invalid("author is required")
	}
	if strings.TrimSpace(f.Category) == "" {
		return Book{}, invalid("category is required")
	}
	rating, err := strconv.Atoi(strings.TrimSpace(f.Rating))
	if err != nil || rating < 1 || rating > 5 {
		return Book{}, invalid("rating must be between 1 and 5")
	}
	price, err := parseOptionalFloat(f.Price)
	if err != nil {
		return Book{}, invalid("price must be a number")
	}
	var year *int
	if d := strings.TrimSpace(f.PublicationDate); d != "" {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			return Book{}, invalid("publication date must be YYYY-MM-DD")
		}
		y := t.Year()
		year = &y
	}
	return Book{
		Title:           strings.TrimSpace(f.Title),
		Author:          strings.TrimSpace(f.Author),
		Category:        strings.TrimSpace(f.Category),
		Description:     f.Description,
		ISBN:            strings.TrimSpace(f.ISBN),
		PublicationYear: year,
		Price:           price,
		Rating:          &rating,
		WhatsappLink:    strings.TrimSpace(f.WhatsappLink),
	}, nil
}

// courseForm carries the raw course form fields.
type courseForm struct {
	Title           string
	Description     string
	Instructor      string
	Category        string
	DurationDays    string
	DurationHours   string
	DifficultyLevel string
	Price           string
	Prerequisites   string
	WhatsappLink    string
	CourseDate      string
	Classification  string
}

func (f courseForm) toCourse() (Course, error) {
	if strings.TrimSpace(f.Title) == "" {
		return Course{}, invalid("title is required")
	}
	if strings.TrimSpace(f.Instructor) == "" {
		return Course{}, invalid("instructor is required")
	}
	if strings.TrimSpace(f.Category) == "" {
		return Course{}, invalid("category is required")
	}
	if strings.TrimSpace(f.DifficultyLevel) == "" {
		return Course{}, invalid("difficulty level is required")
	}
	switch f.Classification {
	case "", "online", "physical":
	default:
		return Course{}, invalid("classification must be online or physical")
	}
	days, err := parseOptionalInt(f.DurationDays)
	if err != nil {
		return Course{}, invalid("duration days must be a number")
	}
	hours, err := parseOptionalInt(f.DurationHours)
	if err != nil {
		return Course{}, invalid("duration hours must be a number")
	}
	price, err := parseOptionalFloat(f.Price)
	if err != nil {
		return Course{}, invalid("price must be a number")
	}
	return Course{
		Title:           strings.TrimSpace(f.Title),
		Description:     f.Description,
		Instructor:      strings.TrimSpace(f.Instructor),
		Category:        strings.TrimSpace(f.Category),
		DurationDays:    days,
		DurationHours:   hours,
		DifficultyLevel: strings.TrimSpace(f.DifficultyLevel),
		Price:           price,
		Prerequisites:   f.Prerequisites,
		WhatsappLink:    strings.TrimSpace(f.WhatsappLink),
		CourseDate:      strings.TrimSpace(f.CourseDate),
		Classification:  f.Classification,
	}, nil
}

// blogForm carries the raw blog post form fields.
type blogForm struct {
	Title    string
	Content  string
	Excerpt  string
	Author   string
	Category string
	Status   string // "published" or "draft"
}

func (f blogForm) toPost() (BlogPost, error) {
	if strings.TrimSpace(f.Title) == "" {
		return BlogPost{}, invalid("title is required")
	}
	if strings.TrimSpace(f.Content) == "" {
		return BlogPost{}, invalid("content is required")
	}
	if strings.TrimSpace(f.Author) == "" {
		return BlogPost{}, invalid("author is required")
	}
	if strings.TrimSpace(f.Category) == "" {
		return BlogPost{}, invalid("category is required")
	}
	return BlogPost{
		Title:     strings.TrimSpace(f.Title),
		Content:   f.Content,
		Excerpt:   strings.TrimSpace(f.Excerpt),
		Author:    strings.TrimSpace(f.Author),
		Category:  strings.TrimSpace(f.Category),
		Published: f.Status == "published",
	}, nil
}

// bookController orchestrates book submits and deletes against the store and
// cover bucket.
type bookController struct {
	store  *Store
	covers CoverStore
	cache  *ContentCache
	guard  submitGuard
	log    zerolog.Logger
}

// Create validates the form, stages the cover upload, inserts the row, and
// invalidates the content cache. An upload failure aborts before any insert.
func (bc *bookController) Create(f bookForm, cover *uploadedFile) (err error) {
	if err := bc.guard.begin(); err != nil {
		return err
	}
	defer func() { bc.guard.finish(err) }()

	book, err := f.toBook()
	if err != nil {
		return err
	}
	if cover != nil {
		url, err := bc.covers.Upload(cover.Name, cover.Reader)
		if err != nil {
			bc.log.Error().Err(err).Str("book", book.Title).Msg("cover upload failed")
			return fmt.Errorf("upload cover: %w", err)
		}
		book.CoverImageURL = url
	}
	if err := bc.store.CreateBook(&book); err != nil {
		bc.log.Error().Err(err).Str("book", book.Title).Msg("insert book failed")
		return err
	}
	bc.cache.Invalidate()
	return nil
}

// Delete removes the stored cover (best-effort) and then the row. A bucket
// failure never blocks the row delete; a row-delete failure surfaces.
func (bc *bookController) Delete(id, coverURL string) error {
	if name := FileNameFromURL(coverURL); name != "" {
		if err := bc.covers.Remove(name); err != nil {
			bc.log.Warn().Err(err).Str("file", name).Msg("cover removal failed")
		}
	}
	if err := bc.store.DeleteBook(id); err != nil {
		bc.log.Error().Err(err).Str("id", id).Msg("delete book failed")
		return err
	}
	bc.cache.Invalidate()
	return nil
}

// courseController orchestrates course submits, edits, and deletes.
type courseController struct {
	store  *Store
	covers CoverStore
	cache  *ContentCache
	guard  submitGuard
	log    zerolog.Logger
}

// Save inserts a new course, or updates when editingID is set. On update the
// cover column is replaced only when a new file was attached.
func (cc *courseController) Save(f courseForm, editingID string, cover *uploadedFile) (err error) {
	if err := cc.guard.begin(); err != nil {
		return err
	}
	defer func() { cc.guard.finish(err) }()

	course, err := f.toCourse()
	if err != nil {
		return err
	}
	replaceCover := false
	if cover != nil {
		url, err := cc.covers.Upload(cover.Name, cover.Reader)
		if err != nil {
			cc.log.Error().Err(err).Str("course", course.Title).Msg("cover upload failed")
			return fmt.Errorf("upload cover: %w", err)
		}
		course.CoverImageURL = url
		replaceCover = true
	}
	if editingID != "" {
		course.ID = editingID
		err = cc.store.UpdateCourse(course, replaceCover)
	} else {
		err = cc.store.CreateCourse(&course)
	}
	if err != nil {
		cc.log.Error().Err(err).Str("course", course.Title).Msg("save course failed")
		return err
	}
	cc.cache.Invalidate()
	return nil
}

// Delete removes the stored cover (best-effort) and then the row.
func (cc *courseController) Delete(id, coverURL string) error {
	if name := FileNameFromURL(coverURL); name != "" {
		if err := cc.covers.Remove(name); err != nil {
			cc.log.Warn().Err(err).Str("file", name).Msg("cover removal failed")
		}
	}
	if err := cc.store.DeleteCourse(id); err != nil {
		cc.log.Error().Err(err).Str("id", id).Msg("delete course failed")
		return err
	}
	cc.cache.Invalidate()
	return nil
}

// blogController orchestrates blog post creation and deletion. Posts have no
// edit path; the slug is computed once at creation.
type blogController struct {
	store  *Store
	covers CoverStore
	cache  *ContentCache
	guard  submitGuard
	log    zerolog.Logger
}

func (pc *blogController) Create(f blogForm, cover *uploadedFile) (err error) {
	if err := pc.guard.begin(); err != nil {
		return err
	}
	defer func() { pc.guard.finish(err) }()

	post, err := f.toPost()
	if err != nil {
		return err
	}
	if cover != nil {
		url, err := pc.covers.Upload(cover.Name, cover.Reader)
		if err != nil {
			pc.log.Error().Err(err).Str("post", post.Title).Msg("cover upload failed")
			return fmt.Errorf("upload cover: %w", err)
		}
		post.CoverImageURL = url
	}
	if err := pc.store.CreatePost(&post); err != nil {
		pc.log.Error().Err(err).Str("post", post.Title).Msg("insert post failed")
		return err
	}
	pc.cache.Invalidate()
	return nil
}

func (pc *blogController) Delete(id string) error {
	if err := pc.store.DeletePost(id); err != nil {
		pc.log.Error().Err(err).Str("id", id).Msg("delete post failed")
		return err
	}
	pc.cache.Invalidate()
	return nil
}
