package agrisite

import (
	"database/sql"

	"github.com/google/uuid"
)

const bookColumns = `id, title, author, category, description, isbn,
	publication_year, cover_image_url, price, rating, whatsapp_link, created_at`

// CreateBook inserts a new book, assigning its ID and creation timestamp.
func (s *Store) CreateBook(b *Book) error {
	b.ID = uuid.NewString()
	b.CreatedAt = now()
	_, err := s.db.Exec(`INSERT INTO books (id, title, author, category, description, isbn,
		publication_year, cover_image_url, price, rating, whatsapp_link, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Title, b.Author, b.Category, b.Description, b.ISBN,
		nullInt(b.PublicationYear), b.CoverImageURL, nullFloat(b.Price),
		nullInt(b.Rating), b.WhatsappLink, b.CreatedAt)
	return err
}

// ListBooks returns all books, newest first.
func (s *Store) ListBooks() ([]Book, error) {
	rows, err := s.db.Query(`SELECT ` + bookColumns + ` FROM books ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// GetBook returns a single book by id.
func (s *Store) GetBook(id string) (Book, error) {
	row := s.db.QueryRow(`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)
	return scanBook(row)
}

// DeleteBook removes a book row. Returns ErrNotFound if no row matched.
func (s *Store) DeleteBook(id string) error {
	res, err := s.db.Exec(`DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(r rowScanner) (Book, error) {
	var b Book
	var year, rating sql.NullInt64
	var price sql.NullFloat64
	err := r.Scan(&b.ID, &b.Title, &b.Author, &b.Category, &b.Description, &b.ISBN,
		&year, &b.CoverImageURL, &price, &rating, &b.WhatsappLink, &b.CreatedAt)
	if err != nil {
		return Book{}, err
	}
	b.PublicationYear = intPtr(year)
	b.Price = floatPtr(price)
	b.Rating = intPtr(rating)
	return b, nil
}

const courseColumns = `id, title, description, instructor, category, duration_days,
	duration_hours, difficulty_level, price, cover_image_url, prerequisites,
	whatsapp_link, course_date, classification, created_at`

// CreateCourse inserts a new course, assigning its ID and creation timestamp.
func (s *Store) CreateCourse(c *Course) error {
	c.ID = uuid.NewString()
	c.CreatedAt = now()
	_, err := s.db.Exec(`INSERT INTO courses (id, title, description, instructor, category,
		duration_days, duration_hours, difficulty_level, price, cover_image_url,
		prerequisites, whatsapp_link, course_date, classification, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Title, c.Description, c.Instructor, c.Category,
		nullInt(c.DurationDays), nullInt(c.DurationHours), c.DifficultyLevel,
		nullFloat(c.Price), c.CoverImageURL, c.Prerequisites, c.WhatsappLink,
		c.CourseDate, c.Classification, c.CreatedAt)
	return err
}

// UpdateCourse replaces a course's mutable fields. The cover image column is
// written only when replaceCover is set, so an edit without a new file keeps
// the existing URL.
func (s *Store) UpdateCourse(c Course, replaceCover bool) error {
	var res sql.Result
	var err error
	if replaceCover {
		res, err = s.db.Exec(`UPDATE courses SET title = ?, description = ?, instructor = ?,
			category = ?, duration_days = ?, duration_hours = ?, difficulty_level = ?,
			price = ?, prerequisites = ?, whatsapp_link = ?, course_date = ?,
			classification = ?, cover_image_url = ? WHERE id = ?`,
			c.Title, c.Description, c.Instructor, c.Category,
			nullInt(c.DurationDays), nullInt(c.DurationHours), c.DifficultyLevel,
			nullFloat(c.Price), c.Prerequisites, c.WhatsappLink, c.CourseDate,
			c.Classification, c.CoverImageURL, c.ID)
	} else {
		res, err = s.db.Exec(`UPDATE courses SET title = ?, description = ?, instructor = ?,
			category = ?, duration_days = ?, duration_hours = ?, difficulty_level = ?,
			price = ?, prerequisites = ?, whatsapp_link = ?, course_date = ?,
			classification = ? WHERE id = ?`,
			c.Title, c.Description, c.Instructor, c.Category,
			nullInt(c.DurationDays), nullInt(c.DurationHours), c.DifficultyLevel,
			nullFloat(c.Price), c.Prerequisites, c.WhatsappLink, c.CourseDate,
			c.Classification, c.ID)
	}
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListCourses returns all courses, newest first.
func (s *Store) ListCourses() ([]Course, error) {
	rows, err := s.db.Query(`SELECT ` + courseColumns + ` FROM courses ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// GetCourse returns a single course by id.
func (s *Store) GetCourse(id string) (Course, error) {
	row := s.db.QueryRow(`SELECT `+courseColumns+` FROM courses WHERE id = ?`, id)
	return scanCourse(row)
}

// DeleteCourse removes a course row. Returns ErrNotFound if no row matched.
func (s *Store) DeleteCourse(id string) error {
	res, err := s.db.Exec(`DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCourse(r rowScanner) (Course, error) {
	var c Course
	var days, hours sql.NullInt64
	var price sql.NullFloat64
	err := r.Scan(&c.ID, &c.Title, &c.Description, &c.Instructor, &c.Category,
		&days, &hours, &c.DifficultyLevel, &price, &c.CoverImageURL,
		&c.Prerequisites, &c.WhatsappLink, &c.CourseDate, &c.Classification, &c.CreatedAt)
	if err != nil {
		return Course{}, err
	}
	c.DurationDays = intPtr(days)
	c.DurationHours = intPtr(hours)
	c.Price = floatPtr(price)
	return c, nil
}
